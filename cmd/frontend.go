package cmd

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tmux-alert/internal/alert"
	"github.com/cristianoliveira/tmux-alert/internal/lineui"
	"github.com/cristianoliveira/tmux-alert/internal/tui"
	"github.com/mattn/go-isatty"
)

// frontend hosts dialogs for one command invocation.
type frontend interface {
	Presenter() alert.Presenter
	// Run blocks until done is closed or the frontend exits.
	Run(done <-chan struct{}) error
}

// newFrontend picks the terminal UI when in is a terminal and the line UI otherwise.
// Without a countdown, closed input selects the cancel button so the command
// cannot hang; with one, the countdown decides.
var newFrontend = func(in io.Reader, out io.Writer, req dialogRequest) frontend {
	if req.Plain || !isTerminal(in) {
		var opts []lineui.Option
		if req.Timeout > 0 {
			opts = append(opts, lineui.WaitOnEOF())
		}
		return &lineFrontend{presenter: lineui.NewPresenter(in, out, req.cancelIndex(), opts...)}
	}
	return newTUIFrontend(in, out, req.cancelIndex())
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type lineFrontend struct {
	presenter *lineui.Presenter
}

func (f *lineFrontend) Presenter() alert.Presenter { return f.presenter }

func (f *lineFrontend) Run(done <-chan struct{}) error {
	<-done
	return nil
}

type tuiFrontend struct {
	program   *tea.Program
	presenter *tui.Presenter
}

func newTUIFrontend(in io.Reader, out io.Writer, cancelIndex int) *tuiFrontend {
	program := tea.NewProgram(tui.NewModel(tui.QuitOnDismiss()),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	return &tuiFrontend{
		program:   program,
		presenter: tui.NewPresenter(program, cancelIndex),
	}
}

func (f *tuiFrontend) Presenter() alert.Presenter { return f.presenter }

func (f *tuiFrontend) Run(done <-chan struct{}) error {
	if _, err := f.program.Run(); err != nil {
		return err
	}
	// ctrl+c quits before the selection is resolved on the alert loop.
	<-done
	return nil
}
