// Package lineui presents alert dialogs on plain line-oriented streams.
//
// A dialog is printed as text and buttons are selected by typing their
// number followed by a newline. It is used when no terminal is attached.
package lineui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/cristianoliveira/tmux-alert/internal/alert"
)

// Presenter writes dialogs to out and reads selections from in.
type Presenter struct {
	in          io.Reader
	cancelIndex int
	waitOnEOF   bool

	outMu sync.Mutex
	out   io.Writer

	mu      sync.Mutex
	active  *lineDialog
	reading bool
}

// Option configures a Presenter.
type Option func(*Presenter)

// WaitOnEOF leaves the dialog open when input ends, so a running countdown
// can still resolve it.
func WaitOnEOF() Option {
	return func(p *Presenter) {
		p.waitOnEOF = true
	}
}

// NewPresenter returns a presenter. cancelIndex is the button selected when
// input ends, or -1 to select the first button.
func NewPresenter(in io.Reader, out io.Writer, cancelIndex int, opts ...Option) *Presenter {
	p := &Presenter{in: in, out: out, cancelIndex: cancelIndex}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create implements alert.Presenter.
func (p *Presenter) Create(title, message string, buttons []string, onTap func(index int)) (alert.Dialog, error) {
	return &lineDialog{
		presenter: p,
		title:     title,
		message:   message,
		buttons:   append([]string(nil), buttons...),
		onTap:     onTap,
	}, nil
}

func (p *Presenter) printf(format string, args ...any) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *Presenter) activate(d *lineDialog) {
	p.mu.Lock()
	p.active = d
	start := !p.reading
	p.reading = true
	p.mu.Unlock()
	if start {
		go p.read()
	}
}

func (p *Presenter) deactivate(d *lineDialog) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == d {
		p.active = nil
	}
}

func (p *Presenter) current() *lineDialog {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *Presenter) read() {
	scanner := bufio.NewScanner(p.in)
	for scanner.Scan() {
		d := p.current()
		if d == nil {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(d.buttons) {
			p.printf("invalid choice %q, enter 1-%d: ", line, len(d.buttons))
			continue
		}
		d.onTap(n - 1)
	}

	p.mu.Lock()
	p.reading = false
	d := p.active
	p.mu.Unlock()
	if p.waitOnEOF {
		return
	}
	// Input is gone; nothing else can answer the dialog.
	if d != nil {
		d.onTap(p.fallbackIndex(d))
	}
}

func (p *Presenter) fallbackIndex(d *lineDialog) int {
	if p.cancelIndex >= 0 && p.cancelIndex < len(d.buttons) {
		return p.cancelIndex
	}
	return 0
}

type lineDialog struct {
	presenter *Presenter
	title     string
	message   string
	buttons   []string
	onTap     func(int)
}

func (d *lineDialog) Show() error {
	var b strings.Builder
	if d.title != "" {
		fmt.Fprintf(&b, "%s\n", d.title)
	}
	if d.message != "" {
		fmt.Fprintf(&b, "%s\n", d.message)
	}
	for i, title := range d.buttons {
		fmt.Fprintf(&b, "  [%d] %s\n", i+1, title)
	}
	fmt.Fprintf(&b, "select 1-%d: ", len(d.buttons))
	d.presenter.printf("%s", b.String())
	d.presenter.activate(d)
	return nil
}

func (d *lineDialog) SetMessage(text string) {
	d.presenter.printf("\n%s\n", text)
}

func (d *lineDialog) Dismiss() {
	d.presenter.deactivate(d)
	d.presenter.printf("\n")
}
