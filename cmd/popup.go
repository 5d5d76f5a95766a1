package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cristianoliveira/tmux-alert/internal/config"
	"github.com/cristianoliveira/tmux-alert/internal/tmux"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newTmuxClient creates the tmux client used for popups. Can be changed for testing.
var newTmuxClient = func() tmux.Client {
	return tmux.NewDefaultClient()
}

// executable locates the running binary. Can be changed for testing.
var executable = os.Executable

func addOutputFlags(cmd *cobra.Command, popup *bool, resultFile *string) {
	cmd.Flags().BoolVar(popup, "popup", false, "Show the dialog in a tmux popup")
	cmd.Flags().StringVar(resultFile, "result-file", "", "Write the selection to a file instead of stdout")
	_ = cmd.Flags().MarkHidden("result-file")
}

// runInPopup runs the same command inside a tmux popup and relays its selection.
func runInPopup(cmd *cobra.Command, title string) error {
	if !tmux.InSession() {
		return fmt.Errorf("--popup requires a running tmux client")
	}
	exe, err := executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	f, err := os.CreateTemp("", "tmux-alert-result-*")
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	path := f.Name()
	_ = f.Close()
	defer os.Remove(path)

	argv := append([]string{exe, cmd.Name()}, forwardedFlags(cmd.Flags())...)
	argv = append(argv, "--result-file", path)

	opts := tmux.PopupOptions{
		Title:  title,
		Width:  config.Get("popup_width", ""),
		Height: config.Get("popup_height", ""),
	}
	if err := newTmuxClient().Popup(cmd.Context(), opts, argv); err != nil {
		return fmt.Errorf("tmux popup: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read result file: %w", err)
	}
	if len(data) == 0 {
		return errNoSelection
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// forwardedFlags renders every flag set on the command line, except the popup ones.
func forwardedFlags(flags *pflag.FlagSet) []string {
	var args []string
	flags.Visit(func(f *pflag.Flag) {
		if f.Name == "popup" || f.Name == "result-file" {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			for _, v := range sv.GetSlice() {
				args = append(args, "--"+f.Name+"="+v)
			}
			return
		}
		args = append(args, "--"+f.Name+"="+f.Value.String())
	})
	return args
}

// resultWriter returns where the selection goes: path when set, stdout otherwise.
func resultWriter(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, config.FileModeFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open result file: %w", err)
	}
	return f, f.Close, nil
}

// runCommandDialog runs req locally or in a popup, following the output flags.
func runCommandDialog(cmd *cobra.Command, req dialogRequest, popup bool, resultFile string) error {
	if popup {
		return runInPopup(cmd, req.Title)
	}
	out, closeOut, err := resultWriter(cmd, resultFile)
	if err != nil {
		return err
	}
	_, err = runDialog(cmd.Context(), cmd.InOrStdin(), out, cmd.ErrOrStderr(), req)
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}
