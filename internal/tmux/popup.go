package tmux

import (
	"context"
	"strings"
)

// PopupOptions sizes and labels a popup.
type PopupOptions struct {
	Title  string
	Width  string
	Height string
}

// Popup runs argv in a tmux popup that closes when argv exits. There is no
// timeout: the call lasts as long as the popup.
func (c *DefaultClient) Popup(ctx context.Context, opts PopupOptions, argv []string) error {
	_, _, err := c.run(ctx, PopupArgs(opts, argv)...)
	return err
}

// PopupArgs builds the display-popup arguments for argv.
func PopupArgs(opts PopupOptions, argv []string) []string {
	args := []string{"display-popup", "-E"}
	if opts.Width != "" {
		args = append(args, "-w", opts.Width)
	}
	if opts.Height != "" {
		args = append(args, "-h", opts.Height)
	}
	if opts.Title != "" {
		args = append(args, "-T", opts.Title)
	}
	return append(args, ShellJoin(argv))
}

// ShellJoin quotes argv into a single POSIX shell command line.
func ShellJoin(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./=:,+%@", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
