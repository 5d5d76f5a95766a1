package cmd

import (
	"fmt"

	"github.com/cristianoliveira/tmux-alert/internal/alert"
	"github.com/cristianoliveira/tmux-alert/internal/config"
	"github.com/spf13/cobra"
)

const showCommandLong = `Show an alert and print the selected button.

USAGE:
    tmux-alert show [OPTIONS]

OPTIONS:
    --title <text>          Dialog title
    --message <text>        Dialog message
    --cancel <text>         Cancel button title, index 0 (default from cancel_title, "" for none)
    --button <text>         Other button title, repeatable
    --ok <text>             Single confirm button title (default from ok_title)
    --timeout <seconds>     Select a button automatically after N seconds
    --timeout-button <n>    Button selected on timeout, needs a timeout (default: cancel, else first)
    --countdown <format>    Countdown appended to the message, e.g. "(%lus)"
    --plain                 Use the line UI even on a terminal
    --popup                 Show the dialog in a tmux popup
    -h, --help              Show this help

OUTPUT:
    <index><TAB><title> of the selected button on stdout.`

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	var (
		title         string
		message       string
		cancel        string
		buttons       []string
		ok            string
		timeout       int
		timeoutButton int
		countdown     string
		plain         bool
		popup         bool
		resultFile    string
	)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show an alert and print the selected button",
		Long:  showCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dialogRequest{
				Title:            title,
				Message:          message,
				Cancel:           stringOrConfig(cmd, "cancel", cancel, "cancel_title"),
				Buttons:          buttons,
				Timeout:          intOrConfig(cmd, "timeout", timeout, "default_timeout"),
				TimeoutButton:    timeoutButton,
				HasTimeoutButton: cmd.Flags().Changed("timeout-button"),
				Countdown:        stringOrConfig(cmd, "countdown", countdown, "countdown_format"),
				Plain:            plain,
			}
			if cmd.Flags().Changed("ok") && len(buttons) > 0 {
				return fmt.Errorf("--ok cannot be combined with --button")
			}
			if len(req.Buttons) == 0 {
				okTitle := stringOrConfig(cmd, "ok", ok, "ok_title")
				if okTitle != "" {
					req.Buttons = []string{okTitle}
				}
			}
			if err := validateRequest(req); err != nil {
				return err
			}
			return runCommandDialog(cmd, req, popup, resultFile)
		},
	}

	showCmd.Flags().StringVar(&title, "title", "", "Dialog title")
	showCmd.Flags().StringVar(&message, "message", "", "Dialog message")
	showCmd.Flags().StringVar(&cancel, "cancel", "", "Cancel button title (empty for none)")
	showCmd.Flags().StringArrayVar(&buttons, "button", nil, "Other button title, repeatable")
	showCmd.Flags().StringVar(&ok, "ok", "", "Single confirm button title")
	showCmd.Flags().IntVar(&timeout, "timeout", 0, "Select a button automatically after N seconds")
	showCmd.Flags().IntVar(&timeoutButton, "timeout-button", 0, "Button index selected on timeout (default: cancel, else first)")
	showCmd.Flags().StringVar(&countdown, "countdown", "", "Countdown format appended to the message")
	showCmd.Flags().BoolVar(&plain, "plain", false, "Use the line UI even on a terminal")
	addOutputFlags(showCmd, &popup, &resultFile)

	return showCmd
}

// validateRequest rejects flag combinations before anything is shown.
func validateRequest(req dialogRequest) error {
	count := len(req.buttons())
	if count == 0 {
		return fmt.Errorf("alert needs at least one button")
	}
	if req.Timeout < 0 {
		return fmt.Errorf("invalid timeout %d: must be >= 0", req.Timeout)
	}
	if !req.HasTimeoutButton {
		return nil
	}
	if req.Timeout == 0 {
		return fmt.Errorf("--timeout-button requires --timeout")
	}
	if req.TimeoutButton < 0 || req.TimeoutButton >= count {
		return fmt.Errorf("invalid timeout button %d, alert has %d buttons: %w", req.TimeoutButton, count, alert.ErrInvalidButtonIndex)
	}
	return nil
}

func stringOrConfig(cmd *cobra.Command, flag, value, key string) string {
	if cmd.Flags().Changed(flag) {
		return value
	}
	return config.Get(key, value)
}

func intOrConfig(cmd *cobra.Command, flag string, value int, key string) int {
	if cmd.Flags().Changed(flag) {
		return value
	}
	return config.GetInt(key, value)
}
