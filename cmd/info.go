package cmd

import (
	"github.com/spf13/cobra"
)

const infoCommandLong = `Show an informational alert with a single dismiss button.

USAGE:
    tmux-alert info [OPTIONS]

OPTIONS:
    --title <text>          Dialog title
    --message <text>        Dialog message
    --dismiss <text>        Dismiss button title (default from ok_title)
    --timeout <seconds>     Dismiss automatically after N seconds
    --countdown <format>    Countdown appended to the message
    --plain                 Use the line UI even on a terminal
    --popup                 Show the dialog in a tmux popup
    -h, --help              Show this help`

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	var (
		title      string
		message    string
		dismiss    string
		timeout    int
		countdown  string
		plain      bool
		popup      bool
		resultFile string
	)

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show an informational alert",
		Long:  infoCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dialogRequest{
				Title:     title,
				Message:   message,
				Cancel:    stringOrConfig(cmd, "dismiss", dismiss, "ok_title"),
				Info:      true,
				Timeout:   timeout,
				Countdown: stringOrConfig(cmd, "countdown", countdown, "countdown_format"),
				Plain:     plain,
			}
			if req.Cancel == "" {
				req.Cancel = "OK"
			}
			if err := validateRequest(req); err != nil {
				return err
			}
			return runCommandDialog(cmd, req, popup, resultFile)
		},
	}

	infoCmd.Flags().StringVar(&title, "title", "", "Dialog title")
	infoCmd.Flags().StringVar(&message, "message", "", "Dialog message")
	infoCmd.Flags().StringVar(&dismiss, "dismiss", "", "Dismiss button title")
	infoCmd.Flags().IntVar(&timeout, "timeout", 0, "Dismiss automatically after N seconds")
	infoCmd.Flags().StringVar(&countdown, "countdown", "", "Countdown format appended to the message")
	infoCmd.Flags().BoolVar(&plain, "plain", false, "Use the line UI even on a terminal")
	addOutputFlags(infoCmd, &popup, &resultFile)

	return infoCmd
}
