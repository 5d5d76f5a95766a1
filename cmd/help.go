package cmd

import (
	"github.com/spf13/cobra"
)

// newHelpCmd creates the help command
func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show this help message",
		Long:  `Show this help message.`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Root().Help()
		},
	}
}
