package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cristianoliveira/tmux-alert/internal/version"
	"github.com/spf13/cobra"
)

// versionOutputWriter is the writer used by PrintVersion. Can be changed for testing.
var versionOutputWriter io.Writer = os.Stdout

// PrintVersion prints the version line.
func PrintVersion() {
	fmt.Fprintf(versionOutputWriter, "tmux-alert v%s\n", version.String())
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			PrintVersion()
		},
	}
}
