package cmd

import (
	"fmt"

	"github.com/cristianoliveira/tmux-alert/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent alert resolutions",
		Long: `List recent alert resolutions, newest first.

USAGE:
    tmux-alert history [--limit N]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(historyPath())
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No alerts recorded")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-7s  %d\t%-12s  %s\n",
					e.At.Local().Format("2006-01-02 15:04:05"), e.Source, e.Index, e.Button, e.Title)
			}
			return nil
		},
	}

	historyCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries (0 for all)")
	return historyCmd
}
