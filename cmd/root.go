/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/tmux-alert/internal/alert"
	"github.com/cristianoliveira/tmux-alert/internal/colors"
	"github.com/cristianoliveira/tmux-alert/internal/config"
	"github.com/cristianoliveira/tmux-alert/internal/logging"
	"github.com/cristianoliveira/tmux-alert/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd is the command run by main.
var RootCmd = NewRootCmd()

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "tmux-alert",
		Short:             "Modal alerts for scripts, with an optional countdown.",
		Long:              `Modal alerts for scripts, with an optional countdown.`,
		Version:           version.String(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initApp,
	}

	// Hide the completion command
	root.CompletionOptions.HiddenDefaultCmd = true

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			fmt.Fprint(cmd.OutOrStdout(), cmd.Long+"\n")
			return
		}
		printHelpText(cmd.OutOrStdout(), cmd)
	})
	root.SetHelpCommand(newHelpCmd())

	root.AddCommand(NewShowCmd())
	root.AddCommand(NewInfoCmd())
	root.AddCommand(NewHistoryCmd())
	root.AddCommand(NewVersionCmd())
	return root
}

// Execute runs the root command and flushes the log file.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	defer func() {
		_ = logging.ShutdownGlobal()
	}()
	if err := RootCmd.Execute(); err != nil {
		colors.Error(err.Error())
		return err
	}
	return nil
}

func init() {
	config.RegisterValidator("countdown_format", config.TemplateValidator(alert.ValidateCountdownFormat))
}

func initApp(cmd *cobra.Command, args []string) error {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	logging.GetGlobal().Debug("command started", "command", cmd.Name())
	return nil
}

func printHelpText(w io.Writer, cmd *cobra.Command) {
	commandOrder := []string{"show", "info", "history", "version", "help"}

	var cmdLines []string
	for _, name := range commandOrder {
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", c.Name(), c.Short))
				break
			}
		}
	}

	fmt.Fprintf(w, `tmux-alert v%s

Modal alerts for scripts, with an optional countdown.

USAGE:
    tmux-alert [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
}
