// Package main implements the taskmate CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "taskmate",
	Short: "TaskMate - track tasks from the terminal",
	Long: `TaskMate tracks tasks in three tabs: Active, Completed, and Deleted.

Run without a subcommand in a terminal to open the interactive interface.
When output is not a terminal, the Active tab is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runRoot,
}

func init() {
	rootCmd.SilenceUsage = true
}

func runRoot(cmd *cobra.Command, args []string) error {
	if isInteractive(cmd) {
		return runTUI(cmd, args)
	}
	return printTab(cmd, "")
}
