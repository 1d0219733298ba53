package main

import (
	"github.com/amonks/taskmate/internal/listflags"
	"github.com/amonks/taskmate/internal/tui"
	"github.com/amonks/taskmate/internal/ui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive interface",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

var tuiTab string

func init() {
	rootCmd.AddCommand(tuiCmd)

	listflags.AddTabFlag(tuiCmd, &tuiTab)
}

func isInteractive(cmd *cobra.Command) bool {
	return ui.IsTerminal(cmd.InOrStdin()) && ui.IsTerminal(cmd.OutOrStdout())
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tab, err := resolveTab(s, tuiTab)
	if err != nil {
		return err
	}
	category, err := s.cfg.Category()
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), s.store, tui.Options{Tab: tab, Category: category})
}
