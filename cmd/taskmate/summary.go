package main

import (
	"fmt"

	"github.com/amonks/taskmate/internal/export"
	"github.com/amonks/taskmate/internal/markdown"
	"github.com/amonks/taskmate/internal/ui"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show task counts and every tab as a report",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

var summaryRaw bool

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().BoolVar(&summaryRaw, "raw", false, "Print markdown source instead of rendering it")
}

func runSummary(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	report := export.Markdown(export.Take(s.store))
	out := cmd.OutOrStdout()
	if summaryRaw {
		fmt.Fprint(out, report)
		return nil
	}
	rendered := markdown.Render(ui.TerminalWidth(out), 0, []byte(report))
	fmt.Fprintln(out, string(rendered))
	return nil
}
