package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/amonks/taskmate/internal/export"
	"github.com/amonks/taskmate/internal/listflags"
	"github.com/amonks/taskmate/internal/ui"
	"github.com/amonks/taskmate/task"
	"github.com/spf13/cobra"
)

const emptyListMessage = "No tasks available."

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the tasks in a tab",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listTab  string
	listJSON bool
	listAll  bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listflags.AddTabFlag(listCmd, &listTab)
	listflags.AddJSONFlag(listCmd, &listJSON)
	listflags.AddAllFlag(listCmd, &listAll)
}

func runList(cmd *cobra.Command, args []string) error {
	if listAll {
		if cmd.Flags().Changed("tab") {
			return fmt.Errorf("--tab and --all cannot be combined")
		}
		return printAllTabs(cmd, listJSON)
	}
	if listJSON {
		return printTabJSON(cmd, listTab)
	}
	return printTab(cmd, listTab)
}

func resolveTab(s *session, flagValue string) (task.Tab, error) {
	if flagValue == "" {
		return s.cfg.Tab()
	}
	return task.ParseTab(flagValue)
}

func collectTab(cmd *cobra.Command, tabName string) ([]task.Task, error) {
	s, err := openSession(cmd)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	tab, err := resolveTab(s, tabName)
	if err != nil {
		return nil, err
	}
	items := []task.Task{}
	for item := range s.store.View(tab) {
		items = append(items, item)
	}
	return items, nil
}

// printTab prints one tab as a table.
func printTab(cmd *cobra.Command, tabName string) error {
	items, err := collectTab(cmd, tabName)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, emptyListMessage)
		return nil
	}
	fmt.Fprint(out, formatTaskTable(items, ui.ANSIEnabled(out)))
	return nil
}

func printTabJSON(cmd *cobra.Command, tabName string) error {
	items, err := collectTab(cmd, tabName)
	if err != nil {
		return err
	}
	return encodeJSON(cmd.OutOrStdout(), items)
}

func printAllTabs(cmd *cobra.Command, asJSON bool) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	snapshot := export.Take(s.store)
	out := cmd.OutOrStdout()
	if asJSON {
		return encodeJSON(out, snapshot)
	}
	if len(snapshot.Tasks)+len(snapshot.DeletedTasks) == 0 {
		fmt.Fprintln(out, emptyListMessage)
		return nil
	}
	fmt.Fprint(out, formatSnapshotTable(snapshot, ui.ANSIEnabled(out)))
	return nil
}

func formatTaskTable(items []task.Task, color bool) string {
	builder := ui.NewTableBuilder([]string{"ID", "CATEGORY", "DONE", "TEXT"}, len(items))
	for _, item := range items {
		builder.AddRow(taskRow(item, color))
	}
	return builder.String()
}

func formatSnapshotTable(snapshot export.Snapshot, color bool) string {
	builder := ui.NewTableBuilder([]string{"TAB", "ID", "CATEGORY", "DONE", "TEXT"}, len(snapshot.Tasks)+len(snapshot.DeletedTasks))
	for _, tab := range task.ValidTabs() {
		for _, item := range snapshot.Tab(tab) {
			builder.AddRow(append([]string{string(tab)}, taskRow(item, color)...))
		}
	}
	return builder.String()
}

func taskRow(item task.Task, color bool) []string {
	done := "no"
	text := ui.TruncateTableCell(item.Text)
	if item.Completed {
		done = "yes"
		text = ui.FormatDone(text, color)
	}
	return []string{strconv.FormatInt(item.ID, 10), string(item.Category), done, text}
}

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
