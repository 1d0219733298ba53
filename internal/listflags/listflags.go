// Package listflags registers the flags shared by commands that list tasks.
package listflags

import (
	"github.com/amonks/taskmate/internal/validation"
	"github.com/amonks/taskmate/task"
	"github.com/spf13/cobra"
)

// AddAllFlag adds a shared --all flag to list commands.
func AddAllFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("all", false, "Include every tab")
		return
	}

	cmd.Flags().BoolVar(target, "all", false, "Include every tab")
}

// AddTabFlag adds a --tab flag. An empty value means the configured default.
func AddTabFlag(cmd *cobra.Command, target *string) {
	usage := "Tab to show (" + validation.FormatValidValues(task.ValidTabs()) + ")"
	if target == nil {
		cmd.Flags().StringP("tab", "t", "", usage)
		return
	}

	cmd.Flags().StringVarP(target, "tab", "t", "", usage)
}

// AddJSONFlag adds a --json flag.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}
