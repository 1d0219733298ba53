package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amonks/taskmate/internal/editor"
	internalstrings "github.com/amonks/taskmate/internal/strings"
	"github.com/amonks/taskmate/internal/ui"
	"github.com/amonks/taskmate/internal/validation"
	"github.com/amonks/taskmate/task"
	"github.com/spf13/cobra"
)

// add
var addCmd = &cobra.Command{
	Use:   "add [<text>...]",
	Short: "Add a task to the Active tab",
	Long: `Add a task to the Active tab.

All arguments are joined with spaces to form the task text. The category
defaults to ui.default-category from taskmate.toml, or Other.

Without text, opens $EDITOR on a draft when running interactively. Use
--edit to open the editor even when text is given.`,
	RunE: runAdd,
}

var (
	addCategory string
	addEdit     bool
)

// toggle
var toggleCmd = &cobra.Command{
	Use:     "toggle <id>...",
	Aliases: []string{"done"},
	Short:   "Mark active tasks done, or not done",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runToggle,
}

// delete
var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Move tasks to the Deleted tab",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDelete,
}

// restore
var restoreCmd = &cobra.Command{
	Use:   "restore <id>...",
	Short: "Move deleted tasks back to the active list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRestore,
}

// purge
var purgeCmd = &cobra.Command{
	Use:   "purge [<id>...]",
	Short: "Permanently remove deleted tasks",
	Long: `Permanently remove deleted tasks.

Only tasks in the Deleted tab can be purged. Use --all to purge every
deleted task at once. Purged tasks cannot be restored.`,
	Args: validatePurgeArgs,
	RunE: runPurge,
}

var purgeAll bool

func init() {
	rootCmd.AddCommand(addCmd, toggleCmd, deleteCmd, restoreCmd, purgeCmd)

	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category ("+validation.FormatValidValues(task.ValidCategories())+")")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Write the task in $EDITOR")
	addCategoryFlagAliases(addCmd)

	purgeCmd.Flags().BoolVar(&purgeAll, "all", false, "Purge every deleted task")
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	category, err := resolveCategory(s, addCategory)
	if err != nil {
		return err
	}

	text := internalstrings.NormalizeWhitespace(strings.Join(args, " "))
	if addEdit || len(args) == 0 {
		if !addEdit && !ui.IsTerminal(cmd.InOrStdin()) {
			return fmt.Errorf("task text is required")
		}
		draft, err := editor.EditDraft(editor.Draft{Category: category, Text: text}, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		text, category = draft.Text, draft.Category
	}

	created, err := s.store.Add(text, category)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), created.ID)
	return nil
}

func resolveCategory(s *session, flagValue string) (task.Category, error) {
	if strings.TrimSpace(flagValue) == "" {
		return s.cfg.Category()
	}
	return task.ParseCategory(flagValue)
}

func runToggle(cmd *cobra.Command, args []string) error {
	return runTaskAction(cmd, args, func(store *task.Store, id int64) error {
		_, err := store.Toggle(id)
		return err
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return runTaskAction(cmd, args, (*task.Store).Delete)
}

func runRestore(cmd *cobra.Command, args []string) error {
	return runTaskAction(cmd, args, (*task.Store).Restore)
}

func validatePurgeArgs(cmd *cobra.Command, args []string) error {
	if purgeAll {
		if len(args) > 0 {
			return fmt.Errorf("purge --all does not take task ids")
		}
		return nil
	}
	return cobra.MinimumNArgs(1)(cmd, args)
}

func runPurge(cmd *cobra.Command, args []string) error {
	if !purgeAll {
		return runTaskAction(cmd, args, (*task.Store).Purge)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.store.PurgeAll()
	return err
}

// runTaskAction parses every id before applying action to each in order.
// It stops at the first failure; earlier actions stay applied.
func runTaskAction(cmd *cobra.Command, args []string, action func(*task.Store, int64) error) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, id := range ids {
		if err := action(s.store, id); err != nil {
			return err
		}
	}
	return nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid task id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
