package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/amonks/taskmate/internal/config"
	"github.com/amonks/taskmate/internal/export"
	"github.com/amonks/taskmate/task"
)

func addTask(t *testing.T, args ...string) int64 {
	t.Helper()

	stdout, _, err := runCLI(t, append([]string{"add"}, args...)...)
	if err != nil {
		t.Fatalf("add %v: %v", args, err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 || lines[0] != task.MessageAdded {
		t.Fatalf("unexpected add output %q", stdout)
	}
	id, err := strconv.ParseInt(lines[1], 10, 64)
	if err != nil {
		t.Fatalf("parse id %q: %v", lines[1], err)
	}
	return id
}

func listTasksJSON(t *testing.T, args ...string) []task.Task {
	t.Helper()

	stdout, _, err := runCLI(t, append([]string{"list", "--json"}, args...)...)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var items []task.Task
	if err := json.Unmarshal([]byte(stdout), &items); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	return items
}

func TestAddJoinsArgsAndUsesCategory(t *testing.T) {
	setupCLI(t)

	id := addTask(t, "Buy", "oat", "milk", "-c", "SHOPPING")

	items := listTasksJSON(t)
	if len(items) != 1 {
		t.Fatalf("expected one task, got %+v", items)
	}
	want := task.Task{ID: id, Text: "Buy oat milk", Category: task.CategoryShopping}
	if items[0] != want {
		t.Fatalf("expected %+v, got %+v", want, items[0])
	}
}

func TestAddDefaultsToOther(t *testing.T) {
	setupCLI(t)

	addTask(t, "Stretch")

	items := listTasksJSON(t)
	if len(items) != 1 || items[0].Category != task.CategoryOther {
		t.Fatalf("expected Other category, got %+v", items)
	}
}

func TestAddRejectsBlankText(t *testing.T) {
	setupCLI(t)

	stdout, _, err := runCLI(t, "add", "  ")
	if !errors.Is(err, task.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if stdout != "" {
		t.Fatalf("expected no stdout for failed add, got %q", stdout)
	}
}

func TestAddCollapsesWhitespace(t *testing.T) {
	setupCLI(t)

	addTask(t, "Buy\nmilk", " and\teggs ")

	items := listTasksJSON(t)
	if len(items) != 1 || items[0].Text != "Buy milk and eggs" {
		t.Fatalf("expected whitespace collapsed to single spaces, got %+v", items)
	}
}

func TestAddWithoutTextRequiresTerminal(t *testing.T) {
	setupCLI(t)
	t.Setenv("EDITOR", "false")

	_, _, err := runCLI(t, "add")
	if err == nil || !strings.Contains(err.Error(), "task text is required") {
		t.Fatalf("expected text required error without a terminal, got %v", err)
	}
	if items := listTasksJSON(t); len(items) != 0 {
		t.Fatalf("expected nothing added, got %+v", items)
	}
}

func TestListSkipsStoredNonPositiveIDs(t *testing.T) {
	setupCLI(t)

	record := `[{"id":0,"text":"zero","category":"Work","completed":false},{"id":-4,"text":"negative","category":"Work","completed":false},{"id":12,"text":"kept","category":"Work","completed":false}]`
	path := filepath.Join(os.Getenv(config.DataDirEnv), task.KeyTasks+".json")
	if err := os.WriteFile(path, []byte(record), 0o644); err != nil {
		t.Fatalf("seed tasks: %v", err)
	}

	items := listTasksJSON(t)
	if len(items) != 1 || items[0].ID != 12 {
		t.Fatalf("expected only the positive id listed, got %+v", items)
	}
	if _, _, err := runCLI(t, "toggle", "12"); err != nil {
		t.Fatalf("toggle listed task: %v", err)
	}
}

func TestLifecycleCommands(t *testing.T) {
	setupCLI(t)

	first := addTask(t, "first")
	second := addTask(t, "second")
	if second <= first {
		t.Fatalf("expected increasing ids, got %d then %d", first, second)
	}

	stdout, _, err := runCLI(t, "done", strconv.FormatInt(first, 10))
	if err != nil || strings.TrimSpace(stdout) != task.MessageUpdated {
		t.Fatalf("toggle: %q %v", stdout, err)
	}
	if items := listTasksJSON(t, "--tab", "completed"); len(items) != 1 || items[0].ID != first {
		t.Fatalf("expected first completed, got %+v", items)
	}

	if _, _, err := runCLI(t, "rm", strconv.FormatInt(first, 10), strconv.FormatInt(second, 10)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	deleted := listTasksJSON(t, "--tab", "deleted")
	if len(deleted) != 2 || !deleted[0].Completed {
		t.Fatalf("expected both deleted with completion kept, got %+v", deleted)
	}

	if _, _, err := runCLI(t, "purge", strconv.FormatInt(second, 10)); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if _, _, err := runCLI(t, "restore", strconv.FormatInt(first, 10)); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if items := listTasksJSON(t, "--tab", "completed"); len(items) != 1 || items[0].ID != first {
		t.Fatalf("expected restored task completed, got %+v", items)
	}

	_, _, err = runCLI(t, "restore", strconv.FormatInt(second, 10))
	if !errors.Is(err, task.ErrTaskNotFound) {
		t.Fatalf("expected purged task to be gone, got %v", err)
	}
}

func TestTaskActionStopsAtFirstFailure(t *testing.T) {
	setupCLI(t)

	first := addTask(t, "first")
	second := addTask(t, "second")

	_, _, err := runCLI(t, "delete", strconv.FormatInt(first, 10), "999", strconv.FormatInt(second, 10))
	if !errors.Is(err, task.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if items := listTasksJSON(t); len(items) != 1 || items[0].ID != second {
		t.Fatalf("expected only first deleted, got %+v", items)
	}
}

func TestInvalidIDsRejectedBeforeOpening(t *testing.T) {
	setupCLI(t)

	for _, arg := range []string{"abc", "-5", "0", "1.5"} {
		_, _, err := runCLI(t, "toggle", "--", arg)
		if err == nil || !strings.Contains(err.Error(), "invalid task id") {
			t.Fatalf("expected invalid id error for %q, got %v", arg, err)
		}
	}
}

func TestPurgeAllCommand(t *testing.T) {
	setupCLI(t)

	id := addTask(t, "gone")
	if _, _, err := runCLI(t, "delete", strconv.FormatInt(id, 10)); err != nil {
		t.Fatalf("delete: %v", err)
	}

	stdout, _, err := runCLI(t, "purge", "--all")
	if err != nil || strings.TrimSpace(stdout) != task.MessagePurgeAll {
		t.Fatalf("purge --all: %q %v", stdout, err)
	}

	_, _, err = runCLI(t, "purge", "--all")
	if !errors.Is(err, task.ErrNothingToPurge) {
		t.Fatalf("expected ErrNothingToPurge, got %v", err)
	}
}

func TestListAllJSONUsesPersistedKeys(t *testing.T) {
	setupCLI(t)

	addTask(t, "kept")
	id := addTask(t, "tossed")
	if _, _, err := runCLI(t, "delete", strconv.FormatInt(id, 10)); err != nil {
		t.Fatalf("delete: %v", err)
	}

	stdout, _, err := runCLI(t, "list", "--all", "--json")
	if err != nil {
		t.Fatalf("list --all: %v", err)
	}
	var snapshot export.Snapshot
	if err := json.Unmarshal([]byte(stdout), &snapshot); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snapshot.Tasks) != 1 || len(snapshot.DeletedTasks) != 1 || snapshot.DeletedTasks[0].ID != id {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
}

func TestRootPrintsActiveTabWithoutTerminal(t *testing.T) {
	setupCLI(t)

	stdout, _, err := runCLI(t)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if strings.TrimSpace(stdout) != emptyListMessage {
		t.Fatalf("expected empty message, got %q", stdout)
	}

	addTask(t, "Stretch")
	stdout, _, err = runCLI(t)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if !strings.Contains(stdout, "Stretch") {
		t.Fatalf("expected task in output, got %q", stdout)
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"1", " 1718000000000 "})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 1718000000000 {
		t.Fatalf("unexpected ids %v", ids)
	}

	if _, err := parseIDs([]string{"1", "x"}); err == nil || !strings.Contains(err.Error(), `"x"`) {
		t.Fatalf("expected error naming bad id, got %v", err)
	}
}

func TestFormatTaskTable(t *testing.T) {
	items := []task.Task{
		{ID: 1718000000000, Text: "Buy milk", Category: task.CategoryShopping},
		{ID: 1718000000001, Text: "Run", Category: task.CategoryFitness, Completed: true},
	}

	got := formatTaskTable(items, false)
	want := strings.Join([]string{
		"ID             CATEGORY  DONE  TEXT",
		"1718000000000  Shopping  no    Buy milk",
		"1718000000001  Fitness   yes   Run",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected table:\n%s\nwant:\n%s", got, want)
	}
}

func TestResolveExportFormat(t *testing.T) {
	cases := []struct {
		flag   string
		output string
		want   export.Format
	}{
		{"", "", export.FormatJSON},
		{"", "tasks.pdf", export.FormatPDF},
		{"", "tasks.txt", export.FormatJSON},
		{"csv", "tasks.pdf", export.FormatCSV},
		{"markdown", "", export.FormatMarkdown},
	}
	for _, tc := range cases {
		got, err := resolveExportFormat(tc.flag, tc.output)
		if err != nil {
			t.Fatalf("resolve(%q, %q): %v", tc.flag, tc.output, err)
		}
		if got != tc.want {
			t.Fatalf("resolve(%q, %q) = %q, want %q", tc.flag, tc.output, got, tc.want)
		}
	}

	if _, err := resolveExportFormat("xml", ""); !errors.Is(err, export.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
