package editor

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/amonks/taskmate/task"
)

func TestRenderDraft(t *testing.T) {
	got, err := RenderDraft(Draft{Category: task.CategoryWork, Text: "Write report"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "category = \"Work\" # Work, Personal, Shopping, Fitness, Other\n---\nWrite report\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseDraftRoundTrip(t *testing.T) {
	rendered, err := RenderDraft(Draft{Category: task.CategoryFitness, Text: "Run 5k"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	parsed, err := ParseDraft(rendered)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Category != task.CategoryFitness || parsed.Text != "Run 5k" {
		t.Fatalf("unexpected draft %+v", parsed)
	}
}

func TestParseDraftJoinsLines(t *testing.T) {
	parsed, err := ParseDraft("category = \"shopping\"\r\n---\r\n\r\nBuy milk\r\n  and eggs\r\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Category != task.CategoryShopping || parsed.Text != "Buy milk and eggs" {
		t.Fatalf("unexpected draft %+v", parsed)
	}
}

func TestParseDraftErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{name: "empty text", content: "category = \"Work\"\n---\n   \n", target: task.ErrEmptyText},
		{name: "no body", content: "category = \"Work\"\n", target: task.ErrEmptyText},
		{name: "bad category", content: "category = \"Chores\"\n---\nSweep\n", target: task.ErrInvalidCategory},
		{name: "missing category", content: "---\nSweep\n", target: task.ErrInvalidCategory},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDraft(tc.content)
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
		})
	}

	if _, err := ParseDraft("category = \n---\nSweep\n"); err == nil || !strings.Contains(err.Error(), "parse TOML") {
		t.Fatalf("expected TOML error, got %v", err)
	}
}

func TestCreateDraftTempFileExtension(t *testing.T) {
	file, err := createDraftTempFile()
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	t.Cleanup(func() {
		file.Close()
		os.Remove(file.Name())
	})
	if filepath.Ext(file.Name()) != ".md" {
		t.Fatalf("expected .md extension, got %q", file.Name())
	}
}

func TestEditDraftUsesEditor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell editor script requires a POSIX shell")
	}

	script := filepath.Join(t.TempDir(), "editor.sh")
	body := "#!/bin/sh\nprintf 'category = \"Personal\"\\n---\\nCall mom\\n' > \"$1\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write editor script: %v", err)
	}
	t.Setenv("EDITOR", script)

	draft, err := EditDraft(Draft{Category: task.CategoryOther}, strings.NewReader(""), io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if draft.Category != task.CategoryPersonal || draft.Text != "Call mom" {
		t.Fatalf("unexpected draft %+v", draft)
	}
}

func TestEditReportsEditorFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell editor script requires a POSIX shell")
	}

	script := filepath.Join(t.TempDir(), "editor.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho 'cannot open' >&2\nexit 3\n"), 0o755); err != nil {
		t.Fatalf("write editor script: %v", err)
	}
	t.Setenv("EDITOR", script)

	var errOut bytes.Buffer
	err := Edit(filepath.Join(t.TempDir(), "draft.md"), strings.NewReader(""), io.Discard, &errOut)
	if err == nil || !strings.Contains(err.Error(), "status 3") {
		t.Fatalf("expected exit status error, got %v", err)
	}
	if !strings.Contains(errOut.String(), "cannot open") {
		t.Fatalf("expected editor stderr on the given writer, got %q", errOut.String())
	}
}

func TestCommandFallsBackToDefault(t *testing.T) {
	t.Setenv("EDITOR", "")
	if got := Command(); got != DefaultEditor {
		t.Fatalf("Command() = %q, want %q", got, DefaultEditor)
	}
	t.Setenv("EDITOR", "nano")
	if got := Command(); got != "nano" {
		t.Fatalf("Command() = %q, want nano", got)
	}
}
