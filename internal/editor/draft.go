package editor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	internalstrings "github.com/amonks/taskmate/internal/strings"
	"github.com/amonks/taskmate/internal/validation"
	"github.com/amonks/taskmate/task"
)

// Draft is a task being written in the editor.
type Draft struct {
	Category task.Category
	Text     string
}

var draftTemplate = template.Must(template.New("draft").Parse(`category = {{ printf "%q" .Category }} # {{ .Categories }}
---
{{ .Text }}
`))

// RenderDraft renders a draft as TOML frontmatter followed by the task text.
func RenderDraft(draft Draft) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Draft
		Categories string
	}{draft, validation.FormatValidValues(task.ValidCategories())}
	if err := draftTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

type draftFrontmatter struct {
	Category string `toml:"category"`
}

// ParseDraft parses editor output. Lines of the body are joined with single
// spaces; the category is matched case-insensitively.
func ParseDraft(content string) (Draft, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed draftFrontmatter
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return Draft{}, fmt.Errorf("parse TOML: %w", err)
	}
	category, err := task.ParseCategory(parsed.Category)
	if err != nil {
		return Draft{}, err
	}
	text, err := task.ValidateText(internalstrings.NormalizeWhitespace(body))
	if err != nil {
		return Draft{}, err
	}
	return Draft{Category: category, Text: text}, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(internalstrings.NormalizeNewlines(content), "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return content, ""
}

func createDraftTempFile() (*os.File, error) {
	return os.CreateTemp("", "taskmate-task-*.md")
}

// EditDraft opens the editor on draft, attached to the given streams, and
// returns the parsed result.
func EditDraft(draft Draft, in io.Reader, out, errOut io.Writer) (Draft, error) {
	content, err := RenderDraft(draft)
	if err != nil {
		return Draft{}, err
	}

	tmpFile, err := createDraftTempFile()
	if err != nil {
		return Draft{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return Draft{}, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return Draft{}, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath, in, out, errOut); err != nil {
		return Draft{}, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return Draft{}, fmt.Errorf("read edited file: %w", err)
	}
	return ParseDraft(string(edited))
}
