// Package export writes snapshots of both task lists in portable formats.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/amonks/taskmate/task"
	"github.com/jung-kurt/gofpdf"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
)

// ErrUnknownFormat reports an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatPDF, FormatMarkdown}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "markdown" {
		return FormatMarkdown, nil
	}
	for _, format := range Formats() {
		if string(format) == normalized {
			return format, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, value)
}

// FormatForPath infers a format from a file extension.
func FormatForPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	format, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return format, true
}

// Source provides both task lists.
type Source interface {
	Tasks() []task.Task
	Deleted() []task.Task
}

// Snapshot is a point-in-time copy of both lists. Its JSON form uses the
// persisted key names.
type Snapshot struct {
	Tasks        []task.Task `json:"tasks"`
	DeletedTasks []task.Task `json:"deletedTasks"`
}

// Take copies both lists from source.
func Take(source Source) Snapshot {
	snapshot := Snapshot{Tasks: source.Tasks(), DeletedTasks: source.Deleted()}
	if snapshot.Tasks == nil {
		snapshot.Tasks = []task.Task{}
	}
	if snapshot.DeletedTasks == nil {
		snapshot.DeletedTasks = []task.Task{}
	}
	return snapshot
}

// Tab returns the tasks of snapshot visible under tab, in list order.
func (snapshot Snapshot) Tab(tab task.Tab) []task.Task {
	var items []task.Task
	list, deleted := snapshot.Tasks, false
	if tab == task.TabDeleted {
		list, deleted = snapshot.DeletedTasks, true
	}
	for _, item := range list {
		if tab.Shows(item, deleted) {
			items = append(items, item)
		}
	}
	return items
}

// Write encodes snapshot to w.
func Write(w io.Writer, format Format, snapshot Snapshot) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, snapshot)
	case FormatCSV:
		return writeCSV(w, snapshot)
	case FormatPDF:
		return writePDF(w, snapshot)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(snapshot))
		return err
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// Bytes encodes snapshot and returns the result.
func Bytes(format Format, snapshot Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, format, snapshot); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(w io.Writer, snapshot Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snapshot)
}

var csvHeader = []string{"list", "id", "text", "category", "completed"}

func writeCSV(w io.Writer, snapshot Snapshot) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	lists := []struct {
		name  string
		items []task.Task
	}{
		{task.KeyTasks, snapshot.Tasks},
		{task.KeyDeletedTasks, snapshot.DeletedTasks},
	}
	for _, list := range lists {
		for _, item := range list.items {
			record := []string{
				list.name,
				strconv.FormatInt(item.ID, 10),
				item.Text,
				string(item.Category),
				strconv.FormatBool(item.Completed),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func writePDF(w io.Writer, snapshot Snapshot) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Tasks", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)

	for _, tab := range task.ValidTabs() {
		items := snapshot.Tab(tab)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 8, fmt.Sprintf("%s (%d)", tab, len(items)))
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 10)
		if len(items) == 0 {
			pdf.MultiCell(0, 6, "No tasks.", "0", "L", false)
		}
		for _, item := range items {
			line := fmt.Sprintf("[%s] %s", item.Category, item.Text)
			pdf.MultiCell(0, 6, tr(line), "0", "L", false)
		}
		pdf.Ln(4)
	}
	return pdf.Output(w)
}
