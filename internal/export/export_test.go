package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/amonks/taskmate/task"
)

type fixedSource struct {
	active  []task.Task
	deleted []task.Task
}

func (s fixedSource) Tasks() []task.Task   { return s.active }
func (s fixedSource) Deleted() []task.Task { return s.deleted }

func sampleSnapshot() Snapshot {
	return Take(fixedSource{
		active: []task.Task{
			{ID: 1, Text: "Buy milk", Category: task.CategoryShopping},
			{ID: 2, Text: "Write report, draft 2", Category: task.CategoryWork, Completed: true},
		},
		deleted: []task.Task{
			{ID: 3, Text: "Run 5k", Category: task.CategoryFitness},
		},
	})
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"json":     FormatJSON,
		" CSV ":    FormatCSV,
		"Pdf":      FormatPDF,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
	}
	for input, want := range cases {
		got, err := ParseFormat(input)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestFormatForPath(t *testing.T) {
	if format, ok := FormatForPath("out/tasks.CSV"); !ok || format != FormatCSV {
		t.Fatalf("expected csv, got %q %v", format, ok)
	}
	if _, ok := FormatForPath("tasks"); ok {
		t.Fatalf("expected no format without extension")
	}
	if _, ok := FormatForPath("tasks.xml"); ok {
		t.Fatalf("expected no format for unknown extension")
	}
}

func TestTakeUsesEmptyLists(t *testing.T) {
	snapshot := Take(fixedSource{})
	data, err := Bytes(FormatJSON, snapshot)
	if err != nil {
		t.Fatalf("export json: %v", err)
	}
	if got := string(data); got != "{\n  \"tasks\": [],\n  \"deletedTasks\": []\n}\n" {
		t.Fatalf("unexpected json %q", got)
	}
}

func TestSnapshotTab(t *testing.T) {
	snapshot := sampleSnapshot()
	cases := map[task.Tab][]int64{
		task.TabActive:    {1},
		task.TabCompleted: {2},
		task.TabDeleted:   {3},
	}
	for tab, want := range cases {
		items := snapshot.Tab(tab)
		if len(items) != len(want) {
			t.Fatalf("%s: expected %d items, got %d", tab, len(want), len(items))
		}
		for i, item := range items {
			if item.ID != want[i] {
				t.Fatalf("%s: expected id %d at %d, got %d", tab, want[i], i, item.ID)
			}
		}
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	snapshot := sampleSnapshot()
	data, err := Bytes(FormatJSON, snapshot)
	if err != nil {
		t.Fatalf("export json: %v", err)
	}

	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Tasks) != 2 || len(decoded.DeletedTasks) != 1 {
		t.Fatalf("unexpected decoded snapshot %+v", decoded)
	}
	if decoded.Tasks[1] != snapshot.Tasks[1] {
		t.Fatalf("expected %+v, got %+v", snapshot.Tasks[1], decoded.Tasks[1])
	}
}

func TestWriteCSV(t *testing.T) {
	data, err := Bytes(FormatCSV, sampleSnapshot())
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := [][]string{
		{"list", "id", "text", "category", "completed"},
		{"tasks", "1", "Buy milk", "Shopping", "false"},
		{"tasks", "2", "Write report, draft 2", "Work", "true"},
		{"deletedTasks", "3", "Run 5k", "Fitness", "false"},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i := range want {
		if strings.Join(records[i], "|") != strings.Join(want[i], "|") {
			t.Fatalf("record %d: expected %q, got %q", i, want[i], records[i])
		}
	}
}

func TestWritePDF(t *testing.T) {
	data, err := Bytes(FormatPDF, sampleSnapshot())
	if err != nil {
		t.Fatalf("export pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected pdf header, got %q", data[:min(len(data), 16)])
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, Format("xml"), sampleSnapshot()); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestMarkdownSummary(t *testing.T) {
	report := Markdown(sampleSnapshot())

	for _, want := range []string{
		"# Tasks\n",
		"Active: 1, Completed: 1, Deleted: 1",
		"- Shopping: 1\n- Work: 1\n",
		"## Active\n\n- Buy milk (Shopping)\n",
		"## Completed\n\n- Write report, draft 2 (Work)\n",
		"## Deleted\n\n- Run 5k (Fitness)\n",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("expected %q in report:\n%s", want, report)
		}
	}
}

func TestMarkdownEmptyTabs(t *testing.T) {
	report := Markdown(Take(fixedSource{}))

	if strings.Contains(report, "## Categories") {
		t.Fatalf("expected no categories section:\n%s", report)
	}
	if strings.Count(report, "No tasks.") != 3 {
		t.Fatalf("expected each tab to be empty:\n%s", report)
	}
}

func TestMarkdownEscapesText(t *testing.T) {
	report := Markdown(Take(fixedSource{active: []task.Task{
		{ID: 1, Text: "fix *all* the [links]", Category: task.CategoryWork},
	}}))

	if !strings.Contains(report, `- fix \*all\* the \[links\] (Work)`) {
		t.Fatalf("expected escaped text:\n%s", report)
	}
}
