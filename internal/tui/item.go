package tui

import (
	"fmt"
	"io"

	"github.com/amonks/taskmate/task"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

type taskItem struct {
	task    task.Task
	deleted bool
}

func (item taskItem) FilterValue() string {
	return item.task.Text
}

type taskItemDelegate struct{}

func (d taskItemDelegate) Height() int                             { return 1 }
func (d taskItemDelegate) Spacing() int                            { return 0 }
func (d taskItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(taskItem)
	if !ok {
		return
	}

	line := formatTaskItem(item, m.Width())
	style := normalStyle
	if index == m.Index() {
		style = selectedStyle
	} else if item.task.Completed {
		style = doneStyle
	}
	fmt.Fprint(w, style.Render(line))
}

func formatTaskItem(item taskItem, width int) string {
	mark := "[ ]"
	if item.task.Completed {
		mark = "[x]"
	}
	if item.deleted {
		mark = " - "
	}
	line := fmt.Sprintf("%s %s (%s)", mark, item.task.Text, item.task.Category)
	return truncateText(line, width)
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}
