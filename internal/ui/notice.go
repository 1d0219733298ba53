package ui

import (
	"fmt"
	"io"

	"github.com/amonks/taskmate/task"
	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

// NoticeStyle returns the style used for notices at level.
func NoticeStyle(level task.NoticeLevel) lipgloss.Style {
	switch level {
	case task.NoticeSuccess:
		return successStyle
	case task.NoticeWarning:
		return warningStyle
	case task.NoticeError:
		return errorStyle
	default:
		return infoStyle
	}
}

// FormatNotice renders a notice as a single line, styled when color is true.
func FormatNotice(notice task.Notice, color bool) string {
	if !color {
		return notice.Message
	}
	return NoticeStyle(notice.Level).Render(notice.Message)
}

// FormatDone renders completed task text, struck through when color is true.
func FormatDone(text string, color bool) string {
	if !color {
		return text
	}
	return doneStyle.Render(text)
}

// NoticePrinter writes store notices to the terminal.
// Success and info notices go to Out; warnings go to Err.
// Error notices are skipped because the failing command reports the error itself.
type NoticePrinter struct {
	Out   io.Writer
	Err   io.Writer
	Color bool
}

// NewNoticePrinter returns a printer with color detected from out.
func NewNoticePrinter(out, errOut io.Writer) *NoticePrinter {
	return &NoticePrinter{Out: out, Err: errOut, Color: ANSIEnabled(out)}
}

// Notify implements task.Notifier.
func (printer *NoticePrinter) Notify(notice task.Notice) {
	switch notice.Level {
	case task.NoticeError:
		return
	case task.NoticeWarning:
		if printer.Err != nil {
			fmt.Fprintf(printer.Err, "warning: %s\n", FormatNotice(notice, printer.Color))
		}
	default:
		if printer.Out != nil {
			fmt.Fprintln(printer.Out, FormatNotice(notice, printer.Color))
		}
	}
}
