package export

import (
	"fmt"
	"strings"

	"github.com/amonks/taskmate/task"
)

// Markdown renders a summary report of snapshot.
func Markdown(snapshot Snapshot) string {
	var b strings.Builder
	b.WriteString("# Tasks\n\n")

	tabs := task.ValidTabs()
	counts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		counts = append(counts, fmt.Sprintf("%s: %d", tab, len(snapshot.Tab(tab))))
	}
	b.WriteString(strings.Join(counts, ", "))
	b.WriteString("\n\n")

	byCategory := make(map[task.Category]int)
	for _, item := range snapshot.Tasks {
		byCategory[item.Category]++
	}
	if len(snapshot.Tasks) > 0 {
		b.WriteString("## Categories\n\n")
		for _, category := range task.ValidCategories() {
			if n := byCategory[category]; n > 0 {
				fmt.Fprintf(&b, "- %s: %d\n", category, n)
			}
		}
		b.WriteString("\n")
	}

	for _, tab := range tabs {
		items := snapshot.Tab(tab)
		fmt.Fprintf(&b, "## %s\n\n", tab)
		if len(items) == 0 {
			b.WriteString("No tasks.\n\n")
			continue
		}
		for _, item := range items {
			fmt.Fprintf(&b, "- %s (%s)\n", escapeMarkdown(item.Text), item.Category)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
)

func escapeMarkdown(value string) string {
	return markdownEscaper.Replace(value)
}
