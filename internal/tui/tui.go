// Package tui is the interactive terminal interface for a task store.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	internalstrings "github.com/amonks/taskmate/internal/strings"
	"github.com/amonks/taskmate/task"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const (
	appTitle         = "TaskMate"
	emptyListText    = "No tasks available."
	inputPlaceholder = "Enter a new task..."
	modalWrapWidth   = 48

	// Chrome rows around the list pane: title and tabs, input, help, status,
	// and the pane border.
	chromeHeight = 6

	shortStatusTTL = 2 * time.Second
	longStatusTTL  = 4 * time.Second
)

type focusArea int

const (
	focusList focusArea = iota
	focusInput
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalCategory
	modalPurge
	modalPurgeAll
)

// Options configures the interface.
type Options struct {
	// Tab is shown first. Defaults to Active.
	Tab task.Tab
	// Category is preselected in the category chooser. Defaults to Other.
	Category task.Category
}

type model struct {
	store           *task.Store
	inbox           *noticeInbox
	width           int
	height          int
	tab             task.Tab
	focus           focusArea
	list            list.Model
	input           textinput.Model
	modal           modal
	defaultCategory task.Category
	selectedID      int64
	status          string
	statusLevel     task.NoticeLevel
	statusSeq       int
}

type modal struct {
	kind        modalKind
	message     string
	confirmText string
	cancelText  string
	selected    int
	targetID    int64
}

// Run starts the interface on the terminal and blocks until the user quits
// or ctx is cancelled. Store notices are shown on the status line while the
// interface runs.
func Run(ctx context.Context, store *task.Store, opts Options, programOpts ...tea.ProgramOption) error {
	if store == nil {
		return fmt.Errorf("task store is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	inbox := &noticeInbox{}
	store.SetNotifier(inbox)
	defer store.SetNotifier(nil)

	programOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)
	program := tea.NewProgram(newModel(store, inbox, opts), programOpts...)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func newModel(store *task.Store, inbox *noticeInbox, opts Options) model {
	taskList := list.New(nil, taskItemDelegate{}, 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetFilteringEnabled(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = inputPlaceholder
	input.CharLimit = task.MaxTextLength

	tab := opts.Tab
	if !tab.IsValid() {
		tab = task.TabActive
	}
	category := opts.Category
	if !category.IsValid() {
		category = task.CategoryOther
	}

	m := model{
		store:           store,
		inbox:           inbox,
		tab:             tab,
		focus:           focusList,
		list:            taskList,
		input:           input,
		defaultCategory: category,
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	case tea.KeyMsg:
		if m.modal.kind != modalNone {
			return m.updateModal(msg)
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	listContent := m.list.View()
	if len(m.list.Items()) == 0 {
		listContent = valueMuted.Render(emptyListText)
	}
	paneHeight := max(m.height-chromeHeight, 1)
	pane := paneStyle
	if m.focus == focusList {
		pane = paneActiveStyle
	}
	content := pane.Width(max(m.width-2, 0)).Height(paneHeight).Render(listContent)

	view := strings.Join([]string{
		m.renderTabs(),
		m.input.View(),
		content,
		m.renderHelpLine(),
		m.renderStatusLine(),
	}, "\n")
	if m.modal.kind != modalNone {
		view = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
	}
	return view
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.modal = modal{kind: modalHelp}
		return m, nil
	case "1":
		return m.activateTab(task.TabActive), nil
	case "2":
		return m.activateTab(task.TabCompleted), nil
	case "3":
		return m.activateTab(task.TabDeleted), nil
	case "tab", "]":
		return m.switchTab(1), nil
	case "shift+tab", "[":
		return m.switchTab(-1), nil
	case "up", "k":
		return m.moveSelection(-1), nil
	case "down", "j":
		return m.moveSelection(1), nil
	case "home", "g":
		return m.moveSelection(-len(m.list.Items())), nil
	case "end", "G":
		return m.moveSelection(len(m.list.Items())), nil
	case "n", "a":
		return m.focusInput()
	case " ", "space", "x":
		return m.toggleSelected()
	case "d", "delete":
		return m.deleteSelected()
	case "r":
		return m.restoreSelected()
	case "p":
		return m.promptPurge(), nil
	case "P":
		return m.promptPurgeAll(), nil
	}
	return m, nil
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.input.Blur()
		m.focus = focusList
		return m, nil
	case "enter":
		return m.openCategoryChooser(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) focusInput() (tea.Model, tea.Cmd) {
	m.focus = focusInput
	return m, m.input.Focus()
}

func (m model) openCategoryChooser() model {
	selected := 0
	for i, category := range task.ValidCategories() {
		if category == m.defaultCategory {
			selected = i
		}
	}
	m.modal = modal{kind: modalCategory, selected: selected}
	return m
}

func (m model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal.kind {
	case modalHelp:
		switch msg.String() {
		case "?", "esc":
			m.modal = modal{}
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	case modalCategory:
		return m.updateCategoryChooser(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "left", "right", "tab", "shift+tab", "h", "l":
		m.modal.selected = 1 - m.modal.selected
		return m, nil
	case "y":
		return m.resolveModal(true)
	case "n", "esc":
		return m.resolveModal(false)
	case "enter":
		return m.resolveModal(m.modal.selected == 0)
	}
	return m, nil
}

func (m model) updateCategoryChooser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	categories := task.ValidCategories()
	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.modal = modal{}
		return m, nil
	case "up", "k", "shift+tab":
		m.modal.selected = (m.modal.selected + len(categories) - 1) % len(categories)
		return m, nil
	case "down", "j", "tab":
		m.modal.selected = (m.modal.selected + 1) % len(categories)
		return m, nil
	case "enter":
		return m.addDraft(categories[m.modal.selected])
	}
	if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(categories) {
		return m.addDraft(categories[key[0]-'1'])
	}
	return m, nil
}

func (m model) addDraft(category task.Category) (tea.Model, tea.Cmd) {
	created, err := m.store.Add(m.input.Value(), category)
	if err != nil {
		if !errors.Is(err, task.ErrValidation) {
			m.modal = modal{}
		}
		return m, m.takeNotices()
	}
	m.modal = modal{}
	m.input.Reset()
	m.selectedID = created.ID
	m.refresh()
	return m, m.takeNotices()
}

func (m model) resolveModal(confirm bool) (tea.Model, tea.Cmd) {
	current := m.modal
	m.modal = modal{}
	if !confirm {
		return m, nil
	}
	var err error
	switch current.kind {
	case modalPurge:
		err = m.store.Purge(current.targetID)
	case modalPurgeAll:
		_, err = m.store.PurgeAll()
	default:
		return m, nil
	}
	return m.afterMutation(err)
}

// afterMutation refreshes the list when the store changed and shows the
// resulting notice either way.
func (m model) afterMutation(err error) (tea.Model, tea.Cmd) {
	if err == nil {
		m.refresh()
	}
	return m, m.takeNotices()
}

func (m model) toggleSelected() (tea.Model, tea.Cmd) {
	item, ok := m.currentItem()
	if !ok || item.deleted {
		return m, nil
	}
	_, err := m.store.Toggle(item.task.ID)
	return m.afterMutation(err)
}

func (m model) deleteSelected() (tea.Model, tea.Cmd) {
	item, ok := m.currentItem()
	if !ok || item.deleted {
		return m, nil
	}
	return m.afterMutation(m.store.Delete(item.task.ID))
}

func (m model) restoreSelected() (tea.Model, tea.Cmd) {
	item, ok := m.currentItem()
	if !ok || !item.deleted {
		return m, nil
	}
	return m.afterMutation(m.store.Restore(item.task.ID))
}

func (m model) promptPurge() model {
	item, ok := m.currentItem()
	if !ok || !item.deleted {
		return m
	}
	stored, tab, found := m.store.Find(item.task.ID)
	if !found || tab != task.TabDeleted {
		m.refresh()
		return m
	}
	m.modal = modal{
		kind:        modalPurge,
		message:     fmt.Sprintf("Permanently delete %q?", stored.Text),
		confirmText: "Delete",
		cancelText:  "Cancel",
		selected:    1,
		targetID:    stored.ID,
	}
	return m
}

func (m model) promptPurgeAll() model {
	if m.tab != task.TabDeleted {
		return m
	}
	count := m.store.Counts().Deleted
	if count == 0 {
		return m
	}
	noun := "tasks"
	if count == 1 {
		noun = "task"
	}
	m.modal = modal{
		kind:        modalPurgeAll,
		message:     fmt.Sprintf("Permanently delete %d deleted %s?", count, noun),
		confirmText: "Delete all",
		cancelText:  "Cancel",
		selected:    1,
	}
	return m
}

// takeNotices shows the most severe pending store notice on the status line.
func (m *model) takeNotices() tea.Cmd {
	notices := m.inbox.drain()
	if len(notices) == 0 {
		return nil
	}
	shown := notices[0]
	for _, notice := range notices[1:] {
		if notice.Level >= shown.Level {
			shown = notice
		}
	}
	return m.setStatus(shown.Message, shown.Level)
}

func (m *model) setStatus(text string, level task.NoticeLevel) tea.Cmd {
	m.status = text
	m.statusLevel = level
	m.statusSeq++
	seq := m.statusSeq
	ttl := shortStatusTTL
	if level >= task.NoticeWarning {
		ttl = longStatusTTL
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m model) activateTab(target task.Tab) model {
	if target == m.tab {
		return m
	}
	m.tab = target
	m.selectedID = 0
	m.refresh()
	return m
}

func (m model) switchTab(delta int) model {
	tabs := task.ValidTabs()
	current := 0
	for i, tab := range tabs {
		if tab == m.tab {
			current = i
		}
	}
	next := (current + delta + len(tabs)) % len(tabs)
	return m.activateTab(tabs[next])
}

func (m model) moveSelection(delta int) model {
	items := m.list.Items()
	if len(items) == 0 {
		return m
	}
	next := min(max(m.list.Index()+delta, 0), len(items)-1)
	m.list.Select(next)
	if item, ok := m.currentItem(); ok {
		m.selectedID = item.task.ID
	}
	return m
}

// refresh rebuilds the list from the store, keeping the selected task when
// it is still visible and otherwise keeping the cursor position.
func (m *model) refresh() {
	deleted := m.tab == task.TabDeleted
	index := m.list.Index()
	items := make([]list.Item, 0)
	selected := -1
	for item := range m.store.View(m.tab) {
		if item.ID == m.selectedID {
			selected = len(items)
		}
		items = append(items, taskItem{task: item, deleted: deleted})
	}
	m.list.SetItems(items)
	if len(items) == 0 {
		m.selectedID = 0
		return
	}
	if selected < 0 {
		selected = min(max(index, 0), len(items)-1)
	}
	m.list.Select(selected)
	if item, ok := m.currentItem(); ok {
		m.selectedID = item.task.ID
	}
}

func (m model) currentItem() (taskItem, bool) {
	item := m.list.SelectedItem()
	if item == nil {
		return taskItem{}, false
	}
	current, ok := item.(taskItem)
	return current, ok
}

func (m *model) resize() {
	m.list.SetSize(max(m.width-6, 1), max(m.height-chromeHeight, 1))
	m.input.Width = max(m.width-len(m.input.Prompt)-1, 1)
}

func (m model) renderTabs() string {
	counts := m.store.Counts()
	tallies := map[task.Tab]int{
		task.TabActive:    counts.Active,
		task.TabCompleted: counts.Completed,
		task.TabDeleted:   counts.Deleted,
	}
	parts := []string{titleStyle.Render(appTitle)}
	for i, tab := range task.ValidTabs() {
		style := tabInactiveStyle
		if tab == m.tab {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%d] %s (%d)", i+1, tab, tallies[tab])))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	helpHint := valueMuted.Render("Press ? for help")
	spacer := strings.Repeat(" ", max(m.width-lipgloss.Width(content)-lipgloss.Width(helpHint), 1))
	return tabBarStyle.Width(m.width).Render(content + spacer + helpHint)
}

func (m model) renderHelpLine() string {
	return helpBarStyle.Width(m.width).Render(truncateText(m.helpSummary(), m.width))
}

func (m model) helpSummary() string {
	if m.focus == focusInput {
		return "Keys: enter choose category | esc back to list | ctrl+c quit"
	}
	if m.tab == task.TabDeleted {
		return "Keys: up/down move | r restore | p delete permanently | P purge all | tab switch tabs | ? help | q quit"
	}
	return "Keys: up/down move | n new | space toggle | d delete | tab switch tabs | ? help | q quit"
}

func (m model) renderStatusLine() string {
	if internalstrings.IsBlank(m.status) {
		return ""
	}
	return statusStyle(m.statusLevel).Render(truncateText(m.status, m.width))
}

func statusStyle(level task.NoticeLevel) lipgloss.Style {
	switch level {
	case task.NoticeSuccess:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case task.NoticeWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case task.NoticeError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	default:
		return valueMuted
	}
}

func (m model) modalView() string {
	switch m.modal.kind {
	case modalHelp:
		return modalStyle.Render(helpContent())
	case modalCategory:
		return modalStyle.Render(m.categoryContent())
	}
	buttons := make([]string, 0, 2)
	for i, option := range []string{m.modal.confirmText, m.modal.cancelText} {
		style := valueMuted
		if i == m.modal.selected {
			style = buttonStyle
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	message := wordwrap.String(m.modal.message, modalWrapWidth)
	content := strings.Join([]string{message, "", strings.Join(buttons, " ")}, "\n")
	return modalStyle.Render(content)
}

func (m model) categoryContent() string {
	lines := []string{labelStyle.Render("Choose Category"), ""}
	for i, category := range task.ValidCategories() {
		line := fmt.Sprintf("%d. %s", i+1, category)
		if i == m.modal.selected {
			lines = append(lines, selectedStyle.Render("> "+line))
			continue
		}
		lines = append(lines, "  "+categoryStyle.Render(line))
	}
	lines = append(lines, "", valueMuted.Render("enter or 1-5 add | esc cancel"))
	return strings.Join(lines, "\n")
}

func helpContent() string {
	sections := []string{
		labelStyle.Render("Global"),
		"q or ctrl+c: quit",
		"1/2/3, [ or ], tab: switch tabs",
		"?: toggle help",
		"",
		labelStyle.Render("Tasks"),
		"up/down or j/k: move selection",
		"n or a: type a new task, then enter to choose its category",
		"space or x: mark the selected task done or not done",
		"d: move the selected task to Deleted",
		"",
		labelStyle.Render("Deleted"),
		"r: restore the selected task",
		"p: delete the selected task permanently",
		"P: delete every deleted task permanently",
		"",
		labelStyle.Render("Help"),
		"press ? or esc to close",
	}
	for i, line := range sections {
		sections[i] = wordwrap.String(line, modalWrapWidth)
	}
	return strings.Join(sections, "\n")
}

type clearStatusMsg struct {
	seq int
}
