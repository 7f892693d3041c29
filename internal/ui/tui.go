package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolist/internal/model"
)

// listItem adapts *model.Item to bubbles/list.Item. The pointer is shared
// with the backing model.List, so marks show up on the next render.
type listItem struct {
	item *model.Item
}

func (i listItem) Title() string       { return i.item.Title() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.item.Title() }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := Current()
	box := mutedStyle.Render(t.BoxUnchecked)
	text := it.item.Title()
	if it.item.IsDone() {
		box = successStyle.Render(t.BoxChecked)
		text = doneStyle.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

type modelTUI struct {
	list    list.Model
	todos   *model.List
	changed bool

	width, height int

	// Inline add
	adding bool
	ti     textinput.Model
	addErr string
}

var (
	addBind     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind  = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	removeBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
	allDoneBind = key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "all done"))
	allOpenBind = key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "all undone"))
)

func newModelTUI(todos *model.List) modelTUI {
	l := list.New(listItems(todos), itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	extra := func() []key.Binding {
		return []key.Binding{addBind, toggleBind, removeBind, allDoneBind, allOpenBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item title..."
	ti.CharLimit = 200

	m := modelTUI{list: l, todos: todos, ti: ti, width: 80, height: 24}
	m.refreshTitle()
	return m
}

// RunInteractive runs the interactive list over todos and reports whether
// anything changed. Persisting is the caller's job.
func RunInteractive(todos *model.List) (bool, error) {
	p := tea.NewProgram(newModelTUI(todos), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(modelTUI)
	if !ok {
		return false, nil
	}
	return fm.changed, nil
}

// Header title with live counts
func (m *modelTUI) refreshTitle() {
	d, p := m.todos.Stats()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render(m.todos.Label()),
		successStyle.Render("✔"), d,
		pendingStyle.Render("•"), p,
		accentStyle.Render("Total"), m.todos.Size(),
	)
}

// selected returns the backing-list position of the highlighted item.
// Positions in the bubbles list drift from the backing list once a filter
// is applied, so the lookup goes by item pointer.
func (m modelTUI) selected() (int, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return 0, false
	}
	for i, it := range m.todos.All() {
		if it == li.item {
			return i, true
		}
	}
	return 0, false
}

// syncItems rebuilds the bubbles list from the backing list. The returned
// command re-runs an active filter.
func (m *modelTUI) syncItems() tea.Cmd {
	return m.list.SetItems(listItems(m.todos))
}

func listItems(todos *model.List) []list.Item {
	items := make([]list.Item, 0, todos.Size())
	todos.ForEach(func(it *model.Item) {
		items = append(items, listItem{item: it})
	})
	return items
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch km.String() {
		case "q", "esc":
			return m, tea.Quit
		case " ":
			if i, ok := m.selected(); ok {
				it, _ := m.todos.ItemAt(i)
				if it.IsDone() {
					_ = m.todos.MarkUndoneAt(i)
				} else {
					_ = m.todos.MarkDoneAt(i)
				}
				m.changed = true
				m.refreshTitle()
			}
			return m, nil
		case "d":
			if i, ok := m.selected(); ok {
				if _, err := m.todos.RemoveAt(i); err == nil {
					cmd := m.syncItems()
					m.changed = true
					m.refreshTitle()
					return m, cmd
				}
			}
			return m, nil
		case "D":
			m.todos.MarkAllDone()
			m.changed = m.changed || m.todos.Size() > 0
			m.refreshTitle()
			return m, nil
		case "U":
			m.todos.MarkAllUndone()
			m.changed = m.changed || m.todos.Size() > 0
			m.refreshTitle()
			return m, nil
		case "a":
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			m.ti.Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.addErr = "Title cannot be empty"
				return m, nil
			}
			it := model.NewItem(title)
			if err := m.todos.Add(it); err != nil {
				m.addErr = err.Error()
				return m, nil
			}
			cmd := m.syncItems()
			m.changed = true
			m.refreshTitle()
			m.ti.SetValue("")
			m.ti.Blur()
			m.adding = false
			return m, cmd
		case "esc":
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m modelTUI) View() string {
	listHeight := m.height - 4
	if m.adding {
		listHeight = m.height - 6
	}
	m.list.SetSize(m.width-2, listHeight)

	content := m.list.View()
	if m.adding {
		title := "Add new item"
		if m.addErr != "" {
			title += " - " + errorStyle.Render(m.addErr)
		}
		content += "\n" + frameStyle.Render(title+"\n"+m.ti.View())
	}
	return frameStyle.Render(content)
}
