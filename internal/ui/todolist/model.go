package todolist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskmaster-app/taskmaster/internal/keys"
	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/store"
	"github.com/taskmaster-app/taskmaster/internal/theme"
	"github.com/taskmaster-app/taskmaster/internal/ui"
)

// NewTodoMsg signals the parent to open the create-todo form.
type NewTodoMsg struct{}

// EditTodoMsg signals the parent to open the edit form for a todo.
type EditTodoMsg struct {
	Todo model.Todo
}

// Model is the todo list view. It reads derived state straight from
// the workspace store; every mutation is followed by a Reload so the
// list always shows the latest committed state.
type Model struct {
	list      list.Model
	workspace *store.Workspace
	keys      *keys.KeyMap
	width     int
	height    int
}

// New creates a new todo list model.
func New(ws *store.Workspace, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Todos"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	m := Model{
		list:      l,
		workspace: ws,
		keys:      k,
		width:     width,
		height:    height,
	}
	m.Reload()
	return m
}

// Reload refreshes the visible items from the store's derived selector.
func (m *Model) Reload() {
	todos := m.workspace.FilteredTodos()
	items := make([]list.Item, len(todos))
	for i, t := range todos {
		items[i] = TodoItem{Todo: t}
	}
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("Todos — %s", m.workspace.ActiveCollectionTitle())
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the todo list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.New):
			return m, func() tea.Msg { return NewTodoMsg{} }

		case key.Matches(keyMsg, m.keys.Edit):
			if item, ok := m.list.SelectedItem().(TodoItem); ok {
				todo := item.Todo
				return m, func() tea.Msg { return EditTodoMsg{Todo: todo} }
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.Toggle):
			if item, ok := m.list.SelectedItem().(TodoItem); ok {
				m.workspace.ToggleTodo(item.Todo.ID)
				m.Reload()
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(TodoItem); ok {
				m.workspace.DeleteTodo(item.Todo.ID)
				m.Reload()
				return m, status("Todo deleted")
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.CycleFilter):
			m.workspace.SetFilter(nextFilter(m.workspace.Filter()))
			m.Reload()
			return m, nil

		case key.Matches(keyMsg, m.keys.ClearCompleted):
			m.workspace.ClearCompleted()
			m.Reload()
			return m, status("Completed todos cleared")
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the todo list with the current filter in the footer.
func (m Model) View() string {
	footer := theme.HintStyle.Render(
		fmt.Sprintf("filter: %s (tab to cycle)", m.workspace.Filter()),
	)
	return m.list.View() + "\n" + footer
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

func nextFilter(f model.Filter) model.Filter {
	switch f {
	case model.FilterAll:
		return model.FilterActive
	case model.FilterActive:
		return model.FilterCompleted
	default:
		return model.FilterAll
	}
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return ui.StatusMsg{Text: text} }
}
