package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskmaster-app/taskmaster/internal/service"
	"github.com/taskmaster-app/taskmaster/internal/store"
	"github.com/taskmaster-app/taskmaster/internal/ui"
	"github.com/taskmaster-app/taskmaster/internal/ui/authview"
	"github.com/taskmaster-app/taskmaster/internal/ui/collections"
	"github.com/taskmaster-app/taskmaster/internal/ui/dashboard"
	helpview "github.com/taskmaster-app/taskmaster/internal/ui/help"
	"github.com/taskmaster-app/taskmaster/internal/ui/noteform"
	"github.com/taskmaster-app/taskmaster/internal/ui/notelist"
	"github.com/taskmaster-app/taskmaster/internal/ui/todoform"
	"github.com/taskmaster-app/taskmaster/internal/ui/todolist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewAuth ViewState = iota
	ViewTodos
	ViewNotes
	ViewCollections
	ViewDashboard
	ViewHelp
	ViewTodoForm
	ViewNoteForm
)

// loggedOutMsg is sent after the gateway logout round trip completes.
type loggedOutMsg struct{}

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the stores. The workspace store is the single source of
// truth; views re-read it after every mutation.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	workspace    *store.Workspace
	auth         *store.AuthStore
	gateway      service.AuthGateway
	keys         *KeyMap

	authView        authview.Model
	todoList        todolist.Model
	noteList        notelist.Model
	collectionsView collections.Model
	dashboardView   dashboard.Model
	helpView        helpview.Model
	todoFormView    todoform.Model
	noteFormView    noteform.Model

	ready     bool
	statusMsg string
}

// New creates a new root application model wired to the given stores
// and gateway. The session gate is simply "token present": a restored
// session skips the auth screen entirely.
func New(ws *store.Workspace, auth *store.AuthStore, gw service.AuthGateway) Model {
	keys := DefaultKeyMap()

	initialView := ViewAuth
	if auth.Authenticated() {
		initialView = ViewTodos
	}

	return Model{
		currentView:     initialView,
		workspace:       ws,
		auth:            auth,
		gateway:         gw,
		keys:            keys,
		authView:        authview.New(gw, 80, 24),
		todoList:        todolist.New(ws, keys, 80, 24),
		noteList:        notelist.New(ws, keys, 80, 24),
		collectionsView: collections.New(ws, keys, 80, 24),
		dashboardView:   dashboard.New(ws, 80, 24),
		helpView:        helpview.New(keys, 80, 24),
		todoFormView:    todoform.New(80, 24),
		noteFormView:    noteform.New(80, 24),
	}
}

// Init returns the initial command for the active view.
func (m Model) Init() tea.Cmd {
	if m.currentView == ViewAuth {
		return m.authView.Init()
	}
	return nil
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.authView.SetSize(contentWidth, contentHeight)
		m.todoList.SetSize(contentWidth, contentHeight)
		m.noteList.SetSize(contentWidth, contentHeight)
		m.collectionsView.SetSize(contentWidth, contentHeight)
		m.dashboardView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.todoFormView.SetSize(contentWidth, contentHeight)
		m.noteFormView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case ui.StatusMsg:
		m.statusMsg = msg.Text
		return m, nil

	case authview.AuthenticatedMsg:
		m.auth.SetAuth(msg.Auth)
		m.currentView = ViewTodos
		m.statusMsg = "Signed in"
		m.reloadLists()
		return m, nil

	case loggedOutMsg:
		m.auth.ClearAuth()
		m.currentView = ViewAuth
		m.statusMsg = ""
		m.authView = authview.New(m.gateway, m.layout.ContentWidth(), m.layout.ContentHeight())
		return m, m.authView.Init()

	case todolist.NewTodoMsg:
		m.previousView = m.currentView
		m.currentView = ViewTodoForm
		m.todoFormView.SetCollections(m.workspace.Collections())
		return m, m.todoFormView.StartCreate()

	case todolist.EditTodoMsg:
		m.previousView = m.currentView
		m.currentView = ViewTodoForm
		m.todoFormView.SetCollections(m.workspace.Collections())
		return m, m.todoFormView.StartEdit(msg.Todo)

	case todoform.TodoCreatedMsg:
		m.workspace.AddTodo(msg.Input)
		m.currentView = ViewTodos
		m.statusMsg = "Todo added"
		m.reloadLists()
		return m, nil

	case todoform.TodoUpdatedMsg:
		m.workspace.UpdateTodo(msg.ID, msg.Input)
		m.currentView = ViewTodos
		m.statusMsg = "Todo updated"
		m.reloadLists()
		return m, nil

	case todoform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case notelist.NewNoteMsg:
		m.previousView = m.currentView
		m.currentView = ViewNoteForm
		m.noteFormView.SetCollections(m.workspace.Collections())
		return m, m.noteFormView.StartCreate()

	case notelist.EditNoteMsg:
		m.previousView = m.currentView
		m.currentView = ViewNoteForm
		m.noteFormView.SetCollections(m.workspace.Collections())
		return m, m.noteFormView.StartEdit(msg.Note)

	case noteform.NoteCreatedMsg:
		m.workspace.AddNote(msg.Input)
		m.currentView = ViewNotes
		m.statusMsg = "Note added"
		m.reloadLists()
		return m, nil

	case noteform.NoteUpdatedMsg:
		m.workspace.UpdateNote(msg.ID, msg.Input)
		m.currentView = ViewNotes
		m.statusMsg = "Note updated"
		m.reloadLists()
		return m, nil

	case noteform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case collections.CloseMsg:
		m.currentView = ViewTodos
		m.reloadLists()
		return m, nil

	case collections.SelectionChangedMsg:
		m.reloadLists()
		return m, nil

	case tea.KeyMsg:
		// Any keypress dismisses the transient confirmation.
		m.statusMsg = ""
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	// Delegate to the active sub-view.
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work regardless of the focused
// view. Form views and the auth screen keep full keyboard focus.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}

	switch m.currentView {
	case ViewAuth, ViewTodoForm, ViewNoteForm:
		return nil, false
	}

	switch msg.String() {
	case "q":
		return tea.Quit, true

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
		} else {
			m.previousView = m.currentView
			m.currentView = ViewHelp
		}
		return nil, true

	case "1":
		m.currentView = ViewTodos
		m.reloadLists()
		return nil, true

	case "2":
		m.currentView = ViewNotes
		m.reloadLists()
		return nil, true

	case "3":
		m.previousView = m.currentView
		m.currentView = ViewCollections
		m.collectionsView.Reload()
		return nil, true

	case "4":
		m.currentView = ViewDashboard
		return nil, true

	case "L":
		return m.logout(), true
	}

	return nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewTodos:
		m.todoList, cmd = m.todoList.Update(msg)
	case ViewNotes:
		m.noteList, cmd = m.noteList.Update(msg)
	case ViewCollections:
		m.collectionsView, cmd = m.collectionsView.Update(msg)
	case ViewDashboard:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewTodoForm:
		m.todoFormView, cmd = m.todoFormView.Update(msg)
	case ViewNoteForm:
		m.noteFormView, cmd = m.noteFormView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewAuth {
		return m.authView.View()
	}

	stats := m.workspace.Stats()
	summary := fmt.Sprintf("%d active / %d done", stats.Active, stats.Completed)

	header := m.layout.RenderHeader("TaskMaster", summary)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewTodos:
		return m.todoList.View()
	case ViewNotes:
		return m.noteList.View()
	case ViewCollections:
		return m.collectionsView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewTodoForm:
		return m.todoFormView.View()
	case ViewNoteForm:
		return m.noteFormView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar, or the
// most recent transient confirmation when one is pending.
func (m Model) keyHints() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewTodoForm, ViewNoteForm:
		return "enter submit | esc cancel"
	case ViewCollections:
		return "enter select | n new | d delete | esc back"
	case ViewNotes:
		return "n new | e edit | d delete | 1 todos | 4 dashboard"
	case ViewDashboard:
		return "1 todos | 2 notes | 3 collections | q quit"
	default:
		return "n new | x toggle | tab filter | X clear done | 2 notes | 3 collections | ? help"
	}
}

// reloadLists refreshes the derived-state views after a mutation or a
// scope change.
func (m *Model) reloadLists() {
	m.todoList.Reload()
	m.noteList.Reload()
}

// logout runs the gateway logout round trip, then clears the session.
func (m Model) logout() tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		_ = gw.Logout(context.Background())
		return loggedOutMsg{}
	}
}
