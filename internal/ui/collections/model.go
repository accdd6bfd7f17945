package collections

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskmaster-app/taskmaster/internal/keys"
	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/store"
	"github.com/taskmaster-app/taskmaster/internal/theme"
	"github.com/taskmaster-app/taskmaster/internal/ui"
)

// CloseMsg signals the parent to close the collections view.
type CloseMsg struct{}

// SelectionChangedMsg signals that the active collection changed.
type SelectionChangedMsg struct{}

type viewMode int

const (
	modeList viewMode = iota
	modeForm
	modeConfirmDelete
)

type formBindings struct {
	title   string
	confirm bool
}

// Model is the collection manager: select the active scope (including
// the unscoped "all" view), create project collections, and delete
// collections with their cascade.
type Model struct {
	mode        viewMode
	workspace   *store.Workspace
	keys        *keys.KeyMap
	entries     []entry
	selectedIdx int
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// entry is a row in the collection list. The first row is always the
// synthetic "all" scope, which is not a real collection.
type entry struct {
	id    string
	label string
	kind  string
}

// New creates a new collections model.
func New(ws *store.Workspace, k *keys.KeyMap, width, height int) Model {
	m := Model{
		mode:      modeList,
		workspace: ws,
		keys:      k,
		fb:        &formBindings{},
		width:     width,
		height:    height,
	}
	m.Reload()
	return m
}

// Reload rebuilds the entry rows from the store.
func (m *Model) Reload() {
	entries := []entry{{id: model.ActiveAll, label: "All collections"}}
	for _, c := range m.workspace.Collections() {
		entries = append(entries, entry{id: c.ID, label: c.Title, kind: c.Kind})
	}
	m.entries = entries
	if m.selectedIdx >= len(m.entries) {
		m.selectedIdx = len(m.entries) - 1
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.handleListKey(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(m.entries) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.entries)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.entries) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.entries) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		e := m.entries[m.selectedIdx]
		m.workspace.SetActiveCollection(e.id)
		m.statusMsg = fmt.Sprintf("Scope: %s", e.label)
		return m, func() tea.Msg { return SelectionChangedMsg{} }

	case key.Matches(msg, m.keys.New):
		m.fb.title = ""
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if m.entries[m.selectedIdx].id == model.ActiveAll {
			return m, nil
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Project name").
				Value(&m.fb.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm() *huh.Form {
	label := m.entries[m.selectedIdx].label
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete collection %q?", label)).
				Description("Every todo and note in it will be deleted as well.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.workspace.AddCollection(m.fb.title, model.CollectionProject, "")
		m.Reload()
		m.mode = modeList
		return m, tea.Batch(
			func() tea.Msg { return SelectionChangedMsg{} },
			func() tea.Msg { return ui.StatusMsg{Text: "Collection created"} },
		)
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		m.mode = modeList
		if m.fb.confirm {
			m.workspace.DeleteCollection(m.entries[m.selectedIdx].id)
			m.Reload()
			return m, tea.Batch(
				func() tea.Msg { return SelectionChangedMsg{} },
				func() tea.Msg { return ui.StatusMsg{Text: "Collection deleted"} },
			)
		}
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// View renders the collection manager.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm(m.form)
	case modeConfirmDelete:
		return m.viewForm(m.confirmForm)
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render("Collections"))
	b.WriteString("\n\n")

	active := m.workspace.ActiveCollectionID()
	for i, e := range m.entries {
		label := e.label
		switch e.kind {
		case model.CollectionDaily:
			label = "📅 " + label
		case model.CollectionProject:
			label = "📁 " + label
		default:
			label = "∗ " + label
		}
		if e.id == active {
			label += " (active)"
		}

		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(theme.ListItemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ToastStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.HintStyle.Render(
		"enter select scope | n new project | d delete | esc back",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(f.View())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
