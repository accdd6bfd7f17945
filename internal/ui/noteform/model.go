package noteform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/theme"
)

// NoteCreatedMsg is dispatched when a new note is submitted via the form.
type NoteCreatedMsg struct {
	Input model.CreateNoteInput
}

// NoteUpdatedMsg is dispatched when an existing note is updated via the form.
type NoteUpdatedMsg struct {
	ID    string
	Input model.UpdateNoteInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

type formBindings struct {
	title        string
	content      string
	collectionID string
}

// Model is the Bubble Tea model for the note create/edit form.
type Model struct {
	form        *huh.Form
	fb          *formBindings
	editMode    bool
	editID      string
	collections []model.Collection
	width       int
	height      int
}

// New creates a new note form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// SetCollections sets the available collections for the form selector.
func (m *Model) SetCollections(collections []model.Collection) {
	m.collections = collections
}

// StartCreate initializes the form for creating a new note.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.title = ""
	m.fb.content = ""
	m.fb.collectionID = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing note.
func (m *Model) StartEdit(note model.Note) tea.Cmd {
	m.editMode = true
	m.editID = note.ID
	m.fb.title = note.Title
	m.fb.content = note.Content
	m.fb.collectionID = note.CollectionID
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the note form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the note form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Note"
	if m.editMode {
		titleText = "Edit Note"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	opts := []huh.Option[string]{
		huh.NewOption("Today's journal", ""),
	}
	for _, c := range m.collections {
		opts = append(opts, huh.NewOption(c.Title, c.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Note title").
				Value(&m.fb.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("Title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Content").
				Placeholder("Write your note...").
				Value(&m.fb.content),
			huh.NewSelect[string]().
				Title("Collection").
				Options(opts...).
				Value(&m.fb.collectionID),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	if m.editMode {
		title := m.fb.title
		content := m.fb.content
		update := model.UpdateNoteInput{
			Title:   &title,
			Content: &content,
		}
		if m.fb.collectionID != "" {
			collectionID := m.fb.collectionID
			update.CollectionID = &collectionID
		}
		id := m.editID
		return func() tea.Msg { return NoteUpdatedMsg{ID: id, Input: update} }
	}

	input := model.CreateNoteInput{
		Title:        m.fb.title,
		Content:      m.fb.content,
		CollectionID: m.fb.collectionID,
	}
	return func() tea.Msg { return NoteCreatedMsg{Input: input} }
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
