package todoform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/theme"
)

// TodoCreatedMsg is dispatched when a new todo is submitted via the form.
type TodoCreatedMsg struct {
	Input model.CreateTodoInput
}

// TodoUpdatedMsg is dispatched when an existing todo is updated via the form.
type TodoUpdatedMsg struct {
	ID    string
	Input model.UpdateTodoInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title        string
	description  string
	priority     string
	collectionID string
	completed    bool
}

// Model is the Bubble Tea model for the todo create/edit form.
type Model struct {
	form        *huh.Form
	fb          *formBindings
	editMode    bool
	editID      string
	collections []model.Collection
	width       int
	height      int
}

// New creates a new todo form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.PriorityMedium},
		width:  width,
		height: height,
	}
}

// SetCollections sets the available collections for the form selector.
func (m *Model) SetCollections(collections []model.Collection) {
	m.collections = collections
}

// StartCreate initializes the form for creating a new todo.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.title = ""
	m.fb.description = ""
	m.fb.priority = model.PriorityMedium
	m.fb.collectionID = ""
	m.fb.completed = false
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing todo.
func (m *Model) StartEdit(todo model.Todo) tea.Cmd {
	m.editMode = true
	m.editID = todo.ID
	m.fb.title = todo.Title
	m.fb.description = todo.Description
	m.fb.priority = todo.Priority
	m.fb.collectionID = todo.CollectionID
	m.fb.completed = todo.Completed
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the todo form.
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

// View renders the todo form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Todo"
	if m.editMode {
		titleText = "Edit Todo"
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
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("Low", model.PriorityLow),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("High", model.PriorityHigh),
			).
			Value(&m.fb.priority),
		m.collectionField(),
	}

	if m.editMode {
		fields = append(fields,
			huh.NewSelect[bool]().
				Title("Status").
				Options(
					huh.NewOption("Active", false),
					huh.NewOption("Completed", true),
				).
				Value(&m.fb.completed),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) collectionField() huh.Field {
	opts := []huh.Option[string]{
		huh.NewOption("Today's journal", ""),
	}
	for _, c := range m.collections {
		opts = append(opts, huh.NewOption(c.Title, c.ID))
	}
	return huh.NewSelect[string]().
		Title("Collection").
		Options(opts...).
		Value(&m.fb.collectionID)
}

func (m Model) handleSubmit() tea.Cmd {
	if m.editMode {
		title := m.fb.title
		description := m.fb.description
		priority := m.fb.priority
		completed := m.fb.completed
		update := model.UpdateTodoInput{
			Title:       &title,
			Description: &description,
			Priority:    &priority,
			Completed:   &completed,
		}
		if m.fb.collectionID != "" {
			collectionID := m.fb.collectionID
			update.CollectionID = &collectionID
		}
		id := m.editID
		return func() tea.Msg { return TodoUpdatedMsg{ID: id, Input: update} }
	}

	input := model.CreateTodoInput{
		Title:        m.fb.title,
		Description:  m.fb.description,
		Priority:     m.fb.priority,
		CollectionID: m.fb.collectionID,
	}
	return func() tea.Msg { return TodoCreatedMsg{Input: input} }
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

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
