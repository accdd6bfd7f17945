package notelist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskmaster-app/taskmaster/internal/keys"
	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/store"
	"github.com/taskmaster-app/taskmaster/internal/theme"
	"github.com/taskmaster-app/taskmaster/internal/ui"
)

// NewNoteMsg signals the parent to open the create-note form.
type NewNoteMsg struct{}

// EditNoteMsg signals the parent to open the edit form for a note.
type EditNoteMsg struct {
	Note model.Note
}

// NoteItem wraps a model.Note so it can be used in a bubbles/list.
type NoteItem struct {
	Note model.Note
}

// FilterValue returns the string used for fuzzy filtering.
func (i NoteItem) FilterValue() string { return i.Note.Title }

// ItemDelegate implements list.ItemDelegate for rendering note lines.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single note line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ni, ok := item.(NoteItem)
	if !ok {
		return
	}

	line := fmt.Sprintf("▤ %s", ni.Note.Title)

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
	} else {
		fmt.Fprint(w, theme.ListItemStyle.Render(line))
	}
}

// Model is the note list view, scoped by the active collection only;
// the completion filter never applies here.
type Model struct {
	list      list.Model
	workspace *store.Workspace
	keys      *keys.KeyMap
	width     int
	height    int
}

// New creates a new note list model.
func New(ws *store.Workspace, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Notes"
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
	notes := m.workspace.FilteredNotes()
	items := make([]list.Item, len(notes))
	for i, n := range notes {
		items[i] = NoteItem{Note: n}
	}
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("Notes — %s", m.workspace.ActiveCollectionTitle())
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the note list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.New):
			return m, func() tea.Msg { return NewNoteMsg{} }

		case key.Matches(keyMsg, m.keys.Edit):
			if item, ok := m.list.SelectedItem().(NoteItem); ok {
				note := item.Note
				return m, func() tea.Msg { return EditNoteMsg{Note: note} }
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(NoteItem); ok {
				m.workspace.DeleteNote(item.Note.ID)
				m.Reload()
				return m, func() tea.Msg { return ui.StatusMsg{Text: "Note deleted"} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the note list with a preview of the selected note.
func (m Model) View() string {
	preview := ""
	if item, ok := m.list.SelectedItem().(NoteItem); ok && item.Note.Content != "" {
		content := item.Note.Content
		if len(content) > 120 {
			content = content[:120] + "…"
		}
		preview = theme.HintStyle.Render(content)
	}
	return m.list.View() + "\n" + preview
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
