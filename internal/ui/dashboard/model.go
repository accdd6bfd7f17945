package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/store"
	"github.com/taskmaster-app/taskmaster/internal/theme"
)

// Model is the dashboard view: aggregate todo counts for the current
// scope plus a per-collection breakdown. Everything here is derived on
// render; the store recomputes selectors from scratch on every read.
type Model struct {
	workspace *store.Workspace
	width     int
	height    int
}

// New creates a new dashboard model.
func New(ws *store.Workspace, width, height int) Model {
	return Model{
		workspace: ws,
		width:     width,
		height:    height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the dashboard view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render("Dashboard"))
	b.WriteString("\n\n")

	stats := m.workspace.Stats()
	b.WriteString(fmt.Sprintf("Scope: %s\n\n", m.workspace.ActiveCollectionTitle()))
	b.WriteString(renderStat("Total", stats.Total, theme.ColorBlue))
	b.WriteString(renderStat("Active", stats.Active, theme.ColorYellow))
	b.WriteString(renderStat("Completed", stats.Completed, theme.ColorGreen))

	collections := m.workspace.Collections()
	if len(collections) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Collections"))
		b.WriteString("\n\n")

		todos := m.workspace.Todos()
		notes := m.workspace.Notes()
		for _, c := range collections {
			var todoCount, noteCount int
			for _, t := range todos {
				if t.CollectionID == c.ID {
					todoCount++
				}
			}
			for _, n := range notes {
				if n.CollectionID == c.ID {
					noteCount++
				}
			}
			marker := "📁"
			if c.Kind == model.CollectionDaily {
				marker = "📅"
			}
			b.WriteString(fmt.Sprintf("  %s %s — %d todos, %d notes\n",
				marker, c.Title, todoCount, noteCount))
		}
	}

	return theme.PanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(b.String())
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func renderStat(label string, value int, color lipgloss.AdaptiveColor) string {
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
	return fmt.Sprintf("  %s %s\n", valueStyle.Render(fmt.Sprintf("%3d", value)), label)
}
