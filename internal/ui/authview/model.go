package authview

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/service"
	"github.com/taskmaster-app/taskmaster/internal/theme"
)

// AuthenticatedMsg is dispatched when the gateway returns a session.
type AuthenticatedMsg struct {
	Auth model.AuthData
}

// authFailedMsg carries a gateway error back to this view.
type authFailedMsg struct {
	err error
}

type authMode int

const (
	modeLogin authMode = iota
	modeSignup
)

type formBindings struct {
	name     string
	email    string
	password string
}

// Model is the login/signup screen. Gateway calls run as commands so
// the UI stays responsive during the (simulated) network round trip.
type Model struct {
	mode    authMode
	gateway service.AuthGateway
	form    *huh.Form
	fb      *formBindings
	waiting bool
	errText string
	width   int
	height  int
}

// New creates the auth view in login mode.
func New(gw service.AuthGateway, width, height int) Model {
	m := Model{
		mode:    modeLogin,
		gateway: gw,
		fb:      &formBindings{},
		width:   width,
		height:  height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the active form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the auth view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authFailedMsg:
		m.waiting = false
		m.errText = msg.err.Error()
		m.form = m.buildForm()
		return m, m.form.Init()

	case tea.KeyMsg:
		// Switch between login and signup with ctrl+s before submission.
		if msg.String() == "ctrl+s" && !m.waiting {
			if m.mode == modeLogin {
				m.mode = modeSignup
			} else {
				m.mode = modeLogin
			}
			m.errText = ""
			m.form = m.buildForm()
			return m, m.form.Init()
		}
	}

	if m.waiting || m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.waiting = true
		m.errText = ""
		return m, m.submit()
	}
	if m.form.State == huh.StateAborted {
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	return m, cmd
}

// View renders the auth screen.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := "Sign in to TaskMaster"
	if m.mode == modeSignup {
		title = "Create your TaskMaster account"
	}

	var body string
	switch {
	case m.waiting:
		body = theme.EmptyStyle.Render("Contacting server…")
	case m.form != nil:
		body = m.form.View()
	}

	content := titleStyle.Render(title) + "\n" + body

	if m.errText != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(theme.ColorRed).Render(m.errText)
	}

	content += "\n\n" + theme.HintStyle.Render("ctrl+s switch login/signup")

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	m.fb.password = ""

	var fields []huh.Field
	if m.mode == modeSignup {
		fields = append(fields,
			huh.NewInput().
				Title("Name").
				Placeholder("John Doe").
				Value(&m.fb.name).
				Validate(validateName),
		)
	}
	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&m.fb.email).
			Validate(validateEmail),
	)

	passwordField := huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&m.fb.password)
	if m.mode == modeSignup {
		passwordField = passwordField.Validate(validateNewPassword)
	} else {
		passwordField = passwordField.Validate(func(s string) error {
			if s == "" {
				return fmt.Errorf("Password is required")
			}
			return nil
		})
	}
	fields = append(fields, passwordField)

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) submit() tea.Cmd {
	gw := m.gateway
	mode := m.mode
	fb := *m.fb
	return func() tea.Msg {
		var (
			auth model.AuthData
			err  error
		)
		if mode == modeSignup {
			auth, err = gw.Signup(context.Background(), model.SignupInput{
				Name:     fb.name,
				Email:    fb.email,
				Password: fb.password,
			})
		} else {
			auth, err = gw.Login(context.Background(), model.LoginInput{
				Email:    fb.email,
				Password: fb.password,
			})
		}
		if err != nil {
			return authFailedMsg{err: err}
		}
		return AuthenticatedMsg{Auth: auth}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	return h
}

func validateName(s string) error {
	if len(strings.TrimSpace(s)) < 3 {
		return fmt.Errorf("Name must be at least 3 characters long")
	}
	return nil
}

func validateEmail(s string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("Invalid email address")
	}
	return nil
}

// validateNewPassword enforces the signup password rules: at least 8
// characters with an upper-case letter, a lower-case letter, and a digit.
func validateNewPassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("Password must be at least 8 characters long")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("Password needs an upper-case letter, a lower-case letter, and a digit")
	}
	return nil
}
