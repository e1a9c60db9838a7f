// ABOUTME: Login screen as a bubbletea model wrapping a huh form
// ABOUTME: Fields are checked with the same validators the API payloads use

package login

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/academia-console/internal/session"
	"github.com/markalston/academia-console/internal/tui/styles"
	"github.com/markalston/academia-console/internal/validate"
)

// SubmittedMsg carries credentials that passed local validation.
type SubmittedMsg struct {
	Request session.LoginRequest
}

// CancelledMsg is sent when the user leaves the form.
type CancelledMsg struct{}

// Login collects a username and password.
type Login struct {
	form     *huh.Form
	username string
	password string
	err      string
	width    int
}

// New creates the form, prefilling username when given.
func New(username string) *Login {
	l := &Login{username: username}
	l.form = l.createForm()
	return l
}

// Username returns the username currently in the form.
func (l *Login) Username() string {
	return l.username
}

func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(styles.Muted)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)

	return t
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Usuario").
				Placeholder("admin").
				CharLimit(validate.MaxUsernameLength).
				Value(&l.username).
				Validate(check(validate.Username)),
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(check(validate.Password)),
		).Title("Iniciar sesión").
			Description("Accede con tu cuenta de la academia"),
	).WithTheme(createTheme())
}

// check adapts a field validator to huh's error-returning signature.
func check(fn func(string) validate.Result) func(string) error {
	return func(s string) error {
		if r := fn(strings.TrimSpace(s)); !r.IsValid {
			return errors.New(r.Message)
		}
		return nil
	}
}

// SetError shows a failure from the server under the form and resets it
// for another attempt.
func (l *Login) SetError(msg string) {
	l.err = msg
	l.password = ""
	l.form = l.createForm()
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return l, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	switch l.form.State {
	case huh.StateCompleted:
		req := session.LoginRequest{Username: strings.TrimSpace(l.username), Password: l.password}
		return l, func() tea.Msg { return SubmittedMsg{Request: req} }
	case huh.StateAborted:
		return l, func() tea.Msg { return CancelledMsg{} }
	}
	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	view := styles.Subtitle.Render("Accede con tu usuario de la academia") + "\n" + l.form.View()
	if l.err != "" {
		view += "\n" + styles.StatusCritical.Render(l.err)
	}
	return styles.ActivePanel.Render(view)
}
