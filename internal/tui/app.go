// ABOUTME: Root bubbletea model for the console TUI
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/academia-console/internal/apiclient"
	"github.com/markalston/academia-console/internal/app"
	"github.com/markalston/academia-console/internal/apperror"
	"github.com/markalston/academia-console/internal/listings"
	"github.com/markalston/academia-console/internal/pagination"
	"github.com/markalston/academia-console/internal/session"
	"github.com/markalston/academia-console/internal/tui/browser"
	"github.com/markalston/academia-console/internal/tui/icons"
	"github.com/markalston/academia-console/internal/tui/login"
	"github.com/markalston/academia-console/internal/tui/menu"
	"github.com/markalston/academia-console/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenMenu
	ScreenBrowser
	ScreenProfile
)

const (
	minTerminalWidth = 80
	requestTimeout   = 15 * time.Second
)

// loginResultMsg is sent when the login request completes
type loginResultMsg struct {
	username string
	err      error
}

// profileLoadedMsg is sent when the student profile is loaded
type profileLoadedMsg struct {
	student *apiclient.Student
	err     error
}

// App is the root model for the TUI
type App struct {
	app    *app.App
	screen Screen
	width  int
	height int
	err    error

	login   *login.Login
	menu    *menu.Menu
	browser *browser.Browser
	profile *apiclient.Student
}

// New creates the TUI, starting at the menu when a session was restored.
func New(a *app.App) *App {
	t := &App{app: a}
	if a.Session.IsAuthenticated() {
		t.showMenu()
	} else {
		t.showLogin("")
	}
	return t
}

// Init implements tea.Model
func (t *App) Init() tea.Cmd {
	switch t.screen {
	case ScreenLogin:
		return t.login.Init()
	case ScreenMenu:
		return t.menu.Init()
	}
	return nil
}

// Update implements tea.Model
func (t *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		if t.browser != nil {
			t.browser.SetSize(t.width, t.contentHeight())
		}
		return t.forward(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return t, tea.Quit
		}
		switch t.screen {
		case ScreenBrowser:
			if msg.String() == "q" {
				return t, tea.Quit
			}
		case ScreenProfile:
			return t.updateProfile(msg)
		}
		return t.forward(msg)

	case login.SubmittedMsg:
		username := msg.Request.Username
		return t, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return loginResultMsg{username: username, err: t.app.Login(ctx, msg.Request)}
		}

	case login.CancelledMsg, menu.CancelledMsg:
		return t, tea.Quit

	case loginResultMsg:
		if msg.err != nil {
			t.login.SetError(apperror.Normalize(msg.err).Message)
			return t, t.login.Init()
		}
		return t, t.showMenu()

	case menu.SelectedMsg:
		return t.handleSelected(msg.Choice)

	case browser.BackMsg:
		t.browser = nil
		t.screen = ScreenMenu
		return t, nil

	case profileLoadedMsg:
		t.profile, t.err = msg.student, msg.err
		return t, nil
	}

	return t.forward(msg)
}

// forward hands msg to the active child; huh forms need their internal messages.
func (t *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch t.screen {
	case ScreenLogin:
		if t.login != nil {
			var m tea.Model
			m, cmd = t.login.Update(msg)
			t.login = m.(*login.Login)
		}
	case ScreenMenu:
		if t.menu != nil {
			var m tea.Model
			m, cmd = t.menu.Update(msg)
			t.menu = m.(*menu.Menu)
		}
	case ScreenBrowser:
		if t.browser != nil {
			var m tea.Model
			m, cmd = t.browser.Update(msg)
			t.browser = m.(*browser.Browser)
		}
	}
	return t, cmd
}

func (t *App) handleSelected(choice string) (tea.Model, tea.Cmd) {
	switch choice {
	case menu.ChoiceLogout:
		t.app.Logout()
		return t, t.showLogin("")

	case menu.ChoiceProfile:
		t.screen = ScreenProfile
		t.profile, t.err = nil, nil
		return t, t.loadProfile()
	}

	l, err := listings.For(t.app.Services, choice, listings.Filter{})
	if err != nil {
		t.err = err
		return t, nil
	}
	t.err = nil
	t.browser = browser.New(browserListing(l), t.width, t.contentHeight())
	t.screen = ScreenBrowser
	return t, t.browser.Init()
}

func (t *App) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return t, tea.Quit
	case "r":
		return t, t.loadProfile()
	case "b", "esc":
		t.screen = ScreenMenu
		t.profile, t.err = nil, nil
	}
	return t, nil
}

func (t *App) showLogin(username string) tea.Cmd {
	if username == "" {
		username = t.app.Recent.Last()
	}
	t.login = login.New(username)
	t.menu = nil
	t.browser = nil
	t.screen = ScreenLogin
	return t.login.Init()
}

func (t *App) showMenu() tea.Cmd {
	t.menu = menu.New(t.app.Session.Snapshot())
	t.login = nil
	t.screen = ScreenMenu
	return t.menu.Init()
}

func (t *App) loadProfile() tea.Cmd {
	students := t.app.Services.Students
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		s, err := students.Profile(ctx)
		return profileLoadedMsg{student: s, err: err}
	}
}

// browserListing adapts a shared listing to table rows.
func browserListing(l listings.Listing) browser.Listing {
	cols := make([]table.Column, len(l.Columns))
	for i, c := range l.Columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}
	return browser.Listing{
		Entity:   l.Entity,
		Title:    l.Title,
		Defaults: l.Defaults,
		Columns:  cols,
		Fetch: func(ctx context.Context, p pagination.Params) (pagination.Metadata, []table.Row, error) {
			meta, cells, err := l.Fetch(ctx, p)
			rows := make([]table.Row, len(cells))
			for i, c := range cells {
				rows[i] = table.Row(c)
			}
			return meta, rows, err
		},
	}
}

// View implements tea.Model
func (t *App) View() string {
	var content string

	switch t.screen {
	case ScreenLogin:
		if t.login != nil {
			content = t.login.View()
		}
	case ScreenMenu:
		if t.menu != nil {
			content = t.menu.View()
		}
		if t.err != nil {
			content += "\n" + styles.StatusCritical.Render(t.err.Error())
		}
	case ScreenBrowser:
		if t.browser != nil {
			content = t.browser.View()
		}
	case ScreenProfile:
		content = t.viewProfile()
	}

	return t.wrapWithFrame(content)
}

func (t *App) viewProfile() string {
	if t.err != nil {
		info := apperror.Normalize(t.err)
		return styles.StatusCritical.Render(icons.Critical.String() + " " + info.Title + ": " + info.Message)
	}
	if t.profile == nil {
		return styles.Help.Render(icons.Refresh.String() + " Cargando...")
	}

	p := t.profile
	rows := [][2]string{
		{"Usuario", p.Username},
		{"Nombre", p.FirstName + " " + p.LastName},
		{"DNI", p.DNI},
		{"Email", p.Email},
		{"Teléfono", p.PhoneNumber},
		{"Matriculado", enrolledLabel(p.Enrolled)},
		{"Clases", fmt.Sprint(len(p.ClassIDs))},
		{"Alta", listings.Date(p.CreatedAt)},
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.User.String() + " Mi perfil"))
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(styles.KeyStyle.Render(fmt.Sprintf("%-12s", r[0])))
		sb.WriteString(styles.ValueStyle.Render(r[1]))
		sb.WriteString("\n")
	}
	return styles.Panel.Render(sb.String())
}

func enrolledLabel(enrolled bool) string {
	if enrolled {
		return styles.StatusOK.Render(icons.CheckOK.String() + " " + listings.YesNo(true))
	}
	return styles.StatusWarning.Render(icons.Warning.String() + " " + listings.YesNo(false))
}

// contentHeight leaves room for header, footer and their separators.
func (t *App) contentHeight() int {
	return max(5, t.height-4)
}

// renderHeader creates the header bar with app branding and the signed-in user
func (t *App) renderHeader() string {
	width := max(t.width, minTerminalWidth)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftRendered := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Academia"))

	rightRendered := ""
	if s := t.app.Session.Snapshot(); s.IsAuthenticated() && s.Claims != nil {
		rightRendered = " " + contextStyle.Render(icons.User.String()+" "+s.Claims.Subject+" · "+roleLabel(s)) + " "
	}

	fill := max(0, width-4-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered))
	return borderStyle.Render("╭─" + leftRendered + strings.Repeat("─", fill) + rightRendered + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (t *App) renderFooter() string {
	width := max(t.width, minTerminalWidth)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch t.screen {
	case ScreenLogin:
		shortcuts = []string{"Tab Campo", "Enter Entrar", "Esc Salir"}
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navegar", "Enter Abrir", "Esc Salir"}
	case ScreenBrowser:
		shortcuts = []string{"n/p Página", "g/G Inicio/Fin", "s Orden", "r Recargar", "b Volver " + icons.Back.String(), "q Salir"}
	case ScreenProfile:
		shortcuts = []string{"r Recargar", "b Volver " + icons.Back.String(), "q Salir"}
	}

	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}
	leftText := " " + strings.Join(styled, "  ") + " "

	rightText := ""
	if t.screen == ScreenBrowser && t.browser != nil && !t.browser.LastUpdate().IsZero() {
		rightText = " " + statusStyle.Render("Actualizado "+formatTimeSince(t.browser.LastUpdate())) + " "
	}

	fill := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText))
	return borderStyle.Render("╰─" + leftText + strings.Repeat("─", fill) + rightText + "─╯")
}

func roleLabel(s session.Session) string {
	switch {
	case s.IsAdmin():
		return "Administrador"
	case s.IsProfessor():
		return "Profesor"
	case s.IsStudent():
		return "Alumno"
	}
	return "Invitado"
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < 5*time.Second:
		return "ahora"
	case d < time.Minute:
		return fmt.Sprintf("hace %ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("hace %dm", int(d.Minutes()))
	}
	return fmt.Sprintf("hace %dh", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (t *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(t.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(t.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
