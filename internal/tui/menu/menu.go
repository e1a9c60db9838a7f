// ABOUTME: Section menu shown after login
// ABOUTME: Offers only the listings the session's roles may browse

package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/markalston/academia-console/internal/session"
	"github.com/markalston/academia-console/internal/tui/icons"
)

// Non-listing choices.
const (
	ChoiceProfile = "profile"
	ChoiceLogout  = "logout"
)

// SelectedMsg is sent with the chosen entity or choice.
type SelectedMsg struct {
	Choice string
}

// CancelledMsg is sent when the menu is aborted.
type CancelledMsg struct{}

type option struct {
	label string
	value string
	icon  icons.Icon
}

var sections = []option{
	{"Alumnos", session.EntityStudents, icons.Student},
	{"Profesores", session.EntityProfessors, icons.Professor},
	{"Clases", session.EntityClasses, icons.Class},
	{"Ejercicios", session.EntityExercises, icons.Exercise},
	{"Entregas", session.EntityDeliveries, icons.Delivery},
	{"Materiales", session.EntityMaterials, icons.Material},
	{"Pagos", session.EntityPayments, icons.Payment},
}

// Menu represents the section selection menu
type Menu struct {
	options  []option
	selected string
	form     *huh.Form
}

// New builds the menu for s.
func New(s session.Session) *Menu {
	m := &Menu{}
	for _, o := range sections {
		if s.CanList(o.value) {
			m.options = append(m.options, o)
		}
	}
	if s.IsStudent() {
		m.options = append(m.options, option{"Mi perfil", ChoiceProfile, icons.User})
	}
	m.options = append(m.options, option{"Cerrar sesión", ChoiceLogout, icons.Quit})
	m.selected = m.options[0].value
	m.form = m.createForm()
	return m
}

func (m *Menu) createForm() *huh.Form {
	opts := make([]huh.Option[string], 0, len(m.options))
	for _, o := range m.options {
		opts = append(opts, huh.NewOption(o.icon.String()+" "+o.label, o.value))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("¿Qué quieres consultar?").
				Options(opts...).
				Value(&m.selected),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

// Choices returns the option values in display order.
func (m *Menu) Choices() []string {
	out := make([]string, len(m.options))
	for i, o := range m.options {
		out[i] = o.value
	}
	return out
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		choice := m.selected
		m.form = m.createForm()
		return m, tea.Batch(m.form.Init(), func() tea.Msg { return SelectedMsg{Choice: choice} })
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelledMsg{} }
	}
	return m, cmd
}

// View implements tea.Model
func (m *Menu) View() string {
	return m.form.View()
}
