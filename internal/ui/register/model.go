package register

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskshop/internal/auth"
	"github.com/nhle/taskshop/internal/route"
	"github.com/nhle/taskshop/internal/theme"
	"github.com/nhle/taskshop/internal/ui"
	"github.com/nhle/taskshop/internal/validation"
)

// Registrar creates an account and signs it in.
type Registrar interface {
	Signup(ctx context.Context, email, password, displayName string) error
}

// ResultMsg carries the outcome of a sign-up attempt.
type ResultMsg struct {
	Err error
}

type formBindings struct {
	name            string
	email           string
	password        string
	confirmPassword string
}

// Model is the account creation screen.
type Model struct {
	registrar  Registrar
	form       *huh.Form
	fb         *formBindings
	err        string
	submitting bool
	width      int
	height     int
}

// New creates a register model.
func New(r Registrar, width, height int) Model {
	m := Model{
		registrar: r,
		fb:        &formBindings{},
		width:     width,
		height:    height,
	}
	m.form = m.buildForm()
	return m
}

// Reset clears the form and returns its init command.
func (m *Model) Reset() tea.Cmd {
	*m.fb = formBindings{}
	m.err = ""
	m.submitting = false
	m.form = m.buildForm()
	return m.form.Init()
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Submitting reports whether a sign-up request is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// Err returns the message shown above the form.
func (m Model) Err() string {
	return m.err
}

// Update handles messages for the register form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		m.submitting = false
		if msg.Err == nil {
			return m, m.Reset()
		}
		m.err = errorText(msg.Err)
		m.fb.password = ""
		m.fb.confirmPassword = ""
		m.form = m.buildForm()
		return m, m.form.Init()

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		if msg.String() == "ctrl+l" {
			return m, ui.Navigate(route.Login)
		}
	}

	if m.submitting {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.submit()
	}
	if m.form.State == huh.StateAborted {
		return m, m.Reset()
	}
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	form := validation.Register{
		Name:            m.fb.name,
		Email:           m.fb.email,
		Password:        m.fb.password,
		ConfirmPassword: m.fb.confirmPassword,
	}
	if err := validation.ValidateRegister(form); err != nil {
		m.err = errorText(err)
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	m.err = ""
	m.submitting = true
	r := m.registrar
	name := strings.TrimSpace(m.fb.name)
	email := strings.TrimSpace(m.fb.email)
	password := m.fb.password
	return m, func() tea.Msg {
		return ResultMsg{Err: r.Signup(context.Background(), email, password, name)}
	}
}

// View renders the register form.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Create account"))
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(theme.ErrorStyle.Render(m.err))
		b.WriteString("\n\n")
	}

	if m.submitting {
		b.WriteString(theme.MutedStyle.Render("Creating account..."))
	} else {
		b.WriteString(m.form.View())
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("Already registered? ctrl+l to sign in"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(ui.FormWidth(width)).WithHeight(ui.FormHeight(height))
	}
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Optional").
				Value(&m.fb.name),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email),
			huh.NewInput().
				Title("Password").
				Description("At least 6 characters").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
			huh.NewInput().
				Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.confirmPassword),
		),
	).WithShowHelp(false).
		WithWidth(ui.FormWidth(m.width)).
		WithHeight(ui.FormHeight(m.height))
}

func errorText(err error) string {
	if ve, ok := validation.AsValidationError(err); ok {
		return ve.UserMessage()
	}
	if errors.Is(err, auth.ErrBusy) {
		return "Please wait for the current request to finish."
	}
	return err.Error()
}
