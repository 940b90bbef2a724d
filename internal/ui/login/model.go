package login

import (
	"context"
	"errors"
	"fmt"
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

// Authenticator signs a user in.
type Authenticator interface {
	Login(ctx context.Context, email, password string) error
}

// ResultMsg carries the outcome of a sign-in attempt.
type ResultMsg struct {
	Err error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email    string
	password string
}

// Model is the sign-in screen.
type Model struct {
	auth       Authenticator
	form       *huh.Form
	fb         *formBindings
	err        string
	submitting bool
	width      int
	height     int
}

// New creates a login model.
func New(a Authenticator, width, height int) Model {
	m := Model{
		auth:   a,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

// Reset clears the form and any error, and returns the form's init command.
func (m *Model) Reset() tea.Cmd {
	m.fb.email = ""
	m.fb.password = ""
	m.err = ""
	m.submitting = false
	m.form = m.buildForm()
	return m.form.Init()
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Submitting reports whether a sign-in request is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// Err returns the message shown above the form.
func (m Model) Err() string {
	return m.err
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		m.submitting = false
		if msg.Err == nil {
			return m, m.Reset()
		}
		m.err = errorText(msg.Err)
		m.fb.password = ""
		m.form = m.buildForm()
		return m, m.form.Init()

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		if msg.String() == "ctrl+r" {
			return m, ui.Navigate(route.Register)
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
	form := validation.Login{Email: m.fb.email, Password: m.fb.password}
	if err := validation.ValidateLogin(form); err != nil {
		m.err = errorText(err)
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	m.err = ""
	m.submitting = true
	a := m.auth
	email := strings.TrimSpace(m.fb.email)
	password := m.fb.password
	return m, func() tea.Msg {
		return ResultMsg{Err: a.Login(context.Background(), email, password)}
	}
}

// View renders the login form.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Sign in"))
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(theme.ErrorStyle.Render(m.err))
		b.WriteString("\n\n")
	}

	if m.submitting {
		b.WriteString(theme.MutedStyle.Render("Signing in..."))
	} else {
		b.WriteString(m.form.View())
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("No account yet? ctrl+r to register"))

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
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateRequired("Email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
		),
	).WithShowHelp(false).
		WithWidth(ui.FormWidth(m.width)).
		WithHeight(ui.FormHeight(m.height))
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func errorText(err error) string {
	if ve, ok := validation.AsValidationError(err); ok {
		return ve.UserMessage()
	}
	if errors.Is(err, auth.ErrBusy) {
		return "Please wait for the current request to finish."
	}
	var ae *auth.Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
