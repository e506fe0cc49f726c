// ABOUTME: Login screen as a bubbletea model
// ABOUTME: Collects credentials with a huh form and emits a submit message

package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/vitoteks-art/property-rental-platform/internal/client"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/styles"
)

// SubmittedMsg is sent when the user submits credentials
type SubmittedMsg struct {
	Request client.LoginRequest
}

// CancelledMsg is sent when the user backs out of the login screen
type CancelledMsg struct{}

// Login is the login screen model
type Login struct {
	form     *huh.Form
	username string
	password string
	errMsg   string
	saving   bool
}

// New creates a login screen
func New() *Login {
	l := &Login{}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("your username").
				Value(&l.username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(required("password")),
		).Title("Sign in").
			Description("Welcome back to PropTrack"),
	).WithTheme(styles.FormTheme())
}

// SetError displays a submission error and re-arms the form so the user
// can correct the credentials
func (l *Login) SetError(msg string) {
	l.errMsg = msg
	l.saving = false
	l.form = l.createForm()
}

// SetSaving flags an in-flight submission; further submits are ignored
// until the result message arrives
func (l *Login) SetSaving(saving bool) {
	l.saving = saving
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return l, func() tea.Msg { return CancelledMsg{} }
	}
	if l.saving {
		return l, nil
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.saving = true
		req := client.LoginRequest{
			Username: strings.TrimSpace(l.username),
			Password: l.password,
		}
		return l, func() tea.Msg { return SubmittedMsg{Request: req} }
	}

	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder
	if l.errMsg != "" {
		sb.WriteString(styles.StatusError.Render(l.errMsg))
		sb.WriteString("\n\n")
	}
	if l.saving {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
		sb.WriteString("\n")
	}
	sb.WriteString(l.form.View())
	return sb.String()
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return &emptyFieldError{name}
		}
		return nil
	}
}

type emptyFieldError struct {
	field string
}

func (e *emptyFieldError) Error() string {
	return e.field + " is required"
}
