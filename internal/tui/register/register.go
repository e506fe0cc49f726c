// ABOUTME: Registration screen as a bubbletea model
// ABOUTME: Validates input client-side before emitting a submit message

package register

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/vitoteks-art/property-rental-platform/internal/client"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/styles"
	"github.com/vitoteks-art/property-rental-platform/internal/validate"
)

// SubmittedMsg is sent when the user submits a valid registration
type SubmittedMsg struct {
	Request client.RegisterRequest
}

// CancelledMsg is sent when the user backs out of the register screen
type CancelledMsg struct{}

// Register is the registration screen model
type Register struct {
	form *huh.Form

	username  string
	email     string
	password  string
	confirm   string
	firstName string
	lastName  string
	role      client.Role

	errMsg string
	saving bool
}

// New creates a registration screen
func New() *Register {
	r := &Register{role: client.RoleTenant}
	r.form = r.createForm()
	return r
}

// Only tenant and landlord may self-register; admins are provisioned
// server-side.
var roleOptions = []huh.Option[client.Role]{
	huh.NewOption("Tenant - I'm renting a home", client.RoleTenant),
	huh.NewOption("Landlord - I manage properties", client.RoleLandlord),
}

func (r *Register) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("pick a username").
				Value(&r.username).
				Validate(validateRequired),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com (optional)").
				Value(&r.email),
			huh.NewInput().
				Title("First name").
				Value(&r.firstName),
			huh.NewInput().
				Title("Last name").
				Value(&r.lastName),
			huh.NewSelect[client.Role]().
				Title("I am a...").
				Options(roleOptions...).
				Value(&r.role),
		).Title("Create your account").
			Description("Join PropTrack to manage or rent properties"),
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				Description(fmt.Sprintf("At least %d characters", validate.MinPasswordLength)).
				EchoMode(huh.EchoModePassword).
				Value(&r.password).
				Validate(validate.Password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&r.confirm).
				Validate(func(s string) error {
					if s != r.password {
						return fmt.Errorf("passwords do not match")
					}
					return nil
				}),
		).Title("Choose a password"),
	).WithTheme(styles.FormTheme())
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("this field is required")
	}
	return nil
}

// SetError displays a submission error and re-arms the form
func (r *Register) SetError(msg string) {
	r.errMsg = msg
	r.saving = false
	r.form = r.createForm()
}

// Init implements tea.Model
func (r *Register) Init() tea.Cmd {
	return r.form.Init()
}

// Update implements tea.Model
func (r *Register) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return r, func() tea.Msg { return CancelledMsg{} }
	}
	if r.saving {
		return r, nil
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.saving = true
		req := client.RegisterRequest{
			Username:  strings.TrimSpace(r.username),
			Email:     strings.TrimSpace(r.email),
			Password:  r.password,
			FirstName: strings.TrimSpace(r.firstName),
			LastName:  strings.TrimSpace(r.lastName),
			Role:      r.role,
		}
		return r, func() tea.Msg { return SubmittedMsg{Request: req} }
	}

	return r, cmd
}

// View implements tea.Model
func (r *Register) View() string {
	var sb strings.Builder
	if r.errMsg != "" {
		sb.WriteString(styles.StatusError.Render(r.errMsg))
		sb.WriteString("\n\n")
	}
	if r.saving {
		sb.WriteString(styles.Subtitle.Render("Creating account..."))
		sb.WriteString("\n")
	}
	sb.WriteString(r.form.View())
	return sb.String()
}
