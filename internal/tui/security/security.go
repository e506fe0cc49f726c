// ABOUTME: Password change screen as a bubbletea model
// ABOUTME: Validates the new password client-side before emitting a submit message

package security

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/vitoteks-art/property-rental-platform/internal/tui/icons"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/styles"
	"github.com/vitoteks-art/property-rental-platform/internal/validate"
)

// SubmittedMsg is sent when the user submits a valid password change
type SubmittedMsg struct {
	CurrentPassword string
	NewPassword     string
}

// ClosedMsg is sent when the user leaves the security screen
type ClosedMsg struct{}

// Security is the password change screen model
type Security struct {
	form *huh.Form

	current string
	next    string
	confirm string

	errMsg string
	okMsg  string
	saving bool
}

// New creates a password change screen
func New() *Security {
	s := &Security{}
	s.form = s.createForm()
	return s
}

func (s *Security) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&s.current).
				Validate(func(v string) error {
					if v == "" {
						return fmt.Errorf("current password is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("New password").
				Description(fmt.Sprintf("At least %d characters", validate.MinPasswordLength)).
				EchoMode(huh.EchoModePassword).
				Value(&s.next).
				Validate(validate.Password),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&s.confirm).
				Validate(func(v string) error {
					if v != s.next {
						return fmt.Errorf("passwords do not match")
					}
					return nil
				}),
		).Title("Change Password").
			Description("Choose a strong password you don't use elsewhere"),
	).WithTheme(styles.FormTheme())
}

// SetError shows a submission failure and re-arms the form. Password
// fields are cleared; the user retypes everything.
func (s *Security) SetError(msg string) {
	s.errMsg = msg
	s.okMsg = ""
	s.saving = false
	s.current, s.next, s.confirm = "", "", ""
	s.form = s.createForm()
}

// Succeeded shows the success notice and resets the form for another
// change
func (s *Security) Succeeded(detail string) {
	if detail == "" {
		detail = "Password updated successfully"
	}
	s.okMsg = detail
	s.errMsg = ""
	s.saving = false
	s.current, s.next, s.confirm = "", "", ""
	s.form = s.createForm()
}

// Init implements tea.Model
func (s *Security) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *Security) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return s, func() tea.Msg { return ClosedMsg{} }
	}
	if s.saving {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.saving = true
		s.errMsg = ""
		s.okMsg = ""
		return s, func() tea.Msg {
			return SubmittedMsg{CurrentPassword: s.current, NewPassword: s.next}
		}
	}

	return s, cmd
}

// View implements tea.Model
func (s *Security) View() string {
	var sb strings.Builder
	if s.errMsg != "" {
		sb.WriteString(styles.StatusError.Render(icons.Critical.String() + " " + s.errMsg))
		sb.WriteString("\n\n")
	}
	if s.okMsg != "" {
		sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String() + " " + s.okMsg))
		sb.WriteString("\n\n")
	}
	if s.saving {
		sb.WriteString(styles.Subtitle.Render("Updating password..."))
		sb.WriteString("\n")
	}
	sb.WriteString(s.form.View())
	return sb.String()
}
