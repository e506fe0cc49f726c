// ABOUTME: Profile editor screen backed by the profile form controller
// ABOUTME: Stages edits, tracks dirtiness, and emits save/discard messages

package account

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitoteks-art/property-rental-platform/internal/client"
	"github.com/vitoteks-art/property-rental-platform/internal/phone"
	"github.com/vitoteks-art/property-rental-platform/internal/profile"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/icons"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/styles"
)

// SaveRequestedMsg asks the app to commit the staged profile edits
type SaveRequestedMsg struct{}

// ClosedMsg is sent when the user leaves the profile editor
type ClosedMsg struct{}

// MaxBioLength mirrors the web client's bio limit
const MaxBioLength = 500

// timezoneOptions are the zones the web client offers
var timezoneOptions = []huh.Option[string]{
	huh.NewOption("Not set", ""),
	huh.NewOption("Africa/Lagos", "Africa/Lagos"),
	huh.NewOption("UTC", "UTC"),
	huh.NewOption("Europe/London", "Europe/London"),
	huh.NewOption("America/New_York", "America/New_York"),
}

// Account is the profile editor screen. Field values are staged in the
// form controller, which keeps them separate from the committed session
// user until a save succeeds.
type Account struct {
	controller *profile.Form
	user       *client.User
	form       *huh.Form
	spin       spinner.Model

	// huh-bound working values, copied into the controller on submit
	fullName     string
	phoneCountry phone.Country
	phoneLocal   string
	timezone     string
	bio          string

	saving bool
	errMsg string
}

// New creates the profile editor for the given committed user
func New(controller *profile.Form, user *client.User) *Account {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	a := &Account{controller: controller, user: user, spin: sp}
	a.seedFromController()
	a.form = a.createForm()
	return a
}

// seedFromController copies the controller's working copy into the
// huh-bound fields. After a failed save this restores the user's edits
// rather than the committed values.
func (a *Account) seedFromController() {
	a.fullName = a.controller.FullName()
	a.phoneCountry = a.controller.PhoneCountry()
	a.phoneLocal = a.controller.PhoneLocal()
	a.timezone = a.controller.Timezone()
	a.bio = a.controller.Bio()
}

func (a *Account) createForm() *huh.Form {
	countryOptions := make([]huh.Option[phone.Country], 0, len(phone.Countries))
	for _, info := range phone.Countries {
		label := fmt.Sprintf("%s %s", info.Flag, info.CallingCode)
		countryOptions = append(countryOptions, huh.NewOption(label, info.Code))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Value(&a.fullName),
			huh.NewSelect[phone.Country]().
				Title("Phone country").
				Options(countryOptions...).
				Value(&a.phoneCountry),
			huh.NewInput().
				Title("Phone number").
				Placeholder("local number").
				Value(&a.phoneLocal),
			huh.NewSelect[string]().
				Title("Timezone").
				Options(timezoneOptions...).
				Value(&a.timezone),
			huh.NewText().
				Title("Professional bio").
				Description("Visible to tenants and administrators").
				CharLimit(MaxBioLength).
				Value(&a.bio),
		).Title("Profile Information").
			Description("Update your personal details and professional bio"),
	).WithTheme(styles.FormTheme())
}

// SetError shows a save failure and re-arms the form with the edits the
// controller preserved
func (a *Account) SetError(msg string) {
	a.errMsg = msg
	a.saving = false
	a.seedFromController()
	a.form = a.createForm()
}

// Init implements tea.Model
func (a *Account) Init() tea.Cmd {
	return tea.Batch(a.form.Init(), a.spin.Tick)
}

// Update implements tea.Model
func (a *Account) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// esc is ignored while a save is in flight; a discard must not
		// race the save result
		if msg.String() == "esc" && !a.saving {
			a.controller.Discard()
			return a, func() tea.Msg { return ClosedMsg{} }
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	// A save is in flight; drop edits until it resolves
	if a.saving {
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.stageEdits()
		a.saving = true
		a.errMsg = ""
		return a, func() tea.Msg { return SaveRequestedMsg{} }
	}

	return a, cmd
}

// stageEdits pushes the huh-bound values into the controller, marking
// the form dirty for every changed field
func (a *Account) stageEdits() {
	if a.fullName != a.controller.FullName() {
		a.controller.SetFullName(a.fullName)
	}
	if a.phoneCountry != a.controller.PhoneCountry() {
		a.controller.SetPhoneCountry(a.phoneCountry)
	}
	if a.phoneLocal != a.controller.PhoneLocal() {
		a.controller.SetPhoneLocal(a.phoneLocal)
	}
	if a.timezone != a.controller.Timezone() {
		a.controller.SetTimezone(a.timezone)
	}
	if a.bio != a.controller.Bio() {
		a.controller.SetBio(a.bio)
	}
}

// Saved marks the in-flight save as finished successfully
func (a *Account) Saved() {
	a.saving = false
	a.errMsg = ""
	a.seedFromController()
	a.form = a.createForm()
}

// View implements tea.Model
func (a *Account) View() string {
	var sb strings.Builder

	if a.errMsg != "" {
		sb.WriteString(styles.StatusError.Render(a.errMsg))
		sb.WriteString("\n\n")
	}

	if a.user != nil {
		email := a.user.Email
		if email == "" {
			email = "no email on file"
		}
		sb.WriteString(styles.LabelStyle.Render("Email: "))
		sb.WriteString(styles.ValueStyle.Render(email))
		sb.WriteString(styles.Help.Render("  (contact support to change your primary email)"))
		sb.WriteString("\n\n")
	}

	if a.saving {
		sb.WriteString(a.spin.View())
		sb.WriteString(styles.Subtitle.Render(" Saving changes..."))
		sb.WriteString("\n")
	} else if a.controller.Dirty() {
		sb.WriteString(styles.StatusWarning.Render(icons.Warning.String() + " You have unsaved changes"))
		sb.WriteString("\n\n")
	}

	sb.WriteString(a.form.View())
	return sb.String()
}
