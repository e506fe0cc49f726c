// ABOUTME: Role-specific dashboard screens rendered as static panels
// ABOUTME: Landlord, tenant, and admin each get a tailored summary view

package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitoteks-art/property-rental-platform/internal/client"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/icons"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/styles"
)

// Dashboard renders the role-appropriate landing view for a signed-in
// user. It is a read-only screen; navigation is handled by the app.
type Dashboard struct {
	user  *client.User
	width int
}

// New creates a dashboard for the given user
func New(user *client.User) *Dashboard {
	return &Dashboard{user: user, width: 80}
}

// Init implements tea.Model
func (d *Dashboard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		d.width = size.Width
	}
	return d, nil
}

// View implements tea.Model
func (d *Dashboard) View() string {
	if d.user == nil {
		return styles.Subtitle.Render("No user loaded")
	}

	var sb strings.Builder
	sb.WriteString(d.renderGreeting())
	sb.WriteString("\n\n")

	switch d.user.Role {
	case client.RoleLandlord:
		sb.WriteString(d.renderLandlord())
	case client.RoleTenant:
		sb.WriteString(d.renderTenant())
	case client.RoleAdmin:
		sb.WriteString(d.renderAdmin())
	default:
		sb.WriteString(styles.StatusWarning.Render("Unknown role; contact support"))
	}

	return sb.String()
}

func (d *Dashboard) renderGreeting() string {
	name := strings.TrimSpace(d.user.FirstName)
	if name == "" {
		name = d.user.Username
	}
	greeting := styles.Title.Render(fmt.Sprintf("Welcome back, %s", name))
	badge := styles.RoleBadge.Render(string(d.user.Role))
	return lipgloss.JoinHorizontal(lipgloss.Center, greeting, "  ", badge)
}

func (d *Dashboard) renderLandlord() string {
	portfolio := d.panel(icons.Building.String()+" Portfolio",
		keyValue("Properties", "—"),
		keyValue("Occupied units", "—"),
		keyValue("Vacant units", "—"),
	)
	income := d.panel(icons.Card.String()+" Rent Collection",
		keyValue("Collected this month", "—"),
		keyValue("Outstanding", "—"),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, portfolio, " ", income)
}

func (d *Dashboard) renderTenant() string {
	lease := d.panel(icons.Home.String()+" My Lease",
		keyValue("Property", "—"),
		keyValue("Lease ends", "—"),
	)
	payments := d.panel(icons.Card.String()+" Payments",
		keyValue("Next payment due", "—"),
		keyValue("Last payment", "—"),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, lease, " ", payments)
}

func (d *Dashboard) renderAdmin() string {
	platform := d.panel(icons.Shield.String()+" Platform",
		keyValue("Registered users", "—"),
		keyValue("Active listings", "—"),
		keyValue("Open reports", "—"),
	)
	return platform
}

// panel renders a titled box in the shared panel style
func (d *Dashboard) panel(title string, rows ...string) string {
	body := styles.Subtitle.Render(title) + "\n\n" + strings.Join(rows, "\n")
	width := d.width/2 - 4
	if width < 28 {
		width = 28
	}
	return styles.Panel.Width(width).Render(body)
}

func keyValue(key, value string) string {
	return styles.LabelStyle.Render(key+": ") + styles.ValueStyle.Render(value)
}
