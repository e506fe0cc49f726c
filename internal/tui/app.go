// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Routes navigation through the route guard and hosts child screens

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitoteks-art/property-rental-platform/internal/authz"
	"github.com/vitoteks-art/property-rental-platform/internal/client"
	"github.com/vitoteks-art/property-rental-platform/internal/profile"
	"github.com/vitoteks-art/property-rental-platform/internal/session"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/account"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/dashboard"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/icons"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/login"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/register"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/security"
	"github.com/vitoteks-art/property-rental-platform/internal/tui/styles"
)

// Layout constants
const (
	minTerminalWidth = 80
)

// bootstrapDoneMsg is sent when the session restore attempt finishes
type bootstrapDoneMsg struct{}

// authDoneMsg is sent when a login or register call completes
type authDoneMsg struct {
	err error
}

// saveDoneMsg is sent when a profile save completes
type saveDoneMsg struct {
	err error
}

// passwordDoneMsg is sent when a password change completes
type passwordDoneMsg struct {
	err error
}

// App is the root model for the TUI. The current view is identified by
// its route path; every transition goes through the route guard so a
// protected view can never render without the session it requires.
type App struct {
	client *client.Client
	store  *session.Store
	form   *profile.Form

	path        string // current route
	pendingPath string // route to resume after login completes
	width       int
	height      int

	// Child models, created on navigation
	loginScreen    *login.Login
	registerScreen *register.Register
	accountScreen  *account.Account
	securityScreen *security.Security
	dashScreen     *dashboard.Dashboard
}

// New creates the TUI application
func New(apiClient *client.Client, store *session.Store) *App {
	return &App{
		client: apiClient,
		store:  store,
		form:   profile.New(store, apiClient),
		path:   authz.PathHome,
	}
}

// Init implements tea.Model. Bootstrap runs as the first command; until
// it completes the guard reports Pending and protected views show the
// loading state instead of a premature login redirect.
func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		a.store.Bootstrap(context.Background())
		return bootstrapDoneMsg{}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashScreen != nil {
			a.dashScreen.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case bootstrapDoneMsg:
		// Re-run any navigation that was waiting on the session check
		if a.pendingPath != "" {
			target := a.pendingPath
			a.pendingPath = ""
			return a, a.navigate(target)
		}
		return a, nil

	case login.SubmittedMsg:
		return a, a.doLogin(msg.Request)

	case login.CancelledMsg:
		a.pendingPath = ""
		return a, a.navigate(authz.PathHome)

	case register.SubmittedMsg:
		return a, a.doRegister(msg.Request)

	case register.CancelledMsg:
		return a, a.navigate(authz.PathHome)

	case authDoneMsg:
		return a.handleAuthDone(msg)

	case account.SaveRequestedMsg:
		return a, a.doSave()

	case account.ClosedMsg:
		return a, a.navigateToDashboard()

	case saveDoneMsg:
		if a.accountScreen == nil {
			return a, nil
		}
		if msg.err != nil {
			a.accountScreen.SetError(userFacingError(msg.err))
			return a, a.accountScreen.Init()
		}
		a.accountScreen.Saved()
		return a, a.accountScreen.Init()

	case security.SubmittedMsg:
		return a, a.doChangePassword(msg.CurrentPassword, msg.NewPassword)

	case security.ClosedMsg:
		return a, a.navigate(authz.PathAccount)

	case passwordDoneMsg:
		if a.securityScreen == nil {
			return a, nil
		}
		if msg.err != nil {
			a.securityScreen.SetError(userFacingError(msg.err))
		} else {
			a.securityScreen.Succeeded("")
		}
		return a, a.securityScreen.Init()

	default:
		// huh forms need ticks and internal messages forwarded
		return a.routeMsg(msg)
	}
}

// routeKey dispatches a key press to the active view
func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.path {
	case authz.PathHome:
		return a.updateHome(msg)
	case authz.PathAccessDenied:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "b", "esc":
			return a, a.navigateToDashboard()
		}
		return a, nil
	case authz.PathLandlord, authz.PathTenant, authz.PathAdmin:
		return a.updateDashboard(msg)
	case authz.PathNotification, authz.PathBilling:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "b", "esc":
			return a, a.navigate(authz.PathAccount)
		}
		return a, nil
	default:
		return a.routeMsg(msg)
	}
}

// routeMsg forwards a message to the active child model
func (a *App) routeMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.path {
	case authz.PathLogin:
		if a.loginScreen == nil {
			return a, nil
		}
		model, cmd := a.loginScreen.Update(msg)
		a.loginScreen = model.(*login.Login)
		return a, cmd
	case authz.PathRegister:
		if a.registerScreen == nil {
			return a, nil
		}
		model, cmd := a.registerScreen.Update(msg)
		a.registerScreen = model.(*register.Register)
		return a, cmd
	case authz.PathAccount:
		if a.accountScreen == nil {
			return a, nil
		}
		model, cmd := a.accountScreen.Update(msg)
		a.accountScreen = model.(*account.Account)
		return a, cmd
	case authz.PathSecurity:
		if a.securityScreen == nil {
			return a, nil
		}
		model, cmd := a.securityScreen.Update(msg)
		a.securityScreen = model.(*security.Security)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := a.store.Snapshot()
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "l":
		if !state.Authenticated() {
			return a, a.navigate(authz.PathLogin)
		}
	case "r":
		if !state.Authenticated() {
			return a, a.navigate(authz.PathRegister)
		}
	case "d", "enter":
		if state.Authenticated() {
			return a, a.navigateToDashboard()
		}
	case "a":
		if state.Authenticated() {
			return a, a.navigate(authz.PathAccount)
		}
	case "o":
		if state.Authenticated() {
			a.store.Logout()
			return a, nil
		}
	}
	return a, nil
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "a":
		return a, a.navigate(authz.PathAccount)
	case "s":
		return a, a.navigate(authz.PathSecurity)
	case "n":
		return a, a.navigate(authz.PathNotification)
	case "p":
		return a, a.navigate(authz.PathBilling)
	case "o":
		a.store.Logout()
		return a, a.navigate(authz.PathHome)
	case "b", "esc":
		return a, a.navigate(authz.PathHome)
	}
	return a, nil
}

// navigate transitions to a path, consulting the route guard first.
// Pending defers the navigation until bootstrap finishes; unauthorized
// navigations land on login or access-denied without rendering the
// protected view.
func (a *App) navigate(path string) tea.Cmd {
	switch authz.Guard(path, a.store.Snapshot()) {
	case authz.Pending:
		a.pendingPath = path
		return nil

	case authz.DeniedUnauthenticated:
		a.pendingPath = path
		a.path = authz.PathLogin
		a.loginScreen = login.New()
		return a.loginScreen.Init()

	case authz.DeniedWrongRole:
		a.path = authz.PathAccessDenied
		return nil
	}

	a.path = path
	return a.mountScreen(path)
}

// mountScreen creates the child model for an allowed path
func (a *App) mountScreen(path string) tea.Cmd {
	switch path {
	case authz.PathLogin:
		a.loginScreen = login.New()
		return a.loginScreen.Init()
	case authz.PathRegister:
		a.registerScreen = register.New()
		return a.registerScreen.Init()
	case authz.PathAccount:
		user := a.store.Snapshot().User
		a.accountScreen = account.New(a.form, user)
		return a.accountScreen.Init()
	case authz.PathSecurity:
		a.securityScreen = security.New()
		return a.securityScreen.Init()
	case authz.PathLandlord, authz.PathTenant, authz.PathAdmin:
		a.dashScreen = dashboard.New(a.store.Snapshot().User)
		return a.dashScreen.Init()
	}
	return nil
}

// navigateToDashboard routes to the dashboard for the current role
func (a *App) navigateToDashboard() tea.Cmd {
	user := a.store.Snapshot().User
	if user == nil {
		return a.navigate(authz.PathLogin)
	}
	return a.navigate(authz.DashboardPath(user.Role))
}

func (a *App) doLogin(req client.LoginRequest) tea.Cmd {
	if a.loginScreen != nil {
		a.loginScreen.SetSaving(true)
	}
	return func() tea.Msg {
		return authDoneMsg{err: a.store.Login(context.Background(), req)}
	}
}

func (a *App) doRegister(req client.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{err: a.store.Register(context.Background(), req)}
	}
}

func (a *App) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		errText := userFacingError(msg.err)
		switch a.path {
		case authz.PathLogin:
			if a.loginScreen != nil {
				a.loginScreen.SetError(errText)
				return a, a.loginScreen.Init()
			}
		case authz.PathRegister:
			if a.registerScreen != nil {
				a.registerScreen.SetError(errText)
				return a, a.registerScreen.Init()
			}
		}
		return a, nil
	}

	a.loginScreen = nil
	a.registerScreen = nil

	// Resume the navigation that triggered the login redirect, or land
	// on the role dashboard
	if a.pendingPath != "" {
		target := a.pendingPath
		a.pendingPath = ""
		return a, a.navigate(target)
	}
	return a, a.navigateToDashboard()
}

func (a *App) doSave() tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{err: a.form.Save(context.Background())}
	}
}

func (a *App) doChangePassword(current, next string) tea.Cmd {
	token := a.store.Snapshot().Access
	return func() tea.Msg {
		return passwordDoneMsg{err: a.client.ChangePassword(context.Background(), token, current, next)}
	}
}

// userFacingError turns client errors into display text
func userFacingError(err error) string {
	if apiErr, ok := client.IsAPIError(err); ok {
		return apiErr.Message
	}
	if client.IsNetworkError(err) {
		return "Cannot reach the server. Check your connection and try again."
	}
	return err.Error()
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.path {
	case authz.PathHome:
		content = a.viewHome()
	case authz.PathLogin:
		if a.loginScreen != nil {
			content = a.loginScreen.View()
		}
	case authz.PathRegister:
		if a.registerScreen != nil {
			content = a.registerScreen.View()
		}
	case authz.PathAccessDenied:
		content = a.viewAccessDenied()
	case authz.PathAccount:
		if a.accountScreen != nil {
			content = a.accountScreen.View()
		}
	case authz.PathSecurity:
		if a.securityScreen != nil {
			content = a.securityScreen.View()
		}
	case authz.PathNotification:
		content = a.viewPlaceholder(icons.Bell.String()+" Notifications", "Notification preferences are coming soon.")
	case authz.PathBilling:
		content = a.viewPlaceholder(icons.Card.String()+" Billing", "Billing and payment methods are coming soon.")
	case authz.PathLandlord, authz.PathTenant, authz.PathAdmin:
		if a.dashScreen != nil {
			content = a.dashScreen.View()
		}
	default:
		content = a.viewHome()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewHome() string {
	state := a.store.Snapshot()

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.App.String() + " PropTrack"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Property management for landlords and tenants"))
	sb.WriteString("\n\n")

	if state.Bootstrapping {
		sb.WriteString(styles.Subtitle.Render("Restoring your session..."))
		return sb.String()
	}

	if state.Authenticated() {
		sb.WriteString(styles.LabelStyle.Render("Signed in as "))
		sb.WriteString(styles.ValueStyle.Render(state.User.Username))
		sb.WriteString(" ")
		sb.WriteString(styles.RoleBadge.Render(string(state.User.Role)))
		sb.WriteString("\n\n")
		sb.WriteString(menuLine("d", "Open dashboard"))
		sb.WriteString(menuLine("a", "Account settings"))
		sb.WriteString(menuLine("o", "Sign out"))
	} else {
		sb.WriteString(menuLine("l", "Sign in"))
		sb.WriteString(menuLine("r", "Create an account"))
	}
	sb.WriteString(menuLine("q", "Quit"))

	return sb.String()
}

func menuLine(key, label string) string {
	return "  " + styles.KeyStyle.Render(key) + "  " + label + "\n"
}

func (a *App) viewAccessDenied() string {
	var sb strings.Builder
	sb.WriteString(styles.StatusError.Render(icons.Critical.String() + " Access denied"))
	sb.WriteString("\n\n")
	sb.WriteString("Your account does not have permission to view this page.\n")
	if user := a.store.Snapshot().User; user != nil {
		sb.WriteString(styles.LabelStyle.Render("Your role: "))
		sb.WriteString(styles.RoleBadge.Render(string(user.Role)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(menuLine("b", "Back to your dashboard"))
	sb.WriteString(menuLine("q", "Quit"))
	return sb.String()
}

func (a *App) viewPlaceholder(title, body string) string {
	content := styles.Subtitle.Render(title) + "\n\n" + body
	return styles.Panel.Render(content) + "\n\n" + menuLine("b", "Back")
}

// renderHeader creates the header bar with app branding and the
// signed-in identity
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("PropTrack"))

	rightText := ""
	if user := a.store.Snapshot().User; user != nil {
		rightText = contextStyle.Render(fmt.Sprintf("%s (%s)", user.Username, user.Role)) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts for the
// current view
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.path {
	case authz.PathHome:
		shortcuts = []string{"l Login", "r Register", "q Quit"}
		if a.store.Snapshot().Authenticated() {
			shortcuts = []string{"d Dashboard", "a Account", "o Logout", "q Quit"}
		}
	case authz.PathLogin, authz.PathRegister, authz.PathAccount, authz.PathSecurity:
		shortcuts = []string{"Tab Next field", "Enter Submit", "Esc Back"}
	case authz.PathAccessDenied, authz.PathNotification, authz.PathBilling:
		shortcuts = []string{"b Back", "q Quit"}
	default:
		shortcuts = []string{"a Account", "s Security", "n Notifications", "p Billing", "o Logout", "q Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	leftWidth := lipgloss.Width(leftPlainText)
	fillWidth := width - 4 - leftWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"
	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, store *session.Store) error {
	p := tea.NewProgram(
		New(apiClient, store),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
