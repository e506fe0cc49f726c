// ABOUTME: Tests for the root TUI model
// ABOUTME: Verifies guarded navigation, redirects, and frame rendering

package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vitoteks-art/property-rental-platform/internal/authz"
	"github.com/vitoteks-art/property-rental-platform/internal/client"
	"github.com/vitoteks-art/property-rental-platform/internal/session"
)

// bootedStore returns a store past its bootstrap, optionally signed in
func bootedStore(t *testing.T, user *client.User) *session.Store {
	t.Helper()
	c := client.New("http://127.0.0.1:1")
	store := session.New(c, nil)
	store.Bootstrap(context.Background()) // no token, no network call
	if user != nil {
		store.SetUser(user)
	}
	return store
}

func tenant() *client.User {
	return &client.User{ID: 1, Username: "ada", Role: client.RoleTenant}
}

func TestNavigate_AnonymousToProtected_RedirectsToLogin(t *testing.T) {
	store := bootedStore(t, nil)
	app := New(client.New("http://127.0.0.1:1"), store)

	app.navigate(authz.PathAccount)

	if app.path != authz.PathLogin {
		t.Errorf("expected login redirect, got %s", app.path)
	}
	if app.pendingPath != authz.PathAccount {
		t.Errorf("expected pending path preserved, got %s", app.pendingPath)
	}
	if app.loginScreen == nil {
		t.Error("login screen should be mounted")
	}
}

func TestNavigate_WrongRole_ShowsAccessDenied(t *testing.T) {
	store := bootedStore(t, tenant())
	app := New(client.New("http://127.0.0.1:1"), store)

	app.navigate(authz.PathLandlord)

	if app.path != authz.PathAccessDenied {
		t.Errorf("expected access denied, got %s", app.path)
	}
	if app.dashScreen != nil {
		t.Error("protected view must not be mounted on denial")
	}
}

func TestNavigate_MatchingRole_MountsDashboard(t *testing.T) {
	store := bootedStore(t, tenant())
	app := New(client.New("http://127.0.0.1:1"), store)

	app.navigate(authz.PathTenant)

	if app.path != authz.PathTenant {
		t.Errorf("expected tenant dashboard, got %s", app.path)
	}
	if app.dashScreen == nil {
		t.Error("dashboard should be mounted")
	}
}

func TestNavigate_Bootstrapping_DefersNavigation(t *testing.T) {
	// A store that was never bootstrapped still reports Pending
	store := session.New(client.New("http://127.0.0.1:1"), nil)
	app := New(client.New("http://127.0.0.1:1"), store)

	app.navigate(authz.PathAccount)

	if app.path != authz.PathHome {
		t.Errorf("navigation should be deferred, path = %s", app.path)
	}
	if app.pendingPath != authz.PathAccount {
		t.Errorf("expected pending path recorded, got %s", app.pendingPath)
	}

	// Once bootstrap completes the deferred navigation re-runs; with no
	// session it lands on login
	store.Bootstrap(context.Background())
	app.Update(bootstrapDoneMsg{})

	if app.path != authz.PathLogin {
		t.Errorf("expected deferred navigation to resume, got %s", app.path)
	}
}

func TestNavigateToDashboard_PicksRolePath(t *testing.T) {
	tests := []struct {
		role client.Role
		want string
	}{
		{client.RoleTenant, authz.PathTenant},
		{client.RoleLandlord, authz.PathLandlord},
		{client.RoleAdmin, authz.PathAdmin},
	}

	for _, tt := range tests {
		store := bootedStore(t, &client.User{ID: 1, Username: "x", Role: tt.role})
		app := New(client.New("http://127.0.0.1:1"), store)
		app.navigateToDashboard()
		if app.path != tt.want {
			t.Errorf("role %s: expected %s, got %s", tt.role, tt.want, app.path)
		}
	}
}

func TestView_RendersFrame(t *testing.T) {
	store := bootedStore(t, nil)
	app := New(client.New("http://127.0.0.1:1"), store)

	view := app.View()

	if !strings.Contains(view, "PropTrack") {
		t.Error("expected app name in the frame")
	}
	if !strings.Contains(view, "╭─") || !strings.Contains(view, "╰─") {
		t.Error("expected header and footer borders")
	}
}

func TestView_HeaderShowsIdentity(t *testing.T) {
	store := bootedStore(t, tenant())
	app := New(client.New("http://127.0.0.1:1"), store)

	if !strings.Contains(app.View(), "ada") {
		t.Error("expected username in the header")
	}
}

func TestViewAccessDenied_ShowsRole(t *testing.T) {
	store := bootedStore(t, tenant())
	app := New(client.New("http://127.0.0.1:1"), store)
	app.navigate(authz.PathLandlord)

	view := app.View()
	if !strings.Contains(view, "Access denied") {
		t.Error("expected denial message")
	}
	if !strings.Contains(view, "TENANT") {
		t.Error("expected the user's role in the explanation")
	}
}

func TestUserFacingError(t *testing.T) {
	apiErr := &client.APIError{Status: 400, Message: "username: already taken"}
	if got := userFacingError(apiErr); got != "username: already taken" {
		t.Errorf("API errors should show verbatim, got %q", got)
	}

	netErr := &client.NetworkError{URL: "http://x", Err: errors.New("refused")}
	if got := userFacingError(netErr); !strings.Contains(got, "Cannot reach the server") {
		t.Errorf("network errors should get a friendly message, got %q", got)
	}

	plain := errors.New("something odd")
	if got := userFacingError(plain); got != "something odd" {
		t.Errorf("unknown errors pass through, got %q", got)
	}
}
