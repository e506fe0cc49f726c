// ABOUTME: Route authorization decisions for protected and role-gated views
// ABOUTME: Pure functions over session state, independent of any UI layer

package authz

import (
	"github.com/vitoteks-art/property-rental-platform/internal/client"
	"github.com/vitoteks-art/property-rental-platform/internal/session"
)

// Decision is the outcome of an authorization check for one navigation
type Decision int

const (
	// Pending means the session is still bootstrapping; render a loading
	// state instead of redirecting, so a valid stored session is not
	// bounced to login before it finishes restoring
	Pending Decision = iota
	// Allowed renders the requested view
	Allowed
	// DeniedUnauthenticated redirects to the login view
	DeniedUnauthenticated
	// DeniedWrongRole redirects to the access-denied view
	DeniedWrongRole
)

// String returns the decision name for logs and tests
func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Allowed:
		return "allowed"
	case DeniedUnauthenticated:
		return "denied-unauthenticated"
	case DeniedWrongRole:
		return "denied-wrong-role"
	default:
		return "unknown"
	}
}

// Authorize evaluates a navigation attempt against the session state.
// A nil or empty required list means any authenticated user is allowed.
// The role check only runs once a user is present, so an unknown role can
// never slip through as authenticated (fail-closed).
func Authorize(state session.State, required []client.Role) Decision {
	if state.Bootstrapping {
		return Pending
	}
	if state.User == nil {
		return DeniedUnauthenticated
	}
	if len(required) == 0 {
		return Allowed
	}
	for _, role := range required {
		if state.User.Role == role {
			return Allowed
		}
	}
	return DeniedWrongRole
}
