// ABOUTME: Route table for the application's views
// ABOUTME: Maps paths to their authentication and role requirements

package authz

import (
	"github.com/vitoteks-art/property-rental-platform/internal/client"
	"github.com/vitoteks-art/property-rental-platform/internal/session"
)

// Route describes one navigable view
type Route struct {
	Path      string
	Protected bool          // requires an authenticated user
	Roles     []client.Role // empty means any authenticated role
}

// Well-known paths
const (
	PathHome         = "/"
	PathLogin        = "/login"
	PathRegister     = "/register"
	PathAccessDenied = "/access-denied"
	PathAccount      = "/account"
	PathSecurity     = "/account/security"
	PathNotification = "/account/notifications"
	PathBilling      = "/account/billing"
	PathLandlord     = "/landlord"
	PathTenant       = "/tenant"
	PathAdmin        = "/admin"
)

// Routes is the application route table. Public marketing and auth pages
// carry no requirements; account pages need any logged-in role; dashboards
// are restricted to their role.
var Routes = []Route{
	{Path: PathHome},
	{Path: PathLogin},
	{Path: PathRegister},
	{Path: PathAccessDenied},
	{Path: PathAccount, Protected: true},
	{Path: PathSecurity, Protected: true},
	{Path: PathNotification, Protected: true},
	{Path: PathBilling, Protected: true},
	{Path: PathLandlord, Protected: true, Roles: []client.Role{client.RoleLandlord}},
	{Path: PathTenant, Protected: true, Roles: []client.Role{client.RoleTenant}},
	{Path: PathAdmin, Protected: true, Roles: []client.Role{client.RoleAdmin}},
}

// RouteFor looks up a route by path.
// Unknown paths resolve to a protected route with no role restriction,
// so new views default to requiring login rather than leaking.
func RouteFor(path string) Route {
	for _, r := range Routes {
		if r.Path == path {
			return r
		}
	}
	return Route{Path: path, Protected: true}
}

// Guard authorizes a navigation to the given path. Public routes are
// always allowed; protected routes go through Authorize.
func Guard(path string, state session.State) Decision {
	route := RouteFor(path)
	if !route.Protected {
		return Allowed
	}
	return Authorize(state, route.Roles)
}

// DashboardPath returns the home dashboard for a role
func DashboardPath(role client.Role) string {
	switch role {
	case client.RoleLandlord:
		return PathLandlord
	case client.RoleAdmin:
		return PathAdmin
	default:
		return PathTenant
	}
}
