package routes

import (
	"strings"

	"github.com/jrsteele09/go-admin-portal/routeguard"
	"github.com/jrsteele09/go-admin-portal/users"
)

// Table maps route paths to their declared role requirements. Paths not in
// the table resolve through their nearest registered ancestor, so detail
// pages like /admin/users/42 inherit the /admin/users requirement.
type Table map[string]routeguard.Requirement

// DefaultTable is the route metadata for the dashboard shell: marketing and
// auth pages are public, dashboard pages need a signed-in user, admin pages
// need admin-class access.
func DefaultTable() Table {
	return Table{
		RouteHome:     routeguard.Public(),
		RouteFeatures: routeguard.Public(),
		RoutePricing:  routeguard.Public(),
		RouteContact:  routeguard.Public(),

		RouteLogin:          routeguard.Public(),
		RouteRegister:       routeguard.Public(),
		RouteForgotPassword: routeguard.Public(),

		RouteDashboard:         routeguard.Require(users.RoleUser),
		RouteDashboardProfile:  routeguard.Require(users.RoleUser),
		RouteDashboardSecurity: routeguard.Require(users.RoleUser),
		RouteDashboardBilling:  routeguard.Require(users.RoleUser),

		RouteAdminDashboard:     routeguard.Require(users.RoleAdmin),
		RouteAdminUsers:         routeguard.Require(users.RoleAdmin),
		RouteAdminTenants:       routeguard.Require(users.RoleAdmin),
		RouteAdminSubscriptions: routeguard.Require(users.RoleAdmin),
		RouteAdminSettings:      routeguard.Require(users.RoleAdmin),
	}
}

// Resolve returns the requirement for a path. Lookup is exact first, then
// walks up parent segments. Unregistered paths are public; the shell renders
// its own not-found page for them.
func (t Table) Resolve(path string) routeguard.Requirement {
	path = normalize(path)
	for {
		if req, ok := t[path]; ok {
			return req
		}
		if path == "/" {
			return routeguard.Public()
		}
		idx := strings.LastIndex(path, "/")
		if idx <= 0 {
			path = "/"
			continue
		}
		path = path[:idx]
	}
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
