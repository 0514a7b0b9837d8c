package routes

// Route path constants
// All dashboard-shell routes are defined here to ensure consistency and prevent typos
const (
	// Marketing Routes - public
	RouteHome     = "/"
	RouteFeatures = "/features"
	RoutePricing  = "/pricing"
	RouteContact  = "/contact"

	// Auth Routes - public
	RouteLogin          = "/login"
	RouteRegister       = "/register"
	RouteForgotPassword = "/forgot-password"

	// Dashboard Routes - signed-in users
	RouteDashboard         = "/dashboard"
	RouteDashboardProfile  = "/dashboard/profile"
	RouteDashboardSecurity = "/dashboard/security"
	RouteDashboardBilling  = "/dashboard/billing"

	// Admin Routes - admin and super-admin
	RouteAdminDashboard     = "/admin/dashboard"
	RouteAdminUsers         = "/admin/users"
	RouteAdminTenants       = "/admin/tenants"
	RouteAdminSubscriptions = "/admin/subscriptions"
	RouteAdminSettings      = "/admin/settings"
)
