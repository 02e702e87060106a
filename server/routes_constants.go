package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth routes
	RouteLogin              = "/login"
	RouteAuthLogin          = "/auth/login"
	RouteAuthLogout         = "/auth/logout"
	RouteRefreshPermissions = "/auth/refresh-permissions"

	// Session surface for feature screens
	RouteMe            = "/me"
	RouteSelectProject = "/api/projects/select"

	// Operational routes
	RouteHealthz = "/healthz"
	RouteMetrics = "/metrics"
)
