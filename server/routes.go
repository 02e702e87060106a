package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteFunc("GET "+s.navigator.LoginPath(), ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware()...))

	// Session surface
	s.RegisterRouteFunc("GET "+RouteMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteRefreshPermissions, ChainMiddleware(s.RefreshPermissionsHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteSelectProject, ChainMiddleware(s.SelectProjectHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("DELETE "+RouteSelectProject, ChainMiddleware(s.ClearSelectedProjectHandler(), s.APIMiddleware()...))

	// Guarded screens
	for _, path := range s.navigator.Routes() {
		s.RegisterRouteFunc("GET "+path, ChainMiddleware(s.ScreenHandler(path), s.HTMLMiddleware(s.GuardMiddleware(path))...))
	}

	// Anything else falls through the guard's unmatched-path rule.
	s.RegisterRouteFunc("GET /", ChainMiddleware(s.UnmatchedHandler(), s.HTMLMiddleware()...))

	// Operational
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())
}
