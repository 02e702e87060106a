// Package guard decides what a navigation attempt should do, independently of
// how the decision is applied. The server package turns decisions into HTTP
// redirects; tests exercise them directly.
package guard

import "github.com/testdeck/session-gateway/authz"

// Decision is the outcome of evaluating a path against the session.
type Decision int

const (
	// DecisionLoading means the session bootstrap has not finished; render a
	// neutral loading indicator and make no navigation decision.
	DecisionLoading Decision = iota
	// DecisionRedirectLogin sends the visitor to the login screen.
	DecisionRedirectLogin
	// DecisionRedirectLanding sends the visitor to the default authenticated
	// landing screen.
	DecisionRedirectLanding
	// DecisionRender lets the requested screen through.
	DecisionRender
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectLanding:
		return "redirect_landing"
	case DecisionRender:
		return "render"
	}
	return "unknown"
}

// Session is the slice of session state the guard consults.
type Session interface {
	Loading() bool
	IsAuthenticated() bool
	Allows(authz.Capability) bool
}

// Route binds a screen path to the capability it requires. An empty
// capability means authentication alone is enough.
type Route struct {
	Path       string
	Capability authz.Capability
}

// DefaultRoutes is the admin application's screen table.
var DefaultRoutes = []Route{
	{Path: "/dashboard", Capability: authz.CapViewDashboard},
	{Path: "/global-view", Capability: authz.CapViewGlobalView},
	{Path: "/companies", Capability: authz.CapManageCompanies},
	{Path: "/activity-sectors", Capability: authz.CapManageActivitySectors},
	{Path: "/projects", Capability: authz.CapManageProjects},
	{Path: "/configuration", Capability: authz.CapManageConfiguration},
	{Path: "/email-notifications", Capability: authz.CapManageEmailNotifications},
	{Path: "/users", Capability: authz.CapManageUsers},
	{Path: "/groups", Capability: authz.CapManageGroups},
	{Path: "/axes", Capability: authz.CapManageAxes},
	{Path: "/scripts", Capability: authz.CapManageScripts},
	{Path: "/test-configurations", Capability: authz.CapManageTestConfigurations},
	{Path: "/test-executions", Capability: authz.CapManageTestExecutions},
	{Path: "/execution-results", Capability: authz.CapManageExecutionResults},
	{Path: "/profile"},
}

// Navigator evaluates navigation attempts against a fixed route table.
type Navigator struct {
	routes      map[string]authz.Capability
	loginPath   string
	landingPath string
}

// NavigatorOption modifies the Navigator instance.
type NavigatorOption func(*Navigator)

// WithRoutes replaces the default route table.
func WithRoutes(routes []Route) NavigatorOption {
	return func(n *Navigator) {
		n.routes = make(map[string]authz.Capability, len(routes))
		for _, r := range routes {
			n.routes[r.Path] = r.Capability
		}
	}
}

// WithPaths overrides the login and landing paths.
func WithPaths(loginPath, landingPath string) NavigatorOption {
	return func(n *Navigator) {
		n.loginPath = loginPath
		n.landingPath = landingPath
	}
}

// NewNavigator creates a Navigator over DefaultRoutes with /login and
// /dashboard as the login and landing screens.
func NewNavigator(options ...NavigatorOption) *Navigator {
	n := &Navigator{
		loginPath:   "/login",
		landingPath: "/dashboard",
	}
	WithRoutes(DefaultRoutes)(n)

	for _, opt := range options {
		opt(n)
	}
	return n
}

// LoginPath returns the path of the login screen.
func (n *Navigator) LoginPath() string { return n.loginPath }

// LandingPath returns the default authenticated landing screen.
func (n *Navigator) LandingPath() string { return n.landingPath }

// Routes returns the guarded screen paths.
func (n *Navigator) Routes() []string {
	paths := make([]string, 0, len(n.routes))
	for p := range n.routes {
		paths = append(paths, p)
	}
	return paths
}

// Decide evaluates a navigation attempt. The checks run in a fixed order:
// loading, authentication, capability. A denied capability is a terminal
// redirect for this attempt, never an error.
func (n *Navigator) Decide(sess Session, path string) Decision {
	if sess.Loading() {
		return DecisionLoading
	}

	if path == n.loginPath {
		if sess.IsAuthenticated() {
			return DecisionRedirectLanding
		}
		return DecisionRender
	}

	if !sess.IsAuthenticated() {
		return DecisionRedirectLogin
	}

	capability, ok := n.routes[path]
	if !ok {
		// Unmatched path, send the visitor somewhere sensible.
		return DecisionRedirectLanding
	}

	if capability != "" && !sess.Allows(capability) {
		return DecisionRedirectLanding
	}

	return DecisionRender
}
