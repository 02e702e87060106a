// Package server is the HTTP surface of the gateway: guarded screen routes,
// the session endpoints the feature screens call, and the operational
// endpoints (health, metrics).
package server

import (
	"net/http"

	"github.com/testdeck/session-gateway/guard"
	"github.com/testdeck/session-gateway/internal/config"
	"github.com/testdeck/session-gateway/session"
)

type Server struct {
	env       string
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	session   *session.Store
	navigator *guard.Navigator
}

func New(cfg config.Config, sess *session.Store, navigator *guard.Navigator) *Server {
	if navigator == nil {
		navigator = guard.NewNavigator(guard.WithPaths(cfg.GetLoginPath(), cfg.GetLandingPath()))
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		session:   sess,
		navigator: navigator,
	}
	s.env = cfg.GetEnv()
	s.initRoutes()
	return s
}

func (s *Server) RegisterRouteFunc(pattern string, handler http.HandlerFunc) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
