package server

import (
	"net/http"

	"github.com/testdeck/session-gateway/guard"
	"github.com/testdeck/session-gateway/internal/metrics"
)

// GuardMiddleware applies the navigator's decision for a screen path before
// the screen handler runs. Capability denials are silent redirects, never
// errors.
func (s *Server) GuardMiddleware(path string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			decision := s.navigator.Decide(s.session, path)
			metrics.GuardDecisionsTotal.WithLabelValues(decision.String()).Inc()

			switch decision {
			case guard.DecisionLoading:
				s.renderLoading(w)
			case guard.DecisionRedirectLogin:
				http.Redirect(w, r, s.navigator.LoginPath(), http.StatusSeeOther)
			case guard.DecisionRedirectLanding:
				http.Redirect(w, r, s.navigator.LandingPath(), http.StatusSeeOther)
			case guard.DecisionRender:
				next(w, r)
			}
		}
	}
}

// renderLoading is the neutral loading indicator: the session is still
// bootstrapping, so no navigation decision is made yet.
func (s *Server) renderLoading(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("<!doctype html><title>Loading</title><p>Loading…</p>"))
}
