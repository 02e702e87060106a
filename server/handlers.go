package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/testdeck/session-gateway/backend"
	"github.com/testdeck/session-gateway/guard"
	"github.com/testdeck/session-gateway/internal/metrics"
	"github.com/testdeck/session-gateway/internal/utils"
)

// LoginPageHandler serves the login screen. An already-authenticated visitor
// is sent to the landing screen instead.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := s.navigator.Decide(s.session, s.navigator.LoginPath())
		metrics.GuardDecisionsTotal.WithLabelValues(decision.String()).Inc()

		switch decision {
		case guard.DecisionLoading:
			s.renderLoading(w)
			return
		case guard.DecisionRedirectLanding:
			http.Redirect(w, r, s.navigator.LandingPath(), http.StatusSeeOther)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<!doctype html>
<title>%s - Login</title>
<form method="post" action="%s">
  <input type="email" name="email" placeholder="Email" required>
  <input type="password" name="password" placeholder="Password" required>
  <button type="submit">Sign in</button>
</form>
`, s.config.GetAppName(), RouteAuthLogin)
	}
}

type loginSubmission struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginSubmissionHandler exchanges credentials for a session. This is the
// only place a failure is surfaced to the user rather than silently
// redirected.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var submission loginSubmission

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
				writeJSONError(w, http.StatusBadRequest, "malformed request body")
				return
			}
		} else {
			if err := r.ParseForm(); err != nil {
				writeJSONError(w, http.StatusBadRequest, "malformed form")
				return
			}
			submission.Email = r.FormValue("email")
			submission.Password = r.FormValue("password")
		}

		if submission.Email == "" || submission.Password == "" {
			writeJSONError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		if err := s.session.Login(r.Context(), submission.Email, submission.Password); err != nil {
			metrics.LoginTotal.WithLabelValues("failure").Inc()
			log.Warn().Err(err).Str("email", submission.Email).Msg("login failed")
			writeJSONError(w, http.StatusUnauthorized, "invalid credentials or backend unreachable")
			return
		}

		metrics.LoginTotal.WithLabelValues("success").Inc()
		http.Redirect(w, r, s.navigator.LandingPath(), http.StatusSeeOther)
	}
}

// LogoutHandler clears the session and persisted credentials.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.session.Logout()
		http.Redirect(w, r, s.navigator.LoginPath(), http.StatusSeeOther)
	}
}

type meResponse struct {
	Authenticated   bool                 `json:"authenticated"`
	User            *backend.UserProfile `json:"user,omitempty"`
	Permissions     []string             `json:"permissions,omitempty"`
	Roles           []string             `json:"roles,omitempty"`
	SelectedProject *backend.Project     `json:"selected_project,omitempty"`
	SelectedID      *int64               `json:"selected_project_id,omitempty"`
}

// MeHandler is the in-process session surface exposed over HTTP for the
// feature screens: identity, permissions, derived roles, project context.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.session.IsAuthenticated() {
			writeJSON(w, http.StatusUnauthorized, meResponse{Authenticated: false})
			return
		}

		gate := s.session.Gate()
		response := meResponse{
			Authenticated:   true,
			User:            s.session.User(),
			Permissions:     gate.Permissions().List(),
			Roles:           gate.Roles().Strings(),
			SelectedProject: s.session.SelectedProject(),
		}
		if id, ok := s.session.SelectedProjectID(); ok {
			response.SelectedID = utils.Ptr(id)
		}
		writeJSON(w, http.StatusOK, response)
	}
}

// RefreshPermissionsHandler re-fetches permissions on demand. A failure keeps
// the previous permission set, so it is reported without clearing anything.
func (s *Server) RefreshPermissionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.session.RefreshPermissions(r.Context()); err != nil {
			metrics.PermissionRefreshTotal.WithLabelValues("failure").Inc()
			log.Warn().Err(err).Msg("permission refresh failed")
			writeJSONError(w, http.StatusBadGateway, "permission refresh failed, previous permissions kept")
			return
		}
		metrics.PermissionRefreshTotal.WithLabelValues("success").Inc()
		w.WriteHeader(http.StatusNoContent)
	}
}

type selectProjectRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SelectProjectHandler persists the project context.
func (s *Server) SelectProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request selectProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeJSONError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		project := &backend.Project{ID: request.ID, Name: request.Name}
		if err := s.session.SelectProject(request.ID, project); err != nil {
			log.Error().Err(err).Int64("project_id", request.ID).Msg("failed to persist selected project")
			writeJSONError(w, http.StatusInternalServerError, "failed to persist selection")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ClearSelectedProjectHandler removes the persisted project context entirely.
func (s *Server) ClearSelectedProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.session.ClearSelectedProject(); err != nil {
			log.Error().Err(err).Msg("failed to clear selected project")
			writeJSONError(w, http.StatusInternalServerError, "failed to clear selection")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ScreenHandler renders the application shell for a guarded screen. The
// screens themselves are feature territory; the gateway only decides whether
// the visitor gets here.
func (s *Server) ScreenHandler(path string) http.HandlerFunc {
	screen := strings.Trim(path, "/")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!doctype html><title>%s</title><div id=\"app\" data-screen=%q></div>\n", s.config.GetAppName(), screen)
	}
}

// UnmatchedHandler applies the guard's unmatched-path rule: landing screen if
// authenticated, otherwise login.
func (s *Server) UnmatchedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.session.Loading() {
			s.renderLoading(w)
			return
		}
		if s.session.IsAuthenticated() {
			http.Redirect(w, r, s.navigator.LandingPath(), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, s.navigator.LoginPath(), http.StatusSeeOther)
	}
}

// HealthzHandler reports process liveness and the session state.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"session": string(s.session.State()),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
