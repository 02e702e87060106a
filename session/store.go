// Package session owns the client-side authentication state: the persisted
// token lifecycle, the bootstrap sequence that restores a session on start,
// and the permission/role snapshot the rest of the gateway consults.
package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/testdeck/session-gateway/authz"
	"github.com/testdeck/session-gateway/backend"
	"github.com/testdeck/session-gateway/tokens"
)

var (
	// ErrBootstrapRan is returned when Bootstrap is invoked more than once.
	ErrBootstrapRan = errors.New("bootstrap already ran")
	// ErrNotAuthenticated is returned by operations that need a live session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Backend is the slice of the REST API the session layer consumes.
type Backend interface {
	Login(ctx context.Context, email, password string) (*backend.TokenPair, error)
	Profile(ctx context.Context, accessToken string) (*backend.UserProfile, error)
	Permissions(ctx context.Context, accessToken string) ([]string, error)
}

// Store holds the single session of the gateway process. It replaces the
// app-wide authentication context of the admin front end with an explicit
// object: constructed once, bootstrapped once, then driven by Login/Logout.
//
// The browser original ran on one event loop; the gateway serves concurrent
// requests, so every access goes through the lock.
type Store struct {
	lock    sync.RWMutex
	id      string
	tokens  tokens.Store
	backend Backend
	nowTime func() time.Time
	logger  zerolog.Logger

	state           State
	user            *backend.UserProfile
	gate            authz.Gate
	selectedProject *backend.Project
	selectedID      int64
	hasSelected     bool
}

// Option defines a function type to modify the Store instance.
type Option func(*Store)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// WithLogger sets the logger used for bootstrap and refresh diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a session store over the given token store and backend client.
func New(tokenStore tokens.Store, api Backend, options ...Option) (*Store, error) {
	if tokenStore == nil {
		return nil, errors.New("[session.New] token store is required")
	}
	if api == nil {
		return nil, errors.New("[session.New] backend is required")
	}

	store := &Store{
		id:      uuid.New().String(),
		tokens:  tokenStore,
		backend: api,
		nowTime: time.Now,
		logger:  log.Logger,
		state:   StateIdle,
	}

	for _, opt := range options {
		opt(store)
	}

	return store, nil
}

// Bootstrap restores the session from persisted credentials. It runs exactly
// once per Store; every failure inside is converted into the Unauthenticated
// terminal state rather than propagated, so the returned error only reports
// misuse (calling it twice).
//
// The expiry check happens before any network call. Within one attempt the
// profile fetch strictly precedes the permission fetch.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.lock.Lock()
	if s.state != StateIdle {
		s.lock.Unlock()
		return ErrBootstrapRan
	}
	s.state = StateLoading
	s.lock.Unlock()

	logger := s.logger.With().Str("session_id", s.id).Logger()

	accessToken, err := s.tokens.Get(tokens.KeyAccessToken)
	if err != nil {
		logger.Debug().Msg("bootstrap: no persisted access token")
		s.becomeUnauthenticated()
		return nil
	}

	expiry, err := tokens.DecodeExpiry(accessToken)
	if err != nil || !expiry.After(s.nowTime()) {
		logger.Info().Msg("bootstrap: persisted access token expired")
		s.becomeUnauthenticated()
		return nil
	}

	user, err := s.backend.Profile(ctx, accessToken)
	if err != nil {
		logger.Warn().Err(err).Msg("bootstrap: profile fetch failed")
		s.becomeUnauthenticated()
		return nil
	}

	permissions, err := s.backend.Permissions(ctx, accessToken)
	if err != nil {
		logger.Warn().Err(err).Msg("bootstrap: permissions fetch failed")
		s.becomeUnauthenticated()
		return nil
	}

	s.lock.Lock()
	s.user = user
	s.gate = authz.NewGate(authz.NewPermissionSet(permissions...), user.IsSuperuser)
	s.state = StateAuthenticated
	s.restoreSelectedProjectLocked()
	s.lock.Unlock()

	logger.Info().Str("email", user.Email).Strs("roles", s.Gate().Roles().Strings()).
		Msg("bootstrap: session restored")
	return nil
}

// Login exchanges credentials for tokens, persists them, and moves the
// session straight to Authenticated without re-running bootstrap. Failures
// after a successful exchange purge the persisted credentials again, so a
// failed login never leaves half a session behind.
func (s *Store) Login(ctx context.Context, email, password string) error {
	pair, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return errors.Wrap(err, "[Store.Login] token exchange")
	}

	if err := s.tokens.Set(tokens.KeyAccessToken, pair.Access); err != nil {
		return errors.Wrap(err, "[Store.Login] persist access token")
	}
	if err := s.tokens.Set(tokens.KeyRefreshToken, pair.Refresh); err != nil {
		return errors.Wrap(err, "[Store.Login] persist refresh token")
	}

	user, err := s.backend.Profile(ctx, pair.Access)
	if err != nil {
		s.becomeUnauthenticated()
		return errors.Wrap(err, "[Store.Login] profile fetch")
	}

	permissions, err := s.backend.Permissions(ctx, pair.Access)
	if err != nil {
		s.becomeUnauthenticated()
		return errors.Wrap(err, "[Store.Login] permissions fetch")
	}

	s.lock.Lock()
	s.user = user
	s.gate = authz.NewGate(authz.NewPermissionSet(permissions...), user.IsSuperuser)
	s.state = StateAuthenticated
	s.lock.Unlock()

	s.logger.Info().Str("session_id", s.id).Str("email", user.Email).Msg("login succeeded")
	return nil
}

// Logout purges every persisted key and resets the session to
// Unauthenticated.
func (s *Store) Logout() {
	s.logger.Info().Str("session_id", s.id).Msg("logout")
	s.becomeUnauthenticated()
}

// RefreshPermissions re-fetches the permission list and recomputes roles
// without touching the rest of the session. On failure the previous
// permission and role sets stay in place: stale but present, unlike the
// bootstrap path which clears everything.
func (s *Store) RefreshPermissions(ctx context.Context) error {
	s.lock.RLock()
	if s.state != StateAuthenticated {
		s.lock.RUnlock()
		return ErrNotAuthenticated
	}
	superuser := s.user.IsSuperuser
	s.lock.RUnlock()

	accessToken, err := s.tokens.Get(tokens.KeyAccessToken)
	if err != nil {
		s.logger.Warn().Str("session_id", s.id).Err(err).Msg("refresh permissions: no access token")
		return errors.Wrap(err, "[Store.RefreshPermissions] token store")
	}

	permissions, err := s.backend.Permissions(ctx, accessToken)
	if err != nil {
		s.logger.Warn().Str("session_id", s.id).Err(err).Msg("refresh permissions failed, keeping previous set")
		return errors.Wrap(err, "[Store.RefreshPermissions] permissions fetch")
	}

	s.lock.Lock()
	s.gate = authz.NewGate(authz.NewPermissionSet(permissions...), superuser)
	s.lock.Unlock()
	return nil
}

// SelectProject records the project context so it survives a restart. Only
// the numeric identifier is persisted; the project object is an in-memory
// cache for the current process.
func (s *Store) SelectProject(id int64, project *backend.Project) error {
	if err := s.tokens.Set(tokens.KeySelectedProjectID, strconv.FormatInt(id, 10)); err != nil {
		return errors.Wrap(err, "[Store.SelectProject] persist")
	}

	s.lock.Lock()
	s.selectedID = id
	s.hasSelected = true
	s.selectedProject = project
	s.lock.Unlock()
	return nil
}

// ClearSelectedProject removes the persisted key entirely, the selectProject(null) path.
func (s *Store) ClearSelectedProject() error {
	if err := s.tokens.Delete(tokens.KeySelectedProjectID); err != nil {
		return errors.Wrap(err, "[Store.ClearSelectedProject] delete")
	}

	s.lock.Lock()
	s.selectedID = 0
	s.hasSelected = false
	s.selectedProject = nil
	s.lock.Unlock()
	return nil
}

// SetUser is the raw mutator used by external login flows.
func (s *Store) SetUser(user *backend.UserProfile) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.user = user
}

// SetAuthenticated is the raw mutator used by external login flows. It does
// not touch persisted credentials.
func (s *Store) SetAuthenticated(authenticated bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if authenticated {
		s.state = StateAuthenticated
	} else {
		s.state = StateUnauthenticated
	}
}

// Teardown resets the in-memory session to Idle without purging persisted
// credentials, so a subsequent Store can bootstrap from them again.
func (s *Store) Teardown() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.state = StateIdle
	s.user = nil
	s.gate = authz.Gate{}
	s.selectedProject = nil
	s.selectedID = 0
	s.hasSelected = false
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state
}

// Loading reports whether the initial bootstrap has not completed yet.
func (s *Store) Loading() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state == StateIdle || s.state == StateLoading
}

// IsAuthenticated reports whether a session was validated end to end.
func (s *Store) IsAuthenticated() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state == StateAuthenticated
}

// User returns the profile of the authenticated user, or nil.
func (s *Store) User() *backend.UserProfile {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.user
}

// Gate returns the capability gate for the current permission snapshot.
func (s *Store) Gate() authz.Gate {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.gate
}

// Allows is a convenience passthrough to the gate.
func (s *Store) Allows(capability authz.Capability) bool {
	return s.Gate().Allows(capability)
}

// SelectedProjectID returns the selected project identifier, if any.
func (s *Store) SelectedProjectID() (int64, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.selectedID, s.hasSelected
}

// SelectedProject returns the cached project object, if any.
func (s *Store) SelectedProject() *backend.Project {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.selectedProject
}

// becomeUnauthenticated purges all persisted keys and resets the session.
// Used by bootstrap failure, login failure cleanup, and logout; the purge is
// deliberately identical in all three.
func (s *Store) becomeUnauthenticated() {
	for _, key := range []string{tokens.KeyAccessToken, tokens.KeyRefreshToken, tokens.KeySelectedProjectID} {
		if err := s.tokens.Delete(key); err != nil {
			s.logger.Warn().Str("session_id", s.id).Str("key", key).Err(err).Msg("failed to purge persisted key")
		}
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.state = StateUnauthenticated
	s.user = nil
	s.gate = authz.Gate{}
	s.selectedProject = nil
	s.selectedID = 0
	s.hasSelected = false
}

// restoreSelectedProjectLocked restores the persisted project identifier
// after a successful bootstrap. A malformed value is dropped.
func (s *Store) restoreSelectedProjectLocked() {
	raw, err := s.tokens.Get(tokens.KeySelectedProjectID)
	if err != nil {
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		_ = s.tokens.Delete(tokens.KeySelectedProjectID)
		return
	}
	s.selectedID = id
	s.hasSelected = true
}
