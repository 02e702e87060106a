package session_test

import (
	"context"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/testdeck/session-gateway/authz"
	"github.com/testdeck/session-gateway/backend"
	"github.com/testdeck/session-gateway/session"
	"github.com/testdeck/session-gateway/tokens"
)

const (
	testUserEmail    = "jane.doe@example.com"
	testUserPassword = "password123"
)

// fakeBackend implements session.Backend with scriptable responses.
type fakeBackend struct {
	pair           *backend.TokenPair
	loginErr       error
	profile        *backend.UserProfile
	profileErr     error
	permissions    []string
	permissionsErr error

	profileCalls    int
	permissionCalls int
}

func (fb *fakeBackend) Login(_ context.Context, email, password string) (*backend.TokenPair, error) {
	if fb.loginErr != nil {
		return nil, fb.loginErr
	}
	return fb.pair, nil
}

func (fb *fakeBackend) Profile(_ context.Context, _ string) (*backend.UserProfile, error) {
	fb.profileCalls++
	if fb.profileErr != nil {
		return nil, fb.profileErr
	}
	return fb.profile, nil
}

func (fb *fakeBackend) Permissions(_ context.Context, _ string) ([]string, error) {
	fb.permissionCalls++
	if fb.permissionsErr != nil {
		return nil, fb.permissionsErr
	}
	return fb.permissions, nil
}

type testFixture struct {
	store   *tokens.MemoryStore
	backend *fakeBackend
	session *session.Store
	now     time.Time
}

func setupTestFixture(t *testing.T, api *fakeBackend) *testFixture {
	t.Helper()

	store := tokens.NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	sess, err := session.New(store, api,
		session.WithNowTime(func() time.Time { return now }),
		session.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)

	return &testFixture{store: store, backend: api, session: sess, now: now}
}

func (f *testFixture) tokenExpiring(t *testing.T, at time.Time) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"exp": at.Unix(),
		"sub": "user-1",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func (f *testFixture) persistSession(t *testing.T, accessExpiry time.Time) {
	t.Helper()
	require.NoError(t, f.store.Set(tokens.KeyAccessToken, f.tokenExpiring(t, accessExpiry)))
	require.NoError(t, f.store.Set(tokens.KeyRefreshToken, "refresh-token"))
}

func (f *testFixture) requireKeysPurged(t *testing.T) {
	t.Helper()
	for _, key := range []string{tokens.KeyAccessToken, tokens.KeyRefreshToken, tokens.KeySelectedProjectID} {
		_, err := f.store.Get(key)
		require.ErrorIs(t, err, tokens.ErrKeyNotFound, "key %s should be purged", key)
	}
}

func defaultProfile() *backend.UserProfile {
	return &backend.UserProfile{
		ID:        7,
		Email:     testUserEmail,
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestBootstrapWithoutToken(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{})

	require.True(t, f.session.Loading())
	require.NoError(t, f.session.Bootstrap(context.Background()))

	require.False(t, f.session.Loading())
	require.False(t, f.session.IsAuthenticated())
	require.Equal(t, session.StateUnauthenticated, f.session.State())
	require.Zero(t, f.backend.profileCalls)
}

func TestBootstrapExpiredToken(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{profile: defaultProfile()})
	f.persistSession(t, f.now.Add(-time.Minute))
	require.NoError(t, f.store.Set(tokens.KeySelectedProjectID, "42"))

	require.NoError(t, f.session.Bootstrap(context.Background()))

	require.False(t, f.session.IsAuthenticated())
	f.requireKeysPurged(t)
	// Expiry is checked before any network call.
	require.Zero(t, f.backend.profileCalls)
	require.Zero(t, f.backend.permissionCalls)
}

func TestBootstrapProfileFetchFailure(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{profileErr: errors.New("boom")})
	f.persistSession(t, f.now.Add(time.Hour))

	require.NoError(t, f.session.Bootstrap(context.Background()))

	require.False(t, f.session.IsAuthenticated())
	require.False(t, f.session.Loading())
	f.requireKeysPurged(t)
	// Permission fetch only runs after a successful profile fetch.
	require.Zero(t, f.backend.permissionCalls)
}

func TestBootstrapPermissionFetchFailure(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{
		profile:        defaultProfile(),
		permissionsErr: errors.New("boom"),
	})
	f.persistSession(t, f.now.Add(time.Hour))

	require.NoError(t, f.session.Bootstrap(context.Background()))

	require.False(t, f.session.IsAuthenticated())
	f.requireKeysPurged(t)
}

func TestBootstrapSuccess(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{
		profile:     defaultProfile(),
		permissions: []string{"add_project", "change_project"},
	})
	f.persistSession(t, f.now.Add(time.Hour))
	require.NoError(t, f.store.Set(tokens.KeySelectedProjectID, "42"))

	require.NoError(t, f.session.Bootstrap(context.Background()))

	require.True(t, f.session.IsAuthenticated())
	require.Equal(t, testUserEmail, f.session.User().Email)
	require.True(t, f.session.Gate().HasRole(authz.RoleProjectLead))
	require.True(t, f.session.Allows(authz.CapManageProjects))

	id, ok := f.session.SelectedProjectID()
	require.True(t, ok)
	require.Equal(t, int64(42), id)
}

func TestBootstrapRunsOnce(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{})

	require.NoError(t, f.session.Bootstrap(context.Background()))
	require.ErrorIs(t, f.session.Bootstrap(context.Background()), session.ErrBootstrapRan)
}

func TestBootstrapMalformedSelectedProject(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{profile: defaultProfile()})
	f.persistSession(t, f.now.Add(time.Hour))
	require.NoError(t, f.store.Set(tokens.KeySelectedProjectID, "not-a-number"))

	require.NoError(t, f.session.Bootstrap(context.Background()))

	require.True(t, f.session.IsAuthenticated())
	_, ok := f.session.SelectedProjectID()
	require.False(t, ok)
	_, err := f.store.Get(tokens.KeySelectedProjectID)
	require.ErrorIs(t, err, tokens.ErrKeyNotFound)
}

func TestLoginSuccess(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{
		pair:        &backend.TokenPair{Access: "access-token", Refresh: "refresh-token"},
		profile:     defaultProfile(),
		permissions: []string{"view_user"},
	})

	require.NoError(t, f.session.Login(context.Background(), testUserEmail, testUserPassword))

	require.True(t, f.session.IsAuthenticated())
	access, err := f.store.Get(tokens.KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "access-token", access)
	refresh, err := f.store.Get(tokens.KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, "refresh-token", refresh)
	require.True(t, f.session.Gate().Allows(authz.CapManageUsers))
}

func TestLoginExchangeFailure(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{loginErr: errors.New("wrong credentials")})

	err := f.session.Login(context.Background(), testUserEmail, "nope")
	require.Error(t, err)
	require.False(t, f.session.IsAuthenticated())
}

func TestLoginProfileFailurePurges(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{
		pair:       &backend.TokenPair{Access: "access-token", Refresh: "refresh-token"},
		profileErr: errors.New("boom"),
	})

	err := f.session.Login(context.Background(), testUserEmail, testUserPassword)
	require.Error(t, err)
	require.False(t, f.session.IsAuthenticated())
	f.requireKeysPurged(t)
}

func TestLogoutPurgesEverything(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{
		pair:        &backend.TokenPair{Access: "access-token", Refresh: "refresh-token"},
		profile:     defaultProfile(),
		permissions: []string{"view_user"},
	})
	require.NoError(t, f.session.Login(context.Background(), testUserEmail, testUserPassword))
	require.NoError(t, f.session.SelectProject(42, &backend.Project{ID: 42, Name: "Apollo"}))

	f.session.Logout()

	require.False(t, f.session.IsAuthenticated())
	require.Nil(t, f.session.User())
	f.requireKeysPurged(t)
}

func TestSelectProject(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{})

	require.NoError(t, f.session.SelectProject(42, &backend.Project{ID: 42, Name: "Apollo"}))

	raw, err := f.store.Get(tokens.KeySelectedProjectID)
	require.NoError(t, err)
	require.Equal(t, "42", raw)
	require.Equal(t, "Apollo", f.session.SelectedProject().Name)

	require.NoError(t, f.session.ClearSelectedProject())

	_, err = f.store.Get(tokens.KeySelectedProjectID)
	require.ErrorIs(t, err, tokens.ErrKeyNotFound)
	require.Nil(t, f.session.SelectedProject())
	_, ok := f.session.SelectedProjectID()
	require.False(t, ok)
}

func TestRefreshPermissionsFailureKeepsPreviousSet(t *testing.T) {
	api := &fakeBackend{
		profile:     defaultProfile(),
		permissions: []string{"view_user"},
	}
	f := setupTestFixture(t, api)
	f.persistSession(t, f.now.Add(time.Hour))
	require.NoError(t, f.session.Bootstrap(context.Background()))
	require.True(t, f.session.Gate().HasPermission("view_user"))

	api.permissionsErr = errors.New("network down")

	err := f.session.RefreshPermissions(context.Background())
	require.Error(t, err)
	// Stale but present: the previous snapshot stays in place.
	require.True(t, f.session.IsAuthenticated())
	require.True(t, f.session.Gate().HasPermission("view_user"))
}

func TestRefreshPermissionsUpdatesGate(t *testing.T) {
	api := &fakeBackend{
		profile:     defaultProfile(),
		permissions: []string{"view_user"},
	}
	f := setupTestFixture(t, api)
	f.persistSession(t, f.now.Add(time.Hour))
	require.NoError(t, f.session.Bootstrap(context.Background()))

	api.permissions = []string{"add_script", "change_script"}

	require.NoError(t, f.session.RefreshPermissions(context.Background()))
	require.False(t, f.session.Gate().HasPermission("view_user"))
	require.True(t, f.session.Gate().HasRole(authz.RoleDeveloper))
}

func TestRefreshPermissionsRequiresAuthentication(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{})

	err := f.session.RefreshPermissions(context.Background())
	require.ErrorIs(t, err, session.ErrNotAuthenticated)
}

func TestRawMutators(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{})

	user := defaultProfile()
	f.session.SetUser(user)
	f.session.SetAuthenticated(true)

	require.True(t, f.session.IsAuthenticated())
	require.Equal(t, user, f.session.User())

	f.session.SetAuthenticated(false)
	require.Equal(t, session.StateUnauthenticated, f.session.State())
}

func TestTeardownKeepsPersistedCredentials(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{profile: defaultProfile()})
	f.persistSession(t, f.now.Add(time.Hour))
	require.NoError(t, f.session.Bootstrap(context.Background()))
	require.True(t, f.session.IsAuthenticated())

	f.session.Teardown()

	require.Equal(t, session.StateIdle, f.session.State())
	require.Nil(t, f.session.User())
	_, err := f.store.Get(tokens.KeyAccessToken)
	require.NoError(t, err, "teardown must not purge persisted credentials")
}
