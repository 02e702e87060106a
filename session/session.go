package session

// State is the lifecycle state of the session store.
//
// Idle -> Loading -> {Authenticated, Unauthenticated}
//
// Bootstrap drives the only automatic transitions; afterwards Login and
// Logout move the session directly between the two terminal states.
type State string

const (
	StateIdle            State = "idle"
	StateLoading         State = "loading"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)
