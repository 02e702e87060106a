package tokens

import "errors"

// Persisted keys. They mirror the browser-local storage keys the admin
// front end writes, so a session survives a gateway restart the same way
// it survives a page reload.
const (
	KeyAccessToken       = "access_token"
	KeyRefreshToken      = "refresh_token"
	KeySelectedProjectID = "selectedProjectId"
)

// ErrKeyNotFound is returned by Get when no value is persisted for a key.
var ErrKeyNotFound = errors.New("key not found")

// Store persists the small set of client-side credentials and preferences.
// Delete on a missing key is not an error.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
