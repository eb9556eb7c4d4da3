package input

import (
	"session-store/internal/domain"
	"session-store/internal/ports/output"
)

// SessionStore interface - Input port (use case)
// The session-store contract exposed to the host request layer. Every
// operation other than Connect fails with domain.ErrNotConnected until
// Connect has succeeded.
type SessionStore interface {
	// Connect binds the store to a session repository. Must be called
	// before any other operation.
	Connect(repo output.SessionRepository) error

	// Get retrieves the decoded payload for a visible session, or nil
	// without error when the session is absent, expired or destroyed.
	Get(sid string) (domain.SessionData, error)

	// Set upserts the session payload under the given id, refreshing its
	// expiry from the TTL policy. Triggers bounded cleanup beforehand when
	// a cleanup limit is configured.
	Set(sid string, sess domain.SessionData) error

	// Destroy soft-deletes the given ids concurrently. The first failure
	// is reported for the whole call.
	Destroy(sids ...string) error

	// Touch extends the expiry of the given id without altering its
	// payload.
	Touch(sid string, sess domain.SessionData) error

	// All enumerates every visible session, each payload annotated with
	// its id. Order is unspecified.
	All() ([]domain.SessionData, error)
}
