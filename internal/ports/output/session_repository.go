package output

import "session-store/internal/domain"

// SessionRepository interface - Output port
// Defines what the application needs from durable session storage.
// Implementations must be safe for concurrent use; the application layer
// holds no locks and relies on row-level semantics of the backing store.
type SessionRepository interface {
	// FindVisible retrieves the session for the given id if it is neither
	// soft-deleted nor expired at the given epoch-millisecond instant.
	// Returns nil without error when no visible row exists.
	FindVisible(sid string, nowMillis int64) (*domain.Session, error)

	// FindAny retrieves the session for the given id regardless of its
	// soft-delete state. Returns nil without error when no row exists.
	FindAny(sid string) (*domain.Session, error)

	// Insert stores a fresh session row. Fails on duplicate id.
	Insert(session *domain.Session) error

	// UpdateLive refreshes payload and expiry for the given id, restricted
	// to rows that are not soft-deleted at the moment of the update. The
	// returned count is the number of rows matched; zero means the row was
	// soft-deleted concurrently and the write did not land.
	UpdateLive(sid, json string, expiredAt int64) (int64, error)

	// Restore refreshes payload and expiry for the given id and clears the
	// soft-delete marker, making the session live again.
	Restore(sid, json string, expiredAt int64) error

	// Touch updates only the expiry for the given id, unconditionally
	// (soft-deleted rows included).
	Touch(sid string, expiredAt int64) error

	// SoftDelete marks the session destroyed. The row remains in storage
	// until purged. Deleting an absent id is not an error.
	SoftDelete(sid string) error

	// AllVisible enumerates every session that is neither soft-deleted nor
	// expired at the given instant. Order is unspecified.
	AllVisible(nowMillis int64) ([]domain.Session, error)

	// PurgeExpired hard-deletes up to limit rows (soft-deleted included)
	// whose expiry is at or before the given instant.
	PurgeExpired(nowMillis int64, limit int) error
}
