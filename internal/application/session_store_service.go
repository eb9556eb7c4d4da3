package application

import (
	"encoding/json"
	"fmt"

	"session-store/internal/domain"
	"session-store/internal/ports/input"
	"session-store/internal/ports/output"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Compile-time check to ensure SessionStoreService implements SessionStore interface
var _ input.SessionStore = (*SessionStoreService)(nil)

// HealthObserver interface - store-health notifications
// Registered once at construction. StoreDisconnected carries the error
// that triggered the transition; it fires for every failed operation
// unless an OnError handler is configured instead.
type HealthObserver interface {
	StoreConnected()
	StoreDisconnected(err error)
}

// ErrorHandler func - invoked with the store and the failing error in
// place of the StoreDisconnected notification.
type ErrorHandler func(store *SessionStoreService, err error)

// Options struct - immutable store configuration captured at construction
type Options struct {
	// CleanupLimit bounds how many expired or destroyed rows a single set
	// may purge. Zero disables cleanup entirely.
	CleanupLimit int

	// TTL is the configured lifetime policy. Nil falls back to cookie
	// metadata and the one-day default, see domain.ResolveTTL.
	TTL domain.TTL

	// OnError, when set, receives every operation failure instead of the
	// observer's StoreDisconnected notification.
	OnError ErrorHandler

	// Observer receives connect/disconnect transitions.
	Observer HealthObserver
}

// SessionStoreService struct - Application service implementing the
// session-store use cases. The repository is bound by Connect; until then
// every operation fails with domain.ErrNotConnected. Beyond the options
// captured here the service holds no mutable state - concurrency safety
// is delegated to the repository's row-level semantics.
type SessionStoreService struct {
	repo output.SessionRepository
	opts Options
}

// NewSessionStoreService func - Creates new session store service
func NewSessionStoreService(opts Options) *SessionStoreService {
	return &SessionStoreService{
		opts: opts,
	}
}

// Connect func - Use case: bind the store to a session repository
func (s *SessionStoreService) Connect(repo output.SessionRepository) error {
	if repo == nil {
		return s.fail(domain.ErrNoRepository)
	}
	s.repo = repo
	if s.opts.Observer != nil {
		s.opts.Observer.StoreConnected()
	}
	return nil
}

// Get func - Use case: read a visible session payload
func (s *SessionStoreService) Get(sid string) (domain.SessionData, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	session, err := s.repo.FindVisible(sid, domain.NowMillis())
	if err != nil {
		return nil, s.fail(err)
	}
	if session == nil {
		// Absent, expired or destroyed: success with no data
		return nil, nil
	}
	var sess domain.SessionData
	if err := json.Unmarshal([]byte(session.JSON), &sess); err != nil {
		return nil, s.fail(fmt.Errorf("decode session %q: %w", sid, err))
	}
	return sess, nil
}

// Set func - Use case: upsert a session payload with a fresh expiry.
// Serialization happens before any storage access, then bounded cleanup,
// then the find / conditional-update / fallback-insert protocol.
func (s *SessionStoreService) Set(sid string, sess domain.SessionData) error {
	if err := s.guard(); err != nil {
		return err
	}
	encoded, err := json.Marshal(sess)
	if err != nil {
		return s.fail(fmt.Errorf("encode session %q: %w", sid, err))
	}
	ttl := domain.ResolveTTL(s.opts.TTL, sess, sid)
	expiredAt := domain.ExpiryFrom(domain.NowMillis(), ttl)

	if s.opts.CleanupLimit > 0 {
		if err := s.repo.PurgeExpired(domain.NowMillis(), s.opts.CleanupLimit); err != nil {
			return s.fail(fmt.Errorf("cleanup before set %q: %w", sid, err))
		}
	}

	found, err := s.repo.FindAny(sid)
	if err != nil {
		// A failed lookup falls through to insert; the insert reports its
		// own error if the storage trouble persists.
		logrus.Warnln("session lookup failed, falling back to insert:", err)
		found = nil
	}
	if found == nil {
		if err := s.repo.Insert(&domain.Session{ID: sid, JSON: string(encoded), ExpiredAt: expiredAt}); err != nil {
			return s.fail(fmt.Errorf("insert session %q: %w", sid, err))
		}
		return nil
	}
	if found.Destroyed() {
		// The lookup already observed the soft-delete, so this is a plain
		// destroy-then-set sequence: revive the row.
		if err := s.repo.Restore(sid, string(encoded), expiredAt); err != nil {
			return s.fail(fmt.Errorf("restore session %q: %w", sid, err))
		}
		return nil
	}
	// The row was live at lookup time. If a concurrent destroy lands
	// before this update, zero rows match and the write is lost; that
	// race is accepted, not an error.
	if _, err := s.repo.UpdateLive(sid, string(encoded), expiredAt); err != nil {
		return s.fail(fmt.Errorf("update session %q: %w", sid, err))
	}
	return nil
}

// Destroy func - Use case: soft-delete the given ids concurrently. The
// deletes are independent; the first rejection is reported for the call.
func (s *SessionStoreService) Destroy(sids ...string) error {
	if err := s.guard(); err != nil {
		return err
	}
	var g errgroup.Group
	for _, sid := range sids {
		sid := sid
		g.Go(func() error {
			return s.repo.SoftDelete(sid)
		})
	}
	if err := g.Wait(); err != nil {
		return s.fail(fmt.Errorf("destroy sessions: %w", err))
	}
	return nil
}

// Touch func - Use case: extend a session's expiry without altering its
// payload. The TTL policy is recomputed without the sid, and the update
// carries no live-row predicate.
func (s *SessionStoreService) Touch(sid string, sess domain.SessionData) error {
	if err := s.guard(); err != nil {
		return err
	}
	ttl := domain.ResolveTTL(s.opts.TTL, sess, "")
	expiredAt := domain.ExpiryFrom(domain.NowMillis(), ttl)
	if err := s.repo.Touch(sid, expiredAt); err != nil {
		return s.fail(fmt.Errorf("touch session %q: %w", sid, err))
	}
	return nil
}

// All func - Use case: enumerate every visible session. A single payload
// failing to decode aborts the whole call.
func (s *SessionStoreService) All() ([]domain.SessionData, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	sessions, err := s.repo.AllVisible(domain.NowMillis())
	if err != nil {
		return nil, s.fail(err)
	}
	result := make([]domain.SessionData, 0, len(sessions))
	for _, session := range sessions {
		var sess domain.SessionData
		if err := json.Unmarshal([]byte(session.JSON), &sess); err != nil {
			return nil, s.fail(fmt.Errorf("decode session %q: %w", session.ID, err))
		}
		result = append(result, sess.WithID(session.ID))
	}
	return result, nil
}

// guard rejects operations issued before Connect without touching storage.
func (s *SessionStoreService) guard() error {
	if s.repo == nil {
		return s.fail(domain.ErrNotConnected)
	}
	return nil
}

// fail reports an operation failure on the secondary channel and hands it
// back as the operation result. No error is dropped.
func (s *SessionStoreService) fail(err error) error {
	logrus.Errorln(err)
	if s.opts.OnError != nil {
		s.opts.OnError(s, err)
	} else if s.opts.Observer != nil {
		s.opts.Observer.StoreDisconnected(err)
	}
	return err
}
