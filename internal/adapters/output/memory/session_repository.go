package memory

import (
	"errors"
	"sync"
	"time"

	"session-store/internal/domain"
	"session-store/internal/ports/output"

	"gorm.io/gorm"
)

// Compile-time check to ensure SessionRepository implements the output port
var _ output.SessionRepository = (*SessionRepository)(nil)

// SessionRepository struct - Output adapter for in-memory session storage.
// Mirrors the relational adapter's semantics (soft delete, expiry
// filtering, bounded purge) for tests and development without a database.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionRepository func - Creates new in-memory session repository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]domain.Session),
	}
}

// FindVisible func - Reads a session through the expiration filter
func (m *SessionRepository) FindVisible(sid string, nowMillis int64) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, exists := m.sessions[sid]
	if !exists || !session.Visible(nowMillis) {
		return nil, nil
	}
	return &session, nil
}

// FindAny func - Reads a session regardless of its soft-delete state
func (m *SessionRepository) FindAny(sid string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, exists := m.sessions[sid]
	if !exists {
		return nil, nil
	}
	return &session, nil
}

// Insert func - Stores a fresh session row; duplicate ids are rejected
// like a primary-key violation
func (m *SessionRepository) Insert(session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[session.ID]; exists {
		return errors.New("session id already exists")
	}
	m.sessions[session.ID] = *session
	return nil
}

// UpdateLive func - Refreshes payload and expiry for a row that is still
// live; returns the number of rows matched
func (m *SessionRepository) UpdateLive(sid, json string, expiredAt int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, exists := m.sessions[sid]
	if !exists || session.Destroyed() {
		return 0, nil
	}
	session.JSON = json
	session.ExpiredAt = expiredAt
	m.sessions[sid] = session
	return 1, nil
}

// Restore func - Refreshes payload and expiry and clears the soft-delete
// marker
func (m *SessionRepository) Restore(sid, json string, expiredAt int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, exists := m.sessions[sid]
	if !exists {
		return nil
	}
	session.JSON = json
	session.ExpiredAt = expiredAt
	session.DestroyedAt = gorm.DeletedAt{}
	m.sessions[sid] = session
	return nil
}

// Touch func - Updates only the expiry, unconditionally
func (m *SessionRepository) Touch(sid string, expiredAt int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, exists := m.sessions[sid]
	if !exists {
		return nil
	}
	session.ExpiredAt = expiredAt
	m.sessions[sid] = session
	return nil
}

// SoftDelete func - Marks the session destroyed. Idempotent; deleting an
// absent id is not an error.
func (m *SessionRepository) SoftDelete(sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, exists := m.sessions[sid]
	if !exists {
		return nil
	}
	session.DestroyedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	m.sessions[sid] = session
	return nil
}

// AllVisible func - Enumerates every visible session in unspecified order
func (m *SessionRepository) AllVisible(nowMillis int64) ([]domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sessions []domain.Session
	for _, session := range m.sessions {
		if session.Visible(nowMillis) {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

// PurgeExpired func - Hard-deletes up to limit expired rows, soft-deleted
// rows included
func (m *SessionRepository) PurgeExpired(nowMillis int64, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	purged := 0
	for sid, session := range m.sessions {
		if purged >= limit {
			break
		}
		if session.Expired(nowMillis) {
			delete(m.sessions, sid)
			purged++
		}
	}
	return nil
}
