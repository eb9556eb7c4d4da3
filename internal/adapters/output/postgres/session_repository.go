package postgres

import (
	"session-store/internal/domain"
	"session-store/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Compile-time check to ensure SessionRepository implements the output port
var _ output.SessionRepository = (*SessionRepository)(nil)

// SessionRepository struct - Secondary/Driven adapter for the session table
// limitSubquery selects the purge strategy: true deletes through a single
// statement with an embedded bounded select, false materializes the ids
// first and deletes by id list (for engines that cannot delete through a
// subquery on the same table).
type SessionRepository struct {
	dbGorm        *gorm.DB
	limitSubquery bool
}

// NewSessionRepository func - Creates new session repository
func NewSessionRepository(dbGorm *gorm.DB, limitSubquery bool) *SessionRepository {
	logrus.Info("Migrate database ...")
	domain.MigrateDatabase(dbGorm)
	return &SessionRepository{
		dbGorm:        dbGorm,
		limitSubquery: limitSubquery,
	}
}

// FindVisible func - Reads a session through the expiration filter.
// Soft-deleted rows are excluded by the default query scope.
func (p *SessionRepository) FindVisible(sid string, nowMillis int64) (*domain.Session, error) {
	var session domain.Session
	tx := p.dbGorm.Where("id = ? AND expired_at > ?", sid, nowMillis).Limit(1).Find(&session)
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &session, nil
}

// FindAny func - Reads a session regardless of its soft-delete state
func (p *SessionRepository) FindAny(sid string) (*domain.Session, error) {
	var session domain.Session
	tx := p.dbGorm.Unscoped().Where("id = ?", sid).Limit(1).Find(&session)
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &session, nil
}

// Insert func - Stores a fresh session row
func (p *SessionRepository) Insert(session *domain.Session) error {
	if err := p.dbGorm.Create(session).Error; err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// UpdateLive func - Refreshes payload and expiry, restricted to rows that
// are still live at the moment of the update. Zero matched rows means a
// destroy won the race; the caller decides what that means.
func (p *SessionRepository) UpdateLive(sid, json string, expiredAt int64) (int64, error) {
	tx := p.dbGorm.Unscoped().Model(&domain.Session{}).
		Where("id = ? AND destroyed_at IS NULL", sid).
		Updates(map[string]interface{}{"json": json, "expired_at": expiredAt})
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// Restore func - Refreshes payload and expiry and clears the soft-delete
// marker, making the session live again
func (p *SessionRepository) Restore(sid, json string, expiredAt int64) error {
	tx := p.dbGorm.Unscoped().Model(&domain.Session{}).
		Where("id = ?", sid).
		Updates(map[string]interface{}{"json": json, "expired_at": expiredAt, "destroyed_at": nil})
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return tx.Error
	}
	return nil
}

// Touch func - Updates only the expiry, unconditionally
func (p *SessionRepository) Touch(sid string, expiredAt int64) error {
	tx := p.dbGorm.Unscoped().Model(&domain.Session{}).
		Where("id = ?", sid).
		Update("expired_at", expiredAt)
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return tx.Error
	}
	return nil
}

// SoftDelete func - Marks the session destroyed; the row stays in the
// table until purged
func (p *SessionRepository) SoftDelete(sid string) error {
	tx := p.dbGorm.Where("id = ?", sid).Delete(&domain.Session{})
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return tx.Error
	}
	return nil
}

// AllVisible func - Enumerates every non-expired, non-destroyed session
func (p *SessionRepository) AllVisible(nowMillis int64) ([]domain.Session, error) {
	var sessions []domain.Session
	tx := p.dbGorm.Where("expired_at > ?", nowMillis).Find(&sessions)
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return nil, tx.Error
	}
	return sessions, nil
}

// PurgeExpired func - Hard-deletes up to limit expired rows, soft-deleted
// rows included. No explicit ordering; the engine picks the candidates.
func (p *SessionRepository) PurgeExpired(nowMillis int64, limit int) error {
	if p.limitSubquery {
		candidates := p.dbGorm.Unscoped().Model(&domain.Session{}).
			Select("id").
			Where("expired_at <= ?", nowMillis).
			Limit(limit)
		tx := p.dbGorm.Unscoped().Where("id IN (?)", candidates).Delete(&domain.Session{})
		if tx.Error != nil {
			logrus.Errorln(tx.Error)
			return tx.Error
		}
		return nil
	}

	var ids []string
	tx := p.dbGorm.Unscoped().Model(&domain.Session{}).
		Where("expired_at <= ?", nowMillis).
		Limit(limit).
		Pluck("id", &ids)
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return tx.Error
	}
	if len(ids) == 0 {
		// Never issue a delete with an empty id list
		return nil
	}
	tx = p.dbGorm.Unscoped().Where("id IN ?", ids).Delete(&domain.Session{})
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return tx.Error
	}
	return nil
}
