package domain

import (
	"gorm.io/gorm"
)

// Session struct - Core domain entity
// A session row is visible to readers only while it is not soft-deleted
// and its expiry lies in the future. Soft-deleted rows stay in the table
// until the cleanup engine purges them.
type Session struct {
	ID          string         `gorm:"type:varchar(255);primary_key"`
	JSON        string         `gorm:"type:text;not null"`
	ExpiredAt   int64          `gorm:"not null;index"`
	DestroyedAt gorm.DeletedAt `gorm:"index"`
}

// TableName func
func (s *Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session's expiry has passed at the given
// epoch-millisecond instant.
func (s *Session) Expired(nowMillis int64) bool {
	return s.ExpiredAt <= nowMillis
}

// Destroyed reports whether the session has been soft-deleted.
func (s *Session) Destroyed() bool {
	return s.DestroyedAt.Valid
}

// Visible reports whether the session may be returned to readers.
func (s *Session) Visible(nowMillis int64) bool {
	return !s.Destroyed() && !s.Expired(nowMillis)
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) {
	if db == nil {
		panic("An error when connect database")
	}

	err := db.AutoMigrate(&Session{})
	if err != nil {
		panic(err)
	}
}
