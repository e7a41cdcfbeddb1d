package models

import "time"

// Session is a server-side login session. The cookie carries the raw token;
// only its SHA-256 hash is stored, so a leaked sessions table cannot be
// replayed.
type Session struct {
	ID        uint      `gorm:"primaryKey"`
	UserEmail string    `gorm:"size:255;not null;index"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}
