package models

import "time"

// RevokedToken is an append-only blacklist entry. Tokens on this list are
// rejected even when the signature and expiry would otherwise pass.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;size:512;not null"`
	CreatedAt time.Time
}
