package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenPair is one issued session. The refresh token is rotated in place:
// a refresh overwrites this row rather than inserting a new one.
type TokenPair struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID       uint      `gorm:"index;not null"`
	Token        string    `gorm:"size:512;index;not null"`
	RefreshToken string    `gorm:"uniqueIndex;size:512;not null"`
	ExpiresAt    time.Time `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t *TokenPair) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
