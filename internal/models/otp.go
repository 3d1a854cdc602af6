package models

import "time"

const (
	OTPPurposeLogin        = "login"
	OTPPurposeRegistration = "registration"
)

type OTP struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	CodeHash  string    `gorm:"size:255;not null"`
	Purpose   string    `gorm:"size:20;index;not null"`
	ExpiresAt time.Time `gorm:"index"`
	IsUsed    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}
