package models

import (
	"time"
)

type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Email             string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash      *string    `gorm:"size:255" json:"-"`
	FirstName         *string    `gorm:"size:255" json:"firstName,omitempty"`
	LastName          *string    `gorm:"size:255" json:"lastName,omitempty"`
	DateOfBirth       *time.Time `json:"dateOfBirth,omitempty"`
	Gender            *string    `gorm:"size:50" json:"gender,omitempty"`
	Location          *string    `gorm:"size:255" json:"location,omitempty"`
	IsEmailVerified   bool       `gorm:"not null;default:false" json:"isEmailVerified"`
	IsProfileComplete bool       `gorm:"not null;default:false" json:"isProfileComplete"`
	IsActive          bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// MissingProfileFields reports which of the required profile fields are
// still unset, in the order the frontend expects them.
func (u *User) MissingProfileFields() []string {
	missing := []string{}
	if u.DateOfBirth == nil {
		missing = append(missing, "dateOfBirth")
	}
	if u.Gender == nil || *u.Gender == "" {
		missing = append(missing, "gender")
	}
	if u.Location == nil || *u.Location == "" {
		missing = append(missing, "location")
	}
	return missing
}

// RecomputeProfileComplete derives IsProfileComplete from the profile
// fields. Called after every profile mutation so the stored flag never
// drifts from the field values.
func (u *User) RecomputeProfileComplete() {
	u.IsProfileComplete = len(u.MissingProfileFields()) == 0
}
