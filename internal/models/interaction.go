package models

import "time"

// CompetitionInteraction is one logged user action against a competition
// (click, view, apply, ...). Metadata is free-form client context.
type CompetitionInteraction struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"index;not null" json:"userId"`
	CompetitionID   string         `gorm:"type:char(36);index;not null" json:"competitionId"`
	InteractionType string         `gorm:"size:50;index;not null" json:"interactionType"`
	Metadata        map[string]any `gorm:"serializer:json" json:"metadata"`
	CreatedAt       time.Time      `json:"createdAt"`

	Competition Competition `gorm:"foreignKey:CompetitionID" json:"competition,omitempty"`
}
