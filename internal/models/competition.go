package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Competition struct {
	ID                 string     `gorm:"type:char(36);primaryKey" json:"id"`
	Title              string     `gorm:"size:255;not null" json:"title"`
	Description        string     `gorm:"type:text" json:"description"`
	Domain             string     `gorm:"size:100;index" json:"domain"`
	Tags               []string   `gorm:"serializer:json" json:"tags"`
	PrizeAmount        float64    `json:"prizeAmount"`
	NonMonetaryRewards []string   `gorm:"serializer:json" json:"nonMonetaryRewards"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	Benefits           []string   `gorm:"serializer:json" json:"benefits"`
	Difficulty         string     `gorm:"size:50" json:"difficulty"`
	Website            string     `gorm:"size:2048" json:"website"`
	Organizer          string     `gorm:"size:255" json:"organizer"`
	TimeCommitment     string     `gorm:"size:100" json:"timeCommitment"`
	TeamRequirement    string     `gorm:"size:100" json:"teamRequirement"`
	TargetAudience     string     `gorm:"size:255" json:"targetAudience"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func (c *Competition) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
