package models

import "time"

// QuestionnaireResponse holds a user's single project questionnaire. One
// response per user; a second create is a conflict.
type QuestionnaireResponse struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	UserID                uint      `gorm:"uniqueIndex;not null" json:"userId"`
	PrimaryGoal           string    `gorm:"size:100;not null" json:"primaryGoal"`
	AvailabilityTimeframe string    `gorm:"size:50;not null" json:"availabilityTimeframe"`
	TeamStatus            string    `gorm:"size:50;not null" json:"teamStatus"`
	ExperienceLevel       string    `gorm:"size:50;not null" json:"experienceLevel"`
	ProjectTitle          string    `gorm:"size:100;not null" json:"projectTitle"`
	ProjectDescription    string    `gorm:"size:300;not null" json:"projectDescription"`
	Domain                string    `gorm:"size:100;not null" json:"domain"`
	KeySkills             []string  `gorm:"serializer:json" json:"keySkills"`
	ProjectStage          string    `gorm:"size:50;not null" json:"projectStage"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
