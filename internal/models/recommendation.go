package models

import "time"

// RecommendedCompetition stores one scored competition returned by the
// external recommender, together with the model insights that produced it.
type RecommendedCompetition struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"index;not null" json:"userId"`
	CompetitionID    string         `gorm:"type:char(36);index;not null" json:"competitionId"`
	FitScore         float64        `json:"fitScore"`
	MlSimilarity     float64        `json:"mlSimilarity"`
	TextSimilarity   float64        `json:"textSimilarity"`
	SkillsSimilarity float64        `json:"skillsSimilarity"`
	FitReasons       []string       `gorm:"serializer:json" json:"fitReasons"`
	ModelType        string         `gorm:"size:100" json:"modelType"`
	ScoringPriority  string         `gorm:"size:100" json:"scoringPriority"`
	FeaturesUsed     []string       `gorm:"serializer:json" json:"featuresUsed"`
	SimilarityRange  string         `gorm:"size:100" json:"similarityRange"`
	DebugInfo        map[string]any `gorm:"serializer:json" json:"debugInfo"`
	GeneratedAt      time.Time      `gorm:"index" json:"generatedAt"`
	CreatedAt        time.Time      `json:"createdAt"`

	Competition Competition `gorm:"foreignKey:CompetitionID" json:"competition,omitempty"`
}
