package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/recommender"

	"gorm.io/gorm"
)

// RecommendationService proxies scoring to the external recommender and
// persists whatever it returns. The scoring itself lives outside this
// backend.
type RecommendationService struct {
	db     *gorm.DB
	client *recommender.Client
}

func NewRecommendationService(db *gorm.DB, client *recommender.Client) *RecommendationService {
	return &RecommendationService{db: db, client: client}
}

// GetAndStore loads the catalogue, asks the recommender to score it against
// the questionnaire payload, stores each returned recommendation and hands
// the scorer's response back verbatim.
func (s *RecommendationService) GetAndStore(ctx context.Context, userID uint, questionnaire map[string]any) (json.RawMessage, error) {
	var competitions []models.Competition
	if err := s.db.Find(&competitions).Error; err != nil {
		return nil, err
	}
	if len(competitions) == 0 {
		return nil, Validation("No competitions found in database")
	}

	resp, err := s.client.Recommend(ctx, fmt.Sprintf("user-%d", userID), competitions, questionnaire)
	if err != nil {
		slog.Error("recommender call failed", "userId", userID, "error", err)
		return nil, Validation("Failed to get/store recommendations from ML model")
	}

	rows := make([]models.RecommendedCompetition, 0, len(resp.Recommendations))
	for _, rec := range resp.Recommendations {
		rows = append(rows, models.RecommendedCompetition{
			UserID:           userID,
			CompetitionID:    rec.CompetitionID,
			FitScore:         rec.FitScore,
			MlSimilarity:     rec.MlSimilarity,
			TextSimilarity:   rec.TextSimilarity,
			SkillsSimilarity: rec.SkillsSimilarity,
			FitReasons:       rec.FitReasons,
			ModelType:        resp.MLInsights.ModelType,
			ScoringPriority:  resp.MLInsights.ScoringPriority,
			FeaturesUsed:     resp.MLInsights.FeaturesUsed,
			SimilarityRange:  resp.MLInsights.SimilarityRange,
			DebugInfo:        resp.MLInsights.DebugInfo,
			GeneratedAt:      resp.GeneratedAt,
		})
	}
	if len(rows) > 0 {
		if err := s.db.Create(&rows).Error; err != nil {
			slog.Error("storing recommendations failed", "userId", userID, "error", err)
			return nil, Validation("Failed to get/store recommendations from ML model")
		}
	}

	return resp.Raw, nil
}

// ListForUser returns the user's stored recommendations, newest first.
func (s *RecommendationService) ListForUser(userID uint) ([]models.RecommendedCompetition, error) {
	var rows []models.RecommendedCompetition
	err := s.db.Where("user_id = ?", userID).
		Preload("Competition").
		Order("generated_at DESC").
		Find(&rows).Error
	return rows, err
}
