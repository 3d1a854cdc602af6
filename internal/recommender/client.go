package recommender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
)

// Client talks to the external ML scoring service. The service receives the
// full competition catalogue plus the caller's questionnaire answers and
// returns scored recommendations.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type Recommendation struct {
	CompetitionID    string   `json:"competition_id"`
	FitScore         float64  `json:"fit_score"`
	MlSimilarity     float64  `json:"ml_similarity"`
	TextSimilarity   float64  `json:"text_similarity"`
	SkillsSimilarity float64  `json:"skills_similarity"`
	FitReasons       []string `json:"fit_reasons"`
}

type MLInsights struct {
	ModelType       string         `json:"model_type"`
	ScoringPriority string         `json:"scoring_priority"`
	FeaturesUsed    []string       `json:"features_used"`
	SimilarityRange string         `json:"similarity_range"`
	DebugInfo       map[string]any `json:"debug_info"`
}

type Response struct {
	Recommendations []Recommendation `json:"recommendations"`
	MLInsights      MLInsights       `json:"ml_insights"`
	GeneratedAt     time.Time        `json:"generated_at"`

	// Raw preserves the scorer's exact response body so the API can
	// forward it to the frontend unchanged.
	Raw json.RawMessage `json:"-"`
}

// Recommend posts the catalogue and questionnaire payload to the scorer.
func (c *Client) Recommend(ctx context.Context, userID string, competitions []models.Competition, questionnaire map[string]any) (*Response, error) {
	payload := map[string]any{
		"user_id":      userID,
		"competitions": competitions,
	}
	for k, v := range questionnaire {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("recommender returned status %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	var parsed Response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	parsed.Raw = raw

	return &parsed, nil
}
