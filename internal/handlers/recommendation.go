package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/middleware"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/service"
)

type RecommendationHandler struct {
	recommendations *service.RecommendationService
}

func NewRecommendationHandler(recommendations *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// Create proxies the caller's questionnaire payload to the scoring service
// and returns its response verbatim after persisting the recommendations.
func (h *RecommendationHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var questionnaire map[string]any
	if err := c.ShouldBindJSON(&questionnaire); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	raw, err := h.recommendations.GetAndStore(c.Request.Context(), userID, questionnaire)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}

func (h *RecommendationHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rows, err := h.recommendations.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recommendations"})
		return
	}

	c.JSON(http.StatusOK, rows)
}
