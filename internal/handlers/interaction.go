package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/middleware"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
)

type InteractionHandler struct {
	DB *gorm.DB
}

func NewInteractionHandler(db *gorm.DB) *InteractionHandler {
	return &InteractionHandler{DB: db}
}

type createInteractionRequest struct {
	CompetitionID   string         `json:"competitionId" binding:"required"`
	InteractionType string         `json:"interactionType" binding:"required"`
	Metadata        map[string]any `json:"metadata"`
}

func (h *InteractionHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	var competition models.Competition
	if err := h.DB.First(&competition, "id = ?", req.CompetitionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Competition not found"})
		return
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	interaction := models.CompetitionInteraction{
		UserID:          userID,
		CompetitionID:   req.CompetitionID,
		InteractionType: req.InteractionType,
		Metadata:        metadata,
	}
	if err := h.DB.Create(&interaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save interaction"})
		return
	}

	interaction.Competition = competition
	c.JSON(http.StatusOK, interaction)
}

func (h *InteractionHandler) ListMine(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	h.listForUser(c, userID)
}

func (h *InteractionHandler) MyStats(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	h.statsForUser(c, userID)
}

func (h *InteractionHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	h.listForUser(c, uint(userID))
}

func (h *InteractionHandler) StatsByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	h.statsForUser(c, uint(userID))
}

// Analytics aggregates interaction activity across all users.
func (h *InteractionHandler) Analytics(c *gin.Context) {
	var total int64
	if err := h.DB.Model(&models.CompetitionInteraction{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
		return
	}

	type typeCount struct {
		InteractionType string `json:"interactionType"`
		Count           int64  `json:"count"`
	}
	var byType []typeCount
	h.DB.Model(&models.CompetitionInteraction{}).
		Select("interaction_type, COUNT(*) AS count").
		Group("interaction_type").
		Scan(&byType)

	type competitionCount struct {
		CompetitionID string `json:"competitionId"`
		Count         int64  `json:"count"`
	}
	var topCompetitions []competitionCount
	h.DB.Model(&models.CompetitionInteraction{}).
		Select("competition_id, COUNT(*) AS count").
		Group("competition_id").
		Order("count DESC").
		Limit(10).
		Scan(&topCompetitions)

	type userCount struct {
		UserID uint  `json:"userId"`
		Count  int64 `json:"count"`
	}
	var topUsers []userCount
	h.DB.Model(&models.CompetitionInteraction{}).
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Order("count DESC").
		Limit(10).
		Scan(&topUsers)

	c.JSON(http.StatusOK, gin.H{
		"totalInteractions":          total,
		"interactionsByType":         byType,
		"mostInteractedCompetitions": topCompetitions,
		"mostActiveUsers":            topUsers,
	})
}

func (h *InteractionHandler) listForUser(c *gin.Context, userID uint) {
	var interactions []models.CompetitionInteraction
	err := h.DB.Where("user_id = ?", userID).
		Preload("Competition").
		Order("created_at DESC").
		Find(&interactions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load interactions"})
		return
	}
	c.JSON(http.StatusOK, interactions)
}

func (h *InteractionHandler) statsForUser(c *gin.Context, userID uint) {
	var interactions []models.CompetitionInteraction
	err := h.DB.Where("user_id = ?", userID).
		Preload("Competition").
		Order("created_at DESC").
		Find(&interactions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load interactions"})
		return
	}

	statsByType := map[string][]models.CompetitionInteraction{}
	uniqueCompetitions := map[string]struct{}{}
	domainStats := map[string]int{}
	for _, interaction := range interactions {
		statsByType[interaction.InteractionType] = append(statsByType[interaction.InteractionType], interaction)
		uniqueCompetitions[interaction.CompetitionID] = struct{}{}
		domainStats[interaction.Competition.Domain]++
	}

	recent := interactions
	if len(recent) > 10 {
		recent = recent[:10]
	}

	c.JSON(http.StatusOK, gin.H{
		"totalInteractions":  len(interactions),
		"uniqueCompetitions": len(uniqueCompetitions),
		"statsByType":        statsByType,
		"domainStats":        domainStats,
		"recentInteractions": recent,
	})
}
