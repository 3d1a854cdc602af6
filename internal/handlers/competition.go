package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
)

type CompetitionHandler struct {
	DB *gorm.DB
}

func NewCompetitionHandler(db *gorm.DB) *CompetitionHandler {
	return &CompetitionHandler{DB: db}
}

// List returns the full catalogue, newest first. Viewing the catalogue
// needs no authentication and no complete profile.
func (h *CompetitionHandler) List(c *gin.Context) {
	var competitions []models.Competition
	if err := h.DB.Order("created_at DESC").Find(&competitions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load competitions"})
		return
	}
	c.JSON(http.StatusOK, competitions)
}
