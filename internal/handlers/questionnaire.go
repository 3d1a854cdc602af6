package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/middleware"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
)

type QuestionnaireHandler struct {
	DB *gorm.DB
}

func NewQuestionnaireHandler(db *gorm.DB) *QuestionnaireHandler {
	return &QuestionnaireHandler{DB: db}
}

type questionnaireRequest struct {
	PrimaryGoal           string   `json:"primaryGoal" binding:"required,oneof='Funding/Investment' 'Networking' 'Recognition/Awards' 'Learning/Skills' 'Job Opportunities' 'Global Exposure'"`
	AvailabilityTimeframe string   `json:"availabilityTimeframe" binding:"required,oneof='1-2 weeks' '1 month' '2-3 months' '6+ months' 'Flexible'"`
	TeamStatus            string   `json:"teamStatus" binding:"required,oneof='Solo' 'Small team (2-3)' 'Large team (4+)' 'Looking for teammates'"`
	ExperienceLevel       string   `json:"experienceLevel" binding:"required,oneof='Beginner' 'Intermediate' 'Advanced' 'Expert'"`
	ProjectTitle          string   `json:"projectTitle" binding:"required,max=100"`
	ProjectDescription    string   `json:"projectDescription" binding:"required,max=300"`
	Domain                string   `json:"domain" binding:"required,oneof='AI/Machine Learning' 'Web Development' 'Mobile Apps' 'Data Science' 'Blockchain/Crypto' 'FinTech' 'HealthTech' 'EdTech' 'AgriTech' 'CleanTech/Sustainability' 'IoT/Hardware' 'Gaming' 'E-commerce' 'Social Impact' 'Other'"`
	KeySkills             []string `json:"keySkills" binding:"max=3,dive,required"`
	ProjectStage          string   `json:"projectStage" binding:"required,oneof='Idea Stage' 'Prototype' 'Beta/Testing' 'Launched' 'Scaling'"`
}

func (h *QuestionnaireHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req questionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	var existing models.QuestionnaireResponse
	if err := h.DB.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already has a questionnaire response"})
		return
	}

	response := models.QuestionnaireResponse{
		UserID:                userID,
		PrimaryGoal:           req.PrimaryGoal,
		AvailabilityTimeframe: req.AvailabilityTimeframe,
		TeamStatus:            req.TeamStatus,
		ExperienceLevel:       req.ExperienceLevel,
		ProjectTitle:          req.ProjectTitle,
		ProjectDescription:    req.ProjectDescription,
		Domain:                req.Domain,
		KeySkills:             req.KeySkills,
		ProjectStage:          req.ProjectStage,
	}
	if err := h.DB.Create(&response).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save questionnaire"})
		return
	}

	h.DB.Preload("User").First(&response, response.ID)
	c.JSON(http.StatusOK, response)
}

func (h *QuestionnaireHandler) GetMine(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	h.getByUserID(c, userID)
}

func (h *QuestionnaireHandler) GetAll(c *gin.Context) {
	var responses []models.QuestionnaireResponse
	if err := h.DB.Preload("User").Find(&responses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load questionnaires"})
		return
	}
	c.JSON(http.StatusOK, responses)
}

func (h *QuestionnaireHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req questionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	var response models.QuestionnaireResponse
	if err := h.DB.Where("user_id = ?", userID).First(&response).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Questionnaire response not found"})
		return
	}

	response.PrimaryGoal = req.PrimaryGoal
	response.AvailabilityTimeframe = req.AvailabilityTimeframe
	response.TeamStatus = req.TeamStatus
	response.ExperienceLevel = req.ExperienceLevel
	response.ProjectTitle = req.ProjectTitle
	response.ProjectDescription = req.ProjectDescription
	response.Domain = req.Domain
	response.KeySkills = req.KeySkills
	response.ProjectStage = req.ProjectStage

	if err := h.DB.Save(&response).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update questionnaire"})
		return
	}

	h.DB.Preload("User").First(&response, response.ID)
	c.JSON(http.StatusOK, response)
}

func (h *QuestionnaireHandler) Delete(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	h.deleteByUserID(c, userID)
}

func (h *QuestionnaireHandler) GetByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	h.getByUserID(c, uint(userID))
}

func (h *QuestionnaireHandler) DeleteByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	h.deleteByUserID(c, uint(userID))
}

func (h *QuestionnaireHandler) getByUserID(c *gin.Context, userID uint) {
	var response models.QuestionnaireResponse
	err := h.DB.Preload("User").Where("user_id = ?", userID).First(&response).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Questionnaire response not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load questionnaire"})
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *QuestionnaireHandler) deleteByUserID(c *gin.Context, userID uint) {
	var response models.QuestionnaireResponse
	if err := h.DB.Where("user_id = ?", userID).First(&response).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Questionnaire response not found"})
		return
	}
	if err := h.DB.Delete(&response).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete questionnaire"})
		return
	}
	c.JSON(http.StatusOK, response)
}
