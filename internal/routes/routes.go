package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/config"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/email"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/handlers"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/middleware"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/recommender"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/service"
)

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	mailer := email.NewMailer(email.Config{
		Host:     cfg.SmtpHost,
		Port:     cfg.SmtpPort,
		Username: cfg.SmtpUser,
		Password: cfg.SmtpPass,
		From:     cfg.SmtpFrom,
	})

	tokens := service.NewTokenService(db, cfg.JwtSecret,
		time.Duration(cfg.JwtAccessMinutes)*time.Minute,
		time.Duration(cfg.JwtRefreshHours)*time.Hour)
	otp := service.NewOTPService(db, mailer, tokens, time.Duration(cfg.OtpMinutes)*time.Minute)
	accounts := service.NewAccountService(db, tokens, otp)
	recommendations := service.NewRecommendationService(db, recommender.NewClient(cfg.RecommenderURL))

	authHandler := handlers.NewAuthHandler(accounts, otp, tokens, cfg)
	userHandler := handlers.NewUserHandler(db)
	competitionHandler := handlers.NewCompetitionHandler(db)
	questionnaireHandler := handlers.NewQuestionnaireHandler(db)
	interactionHandler := handlers.NewInteractionHandler(db)
	recommendationHandler := handlers.NewRecommendationHandler(recommendations)

	authRequired := middleware.AuthRequired(db, cfg.JwtSecret)
	profileComplete := middleware.ProfileCompleteRequired()
	otpRateLimit := middleware.RateLimit(cfg.OtpSendPerMinute)

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/send-verification", otpRateLimit, authHandler.SendVerification)
		auth.POST("/verify-registration", authHandler.VerifyRegistration)
		auth.POST("/login", authHandler.Login)
		auth.POST("/send-otp", otpRateLimit, authHandler.SendOtp)
		auth.POST("/verify-otp", authHandler.VerifyOtp)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/signout", authHandler.SignOut)
		auth.GET("/google", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
		auth.POST("/complete-profile", authRequired, authHandler.CompleteProfile)
		auth.GET("/protected", authRequired, profileComplete, authHandler.Protected)
	}

	router.GET("/competitions", competitionHandler.List)

	users := router.Group("/users", authRequired)
	{
		users.GET("", userHandler.List)
		users.GET("/:userId", userHandler.GetByID)
	}

	questionnaire := router.Group("/questionnaire", authRequired)
	{
		questionnaire.POST("", profileComplete, questionnaireHandler.Create)
		questionnaire.GET("/my-response", questionnaireHandler.GetMine)
		questionnaire.GET("/all", questionnaireHandler.GetAll)
		questionnaire.PUT("", questionnaireHandler.Update)
		questionnaire.DELETE("", questionnaireHandler.Delete)
		questionnaire.GET("/:userId", questionnaireHandler.GetByUser)
		questionnaire.DELETE("/:userId", questionnaireHandler.DeleteByUser)
	}

	interaction := router.Group("/user-interaction/competition", authRequired)
	{
		interaction.POST("", interactionHandler.Create)
		interaction.GET("/my-interactions", interactionHandler.ListMine)
		interaction.GET("/stats", interactionHandler.MyStats)
		interaction.GET("/analytics", interactionHandler.Analytics)
		interaction.GET("/user/:userId", interactionHandler.ListByUser)
		interaction.GET("/user/:userId/stats", interactionHandler.StatsByUser)
	}

	recommendationsGroup := router.Group("/recommendations", authRequired)
	{
		recommendationsGroup.POST("", profileComplete, recommendationHandler.Create)
		recommendationsGroup.GET("/user", recommendationHandler.ListMine)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
