package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/utils"
)

const (
	ContextUserID = "userId"
	ContextUser   = "user"
	ContextToken  = "token"
)

// AuthRequired validates the bearer token, rejects revoked tokens and
// attaches the resolved user record to the request context.
func AuthRequired(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization"})
			return
		}
		tokenString := parts[1]

		claims, err := utils.ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// Signed-out tokens stay on the blacklist even while unexpired.
		var revoked int64
		if err := db.Model(&models.RevokedToken{}).Where("token = ?", tokenString).Count(&revoked).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token check failed"})
			return
		}
		if revoked > 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, &user)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}

// ProfileCompleteRequired blocks access until the required profile fields
// are present. Runs after AuthRequired.
func ProfileCompleteRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !user.IsProfileComplete {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Profile is incomplete. Please complete your profile."})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by AuthRequired.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// CurrentUserID returns the user id attached by AuthRequired.
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
