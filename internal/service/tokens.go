package service

import (
	"errors"
	"time"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenService mints, rotates and revokes access/refresh token pairs.
// Both tokens are HS256 JWTs carrying the user id and email; the pair row
// tracks the refresh token's expiry.
type TokenService struct {
	db         *gorm.DB
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(db *gorm.DB, secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		db:         db,
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Issue signs a new access/refresh pair and persists one TokenPair row.
func (s *TokenService) Issue(userID uint, email string) (accessToken, refreshToken string, err error) {
	accessToken, err = utils.SignToken(userID, email, s.secret, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = utils.SignToken(userID, email, s.secret, s.refreshTTL)
	if err != nil {
		return "", "", err
	}

	pair := models.TokenPair{
		UserID:       userID,
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.refreshTTL),
	}
	if err := s.db.Create(&pair).Error; err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// SignAccess signs a bare access token without persisting a pair row.
// Used by the login-OTP verification path.
func (s *TokenService) SignAccess(userID uint, email string) (string, error) {
	return utils.SignToken(userID, email, s.secret, s.accessTTL)
}

// Refresh rotates the pair identified by oldRefreshToken in place: the same
// row is advanced to the new token values, so the old refresh token stops
// being accepted immediately.
func (s *TokenService) Refresh(oldRefreshToken string) (accessToken, refreshToken string, err error) {
	var pair models.TokenPair
	if err := s.db.Where("refresh_token = ?", oldRefreshToken).First(&pair).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", NotFound("Invalid refresh token")
		}
		return "", "", err
	}

	if pair.ExpiresAt.Before(time.Now()) {
		return "", "", Validation("Refresh token expired")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", pair.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", NotFound("User not found")
		}
		return "", "", err
	}

	accessToken, err = utils.SignToken(user.ID, user.Email, s.secret, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = utils.SignToken(user.ID, user.Email, s.secret, s.refreshTTL)
	if err != nil {
		return "", "", err
	}

	updates := map[string]any{
		"token":         accessToken,
		"refresh_token": refreshToken,
		"expires_at":    time.Now().Add(s.refreshTTL),
	}
	if err := s.db.Model(&models.TokenPair{}).Where("id = ?", pair.ID).Updates(updates).Error; err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// Revoke pushes the token onto the blacklist and drops any pair row whose
// access token matches. Idempotent: the blacklist insert is an upsert that
// ignores duplicates.
func (s *TokenService) Revoke(token string) error {
	revoked := models.RevokedToken{Token: token}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&revoked).Error; err != nil {
		return err
	}
	return s.db.Where("token = ?", token).Delete(&models.TokenPair{}).Error
}

// IsRevoked reports whether the token is on the blacklist.
func (s *TokenService) IsRevoked(token string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.RevokedToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
