package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/utils"

	"gorm.io/gorm"
)

// Mailer delivers one-time codes. Codes are never returned in API
// responses; email is the only transport for both purposes.
type Mailer interface {
	SendVerificationCode(to, code string) error
	SendLoginCode(to, code string) error
}

// OTPService generates and validates short-lived numeric codes tied to a
// purpose (login or registration email verification).
type OTPService struct {
	db     *gorm.DB
	mailer Mailer
	tokens *TokenService
	ttl    time.Duration
}

func NewOTPService(db *gorm.DB, mailer Mailer, tokens *TokenService, ttl time.Duration) *OTPService {
	return &OTPService{db: db, mailer: mailer, tokens: tokens, ttl: ttl}
}

// SendCode generates a fresh 6-digit code for the user, invalidating any
// unused code of the same purpose, and emails it.
func (s *OTPService) SendCode(email, purpose string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", NotFound("User not found")
		}
		return "", err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return "", err
	}
	codeHash, err := utils.HashOTP(code)
	if err != nil {
		return "", err
	}

	otp := models.OTP{
		UserID:    user.ID,
		CodeHash:  codeHash,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	// At most one unused code per (user, purpose): drop the old ones first.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND purpose = ? AND is_used = ?", user.ID, purpose, false).
			Delete(&models.OTP{}).Error; err != nil {
			return err
		}
		return tx.Create(&otp).Error
	})
	if err != nil {
		return "", err
	}

	if purpose == models.OTPPurposeRegistration {
		if err := s.mailer.SendVerificationCode(user.Email, code); err != nil {
			return "", err
		}
		return fmt.Sprintf("Verification code sent to %s", user.Email), nil
	}

	if err := s.mailer.SendLoginCode(user.Email, code); err != nil {
		return "", err
	}
	return fmt.Sprintf("OTP sent to %s", user.Email), nil
}

// VerifyLoginCode checks the most recent unused login code for the user.
// On success the code row is deleted and a bare access token is returned.
func (s *OTPService) VerifyLoginCode(email, code string) (string, error) {
	user, otp, err := s.latestUnusedCode(email, models.OTPPurposeLogin)
	if err != nil {
		return "", err
	}
	if otp == nil || !utils.CheckOTP(otp.CodeHash, code) {
		return "", Validation("Invalid OTP")
	}
	if otp.ExpiresAt.Before(time.Now()) {
		return "", Validation("OTP has expired")
	}

	if err := s.db.Delete(otp).Error; err != nil {
		return "", err
	}

	return s.tokens.SignAccess(user.ID, user.Email)
}

// VerificationResult is the payload returned after a successful
// registration verification: the user is verified and logged in.
type VerificationResult struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// VerifyRegistrationCode checks the most recent unused registration code.
// On success the code is marked used, the user's email is marked verified,
// and a token pair is issued exactly as login does.
func (s *OTPService) VerifyRegistrationCode(email, code string) (*VerificationResult, error) {
	user, otp, err := s.latestUnusedCode(email, models.OTPPurposeRegistration)
	if err != nil {
		return nil, err
	}
	if otp == nil {
		return nil, Validation("No verification code found. Please request a new one.")
	}
	if !utils.CheckOTP(otp.CodeHash, code) {
		return nil, Validation("Invalid verification code")
	}
	if otp.ExpiresAt.Before(time.Now()) {
		return nil, Validation("Verification code has expired")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(otp).Update("is_used", true).Error; err != nil {
			return err
		}
		return tx.Model(user).Update("is_email_verified", true).Error
	})
	if err != nil {
		return nil, err
	}
	user.IsEmailVerified = true

	accessToken, refreshToken, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &VerificationResult{
		Success:      true,
		Message:      "Email verified successfully! You are now logged in.",
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// latestUnusedCode loads the user and their most recently created unused
// code for the purpose. A missing code is reported as (user, nil, nil) so
// callers can choose their own validation message.
func (s *OTPService) latestUnusedCode(email, purpose string) (*models.User, *models.OTP, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, NotFound("User not found")
		}
		return nil, nil, err
	}

	var otp models.OTP
	err := s.db.Where("user_id = ? AND purpose = ? AND is_used = ?", user.ID, purpose, false).
		Order("created_at DESC, id DESC").First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &user, nil, nil
		}
		return nil, nil, err
	}

	return &user, &otp, nil
}
