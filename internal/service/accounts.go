package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/utils"

	"gorm.io/gorm"
)

// AccountService maps credentials and external identity assertions onto
// user records and drives the registration/login/profile lifecycle.
type AccountService struct {
	db     *gorm.DB
	tokens *TokenService
	otp    *OTPService
}

func NewAccountService(db *gorm.DB, tokens *TokenService, otp *OTPService) *AccountService {
	return &AccountService{db: db, tokens: tokens, otp: otp}
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   *string
	LastName    *string
	DateOfBirth *time.Time
	Gender      *string
	Location    *string
}

type RegisterResult struct {
	Message              string `json:"message"`
	Email                string `json:"email"`
	UserID               uint   `json:"user_id"`
	RequiresVerification bool   `json:"requiresVerification"`
}

// AuthResult is tokens plus a user summary, returned by login, OAuth
// resolution and profile completion.
type AuthResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// Register creates an unverified account and sends the verification code.
// No tokens are issued until the email is verified.
func (s *AccountService) Register(input RegisterInput) (*RegisterResult, error) {
	var existing models.User
	err := s.db.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, Conflict("Email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: &hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		DateOfBirth:  input.DateOfBirth,
		Gender:       input.Gender,
		Location:     input.Location,
		IsActive:     true,
	}
	user.RecomputeProfileComplete()

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	if _, err := s.otp.SendCode(user.Email, models.OTPPurposeRegistration); err != nil {
		return nil, err
	}

	return &RegisterResult{
		Message:              "Registration successful! Please check your email and verify your account to complete registration.",
		Email:                user.Email,
		UserID:               user.ID,
		RequiresVerification: true,
	}, nil
}

// Login authenticates with email and password. Accounts created through
// OAuth only, with no password hash, cannot password-login. Login does not
// require a verified email.
func (s *AccountService) Login(email, password string) (*AuthResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Invalid credentials")
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, NotFound("Invalid credentials")
	}
	if !utils.CheckPassword(*user.PasswordHash, password) {
		return nil, Validation("Invalid credentials")
	}

	accessToken, refreshToken, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: &user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

type OAuthProfile struct {
	Email     string
	FirstName string
	LastName  string
}

// OAuthResult tells the HTTP boundary whether to redirect the user to a
// profile-completion screen after an OAuth login.
type OAuthResult struct {
	User                      *models.User
	AccessToken               string
	RefreshToken              string
	RequiresProfileCompletion bool
	MissingFields             []string
}

// ResolveOAuth maps an external identity assertion onto a user record,
// creating one on first login. OAuth users arrive with a verified email
// and a throwaway password hash.
func (s *AccountService) ResolveOAuth(profile OAuthProfile) (*OAuthResult, error) {
	var user models.User
	err := s.db.Where("email = ?", profile.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		password, err := randomPassword()
		if err != nil {
			return nil, err
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			return nil, err
		}

		user = models.User{
			Email:           profile.Email,
			PasswordHash:    &hash,
			IsEmailVerified: true,
			IsActive:        true,
		}
		if profile.FirstName != "" {
			user.FirstName = &profile.FirstName
		}
		if profile.LastName != "" {
			user.LastName = &profile.LastName
		}
		user.RecomputeProfileComplete()

		if err := s.db.Create(&user).Error; err != nil {
			slog.Error("oauth user creation failed", "email", profile.Email, "error", err)
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	missing := user.MissingProfileFields()
	complete := len(missing) == 0
	if complete != user.IsProfileComplete {
		// Stored flag drifted from the field values; correct it.
		if err := s.db.Model(&user).Update("is_profile_complete", complete).Error; err != nil {
			return nil, err
		}
		user.IsProfileComplete = complete
	}

	accessToken, refreshToken, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		slog.Error("oauth token issue failed", "email", profile.Email, "error", err)
		return nil, err
	}

	return &OAuthResult{
		User:                      &user,
		AccessToken:               accessToken,
		RefreshToken:              refreshToken,
		RequiresProfileCompletion: !complete,
		MissingFields:             missing,
	}, nil
}

type ProfileInput struct {
	DateOfBirth *time.Time
	Gender      *string
	Location    *string
}

// CompleteProfile merges the supplied fields into the user record,
// recomputes the completeness flag and re-authenticates with a fresh pair.
func (s *AccountService) CompleteProfile(userID uint, input ProfileInput) (*AuthResult, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, err
	}

	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != nil {
		user.Gender = input.Gender
	}
	if input.Location != nil {
		user.Location = input.Location
	}
	user.RecomputeProfileComplete()

	if err := s.db.Save(&user).Error; err != nil {
		slog.Error("profile completion failed", "userId", userID, "error", err)
		return nil, err
	}

	accessToken, refreshToken, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: &user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
