package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/config"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/middleware"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/service"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	accounts    *service.AccountService
	otp         *service.OTPService
	tokens      *service.TokenService
	oauth       *oauth2.Config
	frontendURL string

	// fetchProfile exchanges the authorization code for a Google profile.
	// A field so tests can substitute the exchange.
	fetchProfile func(ctx context.Context, code string) (*service.OAuthProfile, error)
}

func NewAuthHandler(accounts *service.AccountService, otp *service.OTPService, tokens *service.TokenService, cfg config.Config) *AuthHandler {
	h := &AuthHandler{
		accounts: accounts,
		otp:      otp,
		tokens:   tokens,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		frontendURL: cfg.FrontendURL,
	}
	h.fetchProfile = h.fetchGoogleProfile
	return h
}

type registerRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	DateOfBirth *string `json:"dateOfBirth"`
	Gender      *string `json:"gender"`
	Location    *string `json:"location"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type signOutRequest struct {
	Token string `json:"token" binding:"required"`
}

type completeProfileRequest struct {
	DateOfBirth *string `json:"dateOfBirth"`
	Gender      *string `json:"gender"`
	Location    *string `json:"location"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dateOfBirth"})
		return
	}

	result, err := h.accounts.Register(service.RegisterInput{
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		Gender:      req.Gender,
		Location:    req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":              result.Message,
		"user":                 gin.H{"email": result.Email, "user_id": result.UserID},
		"requiresVerification": result.RequiresVerification,
	})
}

func (h *AuthHandler) SendVerification(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	message, err := h.otp.SendCode(strings.ToLower(strings.TrimSpace(req.Email)), models.OTPPurposeRegistration)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *AuthHandler) VerifyRegistration(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	result, err := h.otp.VerifyRegistrationCode(strings.ToLower(strings.TrimSpace(req.Email)), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	result, err := h.accounts.Login(strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"user":         gin.H{"email": result.User.Email, "user_id": result.User.ID},
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

func (h *AuthHandler) SendOtp(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	message, err := h.otp.SendCode(strings.ToLower(strings.TrimSpace(req.Email)), models.OTPPurposeLogin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	accessToken, err := h.otp.VerifyLoginCode(strings.ToLower(strings.TrimSpace(req.Email)), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	accessToken, refreshToken, err := h.tokens.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken, "refreshToken": refreshToken})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	var req signOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if err := h.tokens.Revoke(req.Token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	profile, err := h.fetchProfile(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.accounts.ResolveOAuth(*profile)
	if err != nil {
		respondError(c, err)
		return
	}

	// The frontend receives tokens and profile-completion metadata as
	// query parameters and decides whether to show the completion screen.
	// The parameter set is fixed: name parameters are present even when
	// the profile has no value for them.
	firstName, lastName := "", ""
	if result.User.FirstName != nil {
		firstName = *result.User.FirstName
	}
	if result.User.LastName != nil {
		lastName = *result.User.LastName
	}

	params := url.Values{}
	params.Set("accessToken", result.AccessToken)
	params.Set("refreshToken", result.RefreshToken)
	params.Set("email", result.User.Email)
	params.Set("firstName", firstName)
	params.Set("lastName", lastName)
	params.Set("requiresProfileCompletion", strconv.FormatBool(result.RequiresProfileCompletion))
	params.Set("missingFields", strings.Join(result.MissingFields, ","))

	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/auth/callback?"+params.Encode())
}

func (h *AuthHandler) CompleteProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req completeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dateOfBirth"})
		return
	}

	result, err := h.accounts.CompleteProfile(userID, service.ProfileInput{
		DateOfBirth: dob,
		Gender:      req.Gender,
		Location:    req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         result.User,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

func (h *AuthHandler) Protected(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "You have accessed a protected route!",
		"user":    user,
	})
}

type googleUserInfo struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

func (h *AuthHandler) fetchGoogleProfile(ctx context.Context, code string) (*service.OAuthProfile, error) {
	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, service.Validation("oauth code exchange failed")
	}

	client := h.oauth.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, service.Validation("oauth profile has no email")
	}

	return &service.OAuthProfile{
		Email:     strings.ToLower(info.Email),
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
	}, nil
}

func parseDateOfBirth(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", *value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
