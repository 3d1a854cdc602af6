package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/service"
)

func stubProfile(profile service.OAuthProfile) func(context.Context, string) (*service.OAuthProfile, error) {
	return func(ctx context.Context, code string) (*service.OAuthProfile, error) {
		return &profile, nil
	}
}

func (app *authTestApp) googleCallback(t *testing.T, state, cookie, code string) *httptest.ResponseRecorder {
	t.Helper()
	target := "/auth/google/callback?state=" + state
	if code != "" {
		target += "&code=" + code
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "oauth_state", Value: cookie})
	}
	recorder := httptest.NewRecorder()
	app.router.ServeHTTP(recorder, req)
	return recorder
}

func TestGoogleCallbackRedirectCarriesFullParameterSet(t *testing.T) {
	app := newAuthTestApp(t)
	app.auth.fetchProfile = stubProfile(service.OAuthProfile{
		Email:     "dana@example.com",
		FirstName: "Dana",
		LastName:  "Reyes",
	})

	resp := app.googleCallback(t, "state-1", "state-1", "auth-code")
	require.Equal(t, http.StatusTemporaryRedirect, resp.Code)

	location, err := url.Parse(resp.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/callback", location.Path)

	query := location.Query()
	for _, key := range []string{
		"accessToken", "refreshToken", "email", "firstName", "lastName",
		"requiresProfileCompletion", "missingFields",
	} {
		assert.True(t, query.Has(key), "missing redirect parameter %s", key)
	}
	assert.NotEmpty(t, query.Get("accessToken"))
	assert.NotEmpty(t, query.Get("refreshToken"))
	assert.Equal(t, "dana@example.com", query.Get("email"))
	assert.Equal(t, "Dana", query.Get("firstName"))
	assert.Equal(t, "Reyes", query.Get("lastName"))
	assert.Equal(t, "true", query.Get("requiresProfileCompletion"))
	assert.Equal(t, "dateOfBirth,gender,location", query.Get("missingFields"))
}

func TestGoogleCallbackNameParametersPresentWhenEmpty(t *testing.T) {
	app := newAuthTestApp(t)
	app.auth.fetchProfile = stubProfile(service.OAuthProfile{Email: "bare@example.com"})

	resp := app.googleCallback(t, "state-2", "state-2", "auth-code")
	require.Equal(t, http.StatusTemporaryRedirect, resp.Code)

	location, err := url.Parse(resp.Header().Get("Location"))
	require.NoError(t, err)
	query := location.Query()

	// Keys stay in the redirect even when the profile has no names.
	assert.True(t, query.Has("firstName"))
	assert.True(t, query.Has("lastName"))
	assert.Empty(t, query.Get("firstName"))
	assert.Empty(t, query.Get("lastName"))
}

func TestGoogleCallbackCompleteProfileSkipsCompletion(t *testing.T) {
	app := newAuthTestApp(t)

	dob := time.Date(1998, 6, 1, 0, 0, 0, 0, time.UTC)
	gender, location := "male", "Lisbon"
	firstName, lastName := "Eli", "Mora"
	user := models.User{
		Email:             "eli@example.com",
		FirstName:         &firstName,
		LastName:          &lastName,
		DateOfBirth:       &dob,
		Gender:            &gender,
		Location:          &location,
		IsEmailVerified:   true,
		IsActive:          true,
		IsProfileComplete: true,
	}
	require.NoError(t, app.db.Create(&user).Error)

	app.auth.fetchProfile = stubProfile(service.OAuthProfile{
		Email:     "eli@example.com",
		FirstName: "Eli",
		LastName:  "Mora",
	})

	resp := app.googleCallback(t, "state-3", "state-3", "auth-code")
	require.Equal(t, http.StatusTemporaryRedirect, resp.Code)

	redirect, err := url.Parse(resp.Header().Get("Location"))
	require.NoError(t, err)
	query := redirect.Query()
	assert.Equal(t, "false", query.Get("requiresProfileCompletion"))
	assert.Empty(t, query.Get("missingFields"))
}

func TestGoogleCallbackRejectsStateMismatch(t *testing.T) {
	app := newAuthTestApp(t)
	app.auth.fetchProfile = stubProfile(service.OAuthProfile{Email: "dana@example.com"})

	// Query state differs from the cookie.
	resp := app.googleCallback(t, "state-a", "state-b", "auth-code")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// No state cookie at all.
	resp = app.googleCallback(t, "state-a", "", "auth-code")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGoogleCallbackRequiresCode(t *testing.T) {
	app := newAuthTestApp(t)

	resp := app.googleCallback(t, "state-c", "state-c", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
