package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/utils"
)

func TestIssuePersistsOnePair(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "pw123456")

	access, refresh, err := env.tokens.Issue(user.ID, user.Email)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	var pair models.TokenPair
	require.NoError(t, env.db.Where("user_id = ?", user.ID).First(&pair).Error)
	assert.Equal(t, access, pair.Token)
	assert.Equal(t, refresh, pair.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(3*time.Hour), pair.ExpiresAt, time.Minute)

	claims, err := utils.ParseToken(access, "test-secret")
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, user.Email, claims.Email)
}

func TestIssueTwiceWithinSameSecond(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "pw123456")

	// Back-to-back logins share the same iat second; the jti keeps the
	// signed tokens distinct so both pair rows insert cleanly.
	_, firstRefresh, err := env.tokens.Issue(user.ID, user.Email)
	require.NoError(t, err)
	_, secondRefresh, err := env.tokens.Issue(user.ID, user.Email)
	require.NoError(t, err)

	assert.NotEqual(t, firstRefresh, secondRefresh)
	assert.EqualValues(t, 2, env.tokenPairCount(t, user.ID))
}

func TestRefreshUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.tokens.Refresh("does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRefreshExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "pw123456")

	_, refresh, err := env.tokens.Issue(user.ID, user.Email)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.TokenPair{}).
		Where("refresh_token = ?", refresh).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, _, err = env.tokens.Refresh(refresh)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRefreshRotatesInPlace(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "pw123456")

	_, oldRefresh, err := env.tokens.Issue(user.ID, user.Email)
	require.NoError(t, err)

	newAccess, newRefresh, err := env.tokens.Refresh(oldRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, oldRefresh, newRefresh)

	// Same row advanced, not a second one appended.
	assert.EqualValues(t, 1, env.tokenPairCount(t, user.ID))

	var pair models.TokenPair
	require.NoError(t, env.db.Where("user_id = ?", user.ID).First(&pair).Error)
	assert.Equal(t, newAccess, pair.Token)
	assert.Equal(t, newRefresh, pair.RefreshToken)

	// The old refresh token stops being accepted.
	_, _, err = env.tokens.Refresh(oldRefresh)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = env.tokens.Refresh(newRefresh)
	assert.NoError(t, err)
}

func TestRevokeBlacklistsAndDropsPair(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "pw123456")

	access, _, err := env.tokens.Issue(user.ID, user.Email)
	require.NoError(t, err)

	require.NoError(t, env.tokens.Revoke(access))

	revoked, err := env.tokens.IsRevoked(access)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Zero(t, env.tokenPairCount(t, user.ID))
}

func TestRevokeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "pw123456")

	access, _, err := env.tokens.Issue(user.ID, user.Email)
	require.NoError(t, err)

	require.NoError(t, env.tokens.Revoke(access))
	require.NoError(t, env.tokens.Revoke(access))

	var entries int64
	require.NoError(t, env.db.Model(&models.RevokedToken{}).Where("token = ?", access).Count(&entries).Error)
	assert.EqualValues(t, 1, entries)
}
