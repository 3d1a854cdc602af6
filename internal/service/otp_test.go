package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
)

func TestSendCodeUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.otp.SendCode("nobody@example.com", models.OTPPurposeRegistration)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, env.mailer.sent)
}

func TestSendCodeEmailsAndNeverReturnsSecret(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice@example.com", "pw123456")

	message, err := env.otp.SendCode("alice@example.com", models.OTPPurposeLogin)
	require.NoError(t, err)

	require.Len(t, env.mailer.lastCode, 6)
	assert.Equal(t, "alice@example.com", env.mailer.lastTo)
	assert.Equal(t, models.OTPPurposeLogin, env.mailer.lastPurpose)
	assert.NotContains(t, message, env.mailer.lastCode)
}

func TestRegistrationVerifyFlow(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "pw123456")

	_, err := env.otp.SendCode(user.Email, models.OTPPurposeRegistration)
	require.NoError(t, err)
	code := env.mailer.lastCode

	result, err := env.otp.VerifyRegistrationCode(user.Email, code)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.True(t, result.User.IsEmailVerified)

	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	assert.True(t, stored.IsEmailVerified)

	assert.EqualValues(t, 1, env.tokenPairCount(t, user.ID))

	// The code was marked used, so a second verification finds nothing.
	_, err = env.otp.VerifyRegistrationCode(user.Email, code)
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "No verification code found. Please request a new one.")
}

func TestResendInvalidatesPreviousCode(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "pw123456")

	_, err := env.otp.SendCode(user.Email, models.OTPPurposeRegistration)
	require.NoError(t, err)
	oldCode := env.mailer.lastCode

	_, err = env.otp.SendCode(user.Email, models.OTPPurposeRegistration)
	require.NoError(t, err)
	newCode := env.mailer.lastCode

	var unused int64
	require.NoError(t, env.db.Model(&models.OTP{}).
		Where("user_id = ? AND purpose = ? AND is_used = ?", user.ID, models.OTPPurposeRegistration, false).
		Count(&unused).Error)
	assert.EqualValues(t, 1, unused)

	if oldCode != newCode {
		_, err = env.otp.VerifyRegistrationCode(user.Email, oldCode)
		assert.ErrorIs(t, err, ErrValidation)
	}

	_, err = env.otp.VerifyRegistrationCode(user.Email, newCode)
	assert.NoError(t, err)
}

func TestVerifyRegistrationWrongCode(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "pw123456")

	_, err := env.otp.SendCode(user.Email, models.OTPPurposeRegistration)
	require.NoError(t, err)

	wrong := "000000"
	if env.mailer.lastCode == wrong {
		wrong = "000001"
	}
	_, err = env.otp.VerifyRegistrationCode(user.Email, wrong)
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Invalid verification code")
}

func TestVerifyRegistrationExpiredCode(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "pw123456")

	_, err := env.otp.SendCode(user.Email, models.OTPPurposeRegistration)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.OTP{}).
		Where("user_id = ?", user.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = env.otp.VerifyRegistrationCode(user.Email, env.mailer.lastCode)
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Verification code has expired")
}

func TestVerifyLoginCodeDeletesCode(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "pw123456")

	_, err := env.otp.SendCode(user.Email, models.OTPPurposeLogin)
	require.NoError(t, err)

	accessToken, err := env.otp.VerifyLoginCode(user.Email, env.mailer.lastCode)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	// Login-purpose codes are deleted on use; no pair row is created.
	var remaining int64
	require.NoError(t, env.db.Model(&models.OTP{}).Where("user_id = ?", user.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
	assert.Zero(t, env.tokenPairCount(t, user.ID))

	_, err = env.otp.VerifyLoginCode(user.Email, env.mailer.lastCode)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSendCodeMailerFailurePropagates(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice@example.com", "pw123456")

	env.mailer.failNext = true
	_, err := env.otp.SendCode("alice@example.com", models.OTPPurposeRegistration)
	require.Error(t, err)

	// The code row is persisted even though the send failed; a resend
	// replaces it.
	var count int64
	require.NoError(t, env.db.Model(&models.OTP{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
