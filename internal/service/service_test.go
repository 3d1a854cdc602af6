package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/db"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/utils"
)

// fakeMailer captures outgoing codes instead of talking to SMTP.
type fakeMailer struct {
	lastTo      string
	lastCode    string
	lastPurpose string
	failNext    bool
	sent        int
}

func (m *fakeMailer) SendVerificationCode(to, code string) error {
	return m.record(to, code, models.OTPPurposeRegistration)
}

func (m *fakeMailer) SendLoginCode(to, code string) error {
	return m.record(to, code, models.OTPPurposeLogin)
}

func (m *fakeMailer) record(to, code, purpose string) error {
	if m.failNext {
		m.failNext = false
		return errSMTPDown
	}
	m.lastTo = to
	m.lastCode = code
	m.lastPurpose = purpose
	m.sent++
	return nil
}

var errSMTPDown = &Error{Kind: ErrValidation, Message: "smtp down"}

type testEnv struct {
	db       *gorm.DB
	mailer   *fakeMailer
	tokens   *TokenService
	otp      *OTPService
	accounts *AccountService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	mailer := &fakeMailer{}
	tokens := NewTokenService(database, "test-secret", 15*time.Minute, 3*time.Hour)
	otp := NewOTPService(database, mailer, tokens, 10*time.Minute)
	accounts := NewAccountService(database, tokens, otp)

	return &testEnv{db: database, mailer: mailer, tokens: tokens, otp: otp, accounts: accounts}
}

func (e *testEnv) createUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{Email: email, PasswordHash: &hash, IsActive: true}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) tokenPairCount(t *testing.T, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&models.TokenPair{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
