package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv             string
	Addr               string
	DbDsn              string
	JwtSecret          string
	JwtAccessMinutes   int
	JwtRefreshHours    int
	OtpMinutes         int
	OtpSendPerMinute   int
	SmtpHost           string
	SmtpPort           int
	SmtpUser           string
	SmtpPass           string
	SmtpFrom           string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendURL        string
	RecommenderURL     string
	AllowedOriginsRaw  string
	LogLevel           string
	LogFormat          string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:             getEnv("APP_ENV", "local"),
		Addr:               getEnv("APP_ADDR", ":3000"),
		DbDsn:              os.Getenv("DB_DSN"),
		JwtSecret:          os.Getenv("JWT_SECRET"),
		JwtAccessMinutes:   getEnvInt("JWT_ACCESS_MINUTES", 15),
		JwtRefreshHours:    getEnvInt("JWT_REFRESH_HOURS", 3),
		OtpMinutes:         getEnvInt("OTP_MINUTES", 10),
		OtpSendPerMinute:   getEnvInt("OTP_SEND_PER_MINUTE", 3),
		SmtpHost:           os.Getenv("SMTP_HOST"),
		SmtpPort:           getEnvInt("SMTP_PORT", 587),
		SmtpUser:           os.Getenv("SMTP_USER"),
		SmtpPass:           os.Getenv("SMTP_PASS"),
		SmtpFrom:           os.Getenv("SMTP_FROM"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:8080"),
		RecommenderURL:     getEnv("RECOMMENDER_URL", "http://localhost:8000/recommend"),
		AllowedOriginsRaw:  getEnv("ALLOWED_ORIGINS", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	missing := []string{}
	if cfg.DbDsn == "" {
		missing = append(missing, "DB_DSN")
	}
	if cfg.JwtSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}

	return cfg, nil
}

// ValidateMail checks the SMTP block. Only commands that send email call
// this; the importer runs without mail credentials.
func (c Config) ValidateMail() error {
	missing := []string{}
	if c.SmtpHost == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if c.SmtpUser == "" {
		missing = append(missing, "SMTP_USER")
	}
	if c.SmtpPass == "" {
		missing = append(missing, "SMTP_PASS")
	}
	if c.SmtpFrom == "" {
		missing = append(missing, "SMTP_FROM")
	}

	if len(missing) > 0 {
		return errors.New("missing env: " + strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
