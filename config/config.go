package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	AppBaseURL  string

	// Rate limiting
	RateLimitPerMinute int
	RateLimitBurst     int

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

func Load() *Config {
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))
	ratePerMinute, _ := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "120"))
	rateBurst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "30"))

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/mixtrip?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),
		AppBaseURL:  getEnv("APP_BASE_URL", "http://localhost:8080"),

		RateLimitPerMinute: ratePerMinute,
		RateLimitBurst:     rateBurst,

		// Email settings
		SMTPHost:     getEnv("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@mixtrip.app"),
		FromName:     getEnv("FROM_NAME", "MixTrip"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
