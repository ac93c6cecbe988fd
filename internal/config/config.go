package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port               string
	DBConn             string
	LogLevel           string
	JWTSecret          string
	RatesURL           string
	SMTPHost           string
	SMTPPort           string
	SMTPUsername       string
	SMTPPassword       string
	SenderEmail        string
	AssessmentSchedule string
	ReminderWindowDays int
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DBConn:             getEnv("DB_CONN", "host=localhost port=5432 user=compliance password=compliance dbname=compliance sslmode=disable"),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		RatesURL:           getEnv("RATES_URL", "https://rates.centralbank.example/daily.xml"),
		SMTPHost:           getEnv("SMTP_HOST", "localhost"),
		SMTPPort:           getEnv("SMTP_PORT", "1025"),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SenderEmail:        getEnv("SENDER_EMAIL", "alerts@compliance.local"),
		AssessmentSchedule: getEnv("ASSESSMENT_SCHEDULE", "0 2 * * *"),
		ReminderWindowDays: 30,
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
