package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Email delivery
	EmailProvider        string
	SendGridAPIKey       string
	PostmarkServerToken  string
	PostmarkAccountToken string
	MailTo               string
	FromEmail            string
	FromName             string
	SendTimeout          time.Duration

	// AWS (SES provider)
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimitPerSec    float64
	RateLimitBurst     int
	SiteURL            string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		EmailProvider:        strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "sendgrid"))),
		SendGridAPIKey:       getEnv("SENDGRID_API_KEY", ""),
		PostmarkServerToken:  getEnv("POSTMARK_SERVER_TOKEN", ""),
		PostmarkAccountToken: getEnv("POSTMARK_ACCOUNT_TOKEN", ""),
		MailTo:               getEnv("MAIL_TO", ""),
		FromEmail:            getEnv("FROM_EMAIL", ""),
		FromName:             getEnv("FROM_NAME", "Together Finance"),
		SendTimeout:          getEnvAsDuration("SEND_TIMEOUT", 10*time.Second),

		AWSRegion:          getEnv("AWS_REGION", "ap-southeast-2"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
		RateLimitPerSec:    getEnvAsFloat("RATE_LIMIT_PER_SEC", 2),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 5),
		SiteURL:            getEnv("SITE_URL", "togetherfinance.com.au"),
	}
}

// ProviderAPIKey returns the credential for the configured email provider.
func (c *Config) ProviderAPIKey() string {
	switch c.EmailProvider {
	case "postmark":
		return c.PostmarkServerToken
	case "ses":
		// SES authenticates through the AWS credential chain; region is the
		// only hard requirement on our side.
		return c.AWSRegion
	default:
		return c.SendGridAPIKey
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, dropping empty
// entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
