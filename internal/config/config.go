package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	PublicBaseURL      string
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	// Chat completion providers
	OpenAIAPIKey      string
	OpenAIModel       string
	GeminiAPIKey      string
	GeminiModel       string
	ChatMaxTokens     int
	ChatTemperature   float64
	AdCopyTemperature float64

	// Voice agent platform (Vapi)
	VapiAPIKey        string
	VapiBaseURL       string
	VapiPhoneNumberID string
	VapiAssistantID   string

	// Lead notification email
	EmailProvider     string // sendgrid | ses | log
	SendGridAPIKey    string
	EmailFrom         string
	EmailFromName     string
	NotificationEmail string
	AWSRegion         string

	// Demo widget behavior
	ChatGateTurns           int
	ROIHourlyRate           int
	VoiceMaxDurationSeconds int
	WidgetSessionTTL        time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		PublicBaseURL:      getEnv("PUBLIC_BASE_URL", ""),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),

		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		ChatMaxTokens:     getEnvAsInt("CHAT_MAX_TOKENS", 1000),
		ChatTemperature:   getEnvAsFloat("CHAT_TEMPERATURE", 0.7),
		AdCopyTemperature: getEnvAsFloat("ADCOPY_TEMPERATURE", 0.8),

		VapiAPIKey:        getEnv("VAPI_API_KEY", ""),
		VapiBaseURL:       getEnv("VAPI_BASE_URL", ""),
		VapiPhoneNumberID: getEnv("VAPI_PHONE_NUMBER_ID", ""),
		VapiAssistantID:   getEnv("VAPI_ASSISTANT_ID", ""),

		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "log"))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:         getEnv("EMAIL_FROM", "leads@aimissoula.com"),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "AI Missoula Leads"),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", "hello@aimissoula.com"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),

		ChatGateTurns:           getEnvAsInt("CHAT_GATE_TURNS", 3),
		ROIHourlyRate:           getEnvAsInt("ROI_HOURLY_RATE", 28),
		VoiceMaxDurationSeconds: getEnvAsInt("VOICE_MAX_DURATION_SECONDS", 300),
		WidgetSessionTTL:        getEnvAsDuration("WIDGET_SESSION_TTL", 30*time.Minute),
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

// getEnvAsSlice splits a comma-separated environment variable, trimming blanks.
func getEnvAsSlice(key string, defaultValue []string) []string {
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
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
