package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	SpreadsheetID string
	GeminiAPIKey  string
	GeminiModel   string

	// Google Sheets auth (optional; falls back to application default credentials)
	GoogleCredentialsFile string

	// Batching & rate limiting
	BatchSize     int
	RequestDelay  time.Duration
	MaxRetries    int
	RetryDelay    time.Duration
	RateLimitWait time.Duration

	// HTTP
	HTTPPort     int
	SheetTimeout time.Duration

	// Feature switches
	MsgServiceEnabled       bool
	FrontendTemplateColumns bool

	// Dispatch providers
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioSMSFrom      string
	TwilioWhatsAppFrom string
	ResendAPIKey       string
	EmailFrom          string

	// Chat service
	AppsScriptURL string
}

func LoadFromEnv() *Config {
	return &Config{
		SpreadsheetID: os.Getenv("SPREADSHEET_ID"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),

		GoogleCredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),

		BatchSize:     getEnvAsIntOrDefault("BATCH_SIZE", 5),
		RequestDelay:  getEnvAsDurationOrDefault("REQUEST_DELAY", 2*time.Second),
		MaxRetries:    getEnvAsIntOrDefault("MAX_RETRIES", 3),
		RetryDelay:    getEnvAsDurationOrDefault("RETRY_DELAY", 5*time.Second),
		RateLimitWait: getEnvAsDurationOrDefault("RATE_LIMIT_WAIT", 60*time.Second),

		HTTPPort:     getEnvAsIntOrDefault("HTTP_PORT", 8080),
		SheetTimeout: getEnvAsDurationOrDefault("SHEET_TIMEOUT", 30*time.Second),

		MsgServiceEnabled:       getEnvAsBoolOrDefault("MSG_SERVICE_ENABLED", false),
		FrontendTemplateColumns: getEnvAsBoolOrDefault("FRONTEND_TEMPLATE_COLUMNS", true),

		TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioSMSFrom:      os.Getenv("TWILIO_SMS_FROM"),
		TwilioWhatsAppFrom: getEnvOrDefault("TWILIO_WHATSAPP_FROM", "whatsapp:+14155238886"),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		EmailFrom:          os.Getenv("EMAIL_FROM"),

		AppsScriptURL: os.Getenv("APPS_SCRIPT_URL"),
	}
}

// Validate checks the settings no reconciliation run can proceed without.
// Dispatch credentials are checked by the senders that need them.
func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("SPREADSHEET_ID missing")
	}
	return c.ValidateChat()
}

// ValidateChat checks the settings the chat service needs. It never touches
// the spreadsheet, so SPREADSHEET_ID is not required.
func (c *Config) ValidateChat() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY missing")
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("GEMINI_MODEL missing")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Bare numbers are treated as seconds.
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
