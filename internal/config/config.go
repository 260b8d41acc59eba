package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port           string
	Environment    string
	CORSOrigins    []string
	RequestTimeout time.Duration
	LoginRateLimit int // requests per minute per client IP

	// Auth
	JWTSecret     string
	JWTExpiration time.Duration

	// Storage
	StorageBackend string // dynamodb or memory

	// AWS
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	S3Endpoint         string
	PhotosBucket       string

	// Tables
	Tables Tables

	// Messaging
	SMTPHost          string
	SMTPPort          string
	SMTPUsername      string
	SMTPPassword      string
	SenderEmail       string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioWhatsAppNum string

	// Domain policy
	RequireDamageNotes bool
}

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

type Tables struct {
	Users         string
	Vehicles      string
	Appointments  string
	Inspections   string
	Quotes        string
	ServiceOrders string
	Notifications string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "*")),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		LoginRateLimit: getEnvInt("LOGIN_RATE_LIMIT", 20),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiration: time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageDynamoDB)),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoDBEndpoint:   getEnv("DYNAMODB_ENDPOINT", ""),
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		PhotosBucket:       getEnv("PHOTOS_BUCKET", "inspection-photos"),

		Tables: Tables{
			Users:         getEnv("USERS_TABLE", "users"),
			Vehicles:      getEnv("VEHICLES_TABLE", "vehicles"),
			Appointments:  getEnv("APPOINTMENTS_TABLE", "appointments"),
			Inspections:   getEnv("INSPECTIONS_TABLE", "inspections"),
			Quotes:        getEnv("QUOTES_TABLE", "quotes"),
			ServiceOrders: getEnv("SERVICE_ORDERS_TABLE", "service_orders"),
			Notifications: getEnv("NOTIFICATIONS_TABLE", "notifications"),
		},

		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnv("SMTP_PORT", "587"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SenderEmail:       getEnv("SENDER_EMAIL", "noreply@polarizadosya.com"),
		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioWhatsAppNum: getEnv("TWILIO_WHATSAPP_FROM", ""),

		RequireDamageNotes: getEnvBool("INSPECTION_REQUIRE_DAMAGE_NOTES", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.LoginRateLimit <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be positive")
	}
	if c.StorageBackend != StorageDynamoDB && c.StorageBackend != StorageMemory {
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q", StorageDynamoDB, StorageMemory)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// EmailEnabled reports whether SMTP delivery is configured.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

// WhatsAppEnabled reports whether Twilio delivery is configured.
func (c *Config) WhatsAppEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppNum != ""
}

// ConsoleConfig configures the staff console client.
type ConsoleConfig struct {
	APIBaseURL   string
	APITimeout   time.Duration
	PollInterval time.Duration
	MaxPhotos    int
	CameraDir    string
	Environment  string
}

func LoadConsole() (*ConsoleConfig, error) {
	cfg := &ConsoleConfig{
		APIBaseURL:   strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080/api"), "/"),
		APITimeout:   time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 10)) * time.Second,
		PollInterval: time.Duration(getEnvInt("NOTIFICATION_POLL_SECONDS", 30)) * time.Second,
		MaxPhotos:    getEnvInt("MAX_PHOTOS", 10),
		CameraDir:    getEnv("CAMERA_FRAMES_DIR", "frames"),
		Environment:  getEnv("ENVIRONMENT", "development"),
	}
	if cfg.APITimeout <= 0 || cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("invalid configuration: timeouts must be positive")
	}
	if cfg.MaxPhotos <= 0 {
		return nil, fmt.Errorf("invalid configuration: MAX_PHOTOS must be positive")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}

func splitCSV(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
