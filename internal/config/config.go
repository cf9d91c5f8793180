package config

import (
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	HTTPPort        string
	DatabaseURL     string
	JWTSecret       string
	TokenExpiration time.Duration
	EncryptionKey   []byte // Raw key bytes (32 for AES-256)

	// LLM/speech provider. OpenAIAPIKey is an optional server-side fallback;
	// the proxy endpoints normally receive the key from the caller.
	OpenAIBaseURL string
	OpenAIAPIKey  string

	// Advisor escalation.
	ResendAPIKey    string
	EscalationFrom  string
	SlackBotToken   string // Optional secondary notification channel
	SlackChannelID  string
	CallWindowSecs  int

	// Blob storage for dashboard uploads.
	UploadsBucket    string
	UploadsRegion    string
	UploadsPublicURL string

	// Seed admin account, created on first boot if missing.
	AdminEmail    string
	AdminPassword string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
		// Don't fail if .env is not present, might be in production
	}

	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set.")
	}

	tokenExpStr := getEnv("JWT_EXPIRATION_HOURS", "24")
	tokenExpHours, err := strconv.Atoi(tokenExpStr)
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRATION_HOURS '%s', using default 24h. Error: %v", tokenExpStr, err)
		tokenExpHours = 24
	}

	// Load and decode the Encryption Key (MUST be 64 hex characters for 32 bytes)
	encryptionKeyHex := getEnv("ENCRYPTION_KEY", "")
	if encryptionKeyHex == "" {
		log.Fatal("FATAL: ENCRYPTION_KEY environment variable is not set.")
	}
	encryptionKeyBytes, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		log.Fatalf("FATAL: Failed to decode ENCRYPTION_KEY from hex: %v", err)
	}
	if len(encryptionKeyBytes) != 32 {
		log.Fatalf("FATAL: ENCRYPTION_KEY must be 32 bytes (64 hex characters) long, got %d bytes", len(encryptionKeyBytes))
	}

	callWindowStr := getEnv("ESCALATION_CALL_WINDOW_SECONDS", "20")
	callWindowSecs, err := strconv.Atoi(callWindowStr)
	if err != nil || callWindowSecs <= 0 {
		log.Printf("Warning: Invalid ESCALATION_CALL_WINDOW_SECONDS '%s', using default 20s.", callWindowStr)
		callWindowSecs = 20
	}

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabaseURL:     dbURL,
		JWTSecret:       getEnv("JWT_SECRET", "default-super-secret-key"), // CHANGE THIS IN PRODUCTION!
		TokenExpiration: time.Hour * time.Duration(tokenExpHours),
		EncryptionKey:   encryptionKeyBytes,

		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),

		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		EscalationFrom: getEnv("ESCALATION_FROM_EMAIL", "virtual-agent@notifications.local"),
		SlackBotToken:  getEnv("SLACK_BOT_TOKEN", ""),
		SlackChannelID: getEnv("SLACK_CHANNEL_ID", ""),
		CallWindowSecs: callWindowSecs,

		UploadsBucket:    getEnv("UPLOADS_BUCKET", "uploads"),
		UploadsRegion:    getEnv("UPLOADS_REGION", "us-east-1"),
		UploadsPublicURL: getEnv("UPLOADS_PUBLIC_URL", ""),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, TokenExp=%s, EncryptionKey=***, Provider=%s",
		cfg.HTTPPort, cfg.TokenExpiration, cfg.OpenAIBaseURL)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Env variable %s not set, using default: %s", key, fallback)
	return fallback
}
