package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AdminUser represents a dashboard administrator in the database.
type AdminUser struct {
	ID             uuid.UUID `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// AgentConfig represents the agent persona row in the ai_config table.
// A default row is created on first load and edited via the dashboard.
type AgentConfig struct {
	ID              uuid.UUID       `db:"id"`
	Name            string          `db:"name"`
	Mission         string          `db:"mission"`
	Personality     string          `db:"personality"`
	EncryptedAPIKey []byte          `db:"encrypted_api_key"` // AES-GCM sealed provider key, nonce prepended
	Model           string          `db:"model"`
	Temperature     float64         `db:"temperature"`
	Voice           string          `db:"voice"`
	AvatarURL       string          `db:"avatar_url"`
	AvatarTransform json.RawMessage `db:"avatar_transform"` // {"scale":..,"position":[..],"rotation":[..]}
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// BrandConfig represents the singleton branding row in the brand_config table.
type BrandConfig struct {
	ID           uuid.UUID `db:"id"`
	LogoURL      string    `db:"logo_url"`
	LogoSmallURL string    `db:"logo_small_url"`
	HelpText     string    `db:"help_text"`
	InfoTitle    string    `db:"info_title"`
	InfoContent  string    `db:"info_content"`
	InfoMediaURL string    `db:"info_media_url"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Advisor represents a human advisor reachable through escalation.
type Advisor struct {
	ID        uuid.UUID `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	PhotoURL  string    `db:"photo_url"`
	Position  string    `db:"position"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// KnowledgeItem represents one snippet in the knowledge_base table.
type KnowledgeItem struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	FileType  string    `db:"file_type"`
	FileURL   string    `db:"file_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// RSSFeed represents a feed entry. Its name and URL are only ever referenced
// as text in the system prompt; the feed itself is never fetched.
type RSSFeed struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	URL       string    `db:"url"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// APITool represents an external tool reference. Like RSS feeds it is inert:
// described to the model in the prompt, never invoked.
type APITool struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	URL       string    `db:"url"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Pronunciation maps a word to its phonetic spelling for speech synthesis.
type Pronunciation struct {
	ID            uuid.UUID `db:"id"`
	Word          string    `db:"word"`
	Pronunciation string    `db:"pronunciation"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Conversation represents a persisted session transcript in the analytics
// table. Transcripts live in memory on the client; a row only exists here
// when the caller opted in at session end.
type Conversation struct {
	ID          uuid.UUID       `db:"id"`
	Messages    json.RawMessage `db:"messages"` // JSONB array of Message
	Language    string          `db:"language"`
	UserContext string          `db:"user_context"`
	CreatedAt   time.Time       `db:"created_at"`
}
