package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// --- Auth DTOs ---

// LoginRequest defines the expected body for the admin login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse defines the admin user information returned by the API.
// Avoid returning sensitive info like HashedPassword.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// AuthResponse defines the response body for successful authentication.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// ErrorResponse defines the standard structure for API errors.
// Success is always false; Details carries optional provider context.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Success bool   `json:"success"`
}

// --- Proxy DTOs ---

// ChatRequest defines the body for POST /api/chat.
// APIKey is caller-supplied and never stored by the handler.
type ChatRequest struct {
	Messages     []Message `json:"messages"`
	SystemPrompt string    `json:"systemPrompt,omitempty"`
	Model        string    `json:"model,omitempty"`
	Temperature  *float64  `json:"temperature,omitempty"`
	APIKey       string    `json:"apiKey"`
	UserContext  string    `json:"userContext,omitempty"`
	Language     string    `json:"language,omitempty"`
}

// Usage reports provider token accounting for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse defines the success envelope for POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
	Usage    Usage  `json:"usage"`
	Success  bool   `json:"success"`
}

// SpeechRequest defines the body for POST /api/speech.
// The response body is binary audio/mpeg, not JSON.
type SpeechRequest struct {
	Text     string `json:"text"`
	Voice    string `json:"voice,omitempty"`
	APIKey   string `json:"apiKey"`
	Language string `json:"language,omitempty"`
}

// TranscribeResponse defines the success envelope for POST /api/transcribe.
type TranscribeResponse struct {
	Transcript string `json:"transcript"`
	Language   string `json:"language"`
	Success    bool   `json:"success"`
}

// --- Agent Config DTOs ---

// UpdateAgentConfigRequest defines the payload for updating the agent
// persona. Only fields present in the request will be updated. APIKey, when
// provided, replaces the stored provider key (encrypted at rest).
type UpdateAgentConfigRequest struct {
	Name            *string          `json:"name"`
	Mission         *string          `json:"mission"`
	Personality     *string          `json:"personality"`
	APIKey          *string          `json:"api_key"`
	Model           *string          `json:"model"`
	Temperature     *float64         `json:"temperature"`
	Voice           *string          `json:"voice"`
	AvatarURL       *string          `json:"avatar_url"`
	AvatarTransform *json.RawMessage `json:"avatar_transform"`
}

// AgentConfigResponse defines the agent persona returned to the dashboard.
// The provider key is never returned; APIKeySet indicates presence.
type AgentConfigResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Mission         string          `json:"mission"`
	Personality     string          `json:"personality"`
	APIKeySet       bool            `json:"api_key_set"`
	Model           string          `json:"model"`
	Temperature     float64         `json:"temperature"`
	Voice           string          `json:"voice"`
	AvatarURL       string          `json:"avatar_url"`
	AvatarTransform json.RawMessage `json:"avatar_transform,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// --- Brand Config DTOs ---

// UpdateBrandConfigRequest defines the payload for updating branding.
type UpdateBrandConfigRequest struct {
	LogoURL      *string `json:"logo_url"`
	LogoSmallURL *string `json:"logo_small_url"`
	HelpText     *string `json:"help_text"`
	InfoTitle    *string `json:"info_title"`
	InfoContent  *string `json:"info_content"`
	InfoMediaURL *string `json:"info_media_url"`
}

// BrandConfigResponse defines the branding returned to the dashboard.
type BrandConfigResponse struct {
	ID           uuid.UUID `json:"id"`
	LogoURL      string    `json:"logo_url"`
	LogoSmallURL string    `json:"logo_small_url"`
	HelpText     string    `json:"help_text"`
	InfoTitle    string    `json:"info_title"`
	InfoContent  string    `json:"info_content"`
	InfoMediaURL string    `json:"info_media_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicConfigResponse is the unauthenticated subset of configuration the
// widget needs to boot. It never contains the provider key.
type PublicConfigResponse struct {
	AgentName       string              `json:"agent_name"`
	Voice           string              `json:"voice"`
	AvatarURL       string              `json:"avatar_url"`
	AvatarTransform json.RawMessage     `json:"avatar_transform,omitempty"`
	Brand           BrandConfigResponse `json:"brand"`
}

// --- Advisor DTOs ---

// CreateAdvisorRequest defines the body for creating an advisor.
type CreateAdvisorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	Position  string `json:"position,omitempty"`
}

// UpdateAdvisorRequest defines the payload for partial advisor updates.
type UpdateAdvisorRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	PhotoURL  *string `json:"photo_url"`
	Position  *string `json:"position"`
}

// AdvisorResponse defines the advisor representation in API responses.
type AdvisorResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Position  string    `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Knowledge Base DTOs ---

// CreateKnowledgeItemRequest defines the body for creating a knowledge item.
type CreateKnowledgeItemRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	FileType string `json:"file_type,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
}

// KnowledgeItemResponse defines the data returned for a knowledge item.
type KnowledgeItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FileType  string    `json:"file_type,omitempty"`
	FileURL   string    `json:"file_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ImportNotionRequest defines the body for importing a Notion page into the
// knowledge base. The integration secret is used for this request only.
type ImportNotionRequest struct {
	PageID            string `json:"page_id"`
	IntegrationSecret string `json:"integration_secret"`
	Title             string `json:"title,omitempty"` // Defaults to the page title
}

// --- RSS Feed / API Tool / Pronunciation DTOs ---

// CreateRSSFeedRequest defines the body for creating an RSS feed entry.
type CreateRSSFeedRequest struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	IsActive bool   `json:"is_active"`
}

// RSSFeedResponse defines the data returned for an RSS feed entry.
type RSSFeedResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAPIToolRequest defines the body for creating an API tool entry.
type CreateAPIToolRequest struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	IsActive bool   `json:"is_active"`
}

// APIToolResponse defines the data returned for an API tool entry.
type APIToolResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePronunciationRequest defines the body for creating a pronunciation.
type CreatePronunciationRequest struct {
	Word          string `json:"word"`
	Pronunciation string `json:"pronunciation"`
}

// PronunciationResponse defines the data returned for a pronunciation.
type PronunciationResponse struct {
	ID            uuid.UUID `json:"id"`
	Word          string    `json:"word"`
	Pronunciation string    `json:"pronunciation"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// --- Escalation DTOs ---

// EscalationRequest defines the body for POST /api/escalations.
type EscalationRequest struct {
	AdvisorID   uuid.UUID `json:"advisor_id"`
	UserName    string    `json:"user_name,omitempty"`
	UserEmail   string    `json:"user_email,omitempty"`
	UserContext string    `json:"user_context,omitempty"`
	Language    string    `json:"language,omitempty"`
}

// EscalationResponse defines the result of an escalation attempt. The call
// UI on the front-end is a simulation; CallWindowSeconds tells it how long
// to display progress before auto-closing.
type EscalationResponse struct {
	Success           bool   `json:"success"`
	EmailSent         bool   `json:"email_sent"`
	AdvisorName       string `json:"advisor_name"`
	CallWindowSeconds int    `json:"call_window_seconds"`
}

// --- Conversation analytics DTOs ---

// LogConversationRequest defines the body for POST /api/conversations.
type LogConversationRequest struct {
	Messages    []Message `json:"messages"`
	Language    string    `json:"language,omitempty"`
	UserContext string    `json:"user_context,omitempty"`
}

// ConversationResponse defines a persisted transcript in list responses.
type ConversationResponse struct {
	ID          uuid.UUID `json:"id"`
	Messages    []Message `json:"messages"`
	Language    string    `json:"language,omitempty"`
	UserContext string    `json:"user_context,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Upload DTOs ---

// UploadResponse defines the result of a file upload to the uploads bucket.
type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
}
