package store

import (
	"context"
	"encoding/json"
	"errors"

	db_models "virtualagent-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// UpdateAgentConfigParams contains parameters for updating the agent persona.
// Pointer fields allow partial updates; EncryptedAPIKey replaces the stored
// provider key when non-nil.
type UpdateAgentConfigParams struct {
	ID              uuid.UUID
	Name            *string
	Mission         *string
	Personality     *string
	EncryptedAPIKey []byte
	Model           *string
	Temperature     *float64
	Voice           *string
	AvatarURL       *string
	AvatarTransform json.RawMessage
}

// UpdateBrandConfigParams contains parameters for updating branding.
type UpdateBrandConfigParams struct {
	ID           uuid.UUID
	LogoURL      *string
	LogoSmallURL *string
	HelpText     *string
	InfoTitle    *string
	InfoContent  *string
	InfoMediaURL *string
}

// CreateAdvisorParams contains parameters for creating an advisor.
type CreateAdvisorParams struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     string
	PhotoURL  string
	Position  string
}

// UpdateAdvisorParams contains parameters for updating an advisor.
type UpdateAdvisorParams struct {
	ID        uuid.UUID
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	PhotoURL  *string
	Position  *string
}

// CreateKnowledgeItemParams contains parameters for creating a knowledge item.
type CreateKnowledgeItemParams struct {
	ID       uuid.UUID
	Title    string
	Content  string
	FileType string
	FileURL  string
}

// CreateRSSFeedParams contains parameters for creating an RSS feed entry.
type CreateRSSFeedParams struct {
	ID       uuid.UUID
	Name     string
	URL      string
	IsActive bool
}

// CreateAPIToolParams contains parameters for creating an API tool entry.
type CreateAPIToolParams struct {
	ID       uuid.UUID
	Name     string
	URL      string
	IsActive bool
}

// CreatePronunciationParams contains parameters for creating a pronunciation.
type CreatePronunciationParams struct {
	ID            uuid.UUID
	Word          string
	Pronunciation string
}

// CreateConversationParams contains parameters for persisting a transcript.
type CreateConversationParams struct {
	ID          uuid.UUID
	Messages    []byte // JSON marshaled []models.Message
	Language    string
	UserContext string
}

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// Admin user operations
	GetAdminUserByEmail(ctx context.Context, email string) (*db_models.AdminUser, error)
	CreateAdminUser(ctx context.Context, user *db_models.AdminUser) error

	// Agent config operations (singleton row in ai_config)
	GetAgentConfig(ctx context.Context) (*db_models.AgentConfig, error)
	CreateAgentConfig(ctx context.Context, cfg *db_models.AgentConfig) error
	UpdateAgentConfig(ctx context.Context, arg UpdateAgentConfigParams) (*db_models.AgentConfig, error)

	// Brand config operations (singleton row in brand_config)
	GetBrandConfig(ctx context.Context) (*db_models.BrandConfig, error)
	CreateBrandConfig(ctx context.Context, cfg *db_models.BrandConfig) error
	UpdateBrandConfig(ctx context.Context, arg UpdateBrandConfigParams) (*db_models.BrandConfig, error)

	// Advisor operations
	CreateAdvisor(ctx context.Context, arg CreateAdvisorParams) (*db_models.Advisor, error)
	GetAdvisorByID(ctx context.Context, id uuid.UUID) (*db_models.Advisor, error)
	ListAdvisors(ctx context.Context) ([]db_models.Advisor, error)
	UpdateAdvisor(ctx context.Context, arg UpdateAdvisorParams) (*db_models.Advisor, error)
	DeleteAdvisor(ctx context.Context, id uuid.UUID) error

	// Knowledge base operations
	CreateKnowledgeItem(ctx context.Context, arg CreateKnowledgeItemParams) (*db_models.KnowledgeItem, error)
	GetKnowledgeItemByID(ctx context.Context, id uuid.UUID) (*db_models.KnowledgeItem, error)
	ListKnowledgeItems(ctx context.Context) ([]db_models.KnowledgeItem, error)
	DeleteKnowledgeItem(ctx context.Context, id uuid.UUID) error

	// RSS feed operations
	CreateRSSFeed(ctx context.Context, arg CreateRSSFeedParams) (*db_models.RSSFeed, error)
	ListRSSFeeds(ctx context.Context) ([]db_models.RSSFeed, error)
	DeleteRSSFeed(ctx context.Context, id uuid.UUID) error

	// API tool operations
	CreateAPITool(ctx context.Context, arg CreateAPIToolParams) (*db_models.APITool, error)
	ListAPITools(ctx context.Context) ([]db_models.APITool, error)
	DeleteAPITool(ctx context.Context, id uuid.UUID) error

	// Pronunciation operations
	CreatePronunciation(ctx context.Context, arg CreatePronunciationParams) (*db_models.Pronunciation, error)
	ListPronunciations(ctx context.Context) ([]db_models.Pronunciation, error)
	DeletePronunciation(ctx context.Context, id uuid.UUID) error

	// Conversation analytics operations
	CreateConversation(ctx context.Context, arg CreateConversationParams) (*db_models.Conversation, error)
	ListConversations(ctx context.Context, limit, offset int) ([]db_models.Conversation, error)
}
