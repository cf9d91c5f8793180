package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	api_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"

	"github.com/google/uuid"
)

var ErrConversationValidation = errors.New("conversation validation failed")

const maxConversationMessages = 500

// ConversationService persists finished conversation transcripts for review.
// Logging is opt-in from the client side; the service never records anything
// on its own.
type ConversationService struct {
	store store.Store
}

// NewConversationService creates a new ConversationService.
func NewConversationService(s store.Store) *ConversationService {
	return &ConversationService{store: s}
}

// LogConversation stores a full transcript.
func (s *ConversationService) LogConversation(ctx context.Context, req api_models.LogConversationRequest) (*api_models.ConversationResponse, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: messages cannot be empty", ErrConversationValidation)
	}
	if len(req.Messages) > maxConversationMessages {
		return nil, fmt.Errorf("%w: too many messages (max %d)", ErrConversationValidation, maxConversationMessages)
	}

	raw, err := json.Marshal(req.Messages)
	if err != nil {
		return nil, fmt.Errorf("%w: messages are not serializable", ErrConversationValidation)
	}

	params := store.CreateConversationParams{
		ID:          uuid.New(),
		Messages:    raw,
		Language:    req.Language,
		UserContext: req.UserContext,
	}

	c, err := s.store.CreateConversation(ctx, params)
	if err != nil {
		log.Printf("ERROR [ConversationService] LogConversation: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to save conversation: %w", err)
	}

	return mapConversationToResponse(c)
}

// ListConversations pages through stored transcripts, newest first.
func (s *ConversationService) ListConversations(ctx context.Context, limit, offset int) ([]api_models.ConversationResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	conversations, err := s.store.ListConversations(ctx, limit, offset)
	if err != nil {
		log.Printf("ERROR [ConversationService] ListConversations: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	resp := make([]api_models.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		c, err := mapConversationToResponse(&conversations[i])
		if err != nil {
			log.Printf("ERROR [ConversationService] ListConversations: Skipping malformed row %s: %v", conversations[i].ID, err)
			continue
		}
		resp = append(resp, *c)
	}
	return resp, nil
}

func mapConversationToResponse(c *api_models.Conversation) (*api_models.ConversationResponse, error) {
	var messages []api_models.Message
	if len(c.Messages) > 0 {
		if err := json.Unmarshal(c.Messages, &messages); err != nil {
			return nil, fmt.Errorf("failed to decode stored messages: %w", err)
		}
	}
	return &api_models.ConversationResponse{
		ID:          c.ID,
		Messages:    messages,
		Language:    c.Language,
		UserContext: c.UserContext,
		CreatedAt:   c.CreatedAt,
	}, nil
}
