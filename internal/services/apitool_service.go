package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	api_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"

	"github.com/google/uuid"
)

var (
	ErrToolNotFound   = errors.New("api tool not found")
	ErrToolValidation = errors.New("api tool validation failed")
)

// APIToolService manages external API tool references. References are
// surfaced to the model through the system prompt; no calls are made here.
type APIToolService struct {
	store store.Store
}

// NewAPIToolService creates a new APIToolService.
func NewAPIToolService(s store.Store) *APIToolService {
	return &APIToolService{store: s}
}

func mapToolToResponse(t *api_models.APITool) api_models.APIToolResponse {
	return api_models.APIToolResponse{
		ID:        t.ID,
		Name:      t.Name,
		URL:       t.URL,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// CreateTool validates and registers an API tool reference.
func (s *APIToolService) CreateTool(ctx context.Context, req api_models.CreateAPIToolRequest) (*api_models.APIToolResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrToolValidation)
	}
	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: url must be a valid http(s) URL", ErrToolValidation)
	}

	params := store.CreateAPIToolParams{
		ID:       uuid.New(),
		Name:     req.Name,
		URL:      req.URL,
		IsActive: req.IsActive,
	}

	t, err := s.store.CreateAPITool(ctx, params)
	if err != nil {
		log.Printf("ERROR [APIToolService] CreateTool: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to save api tool: %w", err)
	}

	resp := mapToolToResponse(t)
	return &resp, nil
}

// ListTools lists all registered API tool references.
func (s *APIToolService) ListTools(ctx context.Context) ([]api_models.APIToolResponse, error) {
	tools, err := s.store.ListAPITools(ctx)
	if err != nil {
		log.Printf("ERROR [APIToolService] ListTools: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to list api tools: %w", err)
	}

	resp := make([]api_models.APIToolResponse, len(tools))
	for i := range tools {
		resp[i] = mapToolToResponse(&tools[i])
	}
	return resp, nil
}

// DeleteTool removes an API tool reference.
func (s *APIToolService) DeleteTool(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeleteAPITool(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrToolNotFound
		}
		log.Printf("ERROR [APIToolService] DeleteTool: Store call failed for ID %s: %v", id, err)
		return fmt.Errorf("failed to delete api tool: %w", err)
	}
	return nil
}
