package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	api_models "virtualagent-backend/internal/models"
	db_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"

	"github.com/google/uuid"
)

var (
	ErrKnowledgeNotFound   = errors.New("knowledge item not found")
	ErrKnowledgeValidation = errors.New("knowledge validation failed")
	ErrImportFailed        = errors.New("notion import failed")
)

// NotionImporter pulls a page and its block content out of a Notion workspace.
type NotionImporter interface {
	ImportPage(ctx context.Context, integrationSecret, pageID string) (title, content string, err error)
}

// KnowledgeService manages the knowledge base entries that feed the system prompt.
type KnowledgeService struct {
	store    store.Store
	importer NotionImporter
}

// NewKnowledgeService creates a new KnowledgeService.
func NewKnowledgeService(s store.Store, importer NotionImporter) *KnowledgeService {
	return &KnowledgeService{store: s, importer: importer}
}

func mapKnowledgeToResponse(k *db_models.KnowledgeItem) *api_models.KnowledgeItemResponse {
	return &api_models.KnowledgeItemResponse{
		ID:        k.ID,
		Title:     k.Title,
		Content:   k.Content,
		FileType:  k.FileType,
		FileURL:   k.FileURL,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}

// CreateItem validates and stores a knowledge base entry.
func (s *KnowledgeService) CreateItem(ctx context.Context, req api_models.CreateKnowledgeItemRequest) (*api_models.KnowledgeItemResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrKnowledgeValidation)
	}
	if strings.TrimSpace(req.Content) == "" && req.FileURL == "" {
		return nil, fmt.Errorf("%w: either content or file_url is required", ErrKnowledgeValidation)
	}

	params := store.CreateKnowledgeItemParams{
		ID:       uuid.New(),
		Title:    req.Title,
		Content:  req.Content,
		FileType: req.FileType,
		FileURL:  req.FileURL,
	}

	k, err := s.store.CreateKnowledgeItem(ctx, params)
	if err != nil {
		log.Printf("ERROR [KnowledgeService] CreateItem: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to save knowledge item: %w", err)
	}

	return mapKnowledgeToResponse(k), nil
}

// GetItem retrieves a single knowledge base entry.
func (s *KnowledgeService) GetItem(ctx context.Context, id uuid.UUID) (*api_models.KnowledgeItemResponse, error) {
	k, err := s.store.GetKnowledgeItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrKnowledgeNotFound
		}
		log.Printf("ERROR [KnowledgeService] GetItem: Store call failed for ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve knowledge item: %w", err)
	}
	return mapKnowledgeToResponse(k), nil
}

// ListItems retrieves all knowledge base entries, newest first.
func (s *KnowledgeService) ListItems(ctx context.Context) ([]api_models.KnowledgeItemResponse, error) {
	items, err := s.store.ListKnowledgeItems(ctx)
	if err != nil {
		log.Printf("ERROR [KnowledgeService] ListItems: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to list knowledge items: %w", err)
	}

	resp := make([]api_models.KnowledgeItemResponse, len(items))
	for i := range items {
		resp[i] = *mapKnowledgeToResponse(&items[i])
	}
	return resp, nil
}

// DeleteItem removes a knowledge base entry.
func (s *KnowledgeService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeleteKnowledgeItem(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrKnowledgeNotFound
		}
		log.Printf("ERROR [KnowledgeService] DeleteItem: Store call failed for ID %s: %v", id, err)
		return fmt.Errorf("failed to delete knowledge item: %w", err)
	}
	return nil
}

// ImportFromNotion pulls a Notion page and stores its text as a knowledge item.
// The caller's integration secret is used for the fetch only and never persisted.
func (s *KnowledgeService) ImportFromNotion(ctx context.Context, req api_models.ImportNotionRequest) (*api_models.KnowledgeItemResponse, error) {
	if s.importer == nil {
		return nil, fmt.Errorf("%w: notion import is not configured", ErrImportFailed)
	}
	if strings.TrimSpace(req.PageID) == "" || strings.TrimSpace(req.IntegrationSecret) == "" {
		return nil, fmt.Errorf("%w: page_id and integration_secret are required", ErrKnowledgeValidation)
	}

	title, content, err := s.importer.ImportPage(ctx, req.IntegrationSecret, req.PageID)
	if err != nil {
		log.Printf("ERROR [KnowledgeService] ImportFromNotion: Import failed for page %s: %v", req.PageID, err)
		return nil, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}
	if req.Title != "" {
		title = req.Title
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: page %s has no text content", ErrImportFailed, req.PageID)
	}

	params := store.CreateKnowledgeItemParams{
		ID:       uuid.New(),
		Title:    title,
		Content:  content,
		FileType: "notion",
	}

	k, err := s.store.CreateKnowledgeItem(ctx, params)
	if err != nil {
		log.Printf("ERROR [KnowledgeService] ImportFromNotion: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to save imported page: %w", err)
	}

	log.Printf("[KnowledgeService] Imported Notion page %s as knowledge item %s", req.PageID, k.ID)
	return mapKnowledgeToResponse(k), nil
}
