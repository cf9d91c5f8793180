package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	api_models "virtualagent-backend/internal/models"
	db_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"

	"github.com/google/uuid"
)

// BrandService owns the singleton branding row.
type BrandService struct {
	store store.Store
}

// NewBrandService creates a new BrandService.
func NewBrandService(s store.Store) *BrandService {
	return &BrandService{store: s}
}

func mapBrandConfigToResponse(cfg *db_models.BrandConfig) *api_models.BrandConfigResponse {
	return &api_models.BrandConfigResponse{
		ID:           cfg.ID,
		LogoURL:      cfg.LogoURL,
		LogoSmallURL: cfg.LogoSmallURL,
		HelpText:     cfg.HelpText,
		InfoTitle:    cfg.InfoTitle,
		InfoContent:  cfg.InfoContent,
		InfoMediaURL: cfg.InfoMediaURL,
		CreatedAt:    cfg.CreatedAt,
		UpdatedAt:    cfg.UpdatedAt,
	}
}

// GetConfig returns the branding, creating an empty default row if the
// table is empty (first load).
func (s *BrandService) GetConfig(ctx context.Context) (*api_models.BrandConfigResponse, error) {
	cfg, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return mapBrandConfigToResponse(cfg), nil
}

func (s *BrandService) getOrCreate(ctx context.Context) (*db_models.BrandConfig, error) {
	cfg, err := s.store.GetBrandConfig(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("ERROR [BrandService] getOrCreate: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to load brand config: %w", err)
	}

	defaultCfg := &db_models.BrandConfig{ID: uuid.New()}
	if err := s.store.CreateBrandConfig(ctx, defaultCfg); err != nil {
		return nil, fmt.Errorf("failed to create default brand config: %w", err)
	}
	log.Printf("[BrandService] getOrCreate: Created default brand config %s", defaultCfg.ID)

	return s.store.GetBrandConfig(ctx)
}

// UpdateConfig applies a partial update to the branding.
func (s *BrandService) UpdateConfig(ctx context.Context, req api_models.UpdateBrandConfigRequest) (*api_models.BrandConfigResponse, error) {
	current, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	params := store.UpdateBrandConfigParams{
		ID:           current.ID,
		LogoURL:      req.LogoURL,
		LogoSmallURL: req.LogoSmallURL,
		HelpText:     req.HelpText,
		InfoTitle:    req.InfoTitle,
		InfoContent:  req.InfoContent,
		InfoMediaURL: req.InfoMediaURL,
	}

	updated, err := s.store.UpdateBrandConfig(ctx, params)
	if err != nil {
		log.Printf("ERROR [BrandService] UpdateConfig: Store call failed for ID %s: %v", current.ID, err)
		return nil, fmt.Errorf("failed to update brand config: %w", err)
	}

	return mapBrandConfigToResponse(updated), nil
}
