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
	ErrAdvisorNotFound   = errors.New("advisor not found")
	ErrAdvisorValidation = errors.New("advisor validation failed")
)

// AdvisorService handles the advisor roster CRUD.
type AdvisorService struct {
	store store.Store
}

// NewAdvisorService creates a new AdvisorService.
func NewAdvisorService(s store.Store) *AdvisorService {
	return &AdvisorService{store: s}
}

func mapAdvisorToResponse(a *db_models.Advisor) *api_models.AdvisorResponse {
	return &api_models.AdvisorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Phone:     a.Phone,
		PhotoURL:  a.PhotoURL,
		Position:  a.Position,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// CreateAdvisor validates input and creates a new advisor.
func (s *AdvisorService) CreateAdvisor(ctx context.Context, req api_models.CreateAdvisorRequest) (*api_models.AdvisorResponse, error) {
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, fmt.Errorf("%w: first_name cannot be empty", ErrAdvisorValidation)
	}
	if strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: last_name cannot be empty", ErrAdvisorValidation)
	}
	if !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("%w: email is not valid", ErrAdvisorValidation)
	}

	params := store.CreateAdvisorParams{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		PhotoURL:  req.PhotoURL,
		Position:  req.Position,
	}

	a, err := s.store.CreateAdvisor(ctx, params)
	if err != nil {
		log.Printf("ERROR [AdvisorService] CreateAdvisor: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to save advisor: %w", err)
	}

	return mapAdvisorToResponse(a), nil
}

// GetAdvisor retrieves a specific advisor by ID.
func (s *AdvisorService) GetAdvisor(ctx context.Context, id uuid.UUID) (*api_models.AdvisorResponse, error) {
	a, err := s.store.GetAdvisorByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAdvisorNotFound
		}
		log.Printf("ERROR [AdvisorService] GetAdvisor: Store call failed for ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve advisor: %w", err)
	}
	return mapAdvisorToResponse(a), nil
}

// ListAdvisors retrieves the full advisor roster.
func (s *AdvisorService) ListAdvisors(ctx context.Context) ([]api_models.AdvisorResponse, error) {
	advisors, err := s.store.ListAdvisors(ctx)
	if err != nil {
		log.Printf("ERROR [AdvisorService] ListAdvisors: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to list advisors: %w", err)
	}

	resp := make([]api_models.AdvisorResponse, len(advisors))
	for i := range advisors {
		resp[i] = *mapAdvisorToResponse(&advisors[i])
	}
	return resp, nil
}

// UpdateAdvisor applies a partial update to an advisor.
func (s *AdvisorService) UpdateAdvisor(ctx context.Context, id uuid.UUID, req api_models.UpdateAdvisorRequest) (*api_models.AdvisorResponse, error) {
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		return nil, fmt.Errorf("%w: email is not valid", ErrAdvisorValidation)
	}

	params := store.UpdateAdvisorParams{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		PhotoURL:  req.PhotoURL,
		Position:  req.Position,
	}

	a, err := s.store.UpdateAdvisor(ctx, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAdvisorNotFound
		}
		log.Printf("ERROR [AdvisorService] UpdateAdvisor: Store call failed for ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to update advisor: %w", err)
	}

	return mapAdvisorToResponse(a), nil
}

// DeleteAdvisor deletes an advisor by ID.
func (s *AdvisorService) DeleteAdvisor(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeleteAdvisor(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAdvisorNotFound
		}
		log.Printf("ERROR [AdvisorService] DeleteAdvisor: Store call failed for ID %s: %v", id, err)
		return fmt.Errorf("failed to delete advisor: %w", err)
	}
	return nil
}
