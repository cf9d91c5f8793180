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
	ErrFeedNotFound   = errors.New("rss feed not found")
	ErrFeedValidation = errors.New("rss feed validation failed")
)

// RSSService manages the registered RSS feed URLs. Feeds are stored as
// configuration only; fetching and summarisation happen elsewhere.
type RSSService struct {
	store store.Store
}

// NewRSSService creates a new RSSService.
func NewRSSService(s store.Store) *RSSService {
	return &RSSService{store: s}
}

// CreateFeed validates and registers an RSS feed URL.
func (s *RSSService) CreateFeed(ctx context.Context, req api_models.CreateRSSFeedRequest) (*api_models.RSSFeedResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrFeedValidation)
	}
	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: url must be a valid http(s) URL", ErrFeedValidation)
	}

	params := store.CreateRSSFeedParams{
		ID:       uuid.New(),
		Name:     req.Name,
		URL:      req.URL,
		IsActive: req.IsActive,
	}

	f, err := s.store.CreateRSSFeed(ctx, params)
	if err != nil {
		log.Printf("ERROR [RSSService] CreateFeed: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to save rss feed: %w", err)
	}

	return &api_models.RSSFeedResponse{
		ID:        f.ID,
		Name:      f.Name,
		URL:       f.URL,
		IsActive:  f.IsActive,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}, nil
}

// ListFeeds lists all registered RSS feeds.
func (s *RSSService) ListFeeds(ctx context.Context) ([]api_models.RSSFeedResponse, error) {
	feeds, err := s.store.ListRSSFeeds(ctx)
	if err != nil {
		log.Printf("ERROR [RSSService] ListFeeds: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to list rss feeds: %w", err)
	}

	resp := make([]api_models.RSSFeedResponse, len(feeds))
	for i, f := range feeds {
		resp[i] = api_models.RSSFeedResponse{
			ID:        f.ID,
			Name:      f.Name,
			URL:       f.URL,
			IsActive:  f.IsActive,
			CreatedAt: f.CreatedAt,
			UpdatedAt: f.UpdatedAt,
		}
	}
	return resp, nil
}

// DeleteFeed removes a registered RSS feed.
func (s *RSSService) DeleteFeed(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeleteRSSFeed(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrFeedNotFound
		}
		log.Printf("ERROR [RSSService] DeleteFeed: Store call failed for ID %s: %v", id, err)
		return fmt.Errorf("failed to delete rss feed: %w", err)
	}
	return nil
}
