package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	api_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"

	"github.com/google/uuid"
)

var (
	ErrPronunciationNotFound   = errors.New("pronunciation not found")
	ErrPronunciationValidation = errors.New("pronunciation validation failed")
)

// PronunciationService manages word/phoneme overrides applied before speech
// synthesis.
type PronunciationService struct {
	store store.Store
}

// NewPronunciationService creates a new PronunciationService.
func NewPronunciationService(s store.Store) *PronunciationService {
	return &PronunciationService{store: s}
}

// CreatePronunciation registers a word replacement pair.
func (s *PronunciationService) CreatePronunciation(ctx context.Context, req api_models.CreatePronunciationRequest) (*api_models.PronunciationResponse, error) {
	if strings.TrimSpace(req.Word) == "" {
		return nil, fmt.Errorf("%w: word cannot be empty", ErrPronunciationValidation)
	}
	if strings.TrimSpace(req.Pronunciation) == "" {
		return nil, fmt.Errorf("%w: pronunciation cannot be empty", ErrPronunciationValidation)
	}

	params := store.CreatePronunciationParams{
		ID:            uuid.New(),
		Word:          req.Word,
		Pronunciation: req.Pronunciation,
	}

	p, err := s.store.CreatePronunciation(ctx, params)
	if err != nil {
		log.Printf("ERROR [PronunciationService] CreatePronunciation: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to save pronunciation: %w", err)
	}

	return &api_models.PronunciationResponse{
		ID:            p.ID,
		Word:          p.Word,
		Pronunciation: p.Pronunciation,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

// ListPronunciations lists all registered replacement pairs.
func (s *PronunciationService) ListPronunciations(ctx context.Context) ([]api_models.PronunciationResponse, error) {
	items, err := s.store.ListPronunciations(ctx)
	if err != nil {
		log.Printf("ERROR [PronunciationService] ListPronunciations: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to list pronunciations: %w", err)
	}

	resp := make([]api_models.PronunciationResponse, len(items))
	for i, p := range items {
		resp[i] = api_models.PronunciationResponse{
			ID:            p.ID,
			Word:          p.Word,
			Pronunciation: p.Pronunciation,
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		}
	}
	return resp, nil
}

// DeletePronunciation removes a replacement pair.
func (s *PronunciationService) DeletePronunciation(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeletePronunciation(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPronunciationNotFound
		}
		log.Printf("ERROR [PronunciationService] DeletePronunciation: Store call failed for ID %s: %v", id, err)
		return fmt.Errorf("failed to delete pronunciation: %w", err)
	}
	return nil
}

// ApplyAll rewrites text with every registered replacement. Matching is
// case-insensitive on whole words so "AI" does not rewrite "maintain".
func (s *PronunciationService) ApplyAll(ctx context.Context, text string) (string, error) {
	items, err := s.store.ListPronunciations(ctx)
	if err != nil {
		log.Printf("ERROR [PronunciationService] ApplyAll: Store call failed: %v", err)
		return text, fmt.Errorf("failed to load pronunciations: %w", err)
	}
	for _, p := range items {
		text = replaceWord(text, p.Word, p.Pronunciation)
	}
	return text, nil
}

func replaceWord(text, word, replacement string) string {
	if word == "" {
		return text
	}
	var b strings.Builder
	lower := strings.ToLower(text)
	target := strings.ToLower(word)
	i := 0
	for i < len(text) {
		j := strings.Index(lower[i:], target)
		if j < 0 {
			b.WriteString(text[i:])
			break
		}
		start := i + j
		end := start + len(target)
		if isWordBoundary(text, start-1) && isWordBoundary(text, end) {
			b.WriteString(text[i:start])
			b.WriteString(replacement)
		} else {
			b.WriteString(text[i:end])
		}
		i = end
	}
	return b.String()
}

func isWordBoundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}
