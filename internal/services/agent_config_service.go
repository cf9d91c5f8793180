package services

import (
	"context"
	"crypto/cipher"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	appcrypto "virtualagent-backend/internal/crypto"
	api_models "virtualagent-backend/internal/models"
	db_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"

	"github.com/google/uuid"
)

var (
	ErrConfigValidation = errors.New("agent config validation failed")
	// ErrNoProviderKey is returned when neither the request nor the stored
	// config carries a provider API key.
	ErrNoProviderKey = errors.New("no provider API key configured")
)

// Default persona used when the ai_config table is empty on first load.
const (
	defaultAgentName   = "Eva"
	defaultAgentModel  = "gpt-4o-mini"
	defaultTemperature = 0.7
	defaultVoice       = "alloy"
)

// AgentConfigService owns the agent persona singleton, including the
// provider API key which is encrypted at rest. envKey is the operator's
// OPENAI_API_KEY, consulted only when the dashboard has stored no key.
type AgentConfigService struct {
	store  store.Store
	aead   cipher.AEAD
	envKey string
}

// NewAgentConfigService creates a new AgentConfigService.
func NewAgentConfigService(s store.Store, aead cipher.AEAD, envKey string) *AgentConfigService {
	return &AgentConfigService{store: s, aead: aead, envKey: envKey}
}

func mapAgentConfigToResponse(cfg *db_models.AgentConfig) *api_models.AgentConfigResponse {
	return &api_models.AgentConfigResponse{
		ID:              cfg.ID,
		Name:            cfg.Name,
		Mission:         cfg.Mission,
		Personality:     cfg.Personality,
		APIKeySet:       len(cfg.EncryptedAPIKey) > 0,
		Model:           cfg.Model,
		Temperature:     cfg.Temperature,
		Voice:           cfg.Voice,
		AvatarURL:       cfg.AvatarURL,
		AvatarTransform: cfg.AvatarTransform,
		CreatedAt:       cfg.CreatedAt,
		UpdatedAt:       cfg.UpdatedAt,
	}
}

// GetConfig returns the agent persona, creating the default row if the
// table is empty (first load).
func (s *AgentConfigService) GetConfig(ctx context.Context) (*api_models.AgentConfigResponse, error) {
	cfg, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return mapAgentConfigToResponse(cfg), nil
}

func (s *AgentConfigService) getOrCreate(ctx context.Context) (*db_models.AgentConfig, error) {
	cfg, err := s.store.GetAgentConfig(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("ERROR [AgentConfigService] getOrCreate: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to load agent config: %w", err)
	}

	defaultCfg := &db_models.AgentConfig{
		ID:          uuid.New(),
		Name:        defaultAgentName,
		Model:       defaultAgentModel,
		Temperature: defaultTemperature,
		Voice:       defaultVoice,
	}
	if err := s.store.CreateAgentConfig(ctx, defaultCfg); err != nil {
		return nil, fmt.Errorf("failed to create default agent config: %w", err)
	}
	log.Printf("[AgentConfigService] getOrCreate: Created default agent config %s", defaultCfg.ID)

	return s.store.GetAgentConfig(ctx)
}

// UpdateConfig applies a partial update to the persona. A provided APIKey
// is sealed with AES-GCM before it reaches the store.
func (s *AgentConfigService) UpdateConfig(ctx context.Context, req api_models.UpdateAgentConfigRequest) (*api_models.AgentConfigResponse, error) {
	if req.Temperature != nil && (*req.Temperature < 0 || *req.Temperature > 2) {
		return nil, fmt.Errorf("%w: temperature must be between 0 and 2", ErrConfigValidation)
	}
	if req.AvatarTransform != nil && !json.Valid(*req.AvatarTransform) {
		return nil, fmt.Errorf("%w: avatar_transform is not valid JSON", ErrConfigValidation)
	}

	current, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	params := store.UpdateAgentConfigParams{
		ID:          current.ID,
		Name:        req.Name,
		Mission:     req.Mission,
		Personality: req.Personality,
		Model:       req.Model,
		Temperature: req.Temperature,
		Voice:       req.Voice,
		AvatarURL:   req.AvatarURL,
	}
	if req.AvatarTransform != nil {
		params.AvatarTransform = *req.AvatarTransform
	}
	if req.APIKey != nil && *req.APIKey != "" {
		sealed, err := appcrypto.SealString(s.aead, *req.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt provider key: %w", err)
		}
		params.EncryptedAPIKey = sealed
	}

	updated, err := s.store.UpdateAgentConfig(ctx, params)
	if err != nil {
		log.Printf("ERROR [AgentConfigService] UpdateConfig: Store call failed for ID %s: %v", current.ID, err)
		return nil, fmt.Errorf("failed to update agent config: %w", err)
	}

	return mapAgentConfigToResponse(updated), nil
}

// ProviderKey returns the decrypted stored provider API key, used as the
// server-side fallback when a proxy request carries no key of its own.
func (s *AgentConfigService) ProviderKey(ctx context.Context) (string, error) {
	cfg, err := s.getOrCreate(ctx)
	if err != nil {
		return "", err
	}
	if len(cfg.EncryptedAPIKey) == 0 {
		if s.envKey != "" {
			return s.envKey, nil
		}
		return "", ErrNoProviderKey
	}

	key, err := appcrypto.OpenString(s.aead, cfg.EncryptedAPIKey)
	if err != nil {
		log.Printf("ERROR [AgentConfigService] ProviderKey: Failed to decrypt stored key: %v", err)
		return "", fmt.Errorf("failed to decrypt provider key: %w", err)
	}

	return key, nil
}

// ModelSettings returns the configured model, temperature and voice for
// proxy calls that do not specify their own.
func (s *AgentConfigService) ModelSettings(ctx context.Context) (model string, temperature float64, voice string, err error) {
	cfg, err := s.getOrCreate(ctx)
	if err != nil {
		return "", 0, "", err
	}
	return cfg.Model, cfg.Temperature, cfg.Voice, nil
}
