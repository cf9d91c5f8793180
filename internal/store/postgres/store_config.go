package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	db_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"

	"github.com/jackc/pgx/v5"
)

// --- Agent Config Methods ---

const agentConfigColumns = `id, name, mission, personality, encrypted_api_key, model, temperature, voice, avatar_url, avatar_transform, created_at, updated_at`

func scanAgentConfig(row pgx.Row) (*db_models.AgentConfig, error) {
	cfg := &db_models.AgentConfig{}
	err := row.Scan(
		&cfg.ID,
		&cfg.Name,
		&cfg.Mission,
		&cfg.Personality,
		&cfg.EncryptedAPIKey,
		&cfg.Model,
		&cfg.Temperature,
		&cfg.Voice,
		&cfg.AvatarURL,
		&cfg.AvatarTransform,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetAgentConfig retrieves the singleton agent persona row.
// Returns store.ErrNotFound when no row exists yet (first boot).
func (s *PostgresStore) GetAgentConfig(ctx context.Context) (*db_models.AgentConfig, error) {
	query := fmt.Sprintf(`SELECT %s FROM ai_config ORDER BY created_at ASC LIMIT 1`, agentConfigColumns)

	cfg, err := scanAgentConfig(s.db.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetAgentConfig: Failed query/scan: %v", err)
		return nil, fmt.Errorf("database error fetching agent config: %w", err)
	}

	return cfg, nil
}

// CreateAgentConfig inserts the agent persona row (used for the default on
// first boot).
func (s *PostgresStore) CreateAgentConfig(ctx context.Context, cfg *db_models.AgentConfig) error {
	query := `
		INSERT INTO ai_config (id, name, mission, personality, encrypted_api_key, model, temperature, voice, avatar_url, avatar_transform)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	transform := cfg.AvatarTransform
	if transform == nil {
		transform = []byte("{}")
	}

	_, err := s.db.Exec(ctx, query,
		cfg.ID,
		cfg.Name,
		cfg.Mission,
		cfg.Personality,
		cfg.EncryptedAPIKey,
		cfg.Model,
		cfg.Temperature,
		cfg.Voice,
		cfg.AvatarURL,
		transform,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateAgentConfig: Failed exec: %v", err)
		return fmt.Errorf("database error creating agent config: %w", err)
	}

	return nil
}

// UpdateAgentConfig updates fields of the agent persona row.
// Only non-nil fields in the args are written.
func (s *PostgresStore) UpdateAgentConfig(ctx context.Context, arg store.UpdateAgentConfigParams) (*db_models.AgentConfig, error) {
	setClauses := []string{"updated_at = now()"}
	args := []interface{}{arg.ID}
	argCounter := 2

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCounter))
		args = append(args, value)
		argCounter++
	}

	if arg.Name != nil {
		addClause("name", *arg.Name)
	}
	if arg.Mission != nil {
		addClause("mission", *arg.Mission)
	}
	if arg.Personality != nil {
		addClause("personality", *arg.Personality)
	}
	if arg.EncryptedAPIKey != nil {
		addClause("encrypted_api_key", arg.EncryptedAPIKey)
	}
	if arg.Model != nil {
		addClause("model", *arg.Model)
	}
	if arg.Temperature != nil {
		addClause("temperature", *arg.Temperature)
	}
	if arg.Voice != nil {
		addClause("voice", *arg.Voice)
	}
	if arg.AvatarURL != nil {
		addClause("avatar_url", *arg.AvatarURL)
	}
	if arg.AvatarTransform != nil {
		addClause("avatar_transform", arg.AvatarTransform)
	}

	if len(setClauses) == 1 { // Only updated_at = now()
		return s.GetAgentConfig(ctx)
	}

	query := fmt.Sprintf(`
		UPDATE ai_config
		SET %s
		WHERE id = $1
		RETURNING %s`,
		strings.Join(setClauses, ", "), agentConfigColumns,
	)

	cfg, err := scanAgentConfig(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] UpdateAgentConfig: Failed query/scan for ID %s: %v", arg.ID, err)
		return nil, fmt.Errorf("database error updating agent config: %w", err)
	}

	return cfg, nil
}

// --- Brand Config Methods ---

const brandConfigColumns = `id, logo_url, logo_small_url, help_text, info_title, info_content, info_media_url, created_at, updated_at`

func scanBrandConfig(row pgx.Row) (*db_models.BrandConfig, error) {
	cfg := &db_models.BrandConfig{}
	err := row.Scan(
		&cfg.ID,
		&cfg.LogoURL,
		&cfg.LogoSmallURL,
		&cfg.HelpText,
		&cfg.InfoTitle,
		&cfg.InfoContent,
		&cfg.InfoMediaURL,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetBrandConfig retrieves the singleton branding row.
func (s *PostgresStore) GetBrandConfig(ctx context.Context) (*db_models.BrandConfig, error) {
	query := fmt.Sprintf(`SELECT %s FROM brand_config ORDER BY created_at ASC LIMIT 1`, brandConfigColumns)

	cfg, err := scanBrandConfig(s.db.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetBrandConfig: Failed query/scan: %v", err)
		return nil, fmt.Errorf("database error fetching brand config: %w", err)
	}

	return cfg, nil
}

// CreateBrandConfig inserts the branding row (default on first boot).
func (s *PostgresStore) CreateBrandConfig(ctx context.Context, cfg *db_models.BrandConfig) error {
	query := `
		INSERT INTO brand_config (id, logo_url, logo_small_url, help_text, info_title, info_content, info_media_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.Exec(ctx, query,
		cfg.ID,
		cfg.LogoURL,
		cfg.LogoSmallURL,
		cfg.HelpText,
		cfg.InfoTitle,
		cfg.InfoContent,
		cfg.InfoMediaURL,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateBrandConfig: Failed exec: %v", err)
		return fmt.Errorf("database error creating brand config: %w", err)
	}

	return nil
}

// UpdateBrandConfig updates fields of the branding row.
func (s *PostgresStore) UpdateBrandConfig(ctx context.Context, arg store.UpdateBrandConfigParams) (*db_models.BrandConfig, error) {
	setClauses := []string{"updated_at = now()"}
	args := []interface{}{arg.ID}
	argCounter := 2

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCounter))
		args = append(args, value)
		argCounter++
	}

	if arg.LogoURL != nil {
		addClause("logo_url", *arg.LogoURL)
	}
	if arg.LogoSmallURL != nil {
		addClause("logo_small_url", *arg.LogoSmallURL)
	}
	if arg.HelpText != nil {
		addClause("help_text", *arg.HelpText)
	}
	if arg.InfoTitle != nil {
		addClause("info_title", *arg.InfoTitle)
	}
	if arg.InfoContent != nil {
		addClause("info_content", *arg.InfoContent)
	}
	if arg.InfoMediaURL != nil {
		addClause("info_media_url", *arg.InfoMediaURL)
	}

	if len(setClauses) == 1 {
		return s.GetBrandConfig(ctx)
	}

	query := fmt.Sprintf(`
		UPDATE brand_config
		SET %s
		WHERE id = $1
		RETURNING %s`,
		strings.Join(setClauses, ", "), brandConfigColumns,
	)

	cfg, err := scanBrandConfig(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] UpdateBrandConfig: Failed query/scan for ID %s: %v", arg.ID, err)
		return nil, fmt.Errorf("database error updating brand config: %w", err)
	}

	return cfg, nil
}
