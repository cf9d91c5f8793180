package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	db_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// --- Knowledge Base Methods ---

const knowledgeColumns = `id, title, content, file_type, file_url, created_at, updated_at`

// CreateKnowledgeItem inserts a new knowledge item record.
func (s *PostgresStore) CreateKnowledgeItem(ctx context.Context, arg store.CreateKnowledgeItemParams) (*db_models.KnowledgeItem, error) {
	query := fmt.Sprintf(`
		INSERT INTO knowledge_base (id, title, content, file_type, file_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, knowledgeColumns)

	item := &db_models.KnowledgeItem{}
	err := s.db.QueryRow(ctx, query,
		arg.ID,
		arg.Title,
		arg.Content,
		arg.FileType,
		arg.FileURL,
	).Scan(
		&item.ID,
		&item.Title,
		&item.Content,
		&item.FileType,
		&item.FileURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateKnowledgeItem: Failed exec/scan: %v", err)
		return nil, fmt.Errorf("database error creating knowledge item: %w", err)
	}

	return item, nil
}

// GetKnowledgeItemByID retrieves a specific knowledge item by ID.
func (s *PostgresStore) GetKnowledgeItemByID(ctx context.Context, id uuid.UUID) (*db_models.KnowledgeItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM knowledge_base WHERE id = $1`, knowledgeColumns)

	item := &db_models.KnowledgeItem{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.Content,
		&item.FileType,
		&item.FileURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetKnowledgeItemByID: Failed query/scan for ID %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching knowledge item: %w", err)
	}

	return item, nil
}

// ListKnowledgeItems retrieves all knowledge items, newest first.
func (s *PostgresStore) ListKnowledgeItems(ctx context.Context) ([]db_models.KnowledgeItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM knowledge_base ORDER BY created_at DESC`, knowledgeColumns)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListKnowledgeItems: Failed query: %v", err)
		return nil, fmt.Errorf("database error listing knowledge items: %w", err)
	}
	defer rows.Close()

	items := []db_models.KnowledgeItem{}
	for rows.Next() {
		item := db_models.KnowledgeItem{}
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Content,
			&item.FileType,
			&item.FileURL,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			log.Printf("ERROR [PostgresStore] ListKnowledgeItems: Failed scanning row: %v", err)
			return nil, fmt.Errorf("database error scanning knowledge item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		log.Printf("ERROR [PostgresStore] ListKnowledgeItems: Error after iterating rows: %v", err)
		return nil, fmt.Errorf("database error after listing knowledge items: %w", err)
	}

	return items, nil
}

// DeleteKnowledgeItem deletes a specific knowledge item by ID.
func (s *PostgresStore) DeleteKnowledgeItem(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM knowledge_base WHERE id = $1`

	cmdTag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		log.Printf("ERROR [PostgresStore] DeleteKnowledgeItem: Failed exec for ID %s: %v", id, err)
		return fmt.Errorf("database error deleting knowledge item: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

// --- RSS Feed Methods ---

// CreateRSSFeed inserts a new RSS feed record.
func (s *PostgresStore) CreateRSSFeed(ctx context.Context, arg store.CreateRSSFeedParams) (*db_models.RSSFeed, error) {
	query := `
		INSERT INTO rss_feeds (id, name, url, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, url, is_active, created_at, updated_at`

	feed := &db_models.RSSFeed{}
	err := s.db.QueryRow(ctx, query, arg.ID, arg.Name, arg.URL, arg.IsActive).Scan(
		&feed.ID,
		&feed.Name,
		&feed.URL,
		&feed.IsActive,
		&feed.CreatedAt,
		&feed.UpdatedAt,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateRSSFeed: Failed exec/scan: %v", err)
		return nil, fmt.Errorf("database error creating rss feed: %w", err)
	}

	return feed, nil
}

// ListRSSFeeds retrieves all RSS feed records.
func (s *PostgresStore) ListRSSFeeds(ctx context.Context) ([]db_models.RSSFeed, error) {
	query := `SELECT id, name, url, is_active, created_at, updated_at FROM rss_feeds ORDER BY created_at ASC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListRSSFeeds: Failed query: %v", err)
		return nil, fmt.Errorf("database error listing rss feeds: %w", err)
	}
	defer rows.Close()

	feeds := []db_models.RSSFeed{}
	for rows.Next() {
		feed := db_models.RSSFeed{}
		if err := rows.Scan(
			&feed.ID,
			&feed.Name,
			&feed.URL,
			&feed.IsActive,
			&feed.CreatedAt,
			&feed.UpdatedAt,
		); err != nil {
			log.Printf("ERROR [PostgresStore] ListRSSFeeds: Failed scanning row: %v", err)
			return nil, fmt.Errorf("database error scanning rss feed: %w", err)
		}
		feeds = append(feeds, feed)
	}

	if err = rows.Err(); err != nil {
		log.Printf("ERROR [PostgresStore] ListRSSFeeds: Error after iterating rows: %v", err)
		return nil, fmt.Errorf("database error after listing rss feeds: %w", err)
	}

	return feeds, nil
}

// DeleteRSSFeed deletes a specific RSS feed by ID.
func (s *PostgresStore) DeleteRSSFeed(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM rss_feeds WHERE id = $1`

	cmdTag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		log.Printf("ERROR [PostgresStore] DeleteRSSFeed: Failed exec for ID %s: %v", id, err)
		return fmt.Errorf("database error deleting rss feed: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

// --- API Tool Methods ---

// CreateAPITool inserts a new API tool record.
func (s *PostgresStore) CreateAPITool(ctx context.Context, arg store.CreateAPIToolParams) (*db_models.APITool, error) {
	query := `
		INSERT INTO api_tools (id, name, url, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, url, is_active, created_at, updated_at`

	tool := &db_models.APITool{}
	err := s.db.QueryRow(ctx, query, arg.ID, arg.Name, arg.URL, arg.IsActive).Scan(
		&tool.ID,
		&tool.Name,
		&tool.URL,
		&tool.IsActive,
		&tool.CreatedAt,
		&tool.UpdatedAt,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateAPITool: Failed exec/scan: %v", err)
		return nil, fmt.Errorf("database error creating api tool: %w", err)
	}

	return tool, nil
}

// ListAPITools retrieves all API tool records.
func (s *PostgresStore) ListAPITools(ctx context.Context) ([]db_models.APITool, error) {
	query := `SELECT id, name, url, is_active, created_at, updated_at FROM api_tools ORDER BY created_at ASC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListAPITools: Failed query: %v", err)
		return nil, fmt.Errorf("database error listing api tools: %w", err)
	}
	defer rows.Close()

	tools := []db_models.APITool{}
	for rows.Next() {
		tool := db_models.APITool{}
		if err := rows.Scan(
			&tool.ID,
			&tool.Name,
			&tool.URL,
			&tool.IsActive,
			&tool.CreatedAt,
			&tool.UpdatedAt,
		); err != nil {
			log.Printf("ERROR [PostgresStore] ListAPITools: Failed scanning row: %v", err)
			return nil, fmt.Errorf("database error scanning api tool: %w", err)
		}
		tools = append(tools, tool)
	}

	if err = rows.Err(); err != nil {
		log.Printf("ERROR [PostgresStore] ListAPITools: Error after iterating rows: %v", err)
		return nil, fmt.Errorf("database error after listing api tools: %w", err)
	}

	return tools, nil
}

// DeleteAPITool deletes a specific API tool by ID.
func (s *PostgresStore) DeleteAPITool(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM api_tools WHERE id = $1`

	cmdTag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		log.Printf("ERROR [PostgresStore] DeleteAPITool: Failed exec for ID %s: %v", id, err)
		return fmt.Errorf("database error deleting api tool: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

// --- Pronunciation Methods ---

// CreatePronunciation inserts a new pronunciation record.
func (s *PostgresStore) CreatePronunciation(ctx context.Context, arg store.CreatePronunciationParams) (*db_models.Pronunciation, error) {
	query := `
		INSERT INTO pronunciations (id, word, pronunciation)
		VALUES ($1, $2, $3)
		RETURNING id, word, pronunciation, created_at, updated_at`

	p := &db_models.Pronunciation{}
	err := s.db.QueryRow(ctx, query, arg.ID, arg.Word, arg.Pronunciation).Scan(
		&p.ID,
		&p.Word,
		&p.Pronunciation,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreatePronunciation: Failed exec/scan: %v", err)
		return nil, fmt.Errorf("database error creating pronunciation: %w", err)
	}

	return p, nil
}

// ListPronunciations retrieves all pronunciation records.
func (s *PostgresStore) ListPronunciations(ctx context.Context) ([]db_models.Pronunciation, error) {
	query := `SELECT id, word, pronunciation, created_at, updated_at FROM pronunciations ORDER BY word ASC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListPronunciations: Failed query: %v", err)
		return nil, fmt.Errorf("database error listing pronunciations: %w", err)
	}
	defer rows.Close()

	prons := []db_models.Pronunciation{}
	for rows.Next() {
		p := db_models.Pronunciation{}
		if err := rows.Scan(
			&p.ID,
			&p.Word,
			&p.Pronunciation,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			log.Printf("ERROR [PostgresStore] ListPronunciations: Failed scanning row: %v", err)
			return nil, fmt.Errorf("database error scanning pronunciation: %w", err)
		}
		prons = append(prons, p)
	}

	if err = rows.Err(); err != nil {
		log.Printf("ERROR [PostgresStore] ListPronunciations: Error after iterating rows: %v", err)
		return nil, fmt.Errorf("database error after listing pronunciations: %w", err)
	}

	return prons, nil
}

// DeletePronunciation deletes a specific pronunciation by ID.
func (s *PostgresStore) DeletePronunciation(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM pronunciations WHERE id = $1`

	cmdTag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		log.Printf("ERROR [PostgresStore] DeletePronunciation: Failed exec for ID %s: %v", id, err)
		return fmt.Errorf("database error deleting pronunciation: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}
