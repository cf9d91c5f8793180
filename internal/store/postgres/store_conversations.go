package postgres

import (
	"context"
	"fmt"
	"log"

	db_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"
)

// --- Conversation Analytics Methods ---

// CreateConversation persists a finished session transcript.
func (s *PostgresStore) CreateConversation(ctx context.Context, arg store.CreateConversationParams) (*db_models.Conversation, error) {
	query := `
		INSERT INTO conversations (id, messages, language, user_context)
		VALUES ($1, $2, $3, $4)
		RETURNING id, messages, language, user_context, created_at`

	messages := arg.Messages
	if messages == nil {
		messages = []byte("[]")
	}

	conv := &db_models.Conversation{}
	err := s.db.QueryRow(ctx, query, arg.ID, messages, arg.Language, arg.UserContext).Scan(
		&conv.ID,
		&conv.Messages,
		&conv.Language,
		&conv.UserContext,
		&conv.CreatedAt,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateConversation: Failed exec/scan: %v", err)
		return nil, fmt.Errorf("database error creating conversation: %w", err)
	}

	return conv, nil
}

// ListConversations retrieves persisted transcripts, newest first.
func (s *PostgresStore) ListConversations(ctx context.Context, limit, offset int) ([]db_models.Conversation, error) {
	query := `
		SELECT id, messages, language, user_context, created_at
		FROM conversations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListConversations: Failed query: %v", err)
		return nil, fmt.Errorf("database error listing conversations: %w", err)
	}
	defer rows.Close()

	convs := []db_models.Conversation{}
	for rows.Next() {
		conv := db_models.Conversation{}
		if err := rows.Scan(
			&conv.ID,
			&conv.Messages,
			&conv.Language,
			&conv.UserContext,
			&conv.CreatedAt,
		); err != nil {
			log.Printf("ERROR [PostgresStore] ListConversations: Failed scanning row: %v", err)
			return nil, fmt.Errorf("database error scanning conversation: %w", err)
		}
		convs = append(convs, conv)
	}

	if err = rows.Err(); err != nil {
		log.Printf("ERROR [PostgresStore] ListConversations: Error after iterating rows: %v", err)
		return nil, fmt.Errorf("database error after listing conversations: %w", err)
	}

	return convs, nil
}
