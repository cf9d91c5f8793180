package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	db_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const advisorColumns = `id, first_name, last_name, email, phone, photo_url, position, created_at, updated_at`

func scanAdvisor(row pgx.Row) (*db_models.Advisor, error) {
	a := &db_models.Advisor{}
	err := row.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.Phone,
		&a.PhotoURL,
		&a.Position,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAdvisor inserts a new advisor record.
func (s *PostgresStore) CreateAdvisor(ctx context.Context, arg store.CreateAdvisorParams) (*db_models.Advisor, error) {
	query := fmt.Sprintf(`
		INSERT INTO advisors (id, first_name, last_name, email, phone, photo_url, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, advisorColumns)

	a, err := scanAdvisor(s.db.QueryRow(ctx, query,
		arg.ID,
		arg.FirstName,
		arg.LastName,
		arg.Email,
		arg.Phone,
		arg.PhotoURL,
		arg.Position,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on email
			log.Printf("WARN [PostgresStore] CreateAdvisor: Unique constraint violation for email %s: %v", arg.Email, err)
			return nil, fmt.Errorf("advisor with email %s already exists", arg.Email)
		}
		log.Printf("ERROR [PostgresStore] CreateAdvisor: Failed exec/scan: %v", err)
		return nil, fmt.Errorf("database error creating advisor: %w", err)
	}

	return a, nil
}

// GetAdvisorByID retrieves a specific advisor by ID.
func (s *PostgresStore) GetAdvisorByID(ctx context.Context, id uuid.UUID) (*db_models.Advisor, error) {
	query := fmt.Sprintf(`SELECT %s FROM advisors WHERE id = $1`, advisorColumns)

	a, err := scanAdvisor(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetAdvisorByID: Failed query/scan for ID %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching advisor: %w", err)
	}

	return a, nil
}

// ListAdvisors retrieves all advisors ordered by creation time.
func (s *PostgresStore) ListAdvisors(ctx context.Context) ([]db_models.Advisor, error) {
	query := fmt.Sprintf(`SELECT %s FROM advisors ORDER BY created_at ASC`, advisorColumns)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListAdvisors: Failed query: %v", err)
		return nil, fmt.Errorf("database error listing advisors: %w", err)
	}
	defer rows.Close()

	advisors := []db_models.Advisor{}
	for rows.Next() {
		a := db_models.Advisor{}
		if err := rows.Scan(
			&a.ID,
			&a.FirstName,
			&a.LastName,
			&a.Email,
			&a.Phone,
			&a.PhotoURL,
			&a.Position,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			log.Printf("ERROR [PostgresStore] ListAdvisors: Failed scanning row: %v", err)
			return nil, fmt.Errorf("database error scanning advisor: %w", err)
		}
		advisors = append(advisors, a)
	}

	if err = rows.Err(); err != nil {
		log.Printf("ERROR [PostgresStore] ListAdvisors: Error after iterating rows: %v", err)
		return nil, fmt.Errorf("database error after listing advisors: %w", err)
	}

	return advisors, nil
}

// UpdateAdvisor updates fields for a specific advisor.
// Only non-nil pointer fields are written.
func (s *PostgresStore) UpdateAdvisor(ctx context.Context, arg store.UpdateAdvisorParams) (*db_models.Advisor, error) {
	setClauses := []string{"updated_at = now()"}
	args := []interface{}{arg.ID}
	argCounter := 2

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCounter))
		args = append(args, value)
		argCounter++
	}

	if arg.FirstName != nil {
		addClause("first_name", *arg.FirstName)
	}
	if arg.LastName != nil {
		addClause("last_name", *arg.LastName)
	}
	if arg.Email != nil {
		addClause("email", *arg.Email)
	}
	if arg.Phone != nil {
		addClause("phone", *arg.Phone)
	}
	if arg.PhotoURL != nil {
		addClause("photo_url", *arg.PhotoURL)
	}
	if arg.Position != nil {
		addClause("position", *arg.Position)
	}

	if len(setClauses) == 1 {
		return s.GetAdvisorByID(ctx, arg.ID)
	}

	query := fmt.Sprintf(`
		UPDATE advisors
		SET %s
		WHERE id = $1
		RETURNING %s`,
		strings.Join(setClauses, ", "), advisorColumns,
	)

	a, err := scanAdvisor(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("advisor email conflicts with an existing advisor")
		}
		log.Printf("ERROR [PostgresStore] UpdateAdvisor: Failed query/scan for ID %s: %v", arg.ID, err)
		return nil, fmt.Errorf("database error updating advisor: %w", err)
	}

	return a, nil
}

// DeleteAdvisor deletes a specific advisor by ID.
func (s *PostgresStore) DeleteAdvisor(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM advisors WHERE id = $1`

	cmdTag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		log.Printf("ERROR [PostgresStore] DeleteAdvisor: Failed exec for ID %s: %v", id, err)
		return fmt.Errorf("database error deleting advisor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}
