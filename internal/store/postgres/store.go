package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	db_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetAdminUserByEmail retrieves an admin user by email address.
// Returns store.ErrNotFound if the user does not exist.
func (s *PostgresStore) GetAdminUserByEmail(ctx context.Context, email string) (*db_models.AdminUser, error) {
	query := `
		SELECT id, email, hashed_password, created_at, updated_at
		FROM admin_users
		WHERE email = $1`

	user := &db_models.AdminUser{}
	err := s.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetAdminUserByEmail: Failed to query/scan user for email %s: %v", email, err)
		return nil, fmt.Errorf("database error fetching admin user by email: %w", err)
	}

	return user, nil
}

// CreateAdminUser inserts a new admin user record.
func (s *PostgresStore) CreateAdminUser(ctx context.Context, user *db_models.AdminUser) error {
	query := `
		INSERT INTO admin_users (id, email, hashed_password)
		VALUES ($1, $2, $3)`

	_, err := s.db.Exec(ctx, query, user.ID, user.Email, user.HashedPassword)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on email
			return fmt.Errorf("admin user with email %s already exists", user.Email)
		}
		log.Printf("ERROR [PostgresStore] CreateAdminUser: Failed exec for email %s: %v", user.Email, err)
		return fmt.Errorf("database error creating admin user: %w", err)
	}

	return nil
}
