package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"virtualagent-backend/internal/auth"
	"virtualagent-backend/internal/config"
	db_models "virtualagent-backend/internal/models"
	api_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned on a failed login attempt.
	// Deliberately vague: do not reveal whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles admin authentication.
type AuthService struct {
	store store.Store
	cfg   *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(s store.Store, cfg *config.Config) *AuthService {
	return &AuthService{store: s, cfg: cfg}
}

// Login verifies credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, req api_models.LoginRequest) (*api_models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.GetAdminUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Printf("ERROR [AuthService] Login: Store call failed for email %s: %v", req.Email, err)
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}

	if !auth.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.NewAccessToken(user.ID, s.cfg.JWTSecret, s.cfg.TokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &api_models.AuthResponse{
		AccessToken: token,
		User: api_models.UserResponse{
			ID:    user.ID,
			Email: user.Email,
		},
	}, nil
}

// EnsureSeedAdmin creates the configured admin account if it does not exist
// yet. Called once at startup; a missing ADMIN_PASSWORD skips seeding.
func (s *AuthService) EnsureSeedAdmin(ctx context.Context) error {
	if s.cfg.AdminPassword == "" {
		log.Println("[AuthService] EnsureSeedAdmin: ADMIN_PASSWORD not set, skipping seed admin creation.")
		return nil
	}

	_, err := s.store.GetAdminUserByEmail(ctx, s.cfg.AdminEmail)
	if err == nil {
		return nil // Already present
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check for seed admin: %w", err)
	}

	hashed, err := auth.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	user := &db_models.AdminUser{
		ID:             uuid.New(),
		Email:          s.cfg.AdminEmail,
		HashedPassword: hashed,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := s.store.CreateAdminUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	log.Printf("[AuthService] EnsureSeedAdmin: Created seed admin %s", user.Email)
	return nil
}
