package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"virtualagent-backend/internal/auth"
	"virtualagent-backend/internal/config"
	api_models "virtualagent-backend/internal/models"
	db_models "virtualagent-backend/internal/models"

	"github.com/google/uuid"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		TokenExpiration: time.Hour,
		AdminEmail:      "admin@example.com",
		AdminPassword:   "hunter22",
	}
}

func TestAuthService_LoginRoundTrip(t *testing.T) {
	t.Parallel()

	hashed, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	s := &fakeStore{adminUsers: []db_models.AdminUser{{
		ID:             uuid.New(),
		Email:          "admin@example.com",
		HashedPassword: hashed,
	}}}
	svc := NewAuthService(s, authTestConfig())

	resp, err := svc.Login(context.Background(), api_models.LoginRequest{
		Email:    "admin@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("empty access token")
	}
	if resp.User.Email != "admin@example.com" {
		t.Fatalf("user = %+v", resp.User)
	}
}

func TestAuthService_BadCredentials(t *testing.T) {
	t.Parallel()

	hashed, _ := auth.HashPassword("hunter22")
	s := &fakeStore{adminUsers: []db_models.AdminUser{{
		ID:             uuid.New(),
		Email:          "admin@example.com",
		HashedPassword: hashed,
	}}}
	svc := NewAuthService(s, authTestConfig())
	ctx := context.Background()

	cases := []api_models.LoginRequest{
		{Email: "admin@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "hunter22"},
		{Email: "", Password: ""},
	}
	for _, req := range cases {
		if _, err := svc.Login(ctx, req); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login(%q): err = %v, want ErrInvalidCredentials", req.Email, err)
		}
	}
}

func TestEnsureSeedAdmin(t *testing.T) {
	t.Parallel()

	s := &fakeStore{}
	svc := NewAuthService(s, authTestConfig())
	ctx := context.Background()

	if err := svc.EnsureSeedAdmin(ctx); err != nil {
		t.Fatalf("EnsureSeedAdmin: %v", err)
	}
	if len(s.adminUsers) != 1 {
		t.Fatalf("admin users = %d, want 1 seeded", len(s.adminUsers))
	}

	// Idempotent on restart.
	if err := svc.EnsureSeedAdmin(ctx); err != nil {
		t.Fatalf("EnsureSeedAdmin (second run): %v", err)
	}
	if len(s.adminUsers) != 1 {
		t.Fatalf("admin users = %d after rerun, want still 1", len(s.adminUsers))
	}

	// Seeded password must actually work.
	if _, err := svc.Login(ctx, api_models.LoginRequest{Email: "admin@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("Login with seeded credentials: %v", err)
	}
}

func TestEnsureSeedAdmin_SkippedWithoutPassword(t *testing.T) {
	t.Parallel()

	cfg := authTestConfig()
	cfg.AdminPassword = ""
	s := &fakeStore{}
	svc := NewAuthService(s, cfg)

	if err := svc.EnsureSeedAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureSeedAdmin: %v", err)
	}
	if len(s.adminUsers) != 0 {
		t.Fatal("admin seeded despite empty password")
	}
}
