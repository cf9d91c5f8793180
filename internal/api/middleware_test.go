package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"virtualagent-backend/internal/auth"

	"github.com/google/uuid"
)

const testJWTSecret = "middleware-test-secret"

func protectedEcho(t *testing.T, wantUserID uuid.UUID) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			t.Error("user ID missing from request context")
		}
		if userID != wantUserID {
			t.Errorf("user ID = %s, want %s", userID, wantUserID)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestJwtAuthMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token, err := auth.NewAccessToken(userID, testJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	handler := JwtAuthMiddleware(testJWTSecret)(protectedEcho(t, userID))

	req := httptest.NewRequest(http.MethodGet, "/v1/advisors", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d (body: %s)", rr.Code, rr.Body.String())
	}
}

func TestJwtAuthMiddleware_Rejections(t *testing.T) {
	t.Parallel()

	expired, err := auth.NewAccessToken(uuid.New(), testJWTSecret, -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	wrongSecret, err := auth.NewAccessToken(uuid.New(), "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong secret", "Bearer " + wrongSecret},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := JwtAuthMiddleware(testJWTSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("protected handler reached without valid token")
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/advisors", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rr.Code)
			}
		})
	}
}
