package token

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/feature/auth/domain/entity"
)

// TestMain switches Gin into test mode before running the tests.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockResolver is a mock implementation of the UserResolver interface.
type mockResolver struct {
	ResolveFunc func(ctx context.Context, bearer string) (*entity.User, error)
}

func (m *mockResolver) Resolve(ctx context.Context, bearer string) (*entity.User, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, bearer)
	}
	return nil, errors.New("not authenticated")
}

// TestAuthRequired_MissingBearerToken verifies that requests without a
// well-formed Authorization header are rejected before the resolver runs.
func TestAuthRequired_MissingBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &mockResolver{
				ResolveFunc: func(ctx context.Context, bearer string) (*entity.User, error) {
					t.Error("resolver must not be called without a bearer token")
					return nil, nil
				},
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}

			AuthRequired(resolver)(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
		})
	}
}

// TestAuthRequired_ResolverRejects verifies that resolver failures surface as
// the same generic 401.
func TestAuthRequired_ResolverRejects(t *testing.T) {
	resolver := &mockResolver{
		ResolveFunc: func(ctx context.Context, bearer string) (*entity.User, error) {
			return nil, ErrExpiredToken
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer sometoken")

	AuthRequired(resolver)(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

// TestAuthRequired_Success verifies that the resolved user is stored on the
// context and the chain continues.
func TestAuthRequired_Success(t *testing.T) {
	want := &entity.User{ID: 7, Email: "user@example.com"}
	resolver := &mockResolver{
		ResolveFunc: func(ctx context.Context, bearer string) (*entity.User, error) {
			if bearer != "good-token" {
				t.Errorf("expected bearer %q, got %q", "good-token", bearer)
			}
			return want, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer good-token")

	AuthRequired(resolver)(c)

	if c.IsAborted() {
		t.Fatal("expected request not to be aborted")
	}
	got, ok := CurrentUser(c)
	if !ok {
		t.Fatal("expected user on context")
	}
	if got.Email != want.Email {
		t.Errorf("expected user %q, got %q", want.Email, got.Email)
	}
}

// TestCurrentUser_Absent verifies the lookup on a bare context.
func TestCurrentUser_Absent(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if _, ok := CurrentUser(c); ok {
		t.Error("expected no user on a bare context")
	}
}
