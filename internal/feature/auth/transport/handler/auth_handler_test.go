package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts_backend/internal/feature/auth/domain/entity"
	"contacts_backend/internal/feature/auth/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	SignupFunc              func(ctx context.Context, username, email, password string) (*entity.User, error)
	LoginFunc               func(ctx context.Context, email, password string) (*usecase.TokenPair, error)
	RefreshFunc             func(ctx context.Context, refreshToken string) (*usecase.TokenPair, error)
	ConfirmEmailFunc        func(ctx context.Context, emailToken string) error
	RequestConfirmationFunc func(ctx context.Context, email string) error
}

func (m *mockAuthUsecase) Signup(ctx context.Context, username, email, password string) (*entity.User, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, username, email, password)
	}
	return &entity.User{ID: 1, Username: username, Email: email}, nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (*usecase.TokenPair, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, usecase.ErrInvalidCredentials
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, usecase.ErrRevokedToken
}

func (m *mockAuthUsecase) ConfirmEmail(ctx context.Context, emailToken string) error {
	if m.ConfirmEmailFunc != nil {
		return m.ConfirmEmailFunc(ctx, emailToken)
	}
	return usecase.ErrInvalidCredentials
}

func (m *mockAuthUsecase) RequestConfirmation(ctx context.Context, email string) error {
	if m.RequestConfirmationFunc != nil {
		return m.RequestConfirmationFunc(ctx, email)
	}
	return nil
}

func newTestRouter(uc AuthUsecase) *gin.Engine {
	h := NewAuthHandler(uc)
	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.GET("/refresh_token", h.Refresh)
	r.GET("/confirmed_email/:token", h.ConfirmEmail)
	r.POST("/request_email", h.RequestEmail)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    gin.H
		mockSignupFunc func(ctx context.Context, username, email, password string) (*entity.User, error)
		expectedStatus int
	}{
		{
			name:           "success: user registration",
			requestBody:    gin.H{"username": "alice", "email": "test@example.com", "password": "password123"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"username": "alice", "email": "invalid-email", "password": "password123"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"username": "alice", "email": "test@example.com", "password": "short"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: missing username",
			requestBody:    gin.H{"email": "test@example.com", "password": "password123"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "failure: duplicate email",
			requestBody: gin.H{"username": "alice", "email": "existing@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, username, email, password string) (*entity.User, error) {
				return nil, usecase.ErrEmailAlreadyExists
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "failure: internal error",
			requestBody: gin.H{"username": "alice", "email": "test@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, username, email, password string) (*entity.User, error) {
				return nil, errors.New("database down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&mockAuthUsecase{SignupFunc: tt.mockSignupFunc})

			w := postJSON(t, r, "/signup", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandler_Signup_ResponseOmitsCredentials(t *testing.T) {
	r := newTestRouter(&mockAuthUsecase{
		SignupFunc: func(ctx context.Context, username, email, password string) (*entity.User, error) {
			return &entity.User{
				ID:       1,
				Username: username,
				Email:    email,
				Password: "$2a$10$secret",
				Avatar:   "https://www.gravatar.com/avatar/abc",
			}, nil
		},
	})

	w := postJSON(t, r, "/signup", gin.H{"username": "alice", "email": "a@x.com", "password": "password123"})

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "a@x.com", body["email"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "refresh_token")
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    gin.H
		mockLoginFunc  func(ctx context.Context, email, password string) (*usecase.TokenPair, error)
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "success: returns token pair",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockLoginFunc: func(ctx context.Context, email, password string) (*usecase.TokenPair, error) {
				return &usecase.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "failure: invalid request body",
			requestBody:    gin.H{"email": "not-an-email", "password": "password123"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
		{
			name:        "failure: bad credentials",
			requestBody: gin.H{"email": "test@example.com", "password": "wrong"},
			mockLoginFunc: func(ctx context.Context, email, password string) (*usecase.TokenPair, error) {
				return nil, usecase.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "invalid email or password",
		},
		{
			name:        "failure: unconfirmed email",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockLoginFunc: func(ctx context.Context, email, password string) (*usecase.TokenPair, error) {
				return nil, usecase.ErrEmailNotConfirmed
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "email not confirmed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&mockAuthUsecase{LoginFunc: tt.mockLoginFunc})

			w := postJSON(t, r, "/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body["error"])
			}
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"access_token":"at","refresh_token":"rt","token_type":"bearer"}`, w.Body.String())
			}
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := newTestRouter(&mockAuthUsecase{
			RefreshFunc: func(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
				assert.Equal(t, "old-refresh", refreshToken)
				return &usecase.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/refresh_token", nil)
		req.Header.Set("Authorization", "Bearer old-refresh")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"access_token":"new-access","refresh_token":"new-refresh","token_type":"bearer"}`, w.Body.String())
	})

	t.Run("missing bearer header", func(t *testing.T) {
		r := newTestRouter(&mockAuthUsecase{})

		req := httptest.NewRequest(http.MethodGet, "/refresh_token", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		r := newTestRouter(&mockAuthUsecase{
			RefreshFunc: func(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
				return nil, usecase.ErrRevokedToken
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/refresh_token", nil)
		req.Header.Set("Authorization", "Bearer stale-refresh")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid refresh token"}`, w.Body.String())
	})
}

func TestAuthHandler_ConfirmEmail(t *testing.T) {
	tests := []struct {
		name           string
		confirmErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			confirmErr:     nil,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"email confirmed"}`,
		},
		{
			name:           "already confirmed",
			confirmErr:     usecase.ErrAlreadyConfirmed,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"your email is already confirmed"}`,
		},
		{
			name:           "bad token",
			confirmErr:     usecase.ErrInvalidCredentials,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"verification error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&mockAuthUsecase{
				ConfirmEmailFunc: func(ctx context.Context, emailToken string) error {
					assert.Equal(t, "tok-123", emailToken)
					return tt.confirmErr
				},
			})

			req := httptest.NewRequest(http.MethodGet, "/confirmed_email/tok-123", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAuthHandler_RequestEmail(t *testing.T) {
	t.Run("neutral response for unknown address", func(t *testing.T) {
		r := newTestRouter(&mockAuthUsecase{})

		w := postJSON(t, r, "/request_email", gin.H{"email": "ghost@example.com"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"check your email for confirmation"}`, w.Body.String())
	})

	t.Run("already confirmed", func(t *testing.T) {
		r := newTestRouter(&mockAuthUsecase{
			RequestConfirmationFunc: func(ctx context.Context, email string) error {
				return usecase.ErrAlreadyConfirmed
			},
		})

		w := postJSON(t, r, "/request_email", gin.H{"email": "a@x.com"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"your email is already confirmed"}`, w.Body.String())
	})

	t.Run("invalid body", func(t *testing.T) {
		r := newTestRouter(&mockAuthUsecase{})

		w := postJSON(t, r, "/request_email", gin.H{"email": "nope"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
