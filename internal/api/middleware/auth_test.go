package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/freshtrack/freshtrack/internal/api/middleware"
	"github.com/freshtrack/freshtrack/internal/service"
	"github.com/freshtrack/freshtrack/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuth(t *testing.T) {
	cfg := testutil.TestConfig()
	// Token verification needs no storage
	authService := service.NewAuthService(nil, nil, nil, cfg)

	userID := uuid.New()
	validToken := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "guard@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})
	expiredToken := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "guard@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
		"iat":   time.Now().Add(-2 * time.Hour).Unix(),
	})
	wrongKeyToken := signToken(t, "some-other-secret", jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		wantIdentity   bool
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer " + validToken,
			expectedStatus: http.StatusOK,
			wantIdentity:   true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + expiredToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong signing key",
			authHeader:     "Bearer " + wrongKeyToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer garbage",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID uuid.UUID
			var gotEmail string
			var called bool

			handler := middleware.Auth(authService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotID, _ = middleware.GetUserID(r.Context())
				gotEmail, _ = middleware.GetUserEmail(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.wantIdentity {
				require.True(t, called)
				assert.Equal(t, userID, gotID)
				assert.Equal(t, "guard@example.com", gotEmail)
			} else {
				assert.False(t, called)
			}
		})
	}
}
