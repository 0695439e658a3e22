package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/freshtrack/freshtrack/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	UserEmailKey contextKey = "userEmail"
)

// Auth rejects requests without a valid bearer token and exposes the
// authenticated identity to downstream handlers. Missing, malformed, invalid
// and expired tokens all produce the same 401.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.Auth] invalid authorization header format")
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			userIDStr, ok := (*claims)["sub"].(string)
			if !ok {
				log.Printf("ERROR [middleware.Auth] missing 'sub' claim in token")
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] failed to parse user ID: %v", err)
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			email, _ := (*claims)["email"].(string)

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, UserEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}
