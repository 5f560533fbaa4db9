package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"dueshub-backend/internal/logger"
	"dueshub-backend/internal/security"
)

type contextKey string

const (
	actorIDKey   contextKey = "actorID"
	requestIDKey contextKey = "requestID"
)

// ActorID returns the authenticated user ID stored by the auth middleware.
func ActorID(ctx context.Context) int32 {
	if id, ok := ctx.Value(actorIDKey).(int32); ok {
		return id
	}
	return 0
}

func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestIDMiddleware tags each request with a generated ID, echoed back
// in the X-Request-ID header for correlation.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthMiddleware validates the Bearer token and stores the actor ID in
// the request context. Requests without a valid token are rejected.
func AuthMiddleware(validator security.TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
				return
			}
			claims, err := validator.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.Warn("Token validation failed", "error", err, "request_id", RequestID(r.Context()))
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
				return
			}
			ctx := context.WithValue(r.Context(), actorIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
