package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/logger"
	"school-lending-backend/internal/security"
)

type contextKey string

const (
	ctxKeyUserID    contextKey = "user_id"
	ctxKeyRole      contextKey = "role"
	ctxKeyRequestID contextKey = "request_id"
)

// UserIDFromContext returns the authenticated user's ID, set by Authenticate.
func UserIDFromContext(ctx context.Context) (int32, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(int32)
	return id, ok
}

func RoleFromContext(ctx context.Context) (domain.UserRole, bool) {
	role, ok := ctx.Value(ctxKeyRole).(domain.UserRole)
	return role, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// RequestID assigns each request an ID, echoes it back and logs completion.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.WithRequest(requestID, r.Method, r.URL.Path).Info("request completed",
			"status", rec.status, "duration_ms", time.Since(start).Milliseconds())
	})
}

// Authenticate validates the bearer token and puts the caller's identity on
// the request context.
func Authenticate(tm security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization token is not provided"})
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := tm.ValidateToken(token)
			if err != nil {
				respondError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.UserID)
			ctx = context.WithValue(ctx, ctxKeyRole, domain.UserRole(claims.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route to the given roles. Admin always passes.
func RequireRole(roles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
				return
			}
			if role == domain.UserRoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient role"})
		})
	}
}
