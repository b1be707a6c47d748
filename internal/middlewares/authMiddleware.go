package middlewares

import (
	"context"
	"net/http"
	"strings"

	"jobdesk/internal/models"
	"jobdesk/internal/services"
	"jobdesk/internal/utils"
)

type contextKey string

const actorIDKey contextKey = "actorID"

// WithActorID stores the authenticated actor id on the context.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

// ActorIDFromContext retrieves the actor id set by RequireRole.
func ActorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(actorIDKey).(string)
	return id, ok
}

// RequireRole guards a route group with a session token for the given role.
// Challenge tokens are rejected: holding one only proves a pending OTP
// exchange, not a completed login.
func RequireRole(tokens services.TokenService, role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.SendJSONError(w, "Unauthorized. Token missing.", http.StatusUnauthorized)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				utils.SendJSONError(w, "Invalid token format", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				utils.SendJSONError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			if claims.Role != string(role) || claims.IsChallenge() {
				utils.SendJSONError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActorID(r.Context(), claims.ID)))
		})
	}
}
