package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"games_catalog/internal/models"
	"games_catalog/internal/services"
)

type Authenticator interface {
	Authenticate(username, password string) (*models.User, error)
}

type AuthMiddleware struct {
	auth Authenticator
	log  *slog.Logger
}

func NewAuthMiddleware(auth Authenticator, log *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, log: log}
}

type contextKey string

const UsernameKey = contextKey("username")

func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UsernameKey).(string)
	return name, ok && name != ""
}

// RequireUser authenticates the request with HTTP basic auth and stores the
// username in the request context.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "middleware.auth.RequireUser"

		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="games"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := m.auth.Authenticate(username, password)
		if err != nil {
			if errors.Is(err, services.ErrAuthentication) {
				w.Header().Set("WWW-Authenticate", `Basic realm="games"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			m.log.Error("authentication failed",
				slog.String("operation", op),
				slog.String("error", err.Error()))
			http.Error(w, "authentication failed", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), UsernameKey, user.Username())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
