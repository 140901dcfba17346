package middleware

import (
	"net/http"
	"strings"

	"github.com/roamlog/roamlog/internal/ctxkeys"
	"github.com/roamlog/roamlog/internal/handler"
	"github.com/roamlog/roamlog/internal/service"
)

// AuthMiddleware verifies the bearer token once per request and threads the
// resulting identity through the context. Both delivery channels are
// accepted: the Authorization header and the auth cookie, header winning
// when both are present. Requests without a valid token simply continue
// unauthenticated; RequireAuth is the enforcement point.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := authService.VerifyJWT(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token, header channel first.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	cookie, err := r.Cookie(service.CookieName)
	if err == nil {
		return cookie.Value
	}

	return ""
}

// RequireAuth rejects requests that carry no verified identity. The
// rejection goes through the shared envelope writer so every error response
// has the one shape.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.UserID(r.Context()) == "" {
			handler.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	}
}
