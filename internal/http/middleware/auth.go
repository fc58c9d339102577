package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rogerio-castellano/stock-dashboard/internal/auth"
	"github.com/rogerio-castellano/stock-dashboard/internal/models"
)

type contextKey string

const principalKey = contextKey("principal")

// Authenticator resolves an Authorization header into a principal.
type Authenticator interface {
	Authenticate(header string) (auth.Principal, error)
}

// Authenticate rejects requests without a valid credential and stores the
// resolved principal in the request context.
func Authenticate(gate Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := gate.Authenticate(r.Header.Get("Authorization"))
			if err != nil {
				writeAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after Authenticate.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeAuthError(w, auth.ErrMissingCredential)
				return
			}
			if err := auth.Authorize(principal, role); err != nil {
				writeAuthError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(auth.Principal)
	return p, ok
}

// WithPrincipal is used by tests and internal callers to attach a principal.
func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func writeAuthError(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	message := "Unauthorized"

	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		status = http.StatusForbidden
		message = "No token provided"
	case errors.Is(err, auth.ErrInsufficientPrivilege):
		status = http.StatusForbidden
		message = "Require Admin Role!"
	}

	writeMessage(w, status, message)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": message}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
