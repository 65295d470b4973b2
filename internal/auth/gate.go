package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"ProductAPI/pkg/kit"
)

const (
	ProtectedPrefix = "/products"

	signInRequiredMsg = "You need to sign in before continuing"
)

func RequiresAuth(path string) bool {
	return strings.HasPrefix(path, ProtectedPrefix)
}

// Allowed is the gate predicate: unprotected paths always pass, protected
// ones need an authenticated session.
func Allowed(path string, s Session) bool {
	return !RequiresAuth(path) || s.Authenticated()
}

// Gate rejects protected requests without a signed-in session. It expects
// LoadSession to have run first.
func Gate(log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Allowed(r.URL.Path, SessionFromContext(r.Context())) {
				next.ServeHTTP(w, r)
				return
			}

			log.Warn("unauthorized access attempt",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			kit.WriteError(w, http.StatusUnauthorized, signInRequiredMsg)
		})
	}
}
