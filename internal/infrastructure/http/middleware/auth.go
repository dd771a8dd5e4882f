package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
)

// AuthValidator resolves the bearer token to a live user and sets the
// Principal in the request context (see PrincipalFromContext). Every failure
// kind — missing header, malformed token, bad signature, expiry, subject no
// longer existing — collapses into the same 401 body so the response never
// reveals which check failed.
type AuthValidator struct {
	issuer ports.TokenIssuer
	users  ports.UserRepository
}

func NewAuthValidator(issuer ports.TokenIssuer, users ports.UserRepository) *AuthValidator {
	return &AuthValidator{issuer: issuer, users: users}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeUnauthenticated(w)
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		subject, err := m.issuer.Verify(tokenString)
		if err != nil {
			writeUnauthenticated(w)
			return
		}
		userID, err := domain.ParseUserID(subject)
		if err != nil {
			writeUnauthenticated(w)
			return
		}
		// tokens are stateless, so a deleted account still carries a valid
		// signature until expiry; the store is the source of truth that the
		// subject still denotes a live account
		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil || user == nil {
			writeUnauthenticated(w)
			return
		}
		ctx := WithPrincipal(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "could not validate credentials",
		"code":  "unauthorized",
	})
}
