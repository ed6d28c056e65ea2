package transport

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/repository"
)

type principalKey struct{}

// PrincipalFromContext returns the request principal, if present.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(auth.Principal)
	return principal, ok
}

// HashToken hashes a bearer token for storage and lookup.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// AccountGate resolves bearer tokens against provisioned accounts.
type AccountGate struct {
	accounts repository.AccountRepository
}

// NewAccountGate creates a token-to-principal resolver.
func NewAccountGate(accounts repository.AccountRepository) *AccountGate {
	return &AccountGate{accounts: accounts}
}

// Resolve implements auth.Gate.
func (g *AccountGate) Resolve(ctx context.Context, token string) (auth.Principal, error) {
	hash := HashToken(token)
	acct, err := g.accounts.GetByTokenHash(ctx, hash)
	if err != nil {
		return auth.Principal{}, auth.ErrUnauthorized
	}
	_ = g.accounts.TouchLastUsed(ctx, hash)
	return acct.Principal(), nil
}

// AuthMiddleware enforces bearer token authentication and stores the
// resolved principal on the request context.
func AuthMiddleware(gate auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			principal, err := gate.Resolve(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
