package auth

import (
	"context"
	"errors"
)

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the principal lacks the required role or ownership.
	ErrForbidden = errors.New("forbidden")
)

// Principal is the authenticated identity performing an operation.
type Principal struct {
	AccountID string
	Email     string
	Name      string
	Admin     bool
	system    bool
}

// System returns the internal principal used for transitions driven by the
// booking engine rather than by a request. It is never resolvable from a token.
func System() Principal {
	return Principal{system: true}
}

// IsSystem reports whether this is the internal system principal.
func (p Principal) IsSystem() bool {
	return p.system
}

// CanManage reports whether the principal may perform staff operations.
func (p Principal) CanManage() bool {
	return p.Admin || p.system
}

// CanActFor reports whether the principal may act on records owned by the
// given family account.
func (p Principal) CanActFor(accountID string) bool {
	return p.Admin || p.system || (p.AccountID != "" && p.AccountID == accountID)
}

// Gate resolves a bearer token to a principal.
type Gate interface {
	Resolve(ctx context.Context, token string) (Principal, error)
}
