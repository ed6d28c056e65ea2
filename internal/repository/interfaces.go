package repository

import (
	"context"

	"github.com/brookfield/admissions/internal/auth"
)

// AccountRepository manages provisioned accounts and token resolution. The
// domain packages declare their own store interfaces on the consuming side;
// accounts sit outside the domain layer, so the interface lives here.
type AccountRepository interface {
	Create(ctx context.Context, tokenHash string, account *auth.Account) error
	GetByID(ctx context.Context, id string) (*auth.Account, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*auth.Account, error)
	TouchLastUsed(ctx context.Context, tokenHash string) error
}
