package ports

import (
	"context"

	"github.com/fastfix/marketplace-api/internal/core/domain"
)

// AccountRepository defines the persistence interface for accounts.
// Accounts are never deleted; no delete method exists.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// ListWorkers returns every worker account. Ordering and skill filtering
	// are the directory service's responsibility.
	ListWorkers(ctx context.Context) ([]*domain.Account, error)
	// Update applies the non-nil fields of in to the stored account and
	// returns the updated record. Email and Role are never written.
	Update(ctx context.Context, id string, in ProfileUpdate) (*domain.Account, error)
}
