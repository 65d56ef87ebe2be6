package ports

import (
	"context"

	"github.com/fastfix/marketplace-api/internal/core/domain"
)

// DirectoryService is the read-only view over worker accounts.
type DirectoryService interface {
	ListWorkers(ctx context.Context) ([]*domain.Account, error)
	ListWorkersBySkill(ctx context.Context, tag string) ([]*domain.Account, error)
	GetWorkerByID(ctx context.Context, id string) (*domain.Account, error)
}
