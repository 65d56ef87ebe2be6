package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fastfix/marketplace-api/internal/core/domain"
	"github.com/fastfix/marketplace-api/internal/core/ports"
)

// DirectoryService provides the read-only view over worker accounts.
// Ordering (rating descending, stable) and skill matching live in the domain
// package so the rules are defined exactly once.
type DirectoryService struct {
	repo   ports.AccountRepository
	logger zerolog.Logger
}

func NewDirectoryService(repo ports.AccountRepository, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, logger: logger}
}

func (s *DirectoryService) ListWorkers(ctx context.Context) ([]*domain.Account, error) {
	workers, err := s.repo.ListWorkers(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list workers")
		return nil, err
	}
	return s.present(workers), nil
}

func (s *DirectoryService) ListWorkersBySkill(ctx context.Context, tag string) ([]*domain.Account, error) {
	workers, err := s.repo.ListWorkers(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("skill", tag).Msg("failed to list workers by skill")
		return nil, err
	}

	matched := make([]*domain.Account, 0, len(workers))
	for _, w := range workers {
		if w.MatchesSkill(tag) {
			matched = append(matched, w)
		}
	}
	return s.present(matched), nil
}

func (s *DirectoryService) GetWorkerByID(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.IsWorker() {
		return nil, domain.ErrAccountNotFound
	}
	return account.Sanitized(), nil
}

func (s *DirectoryService) present(workers []*domain.Account) []*domain.Account {
	domain.SortByRating(workers)
	out := make([]*domain.Account, len(workers))
	for i, w := range workers {
		out[i] = w.Sanitized()
	}
	return out
}
