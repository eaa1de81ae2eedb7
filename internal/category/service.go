package category

import (
	"log/slog"

	"github.com/ardiputra/expense-portal/internal"
	"github.com/ardiputra/expense-portal/internal/health"
)

type RepositoryAPI interface {
	GetCategories() ([]*Category, error)
}

type SampleData interface {
	Categories() []*Category
}

type Service struct {
	repo   RepositoryAPI
	sample SampleData
	health *health.State
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, sample SampleData, state *health.State, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		sample: sample,
		health: state,
		logger: logger,
	}
}

// ListCategories returns every category with its active flag; consumers
// building creation flows are expected to skip inactive entries.
func (s *Service) ListCategories() ([]*Category, bool, error) {
	if !s.health.Connected() {
		return s.sample.Categories(), true, nil
	}
	categories, err := s.repo.GetCategories()
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, false, internal.NewInternalError("failed to list categories", err)
	}
	return categories, false, nil
}
