package user

import (
	"log/slog"

	"github.com/ardiputra/expense-portal/internal"
	"github.com/ardiputra/expense-portal/internal/health"
)

type RepositoryAPI interface {
	GetUsers() ([]*User, error)
	GetUserByID(id int64) (*User, error)
}

type SampleData interface {
	Users() []*User
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

func (s *Service) ListUsers() ([]*User, bool, error) {
	if !s.health.Connected() {
		return s.sample.Users(), true, nil
	}
	users, err := s.repo.GetUsers()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, false, internal.NewInternalError("failed to list users", err)
	}
	return users, false, nil
}

// GetUserByID is a store-only read; the sample set mirrors list reads only.
func (s *Service) GetUserByID(id int64) (*User, error) {
	if !s.health.Connected() {
		return nil, internal.ErrStoreUnavailable
	}
	u, err := s.repo.GetUserByID(id)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to get user", err)
	}
	return u, nil
}
