package repository

import (
	"context"

	domainrepo "habitat/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockRepositoryFactory is a testify mock for repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

func (m *MockRepositoryFactory) UserRepo() domainrepo.UserRepository {
	args := m.Called()

	return args.Get(0).(domainrepo.UserRepository)
}

func (m *MockRepositoryFactory) MovieRepo() domainrepo.MovieRepository {
	args := m.Called()

	return args.Get(0).(domainrepo.MovieRepository)
}

// StubTransactionManager runs the transactional function against a fixed
// factory without any real transaction. It lets usecase tests observe the
// repository calls made inside Execute.
type StubTransactionManager struct {
	Factory domainrepo.RepositoryFactory

	// Err, when set, is returned without invoking the function.
	Err error
}

func (s *StubTransactionManager) Execute(_ context.Context, fn func(domainrepo.RepositoryFactory) error) error {
	if s.Err != nil {
		return s.Err
	}

	return fn(s.Factory)
}

// StubRepositoryFactory hands out fixed repository instances.
type StubRepositoryFactory struct {
	UserRepository  domainrepo.UserRepository
	MovieRepository domainrepo.MovieRepository
}

func (s *StubRepositoryFactory) UserRepo() domainrepo.UserRepository {
	return s.UserRepository
}

func (s *StubRepositoryFactory) MovieRepo() domainrepo.MovieRepository {
	return s.MovieRepository
}
