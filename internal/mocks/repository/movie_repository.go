package repository

import (
	"context"

	"habitat/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockMovieRepository is a testify mock for repository.MovieRepository.
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	args := m.Called(ctx)
	if movies, ok := args.Get(0).([]*entity.Movie); ok {
		return movies, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMovieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	if movie, ok := args.Get(0).(*entity.Movie); ok {
		return movie, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMovieRepository) FindByGenre(ctx context.Context, genreName string) ([]*entity.Movie, error) {
	args := m.Called(ctx, genreName)
	if movies, ok := args.Get(0).([]*entity.Movie); ok {
		return movies, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMovieRepository) FindByFormat(ctx context.Context, formatName string) ([]*entity.Movie, error) {
	args := m.Called(ctx, formatName)
	if movies, ok := args.Get(0).([]*entity.Movie); ok {
		return movies, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMovieRepository) FindByLanguage(ctx context.Context, languageName string) ([]*entity.Movie, error) {
	args := m.Called(ctx, languageName)
	if movies, ok := args.Get(0).([]*entity.Movie); ok {
		return movies, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	args := m.Called(ctx, movie)

	return args.Error(0)
}

func (m *MockMovieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	args := m.Called(ctx, movie)

	return args.Error(0)
}

func (m *MockMovieRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)

	return args.Bool(0), args.Error(1)
}

func (m *MockMovieRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
