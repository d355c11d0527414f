package repository

import (
	"context"

	"habitat/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository is a testify mock for repository.CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListGenres(ctx context.Context) ([]*entity.Genre, error) {
	args := m.Called(ctx)
	if genres, ok := args.Get(0).([]*entity.Genre); ok {
		return genres, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCatalogRepository) ListFormats(ctx context.Context) ([]*entity.Format, error) {
	args := m.Called(ctx)
	if formats, ok := args.Get(0).([]*entity.Format); ok {
		return formats, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCatalogRepository) ListLanguages(ctx context.Context) ([]*entity.Language, error) {
	args := m.Called(ctx)
	if languages, ok := args.Get(0).([]*entity.Language); ok {
		return languages, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCatalogRepository) ListRatingsByMovie(ctx context.Context, movieID int64) ([]*entity.Rating, error) {
	args := m.Called(ctx, movieID)
	if ratings, ok := args.Get(0).([]*entity.Rating); ok {
		return ratings, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCatalogRepository) FindGenresByIDs(ctx context.Context, ids []int64) ([]entity.Genre, error) {
	args := m.Called(ctx, ids)
	if genres, ok := args.Get(0).([]entity.Genre); ok {
		return genres, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCatalogRepository) FindFormatsByIDs(ctx context.Context, ids []int64) ([]entity.Format, error) {
	args := m.Called(ctx, ids)
	if formats, ok := args.Get(0).([]entity.Format); ok {
		return formats, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCatalogRepository) FindLanguagesByIDs(ctx context.Context, ids []int64) ([]entity.Language, error) {
	args := m.Called(ctx, ids)
	if languages, ok := args.Get(0).([]entity.Language); ok {
		return languages, args.Error(1)
	}

	return nil, args.Error(1)
}
