package postgres

import (
	"context"

	"habitat/internal/domain/entity"
	"habitat/internal/domain/repository"
	"habitat/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// catalogRepository implements the domain.CatalogRepository interface using GORM.
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository is the constructor for catalogRepository.
func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

// ListGenres retrieves every genre ordered by name.
func (repo *catalogRepository) ListGenres(ctx context.Context) ([]*entity.Genre, error) {
	var genres []model.GenreModel
	if err := repo.db.WithContext(ctx).Order("name").Find(&genres).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list genres")
	}

	result := make([]*entity.Genre, 0, len(genres))
	for _, genre := range genres {
		result = append(result, &entity.Genre{ID: genre.ID, Name: genre.Name})
	}

	return result, nil
}

// ListFormats retrieves every format ordered by name.
func (repo *catalogRepository) ListFormats(ctx context.Context) ([]*entity.Format, error) {
	var formats []model.FormatModel
	if err := repo.db.WithContext(ctx).Order("name").Find(&formats).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list formats")
	}

	result := make([]*entity.Format, 0, len(formats))
	for _, format := range formats {
		result = append(result, &entity.Format{ID: format.ID, Name: format.Name})
	}

	return result, nil
}

// ListLanguages retrieves every language ordered by name.
func (repo *catalogRepository) ListLanguages(ctx context.Context) ([]*entity.Language, error) {
	var languages []model.LanguageModel
	if err := repo.db.WithContext(ctx).Order("name").Find(&languages).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list languages")
	}

	result := make([]*entity.Language, 0, len(languages))
	for _, language := range languages {
		result = append(result, &entity.Language{ID: language.ID, Name: language.Name})
	}

	return result, nil
}

// ListRatingsByMovie retrieves all ratings attached to a movie, newest first.
func (repo *catalogRepository) ListRatingsByMovie(ctx context.Context, movieID int64) ([]*entity.Rating, error) {
	var ratings []model.RatingModel
	err := repo.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings")
	}

	result := make([]*entity.Rating, 0, len(ratings))
	for _, rating := range ratings {
		result = append(result, &entity.Rating{
			ID:        rating.ID,
			MovieID:   rating.MovieID,
			Username:  rating.Username,
			Score:     rating.Score,
			Review:    rating.Review,
			CreatedAt: rating.CreatedAt,
		})
	}

	return result, nil
}

// FindGenresByIDs resolves a set of genre ids. Callers compare result length
// against input length to detect unknown references.
func (repo *catalogRepository) FindGenresByIDs(ctx context.Context, ids []int64) ([]entity.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var genres []model.GenreModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&genres).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find genres by ids")
	}

	result := make([]entity.Genre, 0, len(genres))
	for _, genre := range genres {
		result = append(result, entity.Genre{ID: genre.ID, Name: genre.Name})
	}

	return result, nil
}

// FindFormatsByIDs resolves a set of format ids.
func (repo *catalogRepository) FindFormatsByIDs(ctx context.Context, ids []int64) ([]entity.Format, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var formats []model.FormatModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&formats).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find formats by ids")
	}

	result := make([]entity.Format, 0, len(formats))
	for _, format := range formats {
		result = append(result, entity.Format{ID: format.ID, Name: format.Name})
	}

	return result, nil
}

// FindLanguagesByIDs resolves a set of language ids.
func (repo *catalogRepository) FindLanguagesByIDs(ctx context.Context, ids []int64) ([]entity.Language, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var languages []model.LanguageModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&languages).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find languages by ids")
	}

	result := make([]entity.Language, 0, len(languages))
	for _, language := range languages {
		result = append(result, entity.Language{ID: language.ID, Name: language.Name})
	}

	return result, nil
}
