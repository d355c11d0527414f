package usecase

import (
	"context"

	"habitat/internal/domain/entity"
)

// CatalogUsecase defines the interface for classification lookups and
// per-movie ratings. These are small uncached reads.
type CatalogUsecase interface {
	// ListGenres retrieves every genre.
	ListGenres(ctx context.Context) ([]*entity.Genre, error)

	// ListFormats retrieves every format.
	ListFormats(ctx context.Context) ([]*entity.Format, error)

	// ListLanguages retrieves every language.
	ListLanguages(ctx context.Context) ([]*entity.Language, error)

	// ListRatingsByMovie retrieves all ratings attached to a movie.
	ListRatingsByMovie(ctx context.Context, movieID int64) ([]*entity.Rating, error)
}
