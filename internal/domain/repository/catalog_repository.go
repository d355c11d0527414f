package repository

import (
	"context"

	"habitat/internal/domain/entity"
)

// CatalogRepository provides read access to the classification lookup tables
// and per-movie ratings. These are plain list/lookup queries with no caching.
type CatalogRepository interface {
	// ListGenres retrieves every genre.
	ListGenres(ctx context.Context) ([]*entity.Genre, error)

	// ListFormats retrieves every format.
	ListFormats(ctx context.Context) ([]*entity.Format, error)

	// ListLanguages retrieves every language.
	ListLanguages(ctx context.Context) ([]*entity.Language, error)

	// ListRatingsByMovie retrieves all ratings attached to a movie.
	ListRatingsByMovie(ctx context.Context, movieID int64) ([]*entity.Rating, error)

	// FindGenresByIDs resolves a set of genre ids, in input order.
	// Returns ErrMovieNotFound-style absence through a short result slice.
	FindGenresByIDs(ctx context.Context, ids []int64) ([]entity.Genre, error)

	// FindFormatsByIDs resolves a set of format ids.
	FindFormatsByIDs(ctx context.Context, ids []int64) ([]entity.Format, error)

	// FindLanguagesByIDs resolves a set of language ids.
	FindLanguagesByIDs(ctx context.Context, ids []int64) ([]entity.Language, error)
}
