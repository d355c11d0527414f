package repository

import (
	"context"
	"errors"

	"habitat/internal/domain/entity"
)

// ErrMovieNotFound is returned when a movie lookup finds no row.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepository defines the standard operations for catalog persistence.
type MovieRepository interface {
	// FindAll retrieves every movie with its genres, formats and languages.
	FindAll(ctx context.Context) ([]*entity.Movie, error)

	// FindByID retrieves a single movie by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)

	// FindByGenre retrieves movies classified under the named genre.
	FindByGenre(ctx context.Context, genreName string) ([]*entity.Movie, error)

	// FindByFormat retrieves movies available in the named format.
	FindByFormat(ctx context.Context, formatName string) ([]*entity.Movie, error)

	// FindByLanguage retrieves movies available in the named language.
	FindByLanguage(ctx context.Context, languageName string) ([]*entity.Movie, error)

	// Create persists a new movie with its classification links.
	Create(ctx context.Context, movie *entity.Movie) error

	// Update modifies an existing movie and replaces its classification links.
	Update(ctx context.Context, movie *entity.Movie) error

	// ExistsByID reports whether a movie with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// DeleteByID removes the movie with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}
