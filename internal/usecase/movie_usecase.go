package usecase

import (
	"context"
	"time"

	"habitat/internal/domain/entity"
)

// SaveMovieInput defines the data required to add or update a movie.
// Classification links are supplied as lookup-table ids and validated
// against the catalog before anything is persisted.
type SaveMovieInput struct {
	Name            string    `validate:"required,min=1,max=255"`
	Description     string    `validate:"max=4000"`
	DurationMinutes int       `validate:"gte=0,lte=600"`
	Certificate     string    `validate:"max=20"`
	ReleaseDate     time.Time `validate:"required"`
	AvgRating       float64   `validate:"gte=0,lte=10"`
	Poster          string    `validate:"omitempty,url"`
	GenreIDs        []int64   `validate:"required,min=1,dive,gt=0"`
	FormatIDs       []int64   `validate:"required,min=1,dive,gt=0"`
	LanguageIDs     []int64   `validate:"required,min=1,dive,gt=0"`
}

// MovieUsecase defines the interface for catalog read and mutation
// operations. Reads go through the cache; mutations write the store first
// and evict the affected cache entries before returning.
type MovieUsecase interface {
	// GetAll retrieves the full movie listing.
	GetAll(ctx context.Context) ([]*entity.Movie, error)

	// GetByID retrieves a single movie.
	GetByID(ctx context.Context, id int64) (*entity.Movie, error)

	// GetByGenre retrieves movies classified under the named genre.
	GetByGenre(ctx context.Context, genreName string) ([]*entity.Movie, error)

	// GetByFormat retrieves movies available in the named format.
	GetByFormat(ctx context.Context, formatName string) ([]*entity.Movie, error)

	// GetByLanguage retrieves movies available in the named language.
	GetByLanguage(ctx context.Context, languageName string) ([]*entity.Movie, error)

	// Add creates a new movie.
	Add(ctx context.Context, input *SaveMovieInput) (*entity.Movie, error)

	// Update replaces an existing movie's fields and classification links.
	Update(ctx context.Context, id int64, input *SaveMovieInput) (*entity.Movie, error)

	// Delete removes a movie.
	Delete(ctx context.Context, id int64) error
}
