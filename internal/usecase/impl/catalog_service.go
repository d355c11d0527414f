package impl

import (
	"context"
	"log/slog"

	deliverycontext "habitat/internal/delivery/context"
	"habitat/internal/domain/entity"
	domainerrors "habitat/internal/domain/errors"
	"habitat/internal/domain/repository"
	"habitat/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	movieRepo   repository.MovieRepository
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	CatalogRepo repository.CatalogRepository
	MovieRepo   repository.MovieRepository
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		catalogRepo: params.CatalogRepo,
		movieRepo:   params.MovieRepo,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListGenres retrieves every genre.
func (srv *catalogService) ListGenres(ctx context.Context) ([]*entity.Genre, error) {
	genres, err := srv.catalogRepo.ListGenres(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list genres")
	}

	return genres, nil
}

// ListFormats retrieves every format.
func (srv *catalogService) ListFormats(ctx context.Context) ([]*entity.Format, error) {
	formats, err := srv.catalogRepo.ListFormats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list formats")
	}

	return formats, nil
}

// ListLanguages retrieves every language.
func (srv *catalogService) ListLanguages(ctx context.Context) ([]*entity.Language, error) {
	languages, err := srv.catalogRepo.ListLanguages(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list languages")
	}

	return languages, nil
}

// ListRatingsByMovie retrieves all ratings attached to a movie. The movie
// must exist; an unknown id returns not-found rather than an empty list.
func (srv *catalogService) ListRatingsByMovie(ctx context.Context, movieID int64) ([]*entity.Rating, error) {
	exists, err := srv.movieRepo.ExistsByID(ctx, movieID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check movie existence")
	}
	if !exists {
		srv.log(ctx).Warn("Ratings requested for unknown movie", slog.Int64("movieID", movieID))

		return nil, domainerrors.ErrMovieNotFound.WrapMessage("failed to list ratings")
	}

	ratings, err := srv.catalogRepo.ListRatingsByMovie(ctx, movieID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings")
	}

	return ratings, nil
}
