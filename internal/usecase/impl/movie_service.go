package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"habitat/config"
	deliverycontext "habitat/internal/delivery/context"
	"habitat/internal/domain/entity"
	domainerrors "habitat/internal/domain/errors"
	"habitat/internal/domain/repository"
	"habitat/internal/domain/service"
	"habitat/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	// cacheKeyAllMovies holds the serialized full listing.
	cacheKeyAllMovies = "movies:all"

	// cacheKeyMoviePrefix prefixes per-movie snapshot keys.
	cacheKeyMoviePrefix = "movies:id:"

	// defaultCacheTTL applies when no TTL is configured. Entries expire as a
	// safety net; coherence comes from synchronous eviction, not expiry.
	defaultCacheTTL = 15 * time.Minute
)

// movieService implements the MovieUsecase interface with a read-through
// cache over the movie store. Mutations write the store first, then evict
// the affected cache entries before acknowledging the caller, so a read
// that follows a mutation response can never observe the pre-mutation state.
type movieService struct {
	movieRepo   repository.MovieRepository
	catalogRepo repository.CatalogRepository
	cache       service.Cache
	cacheTTL    time.Duration
	logger      *slog.Logger
}

// MovieServiceParams holds dependencies for movieService, injected by Fx.
type MovieServiceParams struct {
	fx.In

	MovieRepo   repository.MovieRepository
	CatalogRepo repository.CatalogRepository
	Cache       service.Cache
	Config      *config.Config
	Logger      *slog.Logger
}

// NewMovieService is the constructor for movieService.
func NewMovieService(params MovieServiceParams) usecase.MovieUsecase {
	cacheTTL := defaultCacheTTL
	if params.Config != nil && params.Config.Cache != nil && params.Config.Cache.TTL > 0 {
		cacheTTL = params.Config.Cache.TTL
	}

	return &movieService{
		movieRepo:   params.MovieRepo,
		catalogRepo: params.CatalogRepo,
		cache:       params.Cache,
		cacheTTL:    cacheTTL,
		logger:      params.Logger,
	}
}

func (srv *movieService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func movieCacheKey(id int64) string {
	return fmt.Sprintf("%s%d", cacheKeyMoviePrefix, id)
}

// GetAll retrieves the full movie listing through the cache.
func (srv *movieService) GetAll(ctx context.Context) ([]*entity.Movie, error) {
	cached, err := srv.cache.Get(ctx, cacheKeyAllMovies)
	if err == nil {
		var movies []*entity.Movie
		if unmarshalErr := json.Unmarshal(cached, &movies); unmarshalErr == nil {
			return movies, nil
		}
		// An unreadable snapshot falls through to the store and gets
		// rewritten below.
		srv.log(ctx).Warn("Discarding unreadable cache snapshot", slog.String("key", cacheKeyAllMovies))
	} else if !errors.Is(err, service.ErrCacheMiss) {
		// A cache outage degrades to store reads, it never fails the request.
		srv.log(ctx).Warn("Cache read failed", slog.String("key", cacheKeyAllMovies), slog.Any("error", err))
	}

	movies, err := srv.movieRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load movie listing")
	}

	srv.fillCache(ctx, cacheKeyAllMovies, movies)

	return movies, nil
}

// GetByID retrieves a single movie through the cache.
func (srv *movieService) GetByID(ctx context.Context, id int64) (*entity.Movie, error) {
	key := movieCacheKey(id)

	cached, err := srv.cache.Get(ctx, key)
	if err == nil {
		var movie entity.Movie
		if unmarshalErr := json.Unmarshal(cached, &movie); unmarshalErr == nil {
			return &movie, nil
		}
		srv.log(ctx).Warn("Discarding unreadable cache snapshot", slog.String("key", key))
	} else if !errors.Is(err, service.ErrCacheMiss) {
		srv.log(ctx).Warn("Cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	movie, err := srv.movieRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, domainerrors.ErrMovieNotFound.WrapMessage("failed to load movie")
		}

		return nil, errors.Wrap(err, "failed to load movie")
	}

	srv.fillCache(ctx, key, movie)

	return movie, nil
}

// GetByGenre retrieves movies classified under the named genre. Filtered
// listings are not cached; they hit the store directly.
func (srv *movieService) GetByGenre(ctx context.Context, genreName string) ([]*entity.Movie, error) {
	movies, err := srv.movieRepo.FindByGenre(ctx, genreName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list movies by genre")
	}

	return movies, nil
}

// GetByFormat retrieves movies available in the named format.
func (srv *movieService) GetByFormat(ctx context.Context, formatName string) ([]*entity.Movie, error) {
	movies, err := srv.movieRepo.FindByFormat(ctx, formatName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list movies by format")
	}

	return movies, nil
}

// GetByLanguage retrieves movies available in the named language.
func (srv *movieService) GetByLanguage(ctx context.Context, languageName string) ([]*entity.Movie, error) {
	movies, err := srv.movieRepo.FindByLanguage(ctx, languageName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list movies by language")
	}

	return movies, nil
}

// Add creates a new movie after resolving its classification references.
func (srv *movieService) Add(ctx context.Context, input *usecase.SaveMovieInput) (*entity.Movie, error) {
	srv.log(ctx).Info("Adding movie", slog.String("name", input.Name))

	movie, err := srv.buildMovie(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := srv.movieRepo.Create(ctx, movie); err != nil {
		return nil, errors.Wrap(err, "failed to create movie")
	}

	if err := srv.evict(ctx, cacheKeyAllMovies); err != nil {
		return nil, err
	}

	return movie, nil
}

// Update replaces an existing movie's fields and classification links.
func (srv *movieService) Update(ctx context.Context, id int64, input *usecase.SaveMovieInput) (*entity.Movie, error) {
	srv.log(ctx).Info("Updating movie", slog.Int64("movieID", id))

	exists, err := srv.movieRepo.ExistsByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check movie existence")
	}
	if !exists {
		return nil, domainerrors.ErrMovieNotFound.WrapMessage("failed to update movie")
	}

	movie, err := srv.buildMovie(ctx, input)
	if err != nil {
		return nil, err
	}
	movie.ID = id

	if err := srv.movieRepo.Update(ctx, movie); err != nil {
		return nil, errors.Wrap(err, "failed to update movie")
	}

	if err := srv.evict(ctx, cacheKeyAllMovies, movieCacheKey(id)); err != nil {
		return nil, err
	}

	return movie, nil
}

// Delete removes a movie.
func (srv *movieService) Delete(ctx context.Context, id int64) error {
	srv.log(ctx).Info("Deleting movie", slog.Int64("movieID", id))

	if err := srv.movieRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return domainerrors.ErrMovieNotFound.WrapMessage("failed to delete movie")
		}

		return errors.Wrap(err, "failed to delete movie")
	}

	return srv.evict(ctx, cacheKeyAllMovies, movieCacheKey(id))
}

// buildMovie assembles a movie entity from the input, resolving every
// classification id against the catalog. An unknown id rejects the whole
// mutation before anything is persisted.
func (srv *movieService) buildMovie(ctx context.Context, input *usecase.SaveMovieInput) (*entity.Movie, error) {
	genres, err := srv.catalogRepo.FindGenresByIDs(ctx, input.GenreIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve genre references")
	}
	if len(genres) != len(input.GenreIDs) {
		return nil, domainerrors.ErrInvalidReference.WrapMessage("unknown genre id")
	}

	formats, err := srv.catalogRepo.FindFormatsByIDs(ctx, input.FormatIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve format references")
	}
	if len(formats) != len(input.FormatIDs) {
		return nil, domainerrors.ErrInvalidReference.WrapMessage("unknown format id")
	}

	languages, err := srv.catalogRepo.FindLanguagesByIDs(ctx, input.LanguageIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve language references")
	}
	if len(languages) != len(input.LanguageIDs) {
		return nil, domainerrors.ErrInvalidReference.WrapMessage("unknown language id")
	}

	return &entity.Movie{
		Name:            input.Name,
		Description:     input.Description,
		DurationMinutes: input.DurationMinutes,
		Certificate:     input.Certificate,
		ReleaseDate:     input.ReleaseDate,
		AvgRating:       input.AvgRating,
		Poster:          input.Poster,
		Genres:          genres,
		Formats:         formats,
		Languages:       languages,
	}, nil
}

// fillCache stores a serialized snapshot, logging and moving on if the cache
// is unavailable.
func (srv *movieService) fillCache(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		srv.log(ctx).Warn("Failed to serialize cache snapshot", slog.String("key", key), slog.Any("error", err))

		return
	}

	if err := srv.cache.Set(ctx, key, payload, srv.cacheTTL); err != nil {
		srv.log(ctx).Warn("Cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// evict removes cache entries after the store write and before the caller is
// acknowledged. A failed eviction fails the mutation: the row is persisted,
// but the caller must not be told the write completed cleanly while a stale
// snapshot may still be served.
func (srv *movieService) evict(ctx context.Context, keys ...string) error {
	if err := srv.cache.Delete(ctx, keys...); err != nil {
		srv.log(ctx).Error("Cache eviction failed after store write",
			slog.Any("keys", keys), slog.Any("error", err))

		return errors.Wrap(err, "failed to evict cache after mutation")
	}

	return nil
}
