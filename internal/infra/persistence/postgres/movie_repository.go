package postgres

import (
	"context"

	"habitat/internal/domain/entity"
	domainerrors "habitat/internal/domain/errors"
	"habitat/internal/domain/repository"
	"habitat/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// movieRepository implements the domain.MovieRepository interface using GORM.
type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository is the constructor for movieRepository.
func NewMovieRepository(db *gorm.DB) repository.MovieRepository {
	return &movieRepository{db: db}
}

// withAssociations preloads the classification links and ratings that make up
// a fully hydrated movie.
func (repo *movieRepository) withAssociations(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Genres").
		Preload("Formats").
		Preload("Languages").
		Preload("Ratings")
}

// FindAll retrieves every movie with its classification links.
func (repo *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	var movies []model.MovieModel
	if err := repo.withAssociations(ctx).Order("movies.id").Find(&movies).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list movies")
	}

	return toMovieDomainList(movies), nil
}

// FindByID retrieves a single movie by its unique ID.
func (repo *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	var movieM model.MovieModel
	if err := repo.withAssociations(ctx).First(&movieM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMovieNotFound
		}

		return nil, errors.Wrap(err, "failed to find movie by id")
	}

	return toMovieDomain(&movieM), nil
}

// FindByGenre retrieves movies classified under the named genre.
func (repo *movieRepository) FindByGenre(ctx context.Context, genreName string) ([]*entity.Movie, error) {
	return repo.findByClassification(ctx, "movie_genres", "genre_model_id", "genres", genreName)
}

// FindByFormat retrieves movies available in the named format.
func (repo *movieRepository) FindByFormat(ctx context.Context, formatName string) ([]*entity.Movie, error) {
	return repo.findByClassification(ctx, "movie_formats", "format_model_id", "formats", formatName)
}

// FindByLanguage retrieves movies available in the named language.
func (repo *movieRepository) FindByLanguage(ctx context.Context, languageName string) ([]*entity.Movie, error) {
	return repo.findByClassification(ctx, "movie_languages", "language_model_id", "languages", languageName)
}

// findByClassification runs a case-insensitive lookup through one of the
// many-to-many join tables. Unknown names yield an empty slice, not an error.
func (repo *movieRepository) findByClassification(
	ctx context.Context,
	joinTable, joinColumn, lookupTable, name string,
) ([]*entity.Movie, error) {
	var movies []model.MovieModel
	err := repo.withAssociations(ctx).
		Joins("JOIN "+joinTable+" ON "+joinTable+".movie_model_id = movies.id").
		Joins("JOIN "+lookupTable+" ON "+lookupTable+".id = "+joinTable+"."+joinColumn).
		Where("LOWER("+lookupTable+".name) = LOWER(?)", name).
		Order("movies.id").
		Find(&movies).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list movies by %s", lookupTable)
	}

	return toMovieDomainList(movies), nil
}

// Create persists a new movie with its classification links. The lookup rows
// themselves must already exist; GORM only writes the join-table entries.
func (repo *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	movieM := fromMovieDomain(movie)

	err := repo.db.WithContext(ctx).
		Omit("Genres.*", "Formats.*", "Languages.*").
		Create(movieM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidReference.WrapMessage("failed to create movie")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create movie")
	}

	movie.ID = movieM.ID

	return nil
}

// Update modifies an existing movie and replaces its classification links.
func (repo *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	movieM := fromMovieDomain(movie)

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres", "Formats", "Languages", "Ratings").Save(movieM).Error; err != nil {
			return err
		}

		if err := tx.Model(movieM).Association("Genres").Replace(movieM.Genres); err != nil {
			return err
		}
		if err := tx.Model(movieM).Association("Formats").Replace(movieM.Formats); err != nil {
			return err
		}

		return tx.Model(movieM).Association("Languages").Replace(movieM.Languages)
	})
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidReference.WrapMessage("failed to update movie")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update movie")
	}

	return nil
}

// ExistsByID reports whether a movie with the given ID exists.
func (repo *movieRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.MovieModel{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check movie existence")
	}

	return count > 0, nil
}

// DeleteByID removes the movie with the given ID together with its
// classification links and ratings.
func (repo *movieRepository) DeleteByID(ctx context.Context, id int64) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		movieM := model.MovieModel{ID: id}

		if err := tx.Model(&movieM).Association("Genres").Clear(); err != nil {
			return errors.Wrap(err, "failed to clear movie genres")
		}
		if err := tx.Model(&movieM).Association("Formats").Clear(); err != nil {
			return errors.Wrap(err, "failed to clear movie formats")
		}
		if err := tx.Model(&movieM).Association("Languages").Clear(); err != nil {
			return errors.Wrap(err, "failed to clear movie languages")
		}

		if err := tx.Where("movie_id = ?", id).Delete(&model.RatingModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete movie ratings")
		}

		result := tx.Delete(&model.MovieModel{}, id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete movie")
		}
		if result.RowsAffected == 0 {
			return repository.ErrMovieNotFound
		}

		return nil
	})
}

// --- Mapper Functions ---

func toMovieDomain(data *model.MovieModel) *entity.Movie {
	if data == nil {
		return nil
	}

	movie := &entity.Movie{
		ID:              data.ID,
		Name:            data.Name,
		Description:     data.Description,
		DurationMinutes: data.DurationMinutes,
		Certificate:     data.Certificate,
		ReleaseDate:     data.ReleaseDate,
		AvgRating:       data.AvgRating,
		Poster:          data.Poster,
		Genres:          make([]entity.Genre, 0, len(data.Genres)),
		Formats:         make([]entity.Format, 0, len(data.Formats)),
		Languages:       make([]entity.Language, 0, len(data.Languages)),
		Ratings:         make([]entity.Rating, 0, len(data.Ratings)),
	}

	for _, genre := range data.Genres {
		movie.Genres = append(movie.Genres, entity.Genre{ID: genre.ID, Name: genre.Name})
	}
	for _, format := range data.Formats {
		movie.Formats = append(movie.Formats, entity.Format{ID: format.ID, Name: format.Name})
	}
	for _, language := range data.Languages {
		movie.Languages = append(movie.Languages, entity.Language{ID: language.ID, Name: language.Name})
	}
	for _, rating := range data.Ratings {
		movie.Ratings = append(movie.Ratings, entity.Rating{
			ID:        rating.ID,
			MovieID:   rating.MovieID,
			Username:  rating.Username,
			Score:     rating.Score,
			Review:    rating.Review,
			CreatedAt: rating.CreatedAt,
		})
	}

	return movie
}

func toMovieDomainList(data []model.MovieModel) []*entity.Movie {
	movies := make([]*entity.Movie, 0, len(data))
	for i := range data {
		movies = append(movies, toMovieDomain(&data[i]))
	}

	return movies
}

func fromMovieDomain(data *entity.Movie) *model.MovieModel {
	if data == nil {
		return nil
	}

	movieM := &model.MovieModel{
		ID:              data.ID,
		Name:            data.Name,
		Description:     data.Description,
		DurationMinutes: data.DurationMinutes,
		Certificate:     data.Certificate,
		ReleaseDate:     data.ReleaseDate,
		AvgRating:       data.AvgRating,
		Poster:          data.Poster,
		Genres:          make([]model.GenreModel, 0, len(data.Genres)),
		Formats:         make([]model.FormatModel, 0, len(data.Formats)),
		Languages:       make([]model.LanguageModel, 0, len(data.Languages)),
	}

	for _, genre := range data.Genres {
		movieM.Genres = append(movieM.Genres, model.GenreModel{ID: genre.ID, Name: genre.Name})
	}
	for _, format := range data.Formats {
		movieM.Formats = append(movieM.Formats, model.FormatModel{ID: format.ID, Name: format.Name})
	}
	for _, language := range data.Languages {
		movieM.Languages = append(movieM.Languages, model.LanguageModel{ID: language.ID, Name: language.Name})
	}

	return movieM
}
