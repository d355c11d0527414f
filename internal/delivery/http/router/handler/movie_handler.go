package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"habitat/internal/delivery/http/response"
	"habitat/internal/domain/entity"
	"habitat/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MovieHandler holds dependencies for catalog read and mutation handlers.
type MovieHandler struct {
	uc     usecase.MovieUsecase
	logger *slog.Logger
}

// NewMovieHandler is the constructor for MovieHandler, injected by Fx.
func NewMovieHandler(uc usecase.MovieUsecase, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{uc: uc, logger: logger}
}

type saveMovieRequest struct {
	Name            string  `json:"name" validate:"required,min=1,max=255"`
	Description     string  `json:"description" validate:"max=4000"`
	DurationMinutes int     `json:"duration_minutes" validate:"gte=0,lte=600"`
	Certificate     string  `json:"certificate" validate:"max=20"`
	ReleaseDate     string  `json:"release_date" validate:"required"`
	AvgRating       float64 `json:"avg_rating" validate:"gte=0,lte=10"`
	Poster          string  `json:"poster" validate:"omitempty,url"`
	GenreIDs        []int64 `json:"genre_ids" validate:"required,min=1,dive,gt=0"`
	FormatIDs       []int64 `json:"format_ids" validate:"required,min=1,dive,gt=0"`
	LanguageIDs     []int64 `json:"language_ids" validate:"required,min=1,dive,gt=0"`
}

func (r *saveMovieRequest) toInput() (*usecase.SaveMovieInput, error) {
	releaseDate, err := time.Parse("2006-01-02", r.ReleaseDate)
	if err != nil {
		return nil, errors.Wrap(err, "release_date must be YYYY-MM-DD")
	}

	return &usecase.SaveMovieInput{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Certificate:     r.Certificate,
		ReleaseDate:     releaseDate,
		AvgRating:       r.AvgRating,
		Poster:          r.Poster,
		GenreIDs:        r.GenreIDs,
		FormatIDs:       r.FormatIDs,
		LanguageIDs:     r.LanguageIDs,
	}, nil
}

type movieResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes"`
	Certificate     string   `json:"certificate"`
	ReleaseDate     string   `json:"release_date"`
	AvgRating       float64  `json:"avg_rating"`
	Poster          string   `json:"poster"`
	Genres          []string `json:"genres"`
	Formats         []string `json:"formats"`
	Languages       []string `json:"languages"`
	RatingCount     int      `json:"rating_count"`
}

// GetAll handles the full listing request.
func (h *MovieHandler) GetAll(c echo.Context) error {
	movies, err := h.uc.GetAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toMovieResponses(movies), "")
}

// GetByID handles the single-movie request.
func (h *MovieHandler) GetByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid movie id")
	}

	movie, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toMovieResponse(movie), "")
}

// GetByGenre handles the genre-filtered listing request.
func (h *MovieHandler) GetByGenre(c echo.Context) error {
	movies, err := h.uc.GetByGenre(c.Request().Context(), c.Param("name"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toMovieResponses(movies), "")
}

// GetByFormat handles the format-filtered listing request.
func (h *MovieHandler) GetByFormat(c echo.Context) error {
	movies, err := h.uc.GetByFormat(c.Request().Context(), c.Param("name"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toMovieResponses(movies), "")
}

// GetByLanguage handles the language-filtered listing request.
func (h *MovieHandler) GetByLanguage(c echo.Context) error {
	movies, err := h.uc.GetByLanguage(c.Request().Context(), c.Param("name"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toMovieResponses(movies), "")
}

// Add handles the movie creation request.
func (h *MovieHandler) Add(c echo.Context) error {
	var req saveMovieRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid movie input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", err.Error())
	}

	movie, err := h.uc.Add(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toMovieResponse(movie), "Movie added successfully")
}

// Update handles the movie update request.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid movie id")
	}

	var req saveMovieRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid movie input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", err.Error())
	}

	movie, err := h.uc.Update(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toMovieResponse(movie), "Movie updated successfully")
}

// Delete handles the movie deletion request.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid movie id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Movie deleted successfully")
}

func parseIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func toMovieResponse(movie *entity.Movie) movieResponse {
	resp := movieResponse{
		ID:              movie.ID,
		Name:            movie.Name,
		Description:     movie.Description,
		DurationMinutes: movie.DurationMinutes,
		Certificate:     movie.Certificate,
		ReleaseDate:     movie.ReleaseDate.Format("2006-01-02"),
		AvgRating:       movie.AvgRating,
		Poster:          movie.Poster,
		Genres:          make([]string, 0, len(movie.Genres)),
		Formats:         make([]string, 0, len(movie.Formats)),
		Languages:       make([]string, 0, len(movie.Languages)),
		RatingCount:     len(movie.Ratings),
	}

	for _, genre := range movie.Genres {
		resp.Genres = append(resp.Genres, genre.Name)
	}
	for _, format := range movie.Formats {
		resp.Formats = append(resp.Formats, format.Name)
	}
	for _, language := range movie.Languages {
		resp.Languages = append(resp.Languages, language.Name)
	}

	return resp
}

func toMovieResponses(movies []*entity.Movie) []movieResponse {
	responses := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		responses = append(responses, toMovieResponse(movie))
	}

	return responses
}
