package handler

import (
	"log/slog"
	"net/http"

	"habitat/internal/delivery/http/response"
	"habitat/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for classification lookup handlers.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: logger}
}

// ListGenres handles the genre listing request.
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	genres, err := h.uc.ListGenres(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, genres, "")
}

// ListFormats handles the format listing request.
func (h *CatalogHandler) ListFormats(c echo.Context) error {
	formats, err := h.uc.ListFormats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, formats, "")
}

// ListLanguages handles the language listing request.
func (h *CatalogHandler) ListLanguages(c echo.Context) error {
	languages, err := h.uc.ListLanguages(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, languages, "")
}

// ListRatings handles the per-movie ratings request.
func (h *CatalogHandler) ListRatings(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid movie id")
	}

	ratings, err := h.uc.ListRatingsByMovie(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ratings, "")
}
