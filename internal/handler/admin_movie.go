package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sacmovies/campus-booking/internal/repository"
)

type movieReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PosterURL   string `json:"poster_url"`
	Duration    string `json:"duration"`
	Genre       string `json:"genre"`
	Language    string `json:"language"`
}

// ListMovies handles GET /v1/admin/movies.  Same catalog as the public
// listing but served behind auth so it bypasses the response cache.
func (h *AdminHandler) ListMovies(c echo.Context) error {
	movies, err := h.Movies.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movies"})
	}
	items := make([]moviePart, 0, len(movies))
	for _, m := range movies {
		items = append(items, toMoviePart(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateMovie handles POST /v1/admin/movies.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	m := &repository.Movie{
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		PosterURL:   strings.TrimSpace(req.PosterURL),
		Duration:    strings.TrimSpace(req.Duration),
		Genre:       strings.TrimSpace(req.Genre),
		Language:    strings.TrimSpace(req.Language),
	}
	if err := h.Movies.Create(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create movie"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toMoviePart(*m)})
}

// UpdateMovie handles PUT /v1/admin/movies/:id.
func (h *AdminHandler) UpdateMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	m := &repository.Movie{
		ID:          id,
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		PosterURL:   strings.TrimSpace(req.PosterURL),
		Duration:    strings.TrimSpace(req.Duration),
		Genre:       strings.TrimSpace(req.Genre),
		Language:    strings.TrimSpace(req.Language),
	}
	if err := h.Movies.Update(c.Request().Context(), m); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update movie"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toMoviePart(*m)})
}

// DeleteMovie handles DELETE /v1/admin/movies/:id.  A movie still
// referenced by shows cannot be removed.
func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		switch err {
		case repository.ErrMovieNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie has scheduled shows"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete movie"})
	}
	return c.NoContent(http.StatusNoContent)
}
