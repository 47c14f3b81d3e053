package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sacmovies/campus-booking/internal/repository"
)

// CatalogHandler serves the public movie and show listings.  No
// authentication is required; responses are cache candidates.
type CatalogHandler struct {
	Movies *repository.MovieRepo
	Shows  *repository.ShowRepo
}

func NewCatalogHandler(m *repository.MovieRepo, s *repository.ShowRepo) *CatalogHandler {
	if m == nil || s == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Movies: m, Shows: s}
}

type moviePart struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PosterURL   string `json:"poster_url"`
	Duration    string `json:"duration"`
	Genre       string `json:"genre"`
	Language    string `json:"language"`
}

type showPart struct {
	ID          uint64    `json:"id"`
	MovieID     uint64    `json:"movie_id"`
	StartsAt    time.Time `json:"starts_at"`
	PriceCents  uint32    `json:"price_cents"`
	TheaterName string    `json:"theater_name"`
	Category    string    `json:"category"`
	BookedSeats uint32    `json:"booked_seats"`
	TotalSeats  uint32    `json:"total_seats"`
}

func toMoviePart(m repository.Movie) moviePart {
	return moviePart{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		PosterURL:   m.PosterURL,
		Duration:    m.Duration,
		Genre:       m.Genre,
		Language:    m.Language,
	}
}

func toShowPart(s repository.Show) showPart {
	return showPart{
		ID:          s.ID,
		MovieID:     s.MovieID,
		StartsAt:    s.StartsAt,
		PriceCents:  s.PriceCents,
		TheaterName: s.TheaterName,
		Category:    s.Category,
		BookedSeats: s.BookedSeats,
		TotalSeats:  s.TotalSeats,
	}
}

// ListMovies handles GET /v1/movies.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
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

// GetMovie handles GET /v1/movies/:id.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movie"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toMoviePart(*m)})
}

// ListShows handles GET /v1/shows.  An optional movie_id query filters
// shows to one movie.
func (h *CatalogHandler) ListShows(c echo.Context) error {
	var movieID uint64
	if raw := c.QueryParam("movie_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie_id"})
		}
		movieID = id
	}
	shows, err := h.Shows.List(c.Request().Context(), movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load shows"})
	}
	items := make([]showPart, 0, len(shows))
	for _, s := range shows {
		items = append(items, toShowPart(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetShow handles GET /v1/shows/:id.
func (h *CatalogHandler) GetShow(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	s, err := h.Shows.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load show"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toShowPart(*s)})
}
