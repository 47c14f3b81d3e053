package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sacmovies/campus-booking/internal/repository"
	"github.com/sacmovies/campus-booking/internal/seatmap"
)

type showReq struct {
	MovieID     uint64 `json:"movie_id"`
	StartsAt    string `json:"starts_at"` // RFC3339
	PriceCents  uint32 `json:"price_cents"`
	TheaterName string `json:"theater_name"`
	Category    string `json:"category"` // boys | girls | all
}

func parseShowReq(c echo.Context) (*repository.Show, string) {
	var req showReq
	if err := c.Bind(&req); err != nil {
		return nil, "invalid body"
	}
	if req.MovieID == 0 {
		return nil, "movie_id required"
	}
	startsAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartsAt))
	if err != nil {
		return nil, "starts_at must be RFC3339"
	}
	req.TheaterName = strings.TrimSpace(req.TheaterName)
	if req.TheaterName == "" {
		return nil, "theater_name required"
	}
	category := strings.ToLower(strings.TrimSpace(req.Category))
	switch category {
	case seatmap.CategoryBoys, seatmap.CategoryGirls, seatmap.CategoryAll:
	case "":
		category = seatmap.CategoryAll
	default:
		return nil, "category must be boys, girls or all"
	}
	return &repository.Show{
		MovieID:     req.MovieID,
		StartsAt:    startsAt.UTC(),
		PriceCents:  req.PriceCents,
		TheaterName: req.TheaterName,
		Category:    category,
	}, ""
}

// ListShows handles GET /v1/admin/shows with the same optional movie_id
// filter as the public listing.
func (h *AdminHandler) ListShows(c echo.Context) error {
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

// CreateShow handles POST /v1/admin/shows.  Capacity always follows the
// standard hall template; seats themselves are materialized lazily on
// the first seat map request.
func (h *AdminHandler) CreateShow(c echo.Context) error {
	s, msg := parseShowReq(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, s.MovieID); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movie"})
	}
	s.TotalSeats = seatmap.TotalSeats
	if err := h.Shows.Create(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create show"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toShowPart(*s)})
}

// UpdateShow handles PUT /v1/admin/shows/:id.  Seat counters are
// managed by the booking flow and never touched here.
func (h *AdminHandler) UpdateShow(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	s, msg := parseShowReq(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, s.MovieID); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movie"})
	}
	s.ID = id
	if err := h.Shows.Update(ctx, s); err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update show"})
	}
	updated, err := h.Shows.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load show"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toShowPart(*updated)})
}

// DeleteShow handles DELETE /v1/admin/shows/:id.  Shows with confirmed
// bookings are refused; otherwise the show and its seats go together.
func (h *AdminHandler) DeleteShow(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	if err := h.Shows.Delete(c.Request().Context(), id); err != nil {
		switch err {
		case repository.ErrShowNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "show has confirmed bookings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete show"})
	}
	return c.NoContent(http.StatusNoContent)
}
