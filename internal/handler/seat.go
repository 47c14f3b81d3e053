package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sacmovies/campus-booking/internal/repository"
	"github.com/sacmovies/campus-booking/internal/seatmap"
)

// SeatHandler serves the public seat map for a show.  The first request
// for a show materializes its layout from the standard hall template
// and the damage registry.
type SeatHandler struct {
	Shows *repository.ShowRepo
	Seats *repository.SeatRepo
}

func NewSeatHandler(shows *repository.ShowRepo, seats *repository.SeatRepo) *SeatHandler {
	if shows == nil || seats == nil {
		panic("nil repository passed to NewSeatHandler")
	}
	return &SeatHandler{Shows: shows, Seats: seats}
}

type seatPart struct {
	Label  string `json:"label"`
	Number int    `json:"number"`
	Status string `json:"status"`
}

type rowPart struct {
	Row   string     `json:"row"`
	Seats []seatPart `json:"seats"`
}

// GetSeatMap handles GET /v1/shows/:id/seats.  Seats are grouped by row
// in hall order, each row sorted by seat number.
func (h *SeatHandler) GetSeatMap(c echo.Context) error {
	showID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Seats.EnsureForShow(ctx, showID); err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to prepare seat map"})
	}
	seats, err := h.Seats.ListByShow(ctx, showID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}

	byRow := make(map[string][]seatPart, len(seatmap.Rows))
	for _, s := range seats {
		byRow[s.Row] = append(byRow[s.Row], seatPart{Label: s.Label, Number: s.Number, Status: s.Status})
	}
	rows := make([]rowPart, 0, len(seatmap.Rows))
	for _, r := range seatmap.Rows {
		if parts, ok := byRow[r]; ok {
			rows = append(rows, rowPart{Row: r, Seats: parts})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"show_id": showID,
		"rows":    rows,
	})
}
