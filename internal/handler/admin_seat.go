package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sacmovies/campus-booking/internal/seatmap"
)

type damageReq struct {
	IsDamaged *bool `json:"is_damaged"`
}

// SetSeatDamage handles PUT /v1/admin/seats/:label/damage.  The label
// addresses the physical auditorium seat; the flag fans out to the same
// label in every show's layout, skipping booked seats on damage and
// resetting only damaged ones on repair.  The response reports how many
// show seats were touched.
func (h *AdminHandler) SetSeatDamage(c echo.Context) error {
	label := strings.ToUpper(strings.TrimSpace(c.Param("label")))
	if !seatmap.ValidLabel(label) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat label"})
	}
	var req damageReq
	if err := c.Bind(&req); err != nil || req.IsDamaged == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_damaged required"})
	}
	affected, err := h.Seats.SetDamage(c.Request().Context(), label, *req.IsDamaged)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update damage registry"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"label":          label,
		"is_damaged":     *req.IsDamaged,
		"affected_seats": affected,
	})
}

// ListDamagedSeats handles GET /v1/admin/seats/damaged and returns the
// damage registry.
func (h *AdminHandler) ListDamagedSeats(c echo.Context) error {
	seats, err := h.Seats.ListGlobal(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load damage registry"})
	}
	type entry struct {
		Label     string `json:"label"`
		IsDamaged bool   `json:"is_damaged"`
	}
	items := make([]entry, 0, len(seats))
	for _, s := range seats {
		items = append(items, entry{Label: s.Label, IsDamaged: s.IsDamaged})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
