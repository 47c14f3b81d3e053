package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ListBookings handles GET /v1/admin/bookings and returns every booking
// in the system, newest first.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	bookings, err := h.Bookings.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	type row struct {
		bookingPart
		UserID uint64 `json:"user_id"`
	}
	items := make([]row, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, row{bookingPart: toBookingPart(b), UserID: b.UserID})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load users"})
	}
	type row struct {
		ID         uint64    `json:"id"`
		Email      string    `json:"email"`
		Name       string    `json:"name"`
		Role       string    `json:"role"`
		Gender     string    `json:"gender"`
		IsVerified bool      `json:"is_verified"`
		CreatedAt  time.Time `json:"created_at"`
	}
	items := make([]row, 0, len(users))
	for _, u := range users {
		items = append(items, row{
			ID:         u.ID,
			Email:      u.Email,
			Name:       u.Name,
			Role:       u.Role,
			Gender:     u.Gender,
			IsVerified: u.IsVerified,
			CreatedAt:  u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetReports handles GET /v1/admin/reports with booking totals and
// confirmed revenue.
func (h *AdminHandler) GetReports(c echo.Context) error {
	stats, err := h.Bookings.GetStats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute reports"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reports": stats})
}
