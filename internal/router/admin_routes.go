package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sacmovies/campus-booking/internal/handler"
	"github.com/sacmovies/campus-booking/internal/middleware"
	"github.com/sacmovies/campus-booking/internal/repository"
)

// RegisterAdmin registers catalog management, the damage registry and
// reporting under /v1/admin.  Every route requires the admin role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(repository.RoleAdmin),
	)

	g.GET("/movies", h.ListMovies)
	g.POST("/movies", h.CreateMovie)
	g.PUT("/movies/:id", h.UpdateMovie)
	g.DELETE("/movies/:id", h.DeleteMovie)

	g.GET("/shows", h.ListShows)
	g.POST("/shows", h.CreateShow)
	g.PUT("/shows/:id", h.UpdateShow)
	g.DELETE("/shows/:id", h.DeleteShow)

	g.PUT("/seats/:label/damage", h.SetSeatDamage)
	g.GET("/seats/damaged", h.ListDamagedSeats)

	g.GET("/bookings", h.ListBookings)
	g.GET("/users", h.ListUsers)
	g.GET("/reports", h.GetReports)
}
