package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sacmovies/campus-booking/internal/handler"
	"github.com/sacmovies/campus-booking/internal/middleware"
	"github.com/sacmovies/campus-booking/internal/repository"
)

// RegisterStudent registers the booking endpoints.  All routes require
// a valid JWT; admins may book as well and their bookings follow the
// same admission rules as everyone else's.
func RegisterStudent(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(repository.RoleStudent, repository.RoleAdmin),
	)
	g.POST("/bookings", h.Create)
	g.GET("/bookings", h.List)
	g.GET("/bookings/:id", h.Get)
}
