// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sacmovies/campus-booking/internal/handler"
	"github.com/sacmovies/campus-booking/internal/middleware"
	"github.com/sacmovies/campus-booking/internal/repository"
)

// RegisterRoutes registers routes that carry no authentication at all.
// Currently only the health check used by probes and load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register, login
// and the refresh flows live under /v1/auth without a session; /v1/me
// requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout validates its own credentials so revocation works even
	// with an expired access token.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(repository.RoleStudent, repository.RoleAdmin),
	)
	auth.GET("/me", a.Me)
}
