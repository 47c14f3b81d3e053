package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sacmovies/campus-booking/internal/handler"
)

// RegisterPublic registers the unauthenticated browse endpoints.  These
// are the cacheable surface: movie and show catalogs plus the per-show
// seat map guests inspect before registering.  The response cache is
// applied here and nowhere else, so authenticated, per-user replies
// never land in Redis.
func RegisterPublic(e *echo.Echo, cat *handler.CatalogHandler, seats *handler.SeatHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	g.GET("/movies", cat.ListMovies)
	g.GET("/movies/:id", cat.GetMovie)
	g.GET("/shows", cat.ListShows)
	g.GET("/shows/:id", cat.GetShow)
	g.GET("/shows/:id/seats", seats.GetSeatMap)
}
