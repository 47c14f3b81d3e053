package handler

import "github.com/sacmovies/campus-booking/internal/repository"

// AdminHandler bundles repositories for administrators to manage the
// catalog, the damage registry and reporting.  JWT authentication and
// the admin role check are performed by middleware.
type AdminHandler struct {
	Movies   *repository.MovieRepo
	Shows    *repository.ShowRepo
	Seats    *repository.SeatRepo
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
}

// NewAdminHandler constructs an AdminHandler and panics if any
// dependency is nil.
func NewAdminHandler(movies *repository.MovieRepo, shows *repository.ShowRepo, seats *repository.SeatRepo, bookings *repository.BookingRepo, users *repository.UserRepo) *AdminHandler {
	if movies == nil || shows == nil || seats == nil || bookings == nil || users == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Movies: movies, Shows: shows, Seats: seats, Bookings: bookings, Users: users}
}
