// Package repository implements data access for the booking service.
// Each table gets its own repo struct holding the shared *sql.DB;
// sentinel errors let handlers map failures to HTTP statuses without
// inspecting SQL errors.
package repository

import "errors"

// ErrConflict is returned when a write cannot be performed because of
// conflicting state, such as deleting a show that still has confirmed
// bookings. Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
