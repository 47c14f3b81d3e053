// Package seatmap describes the SAC auditorium seating plan.  Every show
// gets its own copy of this layout persisted as seat rows; the package only
// knows the geometry and the seeding rules.
package seatmap

import "strconv"

// Seat status values shared by the seats table and the API.
const (
	StatusAvailable   = "available"
	StatusBooked      = "booked"
	StatusDamaged     = "damaged"
	StatusUnavailable = "unavailable"
)

// Show audience categories.
const (
	CategoryBoys  = "boys"
	CategoryGirls = "girls"
	CategoryAll   = "all"
)

// Rows lists the auditorium rows front to back.  Rows A-L seat 38, rows
// M-R seat 34 (the centre cabin removes four seats).
var Rows = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R"}

// TotalSeats is the full capacity of the auditorium: 12*38 + 6*34.
const TotalSeats = 660

// cabinRow is the last row; it backs onto the projection cabin and is
// never sold.
const cabinRow = "R"

// SeatsForRow returns how many seats the given row has, or 0 for an
// unknown row.
func SeatsForRow(row string) int {
	switch row {
	case "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L":
		return 38
	case "M", "N", "O", "P", "Q", "R":
		return 34
	}
	return 0
}

// ValidLabel reports whether label names a seat that exists in the
// auditorium, e.g. "G15".  The row letter must be uppercase and the
// number within the row's range.
func ValidLabel(label string) bool {
	if len(label) < 2 {
		return false
	}
	row := label[:1]
	max := SeatsForRow(row)
	if max == 0 {
		return false
	}
	n, err := strconv.Atoi(label[1:])
	if err != nil {
		return false
	}
	return n >= 1 && n <= max
}

// Seat is one generated seat position.  Label is row+number ("G15").
type Seat struct {
	Label  string
	Row    string
	Number int
	Status string
}

// Generate produces the full auditorium layout.  Seats whose label appears
// in damaged are seeded with StatusDamaged; the cabin row is seeded
// StatusUnavailable regardless of damage state.
func Generate(damaged map[string]bool) []Seat {
	seats := make([]Seat, 0, TotalSeats)
	for _, row := range Rows {
		n := SeatsForRow(row)
		for i := 1; i <= n; i++ {
			label := row + strconv.Itoa(i)
			status := StatusAvailable
			switch {
			case row == cabinRow:
				status = StatusUnavailable
			case damaged[label]:
				status = StatusDamaged
			}
			seats = append(seats, Seat{Label: label, Row: row, Number: i, Status: status})
		}
	}
	return seats
}
