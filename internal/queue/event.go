// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// committed. It carries enough context for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   uint64   `json:"booking_id"`
	Reference   string   `json:"reference"`
	UserID      uint64   `json:"user_id"`
	ShowID      uint64   `json:"show_id"`
	MovieTitle  string   `json:"movie_title"`
	TheaterName string   `json:"theater_name"`
	Category    string   `json:"category"`
	StartsAt    string   `json:"starts_at"`
	SeatLabels  []string `json:"seats"`
	AmountCents uint32   `json:"amount_cents"`
	ConfirmedAt string   `json:"confirmed_at"`
}
