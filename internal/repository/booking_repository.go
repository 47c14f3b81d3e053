package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Booking status values.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking records a student's claim on seats for a show.  Reference is a
// UUID handed to the client so tickets can be identified without exposing
// row ids.  Seats holds the claimed labels (the current product rule
// allows exactly one).  ExpiresAt is stored for a future expiry sweep;
// nothing enforces it yet.
type Booking struct {
	ID          uint64
	Reference   string
	UserID      uint64
	ShowID      uint64
	Status      string
	AmountCents uint32
	Seats       []string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// ErrBookingNotFound is returned when a booking lookup yields no rows.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides persistence for bookings and their seat labels.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for transaction control.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// HasConfirmedTx reports whether the user already holds a confirmed
// booking for the show.  Runs inside the booking transaction so the check
// and the insert see the same state.
func (r *BookingRepo) HasConfirmedTx(ctx context.Context, tx *sql.Tx, userID, showID uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM bookings WHERE user_id = ? AND show_id = ? AND status = 'confirmed' LIMIT 1`,
		userID, showID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateTx inserts a booking and its seat labels within the caller's
// transaction.  The generated ID is written back; CreatedAt/ExpiresAt
// must already be set by the caller.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *Booking) error {
	const q = `INSERT INTO bookings (reference, user_id, show_id, status, amount_cents, created_at, expires_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.Reference, b.UserID, b.ShowID, b.Status, b.AmountCents, b.CreatedAt, b.ExpiresAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	if len(b.Seats) == 0 {
		return nil
	}
	query := `INSERT INTO booking_seats (booking_id, show_id, seat_label) VALUES `
	args := make([]any, 0, len(b.Seats)*3)
	for i, label := range b.Seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, b.ID, b.ShowID, label)
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

const bookingCols = `id, reference, user_id, show_id, status, amount_cents, created_at, expires_at`

func scanBooking(row interface{ Scan(...any) error }, b *Booking) error {
	return row.Scan(&b.ID, &b.Reference, &b.UserID, &b.ShowID, &b.Status, &b.AmountCents, &b.CreatedAt, &b.ExpiresAt)
}

// GetByID loads a single booking with its seat labels.  Ownership is the
// handler's concern; this returns any booking.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
	var b Booking
	if err := scanBooking(r.db.QueryRowContext(ctx, q, id), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if err := r.attachSeats(ctx, []*Booking{&b}); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByUser returns all bookings of one user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

// ListAll returns every booking, newest first.  Admin reporting only.
func (r *BookingRepo) ListAll(ctx context.Context) ([]Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Booking
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	ptrs := make([]*Booking, len(result))
	for i := range result {
		ptrs[i] = &result[i]
	}
	if err := r.attachSeats(ctx, ptrs); err != nil {
		return nil, err
	}
	return result, nil
}

// attachSeats populates Seats for all given bookings in one query.
func (r *BookingRepo) attachSeats(ctx context.Context, bookings []*Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	index := make(map[uint64]*Booking, len(bookings))
	ids := make([]any, 0, len(bookings))
	placeholders := make([]string, 0, len(bookings))
	for _, b := range bookings {
		b.Seats = []string{}
		index[b.ID] = b
		ids = append(ids, b.ID)
		placeholders = append(placeholders, "?")
	}
	q := `SELECT booking_id, seat_label FROM booking_seats
	      WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY booking_id, seat_label`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var bid uint64
		var label string
		if err := rows.Scan(&bid, &label); err != nil {
			return err
		}
		if b, ok := index[bid]; ok {
			b.Seats = append(b.Seats, label)
		}
	}
	return rows.Err()
}

// Stats aggregates the numbers the admin report shows.
type Stats struct {
	TotalBookings     int    `json:"total_bookings"`
	ConfirmedBookings int    `json:"confirmed_bookings"`
	TotalRevenueCents uint64 `json:"total_revenue_cents"`
}

// GetStats computes booking totals and confirmed revenue.
func (r *BookingRepo) GetStats(ctx context.Context) (Stats, error) {
	var s Stats
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&s.TotalBookings); err != nil {
		return s, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE status = 'confirmed'`).Scan(&s.ConfirmedBookings); err != nil {
		return s, err
	}
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM bookings WHERE status = 'confirmed'`).Scan(&s.TotalRevenueCents)
	return s, err
}
