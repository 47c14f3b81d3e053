package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Show represents a scheduled screening of a movie.  Category restricts
// the audience: "boys", "girls" or "all".  BookedSeats is the aggregate
// count maintained by the booking flow; TotalSeats is the auditorium
// capacity copied in at creation time.
type Show struct {
	ID          uint64
	MovieID     uint64
	StartsAt    time.Time
	PriceCents  uint32
	TheaterName string
	Category    string
	BookedSeats uint32
	TotalSeats  uint32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ErrShowNotFound indicates that a show was not located in the DB.
var ErrShowNotFound = errors.New("show not found")

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *ShowRepo) DB() *sql.DB {
	return r.db
}

const showCols = `id, movie_id, starts_at, price_cents, theater_name, category, booked_seats, total_seats, created_at, updated_at`

func scanShow(row interface{ Scan(...any) error }, s *Show) error {
	return row.Scan(&s.ID, &s.MovieID, &s.StartsAt, &s.PriceCents, &s.TheaterName, &s.Category,
		&s.BookedSeats, &s.TotalSeats, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a new show and assigns the generated ID back to the
// struct.  BookedSeats starts at zero and TotalSeats must be set by the
// caller (admin handlers pass the auditorium capacity).
func (r *ShowRepo) Create(ctx context.Context, s *Show) error {
	const q = `INSERT INTO shows (movie_id, starts_at, price_cents, theater_name, category, booked_seats, total_seats)
	           VALUES (?, ?, ?, ?, ?, 0, ?)`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.StartsAt, s.PriceCents, s.TheaterName, s.Category, s.TotalSeats)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT ` + showCols + ` FROM shows WHERE id = ?`
	return scanShow(r.db.QueryRowContext(ctx, sel, s.ID), s)
}

// GetByID retrieves a show by its ID.  Returns ErrShowNotFound when there
// is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*Show, error) {
	const q = `SELECT ` + showCols + ` FROM shows WHERE id = ?`
	var s Show
	if err := scanShow(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns shows ordered by start time.  A non-zero movieID narrows
// the result to that movie's screenings.
func (r *ShowRepo) List(ctx context.Context, movieID uint64) ([]Show, error) {
	q := `SELECT ` + showCols + ` FROM shows ORDER BY starts_at ASC`
	args := []any{}
	if movieID != 0 {
		q = `SELECT ` + showCols + ` FROM shows WHERE movie_id = ? ORDER BY starts_at ASC`
		args = append(args, movieID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Show
	for rows.Next() {
		var s Show
		if err := scanShow(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites the editable fields of a show.  The seat counters are
// deliberately excluded: BookedSeats belongs to the booking flow and
// TotalSeats is fixed at creation.
func (r *ShowRepo) Update(ctx context.Context, s *Show) error {
	const q = `UPDATE shows
	           SET movie_id = ?, starts_at = ?, price_cents = ?, theater_name = ?, category = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.StartsAt, s.PriceCents, s.TheaterName, s.Category, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM shows WHERE id = ? LIMIT 1`, s.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrShowNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a show together with its generated seats.  The deletion
// runs in a transaction and is refused with ErrConflict while confirmed
// bookings reference the show.
func (r *ShowRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM shows WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrShowNotFound
		}
		return err
	}

	var resCount int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE show_id = ? AND status = 'confirmed'`, id).Scan(&resCount); err != nil {
		return err
	}
	if resCount > 0 {
		err = ErrConflict
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM booking_seats WHERE show_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM bookings WHERE show_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM seats WHERE show_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}

// LockTx takes a row lock on the show inside the given transaction.  The
// booking flow uses it to serialize admissions on one show so the
// duplicate-booking probe cannot be raced.  Returns ErrShowNotFound when
// the show does not exist.
func (r *ShowRepo) LockTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	var got uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM shows WHERE id = ? FOR UPDATE`, id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrShowNotFound
	}
	return err
}

// IncrementBookedTx moves the aggregate booked-seat counter inside the
// booking transaction.
func (r *ShowRepo) IncrementBookedTx(ctx context.Context, tx *sql.Tx, id uint64, n int) error {
	_, err := tx.ExecContext(ctx, `UPDATE shows SET booked_seats = booked_seats + ? WHERE id = ?`, n, id)
	return err
}
