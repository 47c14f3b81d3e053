package repository // repository defines data access for per-show seats and the damage registry

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sacmovies/campus-booking/internal/seatmap"
)

// Seat is one bookable unit scoped to a single show.  Seats are generated
// per show from the auditorium layout; Label is unique within a show.
type Seat struct {
	ID       uint64
	ShowID   uint64
	Label    string // e.g. G15
	Row      string
	Number   int
	Status   string // available | booked | damaged | unavailable
	BookedBy *uint64
}

// GlobalSeat is the cross-show damage record for one physical auditorium
// seat, keyed by label.  It has no foreign keys: per-show seats pick the
// flag up at generation time and the fan-out update applies it to
// existing shows.
type GlobalSeat struct {
	ID        uint64
	Label     string
	IsDamaged bool
}

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

const seatCols = `id, show_id, seat_label, row_label, seat_number, status, booked_by`

func scanSeat(row interface{ Scan(...any) error }, s *Seat) error {
	var bookedBy sql.NullInt64
	if err := row.Scan(&s.ID, &s.ShowID, &s.Label, &s.Row, &s.Number, &s.Status, &bookedBy); err != nil {
		return err
	}
	if bookedBy.Valid {
		v := uint64(bookedBy.Int64)
		s.BookedBy = &v
	}
	return nil
}

// ListByShow retrieves all seats of a show ordered by row then number.
func (r *SeatRepo) ListByShow(ctx context.Context, showID uint64) ([]Seat, error) {
	const q = `SELECT ` + seatCols + ` FROM seats
	           WHERE show_id = ?
	           ORDER BY row_label, seat_number`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Seat
	for rows.Next() {
		var s Seat
		if err := scanSeat(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// EnsureForShow materializes the seat layout for a show when none exists
// yet.  The whole check-then-generate runs in one transaction holding a
// row lock on the show, so two concurrent first reads cannot both
// generate.  Returns true when this call created the layout and
// ErrShowNotFound when the show does not exist.
func (r *SeatRepo) EnsureForShow(ctx context.Context, showID uint64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var got uint64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM shows WHERE id = ? FOR UPDATE`, showID).Scan(&got); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrShowNotFound
		}
		return false, err
	}

	var cnt int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM seats WHERE show_id = ?`, showID).Scan(&cnt); err != nil {
		return false, err
	}
	if cnt > 0 {
		if err := tx.Commit(); err != nil {
			return false, err
		}
		committed = true
		return false, nil
	}

	damaged, err := damagedLabelsTx(ctx, tx)
	if err != nil {
		return false, err
	}
	if err := insertSeatsTx(ctx, tx, showID, seatmap.Generate(damaged)); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return true, nil
}

func damagedLabelsTx(ctx context.Context, tx *sql.Tx) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, `SELECT seat_label FROM global_seats WHERE is_damaged = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	damaged := map[string]bool{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		damaged[label] = true
	}
	return damaged, rows.Err()
}

func insertSeatsTx(ctx context.Context, tx *sql.Tx, showID uint64, seats []seatmap.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (show_id, seat_label, row_label, seat_number, status) VALUES `
	args := make([]any, 0, len(seats)*5)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, showID, s.Label, s.Row, s.Number, s.Status)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByShowAndLabelsTx loads the seats of a show matching the requested
// labels inside a transaction.  Labels with no row are simply absent from
// the result; the caller decides how to report them.
func (r *SeatRepo) GetByShowAndLabelsTx(ctx context.Context, tx *sql.Tx, showID uint64, labels []string) ([]Seat, error) {
	if len(labels) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(labels)), ",")
	q := `SELECT ` + seatCols + ` FROM seats WHERE show_id = ? AND seat_label IN (` + placeholders + `)`
	args := make([]any, 0, len(labels)+1)
	args = append(args, showID)
	for _, l := range labels {
		args = append(args, l)
	}
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Seat
	for rows.Next() {
		var s Seat
		if err := scanSeat(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// BookTx is the atomic admission gate: it flips the requested seats from
// available to booked in a single conditional UPDATE and reports how many
// rows actually changed.  When the count is short of len(labels), another
// booking got there first (or a seat is damaged/unavailable) and the
// caller must reject the request.  Nothing else in the flow decides seat
// ownership.
func (r *SeatRepo) BookTx(ctx context.Context, tx *sql.Tx, showID, userID uint64, labels []string) (int64, error) {
	if len(labels) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(labels)), ",")
	q := `UPDATE seats SET status = 'booked', booked_by = ?
	      WHERE show_id = ? AND seat_label IN (` + placeholders + `) AND status = 'available'`
	args := make([]any, 0, len(labels)+2)
	args = append(args, userID, showID)
	for _, l := range labels {
		args = append(args, l)
	}
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SetDamage upserts the global damage registry for a label and fans the
// change out to every show's copy of that seat.  Marking damaged touches
// seats not currently booked; repairing only touches seats currently
// damaged, leaving booked and unavailable seats alone.  Returns the
// number of per-show seats updated so admins can see the blast radius.
func (r *SeatRepo) SetDamage(ctx context.Context, label string, isDamaged bool) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const upsert = `INSERT INTO global_seats (seat_label, is_damaged) VALUES (?, ?)
	                ON DUPLICATE KEY UPDATE is_damaged = VALUES(is_damaged)`
	if _, err := tx.ExecContext(ctx, upsert, label, isDamaged); err != nil {
		return 0, err
	}

	var res sql.Result
	if isDamaged {
		res, err = tx.ExecContext(ctx,
			`UPDATE seats SET status = 'damaged' WHERE seat_label = ? AND status <> 'booked'`, label)
	} else {
		res, err = tx.ExecContext(ctx,
			`UPDATE seats SET status = 'available' WHERE seat_label = ? AND status = 'damaged'`, label)
	}
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return affected, nil
}

// ListGlobal returns the damage registry ordered by label.
func (r *SeatRepo) ListGlobal(ctx context.Context) ([]GlobalSeat, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, seat_label, is_damaged FROM global_seats ORDER BY seat_label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []GlobalSeat
	for rows.Next() {
		var g GlobalSeat
		if err := rows.Scan(&g.ID, &g.Label, &g.IsDamaged); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}
