package repository // repository defines data access for the movie catalogue

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Movie represents a film shown on campus.  Duration is stored as display
// text (e.g. "2h 14m") rather than minutes; it is never computed with.
type Movie struct {
	ID          uint64
	Title       string
	PosterURL   string
	Description string
	Duration    string
	Genre       string
	Language    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepo provides methods to work with movies in the database.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts a movie record. On success the movie's ID and timestamp
// fields are populated.
func (r *MovieRepo) Create(ctx context.Context, m *Movie) error {
	const q = `INSERT INTO movies (title, poster_url, description, duration, genre, language)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.PosterURL, m.Description, m.Duration, m.Genre, m.Language)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM movies WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, m.ID).Scan(&m.CreatedAt, &m.UpdatedAt)
}

// GetByID retrieves a movie by its id.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*Movie, error) {
	const q = `SELECT id, title, poster_url, description, duration, genre, language, created_at, updated_at
	           FROM movies WHERE id = ?`
	var m Movie
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&m.ID, &m.Title, &m.PosterURL, &m.Description, &m.Duration, &m.Genre, &m.Language, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListAll returns every movie in the catalogue ordered by title.
func (r *MovieRepo) ListAll(ctx context.Context) ([]Movie, error) {
	const q = `SELECT id, title, poster_url, description, duration, genre, language, created_at, updated_at
	           FROM movies ORDER BY title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.PosterURL, &m.Description, &m.Duration, &m.Genre, &m.Language, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites all editable fields of a movie.  Returns
// ErrMovieNotFound when no row matched.
func (r *MovieRepo) Update(ctx context.Context, m *Movie) error {
	const q = `UPDATE movies
	           SET title = ?, poster_url = ?, description = ?, duration = ?, genre = ?, language = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.PosterURL, m.Description, m.Duration, m.Genre, m.Language, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// distinguish "missing" from "identical values"
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ? LIMIT 1`, m.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMovieNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a movie.  Shows referencing it block deletion with
// ErrConflict so the schedule never points at a missing film.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	var cnt int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows WHERE movie_id = ?`, id).Scan(&cnt); err != nil {
		return err
	}
	if cnt > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}
