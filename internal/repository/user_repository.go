package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/sacmovies/campus-booking/internal/utils"
)

// User roles stored in the users.role column.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Gender values stored in users.gender.  GenderUnspecified is a real
// state, not an absence: students without a gender on record are excluded
// from gender-restricted shows but admitted to open ones.
const (
	GenderMale        = "male"
	GenderFemale      = "female"
	GenderUnspecified = "unspecified"
)

// User mirrors the 'users' table.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Gender       string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound indicates that a user lookup yielded no rows.
var ErrUserNotFound = errors.New("user not found")

// NormalizeGender maps free-form input onto the stored tri-state.  Any
// value other than male/female collapses to unspecified.
func NormalizeGender(g string) string {
	switch strings.ToLower(strings.TrimSpace(g)) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	}
	return GenderUnspecified
}

// Create inserts a user and returns its ID.  Email is normalized to
// lower case before insertion; the UNIQUE index enforces uniqueness.
func (r *UserRepo) Create(ctx context.Context, email, password, name, gender, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, name, gender, role) VALUES (?,?,?,?,?)",
		email, hash, name, NormalizeGender(gender), role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,name,role,gender,is_verified,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Gender, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.  Returns ErrUserNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,name,role,gender,is_verified,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Gender, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

// ListAll returns every user ordered by creation time.  Used by the admin
// user listing.
func (r *UserRepo) ListAll(ctx context.Context) ([]User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,password_hash,name,role,gender,is_verified,created_at,updated_at FROM users ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Gender, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}
