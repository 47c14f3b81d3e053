package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sacmovies/campus-booking/internal/queue"
	"github.com/sacmovies/campus-booking/internal/repository"
	"github.com/sacmovies/campus-booking/internal/seatmap"
	queue_publisher "github.com/sacmovies/campus-booking/internal/service"
)

// Narrow store surfaces the booking handler actually calls.  The
// repository types satisfy them; tests substitute in-memory stubs.
type bookingUserStore interface {
	GetByID(ctx context.Context, id uint64) (repository.User, error)
}

type bookingShowStore interface {
	DB() *sql.DB
	GetByID(ctx context.Context, id uint64) (*repository.Show, error)
	LockTx(ctx context.Context, tx *sql.Tx, id uint64) error
	IncrementBookedTx(ctx context.Context, tx *sql.Tx, id uint64, n int) error
}

type bookingSeatStore interface {
	EnsureForShow(ctx context.Context, showID uint64) (bool, error)
	GetByShowAndLabelsTx(ctx context.Context, tx *sql.Tx, showID uint64, labels []string) ([]repository.Seat, error)
	BookTx(ctx context.Context, tx *sql.Tx, showID, userID uint64, labels []string) (int64, error)
}

type bookingStore interface {
	HasConfirmedTx(ctx context.Context, tx *sql.Tx, userID, showID uint64) (bool, error)
	CreateTx(ctx context.Context, tx *sql.Tx, b *repository.Booking) error
	GetByID(ctx context.Context, id uint64) (*repository.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.Booking, error)
}

type bookingMovieStore interface {
	GetByID(ctx context.Context, id uint64) (*repository.Movie, error)
}

// BookingHandler performs seat admission on behalf of students.  All
// methods assume JWT authentication has already run; role checks happen
// in middleware.  The booking path runs its checks and writes inside a
// single transaction so two requests for the same seat cannot both win.
type BookingHandler struct {
	Users    bookingUserStore
	Shows    bookingShowStore
	Seats    bookingSeatStore
	Bookings bookingStore
	Movies   bookingMovieStore
}

func NewBookingHandler(users bookingUserStore, shows bookingShowStore, seats bookingSeatStore, bookings bookingStore, movies bookingMovieStore) *BookingHandler {
	if users == nil || shows == nil || seats == nil || bookings == nil || movies == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Users: users, Shows: shows, Seats: seats, Bookings: bookings, Movies: movies}
}

type createBookingReq struct {
	ShowID uint64   `json:"show_id"`
	Seats  []string `json:"seats"`
}

type bookingPart struct {
	ID          uint64    `json:"id"`
	Reference   string    `json:"reference"`
	ShowID      uint64    `json:"show_id"`
	Status      string    `json:"status"`
	Seats       []string  `json:"seats"`
	AmountCents uint32    `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func toBookingPart(b repository.Booking) bookingPart {
	return bookingPart{
		ID:          b.ID,
		Reference:   b.Reference,
		ShowID:      b.ShowID,
		Status:      b.Status,
		Seats:       b.Seats,
		AmountCents: b.AmountCents,
		CreatedAt:   b.CreatedAt,
		ExpiresAt:   b.ExpiresAt,
	}
}

// Create handles POST /v1/bookings.  The sequence is: load user and
// show, check gender eligibility, then inside one transaction check for
// a duplicate confirmed booking, enforce the one-seat rule, probe the
// requested labels, claim the seats with a conditional update, insert
// the booking and bump the show counter.  Admission is free under the
// current campus rules, so amount is always zero.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ShowID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_id required"})
	}
	labels := normalizeLabels(req.Seats)
	if len(labels) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats required"})
	}

	ctx := c.Request().Context()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	show, err := h.Shows.GetByID(ctx, req.ShowID)
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load show failed"})
	}
	if !genderAllowed(show.Category, u.Gender) {
		msg := "This show is only for Boys"
		if show.Category == seatmap.CategoryGirls {
			msg = "This show is only for Girls"
		}
		return c.JSON(http.StatusForbidden, echo.Map{"error": msg})
	}

	// Materialize the layout before probing so a booking against a
	// fresh show does not fail on labels that simply were not
	// generated yet.
	if _, err := h.Seats.EnsureForShow(ctx, show.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to prepare seat map"})
	}

	tx, err := h.Shows.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the show row for the duration of the admission checks.  The
	// conditional seat update already prevents double-claiming one seat,
	// but without the lock the same user could race two requests for
	// different seats past the duplicate-booking probe.
	if err := h.Shows.LockTx(ctx, tx, show.ID); err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to lock show"})
	}

	dup, err := h.Bookings.HasConfirmedTx(ctx, tx, userID, show.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check existing bookings"})
	}
	if dup {
		return c.JSON(http.StatusConflict, echo.Map{"error": "you already booked a seat for this show"})
	}
	if len(labels) > 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "only 1 seat per show"})
	}

	seats, err := h.Seats.GetByShowAndLabelsTx(ctx, tx, show.ID, labels)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check seat availability"})
	}
	if missing := missingLabels(labels, seats); len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Seats not found: " + strings.Join(missing, ", "),
		})
	}
	for _, s := range seats {
		if s.Status == seatmap.StatusBooked {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Seat already booked: " + s.Label})
		}
	}

	// The conditional update is the real gate: it claims only seats
	// still available, so a concurrent winner shrinks the row count
	// and this request rolls back.
	affected, err := h.Seats.BookTx(ctx, tx, show.ID, userID, labels)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to claim seats"})
	}
	if affected != int64(len(labels)) {
		if blocked := unavailableLabels(labels, seats); len(blocked) > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Seat not available: " + blocked[0]})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "Seat already booked: " + labels[0]})
	}

	now := time.Now().UTC()
	booking := &repository.Booking{
		Reference:   uuid.NewString(),
		UserID:      userID,
		ShowID:      show.ID,
		Status:      repository.BookingConfirmed,
		AmountCents: 0,
		Seats:       labels,
		CreatedAt:   now,
		ExpiresAt:   now.Add(24 * time.Hour),
	}
	if err := h.Bookings.CreateTx(ctx, tx, booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	if err := h.Shows.IncrementBookedTx(ctx, tx, show.ID, len(labels)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update show"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	go h.publishConfirmed(*booking, *show)

	return c.JSON(http.StatusCreated, echo.Map{"booking": toBookingPart(*booking)})
}

// publishConfirmed emits the booking.confirmed event.  Failures are
// logged inside the publisher and never affect the response.
func (h *BookingHandler) publishConfirmed(b repository.Booking, show repository.Show) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	title := ""
	if m, err := h.Movies.GetByID(ctx, show.MovieID); err == nil {
		title = m.Title
	}
	_ = queue_publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		BookingID:   b.ID,
		Reference:   b.Reference,
		UserID:      b.UserID,
		ShowID:      b.ShowID,
		MovieTitle:  title,
		TheaterName: show.TheaterName,
		Category:    show.Category,
		StartsAt:    show.StartsAt.UTC().Format(time.RFC3339),
		SeatLabels:  b.Seats,
		AmountCents: b.AmountCents,
		ConfirmedAt: b.CreatedAt.Format(time.RFC3339),
	})
}

// List handles GET /v1/bookings and returns the current user's
// bookings, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	items := make([]bookingPart, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toBookingPart(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/bookings/:id.  A booking belonging to another
// user is reported as not found rather than forbidden so ids cannot be
// probed.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	if b.UserID != userID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBookingPart(*b)})
}
