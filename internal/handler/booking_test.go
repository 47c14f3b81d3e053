package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sacmovies/campus-booking/internal/repository"
	"github.com/sacmovies/campus-booking/internal/seatmap"
)

type stubUserStore struct {
	user repository.User
	err  error
}

func (s stubUserStore) GetByID(ctx context.Context, id uint64) (repository.User, error) {
	return s.user, s.err
}

type stubShowStore struct {
	db          *sql.DB
	show        *repository.Show
	err         error
	incremented int
}

func (s *stubShowStore) DB() *sql.DB { return s.db }

func (s *stubShowStore) GetByID(ctx context.Context, id uint64) (*repository.Show, error) {
	return s.show, s.err
}

func (s *stubShowStore) LockTx(ctx context.Context, tx *sql.Tx, id uint64) error { return nil }

func (s *stubShowStore) IncrementBookedTx(ctx context.Context, tx *sql.Tx, id uint64, n int) error {
	s.incremented += n
	return nil
}

type stubSeatStore struct {
	seats    []repository.Seat
	affected int64
}

func (s stubSeatStore) EnsureForShow(ctx context.Context, showID uint64) (bool, error) {
	return false, nil
}

func (s stubSeatStore) GetByShowAndLabelsTx(ctx context.Context, tx *sql.Tx, showID uint64, labels []string) ([]repository.Seat, error) {
	return s.seats, nil
}

func (s stubSeatStore) BookTx(ctx context.Context, tx *sql.Tx, showID, userID uint64, labels []string) (int64, error) {
	return s.affected, nil
}

type stubBookingStore struct {
	dup     bool
	created *repository.Booking
}

func (s *stubBookingStore) HasConfirmedTx(ctx context.Context, tx *sql.Tx, userID, showID uint64) (bool, error) {
	return s.dup, nil
}

func (s *stubBookingStore) CreateTx(ctx context.Context, tx *sql.Tx, b *repository.Booking) error {
	b.ID = 41
	s.created = b
	return nil
}

func (s *stubBookingStore) GetByID(ctx context.Context, id uint64) (*repository.Booking, error) {
	return nil, repository.ErrBookingNotFound
}

func (s *stubBookingStore) ListByUser(ctx context.Context, userID uint64) ([]repository.Booking, error) {
	return nil, nil
}

type stubMovieStore struct{}

func (stubMovieStore) GetByID(ctx context.Context, id uint64) (*repository.Movie, error) {
	return nil, repository.ErrMovieNotFound
}

type bookingFixture struct {
	h        *BookingHandler
	shows    *stubShowStore
	bookings *stubBookingStore
	mock     sqlmock.Sqlmock
}

// newBookingFixture wires the handler against stub stores.  The only
// real SQL surface is the transaction handle, mocked so Begin, Commit
// and Rollback behave.
func newBookingFixture(t *testing.T, user repository.User, show repository.Show, seats stubSeatStore, dup bool) *bookingFixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	shows := &stubShowStore{db: db, show: &show}
	bookings := &stubBookingStore{dup: dup}
	h := NewBookingHandler(stubUserStore{user: user}, shows, seats, bookings, stubMovieStore{})
	return &bookingFixture{h: h, shows: shows, bookings: bookings, mock: mock}
}

func postBooking(t *testing.T, h *BookingHandler, userID uint64, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(userID))
	require.NoError(t, h.Create(c))
	return rec
}

func errMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["error"]
}

func campusUser(gender string) repository.User {
	return repository.User{ID: 7, Email: "u7@campus.test", Name: "U Seven", Role: repository.RoleStudent, Gender: gender}
}

func openShow(category string) repository.Show {
	return repository.Show{
		ID:          2,
		MovieID:     3,
		Category:    category,
		TheaterName: "Main Hall",
		StartsAt:    time.Now().Add(48 * time.Hour).UTC(),
		TotalSeats:  seatmap.TotalSeats,
	}
}

func availableSeat(label string) repository.Seat {
	return repository.Seat{ID: 100, ShowID: 2, Label: label, Status: seatmap.StatusAvailable}
}

func TestCreateBooking_GenderMismatchForbidden(t *testing.T) {
	f := newBookingFixture(t, campusUser(repository.GenderFemale), openShow(seatmap.CategoryBoys), stubSeatStore{}, false)

	rec := postBooking(t, f.h, 7, `{"show_id":2,"seats":["G15"]}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "This show is only for Boys", errMsg(t, rec))
	assert.Nil(t, f.bookings.created)
}

func TestCreateBooking_DuplicateBookingConflict(t *testing.T) {
	f := newBookingFixture(t, campusUser(repository.GenderMale), openShow(seatmap.CategoryAll), stubSeatStore{}, true)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	rec := postBooking(t, f.h, 7, `{"show_id":2,"seats":["H1"]}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "you already booked a seat for this show", errMsg(t, rec))
	assert.Nil(t, f.bookings.created, "rejected request must not create a booking")
	assert.Zero(t, f.shows.incremented)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_MultipleSeatsRejected(t *testing.T) {
	f := newBookingFixture(t, campusUser(repository.GenderMale), openShow(seatmap.CategoryAll), stubSeatStore{}, false)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	rec := postBooking(t, f.h, 7, `{"show_id":2,"seats":["G15","G16"]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "only 1 seat per show", errMsg(t, rec))
	assert.Nil(t, f.bookings.created)
	assert.Zero(t, f.shows.incremented)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_MissingLabelListed(t *testing.T) {
	f := newBookingFixture(t, campusUser(repository.GenderMale), openShow(seatmap.CategoryAll), stubSeatStore{}, false)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	rec := postBooking(t, f.h, 7, `{"show_id":2,"seats":["B40"]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Seats not found: B40", errMsg(t, rec))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_SeatAlreadyBookedConflict(t *testing.T) {
	taken := availableSeat("G15")
	taken.Status = seatmap.StatusBooked
	f := newBookingFixture(t, campusUser(repository.GenderMale), openShow(seatmap.CategoryAll), stubSeatStore{seats: []repository.Seat{taken}}, false)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	rec := postBooking(t, f.h, 7, `{"show_id":2,"seats":["G15"]}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Seat already booked: G15", errMsg(t, rec))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_ClaimLostConflict(t *testing.T) {
	// The probe saw the seat available but the conditional update
	// claimed nothing, as happens when a concurrent request wins.
	f := newBookingFixture(t, campusUser(repository.GenderMale), openShow(seatmap.CategoryAll), stubSeatStore{seats: []repository.Seat{availableSeat("G15")}, affected: 0}, false)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	rec := postBooking(t, f.h, 7, `{"show_id":2,"seats":["G15"]}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Seat already booked: G15", errMsg(t, rec))
	assert.Nil(t, f.bookings.created)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_Success(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "amqp://127.0.0.1:1/")

	f := newBookingFixture(t, campusUser(repository.GenderMale), openShow(seatmap.CategoryAll), stubSeatStore{seats: []repository.Seat{availableSeat("G15")}, affected: 1}, false)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	rec := postBooking(t, f.h, 7, `{"show_id":2,"seats":["g15"]}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Booking bookingPart `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(41), resp.Booking.ID)
	assert.NotEmpty(t, resp.Booking.Reference)
	assert.Equal(t, repository.BookingConfirmed, resp.Booking.Status)
	assert.Equal(t, []string{"G15"}, resp.Booking.Seats, "labels are normalized to upper case")
	assert.Equal(t, uint32(0), resp.Booking.AmountCents)
	assert.Equal(t, 24*time.Hour, resp.Booking.ExpiresAt.Sub(resp.Booking.CreatedAt))

	require.NotNil(t, f.bookings.created)
	assert.Equal(t, uint64(7), f.bookings.created.UserID)
	assert.Equal(t, 1, f.shows.incremented)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
