package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sacmovies/campus-booking/internal/handler"
	"github.com/sacmovies/campus-booking/internal/repository"
	"github.com/sacmovies/campus-booking/internal/utils"
)

const testSecret = "routes-secret"

// listBookingsAs sends GET /v1/bookings through the full route chain
// with a token for the given role.  The backing DB is mocked to return
// an empty booking list.
func listBookingsAs(t *testing.T, role string) *httptest.ResponseRecorder {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectQuery("SELECT .* FROM bookings WHERE user_id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference", "user_id", "show_id", "status", "amount_cents", "created_at", "expires_at"}))

	h := handler.NewBookingHandler(
		repository.NewUserRepo(db),
		repository.NewShowRepo(db),
		repository.NewSeatRepo(db),
		repository.NewBookingRepo(db),
		repository.NewMovieRepo(db),
	)

	e := echo.New()
	RegisterStudent(e, h, testSecret)

	at, err := utils.NewAccessToken(testSecret, 9, role, 5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestStudentRoutes_StudentAllowed(t *testing.T) {
	rec := listBookingsAs(t, repository.RoleStudent)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestStudentRoutes_AdminAllowed(t *testing.T) {
	rec := listBookingsAs(t, repository.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code, "admins book through the same endpoints as students")
}

func TestStudentRoutes_UnknownRoleRejected(t *testing.T) {
	rec := listBookingsAs(t, "guest")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
