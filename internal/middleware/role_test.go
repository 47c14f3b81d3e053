package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithRole(t *testing.T, role interface{}, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	err := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	return rec
}

func TestRequireRole_Allowed(t *testing.T) {
	rec := runWithRole(t, "admin", RequireRole("admin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	rec := runWithRole(t, "student", RequireRole("student", "admin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	rec := runWithRole(t, "student", RequireRole("admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_MissingRole(t *testing.T) {
	rec := runWithRole(t, nil, RequireRole("admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_NonStringRole(t *testing.T) {
	rec := runWithRole(t, 42, RequireRole("admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
