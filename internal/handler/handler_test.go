package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

func TestErrStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", errors.Join(errors.New("driver lookup"), domain.ErrNotFound), http.StatusNotFound},
		{"validation", domain.Validationf("name is required"), http.StatusBadRequest},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errStatus(tt.err))
		})
	}
}

func testContext(t *testing.T, path string) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestParamID(t *testing.T) {
	c := testContext(t, "/")
	c.SetParamNames("id")
	c.SetParamValues("42")

	id, err := paramID(c)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-1"} {
		c.SetParamValues(bad)
		_, err := paramID(c)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

func TestQueryHelpers(t *testing.T) {
	c := testContext(t, "/?limit=10&employee_id=7&junk=x")

	assert.Equal(t, 10, queryInt(c, "limit"))
	assert.Equal(t, 0, queryInt(c, "offset"))
	assert.Equal(t, 0, queryInt(c, "junk"))

	id := queryInt64Ptr(c, "employee_id")
	require.NotNil(t, id)
	assert.Equal(t, int64(7), *id)
	assert.Nil(t, queryInt64Ptr(c, "missing"))
	assert.Nil(t, queryInt64Ptr(c, "junk"))
}

func TestTripRequestToDomain(t *testing.T) {
	dep := "08:30"
	kmStart := "1000"
	kmEnd := "1050.5"
	req := TripRequest{
		Date:          "2025-01-10",
		Vehicle:       "FROTA-01",
		DriverID:      1,
		DepartureTime: &dep,
		KMStart:       &kmStart,
		KMEnd:         &kmEnd,
	}

	trip, err := req.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, "FROTA-01", trip.Vehicle)
	assert.Equal(t, "2025-01-10", trip.Date.Format("2006-01-02"))
	assert.Equal(t, "50.50", trip.Distance().StringFixed(2))
	assert.Nil(t, trip.ReturnTime)

	t.Run("bad date", func(t *testing.T) {
		bad := req
		bad.Date = "10/01/2025"
		_, err := bad.ToDomain()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("bad clock time", func(t *testing.T) {
		bad := req
		v := "8h30"
		bad.DepartureTime = &v
		_, err := bad.ToDomain()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("bad odometer", func(t *testing.T) {
		bad := req
		v := "mil"
		bad.KMStart = &v
		_, err := bad.ToDomain()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAttendanceRequestToDomain(t *testing.T) {
	req := AttendanceRequest{
		EmployeeID: 1,
		Date:       "2025-01-10",
		Time:       "07:45",
		Type:       "entrada",
	}

	entry, err := req.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceTypeClockIn, entry.Type)
	assert.Equal(t, "2025-01-10 07:45", entry.Timestamp.Format("2006-01-02 15:04"))

	req.Time = "25:00"
	_, err = req.ToDomain()
	assert.ErrorIs(t, err, domain.ErrValidation)
}
