package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes into dir for the duration of the test, restoring the previous
// working directory on cleanup. Equivalent to t.Chdir, which needs Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestHandleMessage_WritesLogLine(t *testing.T) {
	chdir(t, t.TempDir())

	ev := BookingConfirmedEvent{
		BookingID:   12,
		Reference:   "9f6f6a2e-9c2e-4e63-8a3c-1f2d3e4a5b6c",
		UserID:      7,
		ShowID:      3,
		MovieTitle:  "Interstellar",
		TheaterName: "SAC Auditorium",
		Category:    "all",
		SeatLabels:  []string{"G15"},
		AmountCents: 0,
		ConfirmedAt: "2026-08-30T18:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, handleMessage(body))

	data, err := os.ReadFile(filepath.Join("logs", "booking.log"))
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, "booking_id=12")
	assert.Contains(t, line, "reference=9f6f6a2e-9c2e-4e63-8a3c-1f2d3e4a5b6c")
	assert.Contains(t, line, `movie="Interstellar"`)
	assert.Contains(t, line, "seats=[G15]")
}

func TestHandleMessage_BadJSON(t *testing.T) {
	assert.Error(t, handleMessage([]byte("{not json")))
}

func TestHandleMessage_AppendsLines(t *testing.T) {
	chdir(t, t.TempDir())

	for i := 0; i < 2; i++ {
		body, err := json.Marshal(BookingConfirmedEvent{BookingID: uint64(i + 1)})
		require.NoError(t, err)
		require.NoError(t, handleMessage(body))
	}

	data, err := os.ReadFile(filepath.Join("logs", "booking.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "booking_id=1")
	assert.Contains(t, string(data), "booking_id=2")
}
