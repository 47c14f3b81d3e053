package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_FullCapacity(t *testing.T) {
	seats := Generate(nil)

	assert.Len(t, seats, TotalSeats)

	perRow := map[string]int{}
	for _, s := range seats {
		perRow[s.Row]++
	}
	assert.Equal(t, 38, perRow["A"])
	assert.Equal(t, 38, perRow["L"])
	assert.Equal(t, 34, perRow["M"])
	assert.Equal(t, 34, perRow["R"])
	assert.Len(t, perRow, len(Rows))
}

func TestGenerate_CabinRowUnavailable(t *testing.T) {
	seats := Generate(nil)

	for _, s := range seats {
		if s.Row == "R" {
			assert.Equal(t, StatusUnavailable, s.Status, "seat %s", s.Label)
		} else {
			assert.Equal(t, StatusAvailable, s.Status, "seat %s", s.Label)
		}
	}
}

func TestGenerate_DamagedSeeding(t *testing.T) {
	seats := Generate(map[string]bool{"G15": true, "A1": true})

	got := map[string]string{}
	for _, s := range seats {
		got[s.Label] = s.Status
	}
	assert.Equal(t, StatusDamaged, got["G15"])
	assert.Equal(t, StatusDamaged, got["A1"])
	assert.Equal(t, StatusAvailable, got["G14"])
}

func TestGenerate_CabinRowBeatsDamage(t *testing.T) {
	seats := Generate(map[string]bool{"R1": true})

	for _, s := range seats {
		if s.Label == "R1" {
			assert.Equal(t, StatusUnavailable, s.Status)
		}
	}
}

func TestGenerate_LabelsUnique(t *testing.T) {
	seats := Generate(nil)

	seen := map[string]bool{}
	for _, s := range seats {
		assert.False(t, seen[s.Label], "duplicate label %s", s.Label)
		seen[s.Label] = true
	}
}

func TestSeatsForRow_UnknownRow(t *testing.T) {
	assert.Equal(t, 0, SeatsForRow("Z"))
	assert.Equal(t, 0, SeatsForRow(""))
}

func TestValidLabel(t *testing.T) {
	assert.True(t, ValidLabel("A1"))
	assert.True(t, ValidLabel("A38"))
	assert.True(t, ValidLabel("G15"))
	assert.True(t, ValidLabel("R34"))

	assert.False(t, ValidLabel("A39"), "row A has 38 seats")
	assert.False(t, ValidLabel("M38"), "row M has 34 seats")
	assert.False(t, ValidLabel("A0"))
	assert.False(t, ValidLabel("Z1"))
	assert.False(t, ValidLabel("15"))
	assert.False(t, ValidLabel("A"))
	assert.False(t, ValidLabel(""))
	assert.False(t, ValidLabel("g15"), "labels are uppercase")
}
