package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sacmovies/campus-booking/internal/repository"
	"github.com/sacmovies/campus-booking/internal/seatmap"
)

func TestGenderAllowed_OpenShow(t *testing.T) {
	assert.True(t, genderAllowed(seatmap.CategoryAll, repository.GenderMale))
	assert.True(t, genderAllowed(seatmap.CategoryAll, repository.GenderFemale))
	assert.True(t, genderAllowed(seatmap.CategoryAll, repository.GenderUnspecified))
}

func TestGenderAllowed_BoysShow(t *testing.T) {
	assert.True(t, genderAllowed(seatmap.CategoryBoys, repository.GenderMale))
	assert.False(t, genderAllowed(seatmap.CategoryBoys, repository.GenderFemale))
}

func TestGenderAllowed_GirlsShow(t *testing.T) {
	assert.True(t, genderAllowed(seatmap.CategoryGirls, repository.GenderFemale))
	assert.False(t, genderAllowed(seatmap.CategoryGirls, repository.GenderMale))
}

// Users with no gender on record are excluded from restricted shows but
// not from open ones.
func TestGenderAllowed_UnspecifiedExcludedFromRestricted(t *testing.T) {
	assert.False(t, genderAllowed(seatmap.CategoryBoys, repository.GenderUnspecified))
	assert.False(t, genderAllowed(seatmap.CategoryGirls, repository.GenderUnspecified))
}

func TestNormalizeLabels_TrimUpperDedupe(t *testing.T) {
	got := normalizeLabels([]string{" g15 ", "G15", "a1", "", "  "})
	assert.Equal(t, []string{"G15", "A1"}, got)
}

func TestNormalizeLabels_Empty(t *testing.T) {
	assert.Empty(t, normalizeLabels(nil))
	assert.Empty(t, normalizeLabels([]string{"", "   "}))
}

func seatsFixture() []repository.Seat {
	return []repository.Seat{
		{Label: "G15", Row: "G", Number: 15, Status: seatmap.StatusAvailable},
		{Label: "G16", Row: "G", Number: 16, Status: seatmap.StatusBooked},
		{Label: "G17", Row: "G", Number: 17, Status: seatmap.StatusDamaged},
	}
}

func TestMissingLabels(t *testing.T) {
	missing := missingLabels([]string{"G15", "Z9", "G16", "Q99"}, seatsFixture())
	assert.Equal(t, []string{"Z9", "Q99"}, missing)
}

func TestMissingLabels_NoneMissing(t *testing.T) {
	assert.Empty(t, missingLabels([]string{"G15", "G16"}, seatsFixture()))
}

func TestUnavailableLabels(t *testing.T) {
	blocked := unavailableLabels([]string{"G15", "G16", "G17"}, seatsFixture())
	assert.Equal(t, []string{"G16", "G17"}, blocked)
}

func TestUnavailableLabels_AllAvailable(t *testing.T) {
	assert.Empty(t, unavailableLabels([]string{"G15"}, seatsFixture()))
}
