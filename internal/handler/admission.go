package handler

import (
	"strings"

	"github.com/sacmovies/campus-booking/internal/repository"
	"github.com/sacmovies/campus-booking/internal/seatmap"
)

// Admission rules for bookings, kept as plain functions so the checks
// can be tested without a database.

// genderAllowed reports whether a user with the given gender may book a
// show of the given category.  Boys-only shows admit male students,
// girls-only shows admit female students, and open shows admit everyone
// including users who never declared a gender.
func genderAllowed(category, gender string) bool {
	switch category {
	case seatmap.CategoryBoys:
		return gender == repository.GenderMale
	case seatmap.CategoryGirls:
		return gender == repository.GenderFemale
	default:
		return true
	}
}

// normalizeLabels trims, uppercases and deduplicates the requested seat
// labels while preserving first-seen order.  Empty entries are dropped.
func normalizeLabels(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, l := range raw {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// missingLabels returns the requested labels that do not appear among
// the seats loaded for the show, in request order.
func missingLabels(requested []string, seats []repository.Seat) []string {
	known := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		known[s.Label] = struct{}{}
	}
	var missing []string
	for _, l := range requested {
		if _, ok := known[l]; !ok {
			missing = append(missing, l)
		}
	}
	return missing
}

// unavailableLabels returns the requested labels whose seats are not
// available, in request order.  Used to name the offender when the
// conditional update claims fewer rows than requested.
func unavailableLabels(requested []string, seats []repository.Seat) []string {
	status := make(map[string]string, len(seats))
	for _, s := range seats {
		status[s.Label] = s.Status
	}
	var blocked []string
	for _, l := range requested {
		if st, ok := status[l]; ok && st != seatmap.StatusAvailable {
			blocked = append(blocked, l)
		}
	}
	return blocked
}
