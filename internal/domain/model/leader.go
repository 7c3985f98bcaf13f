// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strings"
)

// Rating bounds for citizen submissions.
const (
	MinRating = 1
	MaxRating = 5
)

// Leader represents a ranked political leader record.
// JSON field names mirror the persisted dataset shape.
type Leader struct {
	ID           string  `json:"id"`   // unique id, assigned at creation, immutable
	Name         string  `json:"name"` // display name
	Role         string  `json:"role"` // e.g. "MP", "MLA"
	Party        string  `json:"party"`
	Constituency string  `json:"constituency"`
	State        string  `json:"state"`
	Rating       float64 `json:"rating"`      // running average of citizen ratings, 0..5
	RatingCount  int     `json:"ratingCount"` // number of ratings folded into Rating
	Attendance   float64 `json:"attendance"`  // percentage, 0..100
	Bills        float64 `json:"bills"`       // count-valued activity metrics, no fixed upper bound
	Debates      float64 `json:"debates"`
	Questions    float64 `json:"questions"`
	SinceYear    int     `json:"sinceYear"`
	IsFollowed   bool    `json:"isFollowed"`
}

// SubmitRating folds a citizen rating into the running average and bumps
// the count by exactly one. The stored average is rounded to one decimal,
// the precision the dashboard displays. Returns ErrInvalidRating for
// values outside [MinRating, MaxRating].
func (l *Leader) SubmitRating(value int) error {
	if value < MinRating || value > MaxRating {
		return ErrInvalidRating
	}
	count := l.RatingCount + 1
	avg := (l.Rating*float64(l.RatingCount) + float64(value)) / float64(count)
	l.Rating = math.Round(avg*10) / 10
	l.RatingCount = count
	return nil
}

// ToggleFollow flips the per-viewer follow preference.
func (l *Leader) ToggleFollow() {
	l.IsFollowed = !l.IsFollowed
}

// Roster is an insertion-ordered collection of leaders. It is persisted
// and reloaded as a whole; insertion order doubles as the ranking
// tie-break, so it must be preserved across save/load cycles.
type Roster []Leader

// FindByID returns a pointer into the roster for in-place mutation,
// or nil if no leader carries the id.
func (r Roster) FindByID(id string) *Leader {
	for i := range r {
		if r[i].ID == id {
			return &r[i]
		}
	}
	return nil
}

// ContainsName reports whether a leader with the given name already
// exists, compared case-insensitively.
func (r Roster) ContainsName(name string) bool {
	for i := range r {
		if strings.EqualFold(r[i].Name, name) {
			return true
		}
	}
	return false
}

// Clone returns a copy safe to hand to callers while the original keeps
// being mutated under the service lock.
func (r Roster) Clone() Roster {
	out := make(Roster, len(r))
	copy(out, r)
	return out
}
