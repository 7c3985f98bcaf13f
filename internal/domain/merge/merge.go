// Package merge integrates externally discovered records into the local
// collections.
package merge

import (
	"strings"

	"github.com/google/uuid"

	"github.com/accountable-india/civicrank/internal/domain/model"
)

// Defaults applied to every discovered leader. The external lookup is
// not a trusted rating source, so the neutral rating always wins even if
// the lookup supplied one.
const (
	DefaultRating      = 3.0
	DefaultRatingCount = 0
)

// Discovered is the partial profile an external lookup returns. Missing
// metrics stay at their zero value and default to 0 in the merged
// leader.
type Discovered struct {
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Party        string  `json:"party"`
	Constituency string  `json:"constituency"`
	State        string  `json:"state"`
	Attendance   float64 `json:"attendance"`
	Bills        float64 `json:"bills"`
	Debates      float64 `json:"debates"`
	Questions    float64 `json:"questions"`
	SinceYear    int     `json:"sinceYear"`
}

// Leader merges a discovered profile into the roster and returns the
// updated roster. The new leader gets a fresh id, the neutral rating
// defaults, and the front slot so the latest discovery surfaces first
// (front insertion also pins the ranking tie-break). A profile whose
// name already exists, compared case-insensitively, is rejected with
// ErrDuplicate; the roster is returned unchanged.
func Leader(roster model.Roster, d Discovered) (model.Roster, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return roster, ErrMissingName
	}
	if roster.ContainsName(name) {
		return roster, ErrDuplicate
	}

	l := model.Leader{
		ID:           uuid.NewString(),
		Name:         name,
		Role:         d.Role,
		Party:        d.Party,
		Constituency: d.Constituency,
		State:        d.State,
		Rating:       DefaultRating,
		RatingCount:  DefaultRatingCount,
		Attendance:   d.Attendance,
		Bills:        d.Bills,
		Debates:      d.Debates,
		Questions:    d.Questions,
		SinceYear:    d.SinceYear,
		IsFollowed:   false,
	}

	out := make(model.Roster, 0, len(roster)+1)
	out = append(out, l)
	out = append(out, roster...)
	return out, nil
}

// Promises merges verified promises into the tracked list, rejecting any
// whose title already exists case-insensitively. Same dedup family as
// Leader. Accepted promises get fresh ids and the front slots; the count
// of accepted records is returned alongside the merged list.
func Promises(existing []model.Promise, found []model.Promise) ([]model.Promise, int) {
	titles := make(map[string]bool, len(existing))
	for _, p := range existing {
		titles[strings.ToLower(p.Title)] = true
	}

	accepted := make([]model.Promise, 0, len(found))
	for _, p := range found {
		key := strings.ToLower(strings.TrimSpace(p.Title))
		if key == "" || titles[key] {
			continue
		}
		titles[key] = true
		p.ID = uuid.NewString()
		accepted = append(accepted, p)
	}

	out := make([]model.Promise, 0, len(existing)+len(accepted))
	out = append(out, accepted...)
	out = append(out, existing...)
	return out, len(accepted)
}
