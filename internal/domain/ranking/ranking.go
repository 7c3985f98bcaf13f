// Package ranking produces the public leaderboard ordering.
package ranking

import (
	"sort"

	"github.com/accountable-india/civicrank/internal/domain/model"
	"github.com/accountable-india/civicrank/internal/domain/scoring"
)

// ScopeAll disables scope filtering.
const ScopeAll = "All"

// Entry is one row of a ranked leaderboard.
type Entry struct {
	Rank   int          `json:"rank"`
	Score  float64      `json:"score"`
	Leader model.Leader `json:"leader"`
}

// Scorer computes a score for a leader under a mode. Satisfied by
// *scoring.Engine.
type Scorer interface {
	Score(l *model.Leader, mode scoring.Mode) float64
}

// Rank filters the roster by state scope, scores every surviving leader
// with a single engine pass, and returns the rows sorted descending by
// score. The sort is stable, so leaders with equal scores keep their
// roster order; the input roster is never mutated. An empty result is
// valid, not an error.
//
// Given identical roster, mode, scope and weight constants the output is
// deterministic.
func Rank(roster model.Roster, engine Scorer, mode scoring.Mode, scope string) []Entry {
	entries := make([]Entry, 0, len(roster))
	for i := range roster {
		if !inScope(&roster[i], scope) {
			continue
		}
		entries = append(entries, Entry{
			Score:  engine.Score(&roster[i], mode),
			Leader: roster[i],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	assignRanksWithTies(entries)
	return entries
}

func inScope(l *model.Leader, scope string) bool {
	return scope == "" || scope == ScopeAll || l.State == scope
}

// assignRanksWithTies assigns consecutive ranks where leaders with equal
// scores share a rank.
func assignRanksWithTies(entries []Entry) {
	rank := 0
	for i := range entries {
		if i == 0 || entries[i].Score != entries[i-1].Score {
			rank++
		}
		entries[i].Rank = rank
	}
}
