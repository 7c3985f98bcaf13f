package ranking_test

import (
	"testing"

	"github.com/accountable-india/civicrank/internal/domain/model"
	"github.com/accountable-india/civicrank/internal/domain/ranking"
	"github.com/accountable-india/civicrank/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func roster() model.Roster {
	return model.Roster{
		{ID: "a", Name: "A", State: "Delhi", Attendance: 92, Rating: 4.0},
		{ID: "b", Name: "B", State: "Rajasthan", Attendance: 55, Rating: 3.0},
		{ID: "c", Name: "C", State: "Delhi", Attendance: 100, Rating: 4.8},
	}
}

func TestRank_Ordering(t *testing.T) {
	Convey("Given a roster and the default engine", t, func() {
		engine := scoring.NewEngine()

		Convey("When ranking by attendance across all states", func() {
			entries := ranking.Rank(roster(), engine, scoring.AttendanceOnly, ranking.ScopeAll)

			Convey("Then rows come back descending by score", func() {
				So(len(entries), ShouldEqual, 3)
				So(entries[0].Score, ShouldEqual, 100)
				So(entries[1].Score, ShouldEqual, 92)
				So(entries[2].Score, ShouldEqual, 55)
			})

			Convey("And ranks are assigned from one", func() {
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].Rank, ShouldEqual, 2)
				So(entries[2].Rank, ShouldEqual, 3)
			})
		})

		Convey("When ranking twice on an unchanged roster", func() {
			first := ranking.Rank(roster(), engine, scoring.Overall, ranking.ScopeAll)
			second := ranking.Rank(roster(), engine, scoring.Overall, ranking.ScopeAll)

			Convey("Then order and scores are identical", func() {
				So(len(first), ShouldEqual, len(second))
				for i := range first {
					So(first[i].Leader.ID, ShouldEqual, second[i].Leader.ID)
					So(first[i].Score, ShouldEqual, second[i].Score)
				}
			})
		})

		Convey("When the input roster is ranked", func() {
			in := roster()
			_ = ranking.Rank(in, engine, scoring.AttendanceOnly, ranking.ScopeAll)

			Convey("Then the roster order is untouched", func() {
				So(in[0].ID, ShouldEqual, "a")
				So(in[1].ID, ShouldEqual, "b")
				So(in[2].ID, ShouldEqual, "c")
			})
		})
	})
}

func TestRank_Stability(t *testing.T) {
	Convey("Given two leaders that score identically", t, func() {
		engine := scoring.NewEngine()
		tied := model.Roster{
			{ID: "b", Name: "Zubin", State: "Goa", Attendance: 70},
			{ID: "a", Name: "Anita", State: "Goa", Attendance: 70},
		}

		Convey("When ranking", func() {
			entries := ranking.Rank(tied, engine, scoring.AttendanceOnly, ranking.ScopeAll)

			Convey("Then roster order breaks the tie, not the name", func() {
				So(entries[0].Leader.ID, ShouldEqual, "b")
				So(entries[1].Leader.ID, ShouldEqual, "a")
			})

			Convey("And both share a rank", func() {
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].Rank, ShouldEqual, 1)
			})
		})

		Convey("When a lower score follows the tie", func() {
			withTail := append(tied, model.Leader{ID: "c", State: "Goa", Attendance: 10})
			entries := ranking.Rank(withTail, engine, scoring.AttendanceOnly, ranking.ScopeAll)

			Convey("Then the next distinct score takes the next consecutive rank", func() {
				So(entries[2].Rank, ShouldEqual, 2)
			})
		})
	})
}

func TestRank_Scope(t *testing.T) {
	Convey("Given a roster spanning states", t, func() {
		engine := scoring.NewEngine()

		Convey("When ranking with the All scope", func() {
			entries := ranking.Rank(roster(), engine, scoring.Overall, ranking.ScopeAll)

			Convey("Then every leader appears exactly once", func() {
				ids := make(map[string]int)
				for _, e := range entries {
					ids[e.Leader.ID]++
				}
				So(len(ids), ShouldEqual, 3)
				for _, n := range ids {
					So(n, ShouldEqual, 1)
				}
			})
		})

		Convey("When ranking scoped to Delhi", func() {
			entries := ranking.Rank(roster(), engine, scoring.Overall, "Delhi")

			Convey("Then exactly the Delhi leaders are ranked among themselves", func() {
				So(len(entries), ShouldEqual, 2)
				for _, e := range entries {
					So(e.Leader.State, ShouldEqual, "Delhi")
				}
			})
		})

		Convey("When the scope matches nothing", func() {
			entries := ranking.Rank(roster(), engine, scoring.Overall, "Kerala")

			Convey("Then the empty result is valid", func() {
				So(entries, ShouldBeEmpty)
			})
		})
	})
}
