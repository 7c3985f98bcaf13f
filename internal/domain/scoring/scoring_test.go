package scoring_test

import (
	"math"
	"testing"

	"github.com/accountable-india/civicrank/internal/domain/model"
	"github.com/accountable-india/civicrank/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEngine_Score(t *testing.T) {
	Convey("Given an engine with default weights", t, func() {
		engine := scoring.NewEngine()
		leader := &model.Leader{
			ID:         "5",
			Name:       "Priya Sharma",
			Rating:     4.5,
			Attendance: 92,
			Bills:      12,
			Debates:    34,
			Questions:  89,
		}

		Convey("When scoring in attendance mode", func() {
			score := engine.Score(leader, scoring.AttendanceOnly)

			Convey("Then the attendance metric is returned verbatim", func() {
				So(score, ShouldEqual, 92)
			})
		})

		Convey("When scoring in rating mode", func() {
			score := engine.Score(leader, scoring.RatingOnly)

			Convey("Then the rating is returned verbatim on the 0-5 scale", func() {
				So(score, ShouldEqual, 4.5)
			})
		})

		Convey("When scoring the performance composite", func() {
			score := engine.Score(leader, scoring.PerformanceComposite)

			Convey("Then the weighted blend is rounded", func() {
				// (12*5 + 34*2 + 89*1) / 2.5 = 86.8 -> 87
				So(score, ShouldEqual, 87)
			})
		})

		Convey("When scoring overall", func() {
			score := engine.Score(leader, scoring.Overall)

			Convey("Then attendance, composite and rescaled rating blend 30/30/40", func() {
				// 92*0.3 + 87*0.3 + 4.5*20*0.4 = 27.6 + 26.1 + 36 = 89.7 -> 90
				So(score, ShouldEqual, 90)
			})
		})

		Convey("When scoring the same leader twice", func() {
			Convey("Then the result is identical", func() {
				So(engine.Score(leader, scoring.Overall), ShouldEqual, engine.Score(leader, scoring.Overall))
			})
		})
	})
}

func TestEngine_Ranges(t *testing.T) {
	Convey("Given an engine with default weights", t, func() {
		engine := scoring.NewEngine()

		Convey("When rating mode scores any leader with rating in [0,5]", func() {
			for _, r := range []float64{0, 0.1, 2.5, 4.9, 5} {
				l := &model.Leader{Rating: r}
				score := engine.Score(l, scoring.RatingOnly)

				So(score, ShouldBeBetweenOrEqual, 0, 5)
			}
		})

		Convey("When overall mode scores leaders within reference metric ranges", func() {
			cases := []*model.Leader{
				{Rating: 0, Attendance: 0},
				{Rating: 5, Attendance: 100, Bills: 20, Debates: 50, Questions: 100},
				{Rating: 2.5, Attendance: 50, Bills: 5, Debates: 10, Questions: 30},
			}
			for _, l := range cases {
				So(engine.Score(l, scoring.Overall), ShouldBeBetweenOrEqual, 0, 100)
			}
		})

		Convey("When raw counts run far past the reference maximum", func() {
			l := &model.Leader{Rating: 5, Attendance: 100, Bills: 5000, Debates: 5000, Questions: 5000}

			Convey("Then the composite is clamped to 100", func() {
				So(engine.Score(l, scoring.PerformanceComposite), ShouldEqual, 100)
				So(engine.Score(l, scoring.Overall), ShouldBeLessThanOrEqualTo, 100)
			})
		})

		Convey("When a metric is NaN", func() {
			l := &model.Leader{Bills: math.NaN()}

			Convey("Then the composite degrades to zero instead of poisoning the sort", func() {
				So(engine.Score(l, scoring.PerformanceComposite), ShouldEqual, 0)
			})
		})
	})
}

func TestEngine_Options(t *testing.T) {
	Convey("Given an engine with custom composite weights", t, func() {
		engine := scoring.NewEngine(
			scoring.WithCompositeWeights(1, 1, 1, 3),
		)

		Convey("When scoring the composite", func() {
			l := &model.Leader{Bills: 30, Debates: 30, Questions: 30}

			Convey("Then the override applies", func() {
				So(engine.Score(l, scoring.PerformanceComposite), ShouldEqual, 30)
			})
		})

		Convey("When the divisor is non-positive", func() {
			broken := scoring.NewEngine(scoring.WithCompositeWeights(9, 9, 9, 0))
			l := &model.Leader{Bills: 10, Debates: 10, Questions: 10}

			Convey("Then the override is ignored and defaults hold", func() {
				So(broken.Score(l, scoring.PerformanceComposite), ShouldEqual, 32)
			})
		})
	})

	Convey("Given an engine with a custom overall blend", t, func() {
		engine := scoring.NewEngine(scoring.WithOverallBlend(1, 0, 0))

		Convey("When scoring overall", func() {
			l := &model.Leader{Attendance: 73, Rating: 5, Bills: 50}

			Convey("Then only attendance contributes", func() {
				So(engine.Score(l, scoring.Overall), ShouldEqual, 73)
			})
		})
	})
}

func TestParseMode(t *testing.T) {
	Convey("Given user-supplied mode strings", t, func() {
		Convey("When parsing known modes", func() {
			for in, want := range map[string]scoring.Mode{
				"overall":     scoring.Overall,
				"Attendance":  scoring.AttendanceOnly,
				"PERFORMANCE": scoring.PerformanceComposite,
				" rating ":    scoring.RatingOnly,
				"":            scoring.Overall,
			} {
				mode, err := scoring.ParseMode(in)
				So(err, ShouldBeNil)
				So(mode, ShouldEqual, want)
			}
		})

		Convey("When parsing an unknown mode", func() {
			_, err := scoring.ParseMode("popularity")

			Convey("Then an unknown-mode error is returned", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown scoring mode")
			})
		})
	})
}
