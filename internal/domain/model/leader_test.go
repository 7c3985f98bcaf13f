package model_test

import (
	"testing"

	"github.com/accountable-india/civicrank/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLeader_SubmitRating(t *testing.T) {
	Convey("Given a leader with an existing rating history", t, func() {
		leader := model.Leader{ID: "1", Name: "Priya Sharma", Rating: 4.0, RatingCount: 10}

		Convey("When a citizen submits a 5-star rating", func() {
			err := leader.SubmitRating(5)

			Convey("Then the average folds in the new value", func() {
				So(err, ShouldBeNil)
				// (4.0*10 + 5) / 11 = 4.0909... rounded to one decimal
				So(leader.Rating, ShouldEqual, 4.1)
			})

			Convey("And the count increments by exactly one", func() {
				So(leader.RatingCount, ShouldEqual, 11)
			})
		})

		Convey("When every allowed value is submitted against a fresh record", func() {
			Convey("Then the fold matches the weighted mean for each", func() {
				for v := model.MinRating; v <= model.MaxRating; v++ {
					l := model.Leader{Rating: 3.0, RatingCount: 4}
					So(l.SubmitRating(v), ShouldBeNil)
					expected := (3.0*4 + float64(v)) / 5
					// stored value is rounded to one decimal
					So(l.Rating, ShouldAlmostEqual, expected, 0.05)
					So(l.RatingCount, ShouldEqual, 5)
				}
			})
		})

		Convey("When the leader has no ratings yet", func() {
			l := model.Leader{Rating: 3.0, RatingCount: 0}
			So(l.SubmitRating(5), ShouldBeNil)

			Convey("Then the first submission replaces the default outright", func() {
				So(l.Rating, ShouldEqual, 5.0)
				So(l.RatingCount, ShouldEqual, 1)
			})
		})

		Convey("When the value is out of range", func() {
			Convey("Then zero is rejected", func() {
				err := leader.SubmitRating(0)
				So(err, ShouldEqual, model.ErrInvalidRating)
			})

			Convey("Then six is rejected", func() {
				err := leader.SubmitRating(6)
				So(err, ShouldEqual, model.ErrInvalidRating)
			})

			Convey("And the record is untouched", func() {
				_ = leader.SubmitRating(9)
				So(leader.Rating, ShouldEqual, 4.0)
				So(leader.RatingCount, ShouldEqual, 10)
			})
		})
	})
}

func TestLeader_ToggleFollow(t *testing.T) {
	Convey("Given an unfollowed leader", t, func() {
		leader := model.Leader{ID: "2"}

		Convey("When follow is toggled twice", func() {
			leader.ToggleFollow()
			So(leader.IsFollowed, ShouldBeTrue)
			leader.ToggleFollow()

			Convey("Then the preference returns to its original state", func() {
				So(leader.IsFollowed, ShouldBeFalse)
			})
		})
	})
}

func TestRoster(t *testing.T) {
	Convey("Given the seed roster", t, func() {
		roster := model.SeedRoster()

		Convey("Then every id is unique", func() {
			seen := make(map[string]bool)
			for _, l := range roster {
				So(seen[l.ID], ShouldBeFalse)
				seen[l.ID] = true
			}
		})

		Convey("Then ratings sit inside the documented range", func() {
			for _, l := range roster {
				So(l.Rating, ShouldBeBetweenOrEqual, 0, 5)
				So(l.RatingCount, ShouldBeGreaterThanOrEqualTo, 0)
			}
		})

		Convey("When looking up a known id", func() {
			l := roster.FindByID("3")

			Convey("Then the matching leader is returned by reference", func() {
				So(l, ShouldNotBeNil)
				So(l.Name, ShouldEqual, "Mamata Banerjee")
				l.IsFollowed = true
				So(roster.FindByID("3").IsFollowed, ShouldBeTrue)
			})
		})

		Convey("When looking up an unknown id", func() {
			So(roster.FindByID("no-such-id"), ShouldBeNil)
		})

		Convey("When checking names case-insensitively", func() {
			So(roster.ContainsName("narendra modi"), ShouldBeTrue)
			So(roster.ContainsName("NARENDRA MODI"), ShouldBeTrue)
			So(roster.ContainsName("Someone Else"), ShouldBeFalse)
		})

		Convey("When cloning", func() {
			clone := roster.Clone()
			clone[0].Rating = 1.0

			Convey("Then mutations do not leak back", func() {
				So(roster[0].Rating, ShouldNotEqual, 1.0)
			})
		})
	})
}
