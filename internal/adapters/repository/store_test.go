package repository_test

import (
	"context"
	"testing"

	"github.com/accountable-india/civicrank/internal/adapters/repository"
	"github.com/accountable-india/civicrank/internal/domain/model"
	"github.com/accountable-india/civicrank/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func TestMemoryKV(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		ctx := context.Background()
		kv := repository.NewMemoryKV()

		Convey("When a key has never been set", func() {
			_, ok, err := kv.Get(ctx, "absent")

			Convey("Then it is reported absent without error", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a value is set and read back", func() {
			So(kv.Set(ctx, "k", "v1"), ShouldBeNil)
			v, ok, err := kv.Get(ctx, "k")

			Convey("Then the value round-trips", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "v1")
			})

			Convey("And a second set replaces it whole", func() {
				So(kv.Set(ctx, "k", "v2"), ShouldBeNil)
				v, _, _ := kv.Get(ctx, "k")
				So(v, ShouldEqual, "v2")
			})
		})

		Convey("When a key is deleted", func() {
			So(kv.Set(ctx, "k", "v"), ShouldBeNil)
			So(kv.Delete(ctx, "k"), ShouldBeNil)

			Convey("Then it is absent", func() {
				_, ok, _ := kv.Get(ctx, "k")
				So(ok, ShouldBeFalse)
			})

			Convey("And deleting again is not an error", func() {
				So(kv.Delete(ctx, "k"), ShouldBeNil)
			})
		})
	})
}

func TestSQLiteKV(t *testing.T) {
	Convey("Given an ephemeral sqlite store", t, func() {
		ctx := context.Background()
		kv, err := repository.NewSQLiteKV(ctx, ":memory:")
		So(err, ShouldBeNil)
		defer func() { _ = kv.Close() }()

		Convey("When a dataset blob is written and read back", func() {
			So(kv.Set(ctx, repository.KeyLeaders, `[{"id":"1"}]`), ShouldBeNil)
			v, ok, err := kv.Get(ctx, repository.KeyLeaders)

			Convey("Then the blob round-trips", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, `[{"id":"1"}]`)
			})
		})

		Convey("When the same key is written twice", func() {
			So(kv.Set(ctx, "k", "first"), ShouldBeNil)
			So(kv.Set(ctx, "k", "second"), ShouldBeNil)

			Convey("Then the last write wins", func() {
				v, _, _ := kv.Get(ctx, "k")
				So(v, ShouldEqual, "second")
			})
		})

		Convey("When a key is deleted", func() {
			So(kv.Set(ctx, "k", "v"), ShouldBeNil)
			So(kv.Delete(ctx, "k"), ShouldBeNil)
			_, ok, _ := kv.Get(ctx, "k")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestRosterStore(t *testing.T) {
	Convey("Given a roster store over an empty KV", t, func() {
		ctx := context.Background()
		kv := repository.NewMemoryKV()
		store := repository.NewRosterStore(kv, logger.Get())

		Convey("When loading with nothing persisted", func() {
			roster, err := store.Load(ctx)

			Convey("Then the seed roster is returned", func() {
				So(err, ShouldBeNil)
				So(len(roster), ShouldEqual, len(model.SeedRoster()))
			})
		})

		Convey("When a roster is saved and reloaded", func() {
			roster := model.Roster{{ID: "x", Name: "Test Leader", Rating: 3.5, RatingCount: 2}}
			So(store.Save(ctx, roster), ShouldBeNil)
			got, err := store.Load(ctx)

			Convey("Then the roster round-trips with order intact", func() {
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].ID, ShouldEqual, "x")
				So(got[0].Rating, ShouldEqual, 3.5)
			})
		})

		Convey("When the persisted payload is corrupt", func() {
			So(kv.Set(ctx, repository.KeyLeaders, "{not json"), ShouldBeNil)
			roster, err := store.Load(ctx)

			Convey("Then the seed roster is returned instead of an error", func() {
				So(err, ShouldBeNil)
				So(len(roster), ShouldEqual, len(model.SeedRoster()))
			})
		})
	})
}

func TestPromiseStore(t *testing.T) {
	Convey("Given a promise store over an empty KV", t, func() {
		ctx := context.Background()
		kv := repository.NewMemoryKV()
		store := repository.NewPromiseStore(kv, logger.Get())

		Convey("When loading with nothing persisted", func() {
			promises, err := store.Load(ctx)

			Convey("Then the list starts empty", func() {
				So(err, ShouldBeNil)
				So(promises, ShouldBeEmpty)
			})
		})

		Convey("When promises are saved and reloaded", func() {
			in := []model.Promise{{ID: "p1", Title: "Metro expansion"}}
			So(store.Save(ctx, in), ShouldBeNil)
			got, err := store.Load(ctx)

			Convey("Then they round-trip", func() {
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].Title, ShouldEqual, "Metro expansion")
			})
		})

		Convey("When the persisted payload is corrupt", func() {
			So(kv.Set(ctx, repository.KeyPromises, "oops"), ShouldBeNil)
			promises, err := store.Load(ctx)

			Convey("Then the list resets to empty", func() {
				So(err, ShouldBeNil)
				So(promises, ShouldBeEmpty)
			})
		})
	})
}
