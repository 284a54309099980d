package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/okian/pickup/internal/adapters/repository"
	"github.com/okian/pickup/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()

		Convey("When loading", func() {
			table, err := store.LoadAll(ctx)

			Convey("Then the table is empty", func() {
				So(err, ShouldBeNil)
				So(table, ShouldBeEmpty)
			})
		})

		Convey("When the same rating is upserted twice", func() {
			So(store.Upsert(ctx, "Messi", model.FWD, "alice", 10), ShouldBeNil)
			So(store.Upsert(ctx, "Messi", model.FWD, "alice", 10), ShouldBeNil)
			table, err := store.LoadAll(ctx)

			Convey("Then a single unchanged entry exists", func() {
				So(err, ShouldBeNil)
				So(table.Count(), ShouldEqual, 1)
				So(table["Messi"][model.FWD]["alice"], ShouldEqual, model.Rating(10))
			})
		})

		Convey("When a user resubmits", func() {
			So(store.Upsert(ctx, "Messi", model.MID, "bob", 6), ShouldBeNil)
			So(store.Upsert(ctx, "Messi", model.MID, "bob", 9), ShouldBeNil)
			table, _ := store.LoadAll(ctx)

			Convey("Then the rating is overwritten", func() {
				So(table["Messi"][model.MID], ShouldResemble, model.Ratings{"bob": 9})
			})
		})

		Convey("When the loaded table is mutated", func() {
			So(store.Upsert(ctx, "Messi", model.GK, "carol", 2), ShouldBeNil)
			table, _ := store.LoadAll(ctx)
			table.Upsert("Messi", model.GK, "carol", 8)
			again, _ := store.LoadAll(ctx)

			Convey("Then the store keeps its own copy", func() {
				So(again["Messi"][model.GK]["carol"], ShouldEqual, model.Rating(2))
			})
		})

		Convey("When seeded", func() {
			seed := model.Table{}
			seed.Upsert("Iniesta", model.MID, "dave", 9)
			store.Seed(seed)
			table, _ := store.LoadAll(ctx)
			So(table["Iniesta"][model.MID]["dave"], ShouldEqual, model.Rating(9))
		})

		Convey("When used concurrently", func() {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					user := string(rune('a' + i))
					_ = store.Upsert(ctx, "Xavi", model.MID, user, model.Rating(i%10+1))
					_, _ = store.LoadAll(ctx)
				}(i)
			}
			wg.Wait()
			table, _ := store.LoadAll(ctx)
			So(len(table["Xavi"][model.MID]), ShouldEqual, 20)
		})

		Convey("When closed", func() {
			So(store.Close(), ShouldBeNil)
			_, loadErr := store.LoadAll(ctx)
			upsertErr := store.Upsert(ctx, "Messi", model.FWD, "alice", 10)

			Convey("Then operations report the store as unavailable", func() {
				So(errors.Is(loadErr, repository.ErrStoreUnavailable), ShouldBeTrue)
				So(errors.Is(upsertErr, repository.ErrStoreUnavailable), ShouldBeTrue)
			})
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Given store settings", t, func() {
		Convey("The default driver is memory", func() {
			s, err := repository.Open(repository.Settings{})
			So(err, ShouldBeNil)
			_, ok := s.(*repository.MemoryStore)
			So(ok, ShouldBeTrue)
		})

		Convey("The postgres driver yields a PostgresStore without dialing", func() {
			s, err := repository.Open(repository.Settings{Driver: repository.DriverPostgres, PostgresDSN: "postgres://x@127.0.0.1:1/none"})
			So(err, ShouldBeNil)
			_, ok := s.(*repository.PostgresStore)
			So(ok, ShouldBeTrue)
			So(s.Close(), ShouldBeNil)
		})

		Convey("The sheets driver yields a SheetsStore without dialing", func() {
			s, err := repository.Open(repository.Settings{Driver: repository.DriverSheets, SpreadsheetID: "sheet-id"})
			So(err, ShouldBeNil)
			_, ok := s.(*repository.SheetsStore)
			So(ok, ShouldBeTrue)
		})

		Convey("Unknown drivers are rejected", func() {
			_, err := repository.Open(repository.Settings{Driver: "mongo"})
			So(errors.Is(err, repository.ErrUnknownDriver), ShouldBeTrue)
		})
	})
}
