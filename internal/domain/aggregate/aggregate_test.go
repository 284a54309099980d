package aggregate_test

import (
	"testing"

	"github.com/okian/pickup/internal/domain/aggregate"
	"github.com/okian/pickup/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPerPositionAverage(t *testing.T) {
	Convey("Given per-position ratings", t, func() {
		Convey("When the mapping is empty", func() {
			avg, ok := aggregate.PerPositionAverage(model.Ratings{})

			Convey("Then the average is absent rather than zero", func() {
				So(ok, ShouldBeFalse)
				So(avg, ShouldEqual, 0.0)
			})
		})

		Convey("When the mapping is nil", func() {
			_, ok := aggregate.PerPositionAverage(nil)
			So(ok, ShouldBeFalse)
		})

		Convey("When alice gives 8 and bob gives 6", func() {
			ratings := model.Ratings{"alice": 8, "bob": 6}
			avg, ok := aggregate.PerPositionAverage(ratings)

			Convey("Then the average is 7.0 with a sorted tooltip", func() {
				So(ok, ShouldBeTrue)
				So(avg, ShouldEqual, 7.0)
				So(aggregate.Tooltip(ratings), ShouldEqual, "alice: 8, bob: 6")
			})
		})

		Convey("When the mean has more than two decimals", func() {
			// 22 / 3 = 7.333...
			avg, ok := aggregate.PerPositionAverage(model.Ratings{"a": 7, "b": 7, "c": 8})

			Convey("Then it is rounded to two decimals", func() {
				So(ok, ShouldBeTrue)
				So(avg, ShouldEqual, 7.33)
			})
		})

		Convey("When the mean rounds up", func() {
			// 20 / 3 = 6.666...
			avg, _ := aggregate.PerPositionAverage(model.Ratings{"a": 6, "b": 7, "c": 7})
			So(avg, ShouldEqual, 6.67)
		})

		Convey("When a single user rated the position", func() {
			avg, ok := aggregate.PerPositionAverage(model.Ratings{"zoe": 3})
			So(ok, ShouldBeTrue)
			So(avg, ShouldEqual, 3.0)
		})
	})
}

func TestOverallAverage(t *testing.T) {
	Convey("Given player records", t, func() {
		Convey("When the player has no ratings anywhere", func() {
			So(aggregate.OverallAverage(nil), ShouldEqual, 0.0)
			So(aggregate.OverallAverage(model.PlayerRecord{}), ShouldEqual, 0.0)
			So(aggregate.OverallAverage(model.PlayerRecord{model.GK: {}}), ShouldEqual, 0.0)
		})

		Convey("When only one position is rated", func() {
			rec := model.PlayerRecord{model.DEF: {"alice": 9, "bob": 4}}

			Convey("Then the overall equals that position's mean", func() {
				So(aggregate.OverallAverage(rec), ShouldEqual, 6.5)
			})
		})

		Convey("When some positions are empty", func() {
			rec := model.PlayerRecord{
				model.GK:  {"alice": 8, "bob": 6}, // 7
				model.MID: {"alice": 3},           // 3
				model.FWD: {},
			}

			Convey("Then empty positions are excluded instead of counted as zero", func() {
				So(aggregate.OverallAverage(rec), ShouldEqual, 5.0)
			})
		})

		Convey("When per-position means are not round numbers", func() {
			rec := model.PlayerRecord{
				model.GK:  {"a": 7, "b": 7, "c": 8}, // 7.333...
				model.DEF: {"a": 6, "b": 7, "c": 7}, // 6.666...
			}

			Convey("Then unrounded means are averaged", func() {
				So(aggregate.OverallAverage(rec), ShouldAlmostEqual, 7.0, 1e-9)
			})
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given a player record", t, func() {
		rec := model.PlayerRecord{
			model.GK:  {"bob": 6, "alice": 8},
			model.FWD: {"carol": 10},
		}

		Convey("When it is summarized", func() {
			s := aggregate.Summarize("Casillas", rec)

			Convey("Then only rated positions are present", func() {
				So(s.Player, ShouldEqual, "Casillas")
				So(s.Positions, ShouldContainKey, model.GK)
				So(s.Positions, ShouldContainKey, model.FWD)
				So(s.Positions, ShouldNotContainKey, model.DEF)
				So(s.Positions, ShouldNotContainKey, model.MID)
			})

			Convey("And each position carries average, count and tooltip", func() {
				gk := s.Positions[model.GK]
				So(gk.Average, ShouldEqual, 7.0)
				So(gk.Count, ShouldEqual, 2)
				So(gk.Tooltip, ShouldEqual, "alice: 8, bob: 6")
			})

			Convey("And the overall and rating count are derived", func() {
				So(s.Overall, ShouldEqual, 8.5)
				So(s.Ratings, ShouldEqual, 3)
				So(s.Rated(), ShouldBeTrue)
			})
		})

		Convey("When an empty record is summarized", func() {
			s := aggregate.Summarize("Nobody", model.PlayerRecord{})
			So(s.Rated(), ShouldBeFalse)
			So(s.Overall, ShouldEqual, 0.0)
			So(s.Positions, ShouldBeEmpty)
		})
	})
}

func TestBoardAndEntries(t *testing.T) {
	Convey("Given a rating table", t, func() {
		table := model.Table{}
		table.Upsert("Zidane", model.MID, "alice", 9)
		table.Upsert("Buffon", model.GK, "alice", 8)
		table.Upsert("Buffon", model.GK, "bob", 10)

		Convey("When the board is built", func() {
			board := aggregate.Board(table)

			Convey("Then players are ordered by name", func() {
				So(len(board), ShouldEqual, 2)
				So(board[0].Player, ShouldEqual, "Buffon")
				So(board[1].Player, ShouldEqual, "Zidane")
			})

			Convey("And entries carry the overall averages", func() {
				entries := aggregate.Entries(board)
				So(len(entries), ShouldEqual, 2)
				So(entries[0].Player, ShouldEqual, "Buffon")
				So(entries[0].Average, ShouldEqual, 9.0)
				So(entries[1].Average, ShouldEqual, 9.0)
			})
		})

		Convey("When the table is empty", func() {
			So(aggregate.Board(model.Table{}), ShouldBeEmpty)
		})
	})
}

func TestRound2(t *testing.T) {
	Convey("Round2 keeps two decimals", t, func() {
		So(aggregate.Round2(20.0/3.0), ShouldEqual, 6.67)
		So(aggregate.Round2(7.125), ShouldEqual, 7.13)
		So(aggregate.Round2(5.0), ShouldEqual, 5.0)
	})
}
