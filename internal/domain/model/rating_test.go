package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/pickup/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParsePosition(t *testing.T) {
	convey.Convey("Given position names", t, func() {
		convey.Convey("When parsing canonical names", func() {
			for _, p := range model.Positions() {
				got, err := model.ParsePosition(string(p))
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, p)
			}
		})

		convey.Convey("When parsing lowercase names with spaces", func() {
			got, err := model.ParsePosition("  mid ")

			convey.Convey("Then it should normalize them", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, model.MID)
			})
		})

		convey.Convey("When parsing an unknown name", func() {
			_, err := model.ParsePosition("striker")

			convey.Convey("Then it should return ErrInvalidPosition", func() {
				convey.So(errors.Is(err, model.ErrInvalidPosition), convey.ShouldBeTrue)
			})
		})
	})
}

func TestPositionsOrder(t *testing.T) {
	convey.Convey("Positions are listed goalkeeper first", t, func() {
		convey.So(model.Positions(), convey.ShouldResemble, []model.Position{model.GK, model.DEF, model.MID, model.FWD})
	})
}

func TestRating(t *testing.T) {
	convey.Convey("Given rating values", t, func() {
		convey.Convey("When the value is within bounds", func() {
			for _, n := range []int{1, 5, 10} {
				r, err := model.NewRating(n)
				convey.So(err, convey.ShouldBeNil)
				convey.So(int(r), convey.ShouldEqual, n)
			}
		})

		convey.Convey("When the value is out of bounds", func() {
			for _, n := range []int{0, -3, 11, 100} {
				_, err := model.NewRating(n)
				convey.So(errors.Is(err, model.ErrInvalidRating), convey.ShouldBeTrue)
			}
		})

		convey.Convey("When parsing text", func() {
			r, err := model.ParseRating(" 7 ")
			convey.So(err, convey.ShouldBeNil)
			convey.So(r, convey.ShouldEqual, model.Rating(7))

			_, err = model.ParseRating("7.5")
			convey.So(errors.Is(err, model.ErrInvalidRating), convey.ShouldBeTrue)

			_, err = model.ParseRating("eleven")
			convey.So(errors.Is(err, model.ErrInvalidRating), convey.ShouldBeTrue)
		})
	})
}

func TestTableUpsert(t *testing.T) {
	convey.Convey("Given an empty table", t, func() {
		table := model.Table{}

		convey.Convey("When the same cell is upserted twice", func() {
			table.Upsert("Ronaldo", model.FWD, "alice", 9)
			table.Upsert("Ronaldo", model.FWD, "alice", 9)

			convey.Convey("Then exactly one rating is stored", func() {
				convey.So(table.Count(), convey.ShouldEqual, 1)
				convey.So(table["Ronaldo"][model.FWD]["alice"], convey.ShouldEqual, model.Rating(9))
			})
		})

		convey.Convey("When a user resubmits a different rating", func() {
			table.Upsert("Ronaldo", model.FWD, "alice", 9)
			table.Upsert("Ronaldo", model.FWD, "alice", 4)

			convey.Convey("Then the newer rating wins", func() {
				convey.So(table.Count(), convey.ShouldEqual, 1)
				convey.So(table["Ronaldo"][model.FWD]["alice"], convey.ShouldEqual, model.Rating(4))
			})
		})

		convey.Convey("When cloning", func() {
			table.Upsert("Kante", model.MID, "bob", 8)
			cp := table.Clone()
			cp.Upsert("Kante", model.MID, "bob", 2)
			cp.Upsert("Kante", model.DEF, "bob", 7)

			convey.Convey("Then the original is untouched", func() {
				convey.So(table["Kante"][model.MID]["bob"], convey.ShouldEqual, model.Rating(8))
				convey.So(table["Kante"], convey.ShouldNotContainKey, model.DEF)
			})
		})
	})
}

func TestSubmissionValidate(t *testing.T) {
	convey.Convey("Given submissions", t, func() {
		valid := model.Submission{Player: "Pele", Position: model.FWD, User: "carol", Rating: 10}

		convey.Convey("A complete submission is valid", func() {
			convey.So(valid.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Blank names are rejected", func() {
			s := valid
			s.Player = "   "
			convey.So(errors.Is(s.Validate(), model.ErrEmptyName), convey.ShouldBeTrue)

			s = valid
			s.User = ""
			convey.So(errors.Is(s.Validate(), model.ErrEmptyName), convey.ShouldBeTrue)
		})

		convey.Convey("Unknown positions are rejected", func() {
			s := valid
			s.Position = "LW"
			convey.So(errors.Is(s.Validate(), model.ErrInvalidPosition), convey.ShouldBeTrue)
		})

		convey.Convey("Out of range ratings are rejected", func() {
			s := valid
			s.Rating = 11
			convey.So(errors.Is(s.Validate(), model.ErrInvalidRating), convey.ShouldBeTrue)
		})
	})
}
