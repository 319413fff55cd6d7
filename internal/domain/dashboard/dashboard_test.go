package dashboard_test

import (
	"testing"

	"github.com/okian/edutrack/internal/domain/dashboard"
	"github.com/okian/edutrack/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSummarize(t *testing.T) {
	Convey("Given no entries", t, func() {
		s := dashboard.Summarize(nil)

		Convey("Then every figure is zero", func() {
			So(s, ShouldResemble, dashboard.Summary{})
		})
	})

	Convey("Given the sample entries", t, func() {
		s := dashboard.Summarize(model.SampleEntries())

		Convey("Then totals add up and the average is rounded to one decimal", func() {
			So(s.TopicsStudied, ShouldEqual, 5)
			So(s.TotalCorrect, ShouldEqual, 80)
			So(s.TotalQuestions, ShouldEqual, 100)
			So(s.AverageScorePercent, ShouldEqual, 80.0)
		})
	})

	Convey("Given entries with an uneven ratio", t, func() {
		s := dashboard.Summarize([]model.ProgressEntry{
			{Correct: 2, Wrong: 1, Total: 3},
		})

		Convey("Then the average keeps one decimal", func() {
			So(s.AverageScorePercent, ShouldEqual, 66.7)
		})
	})
}

func TestSearch(t *testing.T) {
	Convey("Given the sample entries", t, func() {
		entries := model.SampleEntries()

		Convey("When searching by subject in another case", func() {
			got := dashboard.Search(entries, "MATH")

			Convey("Then only the matching entry is kept", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].Subject, ShouldEqual, "Mathematics")
			})
		})

		Convey("When searching by topic fragment", func() {
			got := dashboard.Search(entries, "theory")

			Convey("Then the topic matches", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].Topic, ShouldEqual, "Color Theory")
			})
		})

		Convey("When the term is empty", func() {
			Convey("Then everything is kept", func() {
				So(dashboard.Search(entries, ""), ShouldHaveLength, 5)
			})
		})
	})
}

func TestBuild(t *testing.T) {
	Convey("Given a search that filters entries", t, func() {
		view := dashboard.Build(model.SampleEntries(), "science")

		Convey("Then the summary still covers all entries", func() {
			So(view.Summary.TopicsStudied, ShouldEqual, 5)
			So(view.Entries, ShouldHaveLength, 1)
			So(view.Entries[0].AccuracyPercent, ShouldEqual, 75)
			So(view.Search, ShouldEqual, "science")
		})
	})

	Convey("Given an entry with no questions", t, func() {
		rows := dashboard.Rows([]model.ProgressEntry{{ID: "z"}})

		Convey("Then its accuracy is zero", func() {
			So(rows[0].AccuracyPercent, ShouldEqual, 0)
		})
	})
}
