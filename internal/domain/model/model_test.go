package model_test

import (
	"encoding/json"
	"testing"

	model "github.com/okian/edutrack/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestProgressEntryLayout(t *testing.T) {
	convey.Convey("Given a progress entry", t, func() {
		entry := model.ProgressEntry{ID: "1", Date: "2024-01-15", Subject: "Mathematics", Topic: "Algebra Basics", Correct: 18, Wrong: 2, Total: 20, NetScore: 17.5}

		convey.Convey("When it is serialized", func() {
			raw, err := json.Marshal(entry)

			convey.Convey("Then the persisted keys are camelCase", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(raw), convey.ShouldEqual,
					`{"id":"1","date":"2024-01-15","subject":"Mathematics","topic":"Algebra Basics","correct":18,"wrong":2,"total":20,"netScore":17.5}`)
			})
		})
	})
}

func TestCatalog(t *testing.T) {
	convey.Convey("Given the subject catalog", t, func() {
		subjects := model.Catalog()

		convey.Convey("Then it lists five subjects with five topics each", func() {
			convey.So(subjects, convey.ShouldHaveLength, 5)
			for _, s := range subjects {
				convey.So(s.Topics, convey.ShouldHaveLength, 5)
			}
			convey.So(subjects[0].Name, convey.ShouldEqual, "Mathematics")
		})

		convey.Convey("When the returned copy is mutated", func() {
			subjects[0].Topics[0] = "changed"

			convey.Convey("Then the catalog is unaffected", func() {
				convey.So(model.Catalog()[0].Topics[0], convey.ShouldEqual, "Algebra Basics")
			})
		})

		convey.Convey("When looking up subjects", func() {
			byID, okID := model.LookupSubject("math")
			byName, okName := model.LookupSubject("  science ")
			_, okMissing := model.LookupSubject("Music")

			convey.Convey("Then ids and names both resolve", func() {
				convey.So(okID, convey.ShouldBeTrue)
				convey.So(byID.Name, convey.ShouldEqual, "Mathematics")
				convey.So(okName, convey.ShouldBeTrue)
				convey.So(byName.HasTopic("Astronomy"), convey.ShouldBeTrue)
				convey.So(byName.HasTopic("Geometry"), convey.ShouldBeFalse)
				convey.So(okMissing, convey.ShouldBeFalse)
			})
		})
	})
}

func TestSampleData(t *testing.T) {
	convey.Convey("Given the sample datasets", t, func() {
		convey.Convey("Then the sample entries are newest first with consistent totals", func() {
			entries := model.SampleEntries()
			convey.So(entries, convey.ShouldHaveLength, 5)
			for i, e := range entries {
				convey.So(e.Total, convey.ShouldEqual, e.Correct+e.Wrong)
				if i > 0 {
					convey.So(e.Date < entries[i-1].Date, convey.ShouldBeTrue)
				}
			}
		})

		convey.Convey("Then the roster and records match", func() {
			convey.So(model.SampleStudents(), convey.ShouldHaveLength, 4)
			convey.So(model.SampleRecords(), convey.ShouldHaveLength, 6)
		})

		convey.Convey("Then user roles are distinguished", func() {
			convey.So(model.User{Email: "t@x", Role: model.RoleTeacher}.IsTeacher(), convey.ShouldBeTrue)
			convey.So(model.User{Email: "s@x", Role: model.RoleStudent}.IsTeacher(), convey.ShouldBeFalse)
		})
	})
}
