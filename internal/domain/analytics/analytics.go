// Package analytics builds the teacher report over the student dataset.
package analytics

import (
	"strings"

	"github.com/okian/edutrack/internal/domain/model"
	"github.com/okian/edutrack/internal/domain/scoring"
	"github.com/okian/edutrack/internal/domain/types"
)

// Trend labels.
const (
	TrendUp     = "up"
	TrendSteady = "steady"
	TrendDown   = "down"
)

// Top performer sources.
const (
	SourceComputed = "computed"
	SourceFixed    = "fixed"
)

const (
	trendUpThreshold     = 80
	trendSteadyThreshold = 60
	allFilter            = "all"
)

// Filter narrows the timeline, distribution and subject averages. Empty or
// "all" disables a field. Student matches a roster id or name.
type Filter struct {
	Student string
	Subject string
}

// TimelinePoint is one record on the score timeline.
type TimelinePoint struct {
	Date    string `json:"date"`
	Score   int    `json:"score"`
	Student string `json:"student"`
}

// Overview holds class-wide figures over every record.
type Overview struct {
	TotalStudents int    `json:"totalStudents"`
	TotalEntries  int    `json:"totalEntries"`
	AverageScore  int    `json:"averageScore"`
	TopPerformer  string `json:"topPerformer"`
}

// StudentSummary is the per-student row of the report.
type StudentSummary struct {
	model.Student
	Entries      int    `json:"entries"`
	AverageScore int    `json:"averageScore"`
	Trend        string `json:"trend"`
}

// Report is the full teacher analytics view.
type Report struct {
	Timeline           []TimelinePoint          `json:"timeline"`
	Distribution       []types.CountBySubject   `json:"distribution"`
	SubjectAverages    []types.AverageBySubject `json:"subjectAverages"`
	Overview           Overview                 `json:"overview"`
	Students           []StudentSummary         `json:"students"`
	TopPerformerSource string                   `json:"topPerformerSource"`
}

// Engine computes reports over a fixed dataset.
type Engine struct {
	students          []model.Student
	records           []model.AnalyticsRecord
	fixedTopPerformer string
}

// NewEngine creates an Engine over the sample dataset.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		students: model.SampleStudents(),
		records:  model.SampleRecords(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Students returns the roster.
func (e *Engine) Students() []model.Student {
	return append([]model.Student(nil), e.students...)
}

// Report builds the report for f.
func (e *Engine) Report(f Filter) Report {
	filtered := e.filter(f)

	r := Report{
		Timeline:        make([]TimelinePoint, 0, len(filtered)),
		Distribution:    make([]types.CountBySubject, 0),
		SubjectAverages: make([]types.AverageBySubject, 0),
		Students:        make([]StudentSummary, 0, len(e.students)),
	}
	for _, rec := range filtered {
		r.Timeline = append(r.Timeline, TimelinePoint{Date: rec.Date, Score: rec.Score, Student: rec.Student})
	}

	// per-subject aggregates in first-seen order
	index := make(map[string]int)
	sums := make([]int, 0)
	for _, rec := range filtered {
		i, ok := index[rec.Subject]
		if !ok {
			i = len(r.Distribution)
			index[rec.Subject] = i
			r.Distribution = append(r.Distribution, types.CountBySubject{Subject: rec.Subject})
			sums = append(sums, 0)
		}
		r.Distribution[i].Count++
		sums[i] += rec.Score
	}
	for i, d := range r.Distribution {
		r.SubjectAverages = append(r.SubjectAverages, types.AverageBySubject{
			Subject: d.Subject,
			Average: mean(sums[i], d.Count),
		})
	}

	total := 0
	for _, rec := range e.records {
		total += rec.Score
	}
	r.Overview = Overview{
		TotalStudents: len(e.students),
		TotalEntries:  len(e.records),
		AverageScore:  mean(total, len(e.records)),
	}

	best := -1
	for _, s := range e.students {
		sum, n := 0, 0
		for _, rec := range e.records {
			if rec.Student == s.Name {
				sum += rec.Score
				n++
			}
		}
		avg := mean(sum, n)
		r.Students = append(r.Students, StudentSummary{Student: s, Entries: n, AverageScore: avg, Trend: trend(avg)})
		if n > 0 && avg > best {
			best = avg
			r.Overview.TopPerformer = s.Name
		}
	}
	r.TopPerformerSource = SourceComputed
	if e.fixedTopPerformer != "" {
		r.Overview.TopPerformer = e.fixedTopPerformer
		r.TopPerformerSource = SourceFixed
	}
	return r
}

// Scope names the filter for metrics labels.
func (f Filter) Scope() string {
	student := active(f.Student)
	subject := active(f.Subject)
	switch {
	case student && subject:
		return "student_subject"
	case student:
		return "student"
	case subject:
		return "subject"
	default:
		return "all"
	}
}

func (e *Engine) filter(f Filter) []model.AnalyticsRecord {
	name := ""
	if active(f.Student) {
		name = f.Student
		for _, s := range e.students {
			if strings.EqualFold(s.ID, f.Student) || strings.EqualFold(s.Name, f.Student) {
				name = s.Name
				break
			}
		}
	}
	out := make([]model.AnalyticsRecord, 0, len(e.records))
	for _, rec := range e.records {
		if name != "" && rec.Student != name {
			continue
		}
		if active(f.Subject) && !strings.EqualFold(rec.Subject, f.Subject) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func active(v string) bool {
	return v != "" && !strings.EqualFold(v, allFilter)
}

func mean(sum, n int) int {
	if n == 0 {
		return 0
	}
	return scoring.Round(float64(sum) / float64(n))
}

func trend(avg int) string {
	switch {
	case avg >= trendUpThreshold:
		return TrendUp
	case avg >= trendSteadyThreshold:
		return TrendSteady
	default:
		return TrendDown
	}
}
