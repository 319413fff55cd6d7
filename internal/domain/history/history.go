// Package history filters, sorts and exports the study history list.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/okian/edutrack/internal/domain/dashboard"
	"github.com/okian/edutrack/internal/domain/model"
	"github.com/okian/edutrack/internal/domain/scoring"
	"github.com/okian/edutrack/internal/domain/types"
)

// Sort keys understood by Apply.
const (
	SortDate     = "date"
	SortSubject  = "subject"
	SortScore    = "score"
	SortAccuracy = "accuracy"
)

// AllSubjects disables the subject filter.
const AllSubjects = "all"

// View is the visible history list with its subject filter options.
type View struct {
	Search   string           `json:"search"`
	Subject  string           `json:"subject"`
	SortBy   string           `json:"sortBy"`
	Subjects []string         `json:"subjects"`
	Entries  []types.EntryRow `json:"entries"`
}

// Query selects and orders the history list.
type Query struct {
	Search  string
	Subject string
	SortBy  string
}

// Apply returns the visible history for q. The input slice is not modified.
func Apply(entries []model.ProgressEntry, q Query) []model.ProgressEntry {
	out := make([]model.ProgressEntry, 0, len(entries))
	for _, e := range entries {
		if !dashboard.Matches(e, q.Search) {
			continue
		}
		if q.Subject != "" && !strings.EqualFold(q.Subject, AllSubjects) && !strings.EqualFold(e.Subject, q.Subject) {
			continue
		}
		out = append(out, e)
	}

	if less := lessFunc(out, q.SortBy); less != nil {
		sort.SliceStable(out, less)
	}
	return out
}

func lessFunc(s []model.ProgressEntry, key string) func(i, j int) bool {
	switch strings.ToLower(key) {
	case SortDate:
		return func(i, j int) bool {
			ti, iok := parseDate(s[i].Date)
			tj, jok := parseDate(s[j].Date)
			if iok != jok {
				return iok
			}
			return iok && ti.After(tj)
		}
	case SortSubject:
		return func(i, j int) bool { return s[i].Subject < s[j].Subject }
	case SortScore:
		return func(i, j int) bool { return s[i].NetScore > s[j].NetScore }
	case SortAccuracy:
		return func(i, j int) bool {
			return scoring.Ratio(s[i].Correct, s[i].Total) > scoring.Ratio(s[j].Correct, s[j].Total)
		}
	default:
		return nil
	}
}

func parseDate(v string) (time.Time, bool) {
	t, err := time.Parse(model.DateLayout, v)
	return t, err == nil
}

// Subjects lists the distinct subjects of entries in first-seen order.
func Subjects(entries []model.ProgressEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0)
	for _, e := range entries {
		if _, ok := seen[e.Subject]; ok {
			continue
		}
		seen[e.Subject] = struct{}{}
		out = append(out, e.Subject)
	}
	return out
}

var csvHeader = []string{"id", "date", "subject", "topic", "correct", "wrong", "total", "netScore", "accuracyPercent"}

// WriteCSV writes entries as CSV with a header row.
func WriteCSV(w io.Writer, entries []model.ProgressEntry) error {
	const op = "history.WriteCSV"
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrExport, err)
	}
	for _, e := range entries {
		rec := []string{
			e.ID,
			e.Date,
			e.Subject,
			e.Topic,
			strconv.Itoa(e.Correct),
			strconv.Itoa(e.Wrong),
			strconv.Itoa(e.Total),
			strconv.FormatFloat(e.NetScore, 'f', -1, 64),
			strconv.Itoa(scoring.AccuracyPercent(e.Correct, e.Total)),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("%s: %w: %w", op, ErrExport, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrExport, err)
	}
	return nil
}
