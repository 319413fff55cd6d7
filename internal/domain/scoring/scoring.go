// Package scoring derives the computed fields of a study session.
//
// Rounding follows half-up semantics on the scaled value (floor(x*10^n + 0.5)),
// so 2.345 rounds to 2.35 and -0.125 rounds to -0.12.
package scoring

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/okian/edutrack/internal/domain/model"
)

// wrongPenalty is the fraction of a point a wrong answer costs.
const wrongPenalty = 4

// Total returns the number of answered questions.
func Total(correct, wrong int) int { return correct + wrong }

// NetScore returns correct minus a quarter point per wrong answer, rounded to
// two decimals.
func NetScore(correct, wrong int) float64 {
	return Round2(float64(correct) - float64(wrong)/wrongPenalty)
}

// AccuracyPercent returns round(100*correct/total), or 0 for an empty session.
func AccuracyPercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return Round(100 * float64(correct) / float64(total))
}

// Ratio returns correct/total, or 0 for an empty session.
func Ratio(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// Round rounds half-up to the nearest integer.
func Round(x float64) int { return int(math.Floor(x + 0.5)) }

// Round1 rounds half-up to one decimal.
func Round1(x float64) float64 { return math.Floor(x*10+0.5) / 10 }

// Round2 rounds half-up to two decimals.
func Round2(x float64) float64 { return math.Floor(x*100+0.5) / 100 }

// ParseCount parses the leading integer of raw the way a lenient form field
// does: leading whitespace is skipped, an optional sign is honoured and
// parsing stops at the first non-digit. ok is false when no digit was found
// or the value does not fit in an int.
func ParseCount(raw string) (n int, ok bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(sign + s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// NewEntry builds a progress entry with its derived fields filled in.
func NewEntry(id, date, subject, topic string, correct, wrong int) model.ProgressEntry {
	return model.ProgressEntry{
		ID:       id,
		Date:     date,
		Subject:  subject,
		Topic:    topic,
		Correct:  correct,
		Wrong:    wrong,
		Total:    Total(correct, wrong),
		NetScore: NetScore(correct, wrong),
	}
}
