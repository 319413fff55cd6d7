package seed

import "fmt"

// verifySummary checks that after equals before plus delta on the counting
// fields. The average is derived, so it is not compared.
func verifySummary(before, after, delta Summary) error {
	checks := []struct {
		name              string
		before, after, dx int
	}{
		{"topicsStudied", before.TopicsStudied, after.TopicsStudied, delta.TopicsStudied},
		{"totalCorrect", before.TotalCorrect, after.TotalCorrect, delta.TotalCorrect},
		{"totalQuestions", before.TotalQuestions, after.TotalQuestions, delta.TotalQuestions},
	}
	for _, c := range checks {
		if c.after != c.before+c.dx {
			return fmt.Errorf("%w: %s is %d, want %d+%d", ErrVerify, c.name, c.after, c.before, c.dx)
		}
	}
	return nil
}
