// Package model contains domain models passed between layers.
package model

// DateLayout is the persisted and accepted calendar date format.
const DateLayout = "2006-01-02"

// ProgressEntry is one recorded study session. Entries are immutable once
// created; the JSON layout is the persisted layout.
type ProgressEntry struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Subject  string  `json:"subject"`
	Topic    string  `json:"topic"`
	Correct  int     `json:"correct"`
	Wrong    int     `json:"wrong"`
	Total    int     `json:"total"`
	NetScore float64 `json:"netScore"`
}

// Role distinguishes the two kinds of signed-in user.
type Role string

// Known roles.
const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// User is the signed-in identity stored in the session.
type User struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsTeacher reports whether the user may see analytics.
func (u User) IsTeacher() bool { return u.Role == RoleTeacher }

// Student is a roster member of the analytics dataset.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AnalyticsRecord is one graded activity of a student.
type AnalyticsRecord struct {
	Date    string `json:"date"`
	Student string `json:"student"`
	Subject string `json:"subject"`
	Score   int    `json:"score"`
}
