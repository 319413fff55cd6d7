// Package seed drives a running edutrack server through its HTTP API to
// record generated practice sessions and verify the dashboard afterwards.
package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Entries  int           // Number of sessions to record
	Email    string        // Sign-in email
	Password string        // Sign-in password
	Workers  int           // Number of concurrent submissions
	Timeout  time.Duration // HTTP request timeout
	Seed     uint64        // Generator seed; zero picks one from the clock
	Verbose  bool          // Log every submission
}

// Session is one generated practice session.
type Session struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	Correct int    `json:"correct"`
	Wrong   int    `json:"wrong"`
}

// Summary mirrors the dashboard headline statistics.
type Summary struct {
	TopicsStudied       int     `json:"topicsStudied"`
	TotalCorrect        int     `json:"totalCorrect"`
	TotalQuestions      int     `json:"totalQuestions"`
	AverageScorePercent float64 `json:"averageScorePercent"`
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Successful int
	Failed     int
	Before     Summary
	After      Summary
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

type subject struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Topics []string `json:"topics"`
}

type draft struct {
	ID       string `json:"id"`
	StepName string `json:"stepName"`
	Entry    *struct {
		ID string `json:"id"`
	} `json:"entry"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
