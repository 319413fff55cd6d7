package seed

import (
	"fmt"
	"io"

	"github.com/okian/edutrack/pkg/logger"
)

// SetupLogging initializes the logger for the CLI.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `edutrack seed
=============

Records generated practice sessions through the edutrack HTTP API and checks
that the dashboard totals grew by exactly what was submitted.

Usage:
  go run ./cmd/seed [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -entries int
        Number of sessions to record (default 50)
  -email string
        Sign-in email (default "seed@school.edu")
  -password string
        Sign-in password (default "seed")
  -workers int
        Number of concurrent submissions (default CPU cores)
  -timeout duration
        HTTP request timeout (default 10s)
  -seed uint
        Generator seed, 0 picks one from the clock
  -verbose
        Log every submission
  -help
        Show this help message

Examples:
  go run ./cmd/seed -entries 200 -workers 8
  go run ./cmd/seed -seed 42 -verbose
`)
}
