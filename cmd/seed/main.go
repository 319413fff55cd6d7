package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/edutrack/internal/seed"
)

// Default configuration constants.
const (
	defaultEntries     = 50
	defaultTimeout     = 10 * time.Second
	defaultSeedTimeout = 10 * time.Minute
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		entries  = flag.Int("entries", defaultEntries, "Number of sessions to record")
		email    = flag.String("email", "seed@school.edu", "Sign-in email")
		password = flag.String("password", "seed", "Sign-in password")
		workers  = flag.Int("workers", runtime.NumCPU(), "Number of concurrent submissions")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seedVal  = flag.Uint64("seed", 0, "Generator seed, 0 picks one from the clock")
		verbose  = flag.Bool("verbose", false, "Log every submission")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp(os.Stdout)
		return 0
	}

	if err := seed.SetupLogging(*verbose); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultSeedTimeout)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:  *baseURL,
		Entries:  *entries,
		Email:    *email,
		Password: *password,
		Workers:  *workers,
		Timeout:  *timeout,
		Seed:     *seedVal,
		Verbose:  *verbose,
	}
	if _, err := seed.Run(ctx, cfg); err != nil {
		_, _ = os.Stderr.WriteString("Seed failed: " + err.Error() + "\n")
		return 1
	}
	return 0
}
