// Package auth isolates sign-in behind an interface so the mock can be
// swapped for a real identity provider.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/edutrack/internal/domain/model"
)

const (
	defaultDelay  = time.Second
	teacherMarker = "teacher"
)

// Authenticator verifies credentials and returns the signed-in user.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (model.User, error)
}

// Option applies a configuration option to the MockAuthenticator.
type Option func(*MockAuthenticator)

// WithDelay sets the artificial sign-in delay. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(m *MockAuthenticator) {
		if d >= 0 {
			m.delay = d
		}
	}
}

// MockAuthenticator accepts any non-empty credentials. Emails containing
// "teacher" sign in as teachers, everyone else as students.
type MockAuthenticator struct {
	delay time.Duration
}

// NewMockAuthenticator creates a mock authenticator with configuration options.
func NewMockAuthenticator(opts ...Option) *MockAuthenticator {
	m := &MockAuthenticator{delay: defaultDelay}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Authenticate waits the configured delay and then checks the credentials.
func (m *MockAuthenticator) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	const op = "auth.Authenticate"
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return model.User{}, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-timer.C:
		}
	}
	if email == "" || password == "" {
		return model.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	role := model.RoleStudent
	if strings.Contains(email, teacherMarker) {
		role = model.RoleTeacher
	}
	return model.User{Email: email, Role: role}, nil
}
