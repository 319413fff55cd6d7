package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/okian/edutrack/internal/adapters/kvstore"
	"github.com/okian/edutrack/internal/domain/model"
)

// SessionStore holds the signed-in user.
type SessionStore struct {
	kv kvstore.Store
}

// NewSessionStore creates a SessionStore over kv.
func NewSessionStore(kv kvstore.Store) *SessionStore {
	return &SessionStore{kv: kv}
}

// Save stores u as the signed-in user.
func (s *SessionStore) Save(ctx context.Context, u model.User) error {
	const op = "repository.Save"
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrPersist, err)
	}
	if err := s.kv.Set(ctx, UserKey, raw); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrPersist, err)
	}
	return nil
}

// Current returns the signed-in user, or ErrNoSession when there is none or
// the stored value is unusable.
func (s *SessionStore) Current(ctx context.Context) (model.User, error) {
	const op = "repository.Current"
	raw, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return model.User{}, fmt.Errorf("%s: %w", op, ErrNoSession)
		}
		return model.User{}, fmt.Errorf("%s: %w: %w", op, ErrNoSession, err)
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil || u.Email == "" {
		return model.User{}, fmt.Errorf("%s: %w", op, ErrNoSession)
	}
	if u.Role != model.RoleTeacher {
		u.Role = model.RoleStudent
	}
	return u, nil
}

// Clear removes the signed-in user.
func (s *SessionStore) Clear(ctx context.Context) error {
	const op = "repository.Clear"
	if err := s.kv.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrPersist, err)
	}
	return nil
}
