// Package repository persists progress entries and the signed-in user as
// JSON documents in a key-value store.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/okian/edutrack/internal/adapters/kvstore"
	"github.com/okian/edutrack/internal/domain/model"
	"github.com/okian/edutrack/pkg/logger"
	"github.com/okian/edutrack/pkg/metrics"
)

// Persisted keys.
const (
	EntriesKey = "progressEntries"
	UserKey    = "user"
)

// EntryStore holds the newest-first list of progress entries.
type EntryStore struct {
	kv       kvstore.Store
	fallback []model.ProgressEntry
	log      logger.Logger

	// mu serializes read-modify-write in Append.
	mu sync.Mutex
}

// NewEntryStore creates an EntryStore over kv.
func NewEntryStore(kv kvstore.Store, opts ...Option) *EntryStore {
	s := &EntryStore{
		kv:       kv,
		fallback: []model.ProgressEntry{},
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the stored entries, newest first. It never fails: a missing,
// malformed or unreadable list yields the fallback.
func (s *EntryStore) Load(ctx context.Context) []model.ProgressEntry {
	entries, err := s.read(ctx)
	if err != nil {
		s.log.Warn(ctx, "entry list unreadable, using fallback", logger.Error(err))
		metrics.RecordStoreFallback("read_error")
		return s.fallbackCopy()
	}
	return entries
}

// read returns the stored entries, or the fallback when the list is missing
// or malformed. Backend read errors are returned as is.
func (s *EntryStore) read(ctx context.Context) ([]model.ProgressEntry, error) {
	raw, err := s.kv.Get(ctx, EntriesKey)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		return s.fallbackCopy(), nil
	case err != nil:
		return nil, err
	}

	var entries []model.ProgressEntry
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		s.log.Warn(ctx, "entry list malformed, using fallback", logger.Error(err))
		metrics.RecordStoreFallback("malformed")
		return s.fallbackCopy(), nil
	}
	return entries, nil
}

// Append prepends entry and writes the whole list back. A failed read leaves
// the stored list untouched.
func (s *EntryStore) Append(ctx context.Context, entry model.ProgressEntry) error {
	const op = "repository.Append"
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrPersist, err)
	}
	next := make([]model.ProgressEntry, 0, len(current)+1)
	next = append(next, entry)
	next = append(next, current...)

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrPersist, err)
	}
	if err := s.kv.Set(ctx, EntriesKey, raw); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrPersist, err)
	}
	metrics.RecordEntryAppended()
	metrics.UpdateEntriesTotal(len(next))
	return nil
}

// Count returns the number of entries Load would return.
func (s *EntryStore) Count(ctx context.Context) int {
	return len(s.Load(ctx))
}

func (s *EntryStore) fallbackCopy() []model.ProgressEntry {
	return append([]model.ProgressEntry{}, s.fallback...)
}
