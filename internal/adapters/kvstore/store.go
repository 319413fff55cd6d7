// Package kvstore provides the host key-value persistence behind the
// repositories. Values are opaque byte strings; backends store keys verbatim
// unless a prefix is configured.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/edutrack/pkg/logger"
	"github.com/okian/edutrack/pkg/metrics"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Store is a string-keyed byte store.
type Store interface {
	// Get returns the value for key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Backend names the implementation.
	Backend() string
	// Close releases resources held by the store.
	Close() error
}

// Open creates the named backend wrapped with operation metrics.
func Open(ctx context.Context, backend string, opts ...Option) (Store, error) {
	const op = "kvstore.Open"
	s := &settings{
		filePath:    "data/edutrack.json",
		sqlitePath:  "data/edutrack.db",
		redisAddr:   "localhost:6379",
		redisPrefix: "edutrack:",
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var (
		store Store
		err   error
	)
	switch backend {
	case BackendMemory:
		store = NewMemory()
	case BackendFile:
		store, err = NewFile(s.filePath, s.log)
	case BackendRedis:
		store, err = NewRedis(ctx, s.redisAddr, s.redisDB, s.redisPrefix)
	case BackendSQLite:
		store, err = NewSQLite(s.sqlitePath)
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrOpen, err)
	}
	return Instrument(store), nil
}

// Instrument wraps store so that each call is timed and counted.
func Instrument(store Store) Store {
	if _, ok := store.(*instrumented); ok {
		return store
	}
	return &instrumented{inner: store}
}

type instrumented struct {
	inner Store
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, err := i.inner.Get(ctx, key)
	i.observe("get", start, err)
	return v, err
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := i.inner.Set(ctx, key, value)
	i.observe("set", start, err)
	return err
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := i.inner.Delete(ctx, key)
	i.observe("delete", start, err)
	return err
}

func (i *instrumented) Backend() string { return i.inner.Backend() }

func (i *instrumented) Close() error { return i.inner.Close() }

func (i *instrumented) observe(op string, start time.Time, err error) {
	backend := i.inner.Backend()
	metrics.RecordKVOperation(backend, op, float64(time.Since(start).Microseconds())/1000)
	if err != nil && !errors.Is(err, ErrNotFound) {
		metrics.RecordKVError(backend, op)
	}
}
