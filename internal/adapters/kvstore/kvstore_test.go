package kvstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/edutrack/internal/adapters/kvstore"
	. "github.com/smartystreets/goconvey/convey"
)

// exerciseStore runs the shared contract against any backend.
func exerciseStore(store kvstore.Store) {
	ctx := context.Background()

	Convey("When reading a missing key", func() {
		_, err := store.Get(ctx, "missing")

		Convey("Then ErrNotFound is returned", func() {
			So(errors.Is(err, kvstore.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("When a value is set", func() {
		So(store.Set(ctx, "progressEntries", []byte(`[{"id":"1"}]`)), ShouldBeNil)

		Convey("Then it reads back verbatim", func() {
			v, err := store.Get(ctx, "progressEntries")
			So(err, ShouldBeNil)
			So(string(v), ShouldEqual, `[{"id":"1"}]`)
		})

		Convey("And replacing it keeps only the new value", func() {
			So(store.Set(ctx, "progressEntries", []byte(`[]`)), ShouldBeNil)
			v, err := store.Get(ctx, "progressEntries")
			So(err, ShouldBeNil)
			So(string(v), ShouldEqual, `[]`)
		})

		Convey("And deleting it removes the key", func() {
			So(store.Delete(ctx, "progressEntries"), ShouldBeNil)
			_, err := store.Get(ctx, "progressEntries")
			So(errors.Is(err, kvstore.ErrNotFound), ShouldBeTrue)
			So(store.Delete(ctx, "progressEntries"), ShouldBeNil)
		})
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store", t, func() {
		store, err := kvstore.Open(context.Background(), kvstore.BackendMemory)
		So(err, ShouldBeNil)
		So(store.Backend(), ShouldEqual, kvstore.BackendMemory)

		exerciseStore(store)

		Convey("When the store is closed", func() {
			So(store.Close(), ShouldBeNil)
			_, err := store.Get(context.Background(), "user")
			So(errors.Is(err, kvstore.ErrClosed), ShouldBeTrue)
		})
	})
}

func TestFileStore(t *testing.T) {
	Convey("Given a file store in a temp dir", t, func() {
		path := filepath.Join(t.TempDir(), "nested", "store.json")
		store, err := kvstore.Open(context.Background(), kvstore.BackendFile, kvstore.WithFilePath(path))
		So(err, ShouldBeNil)
		defer store.Close()

		exerciseStore(store)

		Convey("When the store is reopened", func() {
			So(store.Set(context.Background(), "user", []byte(`{"email":"a@b"}`)), ShouldBeNil)
			again, err := kvstore.NewFile(path, nil)
			So(err, ShouldBeNil)

			Convey("Then the value survived", func() {
				v, err := again.Get(context.Background(), "user")
				So(err, ShouldBeNil)
				So(string(v), ShouldEqual, `{"email":"a@b"}`)
			})
		})
	})

	Convey("Given a corrupt document on disk", t, func() {
		path := filepath.Join(t.TempDir(), "store.json")
		So(os.WriteFile(path, []byte("{not json"), 0o600), ShouldBeNil)

		store, err := kvstore.Open(context.Background(), kvstore.BackendFile, kvstore.WithFilePath(path))

		Convey("Then it opens empty", func() {
			So(err, ShouldBeNil)
			_, err := store.Get(context.Background(), "user")
			So(errors.Is(err, kvstore.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestSQLiteStore(t *testing.T) {
	Convey("Given a sqlite store in a temp dir", t, func() {
		path := filepath.Join(t.TempDir(), "edutrack.db")
		store, err := kvstore.Open(context.Background(), kvstore.BackendSQLite, kvstore.WithSQLitePath(path))
		So(err, ShouldBeNil)
		defer store.Close()

		So(store.Backend(), ShouldEqual, kvstore.BackendSQLite)
		exerciseStore(store)
	})
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("EDUTRACK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("EDUTRACK_TEST_REDIS_ADDR not set")
	}
	Convey("Given a redis store", t, func() {
		store, err := kvstore.Open(context.Background(), kvstore.BackendRedis, kvstore.WithRedis(addr, 0, "edutrack-test:"))
		So(err, ShouldBeNil)
		defer store.Close()

		exerciseStore(store)
	})
}

func TestOpenUnknownBackend(t *testing.T) {
	Convey("Given an unknown backend name", t, func() {
		_, err := kvstore.Open(context.Background(), "etcd")

		Convey("Then Open fails", func() {
			So(errors.Is(err, kvstore.ErrUnknownBackend), ShouldBeTrue)
		})
	})
}
