package kvstore

import "github.com/okian/edutrack/pkg/logger"

// Option applies a configuration option to Open.
type Option func(*settings)

type settings struct {
	filePath    string
	sqlitePath  string
	redisAddr   string
	redisDB     int
	redisPrefix string
	log         logger.Logger
}

// WithFilePath sets the JSON document used by the file backend.
func WithFilePath(path string) Option {
	return func(s *settings) {
		if path != "" {
			s.filePath = path
		}
	}
}

// WithSQLitePath sets the database file used by the sqlite backend.
func WithSQLitePath(path string) Option {
	return func(s *settings) {
		if path != "" {
			s.sqlitePath = path
		}
	}
}

// WithRedis configures the redis backend. Keys are stored under prefix.
func WithRedis(addr string, db int, prefix string) Option {
	return func(s *settings) {
		if addr != "" {
			s.redisAddr = addr
		}
		s.redisDB = db
		s.redisPrefix = prefix
	}
}

// WithLogger sets the logger used for backend diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}
