// Package storage provides backends for interviewd database snapshots.
// The persisted SQLite file is compressed and shipped to a local directory
// or an S3-compatible bucket on shutdown and on a configurable interval.
package storage

import (
	"context"
	"io"
)

// Backend defines the interface for snapshot storage backends
type Backend interface {
	// Store writes a snapshot object under the given key
	Store(ctx context.Context, key string, reader io.Reader, size int64) error

	// Ping checks if the storage is accessible
	Ping(ctx context.Context) error

	// Type returns the storage backend type
	Type() string

	// Location returns a human-readable location description
	Location() string
}

// Config holds the storage configuration
type Config struct {
	// Type is the storage backend type: "s3" or "local"
	Type string

	// Local storage configuration
	Local LocalConfig

	// S3 storage configuration
	S3 S3Config
}

// DefaultConfig returns a default storage configuration (local filesystem)
func DefaultConfig() Config {
	return Config{
		Type: "local",
		Local: LocalConfig{
			BasePath: "~/.interviewd/snapshots",
		},
	}
}

// New creates a new storage backend based on configuration
func New(cfg Config) (Backend, error) {
	switch cfg.Type {
	case "s3":
		return NewS3(cfg.S3)
	default:
		return NewLocal(cfg.Local)
	}
}
