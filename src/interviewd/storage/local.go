package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mockstage/interviewd/src/common/paths"
)

// LocalConfig holds the local filesystem storage configuration
type LocalConfig struct {
	// BasePath is the root directory for storing snapshots
	BasePath string
}

// LocalBackend implements snapshot storage on the local filesystem
type LocalBackend struct {
	basePath string
}

// NewLocal creates a new local filesystem storage backend
func NewLocal(cfg LocalConfig) (*LocalBackend, error) {
	basePath := paths.Expand(cfg.BasePath)

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", basePath, err)
	}

	return &LocalBackend{basePath: basePath}, nil
}

// fullPath returns the filesystem path for a key, confined to basePath
func (b *LocalBackend) fullPath(key string) string {
	cleanKey := filepath.Base(filepath.Clean(key))
	if cleanKey == "." || cleanKey == string(filepath.Separator) || strings.HasPrefix(cleanKey, "..") {
		cleanKey = "snapshot"
	}
	return filepath.Join(b.basePath, cleanKey)
}

// Store writes a snapshot to the local filesystem.
// Uses atomic write pattern: write to temp file, then rename to target.
func (b *LocalBackend) Store(ctx context.Context, key string, reader io.Reader, size int64) error {
	fullPath := b.fullPath(key)
	tempPath := fullPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename snapshot file: %w", err)
	}

	return nil
}

// Ping verifies the base directory is writable
func (b *LocalBackend) Ping(ctx context.Context) error {
	probe := filepath.Join(b.basePath, ".probe")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		return fmt.Errorf("snapshot directory not writable: %w", err)
	}
	os.Remove(probe)
	return nil
}

// Type returns the storage backend type
func (b *LocalBackend) Type() string {
	return "local"
}

// Location returns a human-readable location description
func (b *LocalBackend) Location() string {
	return b.basePath
}
