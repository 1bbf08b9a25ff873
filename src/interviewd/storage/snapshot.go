package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/mockstage/interviewd/src/common/logs"
	"github.com/mockstage/interviewd/src/interviewd/db"
)

var log = logs.NewDefault()

// SetLogger sets the logger for the storage package
func SetLogger(l *logs.Logger) {
	log = l
}

// SnapshotConfig holds the snapshotter configuration
type SnapshotConfig struct {
	// Interval between periodic snapshots; zero disables the timer
	Interval time.Duration

	// Prefix for snapshot object keys
	Prefix string
}

// DefaultSnapshotConfig returns a default snapshotter configuration
func DefaultSnapshotConfig() SnapshotConfig {
	return SnapshotConfig{
		Interval: 6 * time.Hour,
		Prefix:   "interviewd",
	}
}

// Snapshotter periodically persists the database and ships an xz-compressed
// copy of the on-disk file to the configured backend.
type Snapshotter struct {
	database *db.Database
	backend  Backend
	cfg      SnapshotConfig
}

// NewSnapshotter creates a new snapshotter
func NewSnapshotter(database *db.Database, backend Backend, cfg SnapshotConfig) *Snapshotter {
	return &Snapshotter{
		database: database,
		backend:  backend,
		cfg:      cfg,
	}
}

// Run takes snapshots on the configured interval until ctx is cancelled.
// Failures are logged and retried on the next tick.
func (s *Snapshotter) Run(ctx context.Context) {
	if s.cfg.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Snapshot(ctx); err != nil {
				log.Error("Periodic snapshot failed", "error", err)
			}
		}
	}
}

// Snapshot persists the database to disk and ships a compressed copy
func (s *Snapshotter) Snapshot(ctx context.Context) error {
	if err := s.database.SaveToDisk(); err != nil {
		return fmt.Errorf("failed to persist database: %w", err)
	}

	path := s.database.PersistPath()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read database file: %w", err)
	}

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to compress snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize snapshot: %w", err)
	}

	key := fmt.Sprintf("%s-%s.db.xz", s.cfg.Prefix, time.Now().UTC().Format("20060102T150405"))
	if err := s.backend.Store(ctx, key, &buf, int64(buf.Len())); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	log.Info("Database snapshot stored", "key", key, "backend", s.backend.Type(), "location", s.backend.Location())
	return nil
}
