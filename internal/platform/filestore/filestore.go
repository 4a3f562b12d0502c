// Package filestore persists the in-memory record store as a JSON snapshot on
// disk. Every committed mutation rewrites the snapshot atomically, so a restart
// resumes with the same records and counters.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/platform/memory"
)

// Open loads the snapshot at path, or starts empty when the file does not
// exist, and returns a DB that writes its state back to path after each change.
func Open(path string, log *slog.Logger) (*memory.DB, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "filestore"), slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	snap, err := Load(path)
	if err != nil {
		return nil, err
	}

	log.Info("record store loaded",
		slog.Int("employees", len(snap.Employees)),
		slog.Int("tasks", len(snap.Tasks)),
		slog.Int("notifications", len(snap.Notifications)))

	return memory.FromSnapshot(snap, memory.WithPersist(func(ctx context.Context, s memory.Snapshot) error {
		if err := Save(path, s); err != nil {
			logger.FromContextOrDefault(ctx, log).Error("failed to write snapshot",
				slog.String("error", err.Error()))
			return err
		}
		return nil
	})), nil
}

// Load reads a snapshot from path. A missing file yields an empty snapshot.
func Load(path string) (memory.Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return memory.Snapshot{}, nil
		}
		return memory.Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap memory.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return memory.Snapshot{}, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Save writes snap to path through a temporary file and a rename.
func Save(path string, snap memory.Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
