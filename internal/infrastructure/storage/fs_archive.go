package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileSystemArchive keeps exported reports on local disk under
// <base>/<yyyy>/<mm>/<uuid>-<filename>. It backs archiving when no bucket
// is configured.
type FileSystemArchive struct {
	basePath string
	now      func() time.Time
	newID    func() string
	logger   *zap.Logger
}

// NewFileSystemArchive creates the base directory and returns the archive
func NewFileSystemArchive(basePath string, logger *zap.Logger) (*FileSystemArchive, error) {
	if basePath == "" {
		return nil, errors.New("archive base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", basePath, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSystemArchive{
		basePath: basePath,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   logger,
	}, nil
}

// Archive writes content and returns its path relative to the base directory
func (a *FileSystemArchive) Archive(ctx context.Context, filename, _ string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(content) == 0 {
		return "", errors.New("report content is empty")
	}

	now := a.now().UTC()
	dir := filepath.Join(now.Format("2006"), now.Format("01"))
	if err := os.MkdirAll(filepath.Join(a.basePath, dir), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	rel := filepath.Join(dir, a.newID()+"-"+filepath.Base(filename))
	if err := os.WriteFile(filepath.Join(a.basePath, rel), content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", rel, err)
	}

	a.logger.Debug("Report archived",
		zap.String("path", rel),
		zap.Int("size", len(content)),
	)
	return filepath.ToSlash(rel), nil
}

// CleanupOlderThan removes archived reports last modified before now-age
// and returns how many were deleted
func (a *FileSystemArchive) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	cutoff := a.now().Add(-age)
	deleted := 0

	err := filepath.WalkDir(a.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err == nil {
				deleted++
			}
		}
		return nil
	})
	if err != nil {
		return deleted, fmt.Errorf("archive cleanup failed: %w", err)
	}

	a.logger.Info("Archive cleanup completed",
		zap.Int("deleted", deleted),
		zap.Duration("age", age),
	)
	return deleted, nil
}
