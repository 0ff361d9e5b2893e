package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalStorage keeps raw uploaded files on disk under a base directory.
type LocalStorage struct {
	baseDir string
	now     func() time.Time
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, now: time.Now}, nil
}

// Save writes data under a dated, collision-free name derived from original and returns
// the path relative to the base directory.
func (s *LocalStorage) Save(original string, data []byte) (string, error) {
	ts := s.now().UTC()
	name := fmt.Sprintf("%s_%s%s", ts.Format("20060102T150405"), uuid.NewString()[:8], sanitizeExt(original))
	rel := filepath.Join(ts.Format("2006-01"), name)
	path := filepath.Join(s.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return rel, nil
}

// CleanupOlderThan removes files older than ttl and returns their relative names.
func (s *LocalStorage) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := s.now().Add(-ttl)
	deleted := make([]string, 0)
	err := filepath.WalkDir(s.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			rel = path
		}
		deleted = append(deleted, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup uploads: %w", err)
	}
	return deleted, nil
}

// RunCleanup prunes expired uploads every interval until ctx is done.
func (s *LocalStorage) RunCleanup(ctx context.Context, interval, ttl time.Duration, logger *zap.Logger) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.CleanupOlderThan(ttl)
			if err != nil {
				logger.Warn("upload cleanup failed", zap.Error(err))
				continue
			}
			if len(deleted) > 0 {
				logger.Info("upload cleanup", zap.Int("deleted", len(deleted)))
			}
		}
	}
}

// Path exposes the absolute location of a stored file.
func (s *LocalStorage) Path(rel string) string {
	return filepath.Join(s.baseDir, rel)
}

func sanitizeExt(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" || len(ext) > 8 {
		return ".json"
	}
	return ext
}
