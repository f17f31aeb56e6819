// Package cache manages the local directory where retrieved corpus data
// accumulates between runs.
package cache

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type Cache struct {
	Dir string
}

// New opens (creating if needed) the cache directory. An empty dir
// defaults to ~/.cocoset/cache.
func New(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cocoset", "cache")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{Dir: dir}, nil
}

// Entries lists the top-level names currently in the cache.
func (c *Cache) Entries() ([]string, error) {
	dirEntries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// Clear removes every top-level entry, best-effort: a failed delete is
// logged and the loop continues so one stuck item cannot block the rest.
// It returns how many entries were removed and how many failed.
func (c *Cache) Clear(logger *zap.Logger) (removed, failed int) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dirEntries, err := os.ReadDir(c.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("cache directory does not exist", zap.String("dir", c.Dir))
			return 0, 0
		}
		logger.Warn("cache directory unreadable", zap.String("dir", c.Dir), zap.Error(err))
		return 0, 1
	}
	if len(dirEntries) == 0 {
		logger.Info("cache already empty", zap.String("dir", c.Dir))
		return 0, 0
	}

	for _, entry := range dirEntries {
		path := filepath.Join(c.Dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			logger.Warn("failed to delete cache entry", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}
		logger.Info("deleted cache entry", zap.String("path", path))
		removed++
	}
	return removed, failed
}
