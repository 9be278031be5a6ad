// Package cache stores raw recognition responses on disk so repeated
// runs over the same recording skip the upload and the long-running
// recognition call.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/voicemetrics/diarize-pipeline/clients"
)

// Cache is a directory of per-recording JSON response files, keyed by
// the recording's base filename.
type Cache struct {
	dir string
	log *logrus.Entry
}

// New opens a cache rooted at dir, creating it when missing.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir, log: logrus.WithField("component", "cache")}, nil
}

func (c *Cache) path(name string) string {
	return filepath.Join(c.dir, name+".json")
}

// Load returns the cached response for a recording, if any. Read or
// decode failures count as a miss, never as an error.
func (c *Cache) Load(name string) (*clients.RecognizeResponse, bool) {
	path := c.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		c.log.WithField("path", path).Debug("cache miss")
		return nil, false
	}
	var resp clients.RecognizeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.log.WithField("path", path).WithError(err).Warn("discarding unreadable cache entry")
		return nil, false
	}
	c.log.WithField("path", path).Debug("cache hit")
	return &resp, true
}

// Save writes the response for a recording, replacing any previous
// entry.
func (c *Cache) Save(name string, resp *clients.RecognizeResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	path := c.path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	c.log.WithField("path", path).Debug("cache saved")
	return nil
}
