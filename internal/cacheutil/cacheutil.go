// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/yd/internal/log"
)

// Entry is a cached document on disk. Key is the clear-text key, usually a
// versioned s3:// URI; the file name is its sha256.
type Entry struct {
	Key  string
	Path string
	Data []byte
}

// Dir resolves the base cache directory.
// Precedence:
//  1. YD_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/yd
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("YD_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "yd"), true
	}
	return "", false
}

// Enabled returns true unless YD_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled := os.Getenv("YD_CACHE")
	return enabled != "0" && enabled != "false"
}

// Cache stores documents beneath a namespace directory of the base cache
// directory.
type Cache struct {
	dir string
}

// Open returns the cache for namespace, creating its directory. It reports
// false when caching is disabled or no base directory can be resolved.
func Open(namespace ...string) (*Cache, bool, error) {
	if !Enabled() {
		return nil, false, nil
	}
	base, ok := Dir()
	if !ok {
		return nil, false, nil
	}

	dir := filepath.Join(append([]string{base}, namespace...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return nil, false, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, true, nil
}

// Path returns where key is stored, whether or not it exists.
func (c *Cache) Path(key string) string {
	return filepath.Join(c.dir, encodeKey(key))
}

// Get reads a cached entry. The bytes are returned exactly as written.
func (c *Cache) Get(key string) (*Entry, bool) {
	p := c.Path(key)
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s size=%s", key, humanize.Bytes(uint64(len(b))))
	return &Entry{Key: key, Path: p, Data: b}, true
}

// Put stores data under key, replacing any previous entry.
func (c *Cache) Put(key string, data []byte) error {
	p := c.Path(key)
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s size=%s", key, humanize.Bytes(uint64(len(data))))
	return nil
}

// Purge removes files under the base cache directory older than the given
// number of hours. If hours <= 0 or the cache dir cannot be resolved, it is a
// no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil || info.IsDir() {
			return nil
		}

		if age := time.Since(info.ModTime()); age > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s (%s old)", path, humanize.RelTime(info.ModTime(), time.Now(), "", ""))
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

func encodeKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
