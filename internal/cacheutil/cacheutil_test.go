// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("YD_CACHE_DIR", custom)

	got, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, custom, got)

	t.Setenv("YD_CACHE_DIR", "")
	if got, ok := Dir(); ok {
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "yd", filepath.Base(got))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("YD_CACHE", tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestOpen(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		t.Setenv("YD_CACHE", "0")
		c, ok, err := Open("s3")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, c)
	})

	t.Run("creates namespace", func(t *testing.T) {
		base := t.TempDir()
		t.Setenv("YD_CACHE", "")
		t.Setenv("YD_CACHE_DIR", base)

		c, ok, err := Open("s3", "bucket")
		require.NoError(t, err)
		require.True(t, ok)

		info, err := os.Stat(filepath.Join(base, "s3", "bucket"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, filepath.Join(base, "s3", "bucket", encodeKey("k")), c.Path("k"))
	})
}

func TestGetPut(t *testing.T) {
	t.Setenv("YD_CACHE", "")
	t.Setenv("YD_CACHE_DIR", t.TempDir())

	c, ok, err := Open("s3")
	require.NoError(t, err)
	require.True(t, ok)

	_, hit := c.Get("s3://b/k?versionId=1")
	assert.False(t, hit)

	doc := []byte("  indented: true\n\n")
	require.NoError(t, c.Put("s3://b/k?versionId=1", doc))

	e, hit := c.Get("s3://b/k?versionId=1")
	require.True(t, hit)
	assert.Equal(t, doc, e.Data)
	assert.Equal(t, "s3://b/k?versionId=1", e.Key)

	info, err := os.Stat(e.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, c.Put("s3://b/k?versionId=1", []byte("replaced")))
	e, _ = c.Get("s3://b/k?versionId=1")
	assert.Equal(t, "replaced", string(e.Data))
}

func TestPurge(t *testing.T) {
	base := t.TempDir()
	t.Setenv("YD_CACHE", "")
	t.Setenv("YD_CACHE_DIR", base)

	c, _, err := Open("s3")
	require.NoError(t, err)
	require.NoError(t, c.Put("old", []byte("x")))
	require.NoError(t, c.Put("new", []byte("y")))

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(c.Path("old"), stale, stale))

	require.NoError(t, Purge(0))
	_, hit := c.Get("old")
	assert.True(t, hit, "purge with hours <= 0 is a no-op")

	require.NoError(t, Purge(24))
	_, hit = c.Get("old")
	assert.False(t, hit)
	_, hit = c.Get("new")
	assert.True(t, hit)
}

func TestEncodeKey(t *testing.T) {
	a := encodeKey("s3://bucket/a.yaml")
	assert.Len(t, a, 64)
	assert.Equal(t, a, encodeKey("s3://bucket/a.yaml"))
	assert.NotEqual(t, a, encodeKey("s3://bucket/b.yaml"))
}
