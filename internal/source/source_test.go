// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves objects from memory keyed by bucket/key@version.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	calls   int
}

func (f *fakeS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	id := awsv2.ToString(in.Bucket) + "/" + awsv2.ToString(in.Key) + "@" + awsv2.ToString(in.VersionId)
	body, ok := f.objects[id]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func newLoader(stdin string, s3 *fakeS3) *Loader {
	return &Loader{
		Stdin: strings.NewReader(stdin),
		NewS3: func(context.Context) (S3Getter, error) { return s3, nil },
	}
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Ref
		wantErr bool
	}{
		{"stdin", "-", Ref{Raw: "-", Kind: Stdin}, false},
		{"file", "a/b.yaml", Ref{Raw: "a/b.yaml", Kind: File, Path: "a/b.yaml"}, false},
		{
			"s3",
			"s3://bucket/dir/app.yaml",
			Ref{Raw: "s3://bucket/dir/app.yaml", Kind: S3, Bucket: "bucket", Key: "dir/app.yaml"},
			false,
		},
		{
			"s3 version",
			"s3://bucket/app.yaml?versionId=abc",
			Ref{Raw: "s3://bucket/app.yaml?versionId=abc", Kind: S3, Bucket: "bucket", Key: "app.yaml", VersionID: "abc"},
			false,
		},
		{"s3 no key", "s3://bucket", Ref{}, true},
		{"s3 no bucket", "s3:///key", Ref{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRef(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadURI)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))

	l := newLoader("", nil)

	doc, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(doc.Data))
	assert.Equal(t, path, doc.Name())

	_, err = l.Load(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.Load(context.Background(), dir)
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func TestLoadStdin(t *testing.T) {
	l := newLoader("from: stdin\n", nil)
	doc, err := l.Load(context.Background(), "-")
	require.NoError(t, err)
	assert.Equal(t, "from: stdin\n", string(doc.Data))
	assert.Equal(t, Stdin, doc.Ref.Kind)
}

func TestLoadS3(t *testing.T) {
	t.Setenv("YD_CACHE", "")
	t.Setenv("YD_CACHE_DIR", t.TempDir())

	s3 := &fakeS3{objects: map[string]string{
		"b/app.yaml@":   "v: latest\n",
		"b/app.yaml@v1": "v: one\n",
	}}
	l := newLoader("", s3)
	ctx := context.Background()

	doc, err := l.Load(ctx, "s3://b/app.yaml")
	require.NoError(t, err)
	assert.Equal(t, "v: latest\n", string(doc.Data))

	// Unversioned objects are always fetched.
	_, err = l.Load(ctx, "s3://b/app.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, s3.calls)

	// Versioned objects are fetched once, then served from the cache.
	for range 3 {
		doc, err = l.Load(ctx, "s3://b/app.yaml?versionId=v1")
		require.NoError(t, err)
		assert.Equal(t, "v: one\n", string(doc.Data))
	}
	assert.Equal(t, 3, s3.calls)

	_, err = l.Load(ctx, "s3://b/missing.yaml")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadS3ClientError(t *testing.T) {
	boom := errors.New("no credentials")
	l := &Loader{NewS3: func(context.Context) (S3Getter, error) { return nil, boom }}

	_, err := l.Load(context.Background(), "s3://b/k")
	assert.ErrorIs(t, err, boom)
}

func TestLoadPair(t *testing.T) {
	dir := t.TempDir()
	left := filepath.Join(dir, "left.yaml")
	require.NoError(t, os.WriteFile(left, []byte("side: left\n"), 0o600))

	l := newLoader("side: right\n", nil)

	ld, rd, err := l.LoadPair(context.Background(), left, "-")
	require.NoError(t, err)
	assert.Equal(t, "side: left\n", string(ld.Data))
	assert.Equal(t, "side: right\n", string(rd.Data))

	_, _, err = l.LoadPair(context.Background(), "-", "-")
	assert.ErrorIs(t, err, ErrStdinTwice)

	_, _, err = l.LoadPair(context.Background(), left, filepath.Join(dir, "nope.yaml"))
	assert.ErrorIs(t, err, ErrNotFound)
}
