// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/tfctl/yd/internal/log"
)

var (
	// ErrNotFound is returned when a file or S3 object does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrIsDirectory is returned when a path names a directory.
	ErrIsDirectory = errors.New("path is a directory")
	// ErrStdinTwice is returned when both sides ask for stdin.
	ErrStdinTwice = errors.New("stdin can only be used for one side")
	// ErrBadURI is returned for malformed s3:// references.
	ErrBadURI = errors.New("malformed S3 URI")
)

// Kind tells where a document comes from.
type Kind int

const (
	File Kind = iota
	Stdin
	S3
)

// Ref is a parsed document reference.
type Ref struct {
	Raw       string
	Kind      Kind
	Path      string
	Bucket    string
	Key       string
	VersionID string
}

// ParseRef classifies raw as stdin, an S3 URI or a file path.
func ParseRef(raw string) (Ref, error) {
	switch {
	case raw == "-":
		return Ref{Raw: raw, Kind: Stdin}, nil
	case strings.HasPrefix(raw, "s3://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Ref{}, fmt.Errorf("%w: %s: %v", ErrBadURI, raw, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Ref{}, fmt.Errorf("%w: %s: want s3://bucket/key", ErrBadURI, raw)
		}
		return Ref{
			Raw:       raw,
			Kind:      S3,
			Bucket:    u.Host,
			Key:       key,
			VersionID: u.Query().Get("versionId"),
		}, nil
	default:
		return Ref{Raw: raw, Kind: File, Path: raw}, nil
	}
}

// Document is a loaded document.
type Document struct {
	Ref  Ref
	Data []byte
}

// Name is the reference as the user gave it.
func (d *Document) Name() string {
	return d.Ref.Raw
}

// Loader reads documents. The zero value is not usable; call New.
type Loader struct {
	// Stdin is read for the "-" reference.
	Stdin io.Reader
	// NewS3 builds the S3 client on first use.
	NewS3 func(ctx context.Context) (S3Getter, error)

	mu     sync.Mutex
	client S3Getter
}

// New returns a Loader reading os.Stdin and talking to S3 with the
// configured AWS settings.
func New() *Loader {
	return &Loader{Stdin: os.Stdin, NewS3: defaultS3}
}

// Load reads a single document.
func (l *Loader) Load(ctx context.Context, raw string) (*Document, error) {
	ref, err := ParseRef(raw)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch ref.Kind {
	case Stdin:
		data, err = io.ReadAll(l.Stdin)
		if err != nil {
			err = fmt.Errorf("failed to read stdin: %w", err)
		}
	case S3:
		data, err = l.loadS3(ctx, ref)
	default:
		data, err = loadFile(ref.Path)
	}
	if err != nil {
		return nil, err
	}

	log.Debugf("loaded %s: %s", raw, humanize.Bytes(uint64(len(data))))
	return &Document{Ref: ref, Data: data}, nil
}

// LoadPair reads both documents concurrently. The first failure cancels the
// other load.
func (l *Loader) LoadPair(ctx context.Context, left, right string) (*Document, *Document, error) {
	if left == "-" && right == "-" {
		return nil, nil, ErrStdinTwice
	}

	var docs [2]*Document
	g, gctx := errgroup.WithContext(ctx)
	for i, raw := range []string{left, right} {
		g.Go(func() error {
			doc, err := l.Load(gctx, raw)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return docs[0], docs[1], nil
}

func loadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
