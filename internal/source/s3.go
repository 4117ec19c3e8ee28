// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	awsx "github.com/tfctl/yd/internal/aws"
	"github.com/tfctl/yd/internal/cacheutil"
	"github.com/tfctl/yd/internal/config"
	"github.com/tfctl/yd/internal/log"
)

// S3Getter is the part of the S3 client used to fetch documents.
type S3Getter interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

func defaultS3(ctx context.Context) (S3Getter, error) {
	client, err := awsx.NewS3(ctx, awsx.OptionsFromConfig()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return client, nil
}

func (l *Loader) s3Client(ctx context.Context) (S3Getter, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.client == nil {
		c, err := l.NewS3(ctx)
		if err != nil {
			return nil, err
		}
		l.client = c
	}
	return l.client, nil
}

// loadS3 fetches an object. Only objects addressed by version are cached,
// since an unversioned key may change between runs.
func (l *Loader) loadS3(ctx context.Context, ref Ref) ([]byte, error) {
	var cache *cacheutil.Cache
	if ref.VersionID != "" {
		cleanHours, _ := config.GetInt("cache.clean", 0)
		if err := cacheutil.Purge(cleanHours); err != nil {
			log.WithError(err).Warn("failed to purge cache")
		}

		c, ok, err := cacheutil.Open("s3", ref.Bucket)
		if err != nil {
			log.WithError(err).Warn("cache unavailable")
		}
		if ok {
			cache = c
			if entry, hit := cache.Get(ref.Raw); hit {
				return entry.Data, nil
			}
		}
	}

	svc, err := l.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	input := &s3v2.GetObjectInput{
		Bucket: awsv2.String(ref.Bucket),
		Key:    awsv2.String(ref.Key),
	}
	if ref.VersionID != "" {
		input.VersionId = awsv2.String(ref.VersionID)
	}

	result, err := svc.GetObject(ctx, input)
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ref.Raw)
		}
		return nil, fmt.Errorf("failed to get S3 object %s: %w", ref.Raw, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	if cache != nil {
		if err := cache.Put(ref.Raw, data); err != nil {
			log.WithError(err).Warn("failed to cache S3 object")
		}
	}
	return data, nil
}
