// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"os"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	ydconfig "github.com/tfctl/yd/internal/config"
	"github.com/tfctl/yd/internal/log"
)

// options holds optional overrides for AWS config loading and S3 client
// construction.
type options struct {
	profile   string
	region    string
	endpoint  string
	pathStyle bool
	retryer   func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the S3 client at an S3-compatible service such as
// MinIO. Path style addressing is usually needed alongside it.
func WithEndpoint(endpoint string, pathStyle bool) Option {
	return func(o *options) {
		o.endpoint = endpoint
		o.pathStyle = pathStyle
	}
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// OptionsFromConfig builds options from the s3 section of the yd config.
// YD_S3_ENDPOINT takes precedence over s3.endpoint.
func OptionsFromConfig() []Option {
	var opts []Option
	if profile, _ := ydconfig.GetString("s3.profile", ""); profile != "" {
		opts = append(opts, WithProfile(profile))
	}
	if region, _ := ydconfig.GetString("s3.region", ""); region != "" {
		opts = append(opts, WithRegion(region))
	}

	endpoint, _ := ydconfig.GetString("s3.endpoint", "")
	if e := os.Getenv("YD_S3_ENDPOINT"); e != "" {
		endpoint = e
	}
	if endpoint != "" {
		pathStyle, _ := ydconfig.GetBool("s3.path_style", true)
		opts = append(opts, WithEndpoint(endpoint, pathStyle))
	}
	return opts
}

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS).
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	o := apply(opts)
	log.Debugf("aws opts: profile=%s, region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("aws config load err: err=%v", err)
		return awsv2.Config{}, err
	}
	return cfg, nil
}

// NewS3 loads AWS config and constructs an S3 client honoring the endpoint
// options.
func NewS3(ctx context.Context, opts ...Option) (*s3v2.Client, error) {
	cfg, err := LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	o := apply(opts)
	client := s3v2.NewFromConfig(cfg, func(so *s3v2.Options) {
		if o.endpoint != "" {
			so.BaseEndpoint = awsv2.String(o.endpoint)
			so.UsePathStyle = o.pathStyle
		}
	})
	log.Debugf("s3 client created: region=%s endpoint=%s", cfg.Region, o.endpoint)
	return client, nil
}
