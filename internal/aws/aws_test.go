// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ydconfig "github.com/tfctl/yd/internal/config"
)

// TestOptions verifies each Option populates its field.
func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		check func(*testing.T, options)
	}{
		{
			name: "profile",
			opts: []Option{WithProfile("my-profile")},
			check: func(t *testing.T, o options) {
				assert.Equal(t, "my-profile", o.profile)
			},
		},
		{
			name: "later region wins",
			opts: []Option{WithRegion("us-east-1"), WithRegion("eu-west-1")},
			check: func(t *testing.T, o options) {
				assert.Equal(t, "eu-west-1", o.region)
			},
		},
		{
			name: "endpoint",
			opts: []Option{WithEndpoint("http://localhost:9000", true)},
			check: func(t *testing.T, o options) {
				assert.Equal(t, "http://localhost:9000", o.endpoint)
				assert.True(t, o.pathStyle)
			},
		},
		{
			name: "retryer",
			opts: []Option{WithRetryer(func() awsv2.Retryer { return retry.NewStandard() })},
			check: func(t *testing.T, o options) {
				require.NotNil(t, o.retryer)
				assert.NotNil(t, o.retryer())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, apply(tt.opts))
		})
	}
}

// TestLoadAWSConfig_WithRegion verifies that the region option reaches the
// loaded config without any network access.
func TestLoadAWSConfig_WithRegion(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-west-2"))
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
}

// TestNewS3_Endpoint verifies that endpoint options are applied to the client.
func TestNewS3_Endpoint(t *testing.T) {
	client, err := NewS3(context.Background(),
		WithRegion("us-east-1"),
		WithEndpoint("http://localhost:9000", true),
	)
	require.NoError(t, err)

	o := client.Options()
	require.NotNil(t, o.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *o.BaseEndpoint)
	assert.True(t, o.UsePathStyle)
}

// TestNewS3_Default verifies that no endpoint override is set by default.
func TestNewS3_Default(t *testing.T) {
	client, err := NewS3(context.Background(), WithRegion("us-east-1"))
	require.NoError(t, err)
	assert.Nil(t, client.Options().BaseEndpoint)
	assert.False(t, client.Options().UsePathStyle)
}

// TestOptionsFromConfig verifies the s3 config section and the endpoint
// environment override.
func TestOptionsFromConfig(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "yd.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("s3:\n  region: ca-central-1\n  profile: ops\n  endpoint: http://cfg:9000\n"), 0o600))
	t.Setenv("YD_CFG_FILE", cfgFile)
	ydconfig.Config = ydconfig.Type{}
	t.Cleanup(func() { ydconfig.Config = ydconfig.Type{} })

	o := apply(OptionsFromConfig())
	assert.Equal(t, "ca-central-1", o.region)
	assert.Equal(t, "ops", o.profile)
	assert.Equal(t, "http://cfg:9000", o.endpoint)
	assert.True(t, o.pathStyle)

	t.Setenv("YD_S3_ENDPOINT", "http://env:9000")
	o = apply(OptionsFromConfig())
	assert.Equal(t, "http://env:9000", o.endpoint)
}
