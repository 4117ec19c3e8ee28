// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/yd/internal/config"
	"github.com/tfctl/yd/internal/meta"
)

// InitApp builds the root command. Flags read their defaults from YD_*
// environment variables and, when one was found, the config file.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	cfg, _ := config.Load() //nolint
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:      "yd",
		Usage:     "structural YAML diff",
		UsageText: "yd [flags] LEFT RIGHT\n\nLEFT and RIGHT are file paths, - for stdin, or s3://bucket/key[?versionId=ID].",
		Flags:     NewDiffFlags(cfg.Source),
		Metadata: map[string]any{
			"meta": meta,
		},
		Before: DiffFlagsValidator,
		Action: diffAction,
		Commands: []*cli.Command{
			completionCommandBuilder(),
		},
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil {
		return meta.Meta{}
	}
	if cmd.Metadata == nil {
		if cmd.Root() != cmd {
			return GetMeta(cmd.Root())
		}
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}
