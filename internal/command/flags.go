// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/yd/internal/render"
)

// NewDiffFlags returns the root command's flags. cfgFile, when set, is the
// YAML config file flags fall back to after their environment variables.
func NewDiffFlags(cfgFile string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "color",
			Usage:   "colorize output: auto, always or never",
			Value:   "auto",
			Sources: sources(cfgFile, "color", "YD_COLOR"),
			Validator: func(value string) error {
				return FlagValidators(value, ColorValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "counts",
			Aliases: []string{"c"},
			Usage:   "print only the number of changes by kind",
		},
		&cli.BoolFlag{
			Name:    "embedded-lines",
			Usage:   "show embedded documents as a unified line diff",
			Sources: sources(cfgFile, "embedded_lines", "YD_EMBEDDED_LINES"),
		},
		&cli.BoolFlag{
			Name:    "exit-code",
			Aliases: []string{"e"},
			Usage:   "exit with status 1 when the documents differ",
			Sources: sources(cfgFile, "exit_code", "YD_EXIT_CODE"),
		},
		&cli.StringFlag{
			Name:    "filter",
			Usage:   "keep only changes matching every expression, e.g. type=modified,path^spec.",
			Sources: cli.NewValueSourceChain(cli.EnvVar("YD_FILTER")),
		},
		&cli.StringFlag{
			Name:    "focus",
			Aliases: []string{"f"},
			Usage:   "compare only the subtree at this path, e.g. spec.template or items[0]",
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"i"},
			Usage:   "browse the changes interactively",
		},
		&cli.BoolFlag{
			Name:    "no-sort",
			Usage:   "compare sequences by position only",
			Sources: sources(cfgFile, "no_sort", "YD_NO_SORT"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: " + modeList(),
			Value:   string(render.Tree),
			Sources: sources(cfgFile, "output", "YD_OUTPUT"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "paths-only",
			Aliases: []string{"p"},
			Usage:   "print only the path of each change",
		},
		&cli.StringFlag{
			Name:    "sort-keys",
			Usage:   "comma-separated record fields to sort sequences by, in preference order",
			Sources: cli.NewValueSourceChain(cli.EnvVar("YD_SORT_KEYS")),
		},
		&cli.BoolFlag{
			Name:    "sort-output",
			Aliases: []string{"s"},
			Usage:   "order changes removed, modified, added, then by path",
			Sources: sources(cfgFile, "sort_output", "YD_SORT_OUTPUT"),
		},
		&cli.BoolFlag{
			Name:        "version",
			Aliases:     []string{"v"},
			Usage:       "yd version info",
			HideDefault: true,
		},
	}
}

// sources chains an environment variable with the config file key.
func sources(cfgFile, key, env string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain(cli.EnvVar(env))
	if cfgFile != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(cfgFile)))
	}
	return chain
}

func modeList() string {
	names := make([]string, len(render.Modes))
	for i, m := range render.Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
