// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/yd/internal/render"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// DiffFlagsValidator rejects more than one output shortcut. The shortcuts
// themselves override --output.
func DiffFlagsValidator(ctx context.Context, c *cli.Command) (context.Context, error) {
	selected := 0
	for _, name := range []string{"counts", "paths-only", "interactive"} {
		if c.Bool(name) {
			selected++
		}
	}
	if selected > 1 {
		return ctx, errors.New("--counts, --paths-only and --interactive are mutually exclusive")
	}
	return ctx, nil
}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if _, err := render.ParseMode(s); err != nil {
		return fmt.Errorf("must be one of %v", render.Modes)
	}
	return nil
}

func ColorValidator(value any) error {
	var validColorFlagValues = []string{"auto", "always", "never"}
	s, _ := value.(string)
	if !slices.Contains(validColorFlagValues, s) {
		return fmt.Errorf("must be one of %v", validColorFlagValues)
	}
	return nil
}
