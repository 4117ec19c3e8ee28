// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import "github.com/tfctl/yd/internal/config"

// Meta is what the diff action knows about its invocation: the arguments
// after set expansion, the loaded configuration and the working directory
// relative LEFT and RIGHT paths resolve against.
type Meta struct {
	Args        []string
	Config      config.Type
	StartingDir string
}
