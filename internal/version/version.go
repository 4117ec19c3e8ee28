// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Leaf package; it imports nothing from yd.

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the module version yd was built from, or "dev".
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// String is the --version line: version, short VCS revision when known, and
// the Go toolchain.
func String() string {
	rev := revision()
	if rev == "" {
		return fmt.Sprintf("yd %s %s", Version, runtime.Version())
	}
	return fmt.Sprintf("yd %s (%s) %s", Version, rev, runtime.Version())
}

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
