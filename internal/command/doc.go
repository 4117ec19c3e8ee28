// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the yd CLI: the root diff command, its flags and
// validators, and shell completion.
package command
