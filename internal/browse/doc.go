// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package browse is an interactive terminal list of changes. Each row shows a
// change's path and a one-line summary; selecting a row expands the full old
// and new values.
package browse
