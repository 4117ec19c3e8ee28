// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package change defines the records produced by the differ: a Path into the
// document, the Kind of divergence and the values on either side.
package change
