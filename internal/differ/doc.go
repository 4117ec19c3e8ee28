// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ walks two normalized documents and reports where they
// diverge as a list of change.Change values.
//
// Mappings are compared key by key. Sequences sorted on the same record key
// are aligned by that key; all others are aligned by position. Two differing
// strings that both hold a YAML mapping or sequence are parsed and compared
// structurally, so a one-line edit inside an embedded config block is
// reported at its own path rather than as a replacement of the whole block.
package differ
