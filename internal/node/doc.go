// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package node holds the document model compared by yd: a tagged tree of
// mappings, sequences and scalars built from parsed YAML. Mapping key order is
// kept as written so that output follows the document top-down.
package node
