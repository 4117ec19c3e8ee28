// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package normalize rewrites a document into a canonical form for comparison.
// Sequences whose elements are all mappings sharing a scalar field are sorted
// by that field, so that reordering records in a list is not reported as a
// change.
//
// The field is chosen from a preference list (DefaultSortKeys unless
// overridden with WithSortKeys). When none of the preferred fields is shared
// by every record, the shared scalar field that appears earliest across the
// records is used.
package normalize
