// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects a subset of changes with key-operator-target
// expressions, combined with a configurable delimiter (default: comma). A
// change is kept when it matches every expression.
//
// Keys:
//
//   - type : added, removed or modified
//   - path : the change path as printed, e.g. spec.containers[app].image
//   - old, new : the value on the left or right side
//   - value : the value shown for the change, new for added, old otherwise
//   - embedded : path of the string scalar holding embedded content, empty
//     for ordinary changes
//
// Operators:
//
//   - = : exact match (numeric for numbers)
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric for numbers)
//   - > : greater than (numeric for numbers)
//   - @ : contains substring, element or mapping key
//   - / : regular expression match
//
// Any operator may be negated with a leading "!". A key with no operator
// keeps changes where that key has a value.
//
// Examples:
//
//   - "type=modified" : only modifications
//   - "path^spec.containers" : changes under spec.containers
//   - "new/^nginx:" : values now starting with nginx:
//   - "old>100" : left values greater than 100
//   - "path!@annotations" : drop anything under annotations
//
// The delimiter may be overridden with YD_FILTER_DELIM for values that
// contain commas. Invalid expressions are logged and skipped.
package filters
