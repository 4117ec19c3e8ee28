// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"sort"

	"github.com/tfctl/yd/internal/log"
	"github.com/tfctl/yd/internal/node"
)

// DefaultSortKeys is the preference list used to pick the field a record
// sequence is sorted by.
var DefaultSortKeys = []string{"name", "key", "id", "kind", "mountPath", "containerPort"}

type options struct {
	sortKeys  []string
	smartSort bool
}

// Option adjusts Normalize.
type Option func(*options)

// WithSortKeys replaces the preference list. An empty list leaves only the
// first-seen fallback.
func WithSortKeys(keys []string) Option {
	return func(o *options) {
		o.sortKeys = append([]string(nil), keys...)
	}
}

// WithoutSmartSort keeps every sequence in document order.
func WithoutSmartSort() Option {
	return func(o *options) {
		o.smartSort = false
	}
}

func buildOptions(opts []Option) options {
	o := options{sortKeys: DefaultSortKeys, smartSort: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Normalize returns a normalized copy of n. The input is never modified and
// unchanged scalars are shared with it.
func Normalize(n *node.Node, opts ...Option) *node.Node {
	o := buildOptions(opts)
	return o.normalize(n)
}

func (o options) normalize(n *node.Node) *node.Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case node.Mapping:
		entries := make([]node.Entry, len(n.Entries))
		for i, e := range n.Entries {
			entries[i] = node.E(e.Key, o.normalize(e.Value))
		}
		return node.NewMapping(entries...)

	case node.Sequence:
		items := make([]*node.Node, len(n.Items))
		for i, item := range n.Items {
			items[i] = o.normalize(item)
		}
		seq := node.NewSequence(items...)
		if !o.smartSort {
			return seq
		}
		if key, ok := FindSortKey(items, o.sortKeys); ok {
			sortRecords(items, key)
			seq.SortKey = key
		}
		return seq

	default:
		return n
	}
}

// FindSortKey picks the field a sequence of records is sorted by. It reports
// false unless items is non-empty, every item is a Mapping and some field
// holds a Scalar in every item.
func FindSortKey(items []*node.Node, prefs []string) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	for _, item := range items {
		if item == nil || item.Kind != node.Mapping {
			return "", false
		}
	}

	for _, k := range prefs {
		if sharedScalar(items, k) {
			return k, true
		}
	}

	// Earliest position across all records, then byte order.
	first := map[string]int{}
	for _, item := range items {
		for i, e := range item.Entries {
			if p, ok := first[e.Key]; !ok || i < p {
				first[e.Key] = i
			}
		}
	}

	var candidates []string
	for k := range first {
		if sharedScalar(items, k) {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		log.Tracef("no shared scalar field among %d records", len(items))
		return "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if first[candidates[i]] != first[candidates[j]] {
			return first[candidates[i]] < first[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	return candidates[0], true
}

func sharedScalar(items []*node.Node, key string) bool {
	for _, item := range items {
		v, ok := item.Get(key)
		if !ok || v == nil || v.Kind != node.Scalar {
			return false
		}
	}
	return true
}

// sortRecords orders items by key, then by their whole content so that
// records sharing a key value still land in a fixed order.
func sortRecords(items []*node.Node, key string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, aok := items[i].Get(key)
		b, bok := items[j].Get(key)
		switch {
		case !aok:
			return false
		case !bok:
			return true
		}
		if c := Compare(a, b); c != 0 {
			return c < 0
		}
		return Compare(items[i], items[j]) < 0
	})
}

// HasUniqueKeys reports whether every record of a sorted sequence holds a
// distinct value under its SortKey, and no two values share a text form.
// Values such as 1 and "1" sort apart but would name the same path segment.
func HasUniqueKeys(seq *node.Node) bool {
	if seq == nil || seq.Kind != node.Sequence || seq.SortKey == "" {
		return false
	}
	seen := make(map[string]bool, len(seq.Items))
	for i, item := range seq.Items {
		k, ok := item.Get(seq.SortKey)
		if !ok || seen[k.Text()] {
			return false
		}
		seen[k.Text()] = true
		if i > 0 {
			prev, _ := seq.Items[i-1].Get(seq.SortKey)
			if Compare(prev, k) == 0 {
				return false
			}
		}
	}
	return true
}
