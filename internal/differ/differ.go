// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/tfctl/yd/internal/change"
	"github.com/tfctl/yd/internal/log"
	"github.com/tfctl/yd/internal/node"
	"github.com/tfctl/yd/internal/normalize"
)

// Differ compares documents. The normalize options apply to Compare and to
// every embedded document found while diffing.
type Differ struct {
	opts []normalize.Option
}

// New returns a Differ that normalizes with opts.
func New(opts ...normalize.Option) *Differ {
	return &Differ{opts: opts}
}

// Diff compares two documents with default normalization for embedded
// content. Both documents are expected to be normalized already.
func Diff(left, right *node.Node) []change.Change {
	return New().Diff(left, right)
}

// Compare normalizes both documents with opts and diffs them.
func Compare(left, right *node.Node, opts ...normalize.Option) []change.Change {
	return New(opts...).Compare(left, right)
}

// Diff compares two normalized documents. A nil side reports the other side
// as wholly added or removed.
func (d *Differ) Diff(left, right *node.Node) []change.Change {
	return d.DiffAt(change.Path{}, left, right)
}

// DiffAt is Diff with every reported path rooted at base.
func (d *Differ) DiffAt(base change.Path, left, right *node.Node) []change.Change {
	w := &walker{d: d}
	w.walk(base, left, right)
	log.Debugf("diff at %q: %d changes", base.String(), len(w.out))
	return w.out
}

// Compare normalizes both documents and diffs them.
func (d *Differ) Compare(left, right *node.Node) []change.Change {
	return d.Diff(d.normalize(left), d.normalize(right))
}

func (d *Differ) normalize(n *node.Node) *node.Node {
	if n == nil {
		return nil
	}
	return normalize.Normalize(n, d.opts...)
}

// walker accumulates changes for one comparison. Nested embedded documents
// get their own walker that appends to the same output.
type walker struct {
	d          *Differ
	out        []change.Change
	depth      int
	embedded   bool
	embeddedAt change.Path
}

func (w *walker) emit(c change.Change) {
	if w.embedded {
		c.Embedded = true
		c.EmbeddedAt = w.embeddedAt
	}
	w.out = append(w.out, c)
}

func (w *walker) walk(p change.Path, left, right *node.Node) {
	switch {
	case left == nil && right == nil:
		return
	case left == nil:
		w.emit(change.Add(p, right))
		return
	case right == nil:
		w.emit(change.Remove(p, left))
		return
	case left.Kind != right.Kind:
		w.emit(change.Modify(p, left, right))
		return
	}

	switch left.Kind {
	case node.Mapping:
		w.walkMapping(p, left, right)
	case node.Sequence:
		if keyed(left, right) {
			w.walkKeyed(p, left, right)
		} else {
			w.walkPositional(p, left, right)
		}
	default:
		w.walkScalar(p, left, right)
	}
}

func (w *walker) walkMapping(p change.Path, left, right *node.Node) {
	for _, e := range left.Entries {
		rv, ok := right.Get(e.Key)
		if !ok {
			w.emit(change.Remove(p.Field(e.Key), e.Value))
			continue
		}
		w.walk(p.Field(e.Key), e.Value, rv)
	}
	for _, e := range right.Entries {
		if _, ok := left.Get(e.Key); !ok {
			w.emit(change.Add(p.Field(e.Key), e.Value))
		}
	}
}

// keyed reports whether both sequences can be aligned by record key. A key
// text must name the same value on both sides, otherwise a record removed
// on the left and one added on the right would share a path.
func keyed(left, right *node.Node) bool {
	if left.SortKey == "" ||
		left.SortKey != right.SortKey ||
		!normalize.HasUniqueKeys(left) ||
		!normalize.HasUniqueKeys(right) {
		return false
	}

	keys := make(map[string]*node.Node, len(left.Items))
	for _, item := range left.Items {
		k, _ := item.Get(left.SortKey)
		keys[k.Text()] = k
	}
	for _, item := range right.Items {
		k, _ := item.Get(right.SortKey)
		if lk, ok := keys[k.Text()]; ok && !node.Equal(lk, k) {
			return false
		}
	}
	return true
}

// walkKeyed merges two sequences sorted on the same unique key. Records found
// on one side only are reported whole.
func (w *walker) walkKeyed(p change.Path, left, right *node.Node) {
	key := left.SortKey
	i, j := 0, 0
	for i < len(left.Items) && j < len(right.Items) {
		lk, _ := left.Items[i].Get(key)
		rk, _ := right.Items[j].Get(key)
		switch c := normalize.CompareScalars(lk.Value, rk.Value); {
		case c < 0:
			w.emit(change.Remove(p.Key(lk.Text()), left.Items[i]))
			i++
		case c > 0:
			w.emit(change.Add(p.Key(rk.Text()), right.Items[j]))
			j++
		default:
			w.walk(p.Key(lk.Text()), left.Items[i], right.Items[j])
			i++
			j++
		}
	}
	for ; i < len(left.Items); i++ {
		lk, _ := left.Items[i].Get(key)
		w.emit(change.Remove(p.Key(lk.Text()), left.Items[i]))
	}
	for ; j < len(right.Items); j++ {
		rk, _ := right.Items[j].Get(key)
		w.emit(change.Add(p.Key(rk.Text()), right.Items[j]))
	}
}

func (w *walker) walkPositional(p change.Path, left, right *node.Node) {
	n := min(len(left.Items), len(right.Items))
	for i := 0; i < n; i++ {
		w.walk(p.Index(i), left.Items[i], right.Items[i])
	}
	for i := n; i < len(left.Items); i++ {
		w.emit(change.Remove(p.Index(i), left.Items[i]))
	}
	for i := n; i < len(right.Items); i++ {
		w.emit(change.Add(p.Index(i), right.Items[i]))
	}
}

func (w *walker) walkScalar(p change.Path, left, right *node.Node) {
	if node.Equal(left, right) {
		return
	}

	if w.depth < MaxEmbedDepth {
		le, lok := TryParseEmbedded(left)
		re, rok := TryParseEmbedded(right)
		if lok && rok {
			log.Tracef("embedded documents at %q", p.String())
			sub := &walker{
				d:          w.d,
				depth:      w.depth + 1,
				embedded:   true,
				embeddedAt: p,
			}
			sub.walk(p, w.d.normalize(le), w.d.normalize(re))
			w.out = append(w.out, sub.out...)
			return
		}
	}

	w.emit(change.Modify(p, left, right))
}
