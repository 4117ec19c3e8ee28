// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"github.com/tfctl/yd/internal/change"
	"github.com/tfctl/yd/internal/differ"
	"github.com/tfctl/yd/internal/node"
	"github.com/tfctl/yd/internal/normalize"
)

// Lookup follows p from root. A string scalar met part way down is parsed as
// an embedded document and normalized with opts before descending into it.
func Lookup(root *node.Node, p change.Path, opts ...normalize.Option) (*node.Node, bool) {
	cur := root
	for _, s := range p.Segments() {
		if cur == nil {
			return nil, false
		}
		if cur.Kind == node.Scalar {
			sub, ok := differ.TryParseEmbedded(cur)
			if !ok {
				return nil, false
			}
			cur = normalize.Normalize(sub, opts...)
		}

		var ok bool
		switch s.Kind {
		case change.Field:
			cur, ok = cur.Get(s.Name)
		case change.Index:
			ok = cur.Kind == node.Sequence && s.Pos >= 0 && s.Pos < len(cur.Items)
			if ok {
				cur = cur.Items[s.Pos]
			}
		case change.Key:
			cur, ok = recordByKey(cur, s.Name)
		}
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

func recordByKey(seq *node.Node, key string) (*node.Node, bool) {
	if seq.Kind != node.Sequence || seq.SortKey == "" {
		return nil, false
	}
	for _, item := range seq.Items {
		if v, ok := item.Get(seq.SortKey); ok && v.Text() == key {
			return item, true
		}
	}
	return nil, false
}
