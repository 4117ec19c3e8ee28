// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package node

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrParse wraps every failure to turn input text into a Node.
var ErrParse = errors.New("malformed YAML")

// maxAliasDepth bounds alias expansion. Self-referencing anchors are not
// supported and would otherwise never terminate.
const maxAliasDepth = 256

// Parse parses the first document of data. Empty input yields a null Scalar.
func Parse(data []byte) (*Node, error) {
	docs, err := ParseAll(data)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return Null(), nil
	}
	return docs[0], nil
}

// ParseAll parses every document in a multi-document stream.
func ParseAll(data []byte) ([]*Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []*Node
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		n, err := fromYAML(&doc, 0)
		if err != nil {
			return nil, err
		}
		docs = append(docs, n)
	}

	return docs, nil
}

func fromYAML(y *yaml.Node, depth int) (*Node, error) {
	if depth > maxAliasDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d at line %d", ErrParse, maxAliasDepth, y.Line)
	}

	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return Null(), nil
		}
		return fromYAML(y.Content[0], depth+1)
	case yaml.AliasNode:
		if y.Alias == nil {
			return nil, fmt.Errorf("%w: unresolved alias at line %d", ErrParse, y.Line)
		}
		return fromYAML(y.Alias, depth+1)
	case yaml.MappingNode:
		return mappingFromYAML(y, depth)
	case yaml.SequenceNode:
		items := make([]*Node, 0, len(y.Content))
		for _, c := range y.Content {
			item, err := fromYAML(c, depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return NewSequence(items...), nil
	case yaml.ScalarNode:
		return scalarFromYAML(y)
	default:
		return nil, fmt.Errorf("%w: unexpected node kind %d at line %d", ErrParse, y.Kind, y.Line)
	}
}

// mappingFromYAML builds a Mapping. Merge keys (<<) contribute the entries of
// their source mappings that the mapping does not define itself; when several
// sources define a key the earliest one wins.
func mappingFromYAML(y *yaml.Node, depth int) (*Node, error) {
	explicit := map[string]bool{}
	for i := 0; i+1 < len(y.Content); i += 2 {
		if !isMergeKey(y.Content[i]) {
			explicit[keyText(y.Content[i])] = true
		}
	}

	m := &Node{Kind: Mapping}
	index := map[string]int{}
	put := func(key string, value *Node) {
		if i, ok := index[key]; ok {
			m.Entries[i].Value = value
			return
		}
		index[key] = len(m.Entries)
		m.Entries = append(m.Entries, Entry{Key: key, Value: value})
	}

	for i := 0; i+1 < len(y.Content); i += 2 {
		k, v := y.Content[i], y.Content[i+1]

		if isMergeKey(k) {
			sources, err := mergeSources(v, depth+1)
			if err != nil {
				return nil, err
			}
			for _, src := range sources {
				for _, e := range src.Entries {
					if _, seen := index[e.Key]; seen || explicit[e.Key] {
						continue
					}
					put(e.Key, e.Value)
				}
			}
			continue
		}

		value, err := fromYAML(v, depth+1)
		if err != nil {
			return nil, err
		}
		put(keyText(k), value)
	}

	return m, nil
}

func mergeSources(v *yaml.Node, depth int) ([]*Node, error) {
	var raw []*yaml.Node
	if v.Kind == yaml.SequenceNode {
		raw = v.Content
	} else {
		raw = []*yaml.Node{v}
	}

	sources := make([]*Node, 0, len(raw))
	for _, r := range raw {
		n, err := fromYAML(r, depth+1)
		if err != nil {
			return nil, err
		}
		if n.Kind != Mapping {
			return nil, fmt.Errorf("%w: merge key value is not a mapping at line %d", ErrParse, r.Line)
		}
		sources = append(sources, n)
	}
	return sources, nil
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.Tag == "!!merge" && k.Value == "<<"
}

// keyText stringifies a mapping key. Scalar keys keep their source spelling;
// complex keys use their flow encoding.
func keyText(k *yaml.Node) string {
	for k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}
	if k.Kind == yaml.ScalarNode {
		return k.Value
	}

	flow := *k
	flow.Style = yaml.FlowStyle
	b, err := yaml.Marshal(&flow)
	if err != nil {
		return k.Value
	}
	return strings.TrimSpace(string(b))
}

func scalarFromYAML(y *yaml.Node) (*Node, error) {
	var v any
	if err := y.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrParse, y.Line, err)
	}

	n := NewScalar(v)
	if _, ok := n.Value.(string); !ok && n.Value != nil {
		switch n.Value.(type) {
		case int64, float64, bool:
		default:
			// Anything else (timestamps, binary) compares by its source text.
			n.Value = y.Value
		}
	}
	n.Literal = y.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0
	return n, nil
}
