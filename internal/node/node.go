// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package node

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind tags the variant held by a Node.
type Kind int

const (
	Scalar Kind = iota
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Mapping:
		return "mapping"
	case Sequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// Entry is a single key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value *Node
}

// Node is one value of a parsed document. Exactly one of Entries, Items or
// Value is meaningful, selected by Kind. Nodes are not modified once built;
// transformations return new nodes.
//
// Scalar values are one of string, int64, float64, bool or nil.
type Node struct {
	Kind    Kind
	Entries []Entry
	Items   []*Node
	Value   any

	// SortKey names the record field a Sequence was ordered by during
	// normalization. Empty when the sequence kept its positional order.
	SortKey string

	// Literal reports that a string scalar was written as a block scalar.
	Literal bool
}

// NewMapping returns a Mapping holding entries in the given order.
func NewMapping(entries ...Entry) *Node {
	return &Node{Kind: Mapping, Entries: entries}
}

// NewSequence returns a Sequence of items.
func NewSequence(items ...*Node) *Node {
	return &Node{Kind: Sequence, Items: items}
}

// NewScalar returns a Scalar, folding Go numeric types into int64 or float64.
func NewScalar(v any) *Node {
	return &Node{Kind: Scalar, Value: canonical(v)}
}

// Null returns a null Scalar.
func Null() *Node {
	return &Node{Kind: Scalar}
}

// E is shorthand for building mapping entries.
func E(key string, value *Node) Entry {
	return Entry{Key: key, Value: value}
}

func canonical(v any) any {
	switch v := v.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return uintValue(uint64(v))
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return uintValue(v)
	case float32:
		return float64(v)
	default:
		return v
	}
}

func uintValue(v uint64) any {
	if v <= math.MaxInt64 {
		return int64(v)
	}
	return float64(v)
}

// Get returns the value stored under key in a Mapping.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != Mapping {
		return nil, false
	}
	for _, e := range n.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys of a Mapping in document order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != Mapping {
		return nil
	}
	keys := make([]string, len(n.Entries))
	for i, e := range n.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Len returns the number of entries or items, or zero for a Scalar.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case Mapping:
		return len(n.Entries)
	case Sequence:
		return len(n.Items)
	default:
		return 0
	}
}

// IsCollection reports whether n is a Mapping or a Sequence.
func (n *Node) IsCollection() bool {
	return n != nil && n.Kind != Scalar
}

// AsString returns the string value of a string Scalar.
func (n *Node) AsString() (string, bool) {
	if n == nil || n.Kind != Scalar {
		return "", false
	}
	s, ok := n.Value.(string)
	return s, ok
}

// Text renders a Scalar as it would read in YAML. Collections render as a
// compact JSON-like flow form.
func (n *Node) Text() string {
	if n == nil {
		return "null"
	}
	if n.Kind != Scalar {
		b, err := json.Marshal(n)
		if err != nil {
			return fmt.Sprintf("<%s>", n.Kind)
		}
		return string(b)
	}
	switch v := n.Value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// Keep floats visibly distinct from ints.
	if !bytes.ContainsAny([]byte(s), ".eE") {
		s += ".0"
	}
	return s
}

// Equal reports deep equality. Scalars are equal only when both the Go type
// and the value match, so 1 and 1.0 differ.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Mapping:
		if len(a.Entries) != len(b.Entries) {
			return false
		}
		for _, e := range a.Entries {
			bv, ok := b.Get(e.Key)
			if !ok || !Equal(e.Value, bv) {
				return false
			}
		}
		return true
	case Sequence:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	default:
		return scalarEqual(a.Value, b.Value)
	}
}

func scalarEqual(a, b any) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(av) && math.IsNaN(bv) {
			return true
		}
		return av == bv
	default:
		return a == b
	}
}

// Interface converts n into plain Go values: map[string]any, []any and
// scalars. Mapping order is lost.
func (n *Node) Interface() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case Mapping:
		m := make(map[string]any, len(n.Entries))
		for _, e := range n.Entries {
			m[e.Key] = e.Value.Interface()
		}
		return m
	case Sequence:
		s := make([]any, len(n.Items))
		for i, item := range n.Items {
			s[i] = item.Interface()
		}
		return s
	default:
		return n.Value
	}
}

// MarshalJSON encodes n keeping mapping order. Non-finite floats have no JSON
// form and are written as their YAML spelling.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.Kind {
	case Mapping:
		buf.WriteByte('{')
		for i, e := range n.Entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(e.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := e.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case Sequence:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		v := n.Value
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			v = formatFloat(f)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}
