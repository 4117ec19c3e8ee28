// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package change

import (
	"strconv"
	"strings"
)

// SegmentKind distinguishes how a path descends into its parent.
type SegmentKind int

const (
	// Field descends into a mapping by key.
	Field SegmentKind = iota
	// Index descends into a sequence by position.
	Index
	// Key descends into a sequence of records by the record's sort key value.
	Key
)

// Segment is one step of a Path.
type Segment struct {
	Kind SegmentKind
	Name string // Field and Key
	Pos  int    // Index
}

// FieldSegment returns a mapping descent.
func FieldSegment(name string) Segment { return Segment{Kind: Field, Name: name} }

// IndexSegment returns a positional sequence descent.
func IndexSegment(pos int) Segment { return Segment{Kind: Index, Pos: pos} }

// KeySegment returns a keyed sequence descent.
func KeySegment(key string) Segment { return Segment{Kind: Key, Name: key} }

// Label is the segment as shown on its own, without path punctuation.
func (s Segment) Label() string {
	if s.Kind == Index {
		return strconv.Itoa(s.Pos)
	}
	return s.Name
}

func (s Segment) String() string {
	switch s.Kind {
	case Index:
		return "[" + strconv.Itoa(s.Pos) + "]"
	case Key:
		if keyNeedsQuoting(s.Name) {
			return "[" + strconv.Quote(s.Name) + "]"
		}
		return "[" + s.Name + "]"
	default:
		if needsQuoting(s.Name) {
			return "[" + strconv.Quote(s.Name) + "]"
		}
		return s.Name
	}
}

func needsQuoting(name string) bool {
	return name == "" || strings.ContainsAny(name, ".[]")
}

// keyNeedsQuoting is looser than needsQuoting: dots are common in record
// keys (hostnames, versions) and are unambiguous inside brackets.
func keyNeedsQuoting(key string) bool {
	return key == "" || strings.ContainsAny(key, `[]"`)
}

// link is a cell of a parent-pointing list. Cells are shared between every
// Path that extends the same prefix and are never modified.
type link struct {
	parent *link
	seg    Segment
	depth  int
}

// Path locates a value within a document. The zero Path is the document root.
// Paths are values: Append returns a new Path and never alters the receiver.
type Path struct {
	tip *link
}

// NewPath builds a Path from segments.
func NewPath(segs ...Segment) Path {
	var p Path
	for _, s := range segs {
		p = p.Append(s)
	}
	return p
}

// Append returns p extended by s.
func (p Path) Append(s Segment) Path {
	return Path{tip: &link{parent: p.tip, seg: s, depth: p.Len() + 1}}
}

// Field returns p extended by a mapping key.
func (p Path) Field(name string) Path { return p.Append(FieldSegment(name)) }

// Index returns p extended by a sequence position.
func (p Path) Index(pos int) Path { return p.Append(IndexSegment(pos)) }

// Key returns p extended by a record key.
func (p Path) Key(key string) Path { return p.Append(KeySegment(key)) }

// Len returns the number of segments.
func (p Path) Len() int {
	if p.tip == nil {
		return 0
	}
	return p.tip.depth
}

// IsRoot reports whether p has no segments.
func (p Path) IsRoot() bool { return p.tip == nil }

// Last returns the final segment.
func (p Path) Last() (Segment, bool) {
	if p.tip == nil {
		return Segment{}, false
	}
	return p.tip.seg, true
}

// Parent returns p without its final segment. The parent of the root is the
// root.
func (p Path) Parent() Path {
	if p.tip == nil {
		return p
	}
	return Path{tip: p.tip.parent}
}

// Segments returns a fresh slice of the segments from the root down.
func (p Path) Segments() []Segment {
	segs := make([]Segment, p.Len())
	for l := p.tip; l != nil; l = l.parent {
		segs[l.depth-1] = l.seg
	}
	return segs
}

// Equal reports whether both paths hold the same segments.
func (p Path) Equal(o Path) bool {
	if p.Len() != o.Len() {
		return false
	}
	for a, b := p.tip, o.tip; a != nil; a, b = a.parent, b.parent {
		if a == b {
			return true
		}
		if a.seg != b.seg {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is p or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if prefix.Len() > p.Len() {
		return false
	}
	for p.Len() > prefix.Len() {
		p = p.Parent()
	}
	return p.Equal(prefix)
}

// String renders p as dotted fields with bracketed sequence segments, e.g.
// spec.containers[app].env[FOO].value or list[2].
func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p.Segments() {
		str := s.String()
		if i > 0 && s.Kind == Field && !strings.HasPrefix(str, "[") {
			sb.WriteByte('.')
		}
		sb.WriteString(str)
	}
	return sb.String()
}
