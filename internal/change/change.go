// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package change

import (
	"fmt"
	"sort"

	"github.com/tfctl/yd/internal/node"
)

// Kind classifies a Change.
type Kind int

const (
	Added Kind = iota
	Removed
	Modified
)

// Symbol is the single character gutter mark used by renderers.
func (k Kind) Symbol() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return "~"
	}
}

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "modified"
	}
}

// Change is one divergence between two documents. Old is nil for Added and
// New is nil for Removed.
//
// When Embedded is set the change was found by re-parsing the text of the
// string scalar at EmbeddedAt, and Path continues below that scalar.
type Change struct {
	Kind       Kind
	Path       Path
	Old        *node.Node
	New        *node.Node
	Embedded   bool
	EmbeddedAt Path
}

// Add records a value present only on the right.
func Add(p Path, v *node.Node) Change {
	return Change{Kind: Added, Path: p, New: v}
}

// Remove records a value present only on the left.
func Remove(p Path, v *node.Node) Change {
	return Change{Kind: Removed, Path: p, Old: v}
}

// Modify records a value that differs between sides.
func Modify(p Path, old, new *node.Node) Change {
	return Change{Kind: Modified, Path: p, Old: old, New: new}
}

// Value returns the side a renderer shows first: New for Added, Old
// otherwise.
func (c Change) Value() *node.Node {
	if c.Kind == Added {
		return c.New
	}
	return c.Old
}

// Equal compares kind, path, values and the embedded marker.
func (c Change) Equal(o Change) bool {
	return c.Kind == o.Kind &&
		c.Path.Equal(o.Path) &&
		node.Equal(c.Old, o.Old) &&
		node.Equal(c.New, o.New) &&
		c.Embedded == o.Embedded &&
		c.EmbeddedAt.Equal(o.EmbeddedAt)
}

func (c Change) String() string {
	switch c.Kind {
	case Added:
		return fmt.Sprintf("%s %s: %s", c.Kind.Symbol(), c.Path, c.New.Text())
	case Removed:
		return fmt.Sprintf("%s %s: %s", c.Kind.Symbol(), c.Path, c.Old.Text())
	default:
		return fmt.Sprintf("%s %s: %s → %s", c.Kind.Symbol(), c.Path, c.Old.Text(), c.New.Text())
	}
}

// Invert swaps the roles of left and right: Added and Removed trade places
// and Modified swaps Old and New.
func Invert(cs []Change) []Change {
	out := make([]Change, len(cs))
	for i, c := range cs {
		switch c.Kind {
		case Added:
			c.Kind = Removed
		case Removed:
			c.Kind = Added
		}
		c.Old, c.New = c.New, c.Old
		out[i] = c
	}
	return out
}

// Sort orders changes Removed < Modified < Added, then by path text. The
// slice is sorted in place; equal elements keep their relative order.
func Sort(cs []Change) {
	rank := map[Kind]int{Removed: 0, Modified: 1, Added: 2}
	sort.SliceStable(cs, func(i, j int) bool {
		if rank[cs[i].Kind] != rank[cs[j].Kind] {
			return rank[cs[i].Kind] < rank[cs[j].Kind]
		}
		return cs[i].Path.String() < cs[j].Path.String()
	})
}

// Counts tallies changes by kind.
type Counts struct {
	Added    int
	Removed  int
	Modified int
}

// Count tallies cs.
func Count(cs []Change) Counts {
	var c Counts
	for _, ch := range cs {
		switch ch.Kind {
		case Added:
			c.Added++
		case Removed:
			c.Removed++
		default:
			c.Modified++
		}
	}
	return c
}

// Total returns the number of changes counted.
func (c Counts) Total() int {
	return c.Added + c.Removed + c.Modified
}

func (c Counts) String() string {
	return fmt.Sprintf("Added: %d, Removed: %d, Modified: %d", c.Added, c.Removed, c.Modified)
}
