// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/tfctl/yd/internal/change"
	"github.com/tfctl/yd/internal/node"
	"github.com/tfctl/yd/internal/normalize"
)

// Mode selects an output format.
type Mode string

const (
	Tree       Mode = "tree"
	Counts     Mode = "counts"
	Paths      Mode = "paths"
	JSON       Mode = "json"
	YAML       Mode = "yaml"
	MergePatch Mode = "merge-patch"
	JSONDelta  Mode = "json-delta"
)

// Modes lists every output mode in help order.
var Modes = []Mode{Tree, Counts, Paths, JSON, YAML, MergePatch, JSONDelta}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(s))
	if slices.Contains(Modes, m) {
		return m, nil
	}
	return "", fmt.Errorf("unknown output mode %q", s)
}

// Options control rendering.
type Options struct {
	Mode Mode
	// Color enables ANSI styling.
	Color bool
	// EmbeddedLines shows a unified line diff for embedded documents in tree
	// mode instead of their structural changes.
	EmbeddedLines bool
	// SortOutput orders changes removed, modified, added, then by path.
	SortOutput bool
}

// Result is what the renderers draw from.
type Result struct {
	// Left and Right are the normalized documents that were compared. They
	// may be nil when only the change list is available.
	Left  *node.Node
	Right *node.Node
	// Changes in walk order.
	Changes []change.Change
	// Normalize holds the options the documents were normalized with; they
	// are reapplied to embedded documents looked up while rendering.
	Normalize []normalize.Option
}

// Render writes res to w in the selected mode.
func Render(w io.Writer, res Result, opts Options) error {
	if opts.Mode == "" {
		opts.Mode = Tree
	}

	changes := res.Changes
	if opts.SortOutput {
		changes = slices.Clone(changes)
		change.Sort(changes)
	}
	res.Changes = changes

	pal := NewPalette(opts.Color)

	switch opts.Mode {
	case Tree:
		return writeTree(w, res, pal, opts)
	case Counts:
		_, err := fmt.Fprintln(w, change.Count(changes))
		return err
	case Paths:
		return writePaths(w, changes, pal)
	case JSON:
		return writeJSON(w, changes)
	case YAML:
		return writeYAML(w, changes)
	case MergePatch:
		return writeMergePatch(w, res)
	case JSONDelta:
		return writeJSONDelta(w, res, opts.Color)
	default:
		return fmt.Errorf("unknown output mode %q", opts.Mode)
	}
}

func writePaths(w io.Writer, changes []change.Change, pal Palette) error {
	for _, c := range changes {
		line := pal.Paint(c.Kind, c.Kind.Symbol()+" "+c.Path.String())
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
