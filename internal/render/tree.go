// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/tfctl/yd/internal/change"
	"github.com/tfctl/yd/internal/differ"
	"github.com/tfctl/yd/internal/node"
	"github.com/tfctl/yd/internal/normalize"
)

const rootLabel = "(document)"

// trie groups changes by path so shared ancestors print once.
type trie struct {
	seg      change.Segment
	path     change.Path
	host     bool
	changes  []change.Change
	children []*trie
	index    map[change.Segment]*trie
}

func (t *trie) child(s change.Segment) *trie {
	if c, ok := t.index[s]; ok {
		return c
	}
	if t.index == nil {
		t.index = map[change.Segment]*trie{}
	}
	c := &trie{seg: s, path: t.path.Append(s)}
	t.index[s] = c
	t.children = append(t.children, c)
	return c
}

func buildTrie(changes []change.Change) *trie {
	root := &trie{}
	for _, c := range changes {
		cur := root
		for _, s := range c.Path.Segments() {
			cur = cur.child(s)
			if c.Embedded && c.EmbeddedAt.Equal(cur.path) {
				cur.host = true
			}
		}
		cur.changes = append(cur.changes, c)
	}
	return root
}

type treeWriter struct {
	w    *bufio.Writer
	res  Result
	pal  Palette
	opts Options
}

func writeTree(w io.Writer, res Result, pal Palette, opts Options) error {
	tw := &treeWriter{w: bufio.NewWriter(w), res: res, pal: pal, opts: opts}

	root := buildTrie(res.Changes)
	for _, c := range root.changes {
		tw.change(rootLabel, false, c, 0)
	}
	tw.children(root, 0)

	return tw.w.Flush()
}

func (tw *treeWriter) children(t *trie, indent int) {
	for _, c := range t.children {
		label := tw.label(c)
		for _, ch := range c.changes {
			tw.change(label, c.seg.Kind == change.Key, ch, indent)
		}
		if len(c.children) == 0 {
			continue
		}

		if tw.isHost(c) {
			tw.line(" ", indent, label+": |")
			if tw.opts.EmbeddedLines && tw.lineDiff(c.path, indent+2) {
				continue
			}
		} else {
			tw.line(" ", indent, tw.structure(c, label))
		}
		tw.children(c, indent+2)
	}
}

// label names t as it appears in front of a colon.
func (tw *treeWriter) label(t *trie) string {
	if t.seg.Kind == change.Field {
		return t.seg.Name
	}
	return t.seg.String()
}

// structure renders the header line of an unchanged ancestor. Records in a
// keyed sequence read as list items: "- name: app".
func (tw *treeWriter) structure(t *trie, label string) string {
	if t.seg.Kind == change.Key {
		if key := tw.sortKey(t.path.Parent()); key != "" {
			return "- " + key + ": " + t.seg.Name
		}
	}
	return label + ":"
}

func (tw *treeWriter) sortKey(p change.Path) string {
	for _, doc := range []*node.Node{tw.res.Left, tw.res.Right} {
		if seq, ok := Lookup(doc, p, tw.res.Normalize...); ok && seq.SortKey != "" {
			return seq.SortKey
		}
	}
	return ""
}

// isHost reports whether t is a string scalar whose text was compared as a
// document. Outer hosts of nested embedded content are found by lookup.
func (tw *treeWriter) isHost(t *trie) bool {
	if t.host {
		return true
	}
	for _, doc := range []*node.Node{tw.res.Left, tw.res.Right} {
		if n, ok := Lookup(doc, t.path, tw.res.Normalize...); ok {
			_, isString := n.AsString()
			return isString
		}
	}
	return false
}

func (tw *treeWriter) change(label string, record bool, c change.Change, indent int) {
	switch c.Kind {
	case change.Added, change.Removed:
		tw.value(c.Kind, label, record, c.Value(), indent)
	default:
		if inlineable(c.Old) && inlineable(c.New) {
			text := tw.pal.Paint(change.Modified, label+":") + " " +
				tw.pal.Paint(change.Removed, Inline(c.Old)) + " → " +
				tw.pal.Paint(change.Added, Inline(c.New))
			tw.raw(tw.pal.Paint(change.Modified, c.Kind.Symbol()) + " " + pad(indent) + text)
			return
		}
		tw.line(change.Modified.Symbol(), indent, label+":")
		tw.body(change.Removed, c.Old, indent+2)
		tw.body(change.Added, c.New, indent+2)
	}
}

// value writes an added or removed value under its label.
func (tw *treeWriter) value(k change.Kind, label string, record bool, v *node.Node, indent int) {
	sym := k.Symbol()

	// A whole record of a keyed sequence reads as a list item.
	if record && v != nil && v.Kind == node.Mapping && v.Len() > 0 {
		for i, l := range Block(v) {
			if i == 0 {
				l = "- " + l
			} else {
				l = "  " + l
			}
			tw.paintLine(k, sym, indent, l)
		}
		return
	}

	if inlineable(v) {
		tw.paintLine(k, sym, indent, label+": "+Inline(v))
		return
	}
	if lines, ok := multiline(v); ok {
		tw.paintLine(k, sym, indent, label+": |")
		for _, l := range lines {
			tw.paintLine(k, sym, indent+2, l)
		}
		return
	}
	tw.paintLine(k, sym, indent, label+":")
	for _, l := range Block(v) {
		tw.paintLine(k, sym, indent+2, l)
	}
}

// body writes one side of a modification that does not fit on one line.
func (tw *treeWriter) body(k change.Kind, v *node.Node, indent int) {
	sym := k.Symbol()
	switch {
	case inlineable(v):
		tw.paintLine(k, sym, indent, Inline(v))
	default:
		lines, ok := multiline(v)
		if !ok {
			lines = Block(v)
		}
		for _, l := range lines {
			tw.paintLine(k, sym, indent, l)
		}
	}
}

// lineDiff writes a unified diff of the embedded documents at p. It reports
// false when either side cannot be recovered.
func (tw *treeWriter) lineDiff(p change.Path, indent int) bool {
	left, lok := tw.embeddedText(tw.res.Left, p)
	right, rok := tw.embeddedText(tw.res.Right, p)
	if !lok || !rok {
		log.Debugf("embedded documents at %s unavailable for line diff", p)
		return false
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:       difflib.SplitLines(left),
		B:       difflib.SplitLines(right),
		Context: 3,
		Eol:     "\n",
	})
	if err != nil {
		log.WithError(err).Debug("unified diff failed")
		return false
	}

	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(l, "@@"):
			tw.line(" ", indent, tw.pal.Faint(l))
		case strings.HasPrefix(l, "+"):
			tw.paintLine(change.Added, "+", indent, l[1:])
		case strings.HasPrefix(l, "-"):
			tw.paintLine(change.Removed, "-", indent, l[1:])
		case l != "":
			tw.line(" ", indent, l[1:])
		}
	}
	return true
}

func (tw *treeWriter) embeddedText(doc *node.Node, p change.Path) (string, bool) {
	host, ok := Lookup(doc, p, tw.res.Normalize...)
	if !ok {
		return "", false
	}
	sub, ok := differ.TryParseEmbedded(host)
	if !ok {
		return "", false
	}
	return strings.Join(Block(normalize.Normalize(sub, tw.res.Normalize...)), "\n") + "\n", true
}

func (tw *treeWriter) paintLine(k change.Kind, sym string, indent int, text string) {
	tw.raw(tw.pal.Paint(k, sym+" "+pad(indent)+text))
}

func (tw *treeWriter) line(sym string, indent int, text string) {
	tw.raw(sym + " " + pad(indent) + text)
}

func (tw *treeWriter) raw(s string) {
	tw.w.WriteString(s)
	tw.w.WriteByte('\n')
}

func pad(n int) string {
	return strings.Repeat(" ", n)
}
