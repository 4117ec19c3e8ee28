// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"strconv"
	"strings"

	gyaml "github.com/goccy/go-yaml"

	"github.com/tfctl/yd/internal/node"
)

// goccyValue converts n into values the goccy encoder writes in document
// order.
func goccyValue(n *node.Node) any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case node.Mapping:
		ms := make(gyaml.MapSlice, len(n.Entries))
		for i, e := range n.Entries {
			ms[i] = gyaml.MapItem{Key: e.Key, Value: goccyValue(e.Value)}
		}
		return ms
	case node.Sequence:
		s := make([]any, len(n.Items))
		for i, item := range n.Items {
			s[i] = goccyValue(item)
		}
		return s
	default:
		return n.Value
	}
}

// Block encodes n as block-style YAML and returns its lines.
func Block(n *node.Node) []string {
	b, err := gyaml.MarshalWithOptions(goccyValue(n), gyaml.Indent(2), gyaml.IndentSequence(true))
	if err != nil {
		return []string{n.Text()}
	}
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

// Inline renders n on one line: scalars as text, collections in flow style.
func Inline(n *node.Node) string {
	if n == nil {
		return "null"
	}
	if n.Kind == node.Scalar {
		return scalarText(n)
	}
	b, err := gyaml.MarshalWithOptions(goccyValue(n), gyaml.Flow(true))
	if err != nil {
		return n.Text()
	}
	return strings.TrimSpace(string(b))
}

// scalarText quotes strings that would otherwise read as empty or lose
// surrounding whitespace.
func scalarText(n *node.Node) string {
	if s, ok := n.AsString(); ok && (s == "" || strings.TrimSpace(s) != s) {
		return strconv.Quote(s)
	}
	return n.Text()
}

// multiline returns the lines of a string scalar holding a newline.
func multiline(n *node.Node) ([]string, bool) {
	s, ok := n.AsString()
	if !ok || !strings.Contains(strings.TrimRight(s, "\n"), "\n") {
		return nil, false
	}
	return strings.Split(strings.TrimRight(s, "\n"), "\n"), true
}

// inlineable reports whether n fits after a label on one line.
func inlineable(n *node.Node) bool {
	if n == nil {
		return true
	}
	if n.Kind != node.Scalar {
		return n.Len() == 0
	}
	_, ml := multiline(n)
	return !ml
}
