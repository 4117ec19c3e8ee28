// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package focus

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/yd/internal/log"
	"github.com/tfctl/yd/internal/node"
)

// ErrNoMatch is returned when a path selects nothing in either document.
var ErrNoMatch = errors.New("focus path matched nothing")

var (
	indexRe  = regexp.MustCompile(`\[(\d+)\]`)
	quotedRe = regexp.MustCompile(`\["((?:[^"\\]|\\.)*)"\]`)
)

// Expr converts a display path to a gjson path.
func Expr(path string) string {
	expr := quotedRe.ReplaceAllStringFunc(path, func(m string) string {
		s, err := strconv.Unquote(m[1 : len(m)-1])
		if err != nil {
			return m
		}
		return "." + gjson.Escape(s)
	})
	expr = indexRe.ReplaceAllString(expr, ".$1")
	return strings.TrimPrefix(expr, ".")
}

// Select returns the subtree of n found at path. An empty path selects n.
// It reports false when the path matches nothing.
func Select(n *node.Node, path string) (*node.Node, bool, error) {
	if path == "" || n == nil {
		return n, n != nil, nil
	}

	js, err := n.MarshalJSON()
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode document: %w", err)
	}

	expr := Expr(path)
	res := gjson.GetBytes(js, expr)
	log.Debugf("focus %q as %q: exists=%t", path, expr, res.Exists())
	if !res.Exists() {
		return nil, false, nil
	}

	// Walk the original tree when gjson can tell where the match lives, so
	// scalar types survive. Computed results are re-parsed from JSON.
	if p := res.Path(string(js)); p != "" {
		if sub, ok := walk(n, splitPath(p)); ok {
			return sub, true, nil
		}
	}

	sub, err := node.Parse([]byte(res.Raw))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode focus result: %w", err)
	}
	return sub, true, nil
}

// Pair focuses both documents. A side where the path is missing becomes nil
// so its counterpart reads as wholly added or removed.
func Pair(left, right *node.Node, path string) (*node.Node, *node.Node, error) {
	l, lok, err := Select(left, path)
	if err != nil {
		return nil, nil, err
	}
	r, rok, err := Select(right, path)
	if err != nil {
		return nil, nil, err
	}
	if !lok && !rok {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoMatch, path)
	}
	return l, r, nil
}

func walk(n *node.Node, comps []string) (*node.Node, bool) {
	for _, c := range comps {
		switch n.Kind {
		case node.Mapping:
			v, ok := n.Get(c)
			if !ok {
				return nil, false
			}
			n = v
		case node.Sequence:
			i, err := strconv.Atoi(c)
			if err != nil || i < 0 || i >= len(n.Items) {
				return nil, false
			}
			n = n.Items[i]
		default:
			return nil, false
		}
	}
	return n, true
}

// splitPath splits a gjson path on unescaped dots and removes escapes.
func splitPath(p string) []string {
	var comps []string
	var sb strings.Builder
	for i := 0; i < len(p); i++ {
		switch c := p[i]; {
		case c == '\\' && i+1 < len(p):
			i++
			sb.WriteByte(p[i])
		case c == '.':
			comps = append(comps, sb.String())
			sb.Reset()
		default:
			sb.WriteByte(c)
		}
	}
	return append(comps, sb.String())
}
