// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"strings"

	"github.com/tfctl/yd/internal/node"
)

// MaxEmbedDepth bounds how many levels of YAML-inside-a-string are re-parsed.
// Deeper strings compare as plain text.
const MaxEmbedDepth = 8

// TryParseEmbedded parses the text of a string scalar. It succeeds only when
// the text spans more than one line and holds exactly one YAML document whose
// root is a mapping or a sequence. One-line strings such as "Note: x" or
// "{a: 1}" stay plain text. Any other outcome, parse failures included, is
// reported as false.
func TryParseEmbedded(n *node.Node) (*node.Node, bool) {
	s, ok := n.AsString()
	if !ok || strings.TrimSpace(s) == "" || !strings.Contains(s, "\n") {
		return nil, false
	}

	docs, err := node.ParseAll([]byte(s))
	if err != nil || len(docs) != 1 {
		return nil, false
	}
	if !docs[0].IsCollection() {
		return nil, false
	}
	return docs[0], true
}
