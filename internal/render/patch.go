// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/yd/internal/node"
)

// writeMergePatch writes the RFC 7386 document that turns Left into Right.
// A patch whose target is not an object replaces it outright, so anything
// other than two mappings yields the right document itself.
func writeMergePatch(w io.Writer, res Result) error {
	left, err := res.Left.MarshalJSON()
	if err != nil {
		return err
	}
	right, err := res.Right.MarshalJSON()
	if err != nil {
		return err
	}

	patch := right
	if isMapping(res.Left) && isMapping(res.Right) {
		if patch, err = jsonpatch.CreateMergePatch(left, right); err != nil {
			return fmt.Errorf("failed to create merge patch: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, patch, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

// writeJSONDelta writes gojsondiff's annotated rendering of the left
// document. Roots that are not mappings are wrapped under a "document" key.
func writeJSONDelta(w io.Writer, res Result, color bool) error {
	left, err := deltaJSON(res.Left)
	if err != nil {
		return err
	}
	right, err := deltaJSON(res.Right)
	if err != nil {
		return err
	}

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return fmt.Errorf("failed to compare documents: %w", err)
	}

	if !delta.Modified() {
		_, err := fmt.Fprintln(w, "The documents are identical.")
		return err
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return fmt.Errorf("failed to unmarshal document: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	}

	text, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

func deltaJSON(n *node.Node) ([]byte, error) {
	if !isMapping(n) {
		n = node.NewMapping(node.E("document", n))
	}
	return n.MarshalJSON()
}

func isMapping(n *node.Node) bool {
	return n != nil && n.Kind == node.Mapping
}
