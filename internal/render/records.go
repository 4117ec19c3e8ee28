// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/tfctl/yd/internal/change"
	"github.com/tfctl/yd/internal/node"
)

// record is the machine-readable form of a change.
type record struct {
	Type     string     `json:"type"`
	Path     string     `json:"path"`
	Old      *node.Node `json:"old,omitempty"`
	New      *node.Node `json:"new,omitempty"`
	Embedded string     `json:"embedded,omitempty"`
}

func newRecord(c change.Change) record {
	r := record{
		Type: c.Kind.String(),
		Path: c.Path.String(),
		Old:  c.Old,
		New:  c.New,
	}
	if c.Embedded {
		r.Embedded = c.EmbeddedAt.String()
	}
	return r
}

func writeJSON(w io.Writer, changes []change.Change) error {
	records := make([]record, 0, len(changes))
	for _, c := range changes {
		records = append(records, newRecord(c))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

func writeYAML(w io.Writer, changes []change.Change) error {
	out := make([]yaml.MapSlice, 0, len(changes))
	for _, c := range changes {
		r := newRecord(c)
		ms := yaml.MapSlice{
			{Key: "type", Value: r.Type},
			{Key: "path", Value: r.Path},
		}
		if r.Old != nil {
			ms = append(ms, yaml.MapItem{Key: "old", Value: v2Value(r.Old)})
		}
		if r.New != nil {
			ms = append(ms, yaml.MapItem{Key: "new", Value: v2Value(r.New)})
		}
		if r.Embedded != "" {
			ms = append(ms, yaml.MapItem{Key: "embedded", Value: r.Embedded})
		}
		out = append(out, ms)
	}

	b, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// v2Value converts n for the yaml.v2 encoder, keeping mapping order.
func v2Value(n *node.Node) any {
	switch n.Kind {
	case node.Mapping:
		ms := make(yaml.MapSlice, len(n.Entries))
		for i, e := range n.Entries {
			ms[i] = yaml.MapItem{Key: e.Key, Value: v2Value(e.Value)}
		}
		return ms
	case node.Sequence:
		s := make([]any, len(n.Items))
		for i, item := range n.Items {
			s[i] = v2Value(item)
		}
		return s
	default:
		return n.Value
	}
}
