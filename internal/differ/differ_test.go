// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package differ

import (
	"embed"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/yd/internal/change"
	"github.com/tfctl/yd/internal/node"
	"github.com/tfctl/yd/internal/normalize"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// diffTestCase represents a single test case for TestCompareCases.
type diffTestCase struct {
	Name    string   `yaml:"name"`
	Left    string   `yaml:"left"`
	Right   string   `yaml:"right"`
	Changes []string `yaml:"changes"`
}

func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func mustParse(t *testing.T, s string) *node.Node {
	t.Helper()
	n, err := node.Parse([]byte(s))
	require.NoError(t, err)
	return n
}

func strs(cs []change.Change) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.String())
	}
	return out
}

func TestCompareCases(t *testing.T) {
	var tests []diffTestCase
	require.NoError(t, loadTestData("diff_cases.yaml", &tests))
	require.NotEmpty(t, tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			got := strs(Compare(mustParse(t, tt.Left), mustParse(t, tt.Right)))
			if len(tt.Changes) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.Changes, got)
		})
	}
}

func TestReflexivity(t *testing.T) {
	var tests []diffTestCase
	require.NoError(t, loadTestData("diff_cases.yaml", &tests))

	for _, tt := range tests {
		for _, doc := range []string{tt.Left, tt.Right} {
			n := normalize.Normalize(mustParse(t, doc))
			assert.Empty(t, Diff(n, n), tt.Name)
		}
	}
}

func TestAntisymmetry(t *testing.T) {
	var tests []diffTestCase
	require.NoError(t, loadTestData("diff_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			l, r := mustParse(t, tt.Left), mustParse(t, tt.Right)
			forward := change.Invert(Compare(l, r))
			backward := Compare(r, l)
			assert.ElementsMatch(t, strs(forward), strs(backward))
		})
	}
}

func TestLeafAtomicity(t *testing.T) {
	l := mustParse(t, "a: {b: {c: 1, d: [1, 2]}, e: x}\nlist: [{name: p, v: 1}]\n")
	r := mustParse(t, "a: {b: {c: 2, d: [1, 3]}, e: y}\nlist: [{name: p, v: 2}]\n")

	cs := Compare(l, r)
	require.Len(t, cs, 4)
	for _, c := range cs {
		require.Equal(t, change.Modified, c.Kind)
		assert.Equal(t, node.Scalar, c.Old.Kind, c.Path.String())
		assert.Equal(t, node.Scalar, c.New.Kind, c.Path.String())
	}
}

func TestSortInvariance(t *testing.T) {
	a := mustParse(t, "- {name: x, v: 1}\n- {name: y, v: 2}\n- {name: z, v: 3}\n")
	b := mustParse(t, "- {name: z, v: 3}\n- {name: x, v: 1}\n- {name: y, v: 2}\n")
	assert.Empty(t, Compare(a, b))
}

func TestEmbeddedMarkers(t *testing.T) {
	l := mustParse(t, "data:\n  config: \"a: 1\\nb: 2\"\nplain: 1\n")
	r := mustParse(t, "data:\n  config: \"a: 1\\nb: 3\"\nplain: 2\n")

	cs := Compare(l, r)
	require.Len(t, cs, 2)

	assert.True(t, cs[0].Embedded)
	assert.Equal(t, "data.config", cs[0].EmbeddedAt.String())
	assert.Equal(t, "data.config.b", cs[0].Path.String())
	assert.True(t, cs[0].Path.HasPrefix(cs[0].EmbeddedAt))

	assert.False(t, cs[1].Embedded)
	assert.True(t, cs[1].EmbeddedAt.IsRoot())
}

func TestNilSides(t *testing.T) {
	doc := mustParse(t, "a: 1\n")

	added := Diff(nil, doc)
	require.Len(t, added, 1)
	assert.Equal(t, change.Added, added[0].Kind)
	assert.True(t, added[0].Path.IsRoot())
	assert.Same(t, doc, added[0].New)

	removed := Diff(doc, nil)
	require.Len(t, removed, 1)
	assert.Equal(t, change.Removed, removed[0].Kind)

	assert.Empty(t, Diff(nil, nil))
}

func TestDiffAt(t *testing.T) {
	d := New()
	cs := d.DiffAt(change.Path{}.Index(1), mustParse(t, "a: 1"), mustParse(t, "a: 2"))
	require.Len(t, cs, 1)
	assert.Equal(t, "[1].a", cs[0].Path.String())
}

func TestDifferOptions(t *testing.T) {
	l := mustParse(t, "- {name: a, v: 1}\n- {name: b, v: 2}\n")
	r := mustParse(t, "- {name: b, v: 2}\n- {name: a, v: 1}\n")

	assert.Empty(t, New().Compare(l, r))
	assert.Len(t, New(normalize.WithoutSmartSort()).Compare(l, r), 4)
}

func TestEmbeddedDepthLimit(t *testing.T) {
	// Each level wraps the previous document as a block string value. The
	// second key keeps every level multiline.
	wrap := func(leaf string, levels int) string {
		doc := "v: " + leaf + "\nw: 0"
		for i := 0; i < levels; i++ {
			q, err := yaml.Marshal(map[string]string{"v": doc, "w": "0"})
			require.NoError(t, err)
			doc = strings.TrimSpace(string(q))
		}
		return doc
	}

	shallow := Compare(mustParse(t, wrap("1", 2)), mustParse(t, wrap("2", 2)))
	require.Len(t, shallow, 1)
	assert.Equal(t, "v.v.v", shallow[0].Path.String())

	deep := Compare(mustParse(t, wrap("1", MaxEmbedDepth+1)), mustParse(t, wrap("2", MaxEmbedDepth+1)))
	require.Len(t, deep, 1)
	assert.Equal(t, MaxEmbedDepth+1, deep[0].Path.Len())
	assert.Equal(t, node.Scalar, deep[0].Old.Kind)
	_, isString := deep[0].Old.AsString()
	assert.True(t, isString)
}
