// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"int", "v: 1", int64(1)},
		{"float", "v: 1.0", float64(1)},
		{"negative float", "v: -2.5", -2.5},
		{"bool", "v: true", true},
		{"null tilde", "v: ~", nil},
		{"null empty", "v:", nil},
		{"string", "v: hello", "hello"},
		{"quoted number", `v: "1"`, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			require.Equal(t, Mapping, n.Kind)

			v, ok := n.Get("v")
			require.True(t, ok)
			assert.Equal(t, Scalar, v.Kind)
			assert.Equal(t, tt.want, v.Value)
		})
	}
}

func TestParseKeepsMappingOrder(t *testing.T) {
	n, err := Parse([]byte("zeta: 1\nalpha: 2\nmid: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, n.Keys())
}

func TestParseMergeKeys(t *testing.T) {
	input := `
base: &b
  a: 1
  b: 2
child:
  <<: *b
  b: 3
  c: 4
`
	n, err := Parse([]byte(input))
	require.NoError(t, err)

	child, ok := n.Get("child")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, child.Keys())

	b, _ := child.Get("b")
	assert.Equal(t, int64(3), b.Value)
	a, _ := child.Get("a")
	assert.Equal(t, int64(1), a.Value)
}

func TestParseMergeSequenceEarliestWins(t *testing.T) {
	input := `
one: &one {x: 1}
two: &two {x: 2, y: 2}
both:
  <<: [*one, *two]
`
	n, err := Parse([]byte(input))
	require.NoError(t, err)

	both, _ := n.Get("both")
	x, _ := both.Get("x")
	y, _ := both.Get("y")
	assert.Equal(t, int64(1), x.Value)
	assert.Equal(t, int64(2), y.Value)
}

func TestParseAliasExpands(t *testing.T) {
	n, err := Parse([]byte("a: &v [1, 2]\nb: *v\n"))
	require.NoError(t, err)

	a, _ := n.Get("a")
	b, _ := n.Get("b")
	assert.True(t, Equal(a, b))
	assert.Equal(t, Sequence, b.Kind)
}

func TestParseLiteralBlock(t *testing.T) {
	n, err := Parse([]byte("s: |\n  line one\n  line two\n"))
	require.NoError(t, err)

	s, _ := n.Get("s")
	assert.True(t, s.Literal)
	assert.Equal(t, "line one\nline two\n", s.Value)
}

func TestParseAll(t *testing.T) {
	docs, err := ParseAll([]byte("a: 1\n---\nb: 2\n---\n- x\n"))
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, Mapping, docs[0].Kind)
	assert.Equal(t, Mapping, docs[1].Kind)
	assert.Equal(t, Sequence, docs[2].Kind)
}

func TestParseEmpty(t *testing.T) {
	docs, err := ParseAll(nil)
	require.NoError(t, err)
	assert.Empty(t, docs)

	n, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Scalar, n.Kind)
	assert.Nil(t, n.Value)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated flow", "a: [1, 2"},
		{"tab indentation", "a:\n\tb: 1\n"},
		{"undefined alias", "a: *missing\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}
