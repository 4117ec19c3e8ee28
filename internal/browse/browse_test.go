// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package browse

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/yd/internal/change"
	"github.com/tfctl/yd/internal/node"
)

func testChanges() []change.Change {
	root := change.NewPath()
	return []change.Change{
		change.Modify(root.Field("cpu"), node.NewScalar(1), node.NewScalar(2)),
		change.Remove(root.Field("list").Index(2), node.NewScalar(3)),
		change.Add(root.Field("mem"), node.NewMapping(node.E("limit", node.NewScalar("4Gi")))),
	}
}

func press(t *testing.T, m model, msgs ...tea.Msg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCursorMovement(t *testing.T) {
	m := newModel("left ↔ right", testChanges())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor, "cursor stops at the last row")

	m, _ = press(t, m, runes("k"), runes("k"), runes("k"))
	assert.Equal(t, 0, m.cursor, "cursor stops at the first row")
}

func TestToggleDetail(t *testing.T) {
	m := newModel("docs", testChanges())
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace})

	assert.True(t, m.open[2])
	assert.Contains(t, m.View(), "+ limit: 4Gi")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.open[2])
	assert.NotContains(t, m.View(), "+ limit: 4Gi")
}

func TestFilter(t *testing.T) {
	m := newModel("docs", testChanges())

	m, _ = press(t, m, runes("f"))
	assert.Equal(t, []int{1}, m.visible)
	assert.Contains(t, m.View(), "[removed only]")

	m, _ = press(t, m, runes("f"), runes("f"))
	assert.Equal(t, []int{2}, m.visible)

	m, _ = press(t, m, runes("f"))
	assert.Equal(t, []int{0, 1, 2}, m.visible)
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.Msg{runes("q"), tea.KeyMsg{Type: tea.KeyEsc}} {
		_, cmd := press(t, newModel("docs", testChanges()), msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestView(t *testing.T) {
	m := newModel("a.yaml ↔ b.yaml", testChanges())
	v := m.View()

	assert.Contains(t, v, "a.yaml ↔ b.yaml  Added: 1, Removed: 1, Modified: 1")
	assert.Contains(t, v, "~ cpu  1 → 2")
	assert.Contains(t, v, "  - list[2]  3")
	assert.Contains(t, v, "+ mem  {")
	assert.Contains(t, v, "limit: 4Gi")
}

func TestViewEmpty(t *testing.T) {
	m := newModel("docs", nil)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, m.View(), "No changes.")
}

func TestScrolling(t *testing.T) {
	var changes []change.Change
	for i := 0; i < 20; i++ {
		changes = append(changes, change.Add(change.NewPath().Index(i), node.NewScalar(i)))
	}

	m := newModel("docs", changes)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 9})
	for i := 0; i < 10; i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}

	assert.Equal(t, 10, m.cursor)
	assert.Equal(t, 6, m.offset)
	v := m.View()
	assert.Contains(t, v, "+ [10]  10")
	assert.NotContains(t, v, "+ [5]  5")
	assert.Equal(t, 5, strings.Count(v, "+ ["))
}

func TestSummaryTruncates(t *testing.T) {
	long := strings.Repeat("x", 100)
	c := change.Add(change.NewPath().Field("a"), node.NewScalar(long))
	s := summary(c)
	assert.Equal(t, summaryWidth, len([]rune(s)))
	assert.True(t, strings.HasSuffix(s, "…"))
}
