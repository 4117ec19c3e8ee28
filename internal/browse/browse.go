// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tfctl/yd/internal/change"
	"github.com/tfctl/yd/internal/render"
)

// Run shows changes until the user quits.
func Run(ctx context.Context, title string, changes []change.Change) error {
	p := tea.NewProgram(newModel(title, changes), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Filter key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Filter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "details")),
	Filter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
}

// filters cycles all, removed, modified, added.
var filters = []*change.Kind{nil, kindPtr(change.Removed), kindPtr(change.Modified), kindPtr(change.Added)}

func kindPtr(k change.Kind) *change.Kind { return &k }

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	detailStyle = lipgloss.NewStyle().Faint(true)
)

const summaryWidth = 60

type model struct {
	title   string
	changes []change.Change
	visible []int
	filter  int
	cursor  int
	offset  int
	height  int
	open    map[int]bool
	help    help.Model
}

func newModel(title string, changes []change.Change) model {
	m := model{
		title:   title,
		changes: changes,
		open:    map[int]bool{},
		help:    help.New(),
	}
	m.applyFilter()
	return m
}

func (m *model) applyFilter() {
	m.visible = nil
	want := filters[m.filter]
	for i, c := range m.changes {
		if want == nil || c.Kind == *want {
			m.visible = append(m.visible, i)
		}
	}
	m.cursor, m.offset = 0, 0
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if len(m.visible) > 0 {
				i := m.visible[m.cursor]
				m.open[i] = !m.open[i]
			}
		case key.Matches(msg, keys.Filter):
			m.filter = (m.filter + 1) % len(filters)
			m.applyFilter()
		}
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor row inside the window.
func (m *model) scroll() {
	rows := m.rows()
	if rows <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// rows is the number of list rows that fit, or zero when the height is
// unknown.
func (m model) rows() int {
	if m.height == 0 {
		return 0
	}
	return max(m.height-4, 1)
}

func (m model) View() string {
	var sb strings.Builder

	header := fmt.Sprintf("%s  %s", m.title, change.Count(m.changes))
	if want := filters[m.filter]; want != nil {
		header += fmt.Sprintf("  [%s only]", *want)
	}
	sb.WriteString(titleStyle.Render(header))
	sb.WriteString("\n\n")

	if len(m.visible) == 0 {
		sb.WriteString("  No changes.\n")
	}

	end := len(m.visible)
	if rows := m.rows(); rows > 0 && m.offset+rows < end {
		end = m.offset + rows
	}

	for pos := m.offset; pos < end; pos++ {
		i := m.visible[pos]
		c := m.changes[i]

		row := fmt.Sprintf("%s %s  %s", c.Kind.Symbol(), c.Path, summary(c))
		if pos == m.cursor {
			sb.WriteString("> " + cursorStyle.Render(row))
		} else {
			sb.WriteString("  " + row)
		}
		sb.WriteByte('\n')

		if m.open[i] {
			for _, l := range detail(c) {
				sb.WriteString("      " + detailStyle.Render(l) + "\n")
			}
		}
	}

	sb.WriteByte('\n')
	sb.WriteString(m.help.View(keys))
	sb.WriteByte('\n')
	return sb.String()
}

func summary(c change.Change) string {
	var s string
	switch c.Kind {
	case change.Modified:
		s = render.Inline(c.Old) + " → " + render.Inline(c.New)
	default:
		s = render.Inline(c.Value())
	}
	if r := []rune(s); len(r) > summaryWidth {
		s = string(r[:summaryWidth-1]) + "…"
	}
	if c.Embedded {
		s += fmt.Sprintf("  (in %s)", c.EmbeddedAt)
	}
	return s
}

func detail(c change.Change) []string {
	var out []string
	if c.Old != nil {
		for _, l := range render.Block(c.Old) {
			out = append(out, "- "+l)
		}
	}
	if c.New != nil {
		for _, l := range render.Block(c.New) {
			out = append(out, "+ "+l)
		}
	}
	return out
}
