// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"golang.org/x/term"

	"github.com/tfctl/yd/internal/change"
	"github.com/tfctl/yd/internal/config"
)

// Palette paints text by change kind. A disabled palette returns text
// unchanged.
type Palette struct {
	enabled  bool
	added    lipgloss.Style
	removed  lipgloss.Style
	modified lipgloss.Style
	faint    lipgloss.Style
}

// NewPalette builds styles from the colors.* config keys, defaulting to the
// terminal's own green, red and yellow.
func NewPalette(enabled bool) Palette {
	if !enabled {
		return Palette{}
	}

	resolve := func(key, def string) lipgloss.Style {
		c, err := config.GetString(key, def)
		if err != nil || c == "" {
			c = def
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	return Palette{
		enabled:  true,
		added:    resolve("colors.added", "2"),
		removed:  resolve("colors.removed", "1"),
		modified: resolve("colors.modified", "3"),
		faint:    lipgloss.NewStyle().Faint(true),
	}
}

// Paint styles s for kind k. Each line is styled on its own so that
// multi-line text is not padded into a block.
func (p Palette) Paint(k change.Kind, s string) string {
	switch k {
	case change.Added:
		return p.apply(p.added, s)
	case change.Removed:
		return p.apply(p.removed, s)
	default:
		return p.apply(p.modified, s)
	}
}

// Faint styles structural text.
func (p Palette) Faint(s string) string {
	return p.apply(p.faint, s)
}

func (p Palette) apply(style lipgloss.Style, s string) string {
	if !p.enabled || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

// ColorEnabled resolves a --color setting. "auto" colors only when out is a
// terminal and NO_COLOR is unset.
func ColorEnabled(setting string, out *os.File) bool {
	switch strings.ToLower(setting) {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" || out == nil {
		return false
	}
	return term.IsTerminal(int(out.Fd()))
}
