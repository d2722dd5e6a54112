package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-action-layout/pkg/accel"
	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
)

var (
	submenuStyle = lipgloss.NewStyle().Bold(true)
	grabbedStyle = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Pink)
	errorStyle   = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Red)
	warnStyle    = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Orange)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.help.ShowAll {
		return m.help.View()
	}

	header := theme.DefaultTheme.Header.Render("Menu Layout")
	if m.ed.NeedsSaved() {
		header += " " + warnStyle.Render("[unsaved]")
	}

	var bottom string
	switch {
	case m.confirm.Active:
		bottom = m.confirm.View()
	case m.editing != editNone:
		bottom = m.input.View()
	case m.status != "":
		if m.statusErr {
			bottom = errorStyle.Render(m.status)
		} else {
			bottom = theme.DefaultTheme.Info.Render(m.status)
		}
	}

	fullView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.renderRows(),
		bottom,
		m.help.View(),
	)

	// Add top margin to prevent border cutoff
	return "\n" + fullView
}

func (m Model) renderRows() string {
	if len(m.rows) == 0 {
		return theme.DefaultTheme.Muted.Render("  No actions installed")
	}

	var b strings.Builder
	viewportHeight := m.getViewportHeight()
	start := m.scrollOffset
	end := min(start+viewportHeight, len(m.rows))

	for i := start; i < end; i++ {
		row := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}
		line := strings.Repeat("  ", row.Depth) + m.renderRow(row)
		if i == m.cursor {
			line = theme.DefaultTheme.Selected.Render(line)
		}
		b.WriteString(cursor + line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if len(m.rows) > viewportHeight {
		b.WriteString("\n")
		b.WriteString(theme.DefaultTheme.Muted.Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.rows))))
	}
	return b.String()
}

func (m Model) renderRow(row editor.Row) string {
	var line string
	switch row.Type {
	case layout.TypeSeparator:
		return theme.DefaultTheme.Muted.Render("────────────")
	case layout.TypeSubmenu:
		line = submenuStyle.Render("▾ " + row.Label)
	default:
		box := "[x] "
		if !row.Enabled {
			box = "[ ] "
		}
		line = box + row.Label
		if !row.Enabled {
			line = theme.DefaultTheme.Muted.Render(line)
		}
	}
	if row.Custom {
		line += theme.DefaultTheme.Muted.Render(" *")
	}
	if row.Accel != "" {
		line += "  " + theme.DefaultTheme.Muted.Render(accelLabel(row.Accel))
	}
	if m.grabbing && row.Handle == m.grabbed {
		line = grabbedStyle.Render("✥ ") + line
	}
	return line
}

func rowName(row editor.Row) string {
	if row.Type == layout.TypeSeparator {
		return "separator"
	}
	return fmt.Sprintf("%q", row.Label)
}

func accelLabel(s string) string {
	a, err := accel.Parse(s)
	if err != nil {
		return s
	}
	return a.Label()
}
