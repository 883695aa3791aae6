package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// rowDelegate renders one entity per line: id, name, status badge, plus a
// featured star and an in-flight marker when applicable.
type rowDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newRowDelegate() rowDelegate {
	return rowDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d rowDelegate) Height() int  { return 1 }
func (d rowDelegate) Spacing() int { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	ri, ok := item.(rowItem)
	if !ok {
		fmt.Fprint(w, fmt.Sprint(item))
		return
	}

	parts := make([]string, 0, 5)
	parts = append(parts, styleMuted().Render(ri.row.id()))
	parts = append(parts, ri.row.name())
	parts = append(parts, statusBadge(ri.row.status()))
	if ri.row.featured() {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorFeatured).Render("★"))
	}
	if ri.pending {
		parts = append(parts, stylePending().Render("…applying"))
	}

	line := strings.Join(parts, "  ")
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}
	fmt.Fprint(w, style.Render(line))
}

func newRowList() list.Model {
	l := list.New([]list.Item{}, newRowDelegate(), 0, 0)
	// The app renders its own chrome (breadcrumb, footer, pagination line),
	// so the list stays bare.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// Server-side search replaces the built-in fuzzy filter.
	l.SetFilteringEnabled(false)
	// ESC means "back/cancel" here, never quit.
	l.KeyMap.Quit.SetKeys("ctrl+c")
	return l
}
