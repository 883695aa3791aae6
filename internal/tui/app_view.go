package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"rentdesk/internal/model"
)

const navWidth = 18

func (m appModel) listWidth() int {
	w := m.width - navWidth - 2
	if m.detail != nil || m.pane == paneDetail {
		w /= 2
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m appModel) detailWidth() int {
	w := m.width - navWidth - m.listWidth() - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m appModel) bodyHeight() int {
	h := m.height - 4 // breadcrumb, filter line, footer, spacing
	if h < 5 {
		h = 5
	}
	return h
}

func (m appModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderBreadcrumb())
	b.WriteString("\n")
	b.WriteString(m.renderFilterLine())
	b.WriteString("\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderNav(),
		" ",
		m.renderList(),
		" ",
		m.renderDetail(),
	)
	if m.modal != modalNone {
		body = m.overlayModal(body)
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m appModel) renderBreadcrumb() string {
	crumb := "rentdesk › " + m.leaves[m.navIndex].Title
	if m.meta.TotalPages > 0 {
		crumb += styleMuted().Render(fmt.Sprintf("  page %d/%d (%d items)",
			m.meta.CurrentPage, m.meta.TotalPages, m.meta.TotalItems))
	}
	if m.loadingList {
		crumb += "  " + m.spin.View() + stylePending().Render(" loading…")
	}
	return crumb
}

func (m appModel) renderFilterLine() string {
	f := m.currentFilter()
	parts := []string{}
	if f.Status() != "" {
		parts = append(parts, "status="+f.Status())
	}
	if f.Subtype() != "" {
		parts = append(parts, "type="+f.Subtype())
	}
	if f.Search() != "" {
		parts = append(parts, "search="+f.Search())
	}
	if f.FeaturedOnly() {
		parts = append(parts, "featured")
	}
	if len(parts) == 0 {
		return styleMuted().Render("no filters")
	}
	return styleMuted().Render(strings.Join(parts, "  "))
}

func (m appModel) renderNav() string {
	sel := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	var lines []string
	leafIdx := 0
	for _, node := range model.DefaultNav() {
		group, ok := node.(model.NavGroup)
		if !ok {
			continue
		}
		lines = append(lines, styleMuted().Render(group.Title))
		for range model.NavLeaves(group.Children) {
			leaf := m.leaves[leafIdx]
			label := "  " + leaf.Title
			if leafIdx == m.navIndex {
				if m.pane == paneNav {
					label = sel.Render(label)
				} else {
					label = lipgloss.NewStyle().Bold(true).Render(label)
				}
			}
			lines = append(lines, label)
			leafIdx++
		}
	}
	return lipgloss.NewStyle().Width(navWidth).Height(m.bodyHeight()).Render(strings.Join(lines, "\n"))
}

func (m appModel) renderList() string {
	if m.listErr != "" {
		return lipgloss.NewStyle().Width(m.listWidth()).Render(styleError().Render(m.listErr))
	}
	if len(m.rows.Items()) == 0 && !m.loadingList {
		return lipgloss.NewStyle().Width(m.listWidth()).Render(styleMuted().Render("no results"))
	}
	return m.rows.View()
}

func (m appModel) renderDetail() string {
	w := m.detailWidth()
	if m.loadingDetail {
		return lipgloss.NewStyle().Width(w).Render(m.spin.View() + stylePending().Render(" loading…"))
	}
	if m.detail == nil {
		return lipgloss.NewStyle().Width(w).Render(styleMuted().Render("enter: open details"))
	}
	md := renderMarkdown(m.detail.markdown(), w-2)
	return lipgloss.NewStyle().Width(w).MaxHeight(m.bodyHeight()).Render(md)
}

func (m appModel) renderFooter() string {
	if m.feedbackText != "" {
		if m.feedbackIsErr {
			return styleError().Render(m.feedbackText)
		}
		return styleSuccess().Render(m.feedbackText)
	}
	hints := "tab: pane  enter: open  a: actions  f: feature  s/t/F: filters  /: search  n/p: page  R: refresh  q: quit"
	line := styleMuted().Render(hints)
	if xansi.StringWidth(line) > m.width && m.width > 0 {
		line = xansi.Cut(line, 0, m.width)
	}
	return line
}
