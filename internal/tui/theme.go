package tui

import (
	"github.com/charmbracelet/lipgloss"

	"rentdesk/internal/model"
)

// Theme/palette helpers.
//
// The console must remain readable on both light and dark terminal
// backgrounds, so colors are adaptive and "faint" styling is applied only
// on dark backgrounds (faint text on light terminals often becomes
// illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorAccent     lipgloss.TerminalColor = ac("27", "62") // blue
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorErrorFg    lipgloss.TerminalColor = ac("160", "203")
	colorSuccessFg  lipgloss.TerminalColor = ac("28", "78")
	colorPendingFg  lipgloss.TerminalColor = ac("130", "214") // amber, in-flight markers
	colorFeatured   lipgloss.TerminalColor = ac("94", "220")  // gold star
	colorBorder     lipgloss.TerminalColor = ac("250", "240")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

func styleSuccess() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSuccessFg)
}

func stylePending() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorPendingFg)
}

// statusColor maps lifecycle statuses to badge colors. Unknown statuses fall
// back to the muted chrome color so new server states degrade gracefully.
func statusColor(s model.Status) lipgloss.TerminalColor {
	switch s {
	case model.StatusActive:
		return colorSuccessFg
	case model.StatusPending:
		return colorPendingFg
	case model.StatusRejected, model.StatusBanned, model.StatusCancelled:
		return colorErrorFg
	case model.StatusSold, model.StatusRented:
		return colorAccent
	default:
		return colorMuted
	}
}

func statusBadge(s model.Status) string {
	return lipgloss.NewStyle().Foreground(statusColor(s)).Render(string(s))
}
