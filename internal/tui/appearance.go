package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive console.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is
// useful for non-interactive CLI output but can accidentally disable colors
// in a TUI. Here we only honor NO_COLOR and otherwise follow the terminal's
// capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// If TERM/COLORTERM indicate stronger support than the detector reports,
	// trust the env. Some terminals under-report on probing.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection. Some
// terminals don't reliably report their background, which makes
// AdaptiveColor pick the wrong variant.
//
// Priority:
// 1) RENTDESK_TUI_THEME=light|dark|auto
// 2) RENTDESK_TUI_DARKBG=true|false
// 3) COLORFGBG heuristic (format like "15;0" = fg;bg)
func applyThemePreference() {
	if v := strings.TrimSpace(os.Getenv("RENTDESK_TUI_THEME")); v != "" {
		switch strings.ToLower(v) {
		case "light":
			lipgloss.SetHasDarkBackground(false)
			return
		case "dark":
			lipgloss.SetHasDarkBackground(true)
			return
		case "auto":
			// fall through to heuristics
		default:
			// Unknown value: ignore.
		}
	}

	if v := strings.TrimSpace(os.Getenv("RENTDESK_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			lipgloss.SetHasDarkBackground(b)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		bgStr := strings.TrimSpace(parts[len(parts)-1])
		if bg, err := strconv.Atoi(bgStr); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
