package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"intime-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds.
// We use lipgloss.AdaptiveColor where possible and only apply "faint" styling
// on dark backgrounds (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// Common semantic colors used across the TUI.
var (
	defaultColorMuted = ac("240", "243")
	colorMuted        = defaultColorMuted

	defaultColorSelectedBg = ac("#e9e9e9", "#262626")
	defaultColorSelectedFg = ac("235", "255")
	colorSelectedBg        = defaultColorSelectedBg
	colorSelectedFg        = defaultColorSelectedFg

	defaultColorCardBorder = ac("250", "243")
	colorCardBorder        = defaultColorCardBorder

	defaultColorSurfaceFg = ac("235", "252")
	colorSurfaceFg        = defaultColorSurfaceFg

	defaultColorControlBg = ac("252", "235")
	colorControlBg        = defaultColorControlBg

	defaultColorAccent = ac("27", "62")
	colorAccent        = defaultColorAccent

	defaultColorCardMetaFg = ac("238", "250")
	colorCardMetaFg        = defaultColorCardMetaFg

	defaultColorError = ac("160", "203")
	colorError        = defaultColorError

	defaultColorSuccess = ac("28", "114")
	colorSuccess        = defaultColorSuccess
)

// categoryColors holds a strong accent per category and a
// pale surface tint. On dark terminals the accent doubles as the tint.
var categoryColors = map[model.Category]struct{ accent, surface string }{
	model.CategoryPersonal:     {"#EF9A9A", "#FFF3E0"},
	model.CategoryRelationship: {"#81C784", "#E8F5E9"},
	model.CategoryWork:         {"#90CAF9", "#E3F2FD"},
	model.CategoryTravel:       {"#FFB74D", "#FFF8E1"},
	model.CategoryGoal:         {"#CE93D8", "#F3E5F5"},
}

const (
	uncategorizedAccent  = "#9E9E9E"
	uncategorizedSurface = "#F5F5F5"
)

// categoryAccent is used for card borders, the progress fill and category labels.
func categoryAccent(c *model.Category) lipgloss.TerminalColor {
	if monochrome() {
		return colorMuted
	}
	if c != nil {
		if p, ok := categoryColors[*c]; ok {
			return ac(p.accent, p.accent)
		}
	}
	return ac(uncategorizedAccent, uncategorizedAccent)
}

// categorySurface is the pale background tint for the selected card on light terminals.
func categorySurface(c *model.Category) lipgloss.TerminalColor {
	if monochrome() {
		return colorSelectedBg
	}
	surface := uncategorizedSurface
	if c != nil {
		if p, ok := categoryColors[*c]; ok {
			surface = p.surface
		}
	}
	return ac(surface, defaultColorSelectedBg.Dark)
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is useful for
// non-interactive CLI output but can accidentally disable colors in a TUI. For the TUI,
// we only honor NO_COLOR and otherwise follow the terminal's capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector reports
	// (macOS Terminal.app under-reports).
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

// envBackground reports a background forced or hinted by the environment:
// INTIME_TUI_THEME=light|dark, then INTIME_TUI_DARKBG=bool, then COLORFGBG.
func envBackground() (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("INTIME_TUI_THEME"))) {
	case "light":
		return false, true
	case "dark":
		return true, true
	}
	if v := strings.TrimSpace(os.Getenv("INTIME_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b, true
		}
	}
	// xterm palette: 0-6 are dark, 7-15 light.
	if bg, ok := colorFGBGBackground(); ok {
		return bg < 7, true
	}
	return false, false
}

// applyThemePreference configures Lip Gloss's background detection, falling
// back to the macOS appearance when the environment says nothing.
func applyThemePreference() {
	if dark, ok := envBackground(); ok {
		lipgloss.SetHasDarkBackground(dark)
		return
	}
	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
	}
}

// colorFGBGBackground reads the background palette index from COLORFGBG. The last
// segment is the background.
func colorFGBGBackground() (int, bool) {
	v := strings.TrimSpace(os.Getenv("COLORFGBG"))
	if v == "" {
		return 0, false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil || bg < 0 {
		return 0, false
	}
	return bg, true
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// `defaults read -g AppleInterfaceStyle` prints "Dark" in dark mode and exits 1
	// in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}
