package tui

import (
	"os"
	"strings"
	"sync"
)

type appearanceProfileID string

const (
	appearanceDefault appearanceProfileID = "default"
	// appearanceMono drops category colors and keeps only grays.
	appearanceMono appearanceProfileID = "mono"
)

var (
	appearanceMu      sync.RWMutex
	currentAppearance = appearanceDefault
)

func resetAppearancePaletteToDefaults() {
	colorMuted = defaultColorMuted
	colorSelectedBg = defaultColorSelectedBg
	colorSelectedFg = defaultColorSelectedFg
	colorCardBorder = defaultColorCardBorder
	colorSurfaceFg = defaultColorSurfaceFg
	colorControlBg = defaultColorControlBg
	colorAccent = defaultColorAccent
	colorCardMetaFg = defaultColorCardMetaFg
	colorError = defaultColorError
	colorSuccess = defaultColorSuccess
}

// applyAppearancePreference picks the profile from INTIME_TUI_PROFILE, then the
// configured value, then the default.
func applyAppearancePreference(configured string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("INTIME_TUI_PROFILE")))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(configured))
	}
	setAppearanceProfile(appearanceProfileID(v))
}

func setAppearanceProfile(id appearanceProfileID) {
	appearanceMu.Lock()
	defer appearanceMu.Unlock()

	resetAppearancePaletteToDefaults()
	switch id {
	case appearanceMono:
		colorAccent = ac("236", "252")
		colorSelectedBg = ac("252", "238")
		colorError = ac("235", "252")
		colorSuccess = ac("235", "252")
		currentAppearance = appearanceMono
	default:
		// Unknown ids fall back to the default palette.
		currentAppearance = appearanceDefault
	}
}

func monochrome() bool {
	appearanceMu.RLock()
	defer appearanceMu.RUnlock()
	return currentAppearance == appearanceMono
}
