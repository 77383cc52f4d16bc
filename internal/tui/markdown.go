package tui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

type noteRendererKey struct {
	style string
	width int
}

// noteRenderers caches one glamour renderer per style and wrap width.
// WithAutoStyle would query the terminal on every build.
var noteRenderers sync.Map

func noteRenderer(width int) (*glamour.TermRenderer, error) {
	key := noteRendererKey{style: markdownStyle(), width: width}
	if r, ok := noteRenderers.Load(key); ok {
		return r.(*glamour.TermRenderer), nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyleConfig(key.style)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	actual, _ := noteRenderers.LoadOrStore(key, r)
	return actual.(*glamour.TermRenderer), nil
}

// renderNote renders a milestone note as markdown. Falls back to the raw text
// when glamour fails.
func renderNote(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	r, err := noteRenderer(width)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// markdownStyle is "light" or "dark". INTIME_TUI_MD_STYLE overrides the TUI
// theme for notes only.
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("INTIME_TUI_MD_STYLE"))) {
	case "light", "dark":
		return strings.ToLower(strings.TrimSpace(os.Getenv("INTIME_TUI_MD_STYLE")))
	}
	dark, ok := envBackground()
	if !ok {
		dark = lipgloss.HasDarkBackground()
	}
	if dark {
		return "dark"
	}
	return "light"
}

func markdownStyleConfig(style string) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if style == "light" {
		cfg = styles.LightStyleConfig
	}
	// Notes sit inside the detail view, which has its own margin.
	var zero uint
	cfg.Document.Margin = &zero
	applyMarkdownPalette(&cfg, style)
	return cfg
}

// applyMarkdownPalette ties note colors to the TUI palette so a note reads like
// the rest of the detail view.
func applyMarkdownPalette(cfg *ansi.StyleConfig, style string) {
	text := mdColor(colorSurfaceFg, style)
	accent := mdColor(colorAccent, style)

	cfg.Text.Color = text
	for _, h := range []*ansi.StyleBlock{&cfg.Heading, &cfg.H1, &cfg.H2, &cfg.H3} {
		h.Color = accent
	}
	cfg.Link.Color = accent
	cfg.LinkText.Color = accent
	cfg.Code.Color = text
	cfg.CodeBlock.Color = text
	if cfg.CodeBlock.BackgroundColor == nil {
		cfg.CodeBlock.BackgroundColor = mdColor(colorControlBg, style)
	}
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
}

func mdColor(c lipgloss.AdaptiveColor, style string) *string {
	v := c.Dark
	if style == "light" {
		v = c.Light
	}
	return &v
}
