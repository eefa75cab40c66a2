// Package colors derives readable pane header colors from the configured theme.
package colors

import "github.com/b/tabdeck/pkg/config"

// minTextContrast is WCAG AA for normal text.
const minTextContrast = 4.5

// Palette is the resolved set of colors for one pane's tab bar.
type Palette struct {
	ActiveFg   string
	ActiveBg   string
	InactiveFg string
	InactiveBg string
	FocusBg    string // active tab in the pane that has focus
	Border     string
}

// HeaderPalette fills unset foregrounds and enforces readable contrast.
func HeaderPalette(h config.PaneHeader) Palette {
	p := Palette{
		ActiveBg:   orDefault(h.ActiveBg, "#3498db"),
		InactiveBg: orDefault(h.InactiveBg, "#333333"),
	}

	p.ActiveFg = h.ActiveFg
	if p.ActiveFg == "" {
		p.ActiveFg = DeriveTextColor(p.ActiveBg)
	}
	p.ActiveFg = EnsureContrast(p.ActiveFg, p.ActiveBg, minTextContrast)
	p.InactiveFg = EnsureContrast(orDefault(h.InactiveFg, "#cccccc"), p.InactiveBg, minTextContrast)

	if IsLightColor(p.ActiveBg) {
		p.FocusBg = Darken(p.ActiveBg, 0.15)
	} else {
		p.FocusBg = Lighten(p.ActiveBg, 0.15)
	}
	p.Border = Lighten(p.InactiveBg, 0.25)
	return p
}

func orDefault(v, def string) string {
	if _, ok := parse(v); ok {
		return v
	}
	return def
}
