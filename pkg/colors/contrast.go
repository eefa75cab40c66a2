package colors

import (
	"github.com/lucasb-eyer/go-colorful"
)

const (
	white = "#ffffff"
	black = "#000000"
)

// parse returns the color and whether hexColor is a valid #rrggbb value.
func parse(hexColor string) (colorful.Color, bool) {
	c, err := colorful.Hex(hexColor)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// GetLuminance calculates the relative luminance of a color per WCAG formula.
// Invalid colors count as black.
func GetLuminance(hexColor string) float64 {
	c, ok := parse(hexColor)
	if !ok {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// GetContrastRatio calculates the WCAG contrast ratio between two colors,
// from 1 (none) to 21 (black on white).
func GetContrastRatio(fg, bg string) float64 {
	l1 := GetLuminance(fg)
	l2 := GetLuminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// EnsureContrast pushes fg away from bg until minRatio is met, falling back
// to black or white.
func EnsureContrast(fg, bg string, minRatio float64) string {
	if GetContrastRatio(fg, bg) >= minRatio {
		return fg
	}
	c, ok := parse(fg)
	if !ok {
		return DeriveTextColor(bg)
	}

	target, _ := parse(black)
	if GetLuminance(fg) > GetLuminance(bg) {
		target, _ = parse(white)
	}
	for step := 1; step <= 10; step++ {
		adjusted := c.BlendRgb(target, float64(step)/10).Clamped().Hex()
		if GetContrastRatio(adjusted, bg) >= minRatio {
			return adjusted
		}
	}

	if IsLightColor(bg) {
		return black
	}
	return white
}

// IsLightColor returns true if the color is closer to white than black
func IsLightColor(hexColor string) bool {
	return GetLuminance(hexColor) > 0.5
}

// DeriveTextColor prefers white text unless the background is too light for
// the WCAG large-text ratio of 3:1.
func DeriveTextColor(bgColor string) string {
	if GetContrastRatio(white, bgColor) >= 3.0 {
		return white
	}
	return black
}

// Lighten moves a color towards white by amount (0.0 to 1.0).
func Lighten(hexColor string, amount float64) string {
	return blend(hexColor, white, amount)
}

// Darken moves a color towards black by amount (0.0 to 1.0).
func Darken(hexColor string, amount float64) string {
	return blend(hexColor, black, amount)
}

func blend(hexColor, toward string, amount float64) string {
	c, ok := parse(hexColor)
	if !ok {
		return hexColor
	}
	t, _ := parse(toward)
	return c.BlendRgb(t, amount).Clamped().Hex()
}
