package tabs

import "strings"

// Pane names one of the four fixed display regions.
type Pane string

const (
	PaneLeft  Pane = "left"
	PaneRight Pane = "right"
	PaneUpper Pane = "upper"
	PaneLower Pane = "lower"
)

// Panes lists every pane in display order.
var Panes = []Pane{PaneLeft, PaneRight, PaneUpper, PaneLower}

// ParsePane converts a pane name into a Pane, ignoring case and surrounding space.
func ParsePane(s string) (Pane, bool) {
	p := Pane(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

func (p Pane) Valid() bool {
	switch p {
	case PaneLeft, PaneRight, PaneUpper, PaneLower:
		return true
	}
	return false
}

// IsSide reports whether p is one of the dual-split panes.
func (p Pane) IsSide() bool {
	return p == PaneLeft || p == PaneRight
}

// Opposite returns the other side for left/right.
func (p Pane) Opposite() (Pane, bool) {
	switch p {
	case PaneLeft:
		return PaneRight, true
	case PaneRight:
		return PaneLeft, true
	}
	return "", false
}

// origin is the side a tab created in p remembers as its original pane.
func (p Pane) origin() Pane {
	if p == PaneRight {
		return PaneRight
	}
	return PaneLeft
}

// Mode is the layout derived from pane occupancy.
type Mode string

const (
	ModeSingle    Mode = "single"
	ModeDualSplit Mode = "dual"
	ModeQuadSplit Mode = "quad"
)
