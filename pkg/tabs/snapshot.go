package tabs

import "slices"

// Snapshot is an immutable copy of the store state taken under one lock.
type Snapshot struct {
	Left  []Tab `json:"left"`
	Right []Tab `json:"right"`
	Upper []Tab `json:"upper"`
	Lower []Tab `json:"lower"`

	ActiveLeftTabID  int `json:"active_left_tab_id,omitempty"`
	ActiveRightTabID int `json:"active_right_tab_id,omitempty"`
	ActiveUpperTabID int `json:"active_upper_tab_id,omitempty"`
	ActiveLowerTabID int `json:"active_lower_tab_id,omitempty"`
	ActiveMenu       int `json:"active_menu,omitempty"`

	NextTabID int    `json:"next_tab_id"`
	Mode      Mode   `json:"mode"`
	Version   uint64 `json:"version"`
}

func (st *state) snapshot() Snapshot {
	return Snapshot{
		Left:             slices.Clone(st.left),
		Right:            slices.Clone(st.right),
		Upper:            slices.Clone(st.upper),
		Lower:            slices.Clone(st.lower),
		ActiveLeftTabID:  st.activeLeft,
		ActiveRightTabID: st.activeRight,
		ActiveUpperTabID: st.activeUpper,
		ActiveLowerTabID: st.activeLower,
		ActiveMenu:       st.activeMenu,
		NextTabID:        st.nextTabID,
		Mode:             st.mode(),
		Version:          st.version,
	}
}

// Tabs returns the tab list of p.
func (s Snapshot) Tabs(p Pane) []Tab {
	switch p {
	case PaneLeft:
		return s.Left
	case PaneRight:
		return s.Right
	case PaneUpper:
		return s.Upper
	case PaneLower:
		return s.Lower
	}
	return nil
}

// ActiveTabID returns the active tab of p, or 0 when the pane has none.
func (s Snapshot) ActiveTabID(p Pane) int {
	switch p {
	case PaneLeft:
		return s.ActiveLeftTabID
	case PaneRight:
		return s.ActiveRightTabID
	case PaneUpper:
		return s.ActiveUpperTabID
	case PaneLower:
		return s.ActiveLowerTabID
	}
	return 0
}

func (s Snapshot) IsSplit() bool {
	return len(s.Right) > 0
}

func (s Snapshot) IsQuadSplit() bool {
	return len(s.Upper) > 0 || len(s.Lower) > 0
}

// Find locates a tab in any pane.
func (s Snapshot) Find(tabID int) (Tab, bool) {
	for _, p := range Panes {
		tabs := s.Tabs(p)
		if i := indexOfTab(tabs, tabID); i >= 0 {
			return tabs[i], true
		}
	}
	return Tab{}, false
}

// Count returns the number of open tabs across all panes.
func (s Snapshot) Count() int {
	return len(s.Left) + len(s.Right) + len(s.Upper) + len(s.Lower)
}
