package tabs

import "slices"

// Tab binds a menu to a pane. Title and Icon are copied from the menu at creation.
type Tab struct {
	TabID        int    `json:"tab_id"`
	MenuID       int    `json:"menu_id"`
	Title        string `json:"title"`
	Icon         string `json:"icon,omitempty"`
	Pane         Pane   `json:"pane"`
	OriginalPane Pane   `json:"original_pane"`
	PositionHint Pane   `json:"position_hint,omitempty"` // last SetTabPosition value
}

// state is the full controller state. Zero means "none" for every id field.
type state struct {
	left, right, upper, lower []Tab

	activeLeft, activeRight, activeUpper, activeLower int
	activeMenu                                        int

	nextTabID int

	// version counts committed operations.
	version uint64
}

func newState() *state {
	return &state{nextTabID: 1}
}

func (st *state) clone() *state {
	c := *st
	c.left = slices.Clone(st.left)
	c.right = slices.Clone(st.right)
	c.upper = slices.Clone(st.upper)
	c.lower = slices.Clone(st.lower)
	return &c
}

// list returns the tab list backing p, or nil for an unknown pane.
func (st *state) list(p Pane) *[]Tab {
	switch p {
	case PaneLeft:
		return &st.left
	case PaneRight:
		return &st.right
	case PaneUpper:
		return &st.upper
	case PaneLower:
		return &st.lower
	}
	return nil
}

// active returns the active tab id slot for p, or nil for an unknown pane.
func (st *state) active(p Pane) *int {
	switch p {
	case PaneLeft:
		return &st.activeLeft
	case PaneRight:
		return &st.activeRight
	case PaneUpper:
		return &st.activeUpper
	case PaneLower:
		return &st.activeLower
	}
	return nil
}

func (st *state) mode() Mode {
	switch {
	case len(st.upper) > 0 || len(st.lower) > 0:
		return ModeQuadSplit
	case len(st.right) > 0:
		return ModeDualSplit
	default:
		return ModeSingle
	}
}

func (st *state) issue() int {
	id := st.nextTabID
	st.nextTabID++
	return id
}

// move takes a tab out of a side pane and appends it to the opposite one.
func (st *state) move(tabID int, from Pane) bool {
	to, ok := from.Opposite()
	if !ok {
		return false
	}
	src := st.list(from)
	i := indexOfTab(*src, tabID)
	if i < 0 {
		return false
	}

	tab := (*src)[i]
	*src = slices.Delete(*src, i, i+1)
	if srcActive := st.active(from); *srcActive == tabID {
		*srcActive = lastTabID(*src)
	}

	tab.Pane = to
	dst := st.list(to)
	*dst = append(*dst, tab)
	*st.active(to) = tabID
	st.activeMenu = tab.MenuID
	return true
}

func indexOfTab(tabs []Tab, tabID int) int {
	return slices.IndexFunc(tabs, func(t Tab) bool { return t.TabID == tabID })
}

func indexOfMenu(tabs []Tab, menuID int) int {
	return slices.IndexFunc(tabs, func(t Tab) bool { return t.MenuID == menuID })
}

func lastTabID(tabs []Tab) int {
	if len(tabs) == 0 {
		return 0
	}
	return tabs[len(tabs)-1].TabID
}

func firstTabID(tabs []Tab) int {
	if len(tabs) == 0 {
		return 0
	}
	return tabs[0].TabID
}

func firstMenuID(tabs []Tab) int {
	if len(tabs) == 0 {
		return 0
	}
	return tabs[0].MenuID
}

func menuOf(tabs []Tab, tabID int) int {
	if i := indexOfTab(tabs, tabID); i >= 0 {
		return tabs[i].MenuID
	}
	return 0
}

func withPane(tabs []Tab, p Pane) []Tab {
	out := make([]Tab, len(tabs))
	for i, t := range tabs {
		t.Pane = p
		out[i] = t
	}
	return out
}
