// Package layout decides which panes are visible and where, and routes pointer
// gestures to the tab store.
package layout

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/b/tabdeck/pkg/catalog"
	"github.com/b/tabdeck/pkg/config"
	"github.com/b/tabdeck/pkg/tabs"
)

const (
	DefaultSplitRatio   = 0.5
	MinSplitRatio       = 0.2
	MaxSplitRatio       = 0.8
	DefaultSidebarWidth = 24
	MinSidebarWidth     = 16
	MaxSidebarWidth     = 60

	// minContentWidth keeps the sidebar from swallowing the workspace on narrow terminals.
	minContentWidth = 20
)

var ErrUnknownMenu = errors.New("unknown menu")

// Rect is a cell rectangle. X and Y are zero-based.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// PaneView is one visible pane in a render plan.
type PaneView struct {
	Pane        tabs.Pane
	Tabs        []tabs.Tab
	ActiveTabID int
	Focused     bool
	Rect        Rect
}

// Maximized identifies a tab that fills the whole workspace. The zero value means none.
type Maximized struct {
	Pane  tabs.Pane
	TabID int
}

func (m Maximized) IsSet() bool { return m.TabID > 0 }

// RenderPlan is everything a renderer needs to draw one frame.
type RenderPlan struct {
	Mode         tabs.Mode
	Panes        []PaneView
	Maximized    Maximized
	SidebarOpen  bool
	SidebarWidth int
	Sidebar      Rect
	ActiveMenu   int
}

// PaneAt returns the visible pane under (x, y).
func (p RenderPlan) PaneAt(x, y int) (PaneView, bool) {
	for _, v := range p.Panes {
		if v.Rect.Contains(x, y) {
			return v, true
		}
	}
	return PaneView{}, false
}

// Coordinator owns presentation state that is not part of the tab store:
// split ratio, sidebar, maximized tab and which pane has focus.
type Coordinator struct {
	store   *tabs.Store
	catalog *catalog.Catalog

	mu           sync.Mutex
	splitRatio   float64
	sidebarOpen  bool
	sidebarWidth int
	maximized    Maximized
	focus        tabs.Pane
	quadActive   map[tabs.Pane]int
}

func NewCoordinator(store *tabs.Store, cat *catalog.Catalog, cfg config.Layout) *Coordinator {
	c := &Coordinator{
		store:        store,
		catalog:      cat,
		splitRatio:   clampRatio(cfg.SplitRatio),
		sidebarOpen:  cfg.SidebarVisible(),
		sidebarWidth: clampSidebar(cfg.SidebarWidth),
		focus:        tabs.PaneLeft,
		quadActive:   make(map[tabs.Pane]int),
	}
	return c
}

// Apply picks up layout settings after a config reload.
func (c *Coordinator) Apply(cfg config.Layout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.splitRatio = clampRatio(cfg.SplitRatio)
	c.sidebarWidth = clampSidebar(cfg.SidebarWidth)
	c.sidebarOpen = cfg.SidebarVisible()
}

func (c *Coordinator) Store() *tabs.Store { return c.store }

func (c *Coordinator) Catalog() *catalog.Catalog { return c.catalog }

// Open looks menuID up in the catalog and opens it in pane.
func (c *Coordinator) Open(menuID int, pane tabs.Pane, force bool) error {
	menu, ok := c.catalog.Lookup(menuID)
	if !ok {
		return fmt.Errorf("open %d: %w", menuID, ErrUnknownMenu)
	}
	c.store.AddOrActivateTab(menu, pane, force)
	c.SetFocus(pane)
	return nil
}

// Close closes a tab and drops the maximize state if it pointed at it.
func (c *Coordinator) Close(pane tabs.Pane, tabID int) {
	c.store.CloseTab(tabID, pane)
	c.mu.Lock()
	if c.maximized.TabID == tabID {
		c.maximized = Maximized{}
	}
	c.mu.Unlock()
}

// Click activates a tab. Upper and lower panes have no store-side activation, so
// their selection lives here.
func (c *Coordinator) Click(pane tabs.Pane, tabID int) {
	if pane.IsSide() {
		c.store.SetActiveTab(tabID, pane)
		c.SetFocus(pane)
		return
	}
	if !pane.Valid() {
		return
	}
	if !containsTab(c.store.Snapshot().Tabs(pane), tabID) {
		return
	}
	c.mu.Lock()
	c.quadActive[pane] = tabID
	c.focus = pane
	c.mu.Unlock()
}

// ToggleMaximize maximizes a tab, or restores the layout when the same tab is
// already maximized.
func (c *Coordinator) ToggleMaximize(pane tabs.Pane, tabID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maximized.TabID == tabID && c.maximized.Pane == pane {
		c.maximized = Maximized{}
		return
	}
	c.maximized = Maximized{Pane: pane, TabID: tabID}
}

func (c *Coordinator) ToggleSidebar() {
	c.mu.Lock()
	c.sidebarOpen = !c.sidebarOpen
	c.mu.Unlock()
}

func (c *Coordinator) SetSidebarWidth(w int) {
	c.mu.Lock()
	c.sidebarWidth = clampSidebar(w)
	c.mu.Unlock()
}

// Resize sets the split ratio between the two visible panes.
func (c *Coordinator) Resize(ratio float64) {
	c.mu.Lock()
	c.splitRatio = clampRatio(ratio)
	c.mu.Unlock()
}

func (c *Coordinator) SplitRatio() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.splitRatio
}

// Focus returns the pane that keyboard actions target.
func (c *Coordinator) Focus() tabs.Pane {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

// SetFocus moves keyboard focus to p.
func (c *Coordinator) SetFocus(p tabs.Pane) {
	if !p.Valid() {
		return
	}
	c.mu.Lock()
	c.focus = p
	c.mu.Unlock()
}

// Plan lays out a width x height terminal for the current store state.
func (c *Coordinator) Plan(width, height int) RenderPlan {
	snap := c.store.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()

	plan := RenderPlan{Mode: snap.Mode, ActiveMenu: snap.ActiveMenu}

	content := Rect{Width: max(width, 0), Height: max(height, 0)}
	if c.sidebarOpen && width-c.sidebarWidth >= minContentWidth {
		plan.SidebarOpen = true
		plan.SidebarWidth = c.sidebarWidth
		plan.Sidebar = Rect{Width: c.sidebarWidth, Height: content.Height}
		content.X = c.sidebarWidth
		content.Width -= c.sidebarWidth
	}

	visible := c.visiblePanes(snap)
	if c.maximized.IsSet() {
		if containsTab(snap.Tabs(c.maximized.Pane), c.maximized.TabID) {
			plan.Maximized = c.maximized
			plan.Panes = []PaneView{c.view(snap, c.maximized.Pane, content)}
			plan.Panes[0].ActiveTabID = c.maximized.TabID
			return plan
		}
		c.maximized = Maximized{}
	}
	if !containsPane(visible, c.focus) {
		c.focus = visible[0]
	}

	switch len(visible) {
	case 1:
		plan.Panes = []PaneView{c.view(snap, visible[0], content)}
	default:
		first, second := split(content, c.splitRatio, snap.Mode == tabs.ModeQuadSplit)
		plan.Panes = []PaneView{
			c.view(snap, visible[0], first),
			c.view(snap, visible[1], second),
		}
	}
	return plan
}

// visiblePanes returns the panes shown for the derived mode. Side tabs opened
// while quad split is active stay in the store and reappear on exit.
func (c *Coordinator) visiblePanes(snap tabs.Snapshot) []tabs.Pane {
	switch snap.Mode {
	case tabs.ModeQuadSplit:
		return []tabs.Pane{tabs.PaneUpper, tabs.PaneLower}
	case tabs.ModeDualSplit:
		return []tabs.Pane{tabs.PaneLeft, tabs.PaneRight}
	default:
		return []tabs.Pane{tabs.PaneLeft}
	}
}

func (c *Coordinator) view(snap tabs.Snapshot, p tabs.Pane, r Rect) PaneView {
	list := snap.Tabs(p)
	active := snap.ActiveTabID(p)
	if id, ok := c.quadActive[p]; ok {
		if containsTab(list, id) {
			active = id
		} else {
			delete(c.quadActive, p)
		}
	}
	return PaneView{
		Pane:        p,
		Tabs:        list,
		ActiveTabID: active,
		Focused:     p == c.focus,
		Rect:        r,
	}
}

// split divides r side by side, or stacked when vertical is set.
func split(r Rect, ratio float64, vertical bool) (Rect, Rect) {
	first, second := r, r
	if vertical {
		h := int(math.Round(float64(r.Height) * ratio))
		first.Height = h
		second.Y = r.Y + h
		second.Height = r.Height - h
		return first, second
	}
	w := int(math.Round(float64(r.Width) * ratio))
	first.Width = w
	second.X = r.X + w
	second.Width = r.Width - w
	return first, second
}

func clampRatio(r float64) float64 {
	if r == 0 || math.IsNaN(r) {
		return DefaultSplitRatio
	}
	return math.Min(MaxSplitRatio, math.Max(MinSplitRatio, r))
}

func clampSidebar(w int) int {
	if w == 0 {
		return DefaultSidebarWidth
	}
	return min(MaxSidebarWidth, max(MinSidebarWidth, w))
}

func containsTab(list []tabs.Tab, tabID int) bool {
	for _, t := range list {
		if t.TabID == tabID {
			return true
		}
	}
	return false
}

func containsPane(list []tabs.Pane, p tabs.Pane) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
