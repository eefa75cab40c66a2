// Package dragdrop turns a finished tab drag into tab store operations.
package dragdrop

import "github.com/b/tabdeck/pkg/tabs"

// Result says what a drop did to the store.
type Result int

const (
	Ignored Result = iota
	Reordered
	Moved
)

func (r Result) String() string {
	switch r {
	case Reordered:
		return "reordered"
	case Moved:
		return "moved"
	default:
		return "ignored"
	}
}

// Event is the payload a drag source emits when the pointer is released.
// OverTabID is 0 when the tab was dropped on an empty part of the bar.
type Event struct {
	ActiveTabID int
	OverTabID   int
	SourcePane  tabs.Pane
	TargetPane  tabs.Pane
}

// Store is the subset of *tabs.Store a drop needs.
type Store interface {
	Snapshot() tabs.Snapshot
	MoveTabToOtherSideAt(tabID int, from tabs.Pane, overTabID int)
	ReorderTabs(activeTabID, overTabID int, pane tabs.Pane)
}

type Adapter struct {
	store Store
}

func NewAdapter(store Store) *Adapter {
	return &Adapter{store: store}
}

// Drop applies ev. Within one pane the dragged tab takes the slot of the tab it
// was dropped on. Across left/right the tab moves to the end of the other side
// and, when dropped on a tab there, is then reordered onto it.
func (a *Adapter) Drop(ev Event) Result {
	if ev.ActiveTabID <= 0 || !ev.SourcePane.Valid() || !ev.TargetPane.Valid() {
		return Ignored
	}
	snap := a.store.Snapshot()
	if !containsTab(snap.Tabs(ev.SourcePane), ev.ActiveTabID) {
		return Ignored
	}

	if ev.SourcePane == ev.TargetPane {
		if ev.OverTabID <= 0 || ev.OverTabID == ev.ActiveTabID ||
			!containsTab(snap.Tabs(ev.TargetPane), ev.OverTabID) {
			return Ignored
		}
		a.store.ReorderTabs(ev.ActiveTabID, ev.OverTabID, ev.TargetPane)
		return Reordered
	}

	if opposite, ok := ev.SourcePane.Opposite(); !ok || opposite != ev.TargetPane {
		return Ignored
	}
	a.store.MoveTabToOtherSideAt(ev.ActiveTabID, ev.SourcePane, ev.OverTabID)
	return Moved
}

func containsTab(list []tabs.Tab, tabID int) bool {
	for _, t := range list {
		if t.TabID == tabID {
			return true
		}
	}
	return false
}
