// Package tabs owns tab identity, pane membership and layout transitions for the
// dashboard workspace.
//
// Every exported operation runs as one critical section: it works on a copy of the
// current state and publishes the copy only when the operation applies. Invalid
// references (unknown tab, wrong pane, unmet quad-split precondition) leave the
// state untouched and are not reported to the caller.
package tabs

import (
	"slices"
	"sync"
	"time"

	"github.com/b/tabdeck/pkg/catalog"
)

// Recorder receives one observation per store operation.
type Recorder interface {
	ObserveOp(op string, applied bool, elapsed time.Duration)
}

// Store is the tab/pane layout controller. The zero value is not usable; call NewStore.
type Store struct {
	mu        sync.Mutex
	st        *state
	observers []func(Snapshot)
	recorder  Recorder

	// pending holds committed snapshots not yet handed to observers. Only the
	// goroutine that set delivering drains it.
	pending    []Snapshot
	delivering bool
}

type Option func(*Store)

// WithRecorder reports every operation to r.
func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

func NewStore(opts ...Option) *Store {
	s := &Store{st: newState()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to run after every applied operation. Observers run
// outside the store lock, in registration order, and see snapshots in commit
// order.
func (s *Store) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// apply runs fn against a copy of the state and commits it when fn reports success.
func (s *Store) apply(op string, fn func(st *state) bool) {
	start := time.Now()

	s.mu.Lock()
	next := s.st.clone()
	applied := fn(next)
	drain := false
	if applied {
		next.version++
		s.st = next
		if len(s.observers) > 0 {
			s.pending = append(s.pending, next.snapshot())
			if !s.delivering {
				s.delivering = true
				drain = true
			}
		}
	}
	s.mu.Unlock()

	if s.recorder != nil {
		s.recorder.ObserveOp(op, applied, time.Since(start))
	}
	if drain {
		s.deliver()
	}
}

// deliver hands pending snapshots to observers until none are left. Commits made
// while an observer runs are queued behind the current batch.
func (s *Store) deliver() {
	for {
		s.mu.Lock()
		batch := s.pending
		s.pending = nil
		if len(batch) == 0 {
			s.delivering = false
			s.mu.Unlock()
			return
		}
		observers := slices.Clone(s.observers)
		s.mu.Unlock()

		for _, snap := range batch {
			for _, obs := range observers {
				obs(snap)
			}
		}
	}
}

// Snapshot returns a consistent copy of the whole state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.snapshot()
}

func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.mode()
}

// IsSplit reports whether the right pane is populated.
func (s *Store) IsSplit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.right) > 0
}

// IsQuadSplit reports whether the upper or lower pane is populated.
func (s *Store) IsQuadSplit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.upper) > 0 || len(s.st.lower) > 0
}

// ActiveMenu returns the menu highlighted in the header, or 0.
func (s *Store) ActiveMenu() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.activeMenu
}

// Open is AddOrActivateTab into the left pane without forced duplication.
func (s *Store) Open(menu catalog.MenuEntry) {
	s.AddOrActivateTab(menu, PaneLeft, false)
}

// AddOrActivateTab opens menu in pane. A new tab is created when forceDuplicate
// is set, the menu is duplicatable, or pane holds no tab for the menu yet;
// otherwise the existing tab is activated and no id is consumed.
func (s *Store) AddOrActivateTab(menu catalog.MenuEntry, pane Pane, forceDuplicate bool) {
	s.apply("add", func(st *state) bool {
		list := st.list(pane)
		if list == nil || menu.ID <= 0 {
			return false
		}

		if !forceDuplicate && !menu.Duplicatable {
			if i := indexOfMenu(*list, menu.ID); i >= 0 {
				*st.active(pane) = (*list)[i].TabID
				st.activeMenu = menu.ID
				return true
			}
		}

		tab := Tab{
			TabID:        st.issue(),
			MenuID:       menu.ID,
			Title:        menu.Title,
			Icon:         menu.Icon,
			Pane:         pane,
			OriginalPane: pane.origin(),
		}
		*list = append(*list, tab)
		*st.active(pane) = tab.TabID
		st.activeMenu = menu.ID
		return true
	})
}

// CloseTab removes a tab from a side pane. When it was the pane's active tab the
// last remaining tab takes over. The header always follows the pane's active tab
// afterwards, whichever tab was closed.
func (s *Store) CloseTab(tabID int, pane Pane) {
	s.apply("close", func(st *state) bool {
		if !pane.IsSide() {
			return false
		}
		list := st.list(pane)
		i := indexOfTab(*list, tabID)
		if i < 0 {
			return false
		}
		*list = slices.Delete(*list, i, i+1)

		active := st.active(pane)
		if *active == tabID {
			*active = lastTabID(*list)
		}
		st.activeMenu = menuOf(*list, *active)
		return true
	})
}

func (s *Store) SetActiveTab(tabID int, pane Pane) {
	s.apply("activate", func(st *state) bool {
		if !pane.IsSide() {
			return false
		}
		list := *st.list(pane)
		i := indexOfTab(list, tabID)
		if i < 0 {
			return false
		}
		*st.active(pane) = tabID
		st.activeMenu = list[i].MenuID
		return true
	})
}

// MoveTabToOtherSide appends the tab to the end of the opposite side pane and
// makes it active there. OriginalPane is kept.
func (s *Store) MoveTabToOtherSide(tabID int, from Pane) {
	s.apply("move", func(st *state) bool {
		return st.move(tabID, from)
	})
}

// MoveTabToOtherSideAt moves the tab like MoveTabToOtherSide and, when
// overTabID is in the target pane, places it at that tab's index. Both steps
// commit together.
func (s *Store) MoveTabToOtherSideAt(tabID int, from Pane, overTabID int) {
	s.apply("move", func(st *state) bool {
		if !st.move(tabID, from) {
			return false
		}
		to, _ := from.Opposite()
		list := st.list(to)
		at := indexOfTab(*list, overTabID)
		if at < 0 {
			return true
		}
		last := len(*list) - 1
		tab := (*list)[last]
		*list = slices.Insert((*list)[:last], at, tab)
		return true
	})
}

// SetTabPosition records pane as a position hint on the tab without moving it
// between lists.
func (s *Store) SetTabPosition(tabID int, pane Pane) {
	s.apply("set_position", func(st *state) bool {
		if !pane.IsSide() {
			return false
		}
		found := false
		for _, side := range []Pane{PaneLeft, PaneRight} {
			list := *st.list(side)
			if i := indexOfTab(list, tabID); i >= 0 {
				list[i].PositionHint = pane
				found = true
			}
		}
		return found
	})
}

// ToggleSplit collapses a dual split into the left pane, or splits a single pane
// by moving its last tab to the right.
func (s *Store) ToggleSplit() {
	s.apply("toggle_split", func(st *state) bool {
		if len(st.right) > 0 {
			moved := withPane(st.right, PaneLeft)
			st.left = append(st.left, moved...)
			if st.activeLeft == 0 {
				st.activeLeft = lastTabID(moved)
			}
			st.right = nil
			st.activeRight = 0
			return true
		}
		if len(st.left) == 0 {
			return false
		}
		return st.move(lastTabID(st.left), PaneLeft)
	})
}

// ReorderTabs moves activeTabID to the index currently held by overTabID.
func (s *Store) ReorderTabs(activeTabID, overTabID int, pane Pane) {
	s.apply("reorder", func(st *state) bool {
		list := st.list(pane)
		if list == nil {
			return false
		}
		from := indexOfTab(*list, activeTabID)
		to := indexOfTab(*list, overTabID)
		if from < 0 || to < 0 || from == to {
			return false
		}
		tab := (*list)[from]
		*list = slices.Delete(*list, from, from+1)
		*list = slices.Insert(*list, to, tab)
		return true
	})
}

// EnterQuadSplit spreads exactly four left/right tabs over the upper and lower panes.
func (s *Store) EnterQuadSplit() {
	s.apply("enter_quad", func(st *state) bool {
		if len(st.left)+len(st.right) != 4 || len(st.upper)+len(st.lower) > 0 {
			return false
		}
		combined := append(slices.Clone(st.left), st.right...)

		st.upper = withPane(combined[:2], PaneUpper)
		st.lower = withPane(combined[2:], PaneLower)
		st.left, st.right = nil, nil
		st.activeLeft, st.activeRight = 0, 0
		st.activeUpper = firstTabID(st.upper)
		st.activeLower = firstTabID(st.lower)
		st.activeMenu = firstMenuID(st.upper)
		return true
	})
}

// ExitQuadSplit returns every upper/lower tab to its original side. The header
// follows the first left tab even when only the right side ends up populated.
func (s *Store) ExitQuadSplit() {
	s.apply("exit_quad", func(st *state) bool {
		if len(st.upper)+len(st.lower) == 0 {
			return false
		}
		combined := append(slices.Clone(st.upper), st.lower...)

		for _, tab := range combined {
			tab.Pane = tab.OriginalPane
			if tab.Pane == PaneRight {
				st.right = append(st.right, tab)
			} else {
				tab.Pane = PaneLeft
				st.left = append(st.left, tab)
			}
		}

		st.upper, st.lower = nil, nil
		st.activeUpper, st.activeLower = 0, 0
		st.activeLeft = firstTabID(st.left)
		st.activeRight = firstTabID(st.right)
		st.activeMenu = firstMenuID(st.left)
		return true
	})
}
