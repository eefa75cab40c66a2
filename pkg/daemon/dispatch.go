package daemon

import (
	"errors"
	"fmt"

	"github.com/b/tabdeck/pkg/catalog"
	"github.com/b/tabdeck/pkg/dragdrop"
	"github.com/b/tabdeck/pkg/tabs"
)

var (
	ErrUnknownOp   = errors.New("unknown op")
	ErrUnknownMenu = errors.New("unknown menu")
	ErrInvalidPane = errors.New("invalid pane")
)

// Dispatcher maps wire ops onto a tab store. Store-level no-ops are not errors;
// only requests that cannot be expressed as a store call are rejected.
type Dispatcher struct {
	store   *tabs.Store
	catalog *catalog.Catalog
	drops   *dragdrop.Adapter
}

func NewDispatcher(store *tabs.Store, cat *catalog.Catalog) *Dispatcher {
	return &Dispatcher{store: store, catalog: cat, drops: dragdrop.NewAdapter(store)}
}

func (d *Dispatcher) Store() *tabs.Store { return d.store }

// Apply runs op against the store.
func (d *Dispatcher) Apply(op OpPayload) error {
	switch op.Op {
	case OpAdd:
		menu, ok := d.catalog.Lookup(op.MenuID)
		if !ok {
			return fmt.Errorf("menu %d: %w", op.MenuID, ErrUnknownMenu)
		}
		pane := op.Pane
		if pane == "" {
			pane = tabs.PaneLeft
		}
		if !pane.Valid() {
			return fmt.Errorf("%q: %w", pane, ErrInvalidPane)
		}
		d.store.AddOrActivateTab(menu, pane, op.Force)

	case OpClose, OpActivate, OpMove, OpSetPosition:
		if !op.Pane.IsSide() {
			return fmt.Errorf("%s needs left or right, got %q: %w", op.Op, op.Pane, ErrInvalidPane)
		}
		switch op.Op {
		case OpClose:
			d.store.CloseTab(op.TabID, op.Pane)
		case OpActivate:
			d.store.SetActiveTab(op.TabID, op.Pane)
		case OpMove:
			d.store.MoveTabToOtherSide(op.TabID, op.Pane)
		case OpSetPosition:
			d.store.SetTabPosition(op.TabID, op.Pane)
		}

	case OpToggleSplit:
		d.store.ToggleSplit()

	case OpReorder:
		if !op.Pane.Valid() {
			return fmt.Errorf("%q: %w", op.Pane, ErrInvalidPane)
		}
		d.store.ReorderTabs(op.TabID, op.OverTabID, op.Pane)

	case OpEnterQuad:
		d.store.EnterQuadSplit()

	case OpExitQuad:
		d.store.ExitQuadSplit()

	case OpDrop:
		if !op.FromPane.Valid() || !op.Pane.Valid() {
			return fmt.Errorf("drop %q -> %q: %w", op.FromPane, op.Pane, ErrInvalidPane)
		}
		d.drops.Drop(dragdrop.Event{
			ActiveTabID: op.TabID,
			OverTabID:   op.OverTabID,
			SourcePane:  op.FromPane,
			TargetPane:  op.Pane,
		})

	default:
		return fmt.Errorf("%q: %w", op.Op, ErrUnknownOp)
	}
	return nil
}
