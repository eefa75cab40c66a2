package daemon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/b/tabdeck/pkg/catalog"
	"github.com/b/tabdeck/pkg/tabs"
)

func newDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	return NewDispatcher(tabs.NewStore(), catalog.Default())
}

func TestDispatchAddDefaultsToLeft(t *testing.T) {
	d := newDispatcher(t)
	require.NoError(t, d.Apply(OpPayload{Op: OpAdd, MenuID: 3}))

	snap := d.Store().Snapshot()
	require.Len(t, snap.Left, 1)
	require.Equal(t, 3, snap.ActiveMenu)
}

func TestDispatchRejects(t *testing.T) {
	tests := []struct {
		name string
		op   OpPayload
		want error
	}{
		{"unknown op", OpPayload{Op: "explode"}, ErrUnknownOp},
		{"unknown menu", OpPayload{Op: OpAdd, MenuID: 404}, ErrUnknownMenu},
		{"bad add pane", OpPayload{Op: OpAdd, MenuID: 3, Pane: "middle"}, ErrInvalidPane},
		{"close in upper", OpPayload{Op: OpClose, TabID: 1, Pane: tabs.PaneUpper}, ErrInvalidPane},
		{"move without pane", OpPayload{Op: OpMove, TabID: 1}, ErrInvalidPane},
		{"reorder bad pane", OpPayload{Op: OpReorder, TabID: 1, OverTabID: 2, Pane: "x"}, ErrInvalidPane},
		{"drop without source", OpPayload{Op: OpDrop, TabID: 1, Pane: tabs.PaneRight}, ErrInvalidPane},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDispatcher(t)
			require.ErrorIs(t, d.Apply(tt.op), tt.want)
			require.Zero(t, d.Store().Snapshot().Count())
		})
	}
}

func TestDispatchFullSequence(t *testing.T) {
	d := newDispatcher(t)
	apply := func(op OpPayload) {
		t.Helper()
		require.NoError(t, d.Apply(op))
	}

	apply(OpPayload{Op: OpAdd, MenuID: 3})
	apply(OpPayload{Op: OpAdd, MenuID: 2})
	apply(OpPayload{Op: OpAdd, MenuID: 2})
	apply(OpPayload{Op: OpAdd, MenuID: 4, Pane: tabs.PaneRight})
	snap := d.Store().Snapshot()
	require.Len(t, snap.Left, 3)
	require.Len(t, snap.Right, 1)

	apply(OpPayload{Op: OpDrop, TabID: 1, FromPane: tabs.PaneLeft, Pane: tabs.PaneRight, OverTabID: 4})
	snap = d.Store().Snapshot()
	require.Equal(t, 1, snap.Right[0].TabID)
	require.Equal(t, 4, snap.Right[1].TabID)

	apply(OpPayload{Op: OpReorder, TabID: 3, OverTabID: 2, Pane: tabs.PaneLeft})
	require.Equal(t, 3, d.Store().Snapshot().Left[0].TabID)

	apply(OpPayload{Op: OpEnterQuad})
	require.True(t, d.Store().IsQuadSplit())

	apply(OpPayload{Op: OpExitQuad})
	apply(OpPayload{Op: OpToggleSplit})
	snap = d.Store().Snapshot()
	require.Equal(t, tabs.ModeSingle, snap.Mode)
	require.Len(t, snap.Left, 4)

	apply(OpPayload{Op: OpActivate, TabID: 2, Pane: tabs.PaneLeft})
	apply(OpPayload{Op: OpSetPosition, TabID: 2, Pane: tabs.PaneRight})
	apply(OpPayload{Op: OpMove, TabID: 2, Pane: tabs.PaneLeft})
	apply(OpPayload{Op: OpClose, TabID: 2, Pane: tabs.PaneRight})
	snap = d.Store().Snapshot()
	require.Equal(t, 3, snap.Count())
	require.False(t, snap.IsSplit())
}
