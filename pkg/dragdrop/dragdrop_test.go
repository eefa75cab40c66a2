package dragdrop

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/b/tabdeck/pkg/catalog"
	"github.com/b/tabdeck/pkg/tabs"
)

func seeded(t *testing.T) *tabs.Store {
	t.Helper()
	s := tabs.NewStore()
	for id := 1; id <= 3; id++ {
		s.AddOrActivateTab(catalog.MenuEntry{ID: id, Title: "menu"}, tabs.PaneLeft, false)
	}
	s.AddOrActivateTab(catalog.MenuEntry{ID: 4, Title: "menu"}, tabs.PaneRight, false)
	// left: 1 2 3, right: 4
	return s
}

func ids(list []tabs.Tab) []int {
	out := make([]int, 0, len(list))
	for _, t := range list {
		out = append(out, t.TabID)
	}
	return out
}

func TestDropReorderWithinPane(t *testing.T) {
	s := seeded(t)
	a := NewAdapter(s)

	res := a.Drop(Event{ActiveTabID: 3, OverTabID: 1, SourcePane: tabs.PaneLeft, TargetPane: tabs.PaneLeft})
	require.Equal(t, Reordered, res)
	require.Equal(t, []int{3, 1, 2}, ids(s.Snapshot().Left))
}

func TestDropMoveAcrossSides(t *testing.T) {
	s := seeded(t)
	a := NewAdapter(s)

	res := a.Drop(Event{ActiveTabID: 2, SourcePane: tabs.PaneLeft, TargetPane: tabs.PaneRight})
	require.Equal(t, Moved, res)

	snap := s.Snapshot()
	require.Equal(t, []int{1, 3}, ids(snap.Left))
	require.Equal(t, []int{4, 2}, ids(snap.Right))
	require.Equal(t, 2, snap.ActiveRightTabID)
}

func TestDropMoveOntoTab(t *testing.T) {
	s := seeded(t)
	a := NewAdapter(s)

	res := a.Drop(Event{ActiveTabID: 2, OverTabID: 4, SourcePane: tabs.PaneLeft, TargetPane: tabs.PaneRight})
	require.Equal(t, Moved, res)

	snap := s.Snapshot()
	require.Equal(t, []int{2, 4}, ids(snap.Right))
	tab, ok := snap.Find(2)
	require.True(t, ok)
	require.Equal(t, tabs.PaneRight, tab.Pane)
	require.Equal(t, tabs.PaneLeft, tab.OriginalPane)
}

func TestDropMoveOntoTabCommitsOnce(t *testing.T) {
	s := seeded(t)
	var seen []tabs.Snapshot
	s.OnChange(func(snap tabs.Snapshot) { seen = append(seen, snap) })

	NewAdapter(s).Drop(Event{ActiveTabID: 3, OverTabID: 4, SourcePane: tabs.PaneLeft, TargetPane: tabs.PaneRight})

	require.Len(t, seen, 1)
	require.Equal(t, []int{3, 4}, ids(seen[0].Right))
	require.Equal(t, []int{1, 2}, ids(seen[0].Left))
}

func TestDropIgnored(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
	}{
		{"no over tab in same pane", Event{ActiveTabID: 1, SourcePane: tabs.PaneLeft, TargetPane: tabs.PaneLeft}},
		{"self drop", Event{ActiveTabID: 1, OverTabID: 1, SourcePane: tabs.PaneLeft, TargetPane: tabs.PaneLeft}},
		{"unknown tab", Event{ActiveTabID: 99, SourcePane: tabs.PaneLeft, TargetPane: tabs.PaneRight}},
		{"tab not in source", Event{ActiveTabID: 4, SourcePane: tabs.PaneLeft, TargetPane: tabs.PaneRight}},
		{"over tab elsewhere", Event{ActiveTabID: 1, OverTabID: 4, SourcePane: tabs.PaneLeft, TargetPane: tabs.PaneLeft}},
		{"into quad pane", Event{ActiveTabID: 1, SourcePane: tabs.PaneLeft, TargetPane: tabs.PaneUpper}},
		{"bad pane", Event{ActiveTabID: 1, SourcePane: "middle", TargetPane: tabs.PaneRight}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seeded(t)
			before := s.Snapshot()
			require.Equal(t, Ignored, NewAdapter(s).Drop(tt.ev))
			require.Equal(t, before, s.Snapshot())
		})
	}
}

func TestDropReorderInQuadPane(t *testing.T) {
	s := seeded(t)
	s.EnterQuadSplit()
	a := NewAdapter(s)

	res := a.Drop(Event{ActiveTabID: 2, OverTabID: 1, SourcePane: tabs.PaneUpper, TargetPane: tabs.PaneUpper})
	require.Equal(t, Reordered, res)
	require.Equal(t, []int{2, 1}, ids(s.Snapshot().Upper))
}

func TestResultString(t *testing.T) {
	require.Equal(t, "moved", Moved.String())
	require.Equal(t, "reordered", Reordered.String())
	require.Equal(t, "ignored", Ignored.String())
}
