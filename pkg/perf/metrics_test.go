package perf

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/b/tabdeck/pkg/catalog"
	"github.com/b/tabdeck/pkg/tabs"
)

func TestObserveOpCountsOutcomes(t *testing.T) {
	m := NewMetrics()
	m.ObserveOp("add", true, time.Microsecond)
	m.ObserveOp("add", true, time.Microsecond)
	m.ObserveOp("close", false, time.Microsecond)

	if got := testutil.ToFloat64(m.ops.WithLabelValues("add", OutcomeApplied)); got != 2 {
		t.Fatalf("expected 2 applied adds, got %v", got)
	}
	if got := testutil.ToFloat64(m.ops.WithLabelValues("close", OutcomeNoop)); got != 1 {
		t.Fatalf("expected 1 noop close, got %v", got)
	}
}

func TestMetricsWiredIntoStore(t *testing.T) {
	m := NewMetrics()
	s := tabs.NewStore(tabs.WithRecorder(m))

	s.Open(catalog.MenuEntry{ID: 1, Title: "Monitor"})
	s.EnterQuadSplit()

	if got := testutil.ToFloat64(m.ops.WithLabelValues("add", OutcomeApplied)); got != 1 {
		t.Errorf("expected 1 applied add, got %v", got)
	}
	if got := testutil.ToFloat64(m.ops.WithLabelValues("enter_quad", OutcomeNoop)); got != 1 {
		t.Errorf("expected 1 noop enter_quad, got %v", got)
	}

	n, err := testutil.GatherAndCount(m.Registry(), "tabdeck_store_operations_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 series, got %d", n)
	}
}

func TestTrackReturnsElapsed(t *testing.T) {
	d := Track("sleep", func() { time.Sleep(time.Millisecond) })
	if d < time.Millisecond {
		t.Fatalf("expected at least 1ms, got %v", d)
	}
}
