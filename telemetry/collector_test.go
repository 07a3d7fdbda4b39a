package telemetry

import (
	"math"
	"testing"

	"github.com/mbonnet/phagegrid/sim"
)

func TestCollectorAccumulatesAndResets(t *testing.T) {
	c := NewCollector(10)

	c.Record(sim.StepEvents{Infections: 2, NaturalDeaths: 1, Uptake: 3.5})
	c.Record(sim.StepEvents{Infections: 1, Lyses: 1, Spawned: 5, Decayed: 2, Uptake: 1.5})

	stats := c.Flush(10, 48, 9, []float64{2.0, 4.0}, 3990.0)

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 10 {
		t.Errorf("window = [%d,%d], want [0,10]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Infections != 3 || stats.NaturalDeaths != 1 || stats.Lyses != 1 ||
		stats.BurstSpawned != 5 || stats.Decayed != 2 {
		t.Errorf("events = %+v, accumulation wrong", stats)
	}
	if math.Abs(stats.Uptake-5.0) > 1e-12 {
		t.Errorf("uptake = %v, want 5.0", stats.Uptake)
	}
	if stats.BacteriaCount != 48 || stats.VirionCount != 9 {
		t.Errorf("counts = %d/%d, want 48/9", stats.BacteriaCount, stats.VirionCount)
	}
	if math.Abs(stats.BiomassMean-3.0) > 1e-12 {
		t.Errorf("biomass mean = %v, want 3.0", stats.BiomassMean)
	}

	// Next window starts fresh
	next := c.Flush(20, 48, 9, nil, 3990.0)
	if next.WindowStartTick != 10 || next.Infections != 0 || next.Uptake != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollectorShouldFlush(t *testing.T) {
	c := NewCollector(10)

	if c.ShouldFlush(9) {
		t.Error("flush signaled before the window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("flush not signaled at the window boundary")
	}

	c.Flush(10, 0, 0, nil, 0)
	if c.ShouldFlush(19) {
		t.Error("flush signaled early in the second window")
	}
	if !c.ShouldFlush(20) {
		t.Error("flush not signaled at the second window boundary")
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0)
	if !c.ShouldFlush(1) {
		t.Error("window below 1 tick should clamp to 1")
	}
}
