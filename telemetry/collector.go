package telemetry

import "github.com/mbonnet/phagegrid/sim"

// Collector accumulates step events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks int

	// Current window tracking
	windowStart int

	// Event counters for current window
	infections    int
	naturalDeaths int
	lyses         int
	burstSpawned  int
	decayed       int
	uptake        float64
}

// NewCollector creates a stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// Record accumulates one step's events into the current window.
func (c *Collector) Record(ev sim.StepEvents) {
	c.infections += ev.Infections
	c.naturalDeaths += ev.NaturalDeaths
	c.lyses += ev.Lyses
	c.burstSpawned += ev.Spawned
	c.decayed += ev.Decayed
	c.uptake += ev.Uptake
}

// ShouldFlush returns true once enough ticks have passed to close the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStart >= c.windowTicks
}

// Flush produces a WindowStats from the accumulated events and the caller's
// end-of-window samples, then resets counters for the next window.
func (c *Collector) Flush(currentTick, bacteriaCount, virionCount int, biomasses []float64, fieldTotal float64) WindowStats {
	mean, std, p10, p50, p90 := ComputeBiomassStats(biomasses)

	stats := WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   currentTick,
		BacteriaCount:   bacteriaCount,
		VirionCount:     virionCount,
		Infections:      c.infections,
		NaturalDeaths:   c.naturalDeaths,
		Lyses:           c.lyses,
		BurstSpawned:    c.burstSpawned,
		Decayed:         c.decayed,
		Uptake:          c.uptake,
		FieldTotal:      fieldTotal,
		BiomassMean:     mean,
		BiomassStd:      std,
		BiomassP10:      p10,
		BiomassP50:      p50,
		BiomassP90:      p90,
	}

	c.windowStart = currentTick
	c.infections = 0
	c.naturalDeaths = 0
	c.lyses = 0
	c.burstSpawned = 0
	c.decayed = 0
	c.uptake = 0

	return stats
}
