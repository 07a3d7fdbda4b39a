// Package telemetry aggregates per-step simulation events into windowed
// statistics and writes them to structured logs and CSV files.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Population counts at window end
	BacteriaCount int `csv:"bacteria"`
	VirionCount   int `csv:"virions"`

	// Events during window
	Infections    int `csv:"infections"`
	NaturalDeaths int `csv:"natural_deaths"`
	Lyses         int `csv:"lyses"`
	BurstSpawned  int `csv:"burst_spawned"`
	Decayed       int `csv:"decayed"`

	// Nutrient flow
	Uptake     float64 `csv:"uptake"`
	FieldTotal float64 `csv:"field_total"`

	// Biomass distribution (sampled at window end)
	BiomassMean float64 `csv:"biomass_mean"`
	BiomassStd  float64 `csv:"biomass_std"`
	BiomassP10  float64 `csv:"biomass_p10"`
	BiomassP50  float64 `csv:"biomass_p50"`
	BiomassP90  float64 `csv:"biomass_p90"`
}

// ComputeBiomassStats calculates mean, standard deviation and percentiles
// from biomass values. Returns all zeros for an empty sample.
func ComputeBiomassStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	// Quantile requires sorted input
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("bacteria", s.BacteriaCount),
		slog.Int("virions", s.VirionCount),
		slog.Int("infections", s.Infections),
		slog.Int("natural_deaths", s.NaturalDeaths),
		slog.Int("lyses", s.Lyses),
		slog.Int("burst_spawned", s.BurstSpawned),
		slog.Int("decayed", s.Decayed),
		slog.Float64("uptake", s.Uptake),
		slog.Float64("field_total", s.FieldTotal),
		slog.Float64("biomass_mean", s.BiomassMean),
		slog.Float64("biomass_std", s.BiomassStd),
		slog.Float64("biomass_p10", s.BiomassP10),
		slog.Float64("biomass_p50", s.BiomassP50),
		slog.Float64("biomass_p90", s.BiomassP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"bacteria", s.BacteriaCount,
		"virions", s.VirionCount,
		"infections", s.Infections,
		"natural_deaths", s.NaturalDeaths,
		"lyses", s.Lyses,
		"burst_spawned", s.BurstSpawned,
		"decayed", s.Decayed,
		"uptake", s.Uptake,
		"field_total", s.FieldTotal,
		"biomass_mean", s.BiomassMean,
		"biomass_std", s.BiomassStd,
		"biomass_p10", s.BiomassP10,
		"biomass_p50", s.BiomassP50,
		"biomass_p90", s.BiomassP90,
	)
}
