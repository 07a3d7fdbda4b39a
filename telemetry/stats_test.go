package telemetry

import (
	"math"
	"testing"
)

func TestComputeBiomassStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, std, p10, p50, p90 := ComputeBiomassStats(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Sample standard deviation of 1..10
	if math.Abs(std-3.0276503540974917) > 1e-9 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if p10 < 1 || p10 > 2 {
		t.Errorf("p10 = %v, want within [1,2]", p10)
	}
	if p50 < 5 || p50 > 6 {
		t.Errorf("p50 = %v, want within [5,6]", p50)
	}
	if p90 < 9 || p90 > 10 {
		t.Errorf("p90 = %v, want within [9,10]", p90)
	}
}

func TestComputeBiomassStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeBiomassStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty sample should return all zeros")
	}
}

func TestComputeBiomassStatsSingle(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeBiomassStats([]float64{4.2})
	if mean != 4.2 {
		t.Errorf("mean = %v, want 4.2", mean)
	}
	if std != 0 {
		t.Errorf("std of single sample = %v, want 0", std)
	}
	if p10 != 4.2 || p50 != 4.2 || p90 != 4.2 {
		t.Errorf("percentiles of single sample = %v/%v/%v, want 4.2 each", p10, p50, p90)
	}
}
