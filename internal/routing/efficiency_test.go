package routing

import (
	"math"
	"testing"
)

func TestEstimateEfficiencyWithoutBaseline(t *testing.T) {
	o := newTestOptimizer()

	// Optimized run shorter than the synthetic 5 km/bin baseline.
	routes := []Route{{
		BinSensorIDs:     []string{"s1", "s2"},
		TotalDistanceKm:  4,
		EstimatedMinutes: 8,
	}}

	got := o.EstimateEfficiency(routes, nil)
	if got.DistanceSavedKm != 6 {
		t.Fatalf("distance saved = %v, want 6", got.DistanceSavedKm)
	}
	if got.TimeSavedMinutes != 12 {
		t.Fatalf("time saved = %v, want 12", got.TimeSavedMinutes)
	}
	if math.Abs(got.FuelSavedLiters-0.48) > 1e-9 {
		t.Fatalf("fuel saved = %v, want 0.48", got.FuelSavedLiters)
	}
}

func TestEstimateEfficiencyFuelTracksDistance(t *testing.T) {
	o := newTestOptimizer()

	// Fractional saving: 5 - 0.93 = 4.07 km, so the fuel figure must be
	// exactly 4.07 x 0.08 rather than a 2-decimal rounding of it.
	routes := []Route{{
		BinSensorIDs:     []string{"s1"},
		TotalDistanceKm:  0.93,
		EstimatedMinutes: 2,
	}}

	got := o.EstimateEfficiency(routes, nil)
	want := got.DistanceSavedKm * FuelLitersPerKm
	if math.Abs(got.FuelSavedLiters-want) > 1e-12 {
		t.Fatalf("fuel saved = %v, want exactly %v", got.FuelSavedLiters, want)
	}
}

func TestEstimateEfficiencyClampsToZero(t *testing.T) {
	o := newTestOptimizer()

	// Optimized run longer than the baseline: savings clamp at zero.
	routes := []Route{{
		BinSensorIDs:     []string{"s1", "s2"},
		TotalDistanceKm:  15,
		EstimatedMinutes: 90,
	}}

	got := o.EstimateEfficiency(routes, nil)
	if got.TimeSavedMinutes < 0 || got.DistanceSavedKm < 0 || got.FuelSavedLiters < 0 {
		t.Fatalf("savings must be non-negative, got %+v", got)
	}
	if got.FuelSavedLiters != got.DistanceSavedKm*FuelLitersPerKm {
		t.Fatalf("fuel saved = %v, want distance saved x %v", got.FuelSavedLiters, FuelLitersPerKm)
	}
}

func TestEstimateEfficiencyWithExplicitBaseline(t *testing.T) {
	o := newTestOptimizer()

	routes := []Route{{BinSensorIDs: []string{"s1"}, TotalDistanceKm: 2, EstimatedMinutes: 4}}
	baseline := []Route{{BinSensorIDs: []string{"s1"}, TotalDistanceKm: 30, EstimatedMinutes: 60}}

	// The explicit-baseline branch yields zero savings regardless of the
	// baseline's values.
	got := o.EstimateEfficiency(routes, baseline)
	if got != (Efficiency{}) {
		t.Fatalf("explicit baseline must yield zero savings, got %+v", got)
	}
}
