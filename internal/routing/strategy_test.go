package routing

import (
	"math"
	"testing"
)

func testSource() *TableDistanceSource {
	s := NewTableDistanceSource("HUB", nil, nil)
	s.SetDistance("HUB", "A", 1.0)
	s.SetDistance("HUB", "B", 2.0)
	s.SetDistance("HUB", "C", 1.5)
	s.SetDistance("A", "B", 0.8)
	s.SetDistance("A", "C", 0.7)
	s.SetDistance("B", "C", 0.9)
	return s
}

func TestOrderRouteEmptyBins(t *testing.T) {
	strategy := NewNearestNeighborStrategy(testSource())

	got, err := strategy.OrderRoute("HUB", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Locations) != 1 || got.Locations[0] != "HUB" {
		t.Fatalf("order = %v, want [HUB]", got.Locations)
	}
	if got.TotalDistanceKm != 0 {
		t.Fatalf("distance = %v, want 0", got.TotalDistanceKm)
	}
}

func TestOrderRouteNearestNext(t *testing.T) {
	strategy := NewNearestNeighborStrategy(testSource())

	bins := []Bin{
		{SensorID: "s1", Location: "A", FillLevel: 80},
		{SensorID: "s2", Location: "B", FillLevel: 80},
		{SensorID: "s3", Location: "C", FillLevel: 80},
	}

	got, err := strategy.OrderRoute("HUB", bins)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"HUB", "A", "C", "B", "HUB"}
	if len(got.Locations) != len(want) {
		t.Fatalf("order = %v, want %v", got.Locations, want)
	}
	for i := range want {
		if got.Locations[i] != want[i] {
			t.Fatalf("order = %v, want %v", got.Locations, want)
		}
	}

	// 1.0 + 0.7 + 0.9 + closing 2.0
	if math.Abs(got.TotalDistanceKm-4.6) > 1e-9 {
		t.Fatalf("distance = %v, want 4.6", got.TotalDistanceKm)
	}
}

func TestOrderRoutePriorityOverridesDistance(t *testing.T) {
	strategy := NewNearestNeighborStrategy(testSource())

	bins := []Bin{
		{SensorID: "s1", Location: "A", FillLevel: 80},
		{SensorID: "s2", Location: "B", FillLevel: 100},
		{SensorID: "s3", Location: "C", FillLevel: 80},
	}

	got, err := strategy.OrderRoute("HUB", bins)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// B is farthest from HUB but completely full, so it comes first.
	want := []string{"HUB", "B", "A", "C", "HUB"}
	for i := range want {
		if got.Locations[i] != want[i] {
			t.Fatalf("order = %v, want %v", got.Locations, want)
		}
	}

	// 2.0 + 0.8 + 0.7 + closing 1.5
	if math.Abs(got.TotalDistanceKm-5.0) > 1e-9 {
		t.Fatalf("distance = %v, want 5.0", got.TotalDistanceKm)
	}
}

func TestOrderRouteSingleBinDoesNotClose(t *testing.T) {
	strategy := NewNearestNeighborStrategy(testSource())

	got, err := strategy.OrderRoute("HUB", []Bin{{SensorID: "s1", Location: "A", FillLevel: 90}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Locations) != 2 || got.Locations[1] != "A" {
		t.Fatalf("order = %v, want [HUB A]", got.Locations)
	}
	if got.TotalDistanceKm != 1.0 {
		t.Fatalf("distance = %v, want 1.0", got.TotalDistanceKm)
	}
}

func TestOrderRouteSkipsDuplicateConsecutiveLocation(t *testing.T) {
	strategy := NewNearestNeighborStrategy(testSource())

	bins := []Bin{
		{SensorID: "s1", Location: "A", FillLevel: 90},
		{SensorID: "s2", Location: "A", FillLevel: 85},
	}

	got, err := strategy.OrderRoute("HUB", bins)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := 0
	for _, loc := range got.Locations {
		if loc == "A" {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("location A appears %d times in %v, want 1", seen, got.Locations)
	}
}
