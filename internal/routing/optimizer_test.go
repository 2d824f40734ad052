package routing

import (
	"errors"
	"testing"
)

func newTestOptimizer() *Optimizer {
	src := NewKilinochchiDistanceSource("")
	return NewOptimizer(src, NewNearestNeighborStrategy(src))
}

func TestOptimizeFleetNothingToDo(t *testing.T) {
	o := newTestOptimizer()

	trucks := []Truck{{ID: "t1", Plate: "NP-1234", Active: true}}
	lowBins := []Bin{{SensorID: "s1", Location: "Paranthan", FillLevel: 40}}

	routes, err := o.OptimizeFleet(lowBins, trucks, DefaultDepot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 0 {
		t.Fatalf("expected no routes for low-fill bins, got %d", len(routes))
	}

	fullBins := []Bin{{SensorID: "s1", Location: "Paranthan", FillLevel: 95}}
	inactive := []Truck{{ID: "t1", Plate: "NP-1234", Active: false}}

	routes, err = o.OptimizeFleet(fullBins, inactive, DefaultDepot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 0 {
		t.Fatalf("expected no routes without active trucks, got %d", len(routes))
	}
}

func TestOptimizeFleetSingleTruckCollectsEverything(t *testing.T) {
	o := newTestOptimizer()

	bins := []Bin{
		{SensorID: "b-full", Location: "Ananthapuram", FillLevel: 100},
		{SensorID: "b-part", Location: "Ramanathapuram", FillLevel: 80},
	}
	trucks := []Truck{{ID: "t1", Plate: "NP-1234", Active: true}}

	routes, err := o.OptimizeFleet(bins, trucks, "Kilinochchi Town")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}

	r := routes[0]
	if len(r.BinSensorIDs) != 2 {
		t.Fatalf("route covers %d bins, want 2", len(r.BinSensorIDs))
	}
	if r.Stops[0].SensorID != "b-full" {
		t.Fatalf("first stop = %q, want the full bin", r.Stops[0].SensorID)
	}
	if r.Stops[1].SensorID != "b-part" {
		t.Fatalf("second stop = %q, want the partial bin", r.Stops[1].SensorID)
	}
	if !r.Priority {
		t.Fatal("route with a full bin should carry the priority flag")
	}
	if r.Stops[0].Order != 1 || r.Stops[1].Order != 2 {
		t.Fatalf("stop orders = %d,%d, want dense 1,2", r.Stops[0].Order, r.Stops[1].Order)
	}
	if r.TotalDistanceKm <= 0 {
		t.Fatalf("total distance = %v, want > 0", r.TotalDistanceKm)
	}
}

func TestOptimizeFleetDedicatedPriorityRoutes(t *testing.T) {
	o := newTestOptimizer()

	bins := []Bin{
		{SensorID: "p-pallai", Location: "Pallai", FillLevel: 105},
		{SensorID: "p-anantha", Location: "Ananthapuram", FillLevel: 100},
		{SensorID: "r-rama", Location: "Ramanathapuram", FillLevel: 80},
	}
	trucks := []Truck{
		{ID: "t1", Plate: "NP-0001", Active: true, CurrentLocation: "Paranthan"},
		{ID: "t2", Plate: "NP-0002", Active: true},
	}

	routes, err := o.OptimizeFleet(bins, trucks, "Kilinochchi Town")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}

	byTruck := map[string]Route{}
	for _, r := range routes {
		byTruck[r.TruckID] = r
	}

	// t2 sits at the depot, closest to the Ananthapuram bin; t1 takes Pallai.
	if got := byTruck["t1"]; len(got.BinSensorIDs) != 1 || got.BinSensorIDs[0] != "p-pallai" {
		t.Fatalf("t1 bins = %v, want [p-pallai]", got.BinSensorIDs)
	}

	// No trucks remain, so the regular bin backfills into the nearest
	// existing route (t2's, ending at Ananthapuram).
	t2 := byTruck["t2"]
	if len(t2.BinSensorIDs) != 2 {
		t.Fatalf("t2 bins = %v, want the full bin plus the backfilled one", t2.BinSensorIDs)
	}
	if t2.Stops[0].SensorID != "p-anantha" {
		t.Fatalf("t2 first stop = %q, want the full bin", t2.Stops[0].SensorID)
	}
	if !t2.Priority || !byTruck["t1"].Priority {
		t.Fatal("dedicated full-bin routes should carry the priority flag")
	}

	assertEachBinOnce(t, routes, 3)
}

func TestOptimizeFleetLeftoverPriorityAttach(t *testing.T) {
	o := newTestOptimizer()

	// Three full bins, two trucks: after the pairing loop (t1 at the depot
	// takes Paranthan, t2 at Poonakary takes Mulankavil) the Pallai bin has
	// no truck left and must be attached to the route ending nearest to it.
	bins := []Bin{
		{SensorID: "p-pallai", Location: "Pallai", FillLevel: 105},
		{SensorID: "p-mulan", Location: "Mulankavil", FillLevel: 100},
		{SensorID: "p-paran", Location: "Paranthan", FillLevel: 100},
	}
	trucks := []Truck{
		{ID: "t1", Plate: "NP-0001", Active: true},
		{ID: "t2", Plate: "NP-0002", Active: true, CurrentLocation: "Poonakary"},
	}

	routes, err := o.OptimizeFleet(bins, trucks, "Kilinochchi Town")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}

	byTruck := map[string]Route{}
	for _, r := range routes {
		byTruck[r.TruckID] = r
	}

	// Pallai ends up nearest to the Paranthan route's last stop, so t1
	// carries it; t2 keeps its dedicated route untouched.
	t1 := byTruck["t1"]
	if len(t1.BinSensorIDs) != 2 {
		t.Fatalf("t1 bins = %v, want the dedicated bin plus the leftover", t1.BinSensorIDs)
	}
	if got := byTruck["t2"]; len(got.BinSensorIDs) != 1 || got.BinSensorIDs[0] != "p-mulan" {
		t.Fatalf("t2 bins = %v, want [p-mulan]", got.BinSensorIDs)
	}

	// The receiving route is re-ordered from its start: Paranthan stays
	// ahead of the farther Pallai stop, with dense orders.
	if t1.Stops[0].SensorID != "p-paran" || t1.Stops[1].SensorID != "p-pallai" {
		t.Fatalf("t1 stop order = %q,%q, want p-paran then p-pallai", t1.Stops[0].SensorID, t1.Stops[1].SensorID)
	}
	if t1.Stops[0].Order != 1 || t1.Stops[1].Order != 2 {
		t.Fatalf("t1 stop orders = %d,%d, want 1,2", t1.Stops[0].Order, t1.Stops[1].Order)
	}
	if !t1.Priority || !byTruck["t2"].Priority {
		t.Fatal("full-bin routes should carry the priority flag")
	}

	assertEachBinOnce(t, routes, 3)
}

func TestOptimizeFleetCapacityAndOverflow(t *testing.T) {
	o := newTestOptimizer()

	var bins []Bin
	locations := []string{
		"Ananthapuram", "Ramanathapuram", "Uruthirapuram", "Paranthan",
		"Vaddakkachchi", "Tharmapuram", "Akkarayankulam", "Kandawalai",
		"Pallai", "Poonakary", "Mulankavil",
	}
	for i, loc := range locations {
		bins = append(bins, Bin{SensorID: "s" + loc, Location: loc, FillLevel: 75 + float64(i%20)})
	}

	trucks := []Truck{
		{ID: "t1", Plate: "NP-0001", Active: true},
		{ID: "t2", Plate: "NP-0002", Active: true},
	}

	routes, err := o.OptimizeFleet(bins, trucks, "Kilinochchi Town")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}

	// 11 bins across two trucks capped at 5 each: the overflow bin is
	// backfilled, so one route ends up with 6.
	sizes := map[int]int{}
	for _, r := range routes {
		sizes[len(r.BinSensorIDs)]++
		if r.Priority {
			t.Fatalf("route for truck %s flagged priority without full bins", r.TruckID)
		}
	}
	if sizes[5] != 1 || sizes[6] != 1 {
		t.Fatalf("route sizes = %v, want one of 5 and one of 6", sizes)
	}

	assertEachBinOnce(t, routes, 11)
}

func assertEachBinOnce(t *testing.T, routes []Route, want int) {
	t.Helper()
	seen := map[string]int{}
	total := 0
	for _, r := range routes {
		for _, id := range r.BinSensorIDs {
			seen[id]++
			total++
		}
		if len(r.Stops) != len(r.BinSensorIDs) {
			t.Fatalf("route for truck %s has %d stops for %d bins", r.TruckID, len(r.Stops), len(r.BinSensorIDs))
		}
	}
	if total != want {
		t.Fatalf("assigned %d bins, want %d", total, want)
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("bin %s assigned %d times", id, n)
		}
	}
}

type fixedStrategy struct {
	result OrderedRoute
}

func (f fixedStrategy) OrderRoute(start string, bins []Bin) (OrderedRoute, error) {
	return f.result, nil
}

func TestOptimizeSingleRouteStrategyContract(t *testing.T) {
	o := newTestOptimizer()
	o.SetStrategy(fixedStrategy{})

	_, err := o.OptimizeSingleRoute("Kilinochchi Town", []Bin{{SensorID: "s1", Location: "Paranthan", FillLevel: 90}})
	if !errors.Is(err, ErrStrategyContract) {
		t.Fatalf("err = %v, want ErrStrategyContract", err)
	}
}

func TestSetStrategyReplacesOrdering(t *testing.T) {
	o := newTestOptimizer()
	o.SetStrategy(fixedStrategy{result: OrderedRoute{Locations: []string{"X"}, TotalDistanceKm: 42}})

	got, err := o.OptimizeSingleRoute("anywhere", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalDistanceKm != 42 {
		t.Fatalf("distance = %v, want the injected strategy's 42", got.TotalDistanceKm)
	}
}

type staticSource struct{}

func (staticSource) Distance(from, to string) float64 { return DefaultDistanceKm }

func (staticSource) CoordinatesOf(name string) (Coordinates, bool) { return Coordinates{}, false }

func (staticSource) FromCoordinates(from Coordinates, to string) float64 { return DefaultDistanceKm }

func (staticSource) ClosestLocation(point Coordinates) string { return DefaultDepot }

func TestUpdateDistanceCapability(t *testing.T) {
	table := NewKilinochchiDistanceSource("")
	o := NewOptimizer(table, NewNearestNeighborStrategy(table))

	if !o.UpdateDistance("Kilinochchi Town", "Paranthan", 8.4) {
		t.Fatal("table source should accept distance updates")
	}
	if got := table.Distance("Paranthan", "Kilinochchi Town"); got != 8.4 {
		t.Fatalf("distance after update = %v, want 8.4", got)
	}

	readonly := NewOptimizer(staticSource{}, NewNearestNeighborStrategy(staticSource{}))
	if readonly.UpdateDistance("A", "B", 1) {
		t.Fatal("source without the updater capability must make UpdateDistance a no-op")
	}
}
