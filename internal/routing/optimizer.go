package routing

import (
	"fmt"
	"math"
)

// Optimizer is the allocation engine. It partitions qualifying bins among
// active trucks, handles completely full bins ahead of everything else and
// backfills overflow bins into existing routes when trucks run out. Each
// call is an independent computation; the configured strategy and distance
// source are the only shared collaborators.
type Optimizer struct {
	distances DistanceSource
	strategy  Strategy
}

func NewOptimizer(distances DistanceSource, strategy Strategy) *Optimizer {
	return &Optimizer{distances: distances, strategy: strategy}
}

// SetStrategy replaces the ordering algorithm at runtime. Swapping while an
// optimization call is in flight is not synchronized; callers serialize.
func (o *Optimizer) SetStrategy(strategy Strategy) {
	o.strategy = strategy
}

// UpdateDistance mutates the distance table when the configured source
// supports it. Providers without the DistanceUpdater capability make this
// a no-op.
func (o *Optimizer) UpdateDistance(from, to string, km float64) bool {
	updater, ok := o.distances.(DistanceUpdater)
	if !ok {
		return false
	}
	updater.SetDistance(from, to, km)
	return true
}

// OptimizeSingleRoute orders one bin set from a start location using the
// configured strategy.
func (o *Optimizer) OptimizeSingleRoute(start string, bins []Bin) (OrderedRoute, error) {
	ordered, err := o.strategy.OrderRoute(start, bins)
	if err != nil {
		return OrderedRoute{}, fmt.Errorf("order route from %q: %w", start, err)
	}
	if len(ordered.Locations) == 0 {
		return OrderedRoute{}, ErrStrategyContract
	}
	return ordered, nil
}

// plan is a route under construction: a truck, its start reference and the
// bin set accumulated so far. Bins are appended during allocation and the
// whole set is re-ordered by the strategy whenever it changes.
type plan struct {
	truck Truck
	start string
	bins  []Bin
	route Route
}

// OptimizeFleet runs the full allocation over the supplied bins and trucks.
// Empty results are normal outcomes, not errors: with no active trucks or
// no bins above the collection threshold it returns an empty list.
func (o *Optimizer) OptimizeFleet(bins []Bin, trucks []Truck, depot string) ([]Route, error) {
	if depot == "" {
		depot = DefaultDepot
	}

	var qualifying []Bin
	for _, b := range bins {
		if b.NeedsCollection() {
			qualifying = append(qualifying, b)
		}
	}

	var active []Truck
	for _, t := range trucks {
		if t.Active {
			active = append(active, t)
		}
	}

	if len(qualifying) == 0 || len(active) == 0 {
		return []Route{}, nil
	}

	var priority, regular []Bin
	for _, b := range qualifying {
		if b.Priority() {
			priority = append(priority, b)
		} else {
			regular = append(regular, b)
		}
	}

	var plans []*plan

	if len(active) == 1 {
		// Single-truck total collection: every priority bin, then every
		// regular bin, one combined route ordered by the priority-aware
		// strategy rule.
		combined := append(append([]Bin{}, priority...), regular...)
		p := &plan{
			truck: active[0],
			start: truckStart(active[0], depot),
			bins:  combined,
		}
		if err := o.rebuild(p); err != nil {
			return nil, err
		}
		return []Route{p.route}, nil
	}

	// Priority assignment: repeatedly pair the truck and full bin with the
	// smallest great-circle separation and give that truck a dedicated
	// single-bin route. Stops when either side runs out.
	available := append([]Truck{}, active...)
	remainingPriority := append([]Bin{}, priority...)

	for len(available) > 0 && len(remainingPriority) > 0 {
		bestTruck, bestBin := 0, 0
		bestKm := math.MaxFloat64
		for ti, t := range available {
			for bi, b := range remainingPriority {
				km := o.locationKm(truckStart(t, depot), b.Location)
				if km < bestKm {
					bestKm = km
					bestTruck, bestBin = ti, bi
				}
			}
		}

		t := available[bestTruck]
		p := &plan{
			truck: t,
			start: truckStart(t, depot),
			bins:  []Bin{remainingPriority[bestBin]},
		}
		if err := o.rebuild(p); err != nil {
			return nil, err
		}
		plans = append(plans, p)

		available = append(available[:bestTruck], available[bestTruck+1:]...)
		remainingPriority = append(remainingPriority[:bestBin], remainingPriority[bestBin+1:]...)
	}

	// Full bins outnumbering trucks are attached to whichever existing
	// route ends nearest, and that route is re-ordered around the addition.
	for _, leftover := range remainingPriority {
		target := o.nearestPlanByLastStop(plans, leftover, false)
		if target == nil {
			continue
		}
		target.bins = append(target.bins, leftover)
		if err := o.rebuild(target); err != nil {
			return nil, err
		}
	}

	// Regular assignment: each truck left over from priority handling takes
	// up to MaxBinsPerTruck bins, nearest-first from its current location.
	remainingRegular := append([]Bin{}, regular...)
	for _, t := range available {
		if len(remainingRegular) == 0 {
			break
		}
		start := truckStart(t, depot)
		var taken []Bin
		for len(taken) < MaxBinsPerTruck && len(remainingRegular) > 0 {
			bestIdx := 0
			bestKm := o.locationKm(start, remainingRegular[0].Location)
			for i := 1; i < len(remainingRegular); i++ {
				km := o.locationKm(start, remainingRegular[i].Location)
				if km < bestKm {
					bestKm = km
					bestIdx = i
				}
			}
			taken = append(taken, remainingRegular[bestIdx])
			remainingRegular = append(remainingRegular[:bestIdx], remainingRegular[bestIdx+1:]...)
		}

		p := &plan{truck: t, start: start, bins: taken}
		if err := o.rebuild(p); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	// Overflow backfill: bins left after every truck is loaded go into the
	// non-priority route whose last stop is nearest; priority routes are
	// the last resort. Each insertion re-orders the route from the depot.
	for _, leftover := range remainingRegular {
		target := o.nearestPlanByLastStop(plans, leftover, true)
		if target == nil {
			target = o.nearestPlanByLastStop(plans, leftover, false)
		}
		if target == nil {
			continue
		}
		target.bins = append(target.bins, leftover)
		target.start = depot
		if err := o.rebuild(target); err != nil {
			return nil, err
		}
	}

	routes := make([]Route, 0, len(plans))
	for _, p := range plans {
		routes = append(routes, p.route)
	}
	return routes, nil
}

// rebuild re-orders the plan's accumulated bin set with the strategy and
// regenerates the route record (stops, total distance, duration).
func (o *Optimizer) rebuild(p *plan) error {
	ordered, err := o.OptimizeSingleRoute(p.start, p.bins)
	if err != nil {
		return err
	}

	stops := o.buildStops(ordered, p.bins)

	sensorIDs := make([]string, 0, len(p.bins))
	hasPriority := false
	for _, b := range p.bins {
		sensorIDs = append(sensorIDs, b.SensorID)
		if b.Priority() {
			hasPriority = true
		}
	}

	total := round2(ordered.TotalDistanceKm)
	p.route = Route{
		TruckID:          p.truck.ID,
		TruckPlate:       p.truck.Plate,
		BinSensorIDs:     sensorIDs,
		Stops:            stops,
		TotalDistanceKm:  total,
		EstimatedMinutes: math.Round(total * MinutesPerKm),
		Priority:         hasPriority,
	}
	return nil
}

// buildStops walks the ordered location sequence and emits one stop per
// bin, in visit order, with a dense 1-based order and a travel-time offset
// from the cumulative distance to that point. The closing return leg adds
// no stop.
func (o *Optimizer) buildStops(ordered OrderedRoute, bins []Bin) []Stop {
	stops := make([]Stop, 0, len(bins))
	used := make([]bool, len(bins))

	cumulativeKm := 0.0
	prev := ""
	for i, loc := range ordered.Locations {
		if i > 0 {
			cumulativeKm += o.distances.Distance(prev, loc)
		}
		prev = loc

		for bi, b := range bins {
			if used[bi] || b.Location != loc {
				continue
			}
			used[bi] = true
			stops = append(stops, Stop{
				SensorID:         b.SensorID,
				Order:            len(stops) + 1,
				EstimatedMinutes: math.Round(cumulativeKm * MinutesPerKm),
				Location:         b.Location,
				Priority:         b.Priority(),
			})
		}
	}
	return stops
}

// nearestPlanByLastStop picks the plan whose final stop is great-circle
// nearest to the bin, falling back to table distance when coordinates are
// missing. With regularOnly set, priority routes are skipped.
func (o *Optimizer) nearestPlanByLastStop(plans []*plan, bin Bin, regularOnly bool) *plan {
	var best *plan
	bestKm := math.MaxFloat64
	for _, p := range plans {
		if regularOnly && p.route.Priority {
			continue
		}
		last := p.start
		if n := len(p.route.Stops); n > 0 {
			last = p.route.Stops[n-1].Location
		}
		km := o.locationKm(last, bin.Location)
		if km < bestKm {
			bestKm = km
			best = p
		}
	}
	return best
}

// locationKm measures between two named locations: great-circle when both
// have known coordinates, table distance otherwise.
func (o *Optimizer) locationKm(from, to string) float64 {
	if a, ok := o.distances.CoordinatesOf(from); ok {
		if b, ok := o.distances.CoordinatesOf(to); ok {
			return GreatCircleKm(a, b)
		}
	}
	return o.distances.Distance(from, to)
}

func truckStart(t Truck, depot string) string {
	if t.CurrentLocation == "" {
		return depot
	}
	return t.CurrentLocation
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
