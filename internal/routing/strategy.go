package routing

import "errors"

// ErrStrategyContract is returned when a strategy fails to produce both a
// visiting order and a total distance. This is a configuration error and is
// surfaced to the caller rather than retried.
var ErrStrategyContract = errors.New("ordering strategy returned no order")

// OrderedRoute is a strategy's output: the visiting order, starting at the
// start location, and the total distance across its legs.
type OrderedRoute struct {
	Locations       []string
	TotalDistanceKm float64
}

// Strategy orders a set of bins into a single tour from a start location.
// Implementations are swappable at runtime without altering the
// orchestrator's behavior contract.
type Strategy interface {
	OrderRoute(start string, bins []Bin) (OrderedRoute, error)
}

// NearestNeighborStrategy is the default ordering strategy: a greedy
// nearest-next heuristic with a priority override. At each step every
// completely full bin is strictly preferred over any partially full bin,
// regardless of distance; within the same tier the bin nearest the current
// location wins, ties going to the earliest bin in input order. The result
// is a feasible tour, not a shortest one.
type NearestNeighborStrategy struct {
	distances DistanceSource
}

func NewNearestNeighborStrategy(distances DistanceSource) *NearestNeighborStrategy {
	return &NearestNeighborStrategy{distances: distances}
}

// OrderRoute visits every bin exactly once starting from start. Once more
// than one location has been appended the tour closes back to start
// (closed-tour convention); a single-bin or empty route does not close.
func (s *NearestNeighborStrategy) OrderRoute(start string, bins []Bin) (OrderedRoute, error) {
	order := []string{start}
	if len(bins) == 0 {
		return OrderedRoute{Locations: order, TotalDistanceKm: 0}, nil
	}

	remaining := make([]Bin, len(bins))
	copy(remaining, bins)

	current := start
	total := 0.0
	appended := 0

	for len(remaining) > 0 {
		bestIdx := 0
		bestKm := s.distances.Distance(current, remaining[0].Location)
		for i := 1; i < len(remaining); i++ {
			km := s.distances.Distance(current, remaining[i].Location)
			if betterStep(remaining[i], km, remaining[bestIdx], bestKm) {
				bestIdx = i
				bestKm = km
			}
		}

		chosen := remaining[bestIdx]
		// Consecutive duplicate locations are not re-appended, but the
		// looked-up distance still counts toward the total.
		if chosen.Location != current {
			order = append(order, chosen.Location)
			appended++
		}
		total += bestKm
		current = chosen.Location
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	if appended > 1 {
		total += s.distances.Distance(current, start)
		order = append(order, start)
	}

	return OrderedRoute{Locations: order, TotalDistanceKm: total}, nil
}

// betterStep reports whether candidate beats the incumbent for the next
// greedy step: priority tier first, then distance. Strict comparisons keep
// the earliest bin on ties.
func betterStep(candidate Bin, candidateKm float64, incumbent Bin, incumbentKm float64) bool {
	if candidate.Priority() != incumbent.Priority() {
		return candidate.Priority()
	}
	return candidateKm < incumbentKm
}
