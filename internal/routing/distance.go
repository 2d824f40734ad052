package routing

import (
	"math"
	"sync"
)

// DistanceSource supplies distances between named locations and resolves
// location names to coordinates. Lookups never fail: unknown pairs fall
// back to defined defaults so a missing map entry can never abort an
// optimization run.
type DistanceSource interface {
	// Distance returns the tabulated distance in km between two named
	// locations, or a default when neither direction is tabulated.
	Distance(from, to string) float64

	// CoordinatesOf resolves a location name. The second return is false
	// when the location has no known coordinates; callers must fall back
	// to name-based distance in that case.
	CoordinatesOf(name string) (Coordinates, bool)

	// FromCoordinates returns the great-circle distance in km from a point
	// to a named location, falling back to the depot-relative table
	// distance when the location's coordinates are unknown.
	FromCoordinates(from Coordinates, to string) float64

	// ClosestLocation returns the known location name nearest to a point,
	// or the depot name when no coordinates are known at all.
	ClosestLocation(point Coordinates) string
}

// DistanceUpdater is an optional capability of a DistanceSource whose
// table can be changed at runtime. Callers check for it with a type
// assertion rather than inspecting the concrete provider.
type DistanceUpdater interface {
	SetDistance(from, to string, km float64)
}

// TableDistanceSource is the built-in DistanceSource: a symmetric
// in-memory distance table plus a static location→coordinate lookup with a
// haversine fallback. A single RWMutex guards the table so SetDistance can
// write both directions without readers observing a half-written pair.
type TableDistanceSource struct {
	mu        sync.RWMutex
	distances map[string]float64
	coords    map[string]Coordinates
	names     []string // insertion order, keeps ClosestLocation deterministic
	depot     string
	defaultKm float64
}

// NewTableDistanceSource builds a provider from caller-supplied tables.
// Every distance is stored in both directions. Nil maps are allowed.
func NewTableDistanceSource(depot string, distances map[[2]string]float64, coords map[string]Coordinates) *TableDistanceSource {
	s := &TableDistanceSource{
		distances: make(map[string]float64),
		coords:    make(map[string]Coordinates),
		depot:     depot,
		defaultKm: DefaultDistanceKm,
	}
	for pair, km := range distances {
		s.SetDistance(pair[0], pair[1], km)
	}
	for name, c := range coords {
		s.addCoordinates(name, c)
	}
	return s
}

// NewKilinochchiDistanceSource builds the provider seeded with the
// Kilinochchi district road distances and town coordinates.
func NewKilinochchiDistanceSource(depot string) *TableDistanceSource {
	if depot == "" {
		depot = DefaultDepot
	}
	s := NewTableDistanceSource(depot, nil, nil)
	for _, e := range kilinochchiDistances {
		s.SetDistance(e.from, e.to, e.km)
	}
	for _, e := range kilinochchiCoordinates {
		s.addCoordinates(e.name, e.coords)
	}
	return s
}

func (s *TableDistanceSource) addCoordinates(name string, c Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.coords[name]; !seen {
		s.names = append(s.names, name)
	}
	s.coords[name] = c
}

func distanceKey(from, to string) string {
	return from + "|" + to
}

// Distance returns the direct table entry if present, else the reverse
// entry, else the default. Unknown pairs silently get the default; an
// unknown truck location degrades to default-distance routing rather than
// failing.
func (s *TableDistanceSource) Distance(from, to string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if km, ok := s.distances[distanceKey(from, to)]; ok {
		return km
	}
	if km, ok := s.distances[distanceKey(to, from)]; ok {
		return km
	}
	return s.defaultKm
}

// SetDistance inserts or overwrites both (from,to) and (to,from),
// maintaining table symmetry.
func (s *TableDistanceSource) SetDistance(from, to string, km float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distances[distanceKey(from, to)] = km
	s.distances[distanceKey(to, from)] = km
}

func (s *TableDistanceSource) CoordinatesOf(name string) (Coordinates, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.coords[name]
	return c, ok
}

func (s *TableDistanceSource) FromCoordinates(from Coordinates, to string) float64 {
	if target, ok := s.CoordinatesOf(to); ok {
		return GreatCircleKm(from, target)
	}
	return s.Distance(s.depot, to)
}

func (s *TableDistanceSource) ClosestLocation(point Coordinates) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best := s.depot
	bestKm := math.MaxFloat64
	for _, name := range s.names {
		km := GreatCircleKm(point, s.coords[name])
		if km < bestKm {
			bestKm = km
			best = name
		}
	}
	return best
}

const earthRadiusKm = 6371.0

// GreatCircleKm computes the haversine distance between two points in km.
// Behavior is undefined for NaN or out-of-range latitudes; inputs are the
// caller's responsibility to validate.
func GreatCircleKm(a, b Coordinates) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}
