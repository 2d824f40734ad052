// Package routing contains the route optimization engine: the distance
// lookup, the pluggable ordering strategy and the multi-truck allocation
// algorithm. The package is pure computation over in-memory inputs; it
// performs no I/O and holds no state across optimization calls except the
// mutable distance table.
package routing

const (
	// CollectionThreshold is the fill level above which a bin qualifies
	// for collection.
	CollectionThreshold = 70.0

	// PriorityFillLevel marks a bin as completely full. Priority bins are
	// always scheduled before lower-fill bins competing for the same truck.
	PriorityFillLevel = 100.0

	// DefaultDistanceKm is returned for location pairs absent from the
	// distance table in both directions.
	DefaultDistanceKm = 10.0

	// MaxBinsPerTruck caps the regular bins assigned to one truck in a
	// single optimization call. Overflow bins are backfilled into existing
	// routes afterwards.
	MaxBinsPerTruck = 5

	// MinutesPerKm converts route distance to an estimated duration,
	// assuming a 30 km/h average collection speed.
	MinutesPerKm = 2.0

	// DefaultDepot is the fallback start location for trucks without a
	// known current location.
	DefaultDepot = "Kilinochchi Town"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bin is the optimizer's view of a waste bin: the sensor that reported it,
// where it stands and how full it is. Inputs are treated as already
// validated by the caller.
type Bin struct {
	SensorID  string
	Location  string
	FillLevel float64
}

// Priority reports whether the bin is completely full.
func (b Bin) Priority() bool {
	return b.FillLevel >= PriorityFillLevel
}

// NeedsCollection reports whether the bin qualifies for a collection run.
func (b Bin) NeedsCollection() bool {
	return b.FillLevel > CollectionThreshold
}

// Truck is the optimizer's view of a collection truck. CurrentLocation is
// a snapshot name supplied by the caller; empty means the truck starts at
// the depot.
type Truck struct {
	ID              string
	Plate           string
	Active          bool
	CurrentLocation string
}

// Stop is one bin visit within a route. Order is 1-based and dense within
// the route.
type Stop struct {
	SensorID         string  `json:"sensor_id"`
	Order            int     `json:"order"`
	EstimatedMinutes float64 `json:"estimated_minutes"`
	Location         string  `json:"location"`
	Priority         bool    `json:"priority"`
}

// Route is one truck's planned collection run for a single optimization
// call. It is created fresh each call and never mutated by the engine
// after return.
type Route struct {
	TruckID          string
	TruckPlate       string
	BinSensorIDs     []string
	Stops            []Stop
	TotalDistanceKm  float64
	EstimatedMinutes float64
	Priority         bool
}
