package routing

const (
	// BaselineKmPerBin is the assumed distance to serve one bin on an
	// unoptimized run, used to synthesize a comparison baseline.
	BaselineKmPerBin = 5.0

	// FuelLitersPerKm is the fleet's assumed consumption, 8 L / 100 km.
	FuelLitersPerKm = 0.08
)

// Efficiency is the estimated saving of an optimized route set against an
// unoptimized baseline.
type Efficiency struct {
	TimeSavedMinutes float64 `json:"time_saved_minutes"`
	DistanceSavedKm  float64 `json:"distance_saved_km"`
	FuelSavedLiters  float64 `json:"fuel_saved_liters"`
}

// EstimateEfficiency compares the optimized routes against a baseline.
//
// With no baseline supplied, a hypothetical unoptimized run is synthesized
// at BaselineKmPerBin per covered bin and the same minutes-per-km factor;
// all savings are clamped to zero from below.
//
// With an explicit baseline the estimate is all-zero. The parameter is
// accepted but never enters the computation; the behavior is preserved
// as-is for compatibility with the existing callers.
func (o *Optimizer) EstimateEfficiency(routes []Route, baseline []Route) Efficiency {
	if len(baseline) > 0 {
		return Efficiency{}
	}

	totalBins := 0
	totalKm := 0.0
	totalMinutes := 0.0
	for _, r := range routes {
		totalBins += len(r.BinSensorIDs)
		totalKm += r.TotalDistanceKm
		totalMinutes += r.EstimatedMinutes
	}

	baselineKm := float64(totalBins) * BaselineKmPerBin
	baselineMinutes := baselineKm * MinutesPerKm

	distanceSaved := clampZero(baselineKm - totalKm)
	return Efficiency{
		TimeSavedMinutes: clampZero(baselineMinutes - totalMinutes),
		DistanceSavedKm:  distanceSaved,
		FuelSavedLiters:  distanceSaved * FuelLitersPerKm,
	}
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
