package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"waste-service/internal/model"
	"waste-service/internal/repository"
	"waste-service/internal/routing"
)

// RouteService drives the optimization engine over the persisted bins and
// trucks and owns the planned-route lifecycle.
type RouteService struct {
	binRepo   *repository.BinRepository
	truckRepo *repository.TruckRepository
	routeRepo *repository.RouteRepository
	optimizer *routing.Optimizer
	distances routing.DistanceSource
	depot     string
}

func NewRouteService(
	binRepo *repository.BinRepository,
	truckRepo *repository.TruckRepository,
	routeRepo *repository.RouteRepository,
	optimizer *routing.Optimizer,
	distances routing.DistanceSource,
	depot string,
) *RouteService {
	if depot == "" {
		depot = routing.DefaultDepot
	}
	return &RouteService{
		binRepo:   binRepo,
		truckRepo: truckRepo,
		routeRepo: routeRepo,
		optimizer: optimizer,
		distances: distances,
		depot:     depot,
	}
}

// StrategyNearestNeighbor names the default ordering algorithm accepted by
// SetStrategy.
const StrategyNearestNeighbor = "nearest_neighbor"

// SetStrategy swaps the optimizer's ordering algorithm by name. Unknown
// names are rejected; the previous strategy stays in place.
func (s *RouteService) SetStrategy(principal model.Principal, name string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	switch name {
	case StrategyNearestNeighbor:
		s.optimizer.SetStrategy(routing.NewNearestNeighborStrategy(s.distances))
	default:
		return ErrInvalidInput
	}
	return nil
}

// Optimize runs the fleet allocation over the current bins and trucks and
// persists the resulting plans. An empty result is a normal outcome when
// nothing qualifies for collection.
func (s *RouteService) Optimize(ctx context.Context, principal model.Principal) ([]model.Route, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	bins, err := s.binRepo.List(ctx, repository.BinListFilter{})
	if err != nil {
		return nil, err
	}
	trucks, err := s.truckRepo.List(ctx, repository.TruckListFilter{})
	if err != nil {
		return nil, err
	}

	truckByID := make(map[string]model.Truck, len(trucks))
	engineTrucks := make([]routing.Truck, 0, len(trucks))
	for _, t := range trucks {
		truckByID[t.ID.String()] = t
		location := ""
		if t.CurrentLocation != nil {
			location = *t.CurrentLocation
		}
		engineTrucks = append(engineTrucks, routing.Truck{
			ID:              t.ID.String(),
			Plate:           t.PlateNumber,
			Active:          t.Status == model.TruckStatusActive,
			CurrentLocation: location,
		})
	}

	engineBins := make([]routing.Bin, 0, len(bins))
	for _, b := range bins {
		engineBins = append(engineBins, routing.Bin{
			SensorID:  b.SensorID,
			Location:  b.LocationName,
			FillLevel: b.FillLevel,
		})
	}

	planned, err := s.optimizer.OptimizeFleet(engineBins, engineTrucks, s.depot)
	if err != nil {
		return nil, err
	}
	if len(planned) == 0 {
		return []model.Route{}, nil
	}

	records := make([]*model.Route, 0, len(planned))
	for _, p := range planned {
		truck, ok := truckByID[p.TruckID]
		if !ok {
			continue
		}

		stops := make(model.RouteStops, 0, len(p.Stops))
		for _, stop := range p.Stops {
			stops = append(stops, model.RouteStop{
				SensorID:         stop.SensorID,
				Order:            stop.Order,
				EstimatedMinutes: stop.EstimatedMinutes,
				LocationName:     stop.Location,
				Priority:         stop.Priority,
			})
		}

		records = append(records, &model.Route{
			TruckID:          truck.ID,
			TruckPlate:       p.TruckPlate,
			BinSensorIDs:     model.SensorIDList(p.BinSensorIDs),
			Stops:            stops,
			TotalDistanceKm:  p.TotalDistanceKm,
			EstimatedMinutes: p.EstimatedMinutes,
			Priority:         p.Priority,
			Status:           model.RouteStatusPlanned,
		})
	}

	if err := s.routeRepo.CreateBatch(ctx, records); err != nil {
		return nil, err
	}

	result := make([]model.Route, 0, len(records))
	for _, r := range records {
		result = append(result, *r)
	}
	return result, nil
}

// PreviewRoute orders a bin set from a start location without touching
// persisted routes.
func (s *RouteService) PreviewRoute(ctx context.Context, principal model.Principal, start string, sensorIDs []string) (routing.OrderedRoute, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return routing.OrderedRoute{}, ErrPermissionDenied
	}
	if start == "" {
		start = s.depot
	}

	bins := make([]routing.Bin, 0, len(sensorIDs))
	for _, sensorID := range sensorIDs {
		bin, err := s.binRepo.GetBySensorID(ctx, sensorID)
		if err != nil {
			return routing.OrderedRoute{}, err
		}
		if bin == nil {
			return routing.OrderedRoute{}, ErrNotFound
		}
		bins = append(bins, routing.Bin{
			SensorID:  bin.SensorID,
			Location:  bin.LocationName,
			FillLevel: bin.FillLevel,
		})
	}

	return s.optimizer.OptimizeSingleRoute(start, bins)
}

func (s *RouteService) Get(ctx context.Context, principal model.Principal, id string) (*model.Route, error) {
	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return route, nil
}

func (s *RouteService) List(ctx context.Context, principal model.Principal, filter repository.RouteListFilter) ([]model.Route, error) {
	return s.routeRepo.List(ctx, filter)
}

func (s *RouteService) Dispatch(ctx context.Context, principal model.Principal, id string) (*model.Route, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	route, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if route.Status != model.RouteStatusPlanned {
		return nil, ErrConflict
	}

	now := time.Now().UTC()
	route.Status = model.RouteStatusDispatched
	route.DispatchedAt = &now

	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, err
	}

	return route, nil
}

// Complete closes out a dispatched route: the covered bins are marked
// emptied and the route is stamped.
func (s *RouteService) Complete(ctx context.Context, principal model.Principal, id string) (*model.Route, error) {
	if !principal.IsAdmin() && !principal.IsOperator() && !principal.IsDriver() {
		return nil, ErrPermissionDenied
	}

	route, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if route.Status != model.RouteStatusDispatched {
		return nil, ErrConflict
	}

	now := time.Now().UTC()
	if err := s.binRepo.MarkEmptied(ctx, route.BinSensorIDs, now); err != nil {
		return nil, err
	}

	route.Status = model.RouteStatusCompleted
	route.CompletedAt = &now

	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, err
	}

	return route, nil
}

func (s *RouteService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return ErrPermissionDenied
	}

	route, err := s.Get(ctx, principal, id)
	if err != nil {
		return err
	}
	if route.Status == model.RouteStatusDispatched {
		return ErrConflict
	}

	return s.routeRepo.Delete(ctx, id)
}

// Efficiency estimates the savings of the current planned routes against
// the synthetic unoptimized baseline.
func (s *RouteService) Efficiency(ctx context.Context, principal model.Principal) (routing.Efficiency, error) {
	status := model.RouteStatusPlanned
	routes, err := s.routeRepo.List(ctx, repository.RouteListFilter{Status: &status})
	if err != nil {
		return routing.Efficiency{}, err
	}

	engineRoutes := make([]routing.Route, 0, len(routes))
	for _, r := range routes {
		engineRoutes = append(engineRoutes, routing.Route{
			TruckID:          r.TruckID.String(),
			TruckPlate:       r.TruckPlate,
			BinSensorIDs:     r.BinSensorIDs,
			TotalDistanceKm:  r.TotalDistanceKm,
			EstimatedMinutes: r.EstimatedMinutes,
			Priority:         r.Priority,
		})
	}

	return s.optimizer.EstimateEfficiency(engineRoutes, nil), nil
}

// UpdateDistance pushes a corrected road distance into the engine's table.
// Reports whether the configured distance source accepted the update.
func (s *RouteService) UpdateDistance(principal model.Principal, from, to string, km float64) (bool, error) {
	if !principal.IsAdmin() {
		return false, ErrPermissionDenied
	}
	if from == "" || to == "" || km < 0 {
		return false, ErrInvalidInput
	}
	return s.optimizer.UpdateDistance(from, to, km), nil
}
