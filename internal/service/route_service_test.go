package service

import (
	"errors"
	"testing"

	"waste-service/internal/model"
	"waste-service/internal/routing"
)

// newEngineOnlyRouteService builds a RouteService around a live optimizer
// with no repositories, enough for the operations that never touch the
// database.
func newEngineOnlyRouteService() *RouteService {
	distances := routing.NewKilinochchiDistanceSource("")
	optimizer := routing.NewOptimizer(distances, routing.NewNearestNeighborStrategy(distances))
	return NewRouteService(nil, nil, nil, optimizer, distances, "")
}

func TestRouteServiceSetStrategy(t *testing.T) {
	svc := newEngineOnlyRouteService()
	admin := model.Principal{Role: model.RoleAdmin}

	if err := svc.SetStrategy(admin, StrategyNearestNeighbor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.SetStrategy(admin, "simulated_annealing"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput for an unknown strategy", err)
	}

	operator := model.Principal{Role: model.RoleOperator}
	if err := svc.SetStrategy(operator, StrategyNearestNeighbor); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied for non-admin", err)
	}
}

func TestRouteServiceUpdateDistanceValidation(t *testing.T) {
	svc := newEngineOnlyRouteService()
	admin := model.Principal{Role: model.RoleAdmin}

	// Zero is a legal distance (co-located points), negatives are not.
	applied, err := svc.UpdateDistance(admin, "Kilinochchi Town", "Paranthan", 0)
	if err != nil {
		t.Fatalf("unexpected error for zero distance: %v", err)
	}
	if !applied {
		t.Fatal("table-backed source should accept the update")
	}

	if _, err := svc.UpdateDistance(admin, "Kilinochchi Town", "Paranthan", -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput for negative distance", err)
	}
	if _, err := svc.UpdateDistance(admin, "", "Paranthan", 5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput for empty location", err)
	}

	driver := model.Principal{Role: model.RoleDriver}
	if _, err := svc.UpdateDistance(driver, "Kilinochchi Town", "Paranthan", 5); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied for non-admin", err)
	}
}
