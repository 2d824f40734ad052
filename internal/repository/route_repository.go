package repository

import (
	"context"

	"gorm.io/gorm"

	"waste-service/internal/model"
)

type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// CreateBatch persists one optimization call's routes in a single
// transaction so a partial plan never reaches the dispatchers.
func (r *RouteRepository) CreateBatch(ctx context.Context, routes []*model.Route) error {
	if len(routes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, route := range routes {
			if err := tx.Create(route).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *RouteRepository) GetByID(ctx context.Context, id string) (*model.Route, error) {
	var route model.Route
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *RouteRepository) Update(ctx context.Context, route *model.Route) error {
	return r.db.WithContext(ctx).Save(route).Error
}

func (r *RouteRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Route{}).Error
}

type RouteListFilter struct {
	Status  *model.RouteStatus
	TruckID *string
}

func (r *RouteRepository) List(ctx context.Context, filter RouteListFilter) ([]model.Route, error) {
	var routes []model.Route
	query := r.db.WithContext(ctx).Model(&model.Route{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.TruckID != nil {
		query = query.Where("truck_id = ?", *filter.TruckID)
	}

	if err := query.Order("created_at DESC").Find(&routes).Error; err != nil {
		return nil, err
	}

	return routes, nil
}
