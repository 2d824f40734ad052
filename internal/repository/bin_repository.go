package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"waste-service/internal/model"
)

type BinRepository struct {
	db *gorm.DB
}

func NewBinRepository(db *gorm.DB) *BinRepository {
	return &BinRepository{db: db}
}

func (r *BinRepository) Create(ctx context.Context, bin *model.Bin) error {
	return r.db.WithContext(ctx).Create(bin).Error
}

func (r *BinRepository) GetByID(ctx context.Context, id string) (*model.Bin, error) {
	var bin model.Bin
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&bin).Error
	if err != nil {
		return nil, err
	}
	return &bin, nil
}

func (r *BinRepository) GetBySensorID(ctx context.Context, sensorID string) (*model.Bin, error) {
	var bin model.Bin
	err := r.db.WithContext(ctx).Where("sensor_id = ?", sensorID).First(&bin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bin, nil
}

func (r *BinRepository) Update(ctx context.Context, bin *model.Bin) error {
	return r.db.WithContext(ctx).Save(bin).Error
}

func (r *BinRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Bin{}).Error
}

type BinListFilter struct {
	MinFillLevel *float64
	LocationName *string
}

func (r *BinRepository) List(ctx context.Context, filter BinListFilter) ([]model.Bin, error) {
	var bins []model.Bin
	query := r.db.WithContext(ctx).Model(&model.Bin{})

	if filter.MinFillLevel != nil {
		query = query.Where("fill_level > ?", *filter.MinFillLevel)
	}
	if filter.LocationName != nil {
		query = query.Where("location_name = ?", *filter.LocationName)
	}

	if err := query.Order("sensor_id ASC").Find(&bins).Error; err != nil {
		return nil, err
	}

	return bins, nil
}

// UpdateFillLevel records a sensor reading for a bin.
func (r *BinRepository) UpdateFillLevel(ctx context.Context, sensorID string, fillLevel float64, reportedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Bin{}).
		Where("sensor_id = ?", sensorID).
		Updates(map[string]interface{}{
			"fill_level":     fillLevel,
			"last_report_at": reportedAt,
		}).Error
}

// MarkEmptied resets the fill level of collected bins and stamps the
// collection time.
func (r *BinRepository) MarkEmptied(ctx context.Context, sensorIDs []string, emptiedAt time.Time) error {
	if len(sensorIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Bin{}).
		Where("sensor_id IN ?", sensorIDs).
		Updates(map[string]interface{}{
			"fill_level":      0,
			"last_emptied_at": emptiedAt,
		}).Error
}
