package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"waste-service/internal/client"
	"waste-service/internal/model"
	"waste-service/internal/repository"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
)

type BinService struct {
	binRepo      *repository.BinRepository
	sensorClient *client.SensorClient
}

func NewBinService(binRepo *repository.BinRepository, sensorClient *client.SensorClient) *BinService {
	return &BinService{
		binRepo:      binRepo,
		sensorClient: sensorClient,
	}
}

type CreateBinInput struct {
	SensorID     string
	LocationName string
	FillLevel    float64
	Latitude     *float64
	Longitude    *float64
}

func (s *BinService) Create(ctx context.Context, principal model.Principal, input CreateBinInput) (*model.Bin, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	sensorID := strings.TrimSpace(input.SensorID)
	locationName := strings.TrimSpace(input.LocationName)
	if sensorID == "" || locationName == "" {
		return nil, ErrInvalidInput
	}
	if input.FillLevel < 0 {
		return nil, ErrInvalidInput
	}

	existing, err := s.binRepo.GetBySensorID(ctx, sensorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	bin := &model.Bin{
		SensorID:     sensorID,
		LocationName: locationName,
		FillLevel:    input.FillLevel,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
	}

	if err := s.binRepo.Create(ctx, bin); err != nil {
		return nil, err
	}

	return bin, nil
}

func (s *BinService) Get(ctx context.Context, principal model.Principal, id string) (*model.Bin, error) {
	bin, err := s.binRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return bin, nil
}

func (s *BinService) List(ctx context.Context, principal model.Principal, filter repository.BinListFilter) ([]model.Bin, error) {
	return s.binRepo.List(ctx, filter)
}

type UpdateBinInput struct {
	LocationName *string
	FillLevel    *float64
	Latitude     *float64
	Longitude    *float64
}

func (s *BinService) Update(ctx context.Context, principal model.Principal, id string, input UpdateBinInput) (*model.Bin, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	bin, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if input.LocationName != nil {
		name := strings.TrimSpace(*input.LocationName)
		if name == "" {
			return nil, ErrInvalidInput
		}
		bin.LocationName = name
	}
	if input.FillLevel != nil {
		if *input.FillLevel < 0 {
			return nil, ErrInvalidInput
		}
		bin.FillLevel = *input.FillLevel
	}
	if input.Latitude != nil {
		bin.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		bin.Longitude = input.Longitude
	}

	if err := s.binRepo.Update(ctx, bin); err != nil {
		return nil, err
	}

	return bin, nil
}

func (s *BinService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return ErrPermissionDenied
	}

	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}

	return s.binRepo.Delete(ctx, id)
}

// RecordReading stores a single fill-level report from a bin sensor.
func (s *BinService) RecordReading(ctx context.Context, principal model.Principal, sensorID string, fillLevel float64) (*model.Bin, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}
	if fillLevel < 0 {
		return nil, ErrInvalidInput
	}

	bin, err := s.binRepo.GetBySensorID(ctx, sensorID)
	if err != nil {
		return nil, err
	}
	if bin == nil {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	if err := s.binRepo.UpdateFillLevel(ctx, sensorID, fillLevel, now); err != nil {
		return nil, err
	}

	bin.FillLevel = fillLevel
	bin.LastReportAt = &now
	return bin, nil
}

// SyncReadings pulls the latest fill levels from the sensor platform and
// applies them to the registered bins. Returns the number of bins updated.
func (s *BinService) SyncReadings(ctx context.Context, principal model.Principal) (int, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return 0, ErrPermissionDenied
	}
	if s.sensorClient == nil {
		return 0, ErrInvalidInput
	}

	bins, err := s.binRepo.List(ctx, repository.BinListFilter{})
	if err != nil {
		return 0, err
	}

	sensorIDs := make([]string, 0, len(bins))
	for _, b := range bins {
		sensorIDs = append(sensorIDs, b.SensorID)
	}

	readings, err := s.sensorClient.LatestReadings(ctx, sensorIDs)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, reading := range readings {
		if reading.FillLevel < 0 {
			continue
		}
		if err := s.binRepo.UpdateFillLevel(ctx, reading.SensorID, reading.FillLevel, reading.ReportedAt); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}
