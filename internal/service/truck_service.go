package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"waste-service/internal/model"
	"waste-service/internal/repository"
	"waste-service/internal/utils"
)

type TruckService struct {
	truckRepo *repository.TruckRepository
}

func NewTruckService(truckRepo *repository.TruckRepository) *TruckService {
	return &TruckService{truckRepo: truckRepo}
}

type CreateTruckInput struct {
	PlateNumber     string
	Status          string
	CurrentLocation *string
}

func (s *TruckService) Create(ctx context.Context, principal model.Principal, input CreateTruckInput) (*model.Truck, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	plate := utils.NormalizePlate(input.PlateNumber)
	if plate == "" {
		return nil, ErrInvalidInput
	}

	status := model.TruckStatusActive
	if input.Status != "" {
		parsed, ok := parseTruckStatus(input.Status)
		if !ok {
			return nil, ErrInvalidInput
		}
		status = parsed
	}

	existing, err := s.truckRepo.GetByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	truck := &model.Truck{
		PlateNumber:     plate,
		Status:          status,
		CurrentLocation: input.CurrentLocation,
	}

	if err := s.truckRepo.Create(ctx, truck); err != nil {
		return nil, err
	}

	return truck, nil
}

func (s *TruckService) Get(ctx context.Context, principal model.Principal, id string) (*model.Truck, error) {
	truck, err := s.truckRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return truck, nil
}

func (s *TruckService) List(ctx context.Context, principal model.Principal, filter repository.TruckListFilter) ([]model.Truck, error) {
	return s.truckRepo.List(ctx, filter)
}

// UpdateLocation records a truck's latest known location name. Drivers may
// report for their own runs; operators and admins for any truck.
func (s *TruckService) UpdateLocation(ctx context.Context, principal model.Principal, id string, location string) (*model.Truck, error) {
	if !principal.IsAdmin() && !principal.IsOperator() && !principal.IsDriver() {
		return nil, ErrPermissionDenied
	}

	truck, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	location = strings.TrimSpace(location)
	if location == "" {
		truck.CurrentLocation = nil
	} else {
		truck.CurrentLocation = &location
	}

	if err := s.truckRepo.Update(ctx, truck); err != nil {
		return nil, err
	}

	return truck, nil
}

func (s *TruckService) UpdateStatus(ctx context.Context, principal model.Principal, id string, status string) (*model.Truck, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	parsed, ok := parseTruckStatus(status)
	if !ok {
		return nil, ErrInvalidInput
	}

	truck, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	truck.Status = parsed
	if err := s.truckRepo.Update(ctx, truck); err != nil {
		return nil, err
	}

	return truck, nil
}

func (s *TruckService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}

	return s.truckRepo.Delete(ctx, id)
}

func parseTruckStatus(raw string) (model.TruckStatus, bool) {
	switch model.TruckStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case model.TruckStatusActive:
		return model.TruckStatusActive, true
	case model.TruckStatusInactive:
		return model.TruckStatusInactive, true
	case model.TruckStatusMaintenance:
		return model.TruckStatusMaintenance, true
	default:
		return "", false
	}
}
