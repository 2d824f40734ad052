package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TruckStatus string

const (
	TruckStatusActive      TruckStatus = "ACTIVE"
	TruckStatusInactive    TruckStatus = "INACTIVE"
	TruckStatusMaintenance TruckStatus = "MAINTENANCE"
)

type Truck struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	PlateNumber     string      `gorm:"type:varchar(32);uniqueIndex;not null" json:"plate_number"`
	Status          TruckStatus `gorm:"type:truck_status;not null;default:ACTIVE" json:"status"`
	CurrentLocation *string     `gorm:"type:varchar(255)" json:"current_location"`
	DriverID        *uuid.UUID  `gorm:"type:uuid" json:"driver_id"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Truck) TableName() string {
	return "trucks"
}

func (t *Truck) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
