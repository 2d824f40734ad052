package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Bin struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	SensorID      string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"sensor_id"`
	LocationName  string     `gorm:"type:varchar(255);not null;index" json:"location_name"`
	FillLevel     float64    `gorm:"not null;default:0" json:"fill_level"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	LastReportAt  *time.Time `json:"last_report_at"`
	LastEmptiedAt *time.Time `json:"last_emptied_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Bin) TableName() string {
	return "bins"
}

func (b *Bin) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
