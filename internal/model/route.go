package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RouteStatus string

const (
	RouteStatusPlanned    RouteStatus = "PLANNED"
	RouteStatusDispatched RouteStatus = "DISPATCHED"
	RouteStatusCompleted  RouteStatus = "COMPLETED"
	RouteStatusCancelled  RouteStatus = "CANCELLED"
)

type RouteStop struct {
	SensorID         string  `json:"sensor_id"`
	Order            int     `json:"order"`
	EstimatedMinutes float64 `json:"estimated_minutes"`
	LocationName     string  `json:"location_name"`
	Priority         bool    `json:"priority"`
}

// RouteStops is stored as a JSONB column.
type RouteStops []RouteStop

func (s RouteStops) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *RouteStops) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			raw = []byte(str)
		} else {
			return fmt.Errorf("scan route stops: unexpected type %T", value)
		}
	}
	return json.Unmarshal(raw, s)
}

// SensorIDList is stored as a JSONB column.
type SensorIDList []string

func (l SensorIDList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *SensorIDList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			raw = []byte(str)
		} else {
			return fmt.Errorf("scan sensor id list: unexpected type %T", value)
		}
	}
	return json.Unmarshal(raw, l)
}

type Route struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TruckID          uuid.UUID    `gorm:"type:uuid;not null;index" json:"truck_id"`
	TruckPlate       string       `gorm:"type:varchar(32);not null" json:"truck_plate"`
	BinSensorIDs     SensorIDList `gorm:"type:jsonb;not null" json:"bin_sensor_ids"`
	Stops            RouteStops   `gorm:"type:jsonb;not null" json:"stops"`
	TotalDistanceKm  float64      `gorm:"not null" json:"total_distance_km"`
	EstimatedMinutes float64      `gorm:"not null" json:"estimated_minutes"`
	Priority         bool         `gorm:"not null;default:false" json:"priority"`
	Status           RouteStatus  `gorm:"type:route_status;not null;default:PLANNED" json:"status"`
	DispatchedAt     *time.Time   `json:"dispatched_at"`
	CompletedAt      *time.Time   `json:"completed_at"`
	CreatedAt        time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Route) TableName() string {
	return "routes"
}

func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
