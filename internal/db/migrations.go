package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'truck_status') THEN
			CREATE TYPE truck_status AS ENUM ('ACTIVE', 'INACTIVE', 'MAINTENANCE');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'route_status') THEN
			CREATE TYPE route_status AS ENUM ('PLANNED', 'DISPATCHED', 'COMPLETED', 'CANCELLED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS bins (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		sensor_id VARCHAR(64) NOT NULL UNIQUE,
		location_name VARCHAR(255) NOT NULL,
		fill_level DOUBLE PRECISION NOT NULL DEFAULT 0,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		last_report_at TIMESTAMPTZ,
		last_emptied_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_bins_location_name ON bins (location_name);`,
	`CREATE INDEX IF NOT EXISTS idx_bins_fill_level ON bins (fill_level);`,
	`CREATE TABLE IF NOT EXISTS trucks (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		plate_number VARCHAR(32) NOT NULL UNIQUE,
		status truck_status NOT NULL DEFAULT 'ACTIVE',
		current_location VARCHAR(255),
		driver_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trucks_status ON trucks (status);`,
	`CREATE TABLE IF NOT EXISTS routes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		truck_id UUID NOT NULL REFERENCES trucks(id) ON DELETE CASCADE,
		truck_plate VARCHAR(32) NOT NULL,
		bin_sensor_ids JSONB NOT NULL DEFAULT '[]',
		stops JSONB NOT NULL DEFAULT '[]',
		total_distance_km DOUBLE PRECISION NOT NULL DEFAULT 0,
		estimated_minutes DOUBLE PRECISION NOT NULL DEFAULT 0,
		priority BOOLEAN NOT NULL DEFAULT FALSE,
		status route_status NOT NULL DEFAULT 'PLANNED',
		dispatched_at TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_routes_truck_id ON routes (truck_id);`,
	`CREATE INDEX IF NOT EXISTS idx_routes_status ON routes (status);`,
	`CREATE INDEX IF NOT EXISTS idx_routes_created_at ON routes (created_at);`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_bins_updated_at') THEN
			CREATE TRIGGER trg_bins_updated_at
				BEFORE UPDATE ON bins
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_trucks_updated_at') THEN
			CREATE TRIGGER trg_trucks_updated_at
				BEFORE UPDATE ON trucks
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_routes_updated_at') THEN
			CREATE TRIGGER trg_routes_updated_at
				BEFORE UPDATE ON routes
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
