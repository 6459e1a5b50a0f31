package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema statements are idempotent so Migrate can run on every startup.
// The partial unique index on deductions closes the window between
// "check for existing automatic deduction" and "create new one" under
// concurrent edits of the same trip.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(80) NOT NULL UNIQUE,
		password_hash VARCHAR(200) NOT NULL,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(120) NOT NULL UNIQUE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		registration VARCHAR(50) NOT NULL UNIQUE,
		national_id VARCHAR(14) UNIQUE,
		phone VARCHAR(20) NOT NULL DEFAULT '',
		email VARCHAR(120) NOT NULL DEFAULT '',
		linked_vehicle VARCHAR(20),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_entries (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		entry_at TIMESTAMPTZ NOT NULL,
		entry_type VARCHAR(10) NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		extraordinary BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_employee_entry_at
		ON attendance_entries (employee_id, entry_at)`,
	`CREATE TABLE IF NOT EXISTS trips (
		id BIGSERIAL PRIMARY KEY,
		trip_date DATE NOT NULL,
		vehicle VARCHAR(20) NOT NULL,
		driver_id BIGINT NOT NULL REFERENCES employees(id) ON DELETE RESTRICT,
		departure_time VARCHAR(5),
		return_time VARCHAR(5),
		km_start NUMERIC(12,2),
		km_end NUMERIC(12,2),
		note TEXT NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'conforme',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_date ON trips (trip_date)`,
	`CREATE TABLE IF NOT EXISTS deductions (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		deduction_date DATE NOT NULL,
		reason TEXT NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pendente',
		trip_id BIGINT REFERENCES trips(id) ON DELETE SET NULL,
		automatic BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_deductions_trip_automatic
		ON deductions (trip_id) WHERE automatic`,
	`CREATE INDEX IF NOT EXISTS idx_deductions_employee_date
		ON deductions (employee_id, deduction_date)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
