package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fleetstack/fleetpoint/internal/auth"
	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/logger"
)

// DefaultAdminPassword is the initial password for the administrator
// account created by EnsureAdmin. Change it after the first login.
const DefaultAdminPassword = "admin123"

// DataSeeder creates the initial administrator account and optional
// demo data for local development.
type DataSeeder struct {
	db *sql.DB
}

// NewDataSeeder creates a new DataSeeder instance.
func NewDataSeeder(db *sql.DB) *DataSeeder {
	return &DataSeeder{db: db}
}

// EnsureAdmin creates the administrator account when it does not exist
// yet. Running it repeatedly is safe.
func (s *DataSeeder) EnsureAdmin(ctx context.Context) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`,
		domain.AdminUsername).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		logger.InfoLog(ctx, "Administrator account already present")
		return nil
	}

	hash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, name, email, active)
		 VALUES ($1, $2, $3, $4, TRUE)`,
		domain.AdminUsername, hash, "Administrador", "admin@frota.local")
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	logger.InfoLog(ctx, "Administrator account created")
	return nil
}

// SeedDemo inserts a small set of employees with attendance entries and
// trips so the dashboard has something to show.
func (s *DataSeeder) SeedDemo(ctx context.Context) error {
	employees := []struct {
		name         string
		registration string
		vehicle      string
	}{
		{"João da Silva", "MAT-0001", "FROTA-01"},
		{"Maria Oliveira", "MAT-0002", "FROTA-02"},
		{"Carlos Pereira", "MAT-0003", "FROTA-03"},
	}

	today := time.Now().Format("2006-01-02")
	for _, e := range employees {
		var id int64
		err := s.db.QueryRowContext(ctx,
			`INSERT INTO employees (name, registration, phone, email, linked_vehicle, active)
			 VALUES ($1, $2, '', '', $3, TRUE)
			 ON CONFLICT (registration) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`,
			e.name, e.registration, e.vehicle).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", e.registration, err)
		}

		_, err = s.db.ExecContext(ctx,
			`INSERT INTO attendance_entries (employee_id, entry_at, entry_type, note, extraordinary)
			 VALUES ($1, $2::date + TIME '08:00', $3, 'carga inicial', FALSE)`,
			id, today, domain.AttendanceTypeClockIn)
		if err != nil {
			return fmt.Errorf("failed to seed attendance for %s: %w", e.registration, err)
		}

		_, err = s.db.ExecContext(ctx,
			`INSERT INTO trips (trip_date, vehicle, driver_id, departure_time, km_start, km_end, status, note)
			 VALUES ($1, $2, $3, '08:30', 1000, 1050, $4, 'carga inicial')`,
			today, e.vehicle, id, domain.TripStatusCompliant)
		if err != nil {
			return fmt.Errorf("failed to seed trip for %s: %w", e.registration, err)
		}
	}

	logger.InfoLog(ctx, "Demo data seeded: %d employees", len(employees))
	return nil
}

// ClearData removes everything except the administrator account.
func (s *DataSeeder) ClearData(ctx context.Context) error {
	statements := []string{
		`DELETE FROM deductions`,
		`DELETE FROM trips`,
		`DELETE FROM attendance_entries`,
		`DELETE FROM employees`,
		`DELETE FROM users WHERE username <> '` + domain.AdminUsername + `'`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}
	logger.InfoLog(ctx, "All data cleared")
	return nil
}
