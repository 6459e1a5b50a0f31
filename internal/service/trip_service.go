package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

// TripService handles trip records and drives the deduction policy
// engine on every create and update.
type TripService struct {
	txm        domain.TxManager
	trips      domain.TripRepository
	attendance domain.AttendanceRepository
	deductions domain.DeductionRepository
	employees  domain.EmployeeRepository
	policy     DeductionPolicy
}

// NewTripService creates a new TripService instance.
func NewTripService(
	txm domain.TxManager,
	trips domain.TripRepository,
	attendance domain.AttendanceRepository,
	deductions domain.DeductionRepository,
	employees domain.EmployeeRepository,
	policy DeductionPolicy,
) *TripService {
	return &TripService{
		txm:        txm,
		trips:      trips,
		attendance: attendance,
		deductions: deductions,
		employees:  employees,
		policy:     policy,
	}
}

func (s *TripService) validate(ctx context.Context, trip *domain.TripRecord) error {
	if trip.Date.IsZero() {
		return domain.Validationf("trip date is required")
	}
	if trip.Vehicle == "" {
		return domain.Validationf("vehicle is required")
	}
	if trip.DriverID <= 0 {
		return domain.Validationf("driver is required")
	}
	if _, err := s.employees.GetByID(ctx, trip.DriverID); err != nil {
		return fmt.Errorf("driver lookup: %w", err)
	}
	return nil
}

// Create persists a trip and evaluates it. The trip row, its derived
// status and any generated deduction commit or roll back together.
// When a deduction was generated it is returned alongside the trip.
func (s *TripService) Create(ctx context.Context, trip *domain.TripRecord) (*domain.Deduction, error) {
	if err := s.validate(ctx, trip); err != nil {
		return nil, err
	}

	var deduction *domain.Deduction
	err := s.txm.RunInTx(ctx, func(tx *sql.Tx) error {
		trips := s.trips.WithTx(tx)
		trip.Status = domain.TripStatusCompliant
		if err := trips.Create(ctx, trip); err != nil {
			return err
		}

		d, err := s.EvaluateTrip(ctx, tx, trip)
		if err != nil {
			return err
		}
		deduction = d

		return trips.UpdateStatus(ctx, trip.ID, trip.Status)
	})
	if err != nil {
		return nil, err
	}
	return deduction, nil
}

// Update re-evaluates the trip after saving the edits. The status can
// move in either direction as attendance data changes, but an existing
// automatic deduction is never retracted.
func (s *TripService) Update(ctx context.Context, trip *domain.TripRecord) (*domain.Deduction, error) {
	if err := s.validate(ctx, trip); err != nil {
		return nil, err
	}
	if _, err := s.trips.GetByID(ctx, trip.ID); err != nil {
		return nil, err
	}

	var deduction *domain.Deduction
	err := s.txm.RunInTx(ctx, func(tx *sql.Tx) error {
		trips := s.trips.WithTx(tx)
		if err := trips.Update(ctx, trip); err != nil {
			return err
		}

		d, err := s.EvaluateTrip(ctx, tx, trip)
		if err != nil {
			return err
		}
		deduction = d

		return trips.UpdateStatus(ctx, trip.ID, trip.Status)
	})
	if err != nil {
		return nil, err
	}
	return deduction, nil
}

// EvaluateTrip is the deduction policy engine. It queries the
// attendance ledger for the driver and trip date, derives the trip
// status, and when the driver has no entry creates at most one automatic
// deduction linked to the trip. Calling it again on the same trip is a
// no-op until the attendance data changes, so it is safe to re-run on
// every edit.
func (s *TripService) EvaluateTrip(ctx context.Context, tx *sql.Tx, trip *domain.TripRecord) (*domain.Deduction, error) {
	has, err := s.attendance.WithTx(tx).HasEntryOn(ctx, trip.DriverID, trip.Date)
	if err != nil {
		return nil, err
	}
	if has {
		trip.Status = domain.TripStatusCompliant
		return nil, nil
	}
	trip.Status = domain.TripStatusAnomalous

	deductions := s.deductions.WithTx(tx)
	existing, err := deductions.FindAutomaticByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, nil
	}

	deduction := s.policy.BuildDeduction(trip)
	if err := deductions.Create(ctx, deduction); err != nil {
		return nil, err
	}
	return deduction, nil
}

// Delete removes the trip and every automatic deduction linked to it.
// Manual deductions are left untouched.
func (s *TripService) Delete(ctx context.Context, id int64) error {
	if _, err := s.trips.GetByID(ctx, id); err != nil {
		return err
	}
	return s.txm.RunInTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.deductions.WithTx(tx).DeleteAllAutomaticByTrip(ctx, id); err != nil {
			return err
		}
		return s.trips.WithTx(tx).Delete(ctx, id)
	})
}

// Get retrieves a trip by id.
func (s *TripService) Get(ctx context.Context, id int64) (*domain.TripRecord, error) {
	return s.trips.GetByID(ctx, id)
}

// List retrieves trips matching the filter.
func (s *TripService) List(ctx context.Context, filter domain.TripFilter) ([]domain.TripRecord, error) {
	return s.trips.List(ctx, filter)
}
