package service

import (
	"context"
	"fmt"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

// DeductionService handles manually entered deductions and status
// transitions. Automatic deductions are created only by the policy
// engine in TripService.
type DeductionService struct {
	deductions domain.DeductionRepository
	employees  domain.EmployeeRepository
}

// NewDeductionService creates a new DeductionService instance.
func NewDeductionService(deductions domain.DeductionRepository, employees domain.EmployeeRepository) *DeductionService {
	return &DeductionService{deductions: deductions, employees: employees}
}

func validDeductionStatus(s domain.DeductionStatus) bool {
	switch s {
	case domain.DeductionStatusPending, domain.DeductionStatusApproved, domain.DeductionStatusCancelled:
		return true
	}
	return false
}

func (s *DeductionService) validate(ctx context.Context, d *domain.Deduction) error {
	if d.Date.IsZero() {
		return domain.Validationf("date is required")
	}
	if d.Reason == "" {
		return domain.Validationf("reason is required")
	}
	if d.Amount.Sign() <= 0 {
		return domain.Validationf("amount must be positive")
	}
	if !validDeductionStatus(d.Status) {
		return domain.Validationf("invalid status %q", d.Status)
	}
	if _, err := s.employees.GetByID(ctx, d.EmployeeID); err != nil {
		return fmt.Errorf("employee lookup: %w", err)
	}
	return nil
}

// Create registers a manual deduction. The automatic flag and trip link
// are reserved for the policy engine.
func (s *DeductionService) Create(ctx context.Context, d *domain.Deduction) error {
	d.Automatic = false
	d.TripID = nil
	if d.Status == "" {
		d.Status = domain.DeductionStatusPending
	}
	if err := s.validate(ctx, d); err != nil {
		return err
	}
	return s.deductions.Create(ctx, d)
}

// Get retrieves a deduction by id.
func (s *DeductionService) Get(ctx context.Context, id int64) (*domain.Deduction, error) {
	return s.deductions.GetByID(ctx, id)
}

// Update saves the deduction's editable fields. The automatic flag and
// trip link of the stored record are preserved.
func (s *DeductionService) Update(ctx context.Context, d *domain.Deduction) error {
	if err := s.validate(ctx, d); err != nil {
		return err
	}
	if _, err := s.deductions.GetByID(ctx, d.ID); err != nil {
		return err
	}
	return s.deductions.Update(ctx, d)
}

// Approve marks the deduction as approved.
func (s *DeductionService) Approve(ctx context.Context, id int64) error {
	return s.deductions.UpdateStatus(ctx, id, domain.DeductionStatusApproved)
}

// Cancel marks the deduction as cancelled.
func (s *DeductionService) Cancel(ctx context.Context, id int64) error {
	return s.deductions.UpdateStatus(ctx, id, domain.DeductionStatusCancelled)
}

// Delete removes a deduction, manual or automatic.
func (s *DeductionService) Delete(ctx context.Context, id int64) error {
	return s.deductions.Delete(ctx, id)
}

// List retrieves deductions matching the filter.
func (s *DeductionService) List(ctx context.Context, filter domain.DeductionFilter) ([]domain.Deduction, error) {
	return s.deductions.List(ctx, filter)
}
