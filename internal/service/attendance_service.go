package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

// AttendanceService handles business logic for attendance entries.
type AttendanceService struct {
	attendance domain.AttendanceRepository
	employees  domain.EmployeeRepository
}

// NewAttendanceService creates a new AttendanceService instance.
func NewAttendanceService(attendance domain.AttendanceRepository, employees domain.EmployeeRepository) *AttendanceService {
	return &AttendanceService{attendance: attendance, employees: employees}
}

func (s *AttendanceService) validate(ctx context.Context, a *domain.AttendanceEntry) error {
	if a.Timestamp.IsZero() {
		return domain.Validationf("timestamp is required")
	}
	if a.Type != domain.AttendanceTypeClockIn && a.Type != domain.AttendanceTypeClockOut {
		return domain.Validationf("type must be %s or %s",
			domain.AttendanceTypeClockIn, domain.AttendanceTypeClockOut)
	}
	if _, err := s.employees.GetByID(ctx, a.EmployeeID); err != nil {
		return fmt.Errorf("employee lookup: %w", err)
	}
	return nil
}

// Create registers a clock-in/out entry for an employee.
func (s *AttendanceService) Create(ctx context.Context, a *domain.AttendanceEntry) error {
	if err := s.validate(ctx, a); err != nil {
		return err
	}
	return s.attendance.Create(ctx, a)
}

// Get retrieves an attendance entry by id.
func (s *AttendanceService) Get(ctx context.Context, id int64) (*domain.AttendanceEntry, error) {
	return s.attendance.GetByID(ctx, id)
}

// Update saves the entry's mutable fields.
func (s *AttendanceService) Update(ctx context.Context, a *domain.AttendanceEntry) error {
	if err := s.validate(ctx, a); err != nil {
		return err
	}
	return s.attendance.Update(ctx, a)
}

// Delete removes an attendance entry.
func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	return s.attendance.Delete(ctx, id)
}

// List retrieves entries matching the filter, most recent first.
func (s *AttendanceService) List(ctx context.Context, filter domain.AttendanceFilter) ([]domain.AttendanceEntry, error) {
	return s.attendance.List(ctx, filter)
}

// HasAttendance reports whether the employee has any entry on the date.
func (s *AttendanceService) HasAttendance(ctx context.Context, employeeID int64, date time.Time) (bool, error) {
	return s.attendance.HasEntryOn(ctx, employeeID, date)
}
