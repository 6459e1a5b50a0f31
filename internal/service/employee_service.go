package service

import (
	"context"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

// EmployeeService handles business logic for employees.
type EmployeeService struct {
	employees domain.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService instance.
func NewEmployeeService(employees domain.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employees: employees}
}

func validateEmployee(e *domain.Employee) error {
	if e.Name == "" {
		return domain.Validationf("name is required")
	}
	if e.Registration == "" {
		return domain.Validationf("registration is required")
	}
	return nil
}

// Create registers a new employee, active by default.
func (s *EmployeeService) Create(ctx context.Context, e *domain.Employee) error {
	if err := validateEmployee(e); err != nil {
		return err
	}
	e.Active = true
	return s.employees.Create(ctx, e)
}

// Get retrieves an employee by id.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// Update saves the employee's editable fields.
func (s *EmployeeService) Update(ctx context.Context, e *domain.Employee) error {
	if err := validateEmployee(e); err != nil {
		return err
	}
	return s.employees.Update(ctx, e)
}

// Delete removes an employee. Attendance entries and deductions cascade;
// deleting a driver with trip history fails with a constraint error that
// surfaces to the caller.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	return s.employees.Delete(ctx, id)
}

// List retrieves employees matching the filter.
func (s *EmployeeService) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	return s.employees.List(ctx, filter)
}
