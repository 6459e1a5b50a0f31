package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/repository/builder"
)

type employeeRepository struct {
	db queryer
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) domain.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	b := builder.NewSQLBuilder()
	query, args := b.Insert("employees",
		"name", "registration", "national_id", "phone", "email", "linked_vehicle", "active").
		Values(e.Name, e.Registration, e.NationalID, e.Phone, e.Email, e.LinkedVehicle, e.Active).
		Returning("id", "created_at").
		Build()

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("id", "name", "registration", "national_id", "phone",
		"email", "linked_vehicle", "active", "created_at").
		From("employees").
		Where("id = ?", id).
		Build()

	var e domain.Employee
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.Name, &e.Registration,
		&e.NationalID, &e.Phone, &e.Email, &e.LinkedVehicle, &e.Active, &e.CreatedAt)
	if err != nil {
		return nil, mapScanErr(err)
	}
	return &e, nil
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	b := builder.NewSQLBuilder()
	query, args := b.Update("employees").
		Set("name", e.Name).
		Set("registration", e.Registration).
		Set("national_id", e.NationalID).
		Set("phone", e.Phone).
		Set("email", e.Email).
		Set("linked_vehicle", e.LinkedVehicle).
		Set("active", e.Active).
		Where("id = ?", e.ID).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return requireAffected(res)
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	b := builder.NewSQLBuilder()
	query, args := b.Delete("employees").Where("id = ?", id).Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return requireAffected(res)
}

func (r *employeeRepository) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	b := builder.NewSQLBuilder()
	b.Select("id", "name", "registration", "national_id", "phone",
		"email", "linked_vehicle", "active", "created_at").
		From("employees").
		OrderBy("name ASC")

	if filter.ActiveOnly {
		b.Where("active = ?", true)
	}
	if filter.Limit > 0 {
		b.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		b.Offset(filter.Offset)
	}

	query, args := b.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Registration, &e.NationalID,
			&e.Phone, &e.Email, &e.LinkedVehicle, &e.Active, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return employees, nil
}

func (r *employeeRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM employees WHERE active").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return count, nil
}
