package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/repository/builder"
)

type deductionRepository struct {
	db queryer
}

// NewDeductionRepository creates a new instance of DeductionRepository.
func NewDeductionRepository(db *sql.DB) domain.DeductionRepository {
	return &deductionRepository{db: db}
}

func (r *deductionRepository) WithTx(tx *sql.Tx) domain.DeductionRepository {
	return &deductionRepository{db: tx}
}

func (r *deductionRepository) Create(ctx context.Context, d *domain.Deduction) error {
	b := builder.NewSQLBuilder()
	query, args := b.Insert("deductions",
		"employee_id", "deduction_date", "reason", "amount", "status", "trip_id", "automatic").
		Values(d.EmployeeID, d.Date, d.Reason, d.Amount, d.Status, d.TripID, d.Automatic).
		Returning("id", "created_at").
		Build()

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.CreatedAt); err != nil {
		return fmt.Errorf("failed to create deduction: %w", err)
	}
	return nil
}

func (r *deductionRepository) GetByID(ctx context.Context, id int64) (*domain.Deduction, error) {
	query := `
		SELECT d.id, d.employee_id, d.deduction_date, d.reason, d.amount, d.status,
		       d.trip_id, d.automatic, d.created_at, e.name
		FROM deductions d
		INNER JOIN employees e ON d.employee_id = e.id
		WHERE d.id = $1
	`
	var d domain.Deduction
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.EmployeeID, &d.Date,
		&d.Reason, &d.Amount, &d.Status, &d.TripID, &d.Automatic, &d.CreatedAt, &d.EmployeeName)
	if err != nil {
		return nil, mapScanErr(err)
	}
	return &d, nil
}

func (r *deductionRepository) Update(ctx context.Context, d *domain.Deduction) error {
	b := builder.NewSQLBuilder()
	query, args := b.Update("deductions").
		Set("employee_id", d.EmployeeID).
		Set("deduction_date", d.Date).
		Set("reason", d.Reason).
		Set("amount", d.Amount).
		Set("status", d.Status).
		Where("id = ?", d.ID).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update deduction: %w", err)
	}
	return requireAffected(res)
}

func (r *deductionRepository) UpdateStatus(ctx context.Context, id int64, status domain.DeductionStatus) error {
	res, err := r.db.ExecContext(ctx, "UPDATE deductions SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update deduction status: %w", err)
	}
	return requireAffected(res)
}

func (r *deductionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM deductions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete deduction: %w", err)
	}
	return requireAffected(res)
}

func (r *deductionRepository) List(ctx context.Context, filter domain.DeductionFilter) ([]domain.Deduction, error) {
	b := builder.NewSQLBuilder()
	b.Select("d.id", "d.employee_id", "d.deduction_date", "d.reason", "d.amount",
		"d.status", "d.trip_id", "d.automatic", "d.created_at", "e.name").
		From("deductions d").
		Join("INNER", "employees e", "d.employee_id = e.id").
		OrderBy("d.deduction_date DESC, d.id DESC")

	if filter.EmployeeID != nil {
		b.Where("d.employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		b.Where("d.status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		b.Where("d.deduction_date >= ?", filter.DateFrom.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		b.Where("d.deduction_date <= ?", filter.DateTo.Format("2006-01-02"))
	}

	query, args := b.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	defer rows.Close()

	var deductions []domain.Deduction
	for rows.Next() {
		var d domain.Deduction
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Date, &d.Reason, &d.Amount,
			&d.Status, &d.TripID, &d.Automatic, &d.CreatedAt, &d.EmployeeName); err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		deductions = append(deductions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return deductions, nil
}

// FindAutomaticByTrip returns the automatic deduction linked to the trip,
// or nil when none exists.
func (r *deductionRepository) FindAutomaticByTrip(ctx context.Context, tripID int64) (*domain.Deduction, error) {
	query := `
		SELECT id, employee_id, deduction_date, reason, amount, status,
		       trip_id, automatic, created_at
		FROM deductions
		WHERE trip_id = $1 AND automatic
	`
	var d domain.Deduction
	err := r.db.QueryRowContext(ctx, query, tripID).Scan(&d.ID, &d.EmployeeID, &d.Date,
		&d.Reason, &d.Amount, &d.Status, &d.TripID, &d.Automatic, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find automatic deduction: %w", err)
	}
	return &d, nil
}

func (r *deductionRepository) DeleteAllAutomaticByTrip(ctx context.Context, tripID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM deductions WHERE trip_id = $1 AND automatic", tripID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete automatic deductions: %w", err)
	}
	return res.RowsAffected()
}

func (r *deductionRepository) CountByStatus(ctx context.Context, status domain.DeductionStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM deductions WHERE status = $1", status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count deductions: %w", err)
	}
	return count, nil
}

func (r *deductionRepository) ListRecentByStatus(ctx context.Context, status domain.DeductionStatus, limit int) ([]domain.Deduction, error) {
	query := `
		SELECT d.id, d.employee_id, d.deduction_date, d.reason, d.amount, d.status,
		       d.trip_id, d.automatic, d.created_at, e.name
		FROM deductions d
		INNER JOIN employees e ON d.employee_id = e.id
		WHERE d.status = $1
		ORDER BY d.created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent deductions: %w", err)
	}
	defer rows.Close()

	var deductions []domain.Deduction
	for rows.Next() {
		var d domain.Deduction
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Date, &d.Reason, &d.Amount,
			&d.Status, &d.TripID, &d.Automatic, &d.CreatedAt, &d.EmployeeName); err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		deductions = append(deductions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return deductions, nil
}
