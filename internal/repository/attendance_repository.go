package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/repository/builder"
)

type attendanceRepository struct {
	db queryer
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) WithTx(tx *sql.Tx) domain.AttendanceRepository {
	return &attendanceRepository{db: tx}
}

func (r *attendanceRepository) Create(ctx context.Context, a *domain.AttendanceEntry) error {
	b := builder.NewSQLBuilder()
	query, args := b.Insert("attendance_entries",
		"employee_id", "entry_at", "entry_type", "note", "extraordinary").
		Values(a.EmployeeID, a.Timestamp, a.Type, a.Note, a.Extraordinary).
		Returning("id", "created_at").
		Build()

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("failed to create attendance entry: %w", err)
	}
	return nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id int64) (*domain.AttendanceEntry, error) {
	query := `
		SELECT a.id, a.employee_id, a.entry_at, a.entry_type, a.note, a.extraordinary,
		       a.created_at, e.name
		FROM attendance_entries a
		INNER JOIN employees e ON a.employee_id = e.id
		WHERE a.id = $1
	`
	var a domain.AttendanceEntry
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.EmployeeID, &a.Timestamp,
		&a.Type, &a.Note, &a.Extraordinary, &a.CreatedAt, &a.EmployeeName)
	if err != nil {
		return nil, mapScanErr(err)
	}
	return &a, nil
}

func (r *attendanceRepository) Update(ctx context.Context, a *domain.AttendanceEntry) error {
	b := builder.NewSQLBuilder()
	query, args := b.Update("attendance_entries").
		Set("employee_id", a.EmployeeID).
		Set("entry_at", a.Timestamp).
		Set("entry_type", a.Type).
		Set("note", a.Note).
		Set("extraordinary", a.Extraordinary).
		Where("id = ?", a.ID).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update attendance entry: %w", err)
	}
	return requireAffected(res)
}

func (r *attendanceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM attendance_entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance entry: %w", err)
	}
	return requireAffected(res)
}

func (r *attendanceRepository) List(ctx context.Context, filter domain.AttendanceFilter) ([]domain.AttendanceEntry, error) {
	b := builder.NewSQLBuilder()
	b.Select("a.id", "a.employee_id", "a.entry_at", "a.entry_type", "a.note",
		"a.extraordinary", "a.created_at", "e.name").
		From("attendance_entries a").
		Join("INNER", "employees e", "a.employee_id = e.id").
		OrderBy("a.entry_at DESC")

	if filter.EmployeeID != nil {
		b.Where("a.employee_id = ?", *filter.EmployeeID)
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
		return nil, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AttendanceEntry
	for rows.Next() {
		var a domain.AttendanceEntry
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Timestamp, &a.Type, &a.Note,
			&a.Extraordinary, &a.CreatedAt, &a.EmployeeName); err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		entries = append(entries, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return entries, nil
}

// HasEntryOn reports whether the employee has any entry whose timestamp
// falls within the calendar day of date.
func (r *attendanceRepository) HasEntryOn(ctx context.Context, employeeID int64, date time.Time) (bool, error) {
	start, end := dayBounds(date)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_entries
			WHERE employee_id = $1 AND entry_at >= $2 AND entry_at < $3
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance: %w", err)
	}
	return exists, nil
}

func (r *attendanceRepository) CountOnDate(ctx context.Context, date time.Time) (int, error) {
	start, end := dayBounds(date)
	query := `SELECT COUNT(*) FROM attendance_entries WHERE entry_at >= $1 AND entry_at < $2`

	var count int
	if err := r.db.QueryRowContext(ctx, query, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance entries: %w", err)
	}
	return count, nil
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}
