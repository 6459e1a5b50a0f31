package domain

import (
	"context"
	"database/sql"
	"time"
)

// EmployeeFilter defines criteria for listing employees.
type EmployeeFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

// AttendanceFilter defines criteria for listing attendance entries.
type AttendanceFilter struct {
	EmployeeID *int64
	Limit      int
	Offset     int
}

// TripFilter defines criteria for listing trip records.
type TripFilter struct {
	DriverID *int64
	Limit    int
	Offset   int
}

// DeductionFilter defines criteria for listing deductions.
type DeductionFilter struct {
	EmployeeID *int64
	Status     *DeductionStatus
	DateFrom   *time.Time
	DateTo     *time.Time
}

// UserRepository defines data access for operator accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]User, error)
}

// EmployeeRepository defines data access for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id int64) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	CountActive(ctx context.Context) (int, error)
}

// AttendanceRepository defines data access for attendance entries.
// HasEntryOn is the attendance-ledger query the deduction policy engine
// delegates to: true iff any entry timestamp falls within the 24-hour
// span of the given date.
type AttendanceRepository interface {
	WithTx(tx *sql.Tx) AttendanceRepository

	Create(ctx context.Context, a *AttendanceEntry) error
	GetByID(ctx context.Context, id int64) (*AttendanceEntry, error)
	Update(ctx context.Context, a *AttendanceEntry) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceEntry, error)
	HasEntryOn(ctx context.Context, employeeID int64, date time.Time) (bool, error)
	CountOnDate(ctx context.Context, date time.Time) (int, error)
}

// TripRepository defines data access for trip records.
type TripRepository interface {
	WithTx(tx *sql.Tx) TripRepository

	Create(ctx context.Context, t *TripRecord) error
	GetByID(ctx context.Context, id int64) (*TripRecord, error)
	Update(ctx context.Context, t *TripRecord) error
	UpdateStatus(ctx context.Context, id int64, status TripStatus) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter TripFilter) ([]TripRecord, error)
	CountOnDate(ctx context.Context, date time.Time) (int, error)
}

// DeductionRepository defines data access for deductions.
type DeductionRepository interface {
	WithTx(tx *sql.Tx) DeductionRepository

	Create(ctx context.Context, d *Deduction) error
	GetByID(ctx context.Context, id int64) (*Deduction, error)
	Update(ctx context.Context, d *Deduction) error
	UpdateStatus(ctx context.Context, id int64, status DeductionStatus) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter DeductionFilter) ([]Deduction, error)
	FindAutomaticByTrip(ctx context.Context, tripID int64) (*Deduction, error)
	DeleteAllAutomaticByTrip(ctx context.Context, tripID int64) (int64, error)
	CountByStatus(ctx context.Context, status DeductionStatus) (int, error)
	ListRecentByStatus(ctx context.Context, status DeductionStatus, limit int) ([]Deduction, error)
}
