package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminUsername identifies the built-in administrator account. User
// management routes are restricted to it and it can never be deleted.
const AdminUsername = "admin"

// TripStatus reflects whether the driver had an attendance entry on the
// trip's date at the time of last evaluation. It is derived, never set
// directly by operators.
type TripStatus string

const (
	TripStatusCompliant TripStatus = "conforme"
	TripStatusAnomalous TripStatus = "extraordinaria"
)

// DeductionStatus is the approval state of a payroll deduction.
type DeductionStatus string

const (
	DeductionStatusPending   DeductionStatus = "pendente"
	DeductionStatusApproved  DeductionStatus = "aprovado"
	DeductionStatusCancelled DeductionStatus = "cancelado"
)

// AttendanceType distinguishes clock-in from clock-out entries.
type AttendanceType string

const (
	AttendanceTypeClockIn  AttendanceType = "entrada"
	AttendanceTypeClockOut AttendanceType = "saida"
)

// User represents an operator account in the users table.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// IsAdmin reports whether this account is the built-in administrator.
func (u *User) IsAdmin() bool {
	return u.Username == AdminUsername
}

// Employee represents the employees (colaboradores) table.
type Employee struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Registration  string    `json:"registration" db:"registration"`
	NationalID    *string   `json:"national_id,omitempty" db:"national_id"`
	Phone         string    `json:"phone" db:"phone"`
	Email         string    `json:"email" db:"email"`
	LinkedVehicle *string   `json:"linked_vehicle,omitempty" db:"linked_vehicle"`
	Active        bool      `json:"active" db:"active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// AttendanceEntry represents the attendance_entries (pontos) table.
type AttendanceEntry struct {
	ID            int64          `json:"id" db:"id"`
	EmployeeID    int64          `json:"employee_id" db:"employee_id"`
	Timestamp     time.Time      `json:"timestamp" db:"entry_at"`
	Type          AttendanceType `json:"type" db:"entry_type"`
	Note          string         `json:"note" db:"note"`
	Extraordinary bool           `json:"extraordinary" db:"extraordinary"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`

	// EmployeeName is populated by list queries that join employees.
	EmployeeName string `json:"employee_name,omitempty" db:"-"`
}

// TripRecord represents the trips (frota) table. Departure and return
// times are clock times in "15:04" form; odometer readings are decimal
// so fractional kilometers survive until the deduction amount rounds.
type TripRecord struct {
	ID            int64            `json:"id" db:"id"`
	Date          time.Time        `json:"date" db:"trip_date"`
	Vehicle       string           `json:"vehicle" db:"vehicle"`
	DriverID      int64            `json:"driver_id" db:"driver_id"`
	DepartureTime *string          `json:"departure_time,omitempty" db:"departure_time"`
	ReturnTime    *string          `json:"return_time,omitempty" db:"return_time"`
	KMStart       *decimal.Decimal `json:"km_start,omitempty" db:"km_start"`
	KMEnd         *decimal.Decimal `json:"km_end,omitempty" db:"km_end"`
	Note          string           `json:"note" db:"note"`
	Status        TripStatus       `json:"status" db:"status"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`

	DriverName string `json:"driver_name,omitempty" db:"-"`
}

// Distance returns the kilometers travelled, or zero when either reading
// is missing or the end reading does not exceed the start.
func (t *TripRecord) Distance() decimal.Decimal {
	if t.KMStart == nil || t.KMEnd == nil {
		return decimal.Zero
	}
	d := t.KMEnd.Sub(*t.KMStart)
	if d.Sign() <= 0 {
		return decimal.Zero
	}
	return d
}

// Deduction represents the deductions (descontos) table. Automatic
// deductions are generated by the policy engine and linked to the trip
// that caused them; manual ones have Automatic=false and no trip link.
type Deduction struct {
	ID         int64           `json:"id" db:"id"`
	EmployeeID int64           `json:"employee_id" db:"employee_id"`
	Date       time.Time       `json:"date" db:"deduction_date"`
	Reason     string          `json:"reason" db:"reason"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	Status     DeductionStatus `json:"status" db:"status"`
	TripID     *int64          `json:"trip_id,omitempty" db:"trip_id"`
	Automatic  bool            `json:"automatic" db:"automatic"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`

	EmployeeName string `json:"employee_name,omitempty" db:"-"`
}

// DashboardSummary aggregates the landing-page counters and recent rows.
type DashboardSummary struct {
	ActiveEmployees   int               `json:"active_employees"`
	AttendanceToday   int               `json:"attendance_today"`
	PendingDeductions int               `json:"pending_deductions"`
	TripsToday        int               `json:"trips_today"`
	RecentAttendance  []AttendanceEntry `json:"recent_attendance"`
	RecentDeductions  []Deduction       `json:"recent_deductions"`
}
