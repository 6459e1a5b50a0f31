package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.Validationf("%s must be in YYYY-MM-DD form", field)
	}
	return t, nil
}

func parseClock(value *string, field string) (*string, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	if _, err := time.Parse(clockLayout, *value); err != nil {
		return nil, domain.Validationf("%s must be in HH:MM form", field)
	}
	return value, nil
}

func parseOptionalDecimal(value *string, field string) (*decimal.Decimal, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*value)
	if err != nil {
		return nil, domain.Validationf("%s must be a decimal number", field)
	}
	return &d, nil
}

// EmployeeRequest carries the employee form fields.
type EmployeeRequest struct {
	Name          string  `json:"name"`
	Registration  string  `json:"registration"`
	NationalID    *string `json:"national_id"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	LinkedVehicle *string `json:"linked_vehicle"`
	Active        bool    `json:"active"`
}

// ToDomain converts the request to a domain employee.
func (r *EmployeeRequest) ToDomain() *domain.Employee {
	return &domain.Employee{
		Name:          r.Name,
		Registration:  r.Registration,
		NationalID:    r.NationalID,
		Phone:         r.Phone,
		Email:         r.Email,
		LinkedVehicle: r.LinkedVehicle,
		Active:        r.Active,
	}
}

// AttendanceRequest carries the attendance form fields. Date and time
// come as separate fields, the way the entry forms submit them.
type AttendanceRequest struct {
	EmployeeID    int64  `json:"employee_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Type          string `json:"type"`
	Note          string `json:"note"`
	Extraordinary bool   `json:"extraordinary"`
}

// ToDomain converts and validates the request.
func (r *AttendanceRequest) ToDomain() (*domain.AttendanceEntry, error) {
	ts, err := time.Parse(dateLayout+" "+clockLayout, r.Date+" "+r.Time)
	if err != nil {
		return nil, domain.Validationf("date and time must be in YYYY-MM-DD and HH:MM form")
	}
	return &domain.AttendanceEntry{
		EmployeeID:    r.EmployeeID,
		Timestamp:     ts,
		Type:          domain.AttendanceType(r.Type),
		Note:          r.Note,
		Extraordinary: r.Extraordinary,
	}, nil
}

// TripRequest carries the trip form fields. Odometer readings arrive as
// strings so they can be parsed as fixed-point decimals.
type TripRequest struct {
	Date          string  `json:"date"`
	Vehicle       string  `json:"vehicle"`
	DriverID      int64   `json:"driver_id"`
	DepartureTime *string `json:"departure_time"`
	ReturnTime    *string `json:"return_time"`
	KMStart       *string `json:"km_start"`
	KMEnd         *string `json:"km_end"`
	Note          string  `json:"note"`
}

// ToDomain converts and validates the request.
func (r *TripRequest) ToDomain() (*domain.TripRecord, error) {
	date, err := parseDate(r.Date, "date")
	if err != nil {
		return nil, err
	}
	departure, err := parseClock(r.DepartureTime, "departure_time")
	if err != nil {
		return nil, err
	}
	ret, err := parseClock(r.ReturnTime, "return_time")
	if err != nil {
		return nil, err
	}
	kmStart, err := parseOptionalDecimal(r.KMStart, "km_start")
	if err != nil {
		return nil, err
	}
	kmEnd, err := parseOptionalDecimal(r.KMEnd, "km_end")
	if err != nil {
		return nil, err
	}
	return &domain.TripRecord{
		Date:          date,
		Vehicle:       r.Vehicle,
		DriverID:      r.DriverID,
		DepartureTime: departure,
		ReturnTime:    ret,
		KMStart:       kmStart,
		KMEnd:         kmEnd,
		Note:          r.Note,
	}, nil
}

// TripResponse pairs a trip with the deduction its evaluation created,
// when one was generated.
type TripResponse struct {
	Trip      *domain.TripRecord `json:"trip"`
	Deduction *domain.Deduction  `json:"deduction,omitempty"`
}

// DeductionRequest carries the manual deduction form fields.
type DeductionRequest struct {
	EmployeeID int64  `json:"employee_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
}

// ToDomain converts and validates the request.
func (r *DeductionRequest) ToDomain() (*domain.Deduction, error) {
	date, err := parseDate(r.Date, "date")
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, domain.Validationf("amount must be a decimal number")
	}
	return &domain.Deduction{
		EmployeeID: r.EmployeeID,
		Date:       date,
		Reason:     r.Reason,
		Amount:     amount,
		Status:     domain.DeductionStatus(r.Status),
	}, nil
}

// UserRequest carries the operator account form fields. Password is
// required on create and optional on update.
type UserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Active   bool   `json:"active"`
}

// ToDomain converts the request to a domain user.
func (r *UserRequest) ToDomain() *domain.User {
	return &domain.User{
		Username: r.Username,
		Name:     r.Name,
		Email:    r.Email,
		Active:   r.Active,
	}
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the signed token with the account details.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
