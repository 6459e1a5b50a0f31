package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

// The fakes run the transactional flow with a nil *sql.Tx; WithTx
// returns the fake itself, so the same in-memory state is visible
// inside and outside the "transaction".

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return fn(nil)
}

type fakeEmployeeRepo struct {
	seq       int64
	employees map[int64]*domain.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[int64]*domain.Employee{}}
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	r.seq++
	e.ID = r.seq
	cp := *e
	r.employees[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	if _, ok := r.employees[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	r.employees[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) Delete(ctx context.Context, id int64) error {
	delete(r.employees, id)
	return nil
}

func (r *fakeEmployeeRepo) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, e := range r.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) CountActive(ctx context.Context) (int, error) {
	n := 0
	for _, e := range r.employees {
		if e.Active {
			n++
		}
	}
	return n, nil
}

type fakeAttendanceRepo struct {
	seq     int64
	entries []domain.AttendanceEntry
}

func (r *fakeAttendanceRepo) WithTx(tx *sql.Tx) domain.AttendanceRepository { return r }

func (r *fakeAttendanceRepo) Create(ctx context.Context, a *domain.AttendanceEntry) error {
	r.seq++
	a.ID = r.seq
	r.entries = append(r.entries, *a)
	return nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id int64) (*domain.AttendanceEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, a *domain.AttendanceEntry) error {
	for i, e := range r.entries {
		if e.ID == a.ID {
			r.entries[i] = *a
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeAttendanceRepo) Delete(ctx context.Context, id int64) error {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeAttendanceRepo) List(ctx context.Context, filter domain.AttendanceFilter) ([]domain.AttendanceEntry, error) {
	return append([]domain.AttendanceEntry(nil), r.entries...), nil
}

func (r *fakeAttendanceRepo) HasEntryOn(ctx context.Context, employeeID int64, date time.Time) (bool, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)
	for _, e := range r.entries {
		if e.EmployeeID == employeeID && !e.Timestamp.Before(start) && e.Timestamp.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAttendanceRepo) CountOnDate(ctx context.Context, date time.Time) (int, error) {
	return len(r.entries), nil
}

type fakeTripRepo struct {
	seq   int64
	trips map[int64]*domain.TripRecord
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: map[int64]*domain.TripRecord{}}
}

func (r *fakeTripRepo) WithTx(tx *sql.Tx) domain.TripRepository { return r }

func (r *fakeTripRepo) Create(ctx context.Context, t *domain.TripRecord) error {
	r.seq++
	t.ID = r.seq
	cp := *t
	r.trips[t.ID] = &cp
	return nil
}

func (r *fakeTripRepo) GetByID(ctx context.Context, id int64) (*domain.TripRecord, error) {
	t, ok := r.trips[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTripRepo) Update(ctx context.Context, t *domain.TripRecord) error {
	if _, ok := r.trips[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	r.trips[t.ID] = &cp
	return nil
}

func (r *fakeTripRepo) UpdateStatus(ctx context.Context, id int64, status domain.TripStatus) error {
	t, ok := r.trips[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = status
	return nil
}

func (r *fakeTripRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.trips[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.trips, id)
	return nil
}

func (r *fakeTripRepo) List(ctx context.Context, filter domain.TripFilter) ([]domain.TripRecord, error) {
	var out []domain.TripRecord
	for _, t := range r.trips {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTripRepo) CountOnDate(ctx context.Context, date time.Time) (int, error) {
	return len(r.trips), nil
}

type fakeDeductionRepo struct {
	seq        int64
	deductions map[int64]*domain.Deduction
}

func newFakeDeductionRepo() *fakeDeductionRepo {
	return &fakeDeductionRepo{deductions: map[int64]*domain.Deduction{}}
}

func (r *fakeDeductionRepo) WithTx(tx *sql.Tx) domain.DeductionRepository { return r }

func (r *fakeDeductionRepo) Create(ctx context.Context, d *domain.Deduction) error {
	r.seq++
	d.ID = r.seq
	cp := *d
	r.deductions[d.ID] = &cp
	return nil
}

func (r *fakeDeductionRepo) GetByID(ctx context.Context, id int64) (*domain.Deduction, error) {
	d, ok := r.deductions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDeductionRepo) Update(ctx context.Context, d *domain.Deduction) error {
	if _, ok := r.deductions[d.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *d
	r.deductions[d.ID] = &cp
	return nil
}

func (r *fakeDeductionRepo) UpdateStatus(ctx context.Context, id int64, status domain.DeductionStatus) error {
	d, ok := r.deductions[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	return nil
}

func (r *fakeDeductionRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.deductions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.deductions, id)
	return nil
}

func (r *fakeDeductionRepo) List(ctx context.Context, filter domain.DeductionFilter) ([]domain.Deduction, error) {
	var out []domain.Deduction
	for _, d := range r.deductions {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDeductionRepo) FindAutomaticByTrip(ctx context.Context, tripID int64) (*domain.Deduction, error) {
	for _, d := range r.deductions {
		if d.Automatic && d.TripID != nil && *d.TripID == tripID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDeductionRepo) DeleteAllAutomaticByTrip(ctx context.Context, tripID int64) (int64, error) {
	var n int64
	for id, d := range r.deductions {
		if d.Automatic && d.TripID != nil && *d.TripID == tripID {
			delete(r.deductions, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeDeductionRepo) CountByStatus(ctx context.Context, status domain.DeductionStatus) (int, error) {
	n := 0
	for _, d := range r.deductions {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeDeductionRepo) ListRecentByStatus(ctx context.Context, status domain.DeductionStatus, limit int) ([]domain.Deduction, error) {
	var out []domain.Deduction
	for _, d := range r.deductions {
		if d.Status == status {
			out = append(out, *d)
		}
	}
	return out, nil
}

type tripFixture struct {
	svc        *TripService
	employees  *fakeEmployeeRepo
	attendance *fakeAttendanceRepo
	trips      *fakeTripRepo
	deductions *fakeDeductionRepo
	driverID   int64
}

func newTripFixture(t *testing.T) *tripFixture {
	t.Helper()

	employees := newFakeEmployeeRepo()
	driver := &domain.Employee{Name: "João da Silva", Registration: "MAT-0001", Active: true}
	require.NoError(t, employees.Create(context.Background(), driver))

	attendance := &fakeAttendanceRepo{}
	trips := newFakeTripRepo()
	deductions := newFakeDeductionRepo()

	svc := NewTripService(fakeTxManager{}, trips, attendance, deductions, employees, testPolicy())
	return &tripFixture{
		svc:        svc,
		employees:  employees,
		attendance: attendance,
		trips:      trips,
		deductions: deductions,
		driverID:   driver.ID,
	}
}

func (f *tripFixture) clockIn(t *testing.T, at time.Time) {
	t.Helper()
	err := f.attendance.Create(context.Background(), &domain.AttendanceEntry{
		EmployeeID: f.driverID,
		Timestamp:  at,
		Type:       domain.AttendanceTypeClockIn,
	})
	require.NoError(t, err)
}

func (f *tripFixture) trip(date time.Time) *domain.TripRecord {
	return &domain.TripRecord{
		Date:     date,
		Vehicle:  "FROTA-01",
		DriverID: f.driverID,
		KMStart:  km(1000),
		KMEnd:    km(1050),
	}
}

func TestTripCreateWithAttendanceIsCompliant(t *testing.T) {
	f := newTripFixture(t)
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	f.clockIn(t, date.Add(8*time.Hour))

	trip := f.trip(date)
	deduction, err := f.svc.Create(context.Background(), trip)
	require.NoError(t, err)

	assert.Nil(t, deduction)
	assert.Equal(t, domain.TripStatusCompliant, trip.Status)

	stored, err := f.trips.GetByID(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusCompliant, stored.Status)
	assert.Empty(t, f.deductions.deductions)
}

func TestTripCreateWithoutAttendanceGeneratesDeduction(t *testing.T) {
	f := newTripFixture(t)
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	trip := f.trip(date)
	deduction, err := f.svc.Create(context.Background(), trip)
	require.NoError(t, err)

	assert.Equal(t, domain.TripStatusAnomalous, trip.Status)
	require.NotNil(t, deduction)
	assert.Equal(t, f.driverID, deduction.EmployeeID)
	assert.Equal(t, "Ausência de registro de ponto - Veículo FROTA-01", deduction.Reason)
	assert.Equal(t, "75.00", deduction.Amount.StringFixed(2))
	assert.Equal(t, domain.DeductionStatusPending, deduction.Status)
	assert.True(t, deduction.Automatic)
	require.NotNil(t, deduction.TripID)
	assert.Equal(t, trip.ID, *deduction.TripID)

	stored, err := f.trips.GetByID(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusAnomalous, stored.Status)
}

func TestTripCreateWithoutReadingsChargesBaseFee(t *testing.T) {
	f := newTripFixture(t)

	trip := f.trip(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	trip.KMStart = nil
	trip.KMEnd = nil

	deduction, err := f.svc.Create(context.Background(), trip)
	require.NoError(t, err)
	require.NotNil(t, deduction)
	assert.Equal(t, "50.00", deduction.Amount.StringFixed(2))
}

func TestTripUpdateDoesNotDuplicateDeduction(t *testing.T) {
	f := newTripFixture(t)
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	trip := f.trip(date)
	first, err := f.svc.Create(context.Background(), trip)
	require.NoError(t, err)
	require.NotNil(t, first)

	trip.Note = "edited"
	second, err := f.svc.Update(context.Background(), trip)
	require.NoError(t, err)

	assert.Nil(t, second)
	assert.Len(t, f.deductions.deductions, 1)
	assert.Equal(t, domain.TripStatusAnomalous, trip.Status)
}

func TestTripUpdateAfterClockInTurnsCompliantButKeepsDeduction(t *testing.T) {
	f := newTripFixture(t)
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	trip := f.trip(date)
	_, err := f.svc.Create(context.Background(), trip)
	require.NoError(t, err)
	require.Len(t, f.deductions.deductions, 1)

	// The driver's entry shows up later; the trip goes back to
	// compliant but the deduction already issued stays in place.
	f.clockIn(t, date.Add(9*time.Hour))

	deduction, err := f.svc.Update(context.Background(), trip)
	require.NoError(t, err)

	assert.Nil(t, deduction)
	assert.Equal(t, domain.TripStatusCompliant, trip.Status)
	assert.Len(t, f.deductions.deductions, 1)
}

func TestTripDeleteRemovesOnlyAutomaticDeductions(t *testing.T) {
	f := newTripFixture(t)
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	trip := f.trip(date)
	_, err := f.svc.Create(context.Background(), trip)
	require.NoError(t, err)

	manual := &domain.Deduction{
		EmployeeID: f.driverID,
		Date:       date,
		Reason:     "Avaria no veículo",
		Amount:     decimal.NewFromFloat(120),
		Status:     domain.DeductionStatusPending,
	}
	require.NoError(t, f.deductions.Create(context.Background(), manual))
	require.Len(t, f.deductions.deductions, 2)

	require.NoError(t, f.svc.Delete(context.Background(), trip.ID))

	_, err = f.trips.GetByID(context.Background(), trip.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.Len(t, f.deductions.deductions, 1)
	remaining, err := f.deductions.GetByID(context.Background(), manual.ID)
	require.NoError(t, err)
	assert.False(t, remaining.Automatic)
}

func TestTripEvaluationUsesCalendarDaySpan(t *testing.T) {
	f := newTripFixture(t)

	// Entry late on Jan 10 covers trips on Jan 10 only.
	f.clockIn(t, time.Date(2025, 1, 10, 23, 30, 0, 0, time.UTC))

	sameDay := f.trip(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	deduction, err := f.svc.Create(context.Background(), sameDay)
	require.NoError(t, err)
	assert.Nil(t, deduction)
	assert.Equal(t, domain.TripStatusCompliant, sameDay.Status)

	nextDay := f.trip(time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC))
	deduction, err = f.svc.Create(context.Background(), nextDay)
	require.NoError(t, err)
	require.NotNil(t, deduction)
	assert.Equal(t, domain.TripStatusAnomalous, nextDay.Status)
}

func TestTripCreateValidation(t *testing.T) {
	f := newTripFixture(t)
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("missing vehicle", func(t *testing.T) {
		trip := f.trip(date)
		trip.Vehicle = ""
		_, err := f.svc.Create(context.Background(), trip)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing date", func(t *testing.T) {
		trip := f.trip(time.Time{})
		_, err := f.svc.Create(context.Background(), trip)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown driver", func(t *testing.T) {
		trip := f.trip(date)
		trip.DriverID = 999
		_, err := f.svc.Create(context.Background(), trip)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.Empty(t, f.trips.trips)
	assert.Empty(t, f.deductions.deductions)
}
