package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/export"
)

func newExportFixture(t *testing.T) (*ExportService, *fakeEmployeeRepo, *fakeDeductionRepo) {
	t.Helper()
	employees := newFakeEmployeeRepo()
	attendance := &fakeAttendanceRepo{}
	trips := newFakeTripRepo()
	deductions := newFakeDeductionRepo()
	svc := NewExportService(employees, attendance, trips, deductions, export.DefaultLayout())
	return svc, employees, deductions
}

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Dados")
	require.NoError(t, err)
	return rows
}

func TestExportUnknownKind(t *testing.T) {
	svc, _, _ := newExportFixture(t)
	_, _, err := svc.Export(context.Background(), "relatorios")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExportEmployees(t *testing.T) {
	svc, employees, _ := newExportFixture(t)

	vehicle := "FROTA-01"
	require.NoError(t, employees.Create(context.Background(), &domain.Employee{
		Name:          "João da Silva",
		Registration:  "MAT-0001",
		LinkedVehicle: &vehicle,
		Active:        true,
	}))

	data, filename, err := svc.Export(context.Background(), export.KindEmployees)
	require.NoError(t, err)
	assert.Equal(t, "colaboradores.xlsx", filename)

	rows := readRows(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, "Nome", rows[0][1])
	assert.Equal(t, "João da Silva", rows[1][1])
	assert.Equal(t, "Sim", rows[1][7])
	// Missing national id renders as an empty cell.
	assert.Equal(t, "", rows[1][3])
}

func TestExportDeductionsFormatsCurrencyAndDates(t *testing.T) {
	svc, _, deductions := newExportFixture(t)

	d := &domain.Deduction{
		EmployeeID:   1,
		EmployeeName: "João da Silva",
		Date:         time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Reason:       "Ausência de registro de ponto - Veículo FROTA-01",
		Amount:       decimal.NewFromFloat(75),
		Status:       domain.DeductionStatusPending,
		Automatic:    true,
	}
	require.NoError(t, deductions.Create(context.Background(), d))

	data, _, err := svc.Export(context.Background(), export.KindDeductions)
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 2)
	row := rows[1]
	assert.Equal(t, "10/01/2025", row[2])
	assert.Equal(t, "R$ 75.00", row[4])
	assert.Equal(t, "pendente", row[5])
	assert.Equal(t, "Sim", row[6])
}
