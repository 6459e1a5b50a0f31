package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

func newDeductionFixture(t *testing.T) (*DeductionService, *fakeDeductionRepo, int64) {
	t.Helper()

	employees := newFakeEmployeeRepo()
	emp := &domain.Employee{Name: "Maria Oliveira", Registration: "MAT-0002", Active: true}
	require.NoError(t, employees.Create(context.Background(), emp))

	deductions := newFakeDeductionRepo()
	return NewDeductionService(deductions, employees), deductions, emp.ID
}

func TestDeductionCreateIsAlwaysManual(t *testing.T) {
	svc, repo, empID := newDeductionFixture(t)

	tripID := int64(99)
	d := &domain.Deduction{
		EmployeeID: empID,
		Date:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Reason:     "Multa de trânsito",
		Amount:     decimal.NewFromFloat(150),
		// A caller trying to forge an automatic deduction gets
		// silently downgraded to a manual one.
		TripID:    &tripID,
		Automatic: true,
	}
	require.NoError(t, svc.Create(context.Background(), d))

	stored, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.False(t, stored.Automatic)
	assert.Nil(t, stored.TripID)
	assert.Equal(t, domain.DeductionStatusPending, stored.Status)
}

func TestDeductionCreateValidation(t *testing.T) {
	svc, repo, empID := newDeductionFixture(t)
	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		d    domain.Deduction
		want error
	}{
		{"missing reason", domain.Deduction{EmployeeID: empID, Date: date, Amount: decimal.NewFromInt(10)}, domain.ErrValidation},
		{"zero amount", domain.Deduction{EmployeeID: empID, Date: date, Reason: "x", Amount: decimal.Zero}, domain.ErrValidation},
		{"negative amount", domain.Deduction{EmployeeID: empID, Date: date, Reason: "x", Amount: decimal.NewFromInt(-5)}, domain.ErrValidation},
		{"bad status", domain.Deduction{EmployeeID: empID, Date: date, Reason: "x", Amount: decimal.NewFromInt(10), Status: "pago"}, domain.ErrValidation},
		{"unknown employee", domain.Deduction{EmployeeID: 999, Date: date, Reason: "x", Amount: decimal.NewFromInt(10)}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.d
			err := svc.Create(context.Background(), &d)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, repo.deductions)
}

func TestDeductionApproveAndCancel(t *testing.T) {
	svc, repo, empID := newDeductionFixture(t)

	d := &domain.Deduction{
		EmployeeID: empID,
		Date:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Reason:     "Multa de trânsito",
		Amount:     decimal.NewFromFloat(150),
	}
	require.NoError(t, svc.Create(context.Background(), d))

	require.NoError(t, svc.Approve(context.Background(), d.ID))
	stored, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeductionStatusApproved, stored.Status)

	require.NoError(t, svc.Cancel(context.Background(), d.ID))
	stored, err = repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeductionStatusCancelled, stored.Status)

	assert.ErrorIs(t, svc.Approve(context.Background(), 999), domain.ErrNotFound)
}
