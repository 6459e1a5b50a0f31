package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

// DeductionPolicy computes the deduction owed when a driver logs a trip
// without a matching attendance entry: a flat base fee plus a
// per-kilometer surcharge when both odometer readings are recorded and
// the end reading exceeds the start.
type DeductionPolicy struct {
	BaseFee decimal.Decimal
	KMRate  decimal.Decimal
}

// NewDeductionPolicy creates a policy with the given fee and rate.
func NewDeductionPolicy(baseFee, kmRate decimal.Decimal) DeductionPolicy {
	return DeductionPolicy{BaseFee: baseFee, KMRate: kmRate}
}

// Amount returns the deduction value for a trip, rounded half-up to two
// decimal places.
func (p DeductionPolicy) Amount(trip *domain.TripRecord) decimal.Decimal {
	amount := p.BaseFee
	if km := trip.Distance(); km.Sign() > 0 {
		amount = amount.Add(km.Mul(p.KMRate))
	}
	return amount.Round(2)
}

// BuildDeduction constructs the pending automatic deduction for a trip
// whose driver has no attendance entry on the trip date. The record is
// not persisted here.
func (p DeductionPolicy) BuildDeduction(trip *domain.TripRecord) *domain.Deduction {
	tripID := trip.ID
	return &domain.Deduction{
		EmployeeID: trip.DriverID,
		Date:       trip.Date,
		Reason:     fmt.Sprintf("Ausência de registro de ponto - Veículo %s", trip.Vehicle),
		Amount:     p.Amount(trip),
		Status:     domain.DeductionStatusPending,
		TripID:     &tripID,
		Automatic:  true,
	}
}
