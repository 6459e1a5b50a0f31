package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/logger"
	"github.com/fleetstack/fleetpoint/internal/service"
	"github.com/fleetstack/fleetpoint/internal/service/serviceutils"
)

// TripHandler exposes the trip record endpoints. Create and Update run
// the deduction policy engine, so their responses carry the derived
// status and any deduction that was generated.
type TripHandler struct {
	trips *service.TripService
}

// NewTripHandler creates a new TripHandler instance.
func NewTripHandler(trips *service.TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

// Create registers a trip and evaluates it.
func (h *TripHandler) Create(c echo.Context) error {
	var req TripRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, "Invalid request body", domain.Validationf("malformed body"))
	}

	trip, err := req.ToDomain()
	if err != nil {
		return respondError(c, "Invalid trip record", err)
	}

	deduction, err := h.trips.Create(c.Request().Context(), trip)
	if err != nil {
		return respondError(c, "Failed to create trip", err)
	}
	if deduction != nil {
		logger.InfoLog(c.Request().Context(),
			"automatic deduction %d generated for trip %d", deduction.ID, trip.ID)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Trip created", TripResponse{
		Trip:      trip,
		Deduction: deduction,
	})
}

// Get returns one trip by id.
func (h *TripHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid trip id", err)
	}

	trip, err := h.trips.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, "Failed to get trip", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Trip retrieved", trip)
}

// Update saves a trip's fields and re-evaluates it.
func (h *TripHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid trip id", err)
	}

	var req TripRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, "Invalid request body", domain.Validationf("malformed body"))
	}

	trip, err := req.ToDomain()
	if err != nil {
		return respondError(c, "Invalid trip record", err)
	}
	trip.ID = id

	deduction, err := h.trips.Update(c.Request().Context(), trip)
	if err != nil {
		return respondError(c, "Failed to update trip", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Trip updated", TripResponse{
		Trip:      trip,
		Deduction: deduction,
	})
}

// Delete removes a trip and its automatic deductions.
func (h *TripHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid trip id", err)
	}

	if err := h.trips.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, "Failed to delete trip", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Trip deleted", nil)
}

// List returns trip records, most recent first.
func (h *TripHandler) List(c echo.Context) error {
	filter := domain.TripFilter{
		DriverID: queryInt64Ptr(c, "driver_id"),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
	}

	trips, err := h.trips.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, "Failed to list trips", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Trips retrieved", trips)
}
