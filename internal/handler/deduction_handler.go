package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/service"
	"github.com/fleetstack/fleetpoint/internal/service/serviceutils"
)

// DeductionHandler exposes the payroll deduction endpoints.
type DeductionHandler struct {
	deductions *service.DeductionService
}

// NewDeductionHandler creates a new DeductionHandler instance.
func NewDeductionHandler(deductions *service.DeductionService) *DeductionHandler {
	return &DeductionHandler{deductions: deductions}
}

// Create registers a manual deduction.
func (h *DeductionHandler) Create(c echo.Context) error {
	var req DeductionRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, "Invalid request body", domain.Validationf("malformed body"))
	}

	deduction, err := req.ToDomain()
	if err != nil {
		return respondError(c, "Invalid deduction", err)
	}
	if err := h.deductions.Create(c.Request().Context(), deduction); err != nil {
		return respondError(c, "Failed to create deduction", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Deduction created", deduction)
}

// Get returns one deduction by id.
func (h *DeductionHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid deduction id", err)
	}

	deduction, err := h.deductions.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, "Failed to get deduction", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Deduction retrieved", deduction)
}

// Update saves a deduction's editable fields.
func (h *DeductionHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid deduction id", err)
	}

	var req DeductionRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, "Invalid request body", domain.Validationf("malformed body"))
	}

	deduction, err := req.ToDomain()
	if err != nil {
		return respondError(c, "Invalid deduction", err)
	}
	deduction.ID = id
	if err := h.deductions.Update(c.Request().Context(), deduction); err != nil {
		return respondError(c, "Failed to update deduction", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Deduction updated", deduction)
}

// Approve marks a deduction as approved.
func (h *DeductionHandler) Approve(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid deduction id", err)
	}

	if err := h.deductions.Approve(c.Request().Context(), id); err != nil {
		return respondError(c, "Failed to approve deduction", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Deduction approved", nil)
}

// Cancel marks a deduction as cancelled.
func (h *DeductionHandler) Cancel(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid deduction id", err)
	}

	if err := h.deductions.Cancel(c.Request().Context(), id); err != nil {
		return respondError(c, "Failed to cancel deduction", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Deduction cancelled", nil)
}

// Delete removes a deduction.
func (h *DeductionHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid deduction id", err)
	}

	if err := h.deductions.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, "Failed to delete deduction", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Deduction deleted", nil)
}

// List returns deductions matching the optional query filters
// employee_id, status, date_from and date_to.
func (h *DeductionHandler) List(c echo.Context) error {
	filter := domain.DeductionFilter{
		EmployeeID: queryInt64Ptr(c, "employee_id"),
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := domain.DeductionStatus(raw)
		filter.Status = &status
	}
	if raw := c.QueryParam("date_from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return respondError(c, "Invalid date_from",
				domain.Validationf("date_from must be in YYYY-MM-DD form"))
		}
		filter.DateFrom = &from
	}
	if raw := c.QueryParam("date_to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return respondError(c, "Invalid date_to",
				domain.Validationf("date_to must be in YYYY-MM-DD form"))
		}
		filter.DateTo = &to
	}

	deductions, err := h.deductions.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, "Failed to list deductions", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Deductions retrieved", deductions)
}
