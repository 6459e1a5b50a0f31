package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/service"
	"github.com/fleetstack/fleetpoint/internal/service/serviceutils"
)

// AttendanceHandler exposes the attendance ledger endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler instance.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Create registers a clock-in/out entry.
func (h *AttendanceHandler) Create(c echo.Context) error {
	var req AttendanceRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, "Invalid request body", domain.Validationf("malformed body"))
	}

	entry, err := req.ToDomain()
	if err != nil {
		return respondError(c, "Invalid attendance entry", err)
	}
	if err := h.attendance.Create(c.Request().Context(), entry); err != nil {
		return respondError(c, "Failed to create attendance entry", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Attendance entry created", entry)
}

// Get returns one entry by id.
func (h *AttendanceHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid attendance id", err)
	}

	entry, err := h.attendance.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, "Failed to get attendance entry", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Attendance entry retrieved", entry)
}

// Update saves an entry's mutable fields.
func (h *AttendanceHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid attendance id", err)
	}

	var req AttendanceRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, "Invalid request body", domain.Validationf("malformed body"))
	}

	entry, err := req.ToDomain()
	if err != nil {
		return respondError(c, "Invalid attendance entry", err)
	}
	entry.ID = id
	if err := h.attendance.Update(c.Request().Context(), entry); err != nil {
		return respondError(c, "Failed to update attendance entry", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Attendance entry updated", entry)
}

// Delete removes an entry.
func (h *AttendanceHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid attendance id", err)
	}

	if err := h.attendance.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, "Failed to delete attendance entry", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Attendance entry deleted", nil)
}

// List returns attendance entries, most recent first.
func (h *AttendanceHandler) List(c echo.Context) error {
	filter := domain.AttendanceFilter{
		EmployeeID: queryInt64Ptr(c, "employee_id"),
		Limit:      queryInt(c, "limit"),
		Offset:     queryInt(c, "offset"),
	}

	entries, err := h.attendance.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, "Failed to list attendance entries", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Attendance entries retrieved", entries)
}
