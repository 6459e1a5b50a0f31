package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/service"
	"github.com/fleetstack/fleetpoint/internal/service/serviceutils"
)

// EmployeeHandler exposes the employee CRUD endpoints.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler instance.
func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// Create registers a new employee.
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, "Invalid request body", domain.Validationf("malformed body"))
	}

	employee := req.ToDomain()
	if err := h.employees.Create(c.Request().Context(), employee); err != nil {
		return respondError(c, "Failed to create employee", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Employee created", employee)
}

// Get returns one employee by id.
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid employee id", err)
	}

	employee, err := h.employees.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, "Failed to get employee", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee retrieved", employee)
}

// Update saves an employee's editable fields.
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid employee id", err)
	}

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, "Invalid request body", domain.Validationf("malformed body"))
	}

	employee := req.ToDomain()
	employee.ID = id
	if err := h.employees.Update(c.Request().Context(), employee); err != nil {
		return respondError(c, "Failed to update employee", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee updated", employee)
}

// Delete removes an employee.
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid employee id", err)
	}

	if err := h.employees.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, "Failed to delete employee", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee deleted", nil)
}

// List returns employees, optionally only the active ones.
func (h *EmployeeHandler) List(c echo.Context) error {
	filter := domain.EmployeeFilter{
		ActiveOnly: c.QueryParam("active") == "true",
		Limit:      queryInt(c, "limit"),
		Offset:     queryInt(c, "offset"),
	}

	employees, err := h.employees.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, "Failed to list employees", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees retrieved", employees)
}
