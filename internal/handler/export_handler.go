package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetstack/fleetpoint/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams xlsx report downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler creates a new ExportHandler instance.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Download renders the report named by the :kind path parameter and
// returns it as an attachment.
func (h *ExportHandler) Download(c echo.Context) error {
	data, filename, err := h.exports.Export(c.Request().Context(), c.Param("kind"))
	if err != nil {
		return respondError(c, "Failed to export report", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, xlsxContentType, data)
}
