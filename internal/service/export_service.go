package service

import (
	"context"
	"fmt"

	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/export"
)

// ExportService renders the four tabular reports as xlsx workbooks.
type ExportService struct {
	employees  domain.EmployeeRepository
	attendance domain.AttendanceRepository
	trips      domain.TripRepository
	deductions domain.DeductionRepository
	layout     *export.Layout
}

// NewExportService creates a new ExportService instance.
func NewExportService(
	employees domain.EmployeeRepository,
	attendance domain.AttendanceRepository,
	trips domain.TripRepository,
	deductions domain.DeductionRepository,
	layout *export.Layout,
) *ExportService {
	return &ExportService{
		employees:  employees,
		attendance: attendance,
		trips:      trips,
		deductions: deductions,
		layout:     layout,
	}
}

// Export builds the workbook for a report kind and returns its bytes
// with the download filename.
func (s *ExportService) Export(ctx context.Context, kind string) ([]byte, string, error) {
	columns, ok := s.layout.Columns(kind)
	if !ok {
		return nil, "", domain.Validationf("invalid export kind %q", kind)
	}

	exporter := export.NewExporter()
	sheet := exporter.AddSheet("Dados", columns)

	switch kind {
	case export.KindEmployees:
		if err := s.fillEmployees(ctx, sheet); err != nil {
			return nil, "", err
		}
	case export.KindAttendance:
		if err := s.fillAttendance(ctx, sheet); err != nil {
			return nil, "", err
		}
	case export.KindTrips:
		if err := s.fillTrips(ctx, sheet); err != nil {
			return nil, "", err
		}
	case export.KindDeductions:
		if err := s.fillDeductions(ctx, sheet); err != nil {
			return nil, "", err
		}
	}

	data, err := exporter.ToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate workbook: %w", err)
	}
	return data, kind + ".xlsx", nil
}

func (s *ExportService) fillEmployees(ctx context.Context, sheet *export.Sheet) error {
	employees, err := s.employees.List(ctx, domain.EmployeeFilter{})
	if err != nil {
		return err
	}
	for _, e := range employees {
		sheet.AddRow(e.ID, e.Name, e.Registration, strOrEmpty(e.NationalID),
			e.Phone, e.Email, strOrEmpty(e.LinkedVehicle), simNao(e.Active))
	}
	return nil
}

func (s *ExportService) fillAttendance(ctx context.Context, sheet *export.Sheet) error {
	entries, err := s.attendance.List(ctx, domain.AttendanceFilter{})
	if err != nil {
		return err
	}
	for _, a := range entries {
		sheet.AddRow(a.ID, a.EmployeeName, a.Timestamp.Format("02/01/2006 15:04"),
			string(a.Type), simNao(a.Extraordinary), a.Note)
	}
	return nil
}

func (s *ExportService) fillTrips(ctx context.Context, sheet *export.Sheet) error {
	trips, err := s.trips.List(ctx, domain.TripFilter{})
	if err != nil {
		return err
	}
	for _, t := range trips {
		var kmStart, kmEnd, kmRun string
		if t.KMStart != nil {
			kmStart = t.KMStart.StringFixed(2)
		}
		if t.KMEnd != nil {
			kmEnd = t.KMEnd.StringFixed(2)
		}
		kmRun = t.Distance().StringFixed(2)

		sheet.AddRow(t.ID, t.Date.Format("02/01/2006"), t.Vehicle, t.DriverName,
			strOrEmpty(t.DepartureTime), strOrEmpty(t.ReturnTime),
			kmStart, kmEnd, kmRun, string(t.Status), t.Note)
	}
	return nil
}

func (s *ExportService) fillDeductions(ctx context.Context, sheet *export.Sheet) error {
	deductions, err := s.deductions.List(ctx, domain.DeductionFilter{})
	if err != nil {
		return err
	}
	for _, d := range deductions {
		sheet.AddRow(d.ID, d.EmployeeName, d.Date.Format("02/01/2006"), d.Reason,
			"R$ "+d.Amount.StringFixed(2), string(d.Status), simNao(d.Automatic))
	}
	return nil
}

func simNao(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
