package service

import (
	"context"
	"time"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

const recentLimit = 5

// DashboardService assembles the landing-page summary.
type DashboardService struct {
	employees  domain.EmployeeRepository
	attendance domain.AttendanceRepository
	trips      domain.TripRepository
	deductions domain.DeductionRepository
}

// NewDashboardService creates a new DashboardService instance.
func NewDashboardService(
	employees domain.EmployeeRepository,
	attendance domain.AttendanceRepository,
	trips domain.TripRepository,
	deductions domain.DeductionRepository,
) *DashboardService {
	return &DashboardService{
		employees:  employees,
		attendance: attendance,
		trips:      trips,
		deductions: deductions,
	}
}

// Summary returns today's counters and the most recent records.
func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	today := time.Now()

	activeEmployees, err := s.employees.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	attendanceToday, err := s.attendance.CountOnDate(ctx, today)
	if err != nil {
		return nil, err
	}
	pending, err := s.deductions.CountByStatus(ctx, domain.DeductionStatusPending)
	if err != nil {
		return nil, err
	}
	tripsToday, err := s.trips.CountOnDate(ctx, today)
	if err != nil {
		return nil, err
	}
	recentAttendance, err := s.attendance.List(ctx, domain.AttendanceFilter{Limit: recentLimit})
	if err != nil {
		return nil, err
	}
	recentDeductions, err := s.deductions.ListRecentByStatus(ctx, domain.DeductionStatusPending, recentLimit)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		ActiveEmployees:   activeEmployees,
		AttendanceToday:   attendanceToday,
		PendingDeductions: pending,
		TripsToday:        tripsToday,
		RecentAttendance:  recentAttendance,
		RecentDeductions:  recentDeductions,
	}, nil
}
