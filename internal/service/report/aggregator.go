package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/notification"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/report"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
	notifier   notification.Notifier
	logger     *slog.Logger
}

func NewReportService(reportRepo report.ReportRepository, notifier notification.Notifier, logger *slog.Logger) report.ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// DepartmentCosts returns one bar per department, costed by net salary.
func (s *ReportServiceImpl) DepartmentCosts(ctx context.Context, req report.DepartmentCostRequest) ([]report.DepartmentCost, error) {
	if err := req.Validate(); err != nil {
		return nil, s.rejected("department cost", err)
	}

	rows, err := s.reportRepo.DepartmentCost(ctx, req.Year, req.Month)
	if err != nil {
		return nil, s.fail("department cost", err, "Failed to load department costs")
	}
	return normalizeDepartmentCosts(rows), nil
}

// MonthlyLeaveStats returns twelve months of leave counts for a year.
func (s *ReportServiceImpl) MonthlyLeaveStats(ctx context.Context, req report.YearRequest) ([]report.MonthlyLeaveStat, error) {
	if err := req.Validate(); err != nil {
		return nil, s.rejected("monthly leave stats", err)
	}

	rows, err := s.reportRepo.MonthlyLeaveTrends(ctx, req.Year)
	if err != nil {
		return nil, s.fail("monthly leave stats", err, "Failed to load leave statistics")
	}
	return normalizeMonthlyLeaveStats(rows), nil
}

// PayrollSummary totals a single year of payroll.
func (s *ReportServiceImpl) PayrollSummary(ctx context.Context, req report.YearRequest) (report.PayrollSummary, error) {
	if err := req.Validate(); err != nil {
		return report.PayrollSummary{}, s.rejected("payroll summary", err)
	}

	rows, err := s.reportRepo.PayrollSummary(ctx, req.Year, req.Year)
	if err != nil {
		return report.PayrollSummary{}, s.fail("payroll summary", err, "Failed to load payroll summary")
	}
	return normalizePayrollSummary(req.Year, rows), nil
}

// TopSpendingDepartments ranks departments by cost and keeps the first limit.
func (s *ReportServiceImpl) TopSpendingDepartments(ctx context.Context, req report.TopSpendingRequest) ([]report.TopDepartment, error) {
	if err := req.Validate(); err != nil {
		return nil, s.rejected("top spending departments", err)
	}

	rows, err := s.reportRepo.TopSpendingDepartments(ctx, req.Year, req.Limit)
	if err != nil {
		return nil, s.fail("top spending departments", err, "Failed to load top spending departments")
	}
	return normalizeTopDepartments(rows, req.Limit), nil
}

// Dashboard issues the four report requests concurrently. A failure in one
// section never cancels or hides the others.
func (s *ReportServiceImpl) Dashboard(ctx context.Context, req report.DashboardRequest) report.Dashboard {
	var dash report.Dashboard
	if err := req.Validate(); err != nil {
		err = s.rejected("dashboard", err)
		dash.DepartmentCosts.Err = err
		dash.MonthlyLeaveStats.Err = err
		dash.PayrollSummary.Err = err
		dash.TopDepartments.Err = err
		dash.GeneratedAt = time.Now()
		return dash
	}

	// Sections share no context; a failing one cancels nothing
	var g errgroup.Group

	g.Go(func() error {
		dash.DepartmentCosts.Data, dash.DepartmentCosts.Err = s.DepartmentCosts(ctx, report.DepartmentCostRequest{Year: req.Year, Month: req.Month})
		return nil
	})
	g.Go(func() error {
		dash.MonthlyLeaveStats.Data, dash.MonthlyLeaveStats.Err = s.MonthlyLeaveStats(ctx, report.YearRequest{Year: req.Year})
		return nil
	})
	g.Go(func() error {
		dash.PayrollSummary.Data, dash.PayrollSummary.Err = s.PayrollSummary(ctx, report.YearRequest{Year: req.Year})
		return nil
	})
	g.Go(func() error {
		dash.TopDepartments.Data, dash.TopDepartments.Err = s.TopSpendingDepartments(ctx, report.TopSpendingRequest{Year: req.Year, Limit: req.Limit})
		return nil
	})

	_ = g.Wait()
	dash.GeneratedAt = time.Now()

	if failed := dash.Failed(); failed > 0 {
		s.logger.Warn("dashboard rendered with missing sections", "failed", failed, "year", req.Year)
	}
	return dash
}

func (s *ReportServiceImpl) fail(name string, err error, fallback string) error {
	s.notifier.Notify(notification.LevelError, apperrors.UserMessage(err, fallback))
	s.logger.Warn("report fetch failed", "report", name, "error", err)
	return fmt.Errorf("failed to get %s: %w", name, err)
}

// rejected reports a request that never reached the backend.
func (s *ReportServiceImpl) rejected(name string, err error) error {
	s.notifier.Notify(notification.LevelError, err.Error())
	s.logger.Info("report request rejected", "report", name, "error", err)
	return err
}
