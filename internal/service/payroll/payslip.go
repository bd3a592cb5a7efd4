package payroll

import (
	"context"
	"log/slog"
	"sort"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/notification"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/payroll"
)

type PayslipServiceImpl struct {
	repo     payroll.RunRepository
	notifier notification.Notifier
	logger   *slog.Logger
}

func NewPayslipService(repo payroll.RunRepository, notifier notification.Notifier, logger *slog.Logger) payroll.PayslipService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayslipServiceImpl{repo: repo, notifier: notifier, logger: logger}
}

// MyPayslips returns the caller's payslips, most recent period first.
func (s *PayslipServiceImpl) MyPayslips(ctx context.Context) ([]payroll.Payslip, error) {
	slips, err := s.repo.ListPayslips(ctx)
	if err != nil {
		s.notifier.Notify(notification.LevelError, apperrors.UserMessage(err, "Failed to fetch payslips"))
		s.logger.Warn("payslips could not be fetched", "error", err)
		return nil, err
	}
	newestFirst(slips)
	return slips, nil
}

func (s *PayslipServiceImpl) MyPayslip(ctx context.Context, runID string) (payroll.Payslip, error) {
	slip, err := s.repo.GetPayslip(ctx, runID)
	if err != nil {
		s.notifier.Notify(notification.LevelError, apperrors.UserMessage(err, "Failed to fetch payslip"))
		s.logger.Warn("payslip could not be fetched", "run_id", runID, "error", err)
		return payroll.Payslip{}, err
	}
	return slip, nil
}

// EmployeePayslips returns one employee's payslips, most recent period first.
func (s *PayslipServiceImpl) EmployeePayslips(ctx context.Context, employeeID string) ([]payroll.Payslip, error) {
	slips, err := s.repo.ListEmployeePayslips(ctx, employeeID)
	if err != nil {
		s.notifier.Notify(notification.LevelError, apperrors.UserMessage(err, "Failed to fetch employee payslips"))
		s.logger.Warn("employee payslips could not be fetched", "employee_id", employeeID, "error", err)
		return nil, err
	}
	newestFirst(slips)
	return slips, nil
}

func (s *PayslipServiceImpl) EmployeePayslip(ctx context.Context, employeeID, runID string) (payroll.Payslip, error) {
	slip, err := s.repo.GetEmployeePayslip(ctx, employeeID, runID)
	if err != nil {
		s.notifier.Notify(notification.LevelError, apperrors.UserMessage(err, "Failed to fetch employee payslip"))
		s.logger.Warn("employee payslip could not be fetched", "employee_id", employeeID, "run_id", runID, "error", err)
		return payroll.Payslip{}, err
	}
	return slip, nil
}

func newestFirst(slips []payroll.Payslip) {
	sort.SliceStable(slips, func(i, j int) bool {
		a, b := slips[i].Period, slips[j].Period
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Month > b.Month
	})
}
