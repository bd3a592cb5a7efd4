package report

import "context"

// ReportService reshapes backend reports into chart-ready series. Each
// method fails independently of the others.
type ReportService interface {
	DepartmentCosts(ctx context.Context, req DepartmentCostRequest) ([]DepartmentCost, error)
	MonthlyLeaveStats(ctx context.Context, req YearRequest) ([]MonthlyLeaveStat, error)
	PayrollSummary(ctx context.Context, req YearRequest) (PayrollSummary, error)
	TopSpendingDepartments(ctx context.Context, req TopSpendingRequest) ([]TopDepartment, error)

	// Dashboard fetches all four reports concurrently. It never fails as a
	// whole; each section carries its own error.
	Dashboard(ctx context.Context, req DashboardRequest) Dashboard
}
