package payroll

import "context"

// RunRepository defines access to payroll runs held by the HRIS backend.
// The backend is the only persistence; implementations talk REST.
type RunRepository interface {
	ListRuns(ctx context.Context) ([]Run, error)
	GetRun(ctx context.Context, id string) (Run, error)

	// CreateRun returns created=false when the backend did not echo the run.
	CreateRun(ctx context.Context, period Period) (run Run, created bool, err error)
	ProcessRun(ctx context.Context, id string) (run Run, echoed bool, err error)
	LockRun(ctx context.Context, id string) (run Run, echoed bool, err error)

	ListRunItems(ctx context.Context, runID string) ([]Item, error)
	// RunStatistics returns the run with its employee count and totals filled in.
	RunStatistics(ctx context.Context, id string) (Run, error)

	// Employee self-service
	ListPayslips(ctx context.Context) ([]Payslip, error)
	GetPayslip(ctx context.Context, runID string) (Payslip, error)

	// Admin access to any employee's payslips
	ListEmployeePayslips(ctx context.Context, employeeID string) ([]Payslip, error)
	GetEmployeePayslip(ctx context.Context, employeeID, runID string) (Payslip, error)
}
