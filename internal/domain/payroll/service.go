package payroll

import "context"

// RunStore is the per-session source of truth for the payroll runs an admin
// sees. Every mutating call either confirms its local change from the server
// or resynchronizes the whole list.
type RunStore interface {
	// Runs returns the last-known list, sorted.
	Runs() []Run
	Run(id string) (Run, bool)

	ListRuns(ctx context.Context) ([]Run, error)
	FetchRun(ctx context.Context, id string) (Run, error)
	CreateRun(ctx context.Context, year, month int) (Run, error)
	ProcessRun(ctx context.Context, id string) (Run, error)
	LockRun(ctx context.Context, id string) (Run, error)
	RunStatistics(ctx context.Context, id string) (Run, error)

	// Items are never cached across runs
	ListRunItems(ctx context.Context, runID string) ([]Item, error)
	OpenItems(ctx context.Context, runID string) (ItemsView, error)
	ItemsView() (ItemsView, bool)
	CloseItems()
}

// PayslipService serves an employee's own payslips, and any employee's
// payslips to an admin.
type PayslipService interface {
	MyPayslips(ctx context.Context) ([]Payslip, error)
	MyPayslip(ctx context.Context, runID string) (Payslip, error)
	EmployeePayslips(ctx context.Context, employeeID string) ([]Payslip, error)
	EmployeePayslip(ctx context.Context, employeeID, runID string) (Payslip, error)
}
