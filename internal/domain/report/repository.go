package report

import (
	"context"
	"encoding/json"
)

// ReportRepository fetches raw report rows from the HRIS backend. Rows are
// left undecoded because their shapes vary; the aggregator normalizes them.
type ReportRepository interface {
	DepartmentCost(ctx context.Context, year int, month *int) ([]json.RawMessage, error)
	MonthlyLeaveTrends(ctx context.Context, year int) ([]json.RawMessage, error)
	PayrollSummary(ctx context.Context, startYear, endYear int) ([]json.RawMessage, error)
	TopSpendingDepartments(ctx context.Context, year, limit int) ([]json.RawMessage, error)
}
