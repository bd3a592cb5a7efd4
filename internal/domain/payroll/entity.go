package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusDraft     RunStatus = "DRAFT"
	RunStatusProcessed RunStatus = "PROCESSED"
	RunStatusLocked    RunStatus = "LOCKED"
)

// ParseRunStatus accepts any casing ("Draft", "draft", "DRAFT").
func ParseRunStatus(s string) (RunStatus, error) {
	switch RunStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case RunStatusDraft:
		return RunStatusDraft, nil
	case RunStatusProcessed:
		return RunStatusProcessed, nil
	case RunStatusLocked:
		return RunStatusLocked, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRunStatus, s)
	}
}

// Period - one calendar month
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Label renders the period as "June 2025".
func (p Period) Label() string {
	if p.Month < 1 || p.Month > 12 {
		return p.String()
	}
	return fmt.Sprintf("%s %d", time.Month(p.Month), p.Year)
}

// Run - one monthly payroll computation cycle
type Run struct {
	ID          string
	Period      Period
	Status      RunStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
	LockedAt    *time.Time

	// Summary fields, display only
	EmployeeCount   int
	TotalBaseSalary decimal.Decimal
	TotalBonus      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNetSalary  decimal.Decimal
}

// Consistent reports whether the run satisfies
// LockedAt set => LOCKED => ProcessedAt set.
func (r Run) Consistent() bool {
	if r.LockedAt != nil && r.Status != RunStatusLocked {
		return false
	}
	if r.Status == RunStatusLocked && (r.LockedAt == nil || r.ProcessedAt == nil) {
		return false
	}
	return true
}

// Allowed reports whether action is permitted in the run's current status.
func (r Run) Allowed(action Action) bool {
	return AllowedActions(r.Status).Has(action)
}

// Item - one employee's pay line within a run. NetSalary is computed by the
// backend and is never recomputed here.
type Item struct {
	ItemID         string
	RunID          string
	EmployeeID     string
	EmployeeName   string
	DepartmentName string
	JobTitle       string
	MonthlyBasePay decimal.Decimal
	Bonus          decimal.Decimal
	Deductions     decimal.Decimal
	NetSalary      decimal.Decimal
}

// Payslip - an employee's own item together with the run it belongs to
type Payslip struct {
	Item
	Period    Period
	RunStatus RunStatus
	PayDate   *time.Time
}
