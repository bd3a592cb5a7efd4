package report

import (
	"time"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// REQUESTS
// ========================================

const (
	minReportYear   = 2000
	maxReportYear   = 2100
	defaultTopLimit = 5
	maxTopLimit     = 50
)

type DepartmentCostRequest struct {
	Year  int  `json:"year"`
	Month *int `json:"month,omitempty"`
}

func (r *DepartmentCostRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = appendYearError(errs, r.Year)
	if r.Month != nil && (*r.Month < 1 || *r.Month > 12) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type YearRequest struct {
	Year int `json:"year"`
}

func (r *YearRequest) Validate() error {
	if errs := appendYearError(nil, r.Year); len(errs) > 0 {
		return errs
	}
	return nil
}

type TopSpendingRequest struct {
	Year  int `json:"year"`
	Limit int `json:"limit"`
}

// Validate defaults a zero limit.
func (r *TopSpendingRequest) Validate() error {
	errs := appendYearError(nil, r.Year)
	if r.Limit == 0 {
		r.Limit = defaultTopLimit
	}
	if r.Limit < 1 || r.Limit > maxTopLimit {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "must be between 1 and 50"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DashboardRequest struct {
	Year  int  `json:"year"`
	Month *int `json:"month,omitempty"`
	Limit int  `json:"limit"`
}

func (r *DashboardRequest) Validate() error {
	costs := DepartmentCostRequest{Year: r.Year, Month: r.Month}
	if err := costs.Validate(); err != nil {
		return err
	}
	top := TopSpendingRequest{Year: r.Year, Limit: r.Limit}
	if err := top.Validate(); err != nil {
		return err
	}
	r.Limit = top.Limit
	return nil
}

func appendYearError(errs validator.ValidationErrors, year int) validator.ValidationErrors {
	if year < minReportYear || year > maxReportYear {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	return errs
}

// ========================================
// SERIES
// ========================================

// DepartmentCost is one bar of the department cost chart. TotalCost is the
// department's net salary total and nothing else.
type DepartmentCost struct {
	DepartmentID   string          `json:"department_id,omitempty"`
	DepartmentName string          `json:"department_name"`
	EmployeeCount  int             `json:"employee_count"`
	TotalCost      decimal.Decimal `json:"total_cost"`
}

// MonthlyLeaveStat is one month of leave request counts.
type MonthlyLeaveStat struct {
	Month    int    `json:"month"`
	Label    string `json:"label"`
	Total    int    `json:"total"`
	Approved int    `json:"approved"`
	Pending  int    `json:"pending"`
	Rejected int    `json:"rejected"`
}

// PayrollSummary totals one year of payroll.
type PayrollSummary struct {
	Year            int             `json:"year"`
	TotalEmployees  int             `json:"total_employees"`
	TotalBaseSalary decimal.Decimal `json:"total_base_salary"`
	TotalBonus      decimal.Decimal `json:"total_bonus"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetSalary  decimal.Decimal `json:"total_net_salary"`
}

// Slice is one segment of a pie chart.
type Slice struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Distribution returns the base/bonus/deductions breakdown, leaving out
// zero-valued slices.
func (s PayrollSummary) Distribution() []Slice {
	candidates := []Slice{
		{Label: "Base Salary", Value: s.TotalBaseSalary},
		{Label: "Bonus", Value: s.TotalBonus},
		{Label: "Deductions", Value: s.TotalDeductions},
	}
	out := make([]Slice, 0, len(candidates))
	for _, c := range candidates {
		if !c.Value.IsZero() {
			out = append(out, c)
		}
	}
	return out
}

type TopDepartment struct {
	DepartmentID   string          `json:"department_id,omitempty"`
	DepartmentName string          `json:"department_name"`
	EmployeeCount  int             `json:"employee_count"`
	TotalCost      decimal.Decimal `json:"total_cost"`
}

// ========================================
// DASHBOARD
// ========================================

// Section is one independently fetched part of the dashboard. Exactly one
// of Data or Err is meaningful.
type Section[T any] struct {
	Data T
	Err  error
}

func (s Section[T]) OK() bool { return s.Err == nil }

type Dashboard struct {
	DepartmentCosts   Section[[]DepartmentCost]
	MonthlyLeaveStats Section[[]MonthlyLeaveStat]
	PayrollSummary    Section[PayrollSummary]
	TopDepartments    Section[[]TopDepartment]
	GeneratedAt       time.Time
}

// Failed counts the sections that could not be fetched.
func (d Dashboard) Failed() int {
	n := 0
	for _, ok := range []bool{d.DepartmentCosts.OK(), d.MonthlyLeaveStats.OK(), d.PayrollSummary.OK(), d.TopDepartments.OK()} {
		if !ok {
			n++
		}
	}
	return n
}
