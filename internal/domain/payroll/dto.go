package payroll

import (
	"fmt"
	"time"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== RUN DTOs ==========

type CreateRunRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Validate checks the period against the configured year bounds.
func (r *CreateRunRequest) Validate(minYear, maxYear int) error {
	var errs validator.ValidationErrors

	if r.Year < minYear || r.Year > maxYear {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("must be between %d and %d", minYear, maxYear),
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunResponse struct {
	ID              string          `json:"id"`
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	Label           string          `json:"label"`
	Status          RunStatus       `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	LockedAt        *time.Time      `json:"locked_at,omitempty"`
	EmployeeCount   int             `json:"employee_count"`
	TotalBaseSalary decimal.Decimal `json:"total_base_salary"`
	TotalBonus      decimal.Decimal `json:"total_bonus"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetSalary  decimal.Decimal `json:"total_net_salary"`

	// Controls the presentation layer should enable
	AllowedActions []Action `json:"allowed_actions"`
	Busy           bool     `json:"busy"`
}

// NewRunResponse renders run for display. A busy run exposes no mutating
// actions until its in-flight request settles.
func NewRunResponse(run Run, busy bool) RunResponse {
	allowed := AllowedActions(run.Status)
	if busy {
		allowed = allowed.Without(MutatingActions...)
	}
	return RunResponse{
		ID:              run.ID,
		Year:            run.Period.Year,
		Month:           run.Period.Month,
		Label:           run.Period.Label(),
		Status:          run.Status,
		CreatedAt:       run.CreatedAt,
		ProcessedAt:     run.ProcessedAt,
		LockedAt:        run.LockedAt,
		EmployeeCount:   run.EmployeeCount,
		TotalBaseSalary: run.TotalBaseSalary,
		TotalBonus:      run.TotalBonus,
		TotalDeductions: run.TotalDeductions,
		TotalNetSalary:  run.TotalNetSalary,
		AllowedActions:  allowed.Sorted(),
		Busy:            busy,
	}
}

type RunStatisticsResponse struct {
	RunResponse
	AverageNetSalary decimal.Decimal `json:"average_net_salary"`
}

// NewRunStatisticsResponse adds the per-employee average net salary, zero
// for a run nobody was paid in.
func NewRunStatisticsResponse(run Run, busy bool) RunStatisticsResponse {
	avg := decimal.Zero
	if run.EmployeeCount > 0 {
		avg = run.TotalNetSalary.Div(decimal.NewFromInt(int64(run.EmployeeCount))).Round(2)
	}
	return RunStatisticsResponse{RunResponse: NewRunResponse(run, busy), AverageNetSalary: avg}
}

// ========== ITEM DTOs ==========

type ItemResponse struct {
	ItemID         string          `json:"item_id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	DepartmentName string          `json:"department_name,omitempty"`
	JobTitle       string          `json:"job_title,omitempty"`
	MonthlyBasePay decimal.Decimal `json:"monthly_base_pay"`
	Bonus          decimal.Decimal `json:"bonus"`
	Deductions     decimal.Decimal `json:"deductions"`
	NetSalary      decimal.Decimal `json:"net_salary"`
}

func NewItemResponse(item Item) ItemResponse {
	return ItemResponse{
		ItemID:         item.ItemID,
		EmployeeID:     item.EmployeeID,
		EmployeeName:   item.EmployeeName,
		DepartmentName: item.DepartmentName,
		JobTitle:       item.JobTitle,
		MonthlyBasePay: item.MonthlyBasePay,
		Bonus:          item.Bonus,
		Deductions:     item.Deductions,
		NetSalary:      item.NetSalary,
	}
}

// ItemsView is the items listing for the run an admin is currently inspecting.
type ItemsView struct {
	RunID     string    `json:"run_id"`
	Items     []Item    `json:"-"`
	FetchedAt time.Time `json:"fetched_at"`
}

type ItemsViewResponse struct {
	RunID     string         `json:"run_id"`
	FetchedAt time.Time      `json:"fetched_at"`
	Items     []ItemResponse `json:"items"`
}

func NewItemsViewResponse(view ItemsView) ItemsViewResponse {
	items := make([]ItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, NewItemResponse(item))
	}
	return ItemsViewResponse{RunID: view.RunID, FetchedAt: view.FetchedAt, Items: items}
}

// ========== PAYSLIP DTOs ==========

type PayslipResponse struct {
	ItemResponse
	RunID     string     `json:"run_id"`
	Year      int        `json:"year"`
	Month     int        `json:"month"`
	RunStatus RunStatus  `json:"run_status"`
	PayDate   *time.Time `json:"pay_date,omitempty"`
}

func NewPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ItemResponse: NewItemResponse(p.Item),
		RunID:        p.RunID,
		Year:         p.Period.Year,
		Month:        p.Period.Month,
		RunStatus:    p.RunStatus,
		PayDate:      p.PayDate,
	}
}
