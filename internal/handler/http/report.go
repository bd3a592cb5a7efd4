package http

import (
	"net/http"
	"time"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/report"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/handler/http/response"
)

type ReportHandler interface {
	GetDepartmentCost(w http.ResponseWriter, r *http.Request)
	GetMonthlyLeaveTrends(w http.ResponseWriter, r *http.Request)
	GetPayrollSummary(w http.ResponseWriter, r *http.Request)
	GetTopSpendingDepartments(w http.ResponseWriter, r *http.Request)

	// Dashboard fans out to all four reports
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct{}

func NewReportHandler() ReportHandler {
	return &reportHandlerImpl{}
}

type payrollSummaryResponse struct {
	report.PayrollSummary
	Distribution []report.Slice `json:"distribution"`
}

type dashboardSection struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error,omitempty"`
}

type dashboardResponse struct {
	DepartmentCosts   dashboardSection `json:"department_costs"`
	MonthlyLeaveStats dashboardSection `json:"monthly_leave_stats"`
	PayrollSummary    dashboardSection `json:"payroll_summary"`
	TopDepartments    dashboardSection `json:"top_departments"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// GetDepartmentCost handles GET /reports/department-cost
func (h *reportHandlerImpl) GetDepartmentCost(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	year, err := getIntQueryParam(r, "year", currentYear())
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}
	month, err := getOptionalIntQueryParam(r, "month")
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return
	}

	result, err := sess.Reports.DepartmentCosts(r.Context(), report.DepartmentCostRequest{Year: year, Month: month})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlyLeaveTrends handles GET /reports/leave-trends/monthly
func (h *reportHandlerImpl) GetMonthlyLeaveTrends(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	year, err := getIntQueryParam(r, "year", currentYear())
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	result, err := sess.Reports.MonthlyLeaveStats(r.Context(), report.YearRequest{Year: year})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPayrollSummary handles GET /reports/payroll-summary
func (h *reportHandlerImpl) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	year, err := getIntQueryParam(r, "year", currentYear())
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	result, err := sess.Reports.PayrollSummary(r.Context(), report.YearRequest{Year: year})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payrollSummaryResponse{PayrollSummary: result, Distribution: result.Distribution()})
}

// GetTopSpendingDepartments handles GET /reports/departments/top-spending
func (h *reportHandlerImpl) GetTopSpendingDepartments(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	year, err := getIntQueryParam(r, "year", currentYear())
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}
	limit, err := getIntQueryParam(r, "limit", 0)
	if err != nil {
		response.BadRequest(w, "invalid limit parameter", nil)
		return
	}

	result, err := sess.Reports.TopSpendingDepartments(r.Context(), report.TopSpendingRequest{Year: year, Limit: limit})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDashboard handles GET /reports/dashboard. Sections that failed carry
// their message and are listed in meta.failed; the rest are still served.
func (h *reportHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	year, err := getIntQueryParam(r, "year", currentYear())
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}
	month, err := getOptionalIntQueryParam(r, "month")
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return
	}
	limit, err := getIntQueryParam(r, "limit", 0)
	if err != nil {
		response.BadRequest(w, "invalid limit parameter", nil)
		return
	}

	req := report.DashboardRequest{Year: year, Month: month, Limit: limit}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	dash := sess.Reports.Dashboard(r.Context(), req)

	var failed []string
	section := func(name string, data interface{}, err error, fallback string) dashboardSection {
		if err != nil {
			failed = append(failed, name)
			return dashboardSection{Error: apperrors.UserMessage(err, fallback)}
		}
		return dashboardSection{Data: data}
	}

	var summary interface{}
	if dash.PayrollSummary.OK() {
		summary = payrollSummaryResponse{PayrollSummary: dash.PayrollSummary.Data, Distribution: dash.PayrollSummary.Data.Distribution()}
	}

	result := dashboardResponse{
		DepartmentCosts:   section("department_costs", dash.DepartmentCosts.Data, dash.DepartmentCosts.Err, "Failed to load department costs"),
		MonthlyLeaveStats: section("monthly_leave_stats", dash.MonthlyLeaveStats.Data, dash.MonthlyLeaveStats.Err, "Failed to load leave statistics"),
		PayrollSummary:    section("payroll_summary", summary, dash.PayrollSummary.Err, "Failed to load payroll summary"),
		TopDepartments:    section("top_departments", dash.TopDepartments.Data, dash.TopDepartments.Err, "Failed to load top spending departments"),
		GeneratedAt:       dash.GeneratedAt,
	}

	response.SuccessWithMeta(w, result, &response.Meta{Failed: failed})
}
