package report

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/notification"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReports struct {
	costs, leave, summary, top []json.RawMessage
	failing                    map[string]error
	gotStartYear, gotEndYear   int
}

func rows(t *testing.T, s string) []json.RawMessage {
	t.Helper()
	var out []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &out))
	return out
}

func (f *fakeReports) DepartmentCost(ctx context.Context, year int, month *int) ([]json.RawMessage, error) {
	if err := f.failing["costs"]; err != nil {
		return nil, err
	}
	return f.costs, nil
}

func (f *fakeReports) MonthlyLeaveTrends(ctx context.Context, year int) ([]json.RawMessage, error) {
	if err := f.failing["leave"]; err != nil {
		return nil, err
	}
	return f.leave, nil
}

func (f *fakeReports) PayrollSummary(ctx context.Context, startYear, endYear int) ([]json.RawMessage, error) {
	f.gotStartYear, f.gotEndYear = startYear, endYear
	if err := f.failing["summary"]; err != nil {
		return nil, err
	}
	return f.summary, nil
}

func (f *fakeReports) TopSpendingDepartments(ctx context.Context, year, limit int) ([]json.RawMessage, error) {
	if err := f.failing["top"]; err != nil {
		return nil, err
	}
	return f.top, nil
}

type notes struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notes) Notify(level notification.Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, message)
}

func newTestService(repo report.ReportRepository) (report.ReportService, *notes) {
	n := &notes{}
	return NewReportService(repo, n, nil), n
}

// Cost comes from net salary only; base salary is never added in
func TestDepartmentCosts_UsesNetSalaryOnly(t *testing.T) {
	repo := &fakeReports{costs: rows(t, `[
		{"departmentId":"d1","departmentName":"Engineering","employeeCount":4,"totalBaseSalary":400000,"totalBonus":20000,"totalNetSalary":390000},
		{"departmentName":"Sales","totalBaseSalary":100000},
		{"departmentName":"Ops","totalNetSalary":"not-a-number"}
	]`)}
	svc, _ := newTestService(repo)

	got, err := svc.DepartmentCosts(context.Background(), report.DepartmentCostRequest{Year: 2025})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Engineering", got[0].DepartmentName)
	assert.Equal(t, "390000", got[0].TotalCost.String())
	assert.True(t, got[1].TotalCost.IsZero(), "base salary must not stand in for cost")
	assert.True(t, got[2].TotalCost.IsZero(), "malformed numbers resolve to zero")
}

func TestMonthlyLeaveStats_Positional(t *testing.T) {
	repo := &fakeReports{leave: rows(t, `[[10,6,3,1],[8,8,0,0],[5,"2",null,"x"]]`)}
	svc, _ := newTestService(repo)

	got, err := svc.MonthlyLeaveStats(context.Background(), report.YearRequest{Year: 2025})
	require.NoError(t, err)
	require.Len(t, got, 12)

	assert.Equal(t, report.MonthlyLeaveStat{Month: 1, Label: "January", Total: 10, Approved: 6, Pending: 3, Rejected: 1}, got[0])
	assert.Equal(t, 8, got[1].Approved)
	assert.Equal(t, report.MonthlyLeaveStat{Month: 3, Label: "March", Total: 5, Approved: 2}, got[2])
	assert.Equal(t, report.MonthlyLeaveStat{Month: 12, Label: "December"}, got[11])
}

func TestMonthlyLeaveStats_Named(t *testing.T) {
	repo := &fakeReports{leave: rows(t, `[
		{"month": 3, "totalRequests": 7, "approvedRequests": 4, "pendingRequests": 2, "rejectedRequests": 1},
		{"monthName": "JUNE", "total": 2, "approved": 2},
		{"month": "Dec", "total": 1, "rejected": 1},
		{"month": 13, "total": 99}
	]`)}
	svc, _ := newTestService(repo)

	got, err := svc.MonthlyLeaveStats(context.Background(), report.YearRequest{Year: 2025})
	require.NoError(t, err)
	require.Len(t, got, 12)

	assert.Equal(t, report.MonthlyLeaveStat{Month: 3, Label: "March", Total: 7, Approved: 4, Pending: 2, Rejected: 1}, got[2])
	assert.Equal(t, 2, got[5].Approved)
	assert.Equal(t, 1, got[11].Rejected)
	assert.Zero(t, got[0].Total)
	for _, m := range got {
		assert.NotEqual(t, 99, m.Total)
	}
}

func TestPayrollSummary_SumsRowsAndDropsZeroSlices(t *testing.T) {
	repo := &fakeReports{summary: rows(t, `[
		{"year":2025,"month":1,"totalEmployees":10,"totalBaseSalary":1000,"totalBonus":0,"totalDeductions":100,"totalNetSalary":900},
		{"year":2025,"month":2,"totalEmployees":12,"totalBaseSalary":"1200.50","totalDeductions":50,"totalNetSalary":1150.5}
	]`)}
	svc, _ := newTestService(repo)

	got, err := svc.PayrollSummary(context.Background(), report.YearRequest{Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 2025, repo.gotStartYear)
	assert.Equal(t, 2025, repo.gotEndYear)

	assert.Equal(t, "2200.5", got.TotalBaseSalary.String())
	assert.True(t, got.TotalBonus.IsZero())
	assert.Equal(t, "150", got.TotalDeductions.String())
	assert.Equal(t, 12, got.TotalEmployees)

	slices := got.Distribution()
	require.Len(t, slices, 2)
	assert.Equal(t, "Base Salary", slices[0].Label)
	assert.Equal(t, "Deductions", slices[1].Label)
}

func TestPayrollSummary_ThreeSlices(t *testing.T) {
	repo := &fakeReports{summary: rows(t, `[{"totalBaseSalary":10,"totalBonus":1,"totalDeductions":2}]`)}
	svc, _ := newTestService(repo)

	got, err := svc.PayrollSummary(context.Background(), report.YearRequest{Year: 2025})
	require.NoError(t, err)
	assert.Len(t, got.Distribution(), 3)
}

func TestTopSpendingDepartments_StableDescending(t *testing.T) {
	repo := &fakeReports{top: rows(t, `[
		{"departmentName":"A","totalNetSalary":100},
		{"departmentName":"B","totalNetSalary":300},
		{"departmentName":"C","totalNetSalary":100},
		{"departmentName":"D","totalNetSalary":200},
		{"departmentName":"E","totalNetSalary":100}
	]`)}
	svc, _ := newTestService(repo)

	got, err := svc.TopSpendingDepartments(context.Background(), report.TopSpendingRequest{Year: 2025, Limit: 4})
	require.NoError(t, err)

	names := []string{}
	for _, d := range got {
		names = append(names, d.DepartmentName)
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, names)
}

func TestReportRequests_Validate(t *testing.T) {
	svc, n := newTestService(&fakeReports{})

	_, err := svc.MonthlyLeaveStats(context.Background(), report.YearRequest{Year: 1999})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	bad := 13
	_, err = svc.DepartmentCosts(context.Background(), report.DepartmentCostRequest{Year: 2025, Month: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.TopSpendingDepartments(context.Background(), report.TopSpendingRequest{Year: 2025, Limit: 500})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.PayrollSummary(context.Background(), report.YearRequest{Year: 3000})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	require.Len(t, n.msgs, 4, "every rejected request is reported once")
	assert.Contains(t, n.msgs[0], "year")
	assert.Contains(t, n.msgs[1], "month")
	assert.Contains(t, n.msgs[2], "limit")
}

// One failing report leaves the other three usable
func TestDashboard_PartialFailure(t *testing.T) {
	repo := &fakeReports{
		costs:   rows(t, `[{"departmentName":"Engineering","totalNetSalary":10}]`),
		leave:   rows(t, `[[1,1,0,0]]`),
		top:     rows(t, `[{"departmentName":"Engineering","totalNetSalary":10}]`),
		failing: map[string]error{"summary": apperrors.New(apperrors.ErrServer, http.StatusInternalServerError, "Internal Server Error", nil)},
	}
	svc, n := newTestService(repo)

	dash := svc.Dashboard(context.Background(), report.DashboardRequest{Year: 2025})

	assert.Equal(t, 1, dash.Failed())
	assert.ErrorIs(t, dash.PayrollSummary.Err, apperrors.ErrServer)

	require.True(t, dash.DepartmentCosts.OK())
	assert.Len(t, dash.DepartmentCosts.Data, 1)
	require.True(t, dash.MonthlyLeaveStats.OK())
	assert.Len(t, dash.MonthlyLeaveStats.Data, 12)
	require.True(t, dash.TopDepartments.OK())
	assert.Len(t, dash.TopDepartments.Data, 1)

	assert.Equal(t, []string{"Internal Server Error"}, n.msgs)
	assert.False(t, dash.GeneratedAt.IsZero())
}

func TestDashboard_InvalidRequestFailsEverySection(t *testing.T) {
	svc, n := newTestService(&fakeReports{})
	dash := svc.Dashboard(context.Background(), report.DashboardRequest{Year: 1800})
	assert.Equal(t, 4, dash.Failed())
	assert.ErrorIs(t, dash.PayrollSummary.Err, apperrors.ErrValidation)
	require.Len(t, n.msgs, 1, "one notification for the whole dashboard")
	assert.Contains(t, n.msgs[0], "year")
}
