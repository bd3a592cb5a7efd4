package apiclient

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/report"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/payload"
)

// ReportClient implements report.ReportRepository.
type ReportClient struct {
	client *Client
}

func NewReportClient(client *Client) report.ReportRepository {
	return &ReportClient{client: client}
}

func (r *ReportClient) DepartmentCost(ctx context.Context, year int, month *int) ([]json.RawMessage, error) {
	query := url.Values{"year": {strconv.Itoa(year)}}
	if month != nil {
		query.Set("month", strconv.Itoa(*month))
	}
	return r.rows(ctx, "/reports/department-cost", query)
}

func (r *ReportClient) MonthlyLeaveTrends(ctx context.Context, year int) ([]json.RawMessage, error) {
	return r.rows(ctx, "/reports/leave-trends/monthly", url.Values{"year": {strconv.Itoa(year)}})
}

func (r *ReportClient) PayrollSummary(ctx context.Context, startYear, endYear int) ([]json.RawMessage, error) {
	query := url.Values{
		"startYear": {strconv.Itoa(startYear)},
		"endYear":   {strconv.Itoa(endYear)},
	}
	return r.rows(ctx, "/reports/payroll-summary", query)
}

func (r *ReportClient) TopSpendingDepartments(ctx context.Context, year, limit int) ([]json.RawMessage, error) {
	query := url.Values{
		"year":  {strconv.Itoa(year)},
		"limit": {strconv.Itoa(limit)},
	}
	return r.rows(ctx, "/reports/departments/top-spending", query)
}

// rows fetches a list report. A single object is treated as a one-row list.
func (r *ReportClient) rows(ctx context.Context, path string, query url.Values) ([]json.RawMessage, error) {
	data, err := r.client.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	if _, ok := payload.DecodeObject(data); ok {
		return []json.RawMessage{data}, nil
	}
	rows, err := payload.Rows(data)
	if err != nil {
		return nil, malformed(err)
	}
	return rows, nil
}
