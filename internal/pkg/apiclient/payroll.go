package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/payroll"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/payload"
)

// PayrollClient implements payroll.RunRepository over the HRIS REST API.
type PayrollClient struct {
	client *Client
}

func NewPayrollClient(client *Client) payroll.RunRepository {
	return &PayrollClient{client: client}
}

func (p *PayrollClient) ListRuns(ctx context.Context) ([]payroll.Run, error) {
	data, err := p.client.Get(ctx, "/payroll/runs", nil)
	if err != nil {
		return nil, err
	}
	rows, err := payload.Rows(data)
	if err != nil {
		return nil, malformed(err)
	}

	runs := make([]payroll.Run, 0, len(rows))
	for _, row := range rows {
		run, err := RunFromPayload(row)
		if err != nil {
			return nil, malformed(err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (p *PayrollClient) GetRun(ctx context.Context, id string) (payroll.Run, error) {
	data, err := p.client.Get(ctx, "/payroll/runs/"+url.PathEscape(id), nil)
	if err != nil {
		return payroll.Run{}, err
	}
	if payload.IsNull(data) {
		return payroll.Run{}, payroll.NotFound("Payroll run", id)
	}
	run, err := RunFromPayload(data)
	if err != nil {
		return payroll.Run{}, malformed(err)
	}
	return run, nil
}

func (p *PayrollClient) CreateRun(ctx context.Context, period payroll.Period) (payroll.Run, bool, error) {
	data, err := p.client.Post(ctx, "/payroll/runs", map[string]int{"year": period.Year, "month": period.Month})
	if err != nil {
		return payroll.Run{}, false, err
	}
	return echoedRun(data)
}

func (p *PayrollClient) ProcessRun(ctx context.Context, id string) (payroll.Run, bool, error) {
	data, err := p.client.Post(ctx, fmt.Sprintf("/payroll/runs/%s/process", url.PathEscape(id)), nil)
	if err != nil {
		return payroll.Run{}, false, err
	}
	return echoedRun(data)
}

func (p *PayrollClient) LockRun(ctx context.Context, id string) (payroll.Run, bool, error) {
	data, err := p.client.Post(ctx, fmt.Sprintf("/payroll/runs/%s/lock", url.PathEscape(id)), nil)
	if err != nil {
		return payroll.Run{}, false, err
	}
	return echoedRun(data)
}

func (p *PayrollClient) ListRunItems(ctx context.Context, runID string) ([]payroll.Item, error) {
	data, err := p.client.Get(ctx, fmt.Sprintf("/payroll/runs/%s/items", url.PathEscape(runID)), nil)
	if err != nil {
		return nil, err
	}
	rows, err := payload.Rows(data)
	if err != nil {
		return nil, malformed(err)
	}

	items := make([]payroll.Item, 0, len(rows))
	for _, row := range rows {
		item, err := ItemFromPayload(row)
		if err != nil {
			return nil, malformed(err)
		}
		if item.RunID == "" {
			item.RunID = runID
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *PayrollClient) RunStatistics(ctx context.Context, id string) (payroll.Run, error) {
	data, err := p.client.Get(ctx, fmt.Sprintf("/payroll/runs/%s/statistics", url.PathEscape(id)), nil)
	if err != nil {
		return payroll.Run{}, err
	}
	if payload.IsNull(data) {
		return payroll.Run{}, payroll.NotFound("Payroll run", id)
	}
	run, err := RunFromPayload(data)
	if err != nil {
		return payroll.Run{}, malformed(err)
	}
	return run, nil
}

func (p *PayrollClient) ListPayslips(ctx context.Context) ([]payroll.Payslip, error) {
	return p.listPayslips(ctx, "/payroll/payslips")
}

func (p *PayrollClient) GetPayslip(ctx context.Context, runID string) (payroll.Payslip, error) {
	return p.getPayslip(ctx, "/payroll/payslips/"+url.PathEscape(runID), runID)
}

func (p *PayrollClient) ListEmployeePayslips(ctx context.Context, employeeID string) ([]payroll.Payslip, error) {
	return p.listPayslips(ctx, fmt.Sprintf("/payroll/employees/%s/payslips", url.PathEscape(employeeID)))
}

func (p *PayrollClient) GetEmployeePayslip(ctx context.Context, employeeID, runID string) (payroll.Payslip, error) {
	path := fmt.Sprintf("/payroll/employees/%s/payslips/%s", url.PathEscape(employeeID), url.PathEscape(runID))
	return p.getPayslip(ctx, path, runID)
}

func (p *PayrollClient) listPayslips(ctx context.Context, path string) ([]payroll.Payslip, error) {
	data, err := p.client.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	rows, err := payload.Rows(data)
	if err != nil {
		return nil, malformed(err)
	}

	slips := make([]payroll.Payslip, 0, len(rows))
	for _, row := range rows {
		slip, err := PayslipFromPayload(row)
		if err != nil {
			return nil, malformed(err)
		}
		slips = append(slips, slip)
	}
	return slips, nil
}

func (p *PayrollClient) getPayslip(ctx context.Context, path, runID string) (payroll.Payslip, error) {
	data, err := p.client.Get(ctx, path, nil)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if payload.IsNull(data) {
		return payroll.Payslip{}, payroll.NotFound("Payslip", runID)
	}
	slip, err := PayslipFromPayload(data)
	if err != nil {
		return payroll.Payslip{}, malformed(err)
	}
	return slip, nil
}

// echoedRun decodes a run the backend may or may not have sent back.
func echoedRun(data json.RawMessage) (payroll.Run, bool, error) {
	if payload.IsNull(data) {
		return payroll.Run{}, false, nil
	}
	run, err := RunFromPayload(data)
	if err != nil {
		return payroll.Run{}, false, malformed(err)
	}
	return run, true, nil
}

// RunFromPayload maps one backend run object onto payroll.Run. The backend
// has been seen sending runId/id, runYear/year and runMonth/month, and the
// status in any casing.
func RunFromPayload(raw json.RawMessage) (payroll.Run, error) {
	obj, ok := payload.DecodeObject(raw)
	if !ok {
		return payroll.Run{}, fmt.Errorf("%w: not an object", payroll.ErrMalformedRun)
	}

	id := payload.String(obj, "runId", "id", "payrollRunId")
	if id == "" {
		return payroll.Run{}, fmt.Errorf("%w: missing id", payroll.ErrMalformedRun)
	}
	status, err := payroll.ParseRunStatus(payload.String(obj, "status", "runStatus"))
	if err != nil {
		return payroll.Run{}, err
	}

	run := payroll.Run{
		ID: id,
		Period: payroll.Period{
			Year:  payload.Int(obj, "runYear", "year"),
			Month: payload.Int(obj, "runMonth", "month"),
		},
		Status:          status,
		ProcessedAt:     payload.Time(obj, "processedAt"),
		LockedAt:        payload.Time(obj, "lockedAt"),
		EmployeeCount:   payload.Int(obj, "employeeCount", "totalEmployees"),
		TotalBaseSalary: payload.Decimal(obj, "totalBaseSalary"),
		TotalBonus:      payload.Decimal(obj, "totalBonus"),
		TotalDeductions: payload.Decimal(obj, "totalDeductions"),
		TotalNetSalary:  payload.Decimal(obj, "totalNetSalary"),
	}
	if created := payload.Time(obj, "createdAt"); created != nil {
		run.CreatedAt = *created
	}
	return run, nil
}

// ItemFromPayload maps one backend payroll item onto payroll.Item.
func ItemFromPayload(raw json.RawMessage) (payroll.Item, error) {
	obj, ok := payload.DecodeObject(raw)
	if !ok {
		return payroll.Item{}, fmt.Errorf("%w: item is not an object", payroll.ErrMalformedRun)
	}

	name := payload.String(obj, "employeeName", "fullName")
	if name == "" {
		first := payload.String(obj, "firstName")
		last := payload.String(obj, "lastName")
		switch {
		case first != "" && last != "":
			name = first + " " + last
		default:
			name = first + last
		}
	}

	return payroll.Item{
		ItemID:         payload.String(obj, "itemId", "payrollItemId", "id"),
		RunID:          payload.String(obj, "runId"),
		EmployeeID:     payload.String(obj, "employeeId"),
		EmployeeName:   name,
		DepartmentName: payload.String(obj, "departmentName"),
		JobTitle:       payload.String(obj, "jobTitle"),
		MonthlyBasePay: payload.Decimal(obj, "baseSalary", "monthlyBasePay"),
		Bonus:          payload.Decimal(obj, "bonus"),
		Deductions:     payload.Decimal(obj, "deductions"),
		NetSalary:      payload.Decimal(obj, "netSalary"),
	}, nil
}

// PayslipFromPayload maps a payslip, which is an item carrying its run's
// period and status.
func PayslipFromPayload(raw json.RawMessage) (payroll.Payslip, error) {
	item, err := ItemFromPayload(raw)
	if err != nil {
		return payroll.Payslip{}, err
	}
	obj, _ := payload.DecodeObject(raw)

	slip := payroll.Payslip{
		Item: item,
		Period: payroll.Period{
			Year:  payload.Int(obj, "runYear", "year"),
			Month: payload.Int(obj, "runMonth", "month"),
		},
		PayDate: payload.Time(obj, "payDate"),
	}
	if status, err := payroll.ParseRunStatus(payload.String(obj, "runStatus", "status")); err == nil {
		slip.RunStatus = status
	}
	return slip, nil
}

func malformed(err error) error {
	return apperrors.New(apperrors.ErrServer, 0, MessageUnexpected, err)
}
