package report

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/report"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/payload"
	"github.com/shopspring/decimal"
)

// costKey is the one field a department's cost is read from.
const costKey = "totalNetSalary"

var departmentNameKeys = []string{"departmentName", "department", "name"}

// Positional layout of a monthly leave row: [total, approved, pending, rejected].
// Rows are assumed to be twelve, January first.
const (
	leaveTotalIdx = iota
	leaveApprovedIdx
	leavePendingIdx
	leaveRejectedIdx
)

var (
	leaveTotalKeys    = []string{"total", "totalRequests", "totalLeaves", "count"}
	leaveApprovedKeys = []string{"approved", "approvedRequests", "approvedLeaves", "approvedCount"}
	leavePendingKeys  = []string{"pending", "pendingRequests", "pendingLeaves", "pendingCount"}
	leaveRejectedKeys = []string{"rejected", "rejectedRequests", "rejectedLeaves", "rejectedCount"}
)

func normalizeDepartmentCosts(rows []json.RawMessage) []report.DepartmentCost {
	out := make([]report.DepartmentCost, 0, len(rows))
	for _, row := range rows {
		obj, ok := payload.DecodeObject(row)
		if !ok {
			continue
		}
		out = append(out, report.DepartmentCost{
			DepartmentID:   payload.String(obj, "departmentId", "id"),
			DepartmentName: payload.String(obj, departmentNameKeys...),
			EmployeeCount:  payload.Int(obj, "employeeCount", "totalEmployees"),
			TotalCost:      payload.Decimal(obj, costKey),
		})
	}
	return out
}

// normalizeMonthlyLeaveStats accepts named objects, positional arrays, or a
// mix, and always returns twelve entries January first. Months the backend
// left out are zero.
func normalizeMonthlyLeaveStats(rows []json.RawMessage) []report.MonthlyLeaveStat {
	out := make([]report.MonthlyLeaveStat, 12)
	for i := range out {
		out[i] = report.MonthlyLeaveStat{Month: i + 1, Label: time.Month(i + 1).String()}
	}

	for i, row := range rows {
		if cells, ok := payload.DecodeArray(row); ok {
			if i >= 12 {
				continue
			}
			out[i].Total = cell(cells, leaveTotalIdx)
			out[i].Approved = cell(cells, leaveApprovedIdx)
			out[i].Pending = cell(cells, leavePendingIdx)
			out[i].Rejected = cell(cells, leaveRejectedIdx)
			continue
		}

		obj, ok := payload.DecodeObject(row)
		if !ok {
			continue
		}
		month := monthOf(obj)
		if month == 0 {
			month = i + 1
		}
		if month < 1 || month > 12 {
			continue
		}
		stat := &out[month-1]
		stat.Total = payload.Int(obj, leaveTotalKeys...)
		stat.Approved = payload.Int(obj, leaveApprovedKeys...)
		stat.Pending = payload.Int(obj, leavePendingKeys...)
		stat.Rejected = payload.Int(obj, leaveRejectedKeys...)
	}
	return out
}

func cell(cells []json.RawMessage, idx int) int {
	if idx >= len(cells) {
		return 0
	}
	return payload.IntValue(cells[idx])
}

// monthOf reads a month given as a number (6, "6") or a name ("June", "JUN").
// Zero means absent or unreadable.
func monthOf(obj payload.Object) int {
	raw, ok := payload.Pick(obj, "month", "monthNumber", "monthName")
	if !ok {
		return 0
	}
	if n := payload.IntValue(raw); n != 0 {
		return n
	}
	name := strings.TrimSpace(payload.StringValue(raw))
	if len(name) < 3 {
		return 0
	}
	for m := time.January; m <= time.December; m++ {
		full := m.String()
		if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
			return int(m)
		}
	}
	return 0
}

// normalizePayrollSummary totals the per-period rows returned for one year.
func normalizePayrollSummary(year int, rows []json.RawMessage) report.PayrollSummary {
	summary := report.PayrollSummary{
		Year:            year,
		TotalBaseSalary: decimal.Zero,
		TotalBonus:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNetSalary:  decimal.Zero,
	}
	for _, row := range rows {
		obj, ok := payload.DecodeObject(row)
		if !ok {
			continue
		}
		summary.TotalBaseSalary = summary.TotalBaseSalary.Add(payload.Decimal(obj, "totalBaseSalary"))
		summary.TotalBonus = summary.TotalBonus.Add(payload.Decimal(obj, "totalBonus"))
		summary.TotalDeductions = summary.TotalDeductions.Add(payload.Decimal(obj, "totalDeductions"))
		summary.TotalNetSalary = summary.TotalNetSalary.Add(payload.Decimal(obj, "totalNetSalary"))

		// headcount is not additive across months
		if n := payload.Int(obj, "totalEmployees", "employeeCount"); n > summary.TotalEmployees {
			summary.TotalEmployees = n
		}
	}
	return summary
}

// normalizeTopDepartments ranks by cost, highest first. Equal costs keep the
// server's order.
func normalizeTopDepartments(rows []json.RawMessage, limit int) []report.TopDepartment {
	out := make([]report.TopDepartment, 0, len(rows))
	for _, row := range rows {
		obj, ok := payload.DecodeObject(row)
		if !ok {
			continue
		}
		out = append(out, report.TopDepartment{
			DepartmentID:   payload.String(obj, "departmentId", "id"),
			DepartmentName: payload.String(obj, departmentNameKeys...),
			EmployeeCount:  payload.Int(obj, "employeeCount", "totalEmployees"),
			TotalCost:      payload.Decimal(obj, costKey),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCost.GreaterThan(out[j].TotalCost)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
