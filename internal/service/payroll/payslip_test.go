package payroll

import (
	"context"
	"testing"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/notification"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPayslips(backend *fakeBackend) {
	backend.seed(
		payroll.Run{ID: "may", Period: payroll.Period{Year: 2025, Month: 5}, Status: payroll.RunStatusLocked},
		payroll.Run{ID: "jun", Period: payroll.Period{Year: 2025, Month: 6}, Status: payroll.RunStatusProcessed},
		payroll.Run{ID: "dec", Period: payroll.Period{Year: 2024, Month: 12}, Status: payroll.RunStatusLocked},
	)
	backend.items["may"] = []payroll.Item{{ItemID: "m-1", RunID: "may", EmployeeID: "emp-7", NetSalary: decimal.NewFromInt(900)}}
	backend.items["jun"] = []payroll.Item{
		{ItemID: "j-1", RunID: "jun", EmployeeID: "emp-7", NetSalary: decimal.NewFromInt(950)},
		{ItemID: "j-2", RunID: "jun", EmployeeID: "emp-1", NetSalary: decimal.NewFromInt(800)},
	}
	backend.items["dec"] = []payroll.Item{{ItemID: "d-1", RunID: "dec", EmployeeID: "emp-7", NetSalary: decimal.NewFromInt(870)}}
}

func TestPayslipService_EmployeePayslipsNewestFirst(t *testing.T) {
	backend := newFakeBackend()
	seedPayslips(backend)
	notes := &recorder{}
	svc := NewPayslipService(backend, notes, nil)

	slips, err := svc.EmployeePayslips(context.Background(), "emp-7")
	require.NoError(t, err)
	require.Len(t, slips, 3)
	assert.Equal(t, []string{"jun", "may", "dec"}, []string{slips[0].RunID, slips[1].RunID, slips[2].RunID})
	assert.Empty(t, notes.notes)

	mine, err := svc.MyPayslips(context.Background())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "j-2", mine[0].ItemID)
}

func TestPayslipService_EmployeePayslip(t *testing.T) {
	backend := newFakeBackend()
	seedPayslips(backend)
	notes := &recorder{}
	svc := NewPayslipService(backend, notes, nil)
	ctx := context.Background()

	slip, err := svc.EmployeePayslip(ctx, "emp-7", "may")
	require.NoError(t, err)
	assert.Equal(t, payroll.Period{Year: 2025, Month: 5}, slip.Period)
	assert.Equal(t, payroll.RunStatusLocked, slip.RunStatus)

	_, err = svc.EmployeePayslip(ctx, "emp-1", "may")
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)
	assert.Equal(t, apperrors.ErrValidation, apperrors.KindOf(err))
	assert.Equal(t, 1, notes.count(notification.LevelError))
	assert.Equal(t, "Payslip not found", notes.last().message)
}

func TestPayslipService_FailureNotifiesOnce(t *testing.T) {
	backend := newFakeBackend()
	notes := &recorder{}
	svc := NewPayslipService(backend, notes, nil)
	backend.failNext("payslips", apperrors.New(apperrors.ErrNetwork, 0, "Request timeout. Please try again.", nil))

	_, err := svc.EmployeePayslips(context.Background(), "emp-7")
	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.Equal(t, 1, notes.count(notification.LevelError))
	assert.Equal(t, "Request timeout. Please try again.", notes.last().message)
}
