package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/payroll"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/handler/http/response"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/export"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/service/session"
)

type PayrollHandler interface {
	// Runs
	ListRuns(w http.ResponseWriter, r *http.Request)
	CreateRun(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	ProcessRun(w http.ResponseWriter, r *http.Request)
	LockRun(w http.ResponseWriter, r *http.Request)
	GetRunStatistics(w http.ResponseWriter, r *http.Request)

	// Items
	OpenItems(w http.ResponseWriter, r *http.Request)
	CloseItems(w http.ResponseWriter, r *http.Request)
	ExportItems(w http.ResponseWriter, r *http.Request)

	// Payslips
	ListPayslips(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListEmployeePayslips(w http.ResponseWriter, r *http.Request)
	GetEmployeePayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct{}

func NewPayrollHandler() PayrollHandler {
	return &payrollHandlerImpl{}
}

// ========== RUNS ==========

func (h *payrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	runs, err := sess.Runs.ListRuns(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, runResponses(sess, runs), &response.Meta{TotalItems: len(runs)})
}

func (h *payrollHandlerImpl) CreateRun(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req payroll.CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	run, err := sess.Runs.CreateRun(r.Context(), req.Year, req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run created", payroll.NewRunResponse(run, sess.Busy(run.ID)))
}

func (h *payrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	run, err := sess.Runs.FetchRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewRunResponse(run, sess.Busy(run.ID)))
}

func (h *payrollHandlerImpl) GetRunStatistics(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	run, err := sess.Runs.RunStatistics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewRunStatisticsResponse(run, sess.Busy(run.ID)))
}

func (h *payrollHandlerImpl) ProcessRun(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(sess *session.Session, id string) (payroll.Run, error) {
		return sess.Runs.ProcessRun(r.Context(), id)
	})
}

func (h *payrollHandlerImpl) LockRun(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(sess *session.Session, id string) (payroll.Run, error) {
		return sess.Runs.LockRun(r.Context(), id)
	})
}

// mutate allows one process/lock per run at a time; a second request while
// the first is in flight gets 409 without reaching the backend.
func (h *payrollHandlerImpl) mutate(w http.ResponseWriter, r *http.Request, action func(sess *session.Session, id string) (payroll.Run, error)) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	release, ok := sess.Begin(id)
	if !ok {
		response.HandleError(w, payroll.Busy(id))
		return
	}
	defer release()

	run, err := action(sess, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewRunResponse(run, false))
}

// ========== ITEMS ==========

func (h *payrollHandlerImpl) OpenItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	view, err := sess.Runs.OpenItems(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewItemsViewResponse(view))
}

func (h *payrollHandlerImpl) CloseItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	sess.Runs.CloseItems()
	response.NoContent(w)
}

func (h *payrollHandlerImpl) ExportItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	run, err := sess.Runs.FetchRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !run.Allowed(payroll.ActionViewItems) {
		response.HandleError(w, payroll.NotAllowed(run.Status, payroll.ActionViewItems))
		return
	}

	items, err := sess.Runs.ListRunItems(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteRunItems(&buf, run, items); err != nil {
		response.InternalServerError(w, "Failed to write Excel file")
		return
	}

	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.ItemsFileName(run.Period))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// ========== PAYSLIPS ==========

func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	slips, err := sess.Payslips.MyPayslips(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writePayslips(w, slips)
}

func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	slip, err := sess.Payslips.MyPayslip(r.Context(), chi.URLParam(r, "runId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewPayslipResponse(slip))
}

func (h *payrollHandlerImpl) ListEmployeePayslips(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	slips, err := sess.Payslips.EmployeePayslips(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writePayslips(w, slips)
}

func (h *payrollHandlerImpl) GetEmployeePayslip(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	slip, err := sess.Payslips.EmployeePayslip(r.Context(), chi.URLParam(r, "employeeId"), chi.URLParam(r, "runId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewPayslipResponse(slip))
}

func writePayslips(w http.ResponseWriter, slips []payroll.Payslip) {
	result := make([]payroll.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		result = append(result, payroll.NewPayslipResponse(slip))
	}
	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

func runResponses(sess *session.Session, runs []payroll.Run) []payroll.RunResponse {
	result := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		result = append(result, payroll.NewRunResponse(run, sess.Busy(run.ID)))
	}
	return result
}
