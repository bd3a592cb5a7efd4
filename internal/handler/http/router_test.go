package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/payroll"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/user"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/apiclient"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/authz"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/jwt"
	payrollService "github.com/lalithaAmmu28/payrollManagementSystem/internal/service/payroll"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const testSecret = "test-secret-key-for-jwt"

// fakeHRIS is a minimal HRIS backend speaking the {success, message, data} envelope.
type fakeHRIS struct {
	mu     sync.Mutex
	runs   map[string]map[string]interface{}
	nextID int

	processStarted chan struct{}
	processGate    chan struct{}
	processCalls   atomic.Int32

	failSummary bool
	rejectAll   atomic.Bool
}

func newFakeHRIS() *fakeHRIS {
	return &fakeHRIS{runs: map[string]map[string]interface{}{}}
}

func writeEnvelope(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": status < 400,
		"message": message,
		"data":    data,
	})
}

func (f *fakeHRIS) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		role := map[string]string{"admin": "ADMIN", "jane": "EMPLOYEE"}[req.Username]
		if role == "" || req.Password != "password1" {
			writeEnvelope(w, http.StatusBadRequest, "Invalid username or password", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "Login successful", map[string]interface{}{
			"accessToken": "backend-" + req.Username,
			"tokenType":   "Bearer",
			"user":        map[string]interface{}{"userId": "u-" + req.Username, "username": req.Username, "email": req.Username + "@example.com", "role": role},
		})
	})

	guarded := http.NewServeMux()
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.rejectAll.Load() || r.Header.Get("Authorization") == "" {
			writeEnvelope(w, http.StatusUnauthorized, "Token expired", nil)
			return
		}
		guarded.ServeHTTP(w, r)
	}))

	guarded.HandleFunc("GET /payroll/runs", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		list := make([]interface{}, 0, len(f.runs))
		for _, run := range f.runs {
			list = append(list, run)
		}
		writeEnvelope(w, http.StatusOK, "", list)
	})
	guarded.HandleFunc("POST /payroll/runs", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Year, Month int }
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, run := range f.runs {
			if run["runYear"] == req.Year && run["runMonth"] == req.Month {
				writeEnvelope(w, http.StatusBadRequest, "Payroll run already exists for this period", nil)
				return
			}
		}
		f.nextID++
		run := map[string]interface{}{
			"runId": fmt.Sprintf("run-%d", f.nextID), "runYear": req.Year, "runMonth": req.Month,
			"status": "DRAFT", "createdAt": time.Now().UTC().Format(time.RFC3339),
		}
		f.runs[run["runId"].(string)] = run
		writeEnvelope(w, http.StatusCreated, "created", run)
	})
	guarded.HandleFunc("GET /payroll/runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		run, ok := f.runs[r.PathValue("id")]
		if !ok {
			writeEnvelope(w, http.StatusNotFound, "Payroll run not found", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "", run)
	})
	guarded.HandleFunc("POST /payroll/runs/{id}/process", func(w http.ResponseWriter, r *http.Request) {
		f.processCalls.Add(1)
		if f.processStarted != nil {
			f.processStarted <- struct{}{}
		}
		if f.processGate != nil {
			<-f.processGate
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		run := f.runs[r.PathValue("id")]
		run["status"] = "PROCESSED"
		run["totalNetSalary"] = 1000
		writeEnvelope(w, http.StatusOK, "processed", run)
	})
	guarded.HandleFunc("GET /payroll/runs/{id}/items", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "", []interface{}{
			map[string]interface{}{"itemId": "i-1", "employeeId": "e-1", "employeeName": "Jane Doe", "departmentName": "Engineering", "baseSalary": 1000, "netSalary": 1000},
		})
	})
	guarded.HandleFunc("GET /payroll/runs/{id}/statistics", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		run, ok := f.runs[r.PathValue("id")]
		if !ok {
			writeEnvelope(w, http.StatusNotFound, "Payroll run not found", nil)
			return
		}
		stats := map[string]interface{}{"employeeCount": 3, "totalNetSalary": 1000}
		for k, v := range run {
			if _, set := stats[k]; !set {
				stats[k] = v
			}
		}
		writeEnvelope(w, http.StatusOK, "Payroll statistics retrieved successfully", stats)
	})
	guarded.HandleFunc("GET /payroll/payslips", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "", []interface{}{})
	})
	guarded.HandleFunc("GET /payroll/employees/{employeeId}/payslips", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "", []interface{}{
			map[string]interface{}{"itemId": "i-1", "runId": "run-1", "employeeId": r.PathValue("employeeId"), "runYear": 2025, "runMonth": 5, "netSalary": 900},
			map[string]interface{}{"itemId": "i-2", "runId": "run-2", "employeeId": r.PathValue("employeeId"), "runYear": 2025, "runMonth": 6, "netSalary": 1000},
		})
	})
	guarded.HandleFunc("GET /payroll/employees/{employeeId}/payslips/{runId}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("runId") != "run-2" {
			writeEnvelope(w, http.StatusOK, "", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "", map[string]interface{}{
			"itemId": "i-2", "runId": "run-2", "employeeId": r.PathValue("employeeId"), "runYear": 2025, "runMonth": 6, "netSalary": 1000,
		})
	})
	guarded.HandleFunc("GET /reports/department-cost", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "", []interface{}{map[string]interface{}{"departmentName": "Engineering", "totalNetSalary": 1000}})
	})
	guarded.HandleFunc("GET /reports/leave-trends/monthly", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "", []interface{}{[]int{3, 2, 1, 0}})
	})
	guarded.HandleFunc("GET /reports/payroll-summary", func(w http.ResponseWriter, r *http.Request) {
		if f.failSummary {
			writeEnvelope(w, http.StatusInternalServerError, "Internal Server Error", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "", []interface{}{map[string]interface{}{"totalBaseSalary": 1000}})
	})
	guarded.HandleFunc("GET /reports/departments/top-spending", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "", []interface{}{map[string]interface{}{"departmentName": "Engineering", "totalNetSalary": 1000}})
	})
	return mux
}

func newTestRouter(t *testing.T, backend *fakeHRIS, loginRate string) http.Handler {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	apiConfig := apiclient.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}
	tokens := jwt.NewJWTService(testSecret, time.Hour)
	sessions := session.NewManager(session.Config{
		API:             apiConfig,
		NotificationTTL: time.Minute,
		YearBounds:      payrollService.YearBounds{Min: 2000, Max: 2100},
	}, apiclient.NewAuthClient(apiclient.New(apiConfig, nil)), tokens, nil)

	authorizer, err := authz.NewAuthorizer(user.RolePermissions)
	require.NoError(t, err)

	var loginLimiter *limiter.Limiter
	if loginRate != "" {
		rate, err := limiter.NewRateFromFormatted(loginRate)
		require.NoError(t, err)
		loginLimiter = limiter.New(memory.NewStore(), rate)
	}

	return NewRouter(
		RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}, LoginLimiter: loginLimiter},
		tokens, sessions, authorizer,
		NewAuthHandler(sessions), NewPayrollHandler(), NewReportHandler(), NewEmployeeHandler(), NewNotificationHandler(),
	)
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		TotalItems int      `json:"total_items"`
		Failed     []string `json:"failed"`
	} `json:"meta"`
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf []byte
	if body != nil {
		var err error
		buf, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func loginAs(t *testing.T, h http.Handler, username string) string {
	t.Helper()
	rec, resp := do(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": "password1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		SessionToken string `json:"session_token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.SessionToken)
	return data.SessionToken
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := newTestRouter(t, newFakeHRIS(), "")

	rec, resp := do(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid username or password", resp.Error.Message)

	rec, resp = do(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, resp.Error.Details, "username")
}

func TestLogin_RateLimited(t *testing.T) {
	h := newTestRouter(t, newFakeHRIS(), "2-M")

	loginAs(t, h, "admin")
	loginAs(t, h, "admin")
	rec, _ := do(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin", "password": "password1"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRoutes_RequireSessionAndPermission(t *testing.T) {
	h := newTestRouter(t, newFakeHRIS(), "")

	rec, _ := do(t, h, http.MethodGet, "/api/v1/payroll/runs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/payroll/runs", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	employee := loginAs(t, h, "jane")
	rec, _ = do(t, h, http.MethodGet, "/api/v1/payroll/runs", employee, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = do(t, h, http.MethodGet, "/api/v1/payslips", employee, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	admin := loginAs(t, h, "admin")
	rec, _ = do(t, h, http.MethodGet, "/api/v1/payslips", admin, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = do(t, h, http.MethodGet, "/api/v1/me", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPayrollRuns_Lifecycle(t *testing.T) {
	h := newTestRouter(t, newFakeHRIS(), "")
	admin := loginAs(t, h, "admin")

	rec, resp := do(t, h, http.MethodPost, "/api/v1/payroll/runs", admin, map[string]int{"year": 2025, "month": 6})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID             string   `json:"id"`
		Status         string   `json:"status"`
		AllowedActions []string `json:"allowed_actions"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "DRAFT", created.Status)
	assert.Equal(t, []string{"process"}, created.AllowedActions)

	rec, resp = do(t, h, http.MethodPost, "/api/v1/payroll/runs", admin, map[string]int{"year": 2025, "month": 6})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, resp.Error.Message, "already exists")

	rec, resp = do(t, h, http.MethodPost, "/api/v1/payroll/runs", admin, map[string]int{"year": 2025, "month": 13})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, resp.Error.Details, "month")

	rec, resp = do(t, h, http.MethodGet, "/api/v1/payroll/runs/"+created.ID+"/items", admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "draft runs have no items view")
	assert.Equal(t, payroll.MessageActionNotPermitted, resp.Error.Message)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/payroll/runs/"+created.ID+"/process", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, resp = do(t, h, http.MethodGet, "/api/v1/payroll/runs/"+created.ID+"/items", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view struct {
		RunID string            `json:"run_id"`
		Items []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.Equal(t, created.ID, view.RunID)
	assert.Len(t, view.Items, 1)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/payroll/runs/"+created.ID+"/items/export", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=payroll_2025-06.xlsx", rec.Header().Get("Content-Disposition"))
	assert.NotZero(t, rec.Body.Len())

	rec, resp = do(t, h, http.MethodGet, "/api/v1/notifications", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotZero(t, resp.Meta.TotalItems)
}

func TestProcessRun_SecondRequestWhileInFlightIsRejected(t *testing.T) {
	backend := newFakeHRIS()
	h := newTestRouter(t, backend, "")
	admin := loginAs(t, h, "admin")

	rec, resp := do(t, h, http.MethodPost, "/api/v1/payroll/runs", admin, map[string]int{"year": 2025, "month": 7})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))

	backend.processStarted = make(chan struct{}, 1)
	backend.processGate = make(chan struct{})

	first := make(chan int, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/runs/"+created.ID+"/process", nil)
		req.Header.Set("Authorization", "Bearer "+admin)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		first <- rec.Code
	}()
	<-backend.processStarted

	rec, resp = do(t, h, http.MethodPost, "/api/v1/payroll/runs/"+created.ID+"/process", admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", resp.Error.Code)

	rec, resp = do(t, h, http.MethodGet, "/api/v1/payroll/runs", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []struct {
		Busy           bool     `json:"busy"`
		AllowedActions []string `json:"allowed_actions"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &runs))
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Busy)
	assert.Empty(t, runs[0].AllowedActions)

	close(backend.processGate)
	assert.Equal(t, http.StatusOK, <-first)
	assert.Equal(t, int32(1), backend.processCalls.Load())
}

func TestPayrollRuns_Statistics(t *testing.T) {
	h := newTestRouter(t, newFakeHRIS(), "")
	admin := loginAs(t, h, "admin")

	rec, resp := do(t, h, http.MethodPost, "/api/v1/payroll/runs", admin, map[string]int{"year": 2025, "month": 8})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))

	rec, resp = do(t, h, http.MethodGet, "/api/v1/payroll/runs/"+created.ID+"/statistics", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var stats struct {
		ID               string `json:"id"`
		EmployeeCount    int    `json:"employee_count"`
		TotalNetSalary   string `json:"total_net_salary"`
		AverageNetSalary string `json:"average_net_salary"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, created.ID, stats.ID)
	assert.Equal(t, 3, stats.EmployeeCount)
	assert.Equal(t, "1000", stats.TotalNetSalary)
	assert.Equal(t, "333.33", stats.AverageNetSalary)

	rec, resp = do(t, h, http.MethodGet, "/api/v1/payroll/runs/missing/statistics", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Payroll run not found", resp.Error.Message)

	employee := loginAs(t, h, "jane")
	rec, _ = do(t, h, http.MethodGet, "/api/v1/payroll/runs/"+created.ID+"/statistics", employee, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEmployeePayslips_AdminOnly(t *testing.T) {
	h := newTestRouter(t, newFakeHRIS(), "")
	admin := loginAs(t, h, "admin")

	rec, resp := do(t, h, http.MethodGet, "/api/v1/payroll/employees/e-9/payslips", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, resp.Meta.TotalItems)
	var slips []struct {
		RunID      string `json:"run_id"`
		EmployeeID string `json:"employee_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &slips))
	require.Len(t, slips, 2)
	assert.Equal(t, "run-2", slips[0].RunID, "newest period first")
	assert.Equal(t, "e-9", slips[0].EmployeeID)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/payroll/employees/e-9/payslips/run-2", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = do(t, h, http.MethodGet, "/api/v1/payroll/employees/e-9/payslips/run-1", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Payslip not found", resp.Error.Message)

	employee := loginAs(t, h, "jane")
	rec, _ = do(t, h, http.MethodGet, "/api/v1/payroll/employees/e-9/payslips", employee, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBackendRejection_ExpiresSession(t *testing.T) {
	backend := newFakeHRIS()
	h := newTestRouter(t, backend, "")
	admin := loginAs(t, h, "admin")

	backend.rejectAll.Store(true)
	rec, resp := do(t, h, http.MethodGet, "/api/v1/payroll/runs", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apiclient.MessageSessionExpired, resp.Error.Message)

	rec, resp = do(t, h, http.MethodGet, "/api/v1/me", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apiclient.MessageSessionExpired, resp.Error.Message)
}

func TestLogout(t *testing.T) {
	h := newTestRouter(t, newFakeHRIS(), "")
	admin := loginAs(t, h, "admin")

	rec, _ := do(t, h, http.MethodPost, "/api/v1/auth/logout", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/me", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboard_PartialFailure(t *testing.T) {
	backend := newFakeHRIS()
	backend.failSummary = true
	h := newTestRouter(t, backend, "")
	admin := loginAs(t, h, "admin")

	rec, resp := do(t, h, http.MethodGet, "/api/v1/reports/dashboard?year=2025", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"payroll_summary"}, resp.Meta.Failed)

	var dash struct {
		DepartmentCosts struct {
			Data []json.RawMessage `json:"data"`
		} `json:"department_costs"`
		MonthlyLeaveStats struct {
			Data []json.RawMessage `json:"data"`
		} `json:"monthly_leave_stats"`
		PayrollSummary struct {
			Error string `json:"error"`
		} `json:"payroll_summary"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &dash))
	assert.Len(t, dash.DepartmentCosts.Data, 1)
	assert.Len(t, dash.MonthlyLeaveStats.Data, 12)
	assert.Equal(t, "Internal Server Error", dash.PayrollSummary.Error)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/reports/dashboard?year=abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployeeWizard_ValidationKeepsState(t *testing.T) {
	h := newTestRouter(t, newFakeHRIS(), "")
	admin := loginAs(t, h, "admin")

	rec, _ := do(t, h, http.MethodGet, "/api/v1/employees/wizard", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/employees/wizard", admin, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = do(t, h, http.MethodPut, "/api/v1/employees/wizard", admin, map[string]interface{}{
		"step":    1,
		"account": map[string]string{"username": "jd", "email": "bad", "password": "123"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := do(t, h, http.MethodPost, "/api/v1/employees/wizard/next", admin, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var failed struct {
		Errors map[string]string `json:"errors"`
		State  struct {
			Step int `json:"step"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &failed))
	assert.Contains(t, failed.Errors, "username")
	assert.Contains(t, failed.Errors, "email")
	assert.Contains(t, failed.Errors, "password")
	assert.Equal(t, 1, failed.State.Step)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/employees/wizard/back", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
