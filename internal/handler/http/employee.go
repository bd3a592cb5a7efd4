package http

import (
	"encoding/json"
	"net/http"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/employee"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/handler/http/response"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/validator"
)

type EmployeeHandler interface {
	// Add-employee wizard
	StartWizard(w http.ResponseWriter, r *http.Request)
	GetWizard(w http.ResponseWriter, r *http.Request)
	UpdateWizard(w http.ResponseWriter, r *http.Request)
	NextStep(w http.ResponseWriter, r *http.Request)
	PreviousStep(w http.ResponseWriter, r *http.Request)
	SubmitWizard(w http.ResponseWriter, r *http.Request)
	CancelWizard(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct{}

func NewEmployeeHandler() EmployeeHandler {
	return &employeeHandlerImpl{}
}

// wizardErrorResponse keeps the wizard state next to validation failures so
// the form can be re-rendered in place.
type wizardErrorResponse struct {
	Errors map[string]string    `json:"errors"`
	State  employee.WizardState `json:"state"`
}

func (h *employeeHandlerImpl) StartWizard(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	response.Created(w, "Employee wizard started", sess.Onboarding.Start())
}

func (h *employeeHandlerImpl) GetWizard(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	state, err := sess.Onboarding.State()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, state)
}

func (h *employeeHandlerImpl) UpdateWizard(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req employee.StepUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	state, err := sess.Onboarding.Update(req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, state)
}

func (h *employeeHandlerImpl) NextStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	state, err := sess.Onboarding.Next()
	if err != nil {
		writeWizardError(w, state, err)
		return
	}

	response.Success(w, state)
}

func (h *employeeHandlerImpl) PreviousStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	state, err := sess.Onboarding.Back()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, state)
}

func (h *employeeHandlerImpl) SubmitWizard(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	created, err := sess.Onboarding.Submit(r.Context())
	if err != nil {
		if state, stateErr := sess.Onboarding.State(); stateErr == nil {
			writeWizardError(w, state, err)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

func (h *employeeHandlerImpl) CancelWizard(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	sess.Onboarding.Cancel()
	response.NoContent(w)
}

func writeWizardError(w http.ResponseWriter, state employee.WizardState, err error) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		response.HandleError(w, err)
		return
	}
	response.UnprocessableEntity(w, "Validation failed", wizardErrorResponse{Errors: verrs.ToMap(), State: state})
}
