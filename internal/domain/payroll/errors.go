package payroll

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
)

var (
	ErrRunNotFound        = errors.New("payroll run not found")
	ErrActionNotPermitted = errors.New("action not permitted in current run status")
	ErrRunBusy            = errors.New("another action is already in progress for this payroll run")
	ErrUnknownRunStatus   = errors.New("unknown payroll run status")
	ErrMalformedRun       = errors.New("malformed payroll run payload")
)

const (
	MessageActionNotPermitted = "This action is not allowed for the payroll run's current status."
	MessageRunBusy            = "Another action is already in progress for this payroll run."
)

// Rejected classifies a refusal that wraps ErrActionNotPermitted. It is a
// validation failure answered with 409, as the backend would.
func Rejected(cause error) error {
	return apperrors.New(apperrors.ErrValidation, http.StatusConflict, MessageActionNotPermitted, cause)
}

// NotAllowed rejects action on a run in status.
func NotAllowed(status RunStatus, action Action) error {
	return Rejected(fmt.Errorf("%w: cannot %s a %s run", ErrActionNotPermitted, action, status))
}

// NotFound reports a run (or a payslip of a run) the backend did not return.
func NotFound(what, runID string) error {
	return apperrors.New(apperrors.ErrValidation, http.StatusNotFound, what+" not found",
		fmt.Errorf("%w: %s", ErrRunNotFound, runID))
}

// Busy reports that a mutation of runID is already in flight.
func Busy(runID string) error {
	return apperrors.New(apperrors.ErrConflict, http.StatusConflict, MessageRunBusy,
		fmt.Errorf("%w: %s", ErrRunBusy, runID))
}
