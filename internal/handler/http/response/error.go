package response

import (
	"errors"
	"net/http"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/auth"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/employee"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/notification"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/payroll"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/user"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/apiclient"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors come first: a rejected login is also a backend 400/401
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
		return
	case errors.Is(err, auth.ErrSessionExpired):
		Unauthorized(w, apiclient.MessageSessionExpired)
		return
	case errors.Is(err, auth.ErrSessionNotFound), errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
		return
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
		return
	}

	// Errors raised while talking to the HRIS backend keep its message
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		handleBackendError(w, appErr)
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRunBusy):
		Conflict(w, "Another action is already in progress for this payroll run")
	case errors.Is(err, payroll.ErrActionNotPermitted):
		Conflict(w, "This action is not allowed for the payroll run's current status")
	case errors.Is(err, payroll.ErrMalformedRun), errors.Is(err, payroll.ErrUnknownRunStatus):
		BadGateway(w, apiclient.MessageUnexpected)

	// Employee wizard errors
	case errors.Is(err, employee.ErrWizardNotStarted):
		NotFound(w, "No employee wizard in progress")
	case errors.Is(err, employee.ErrNoNextStep):
		BadRequest(w, "Already at the last step", nil)
	case errors.Is(err, employee.ErrNoPreviousStep):
		BadRequest(w, "Already at the first step", nil)
	case errors.Is(err, employee.ErrNotAtLastStep):
		BadRequest(w, "Complete every step before submitting", nil)
	case errors.Is(err, employee.ErrWrongStep):
		BadRequest(w, "Update does not match the current step", nil)

	// Notification errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

func handleBackendError(w http.ResponseWriter, err *apperrors.Error) {
	switch {
	case errors.Is(err, apperrors.ErrAuth):
		Unauthorized(w, err.Message)
	case errors.Is(err, apperrors.ErrConflict):
		Conflict(w, err.Message)
	case errors.Is(err, apperrors.ErrValidation):
		switch err.Status {
		case http.StatusNotFound:
			NotFound(w, err.Message)
		case http.StatusConflict:
			Conflict(w, err.Message)
		default:
			BadRequest(w, err.Message, nil)
		}
	case errors.Is(err, apperrors.ErrNetwork):
		if err.Message == apiclient.MessageTimeout {
			GatewayTimeout(w, err.Message)
			return
		}
		BadGateway(w, err.Message)
	default:
		BadGateway(w, apperrors.UserMessage(err, apiclient.MessageUnexpected))
	}
}
