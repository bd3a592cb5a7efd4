package employee

import "context"

// EmployeeRepository creates employees on the HRIS backend.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
}

// OnboardingService drives one session's add-employee wizard.
type OnboardingService interface {
	Start() WizardState
	State() (WizardState, error)
	Update(u StepUpdate) (WizardState, error)
	Next() (WizardState, error)
	Back() (WizardState, error)
	Submit(ctx context.Context) (Employee, error)
	Cancel()
}
