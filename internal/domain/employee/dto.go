package employee

import "github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/validator"

// ========== WIZARD STEP DTOs ==========

type AccountDetails struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *AccountDetails) Validate() error {
	return validator.Struct(r)
}

type PersonalDetails struct {
	FirstName   string `json:"firstName" validate:"required,min=2,max=50"`
	LastName    string `json:"lastName" validate:"required,min=2,max=50"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,pastdate"`
	Phone       string `json:"phone" validate:"required,phone,min=10,max=15"`
	Address     string `json:"address" validate:"required,min=10,max=200"`
}

func (r *PersonalDetails) Validate() error {
	return validator.Struct(r)
}

type EmploymentDetails struct {
	JobID        string `json:"jobId" validate:"required"`
	DepartmentID string `json:"departmentId" validate:"required"`
	LeaveBalance int    `json:"leaveBalance" validate:"min=0,max=365"`
}

func (r *EmploymentDetails) Validate() error {
	return validator.Struct(r)
}

// ========== SUBMISSION ==========

// CreateEmployeeRequest is the body of POST /employees.
type CreateEmployeeRequest struct {
	AccountDetails
	PersonalDetails
	EmploymentDetails
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	for _, step := range []interface{ Validate() error }{&r.AccountDetails, &r.PersonalDetails, &r.EmploymentDetails} {
		if err := step.Validate(); err != nil {
			stepErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				return err
			}
			errs = append(errs, stepErrs...)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// WizardState is what the presentation layer renders. The password is never
// echoed back.
type WizardState struct {
	Step       Step              `json:"step"`
	StepTitle  string            `json:"step_title"`
	TotalSteps int               `json:"total_steps"`
	Progress   int               `json:"progress"`
	Account    AccountDetails    `json:"account"`
	Personal   PersonalDetails   `json:"personal"`
	Employment EmploymentDetails `json:"employment"`
	CanGoBack  bool              `json:"can_go_back"`
	CanSubmit  bool              `json:"can_submit"`
}

// StepUpdate carries the fields for one step. Only the member matching
// Step is read.
type StepUpdate struct {
	Step       Step               `json:"step"`
	Account    *AccountDetails    `json:"account,omitempty"`
	Personal   *PersonalDetails   `json:"personal,omitempty"`
	Employment *EmploymentDetails `json:"employment,omitempty"`
}
