package employee

import "fmt"

const defaultLeaveBalance = 20

// Wizard is the finite-state stepper behind the add-employee flow. It only
// moves forward when the current step validates, moves back freely, and can
// only produce a request from the last step. It is not safe for concurrent
// use.
type Wizard struct {
	step       Step
	account    AccountDetails
	personal   PersonalDetails
	employment EmploymentDetails
}

func NewWizard() *Wizard {
	return &Wizard{
		step:       FirstStep,
		employment: EmploymentDetails{LeaveBalance: defaultLeaveBalance},
	}
}

func (w *Wizard) Step() Step { return w.step }

// Update stores the fields for the current step without validating them.
func (w *Wizard) Update(u StepUpdate) error {
	if u.Step != w.step {
		return fmt.Errorf("%w: got %s, current step is %s", ErrWrongStep, u.Step, w.step)
	}
	switch w.step {
	case StepAccount:
		if u.Account == nil {
			return ErrWrongStep
		}
		w.account = *u.Account
	case StepPersonal:
		if u.Personal == nil {
			return ErrWrongStep
		}
		w.personal = *u.Personal
	case StepEmployment:
		if u.Employment == nil {
			return ErrWrongStep
		}
		w.employment = *u.Employment
	}
	return nil
}

// ValidateStep runs the validation predicate of step s.
func (w *Wizard) ValidateStep(s Step) error {
	switch s {
	case StepAccount:
		return w.account.Validate()
	case StepPersonal:
		return w.personal.Validate()
	case StepEmployment:
		return w.employment.Validate()
	}
	return fmt.Errorf("%w: %d", ErrWrongStep, s)
}

// Next advances when the current step is valid.
func (w *Wizard) Next() error {
	if w.step == LastStep {
		return ErrNoNextStep
	}
	if err := w.ValidateStep(w.step); err != nil {
		return err
	}
	w.step++
	return nil
}

// Back never validates.
func (w *Wizard) Back() error {
	if w.step == FirstStep {
		return ErrNoPreviousStep
	}
	w.step--
	return nil
}

// Request assembles the submission. Every step is checked again since
// earlier steps may have been edited after going back.
func (w *Wizard) Request() (CreateEmployeeRequest, error) {
	if w.step != LastStep {
		return CreateEmployeeRequest{}, ErrNotAtLastStep
	}
	req := CreateEmployeeRequest{
		AccountDetails:    w.account,
		PersonalDetails:   w.personal,
		EmploymentDetails: w.employment,
	}
	if err := req.Validate(); err != nil {
		return CreateEmployeeRequest{}, err
	}
	return req, nil
}

// State snapshots the wizard for display.
func (w *Wizard) State() WizardState {
	account := w.account
	account.Password = ""
	total := int(LastStep)
	return WizardState{
		Step:       w.step,
		StepTitle:  w.step.String(),
		TotalSteps: total,
		Progress:   (int(w.step)*100 + total/2) / total,
		Account:    account,
		Personal:   w.personal,
		Employment: w.employment,
		CanGoBack:  w.step != FirstStep,
		CanSubmit:  w.step == LastStep,
	}
}
