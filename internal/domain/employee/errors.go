package employee

import "errors"

var (
	ErrNoPreviousStep   = errors.New("already at the first step")
	ErrNoNextStep       = errors.New("already at the last step")
	ErrNotAtLastStep    = errors.New("employee can only be submitted from the last step")
	ErrWrongStep        = errors.New("data does not belong to the current step")
	ErrWizardNotStarted = errors.New("onboarding wizard has not been started")
)
