package employee

// Employee is the record the backend returns after onboarding.
type Employee struct {
	ID             string `json:"employee_id"`
	UserID         string `json:"user_id,omitempty"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	DepartmentName string `json:"department_name,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
}

// Step of the onboarding wizard
type Step int

const (
	StepAccount Step = iota + 1
	StepPersonal
	StepEmployment
)

const (
	FirstStep = StepAccount
	LastStep  = StepEmployment
)

func (s Step) String() string {
	switch s {
	case StepAccount:
		return "User Account Details"
	case StepPersonal:
		return "Personal Information"
	case StepEmployment:
		return "Employment Details"
	default:
		return "Unknown"
	}
}

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}
