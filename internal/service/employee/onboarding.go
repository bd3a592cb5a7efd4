package employee

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/employee"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/notification"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/validator"
)

type OnboardingServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	notifier     notification.Notifier
	logger       *slog.Logger

	mu     sync.Mutex
	wizard *employee.Wizard
}

func NewOnboardingService(employeeRepo employee.EmployeeRepository, notifier notification.Notifier, logger *slog.Logger) employee.OnboardingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OnboardingServiceImpl{
		employeeRepo: employeeRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// Start discards any wizard in progress and opens a new one.
func (s *OnboardingServiceImpl) Start() employee.WizardState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wizard = employee.NewWizard()
	return s.wizard.State()
}

func (s *OnboardingServiceImpl) State() (employee.WizardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.wizard == nil {
		return employee.WizardState{}, employee.ErrWizardNotStarted
	}
	return s.wizard.State(), nil
}

func (s *OnboardingServiceImpl) Update(u employee.StepUpdate) (employee.WizardState, error) {
	return s.apply(func(w *employee.Wizard) error { return w.Update(u) })
}

func (s *OnboardingServiceImpl) Next() (employee.WizardState, error) {
	return s.apply(func(w *employee.Wizard) error { return w.Next() })
}

func (s *OnboardingServiceImpl) Back() (employee.WizardState, error) {
	return s.apply(func(w *employee.Wizard) error { return w.Back() })
}

// Submit sends the assembled request. The wizard is reset only when the
// backend accepted the employee; on failure the entered data is kept.
func (s *OnboardingServiceImpl) Submit(ctx context.Context) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.wizard == nil {
		return employee.Employee{}, employee.ErrWizardNotStarted
	}
	req, err := s.wizard.Request()
	if err != nil {
		return employee.Employee{}, err
	}

	created, err := s.employeeRepo.CreateEmployee(ctx, req)
	if err != nil {
		s.notifier.Notify(notification.LevelError, apperrors.UserMessage(err, "Failed to create employee"))
		s.logger.Warn("employee creation failed", "username", req.Username, "error", err)
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	s.wizard = nil
	s.notifier.Notify(notification.LevelSuccess, fmt.Sprintf("Employee %s %s created successfully", req.FirstName, req.LastName))
	s.logger.Info("employee created", "employee_id", created.ID, "username", req.Username)
	return created, nil
}

func (s *OnboardingServiceImpl) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wizard = nil
}

func (s *OnboardingServiceImpl) apply(step func(w *employee.Wizard) error) (employee.WizardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.wizard == nil {
		return employee.WizardState{}, employee.ErrWizardNotStarted
	}
	if err := step(s.wizard); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			s.notifier.Notify(notification.LevelWarning, verrs.Error())
		}
		return s.wizard.State(), err
	}
	return s.wizard.State(), nil
}
