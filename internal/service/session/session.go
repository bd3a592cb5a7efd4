package session

import (
	"sync"
	"time"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/auth"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/employee"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/payroll"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/report"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/user"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/apiclient"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/notify"
	"golang.org/x/oauth2"
)

// Session is one logged-in user's slice of the console. Everything that
// talks to the backend on the user's behalf hangs off it, so tearing the
// session down drops the token, the cached runs and the notifications
// together.
type Session struct {
	ID        string
	User      user.User
	CreatedAt time.Time
	ExpiresAt time.Time

	Runs          payroll.RunStore
	Payslips      payroll.PayslipService
	Reports       report.ReportService
	Onboarding    employee.OnboardingService
	Notifications *notify.Center

	accessToken string
	tokenType   string

	mu       sync.Mutex
	expired  bool
	inFlight map[string]struct{}
}

var _ oauth2.TokenSource = (*Session)(nil)

// Token hands the backend bearer token to the API client transport. An
// expired session yields an auth error so no request leaves the console.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expired {
		return nil, apperrors.New(apperrors.ErrAuth, 0, apiclient.MessageSessionExpired, auth.ErrSessionExpired)
	}
	return &oauth2.Token{AccessToken: s.accessToken, TokenType: s.tokenType}, nil
}

func (s *Session) Expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expired || !now.Before(s.ExpiresAt)
}

func (s *Session) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = true
	s.accessToken = ""
}

// Begin marks a mutation on runID as in flight. It reports false when one
// is already running; the caller must call release when ok is true.
func (s *Session) Begin(runID string) (release func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[runID]; busy {
		return nil, false
	}
	s.inFlight[runID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.inFlight, runID)
			s.mu.Unlock()
		})
	}, true
}

// Busy reports whether a mutation on runID is in flight.
func (s *Session) Busy(runID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inFlight[runID]
	return busy
}
