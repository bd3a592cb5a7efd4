package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/auth"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/apiclient"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/jwt"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/notify"
	employeeservice "github.com/lalithaAmmu28/payrollManagementSystem/internal/service/employee"
	payrollservice "github.com/lalithaAmmu28/payrollManagementSystem/internal/service/payroll"
	reportservice "github.com/lalithaAmmu28/payrollManagementSystem/internal/service/report"
)

type Config struct {
	API             apiclient.Config
	NotificationTTL time.Duration
	YearBounds      payrollservice.YearBounds

	// Transport overrides the HTTP transport under the bearer injection.
	Transport http.RoundTripper
}

// Manager owns every live session. Login populates it; logout, an expired
// token or a 401/403 from the backend removes the session's credentials.
type Manager struct {
	cfg      Config
	authRepo auth.AuthRepository
	tokens   jwt.Service
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(cfg Config, authRepo auth.AuthRepository, tokens jwt.Service, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:      cfg,
		authRepo: authRepo,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Login authenticates against the backend and opens a session for the user.
func (m *Manager) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, *Session, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, nil, err
	}

	creds, err := m.authRepo.Login(ctx, req)
	if err != nil {
		m.logger.Info("login rejected", "username", req.Username, "error", err)
		return auth.TokenResponse{}, nil, err
	}

	sess := m.open(creds)

	token, expiresAt, err := m.tokens.GenerateSessionToken(sess.ID, creds.User)
	if err != nil {
		m.drop(sess.ID)
		return auth.TokenResponse{}, nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	m.logger.Info("session opened", "session_id", sess.ID, "user_id", creds.User.ID, "role", creds.User.Role)
	return auth.TokenResponse{
		SessionToken: token,
		TokenType:    "Bearer",
		ExpiresIn:    expiresAt - m.now().Unix(),
		User:         creds.User,
	}, sess, nil
}

func (m *Manager) open(creds auth.Credentials) *Session {
	now := m.now()
	tokenType := creds.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	sess := &Session{
		ID:          uuid.NewString(),
		User:        creds.User,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.tokens.TTL()),
		accessToken: creds.AccessToken,
		tokenType:   tokenType,
		inFlight:    make(map[string]struct{}),
	}

	logger := m.logger.With("session_id", sess.ID)
	opts := []apiclient.Option{
		apiclient.WithLogger(logger),
		apiclient.WithAuthFailureHook(func(err error) { m.Expire(sess.ID, err) }),
	}
	if m.cfg.Transport != nil {
		opts = append(opts, apiclient.WithTransport(m.cfg.Transport))
	}
	client := apiclient.New(m.cfg.API, sess, opts...)

	sess.Notifications = notify.NewCenter(m.cfg.NotificationTTL, logger)
	runRepo := apiclient.NewPayrollClient(client)
	sess.Runs = payrollservice.NewRunStore(runRepo, sess.Notifications, m.cfg.YearBounds, logger)
	sess.Payslips = payrollservice.NewPayslipService(runRepo, sess.Notifications, logger)
	sess.Reports = reportservice.NewReportService(apiclient.NewReportClient(client), sess.Notifications, logger)
	sess.Onboarding = employeeservice.NewOnboardingService(apiclient.NewEmployeeClient(client), sess.Notifications, logger)

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess
}

// Get returns a live session. Sessions past their expiry are expired on
// access; they stay visible as ErrSessionExpired until swept.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	if sess.Expired(m.now()) {
		sess.expire()
		return nil, auth.ErrSessionExpired
	}
	return sess, nil
}

func (m *Manager) Logout(id string) error {
	sess := m.drop(id)
	if sess == nil {
		return auth.ErrSessionNotFound
	}
	sess.expire()
	m.logger.Info("session closed", "session_id", id, "user_id", sess.User.ID)
	return nil
}

// Expire is the API client's auth-failure hook. The session keeps existing
// so the next call can report the expiry, but it no longer holds a token.
func (m *Manager) Expire(id string, cause error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return
	}
	sess.expire()
	m.logger.Warn("session expired by backend", "session_id", id, "error", cause)
}

// Sweep removes expired sessions and returns how many were removed.
func (m *Manager) Sweep(ctx context.Context) int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, sess := range m.sessions {
		if sess.Expired(now) {
			sess.expire()
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("expired sessions swept", "count", removed)
	}
	return removed
}

// SweepNotifications prunes auto-dismissed notifications in every session.
func (m *Manager) SweepNotifications(ctx context.Context) int {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.RUnlock()

	pruned := 0
	for _, sess := range sessions {
		pruned += sess.Notifications.Sweep()
	}
	return pruned
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) drop(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil
	}
	delete(m.sessions, id)
	return sess
}
