package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/notification"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/payroll"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/validator"
)

// YearBounds limits the periods a run can be created for.
type YearBounds struct {
	Min int
	Max int
}

// RunStoreImpl keeps one admin's view of the payroll runs consistent with
// the backend. Local changes are applied speculatively and either confirmed
// by the server or thrown away in favour of a full refetch.
type RunStoreImpl struct {
	repo     payroll.RunRepository
	notifier notification.Notifier
	logger   *slog.Logger
	bounds   YearBounds
	now      func() time.Time

	mu        sync.RWMutex
	runs      []payroll.Run
	itemsView *payroll.ItemsView
}

func NewRunStore(
	repo payroll.RunRepository,
	notifier notification.Notifier,
	bounds YearBounds,
	logger *slog.Logger,
) payroll.RunStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunStoreImpl{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		bounds:   bounds,
		now:      time.Now,
	}
}

// ========== READS ==========

func (s *RunStoreImpl) Runs() []payroll.Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]payroll.Run(nil), s.runs...)
}

func (s *RunStoreImpl) Run(id string) (payroll.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.runs[i], true
	}
	return payroll.Run{}, false
}

// ListRuns replaces the local list with the server's. On failure the
// last-known list stays available through Runs.
func (s *RunStoreImpl) ListRuns(ctx context.Context) ([]payroll.Run, error) {
	runs, err := s.reload(ctx)
	if err != nil {
		s.fail(err, "Failed to fetch payroll runs")
		return nil, err
	}
	return runs, nil
}

func (s *RunStoreImpl) FetchRun(ctx context.Context, id string) (payroll.Run, error) {
	run, err := s.repo.GetRun(ctx, id)
	if err != nil {
		s.fail(err, "Failed to fetch payroll run")
		return payroll.Run{}, err
	}
	s.merge(run)
	return run, nil
}

// RunStatistics refreshes a run together with its headcount and totals.
func (s *RunStoreImpl) RunStatistics(ctx context.Context, id string) (payroll.Run, error) {
	run, err := s.repo.RunStatistics(ctx, id)
	if err != nil {
		s.fail(err, "Failed to fetch payroll statistics")
		return payroll.Run{}, err
	}
	s.merge(run)
	return run, nil
}

// ========== MUTATIONS ==========

func (s *RunStoreImpl) CreateRun(ctx context.Context, year, month int) (payroll.Run, error) {
	req := payroll.CreateRunRequest{Year: year, Month: month}
	if err := req.Validate(s.bounds.Min, s.bounds.Max); err != nil {
		s.fail(err, "Invalid payroll period")
		return payroll.Run{}, err
	}
	period := payroll.Period{Year: year, Month: month}

	run, echoed, err := s.repo.CreateRun(ctx, period)
	if err != nil {
		s.fail(err, "Failed to create payroll run")
		// A create that got no answer, or a broken one, may still have been committed
		if errors.Is(err, apperrors.ErrNetwork) || errors.Is(err, apperrors.ErrServer) {
			if _, rerr := s.reload(ctx); rerr != nil {
				s.logger.Warn("payroll runs could not be resynchronized", "period", period.String(), "error", rerr)
			}
		}
		return payroll.Run{}, err
	}

	if echoed {
		s.merge(run)
	} else {
		// Nothing to merge; the refetched list is the only source for the new run
		runs, err := s.reload(ctx)
		if err != nil {
			s.fail(err, "Payroll run was created but the list could not be refreshed")
			return payroll.Run{}, err
		}
		found := false
		for _, r := range runs {
			if r.Period == period {
				run, found = r, true
				break
			}
		}
		if !found {
			err := apperrors.New(apperrors.ErrServer, 0, "Created payroll run was not returned by the server.", payroll.ErrRunNotFound)
			s.fail(err, "")
			return payroll.Run{}, err
		}
	}

	s.notifier.Notify(notification.LevelSuccess, fmt.Sprintf("Payroll run created for %s", period.Label()))
	return run, nil
}

// ProcessRun processes a DRAFT run or re-processes a PROCESSED one.
func (s *RunStoreImpl) ProcessRun(ctx context.Context, id string) (payroll.Run, error) {
	return s.mutate(ctx, id, payroll.ActionProcess)
}

// LockRun finalizes a PROCESSED run.
func (s *RunStoreImpl) LockRun(ctx context.Context, id string) (payroll.Run, error) {
	return s.mutate(ctx, id, payroll.ActionLock)
}

func (s *RunStoreImpl) mutate(ctx context.Context, id string, action payroll.Action) (payroll.Run, error) {
	prev, patched, known, err := s.patch(id, action)
	if err != nil {
		s.fail(err, "")
		return payroll.Run{}, err
	}

	var (
		run    payroll.Run
		echoed bool
	)
	switch action {
	case payroll.ActionLock:
		run, echoed, err = s.repo.LockRun(ctx, id)
	default:
		run, echoed, err = s.repo.ProcessRun(ctx, id)
	}

	if err != nil {
		if known {
			s.rollback(prev)
		}
		s.fail(err, fmt.Sprintf("Failed to %s payroll run", verb(action)))
		if _, rerr := s.reload(ctx); rerr != nil {
			s.logger.Warn("payroll runs could not be resynchronized", "run_id", id, "error", rerr)
		}
		return payroll.Run{}, err
	}

	switch {
	case echoed:
		run = s.confirm(run, prev, action)
	case known:
		run = patched
	default:
		if run, err = s.repo.GetRun(ctx, id); err != nil {
			s.fail(err, "Failed to fetch payroll run")
			return payroll.Run{}, err
		}
	}
	s.merge(run)

	if view, open := s.ItemsView(); open && view.RunID == id {
		if _, err := s.OpenItems(ctx, id); err != nil {
			s.logger.Warn("items view could not be refreshed", "run_id", id, "error", err)
		}
	}

	s.notifier.Notify(notification.LevelSuccess, fmt.Sprintf("Payroll for %s %s", run.Period.Label(), pastTense(action)))
	return run, nil
}

// patch applies the expected outcome of action locally. Unknown runs are left
// to the server to judge.
func (s *RunStoreImpl) patch(id string, action payroll.Action) (prev, patched payroll.Run, known bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return payroll.Run{}, payroll.Run{}, false, nil
	}
	prev = s.runs[i]
	if action == payroll.ActionProcess {
		action = payroll.ProcessAction(prev.Status)
	}

	next, err := payroll.Transition(prev.Status, action)
	if err != nil {
		return prev, prev, true, payroll.Rejected(err)
	}

	patched = prev
	patched.Status = next
	now := s.now()
	switch next {
	case payroll.RunStatusProcessed:
		patched.ProcessedAt = &now
	case payroll.RunStatusLocked:
		patched.LockedAt = &now
	}
	s.runs[i] = patched
	return prev, patched, true, nil
}

func (s *RunStoreImpl) rollback(prev payroll.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(prev.ID); i >= 0 {
		s.runs[i] = prev
	}
}

// confirm fills timestamps the server left out so that a confirmed run
// always satisfies LockedAt => LOCKED => ProcessedAt.
func (s *RunStoreImpl) confirm(run, prev payroll.Run, action payroll.Action) payroll.Run {
	now := s.now()
	if run.ProcessedAt == nil {
		switch {
		case action != payroll.ActionLock:
			run.ProcessedAt = &now
		case prev.ProcessedAt != nil:
			run.ProcessedAt = prev.ProcessedAt
		default:
			run.ProcessedAt = &now
		}
	}
	if run.Status == payroll.RunStatusLocked && run.LockedAt == nil {
		run.LockedAt = &now
	}
	return run
}

// ========== ITEMS ==========

// ListRunItems always goes to the server.
func (s *RunStoreImpl) ListRunItems(ctx context.Context, runID string) ([]payroll.Item, error) {
	items, err := s.repo.ListRunItems(ctx, runID)
	if err != nil {
		s.fail(err, "Failed to fetch payroll items")
		return nil, err
	}
	return items, nil
}

// OpenItems fetches a run's items and makes it the open items view.
func (s *RunStoreImpl) OpenItems(ctx context.Context, runID string) (payroll.ItemsView, error) {
	if run, ok := s.Run(runID); ok && !run.Allowed(payroll.ActionViewItems) {
		err := payroll.NotAllowed(run.Status, payroll.ActionViewItems)
		s.fail(err, "")
		return payroll.ItemsView{}, err
	}

	items, err := s.ListRunItems(ctx, runID)
	if err != nil {
		return payroll.ItemsView{}, err
	}

	view := payroll.ItemsView{RunID: runID, Items: items, FetchedAt: s.now()}
	s.mu.Lock()
	s.itemsView = &view
	s.mu.Unlock()
	return view, nil
}

func (s *RunStoreImpl) ItemsView() (payroll.ItemsView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.itemsView == nil {
		return payroll.ItemsView{}, false
	}
	return *s.itemsView, true
}

func (s *RunStoreImpl) CloseItems() {
	s.mu.Lock()
	s.itemsView = nil
	s.mu.Unlock()
}

// ========== HELPERS ==========

// reload fetches and installs the authoritative list without notifying.
func (s *RunStoreImpl) reload(ctx context.Context) ([]payroll.Run, error) {
	runs, err := s.repo.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	SortRuns(runs)

	s.mu.Lock()
	s.runs = runs
	s.mu.Unlock()
	return append([]payroll.Run(nil), runs...), nil
}

// merge replaces the run with the same id, or inserts it, and re-sorts.
func (s *RunStoreImpl) merge(run payroll.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(run.ID); i >= 0 {
		s.runs[i] = run
	} else {
		s.runs = append(s.runs, run)
	}
	SortRuns(s.runs)
}

// indexOf must be called with mu held.
func (s *RunStoreImpl) indexOf(id string) int {
	for i, r := range s.runs {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// fail emits the single notification for a failed operation.
func (s *RunStoreImpl) fail(err error, fallback string) {
	msg := apperrors.UserMessage(err, fallback)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msg = fieldErrs.Error()
	}
	s.notifier.Notify(notification.LevelError, msg)
	s.logger.Warn("payroll run operation failed", "error", err)
}

// SortRuns orders runs by year, month and creation time, newest first. Runs
// that tie on all three keep their relative order.
func SortRuns(runs []payroll.Run) {
	sort.SliceStable(runs, func(i, j int) bool {
		a, b := runs[i], runs[j]
		if a.Period.Year != b.Period.Year {
			return a.Period.Year > b.Period.Year
		}
		if a.Period.Month != b.Period.Month {
			return a.Period.Month > b.Period.Month
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func verb(action payroll.Action) string {
	if action == payroll.ActionLock {
		return "lock"
	}
	return "process"
}

func pastTense(action payroll.Action) string {
	if action == payroll.ActionLock {
		return "locked"
	}
	return "processed"
}
