package payroll

import (
	"fmt"
	"sort"
)

// Action is something an admin can do to a run.
type Action string

const (
	ActionProcess   Action = "process"
	ActionReprocess Action = "reprocess"
	ActionViewItems Action = "view-items"
	ActionLock      Action = "lock"
)

// ActionSet is an unordered set of actions.
type ActionSet map[Action]struct{}

func newActionSet(actions ...Action) ActionSet {
	set := make(ActionSet, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}

func (s ActionSet) Has(a Action) bool {
	_, ok := s[a]
	return ok
}

// Without returns a copy of s minus the given actions.
func (s ActionSet) Without(actions ...Action) ActionSet {
	out := make(ActionSet, len(s))
	for a := range s {
		out[a] = struct{}{}
	}
	for _, a := range actions {
		delete(out, a)
	}
	return out
}

// Sorted returns the actions in a stable order for rendering.
func (s ActionSet) Sorted() []Action {
	out := make([]Action, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllowedActions returns the controls that are enabled for a run in status.
func AllowedActions(status RunStatus) ActionSet {
	switch status {
	case RunStatusDraft:
		return newActionSet(ActionProcess)
	case RunStatusProcessed:
		return newActionSet(ActionReprocess, ActionViewItems, ActionLock)
	case RunStatusLocked:
		return newActionSet(ActionViewItems)
	default:
		return newActionSet()
	}
}

// MutatingActions are the actions that change a run on the server.
var MutatingActions = []Action{ActionProcess, ActionReprocess, ActionLock}

// Transition returns the status reached by applying action to status.
// LOCKED has no outgoing transitions and nothing returns to DRAFT.
func Transition(status RunStatus, action Action) (RunStatus, error) {
	switch {
	case status == RunStatusDraft && action == ActionProcess:
		return RunStatusProcessed, nil
	case status == RunStatusProcessed && (action == ActionReprocess || action == ActionProcess):
		return RunStatusProcessed, nil
	case status == RunStatusProcessed && action == ActionLock:
		return RunStatusLocked, nil
	}
	return status, fmt.Errorf("%w: cannot %s a %s run", ErrActionNotPermitted, action, status)
}

// ProcessAction picks the process flavour shown for status: reprocess for an
// already processed run, process otherwise.
func ProcessAction(status RunStatus) Action {
	if status == RunStatusProcessed {
		return ActionReprocess
	}
	return ActionProcess
}
