package cron

import (
	"context"
	"time"
)

// Sweeper is the housekeeping surface of the session manager.
type Sweeper interface {
	Sweep(ctx context.Context) int
	SweepNotifications(ctx context.Context) int
}

type SessionJobs struct {
	sweeper              Sweeper
	sessionInterval      time.Duration
	notificationInterval time.Duration
}

func NewSessionJobs(sweeper Sweeper, sessionInterval, notificationInterval time.Duration) *SessionJobs {
	return &SessionJobs{
		sweeper:              sweeper,
		sessionInterval:      sessionInterval,
		notificationInterval: notificationInterval,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_expired_sessions", j.sessionInterval, j.SweepSessions)
	scheduler.AddJob("dismiss_expired_notifications", j.notificationInterval, j.DismissNotifications)
}

func (j *SessionJobs) SweepSessions(ctx context.Context) error {
	j.sweeper.Sweep(ctx)
	return nil
}

func (j *SessionJobs) DismissNotifications(ctx context.Context) error {
	j.sweeper.SweepNotifications(ctx)
	return nil
}
