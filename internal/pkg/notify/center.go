package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/notification"
)

const (
	DefaultTTL = 5 * time.Second
	maxActive  = 20
)

// Center holds one session's notifications. Entries auto-dismiss after ttl;
// expired entries are hidden immediately and pruned by Sweep.
type Center struct {
	mu      sync.RWMutex
	entries []notification.Notification
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// NewCenter creates a Center whose notifications live for ttl.
func NewCenter(ttl time.Duration, logger *slog.Logger) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Center{ttl: ttl, now: time.Now, logger: logger}
}

// Notify appends a notification. Only the newest maxActive are kept.
func (c *Center) Notify(level notification.Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries = append(c.entries, notification.Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	})
	if len(c.entries) > maxActive {
		c.entries = append([]notification.Notification(nil), c.entries[len(c.entries)-maxActive:]...)
	}

	c.logger.Debug("notification", "level", level, "message", message)
}

// Active returns unexpired notifications, oldest first.
func (c *Center) Active() []notification.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	out := make([]notification.Notification, 0, len(c.entries))
	for _, n := range c.entries {
		if !n.Expired(now) {
			out = append(out, n)
		}
	}
	return out
}

// Dismiss removes a notification before it expires.
func (c *Center) Dismiss(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.entries {
		if n.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

// Sweep drops expired notifications and reports how many were removed.
func (c *Center) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	kept := c.entries[:0]
	for _, n := range c.entries {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	removed := len(c.entries) - len(kept)
	c.entries = kept
	return removed
}
