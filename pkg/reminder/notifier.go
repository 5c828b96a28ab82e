package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	cronlib "github.com/robfig/cron/v3"

	"github.com/teslashibe/go-voxtend/internal/metrics"
	"github.com/teslashibe/go-voxtend/pkg/protocol"
)

// DefaultSchedule checks reminders every day at 09:00.
const DefaultSchedule = "0 0 9 * * *"

// Broadcaster delivers a message to connected dashboards.
type Broadcaster interface {
	BroadcastMessage(msg *protocol.Message) error
}

// NotifierConfig configures a Notifier.
type NotifierConfig struct {
	// Schedule is a cron expression with a seconds field.
	Schedule string

	// Now returns the current time.
	Now func() time.Time

	Logger *slog.Logger
}

// NotifierOption configures a Notifier.
type NotifierOption func(*NotifierConfig)

// WithSchedule sets the cron schedule.
func WithSchedule(spec string) NotifierOption {
	return func(c *NotifierConfig) { c.Schedule = spec }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) NotifierOption {
	return func(c *NotifierConfig) { c.Now = now }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) NotifierOption {
	return func(c *NotifierConfig) { c.Logger = l }
}

// Notifier periodically announces due reminders. Each reminder is announced
// at most once per calendar day.
type Notifier struct {
	cfg       NotifierConfig
	store     Store
	out       Broadcaster
	logger    *slog.Logger
	scheduler *cronlib.Cron

	mu       sync.Mutex
	notified map[string]string // scheme id -> date last announced
}

// NewNotifier validates the schedule and returns a stopped notifier.
func NewNotifier(store Store, out Broadcaster, opts ...NotifierOption) (*Notifier, error) {
	cfg := NotifierConfig{
		Schedule: DefaultSchedule,
		Now:      time.Now,
		Logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := &Notifier{
		cfg:       cfg,
		store:     store,
		out:       out,
		logger:    cfg.Logger.With("component", "reminder.notifier"),
		scheduler: cronlib.New(cronlib.WithSeconds()),
		notified:  make(map[string]string),
	}
	if _, err := n.scheduler.AddFunc(cfg.Schedule, func() { n.Check() }); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", cfg.Schedule, err)
	}
	return n, nil
}

// Start runs the schedule until Stop.
func (n *Notifier) Start() {
	n.scheduler.Start()
	n.logger.Info("reminder notifier started", "schedule", n.cfg.Schedule)
}

// Stop halts the schedule and returns a context done when a running check
// has finished.
func (n *Notifier) Stop() context.Context {
	return n.scheduler.Stop()
}

// Next returns the next scheduled check, or the zero time if stopped.
func (n *Notifier) Next() time.Time {
	entries := n.scheduler.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Check announces the reminders that are due now and not yet announced
// today. It returns the notifications sent.
func (n *Notifier) Check() []Notification {
	now := n.cfg.Now()
	today := now.Format(time.DateOnly)

	var sent []Notification
	for _, due := range n.store.Due(now) {
		id := due.Reminder.SchemeID

		n.mu.Lock()
		seen := n.notified[id] == today
		n.mu.Unlock()
		if seen {
			continue
		}

		msg, err := protocol.NewMessage(protocol.TypeReminder, protocol.ReminderData{
			SchemeID:   id,
			SchemeName: due.Reminder.SchemeName,
			Deadline:   due.Reminder.Deadline.Format(time.DateOnly),
			DaysLeft:   due.DaysLeft,
			Message:    due.Message,
		})
		if err == nil {
			err = n.out.BroadcastMessage(msg)
		}
		if err != nil {
			n.logger.Warn("broadcast reminder", "scheme", id, "error", err)
			continue
		}

		n.mu.Lock()
		n.notified[id] = today
		n.mu.Unlock()

		metrics.RemindersNotified.Inc()
		n.logger.Info("reminder sent", "scheme", id, "days_left", due.DaysLeft)
		sent = append(sent, due)
	}
	return sent
}
