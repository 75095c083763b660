// Package scheduler runs the background notification loop: it polls every
// tracker, counts what is left to do today, and emits deduplicated reminder
// and completion notifications through an injected sink.
package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mglynn/daytrack/internal/constants"
	"github.com/mglynn/daytrack/internal/logger"
	"github.com/mglynn/daytrack/internal/models"
	"github.com/mglynn/daytrack/internal/projection"
	"github.com/mglynn/daytrack/internal/storage"
	"github.com/mglynn/daytrack/internal/utils"
)

// Sink delivers notifications to the platform shell. Available is a
// one-time capability probe; both methods failing is non-fatal to the
// scheduler.
type Sink interface {
	Available() error
	Send(title, body string) error
}

// Scheduler is the single app-wide notification loop. Start and Stop manage
// its lifecycle; a stopped scheduler can be started again.
type Scheduler struct {
	store storage.Provider
	sink  Sink
	now   func() time.Time

	pollInterval  time.Duration
	purgeInterval time.Duration
	cooldown      time.Duration

	mu         sync.Mutex
	stopCh     chan struct{}
	pollTicker *time.Ticker
	purgeTick  *time.Ticker

	canNotify atomic.Bool
	polling   atomic.Bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock pins "now" for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithIntervals overrides the poll and purge periods.
func WithIntervals(poll, purge time.Duration) Option {
	return func(s *Scheduler) {
		s.pollInterval = poll
		s.purgeInterval = purge
	}
}

// WithCooldown overrides the reminder dedupe window.
func WithCooldown(d time.Duration) Option {
	return func(s *Scheduler) { s.cooldown = d }
}

func New(store storage.Provider, sink Sink, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:         store,
		sink:          sink,
		now:           time.Now,
		pollInterval:  constants.PollInterval,
		purgeInterval: constants.PurgeInterval,
		cooldown:      constants.ReminderCooldown,
	}
	// One-shot polls without Start trust the caller to have probed the
	// sink. Start re-probes and downgrades if needed.
	s.canNotify.Store(true)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start arms the polling loop. Calling Start on a running scheduler tears
// down the existing timers first, so it never double-schedules. The first
// poll and a weekend purge run immediately.
func (s *Scheduler) Start() {
	s.mu.Lock()
	s.stopLocked()

	s.canNotify.Store(true)
	if err := s.sink.Available(); err != nil {
		logger.Warn("Notifications unavailable, scheduler will only keep bookkeeping quiet", "error", err)
		s.canNotify.Store(false)
	}

	s.stopCh = make(chan struct{})
	s.pollTicker = time.NewTicker(s.pollInterval)
	s.purgeTick = time.NewTicker(s.purgeInterval)
	stopCh, pollC, purgeC := s.stopCh, s.pollTicker.C, s.purgeTick.C
	s.mu.Unlock()

	s.PurgeIfWeekend()
	s.Poll()

	go func() {
		for {
			select {
			case <-stopCh:
				return
			case <-pollC:
				s.Poll()
			case <-purgeC:
				s.PurgeIfWeekend()
			}
		}
	}()
}

// Stop cancels both timers synchronously. An in-flight poll is allowed to
// finish; its re-entrancy flag clears when it does.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.stopCh == nil {
		return
	}
	s.pollTicker.Stop()
	s.purgeTick.Stop()
	close(s.stopCh)
	s.stopCh = nil
}

// Running reports whether the scheduler currently has timers armed.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopCh != nil
}

// Poll runs one notification check across all trackers. A poll that fires
// while another is in flight is skipped, not queued. Errors are logged and
// treated as "nothing to notify this cycle"; nothing ever escapes into the
// timer goroutine.
func (s *Scheduler) Poll() {
	if !s.polling.CompareAndSwap(false, true) {
		logger.Debug("Poll already in flight, skipping")
		return
	}
	defer s.polling.Store(false)

	if err := s.checkAndNotifyAllTrackers(); err != nil {
		logger.Error("Notification poll failed", "error", err)
	}
}

func (s *Scheduler) checkAndNotifyAllTrackers() error {
	settings, err := s.store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		return nil
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}

	now := s.now().In(loc)
	today := utils.FormatDate(now)

	trackers, err := s.store.GetAllTrackers()
	if err != nil {
		return fmt.Errorf("failed to list trackers: %w", err)
	}
	if len(trackers) == 0 {
		return nil
	}

	totalRemaining := 0
	for _, t := range trackers {
		tasks, err := s.store.GetTasksByTracker(t.ID)
		if err != nil {
			return fmt.Errorf("failed to list tasks for tracker %s: %w", t.ID, err)
		}
		completions, err := s.store.GetCompletionsByTrackerAndDate(t.ID, today)
		if err != nil {
			return fmt.Errorf("failed to list completions for tracker %s: %w", t.ID, err)
		}
		remaining, err := projection.Remaining(tasks, completions, today, loc)
		if err != nil {
			return fmt.Errorf("failed to project remaining tasks for tracker %s: %w", t.ID, err)
		}
		totalRemaining += remaining
	}

	if totalRemaining == 0 {
		return s.notifyCompletion(today, now)
	}
	return s.notifyReminder(today, now, totalRemaining)
}

// notifyCompletion fires at most once per day for the aggregate scope.
func (s *Scheduler) notifyCompletion(today string, now time.Time) error {
	_, err := s.store.GetNotificationLog(constants.AllTrackersScope, today, constants.NotificationCompletion)
	if err == nil {
		return nil // already celebrated today
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	if !s.send("All Tasks Completed !", "Well done ! You've completed all tasks for today.") {
		return nil
	}

	return s.store.PutNotificationLog(models.NotificationLog{
		ID:             uuid.New().String(),
		TrackerID:      constants.AllTrackersScope,
		Type:           constants.NotificationCompletion,
		SentAt:         now.UnixMilli(),
		Date:           today,
		TasksRemaining: 0,
	})
}

// notifyReminder fires unless a reminder went out within the cooldown
// window; re-sending overwrites the log entry with the fresh timestamp and
// count.
func (s *Scheduler) notifyReminder(today string, now time.Time, remaining int) error {
	entry, err := s.store.GetNotificationLog(constants.AllTrackersScope, today, constants.NotificationReminder)
	if err == nil {
		if now.Sub(entry.SentTime()) < s.cooldown {
			return nil
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	plural := ""
	if remaining > 1 {
		plural = "s"
	}
	if !s.send("Tasks Reminder", fmt.Sprintf("You have %d task%s remaining today.", remaining, plural)) {
		return nil
	}

	id := entry.ID
	if id == "" {
		id = uuid.New().String()
	}
	return s.store.PutNotificationLog(models.NotificationLog{
		ID:             id,
		TrackerID:      constants.AllTrackersScope,
		Type:           constants.NotificationReminder,
		SentAt:         now.UnixMilli(),
		Date:           today,
		TasksRemaining: remaining,
	})
}

// send delivers through the sink and reports whether a log entry should be
// written. Denied permission or delivery failure downgrades silently: no
// send, no log write.
func (s *Scheduler) send(title, body string) bool {
	if !s.canNotify.Load() {
		logger.Debug("Notification skipped, sink unavailable", "title", title)
		return false
	}
	if err := s.sink.Send(title, body); err != nil {
		logger.Warn("Failed to send notification", "title", title, "error", err)
		return false
	}
	return true
}

// PurgeIfWeekend wipes the notification log on Saturdays and Sundays so the
// dedupe state cannot carry stale entries into following weeks. On weekdays
// it is a no-op.
func (s *Scheduler) PurgeIfWeekend() {
	wd := s.now().Weekday()
	if wd != time.Saturday && wd != time.Sunday {
		return
	}
	if err := s.store.PurgeNotificationLog(); err != nil {
		logger.Error("Failed to purge notification log", "error", err)
	}
}
