// Package reminder schedules the daily creatine reminder.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/config"
	"github.com/meltforce/speedifit/internal/metrics"
)

const (
	Title = "💊 Creatine Time!"
	Body  = "Time to take your creatine for those Mark Wahlberg gains! 💪"
)

// Outcomes recorded per check.
const (
	OutcomeSent    = "sent"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Reminder is one notification to deliver.
type Reminder struct {
	Date   calendar.Date
	Streak int
	Title  string
	Body   string
}

// Notifier delivers reminders.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier writes reminders to the log.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) Notify(_ context.Context, r Reminder) error {
	n.Log.Info(r.Title, "body", r.Body, "date", r.Date, "streak", r.Streak)
	return nil
}

// Tracker is the creatine state the scheduler consults.
// *storage.Repository satisfies it.
type Tracker interface {
	TookCreatineToday(ctx context.Context) bool
	CreatineStreak(ctx context.Context) int
}

// Scheduler runs Check once a day at the configured local time.
type Scheduler struct {
	scheduler *gocron.Scheduler
	tracker   Tracker
	notifier  Notifier
	clock     calendar.Clock
	log       *slog.Logger
	metrics   *metrics.Manager
}

// New creates a scheduler for cfg.Time in the clock's location. The job is
// registered but nothing runs until Start.
func New(cfg config.ReminderConfig, clock calendar.Clock, tracker Tracker, notifier Notifier, log *slog.Logger, m *metrics.Manager) (*Scheduler, error) {
	hour, minute, err := cfg.Clock()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler: gocron.NewScheduler(clock.Loc()),
		tracker:   tracker,
		notifier:  notifier,
		clock:     clock,
		log:       log,
		metrics:   m,
	}

	at := fmt.Sprintf("%02d:%02d", hour, minute)
	if _, err := s.scheduler.Every(1).Day().At(at).SingletonMode().Do(s.run); err != nil {
		return nil, fmt.Errorf("scheduling reminder at %s: %w", at, err)
	}
	return s, nil
}

// Start begins running the job in the background.
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
	s.log.Info("creatine reminder scheduled", "next", s.NextRun())
}

// Stop terminates the scheduler.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// NextRun is when the reminder fires next.
func (s *Scheduler) NextRun() time.Time {
	_, t := s.scheduler.NextRun()
	return t
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.Check(ctx)
}

// Check sends a reminder unless creatine was already logged today.
func (s *Scheduler) Check(ctx context.Context) string {
	outcome := s.check(ctx)
	s.metrics.CounterReminders.WithLabelValues(outcome).Inc()
	return outcome
}

func (s *Scheduler) check(ctx context.Context) string {
	if s.tracker.TookCreatineToday(ctx) {
		s.log.Debug("creatine already taken, skipping reminder")
		return OutcomeSkipped
	}

	r := Reminder{
		Date:   s.clock.Today(),
		Streak: s.tracker.CreatineStreak(ctx),
		Title:  Title,
		Body:   Body,
	}
	if err := s.notifier.Notify(ctx, r); err != nil {
		s.log.Error("sending creatine reminder", "error", err)
		return OutcomeFailed
	}
	return OutcomeSent
}
