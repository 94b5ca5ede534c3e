package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/wordwise/internal/logger"
	"github.com/example/wordwise/pkg/models"
)

// Notifier delivers a study reminder to one user.
type Notifier interface {
	SendReminder(user models.User) error
}

// UserSource lists the users whose reminder falls within an hour.
type UserSource interface {
	ForReminder(ctx context.Context, hour int) ([]models.User, error)
}

// Scheduler fires study reminders. Once per hour it asks the graph for users
// whose reminder_time falls in the current hour and hands each to the
// notifier.
type Scheduler struct {
	scheduler *gocron.Scheduler
	users     UserSource
	notifier  Notifier
	log       *logger.Logger
}

// New creates a scheduler over the given user source and notifier.
func New(users UserSource, notifier Notifier, log *logger.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		users:     users,
		notifier:  notifier,
		log:       log.With("component", "scheduler"),
	}
}

// Start begins the hourly reminder sweep without blocking.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Hour().Do(s.sendReminders); err != nil {
		return fmt.Errorf("scheduler: register reminder job: %v", err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hour := time.Now().UTC().Hour()
	users, err := s.users.ForReminder(ctx, hour)
	if err != nil {
		s.log.Error("load users for reminder", "hour", hour, "error", err)
		return
	}
	if len(users) == 0 {
		return
	}

	sent := 0
	for _, u := range users {
		if err := s.notifier.SendReminder(u); err != nil {
			s.log.Warn("send reminder", "uid", u.UID, "error", err)
			continue
		}
		sent++
	}
	s.log.Info("reminders sent", "hour", hour, "count", sent)
}
