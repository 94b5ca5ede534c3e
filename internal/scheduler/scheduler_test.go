package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/example/wordwise/internal/logger"
	"github.com/example/wordwise/pkg/models"
)

type fakeUserSource struct {
	users []models.User
	err   error
	hour  int
}

func (f *fakeUserSource) ForReminder(ctx context.Context, hour int) ([]models.User, error) {
	f.hour = hour
	return f.users, f.err
}

type fakeNotifier struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeNotifier) SendReminder(user models.User) error {
	if f.failFor[user.UID] {
		return errors.New("chat unreachable")
	}
	f.sent = append(f.sent, user.UID)
	return nil
}

func testScheduler(t *testing.T, users UserSource, notifier Notifier) *Scheduler {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return New(users, notifier, log)
}

func TestSendRemindersNotifiesEachUser(t *testing.T) {
	source := &fakeUserSource{users: []models.User{{UID: "u1"}, {UID: "u2"}}}
	notifier := &fakeNotifier{}
	s := testScheduler(t, source, notifier)

	s.sendReminders()

	if len(notifier.sent) != 2 {
		t.Errorf("sent = %v, want both users", notifier.sent)
	}
}

func TestSendRemindersSkipsFailures(t *testing.T) {
	source := &fakeUserSource{users: []models.User{{UID: "u1"}, {UID: "u2"}, {UID: "u3"}}}
	notifier := &fakeNotifier{failFor: map[string]bool{"u2": true}}
	s := testScheduler(t, source, notifier)

	s.sendReminders()

	if len(notifier.sent) != 2 {
		t.Errorf("sent = %v, want u1 and u3", notifier.sent)
	}
	for _, uid := range notifier.sent {
		if uid == "u2" {
			t.Error("failed user reported as sent")
		}
	}
}

func TestSendRemindersSourceFailure(t *testing.T) {
	source := &fakeUserSource{err: errors.New("graph down")}
	notifier := &fakeNotifier{}
	s := testScheduler(t, source, notifier)

	s.sendReminders()

	if len(notifier.sent) != 0 {
		t.Errorf("sent = %v, want none on source failure", notifier.sent)
	}
}
