package progression

import (
	"context"
	"errors"
	"testing"

	"github.com/example/wordwise/internal/graph"
	"github.com/example/wordwise/internal/logger"
	"github.com/example/wordwise/pkg/models"
)

type fakeStore struct {
	checkInErrs []error
	checkIns    int
	word        models.Word
	wordErr     error
}

func (f *fakeStore) CheckIn(ctx context.Context, uid string) (models.CheckInResult, error) {
	f.checkIns++
	if len(f.checkInErrs) > 0 {
		err := f.checkInErrs[0]
		f.checkInErrs = f.checkInErrs[1:]
		if err != nil {
			return models.CheckInResult{}, err
		}
	}
	return models.CheckInResult{StreakDays: 1, TotalStudyDays: 1}, nil
}

func (f *fakeStore) Stats(ctx context.Context, uid string) (models.UserStats, error) {
	return models.UserStats{}, nil
}

func (f *fakeStore) RandomWord(ctx context.Context, uid, wid string) (models.Word, error) {
	return f.word, f.wordErr
}

func (f *fakeStore) MarkMastered(ctx context.Context, uid, wordText string) error { return nil }
func (f *fakeStore) MarkLearning(ctx context.Context, uid, wordText string) error { return nil }

func testEngine(t *testing.T, store Store) *Engine {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return New(store, log)
}

func TestCheckInRetriesTransient(t *testing.T) {
	transient := errors.New("Neo.TransientError.Transaction.DeadlockDetected")
	store := &fakeStore{checkInErrs: []error{transient, transient}}
	engine := testEngine(t, store)

	result, err := engine.CheckIn(context.Background(), "u1")
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if store.checkIns != 3 {
		t.Errorf("attempts = %d, want 3", store.checkIns)
	}
	if result.StreakDays != 1 {
		t.Errorf("streak = %d, want 1", result.StreakDays)
	}
}

func TestCheckInGivesUpAfterThree(t *testing.T) {
	transient := errors.New("ConnectivityError: pool closed")
	store := &fakeStore{checkInErrs: []error{transient, transient, transient}}
	engine := testEngine(t, store)

	_, err := engine.CheckIn(context.Background(), "u1")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if store.checkIns != 3 {
		t.Errorf("attempts = %d, want 3", store.checkIns)
	}
}

func TestCheckInDoesNotRetryHardErrors(t *testing.T) {
	store := &fakeStore{checkInErrs: []error{graph.ErrNotFound}}
	engine := testEngine(t, store)

	_, err := engine.CheckIn(context.Background(), "missing")
	if !errors.Is(err, graph.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if store.checkIns != 1 {
		t.Errorf("attempts = %d, want 1", store.checkIns)
	}
}

func TestNextWordEmptyList(t *testing.T) {
	store := &fakeStore{wordErr: graph.ErrEmptyResult}
	engine := testEngine(t, store)

	_, ok, err := engine.NextWord(context.Background(), "u1", "l1")
	if err != nil {
		t.Fatalf("next word: %v", err)
	}
	if ok {
		t.Error("ok = true for empty list, want false")
	}
}

func TestNextWordReturnsWord(t *testing.T) {
	store := &fakeStore{word: models.Word{Text: "journey"}}
	engine := testEngine(t, store)

	word, ok, err := engine.NextWord(context.Background(), "u1", "l1")
	if err != nil {
		t.Fatalf("next word: %v", err)
	}
	if !ok || word.Text != "journey" {
		t.Errorf("got (%+v, %v), want journey with ok", word, ok)
	}
}
