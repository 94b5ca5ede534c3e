package progression

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/wordwise/internal/graph"
	"github.com/example/wordwise/internal/logger"
	"github.com/example/wordwise/pkg/models"
)

// Store is the slice of the knowledge graph the engine drives.
type Store interface {
	CheckIn(ctx context.Context, uid string) (models.CheckInResult, error)
	Stats(ctx context.Context, uid string) (models.UserStats, error)
	RandomWord(ctx context.Context, uid, wid string) (models.Word, error)
	MarkMastered(ctx context.Context, uid, wordText string) error
	MarkLearning(ctx context.Context, uid, wordText string) error
}

const (
	checkInAttempts = 3
	retryBackoff    = 200 * time.Millisecond
)

// Engine coordinates the daily study flow: check-ins, word drawing and
// mastery transitions. It owns the retry policy for transient graph failures
// so handlers stay oblivious to them.
type Engine struct {
	store Store
	log   *logger.Logger
}

// New creates a progression engine over the given store.
func New(store Store, log *logger.Logger) *Engine {
	return &Engine{store: store, log: log.With("component", "progression")}
}

// CheckIn records a study day for the user. Transient graph failures are
// retried with doubling backoff; hard failures surface immediately.
func (e *Engine) CheckIn(ctx context.Context, uid string) (models.CheckInResult, error) {
	var lastErr error
	backoff := retryBackoff
	for attempt := 1; attempt <= checkInAttempts; attempt++ {
		result, err := e.store.CheckIn(ctx, uid)
		if err == nil {
			return result, nil
		}
		if !graph.IsTransient(err) {
			return models.CheckInResult{}, err
		}
		lastErr = err
		e.log.Warn("check-in retry", "uid", uid, "attempt", attempt, "error", err)
		if attempt < checkInAttempts {
			select {
			case <-ctx.Done():
				return models.CheckInResult{}, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return models.CheckInResult{}, fmt.Errorf("progression: check in after %d attempts: %w", checkInAttempts, lastErr)
}

// NextWord draws the user's next study word from the list. ok is false when
// the list is empty, which is an ordinary outcome rather than an error.
func (e *Engine) NextWord(ctx context.Context, uid, wid string) (models.Word, bool, error) {
	word, err := e.store.RandomWord(ctx, uid, wid)
	if err != nil {
		if errors.Is(err, graph.ErrEmptyResult) {
			return models.Word{}, false, nil
		}
		return models.Word{}, false, err
	}
	return word, true, nil
}

// MarkMastered promotes the word to mastered for the user.
func (e *Engine) MarkMastered(ctx context.Context, uid, wordText string) error {
	return e.store.MarkMastered(ctx, uid, wordText)
}

// MarkLearning flags the word as in progress for the user.
func (e *Engine) MarkLearning(ctx context.Context, uid, wordText string) error {
	return e.store.MarkLearning(ctx, uid, wordText)
}

// Stats returns the user's learning snapshot.
func (e *Engine) Stats(ctx context.Context, uid string) (models.UserStats, error) {
	return e.store.Stats(ctx, uid)
}
