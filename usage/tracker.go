package usage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tokstat/tokstat/types"
)

// ErrIndexOutOfRange is returned by RemoveAt for an index not present in history.
var ErrIndexOutOfRange = errors.New("usage history index out of range")

// Recorder receives usage gauge updates after every tracker mutation.
// Implemented by internal/metrics.Collector; a nil Recorder disables recording.
type Recorder interface {
	RecordUsage(totalTokens, historyLength int)
}

// Tracker maintains token-consumption bookkeeping across calls.
//
// Every Update appends one immutable snapshot to an ordered history.
// Index 0 of the history is the session baseline: removing it resets all
// running counters and re-seeds history with a zeroed snapshot, so history
// is never empty after a reset. Removing any other index is a plain history
// edit with no effect on the current counters.
//
// The read-modify-append path is not atomic, so all mutations are serialized
// behind a mutex.
type Tracker struct {
	mu       sync.Mutex
	current  types.TokenUsage
	history  []types.TokenUsage
	recorder Recorder
	logger   *zap.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the tracker logger.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithRecorder sets a usage gauge recorder.
func WithRecorder(r Recorder) Option {
	return func(t *Tracker) { t.recorder = r }
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With(zap.String("component", "usage"))
	return t
}

// Update records a request/response token pair. Negative inputs are coerced
// to 0. It recomputes PromptTokens, accumulates TotalTokens, appends a
// snapshot to history and returns that snapshot. Update never fails.
func (t *Tracker) Update(requestTokens, responseTokens int) types.TokenUsage {
	if requestTokens < 0 {
		requestTokens = 0
	}
	if responseTokens < 0 {
		responseTokens = 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.current.RequestTokens = requestTokens
	t.current.ResponseTokens = responseTokens
	t.current.PromptTokens = requestTokens + responseTokens
	t.current.TotalTokens += t.current.PromptTokens

	snap := t.snapshotLocked()
	t.history = append(t.history, snap)
	t.record()

	t.logger.Debug("usage updated",
		zap.Int("request_tokens", requestTokens),
		zap.Int("response_tokens", responseTokens),
		zap.Int("total_tokens", t.current.TotalTokens),
		zap.Int("history_length", len(t.history)))
	return snap
}

// RemoveAt removes the snapshot at index from history and returns the current
// counters. Removing index 0 resets all counters to zero and re-seeds history
// with a single zeroed snapshot (see Reset); removing any other index leaves
// the counters untouched.
func (t *Tracker) RemoveAt(index int) (types.TokenUsage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.history) {
		return types.TokenUsage{}, fmt.Errorf("%w: index %d, length %d",
			ErrIndexOutOfRange, index, len(t.history))
	}

	t.history = append(t.history[:index], t.history[index+1:]...)
	if index == 0 {
		t.resetLocked()
		t.logger.Info("usage session reset via baseline removal")
	} else {
		t.logger.Debug("usage snapshot removed",
			zap.Int("index", index),
			zap.Int("history_length", len(t.history)))
	}
	t.record()
	return t.current, nil
}

// Reset zeroes all counters and re-seeds history with a single zeroed
// snapshot. It is the explicit form of the RemoveAt(0) side effect.
func (t *Tracker) Reset() types.TokenUsage {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.history = t.history[:0]
	t.resetLocked()
	t.record()
	t.logger.Info("usage session reset")
	return t.current
}

// Current returns the live counters.
func (t *Tracker) Current() types.TokenUsage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// History returns a copy of the snapshot history, oldest first.
func (t *Tracker) History() []types.TokenUsage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]types.TokenUsage, len(t.history))
	copy(out, t.history)
	return out
}

// Len returns the number of recorded snapshots.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.history)
}

// snapshotLocked copies the current counters into a new identified snapshot.
func (t *Tracker) snapshotLocked() types.TokenUsage {
	snap := t.current
	snap.ID = uuid.NewString()
	return snap
}

// resetLocked zeroes the counters and appends the zeroed baseline snapshot.
// Caller must hold t.mu.
func (t *Tracker) resetLocked() {
	t.current = types.TokenUsage{}
	t.history = append(t.history, t.snapshotLocked())
}

func (t *Tracker) record() {
	if t.recorder != nil {
		t.recorder.RecordUsage(t.current.TotalTokens, len(t.history))
	}
}
