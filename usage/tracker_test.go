package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type captureRecorder struct {
	totalTokens   int
	historyLength int
	calls         int
}

func (r *captureRecorder) RecordUsage(totalTokens, historyLength int) {
	r.totalTokens = totalTokens
	r.historyLength = historyLength
	r.calls++
}

func TestTracker_Update(t *testing.T) {
	tests := []struct {
		name         string
		request      int
		response     int
		wantPrompt   int
		wantRequest  int
		wantResponse int
	}{
		{
			name:        "request only",
			request:     10,
			wantPrompt:  10,
			wantRequest: 10,
		},
		{
			name:         "request and response",
			request:      7,
			response:     5,
			wantPrompt:   12,
			wantRequest:  7,
			wantResponse: 5,
		},
		{
			name: "both zero",
		},
		{
			name:        "negative coerced to zero",
			request:     -3,
			response:    -1,
			wantPrompt:  0,
			wantRequest: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(WithLogger(zaptest.NewLogger(t)))
			snap := tr.Update(tt.request, tt.response)

			assert.Equal(t, tt.wantRequest, snap.RequestTokens)
			assert.Equal(t, tt.wantResponse, snap.ResponseTokens)
			assert.Equal(t, tt.wantPrompt, snap.PromptTokens)
			assert.Equal(t, tt.wantPrompt, snap.TotalTokens)
			assert.NotEmpty(t, snap.ID)
			assert.Equal(t, 1, tr.Len())
		})
	}
}

func TestTracker_UpdateAccumulatesTotal(t *testing.T) {
	tr := NewTracker()

	tr.Update(10, 0)
	tr.Update(5, 3)
	snap := tr.Update(2, 0)

	assert.Equal(t, 20, snap.TotalTokens)
	assert.Equal(t, 2, snap.PromptTokens)
	assert.Equal(t, 3, tr.Len())

	// Every recorded snapshot keeps its own totals.
	hist := tr.History()
	require.Len(t, hist, 3)
	assert.Equal(t, 10, hist[0].TotalTokens)
	assert.Equal(t, 18, hist[1].TotalTokens)
	assert.Equal(t, 20, hist[2].TotalTokens)
}

func TestTracker_RemoveAt_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		prep  int // number of updates before removal
		index int
	}{
		{name: "empty history", prep: 0, index: 0},
		{name: "negative index", prep: 2, index: -1},
		{name: "index equals length", prep: 2, index: 2},
		{name: "index beyond length", prep: 2, index: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			for i := 0; i < tt.prep; i++ {
				tr.Update(1, 0)
			}

			_, err := tr.RemoveAt(tt.index)
			require.ErrorIs(t, err, ErrIndexOutOfRange)
			assert.Equal(t, tt.prep, tr.Len())
		})
	}
}

func TestTracker_RemoveAt_BaselineResetsSession(t *testing.T) {
	tr := NewTracker(WithLogger(zaptest.NewLogger(t)))
	tr.Update(10, 0)
	tr.Update(5, 5)

	snap, err := tr.RemoveAt(0)
	require.NoError(t, err)

	assert.True(t, snap.Zero())
	assert.Equal(t, 0, tr.Current().TotalTokens)
	// The surviving second snapshot keeps its recorded totals; the zeroed
	// baseline is appended after it.
	require.Equal(t, 2, tr.Len())
	hist := tr.History()
	assert.Equal(t, 20, hist[0].TotalTokens)
	assert.True(t, hist[1].Zero())
}

func TestTracker_RemoveAt_BaselineNeverEmptiesHistory(t *testing.T) {
	tr := NewTracker()
	tr.Update(3, 0)

	snap, err := tr.RemoveAt(0)
	require.NoError(t, err)

	assert.True(t, snap.Zero())
	require.Equal(t, 1, tr.Len())
	assert.True(t, tr.History()[0].Zero())
}

func TestTracker_RemoveAt_NonBaselineKeepsCounters(t *testing.T) {
	tr := NewTracker()
	tr.Update(10, 0)
	tr.Update(5, 0)
	tr.Update(2, 0)
	before := tr.Current()

	snap, err := tr.RemoveAt(1)
	require.NoError(t, err)

	assert.Equal(t, before, snap)
	assert.Equal(t, before, tr.Current())
	assert.Equal(t, 2, tr.Len())

	hist := tr.History()
	assert.Equal(t, 10, hist[0].TotalTokens)
	assert.Equal(t, 17, hist[1].TotalTokens)
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	tr.Update(10, 2)
	tr.Update(4, 0)

	snap := tr.Reset()

	assert.True(t, snap.Zero())
	require.Equal(t, 1, tr.Len())
	assert.True(t, tr.History()[0].Zero())
	assert.Equal(t, 0, tr.Current().TotalTokens)
}

func TestTracker_HistoryIsCopy(t *testing.T) {
	tr := NewTracker()
	tr.Update(1, 0)

	hist := tr.History()
	hist[0].TotalTokens = 999

	assert.Equal(t, 1, tr.History()[0].TotalTokens)
}

func TestTracker_SnapshotIDsUnique(t *testing.T) {
	tr := NewTracker()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		snap := tr.Update(i, 0)
		require.False(t, seen[snap.ID], "duplicate snapshot id %s", snap.ID)
		seen[snap.ID] = true
	}
}

func TestTracker_Recorder(t *testing.T) {
	rec := &captureRecorder{}
	tr := NewTracker(WithRecorder(rec))

	tr.Update(10, 0)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, 10, rec.totalTokens)
	assert.Equal(t, 1, rec.historyLength)

	tr.Update(5, 0)
	_, err := tr.RemoveAt(0)
	require.NoError(t, err)

	assert.Equal(t, 3, rec.calls)
	assert.Equal(t, 0, rec.totalTokens)
	assert.Equal(t, 2, rec.historyLength)
}
