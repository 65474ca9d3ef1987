package syncengine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/marcusta/golf-serie-sub009/internal/domain/leaderboard"
	"github.com/marcusta/golf-serie-sub009/internal/domain/scorecard"
	"github.com/marcusta/golf-serie-sub009/internal/infrastructure/repository/memory"
	"github.com/marcusta/golf-serie-sub009/internal/usecase"
)

type fakeClient struct {
	mu          sync.Mutex
	writeErr    error
	participant scorecard.Participant
	entries     []leaderboard.Entry
	teams       []leaderboard.TeamResult
	writes      int
	pulls       int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		participant: scorecard.Participant{
			ID:            1,
			CompetitionID: 1,
			DisplayName:   "A. Lind",
			Scores:        make([]int, 18),
		},
		entries: []leaderboard.Entry{{ParticipantID: 1, DisplayName: "A. Lind"}},
		teams:   []leaderboard.TeamResult{{TeamID: 1, TeamName: "Lag Nord", Position: 1}},
	}
}

func (c *fakeClient) setWriteErr(err error) {
	c.mu.Lock()
	c.writeErr = err
	c.mu.Unlock()
}

func (c *fakeClient) UpdateScore(_ context.Context, participantID, hole, shots int) (scorecard.Participant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes++
	if c.writeErr != nil {
		return scorecard.Participant{}, c.writeErr
	}
	if participantID != c.participant.ID {
		return scorecard.Participant{}, fmt.Errorf("%w: participant=%d", usecase.ErrNotFound, participantID)
	}
	c.participant.Scores[hole-1] = shots
	out := c.participant
	out.Scores = append([]int(nil), c.participant.Scores...)
	return out, nil
}

func (c *fakeClient) GetParticipant(_ context.Context, participantID int) (scorecard.Participant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pulls++
	if participantID != c.participant.ID {
		return scorecard.Participant{}, fmt.Errorf("%w: participant=%d", usecase.ErrNotFound, participantID)
	}
	out := c.participant
	out.Scores = append([]int(nil), c.participant.Scores...)
	return out, nil
}

func (c *fakeClient) GetLeaderboard(context.Context, int) ([]leaderboard.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pulls++
	return append([]leaderboard.Entry(nil), c.entries...), nil
}

func (c *fakeClient) GetTeamLeaderboard(context.Context, int) ([]leaderboard.TeamResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pulls++
	return append([]leaderboard.TeamResult(nil), c.teams...), nil
}

type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *noticeRecorder) record(n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

func (r *noticeRecorder) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

func newEngineForTest(t *testing.T, client Client, notify Notifier) (*Engine, *memory.PendingWriteRepository) {
	t.Helper()
	queue := memory.NewPendingWriteRepository()
	engine, err := NewEngine(Config{
		Queue:      queue,
		Client:     client,
		MaxWorkers: 2,
		Notify:     notify,
	})
	require.NoError(t, err)
	t.Cleanup(engine.Close)
	engine.SetActiveRound(1, 1)
	return engine, queue
}

func TestEngine_RecordScore_PushesImmediately(t *testing.T) {
	client := newFakeClient()
	engine, queue := newEngineForTest(t, client, nil)

	require.NoError(t, engine.RecordScore(t.Context(), 1, 3, 5))

	pending, err := queue.Retryable(t.Context())
	require.NoError(t, err)
	require.Empty(t, pending, "confirmed write must leave the queue")

	snapshot, ok := engine.Snapshot()
	require.True(t, ok)
	require.Equal(t, 5, snapshot.ShotsForHole(3))
	require.Equal(t, 1, client.writes)
}

func TestEngine_RecordScore_TransientFailureStaysQueued(t *testing.T) {
	client := newFakeClient()
	client.setWriteErr(fmt.Errorf("connect: connection refused"))
	engine, queue := newEngineForTest(t, client, nil)

	// Offline edits succeed locally; the push failure is the sweep's problem.
	require.NoError(t, engine.RecordScore(t.Context(), 1, 3, 5))

	pending, err := queue.Retryable(t.Context())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, 1, pending[0].Attempts)
}

func TestEngine_Sweep_ReplaysQueuedWrites(t *testing.T) {
	client := newFakeClient()
	client.setWriteErr(fmt.Errorf("connect: connection refused"))
	engine, queue := newEngineForTest(t, client, nil)

	require.NoError(t, engine.RecordScore(t.Context(), 1, 1, 4))
	require.NoError(t, engine.RecordScore(t.Context(), 1, 2, 5))

	client.setWriteErr(nil)
	result := engine.Sweep(t.Context())

	require.Equal(t, 2, result.Attempted)
	require.Equal(t, 2, result.Replayed)
	require.True(t, result.Refreshed)

	pending, err := queue.Retryable(t.Context())
	require.NoError(t, err)
	require.Empty(t, pending)

	snapshot, ok := engine.Snapshot()
	require.True(t, ok)
	require.Equal(t, 4, snapshot.ShotsForHole(1))
	require.Equal(t, 5, snapshot.ShotsForHole(2))
}

func TestEngine_Sweep_DropsWriteAtRetryCeiling(t *testing.T) {
	client := newFakeClient()
	client.setWriteErr(fmt.Errorf("connect: connection refused"))
	recorder := &noticeRecorder{}
	engine, queue := newEngineForTest(t, client, recorder.record)

	require.NoError(t, engine.RecordScore(t.Context(), 1, 3, 5))

	first := engine.Sweep(t.Context())
	require.Equal(t, 1, first.Retrying)

	second := engine.Sweep(t.Context())
	require.Equal(t, 1, second.Dropped)

	pending, err := queue.Retryable(t.Context())
	require.NoError(t, err)
	require.Empty(t, pending, "dropped write must leave the queue")

	notices := recorder.all()
	require.Len(t, notices, 1)
	require.Equal(t, NoticeWriteDropped, notices[0].Kind)
	require.Equal(t, 3, notices[0].Hole)

	// Nothing left: the next sweep is a no-op.
	third := engine.Sweep(t.Context())
	require.Zero(t, third.Attempted)
}

func TestEngine_RecordScore_TerminalRejection(t *testing.T) {
	client := newFakeClient()
	client.setWriteErr(fmt.Errorf("%w: competition=1", usecase.ErrLocked))
	recorder := &noticeRecorder{}
	engine, queue := newEngineForTest(t, client, recorder.record)

	err := engine.RecordScore(t.Context(), 1, 3, 5)
	require.ErrorIs(t, err, usecase.ErrLocked)

	pending, listErr := queue.Retryable(t.Context())
	require.NoError(t, listErr)
	require.Empty(t, pending, "rejected write must never be retried")

	notices := recorder.all()
	require.Len(t, notices, 1)
	require.Equal(t, NoticeWriteRejected, notices[0].Kind)
}

func TestEngine_RecordScore_ValidatesLocally(t *testing.T) {
	client := newFakeClient()
	engine, queue := newEngineForTest(t, client, nil)

	require.ErrorIs(t, engine.RecordScore(t.Context(), 1, 3, -2), usecase.ErrInvalidInput)
	require.ErrorIs(t, engine.RecordScore(t.Context(), 1, 0, 4), usecase.ErrInvalidInput)

	pending, err := queue.Retryable(t.Context())
	require.NoError(t, err)
	require.Empty(t, pending, "invalid edits must not be queued")
	require.Zero(t, client.writes)
}

func TestEngine_EnterView_PullsStandings(t *testing.T) {
	client := newFakeClient()
	engine, _ := newEngineForTest(t, client, nil)

	require.NoError(t, engine.EnterView(t.Context(), ViewLeaderboard))
	entries, ok := engine.Leaderboard()
	require.True(t, ok)
	require.Len(t, entries, 1)

	require.NoError(t, engine.EnterView(t.Context(), ViewTeamResults))
	teams, ok := engine.TeamResults()
	require.True(t, ok)
	require.Equal(t, "Lag Nord", teams[0].TeamName)
}

func TestEngine_NavigateHole_PullsEveryThirdMove(t *testing.T) {
	client := newFakeClient()
	engine, _ := newEngineForTest(t, client, nil)

	for i := 0; i < 6; i++ {
		require.NoError(t, engine.NavigateHole(t.Context()))
	}
	require.Equal(t, 2, client.pulls)
}

func TestEngine_Offline(t *testing.T) {
	client := newFakeClient()
	client.setWriteErr(fmt.Errorf("connect: connection refused"))
	engine, queue := newEngineForTest(t, client, nil)

	queuedAt := time.Date(2026, time.June, 14, 10, 0, 0, 0, time.UTC)
	queue.WithClock(func() time.Time { return queuedAt })

	require.NoError(t, engine.RecordScore(t.Context(), 1, 3, 5))

	engine.now = func() time.Time { return queuedAt.Add(5 * time.Second) }
	require.False(t, engine.Offline(t.Context()), "young pending write is not offline")

	engine.now = func() time.Time { return queuedAt.Add(time.Minute) }
	require.True(t, engine.Offline(t.Context()), "stuck queue must flag connectivity issue")
}
