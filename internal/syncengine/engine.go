// Package syncengine keeps one device's local score edits converging with
// the authoritative store. It owns the pending-write queue, replays it on a
// fixed sweep interval, and pulls fresh server state on the triggers the
// policy layer approves.
package syncengine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/marcusta/golf-serie-sub009/internal/domain/leaderboard"
	"github.com/marcusta/golf-serie-sub009/internal/domain/pendingwrite"
	"github.com/marcusta/golf-serie-sub009/internal/domain/scorecard"
	"github.com/marcusta/golf-serie-sub009/internal/platform/logging"
	"github.com/marcusta/golf-serie-sub009/internal/platform/resilience"
	"github.com/marcusta/golf-serie-sub009/internal/usecase"
)

// Client is the engine's view of the score API.
type Client interface {
	UpdateScore(ctx context.Context, participantID, hole, shots int) (scorecard.Participant, error)
	GetParticipant(ctx context.Context, participantID int) (scorecard.Participant, error)
	GetLeaderboard(ctx context.Context, competitionID int) ([]leaderboard.Entry, error)
	GetTeamLeaderboard(ctx context.Context, competitionID int) ([]leaderboard.TeamResult, error)
}

type NoticeKind string

const (
	// NoticeWriteDropped: a write hit the retry ceiling and was discarded.
	// Non-blocking; the UI shows it once.
	NoticeWriteDropped NoticeKind = "write_dropped"
	// NoticeWriteRejected: the server refused the write permanently
	// (validation, locked round, unknown participant).
	NoticeWriteRejected NoticeKind = "write_rejected"
)

type Notice struct {
	Kind          NoticeKind
	ParticipantID int
	Hole          int
	Shots         int
	Err           error
}

type Notifier func(Notice)

type Config struct {
	Queue         pendingwrite.Repository
	Client        Client
	Logger        *logging.Logger
	SweepInterval time.Duration
	MaxWorkers    int
	Notify        Notifier
}

type Engine struct {
	queue         pendingwrite.Repository
	client        Client
	logger        *logging.Logger
	sweepInterval time.Duration
	pool          *ants.Pool
	flight        resilience.SingleFlight
	notify        Notifier
	now           func() time.Time

	loops    conc.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once

	mu                  sync.Mutex
	activeParticipantID int
	activeCompetitionID int
	activeView          View
	lastSyncAt          time.Time
	navigations         int
	participant         *scorecard.Participant
	entries             []leaderboard.Entry
	teams               []leaderboard.TeamResult
}

type SweepResult struct {
	Attempted int
	Replayed  int
	Retrying  int
	Dropped   int
	Rejected  int
	Refreshed bool
}

type pushOutcome int

const (
	pushReplayed pushOutcome = iota
	pushRetrying
	pushDropped
	pushRejected
)

func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Queue == nil {
		return nil, fmt.Errorf("pending-write queue is required")
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("score api client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	sweepInterval := cfg.SweepInterval
	if sweepInterval <= 0 {
		sweepInterval = SweepInterval
	}
	maxWorkers := cfg.MaxWorkers
	if maxWorkers < 1 {
		maxWorkers = 4
	}
	notify := cfg.Notify
	if notify == nil {
		notify = func(Notice) {}
	}

	pool, err := ants.NewPool(maxWorkers)
	if err != nil {
		return nil, fmt.Errorf("create sweep worker pool: %w", err)
	}

	return &Engine{
		queue:         cfg.Queue,
		client:        cfg.Client,
		logger:        logger,
		sweepInterval: sweepInterval,
		pool:          pool,
		notify:        notify,
		now:           time.Now,
		stop:          make(chan struct{}),
	}, nil
}

// Start launches the periodic sweep. Close stops it and waits.
func (e *Engine) Start() {
	e.loops.Go(func() {
		ticker := time.NewTicker(e.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-e.stop:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), e.sweepInterval)
				e.Sweep(ctx)
				cancel()
			}
		}
	})
}

func (e *Engine) Close() {
	e.stopOnce.Do(func() { close(e.stop) })
	e.loops.Wait()
	e.pool.Release()
}

// SetActiveRound points the engine at the participant/competition the device
// is scoring.
func (e *Engine) SetActiveRound(participantID, competitionID int) {
	e.mu.Lock()
	e.activeParticipantID = participantID
	e.activeCompetitionID = competitionID
	e.mu.Unlock()
}

// RecordScore is the interactive path: the edit is made durable first, then
// pushed immediately. Transient push failures are swallowed — the sweep will
// retry; terminal rejections discard the queue entry and come back as errors.
func (e *Engine) RecordScore(ctx context.Context, participantID, hole, shots int) error {
	if !scorecard.ValidShots(shots) {
		return fmt.Errorf("%w: shots must be -1, 0 or positive, got %d", usecase.ErrInvalidInput, shots)
	}
	if hole < 1 {
		return fmt.Errorf("%w: hole must be positive, got %d", usecase.ErrInvalidInput, hole)
	}

	if err := e.queue.Add(ctx, participantID, hole, shots); err != nil {
		return fmt.Errorf("queue score edit: %w", err)
	}

	outcome, err := e.push(ctx, pendingwrite.Write{ParticipantID: participantID, Hole: hole, Shots: shots})
	if outcome == pushRejected {
		return err
	}
	return nil
}

// Sweep replays every retryable queued write, in parallel but bounded by the
// worker pool, then refreshes the active scorecard when the policy calls for
// it. Safe to call redundantly.
func (e *Engine) Sweep(ctx context.Context) SweepResult {
	writes, err := e.queue.Retryable(ctx)
	if err != nil {
		e.logger.WarnContext(ctx, "list retryable pending writes failed", "error", err)
		return SweepResult{}
	}

	result := SweepResult{Attempted: len(writes)}
	if len(writes) > 0 {
		var mu sync.Mutex
		var wg sync.WaitGroup
		for _, w := range writes {
			w := w
			wg.Add(1)
			task := func() {
				defer wg.Done()
				outcome, _ := e.push(ctx, w)
				mu.Lock()
				switch outcome {
				case pushReplayed:
					result.Replayed++
				case pushRetrying:
					result.Retrying++
				case pushDropped:
					result.Dropped++
				case pushRejected:
					result.Rejected++
				}
				mu.Unlock()
			}
			if err := e.pool.Submit(task); err != nil {
				// Pool saturated or released: run inline rather than skip.
				task()
			}
		}
		wg.Wait()
	}

	oldestAge := time.Duration(0)
	remaining := 0
	if left, err := e.queue.Retryable(ctx); err == nil {
		remaining = len(left)
		if len(left) > 0 {
			oldestAge = e.now().Sub(left[0].QueuedAt)
		}
	}

	if shouldRefreshAfterSweep(result.Replayed, remaining, oldestAge) {
		if err := e.pullScorecard(ctx); err != nil {
			e.logger.DebugContext(ctx, "post-sweep scorecard refresh failed", "error", err)
		} else {
			result.Refreshed = true
		}
	}
	return result
}

// EnterView records the view switch and pulls when the policy says so.
func (e *Engine) EnterView(ctx context.Context, view View) error {
	e.mu.Lock()
	e.activeView = view
	hasLocal := e.participant != nil
	lastSyncAt := e.lastSyncAt
	e.mu.Unlock()

	if !shouldPullOnViewEnter(view, hasLocal, lastSyncAt, e.now()) {
		return nil
	}
	return e.pullForView(ctx, view)
}

// VisibilityRegained handles a device waking up mid-round.
func (e *Engine) VisibilityRegained(ctx context.Context) error {
	e.mu.Lock()
	lastSyncAt := e.lastSyncAt
	view := e.activeView
	e.mu.Unlock()

	if !shouldPullOnVisibilityRegain(lastSyncAt, e.now()) {
		return nil
	}
	return e.pullForView(ctx, view)
}

// NavigateHole counts hole moves within the scoring view and occasionally
// refreshes to pick up teammates' scores from other devices.
func (e *Engine) NavigateHole(ctx context.Context) error {
	e.mu.Lock()
	e.navigations++
	navigations := e.navigations
	e.mu.Unlock()

	if !shouldPullOnNavigation(navigations) {
		return nil
	}
	return e.pullScorecard(ctx)
}

// Offline implements the connectivity heuristic the UI indicator uses.
func (e *Engine) Offline(ctx context.Context) bool {
	oldest, hasPending, err := e.queue.OldestQueuedAt(ctx)
	if err != nil {
		e.logger.DebugContext(ctx, "oldest pending write lookup failed", "error", err)
		return false
	}
	return connectivityIssue(oldest, hasPending, e.now())
}

// Snapshot returns the last pulled scorecard for the active participant.
func (e *Engine) Snapshot() (scorecard.Participant, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.participant == nil {
		return scorecard.Participant{}, false
	}
	return *e.participant, true
}

// Leaderboard returns the last pulled individual standings.
func (e *Engine) Leaderboard() ([]leaderboard.Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.entries == nil {
		return nil, false
	}
	return append([]leaderboard.Entry(nil), e.entries...), true
}

// TeamResults returns the last pulled team standings.
func (e *Engine) TeamResults() ([]leaderboard.TeamResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.teams == nil {
		return nil, false
	}
	return append([]leaderboard.TeamResult(nil), e.teams...), true
}

func (e *Engine) push(ctx context.Context, w pendingwrite.Write) (pushOutcome, error) {
	updated, err := e.client.UpdateScore(ctx, w.ParticipantID, w.Hole, w.Shots)
	if err == nil {
		if rmErr := e.queue.Remove(ctx, w.ParticipantID, w.Hole); rmErr != nil {
			e.logger.WarnContext(ctx, "remove confirmed pending write failed",
				"participant_id", w.ParticipantID, "hole", w.Hole, "error", rmErr)
		}
		e.storeParticipant(updated)
		return pushReplayed, nil
	}

	if terminalWriteError(err) {
		if rmErr := e.queue.Remove(ctx, w.ParticipantID, w.Hole); rmErr != nil {
			e.logger.WarnContext(ctx, "remove rejected pending write failed",
				"participant_id", w.ParticipantID, "hole", w.Hole, "error", rmErr)
		}
		e.notify(Notice{Kind: NoticeWriteRejected, ParticipantID: w.ParticipantID, Hole: w.Hole, Shots: w.Shots, Err: err})
		return pushRejected, err
	}

	stillPending, mErr := e.queue.MarkAttempted(ctx, w.ParticipantID, w.Hole)
	if mErr != nil {
		e.logger.WarnContext(ctx, "mark pending write attempted failed",
			"participant_id", w.ParticipantID, "hole", w.Hole, "error", mErr)
		return pushRetrying, err
	}
	if !stillPending {
		e.notify(Notice{Kind: NoticeWriteDropped, ParticipantID: w.ParticipantID, Hole: w.Hole, Shots: w.Shots, Err: err})
		e.logger.InfoContext(ctx, "pending write dropped after retry ceiling",
			"participant_id", w.ParticipantID, "hole", w.Hole)
		return pushDropped, err
	}

	e.logger.DebugContext(ctx, "pending write will be retried",
		"participant_id", w.ParticipantID, "hole", w.Hole, "error", err)
	return pushRetrying, err
}

func (e *Engine) pullForView(ctx context.Context, view View) error {
	switch view {
	case ViewLeaderboard:
		return e.pullLeaderboard(ctx)
	case ViewTeamResults:
		return e.pullTeamResults(ctx)
	default:
		return e.pullScorecard(ctx)
	}
}

// Pulls are deduplicated per target: a pull already in flight is shared by
// concurrent triggers instead of queued behind them.
func (e *Engine) pullScorecard(ctx context.Context) error {
	e.mu.Lock()
	participantID := e.activeParticipantID
	e.mu.Unlock()
	if participantID <= 0 {
		return nil
	}

	_, err, _ := e.flight.Do(fmt.Sprintf("pull:participant:%d", participantID), func() (any, error) {
		participant, err := e.client.GetParticipant(ctx, participantID)
		if err != nil {
			return nil, err
		}
		e.storeParticipant(participant)
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("pull scorecard participant=%d: %w", participantID, err)
	}
	return nil
}

func (e *Engine) pullLeaderboard(ctx context.Context) error {
	e.mu.Lock()
	competitionID := e.activeCompetitionID
	e.mu.Unlock()
	if competitionID <= 0 {
		return nil
	}

	_, err, _ := e.flight.Do(fmt.Sprintf("pull:leaderboard:%d", competitionID), func() (any, error) {
		entries, err := e.client.GetLeaderboard(ctx, competitionID)
		if err != nil {
			return nil, err
		}
		e.mu.Lock()
		e.entries = entries
		e.lastSyncAt = e.now()
		e.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("pull leaderboard competition=%d: %w", competitionID, err)
	}
	return nil
}

func (e *Engine) pullTeamResults(ctx context.Context) error {
	e.mu.Lock()
	competitionID := e.activeCompetitionID
	e.mu.Unlock()
	if competitionID <= 0 {
		return nil
	}

	_, err, _ := e.flight.Do(fmt.Sprintf("pull:teams:%d", competitionID), func() (any, error) {
		teams, err := e.client.GetTeamLeaderboard(ctx, competitionID)
		if err != nil {
			return nil, err
		}
		e.mu.Lock()
		e.teams = teams
		e.lastSyncAt = e.now()
		e.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("pull team results competition=%d: %w", competitionID, err)
	}
	return nil
}

func (e *Engine) storeParticipant(p scorecard.Participant) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.activeParticipantID != 0 && p.ID != e.activeParticipantID {
		return
	}
	e.participant = &p
	e.lastSyncAt = e.now()
}

// terminalWriteError separates rejections that must never be retried from
// transient failures the queue absorbs.
func terminalWriteError(err error) bool {
	return errors.Is(err, usecase.ErrInvalidInput) ||
		errors.Is(err, usecase.ErrLocked) ||
		errors.Is(err, usecase.ErrNotFound)
}
