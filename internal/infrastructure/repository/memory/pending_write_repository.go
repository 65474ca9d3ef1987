package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/marcusta/golf-serie-sub009/internal/domain/pendingwrite"
)

// PendingWriteRepository is the in-memory queue used by tests and by agents
// that do not need reload durability.
type PendingWriteRepository struct {
	mu    sync.Mutex
	items map[[2]int]pendingwrite.Write
	now   func() time.Time
}

func NewPendingWriteRepository() *PendingWriteRepository {
	return &PendingWriteRepository{
		items: make(map[[2]int]pendingwrite.Write),
		now:   time.Now,
	}
}

// WithClock overrides the queue clock; tests use it to age entries.
func (r *PendingWriteRepository) WithClock(now func() time.Time) *PendingWriteRepository {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
	return r
}

func (r *PendingWriteRepository) Add(_ context.Context, participantID, hole, shots int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[pendingwrite.Key(participantID, hole)] = pendingwrite.Write{
		ParticipantID: participantID,
		Hole:          hole,
		Shots:         shots,
		QueuedAt:      r.now(),
		Attempts:      0,
	}
	return nil
}

func (r *PendingWriteRepository) Remove(_ context.Context, participantID, hole int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, pendingwrite.Key(participantID, hole))
	return nil
}

func (r *PendingWriteRepository) MarkAttempted(_ context.Context, participantID, hole int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pendingwrite.Key(participantID, hole)
	w, ok := r.items[key]
	if !ok {
		return false, nil
	}
	w.Attempts++
	if w.Attempts >= pendingwrite.MaxAttempts {
		delete(r.items, key)
		return false, nil
	}
	r.items[key] = w
	return true, nil
}

func (r *PendingWriteRepository) Retryable(_ context.Context) ([]pendingwrite.Write, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]pendingwrite.Write, 0, len(r.items))
	for _, w := range r.items {
		if w.Retryable() {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].QueuedAt.Before(out[j].QueuedAt)
	})
	return out, nil
}

func (r *PendingWriteRepository) OldestQueuedAt(_ context.Context) (time.Time, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	oldest := time.Time{}
	for _, w := range r.items {
		if oldest.IsZero() || w.QueuedAt.Before(oldest) {
			oldest = w.QueuedAt
		}
	}
	if oldest.IsZero() {
		return time.Time{}, false, nil
	}
	return oldest, true, nil
}
