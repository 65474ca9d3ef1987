package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/marcusta/golf-serie-sub009/internal/domain/pendingwrite"
)

func openTestQueue(t *testing.T, path string) *PendingWriteRepository {
	t.Helper()
	repo, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestPendingWriteRepository_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pending.db")
	ctx := t.Context()

	repo := openTestQueue(t, path)
	if err := repo.Add(ctx, 1, 3, 5); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened := openTestQueue(t, path)
	writes, err := reopened.Retryable(ctx)
	if err != nil {
		t.Fatalf("Retryable() error = %v", err)
	}
	if len(writes) != 1 {
		t.Fatalf("Retryable() len = %d, want 1", len(writes))
	}
	w := writes[0]
	if w.ParticipantID != 1 || w.Hole != 3 || w.Shots != 5 {
		t.Errorf("Retryable()[0] = %+v, want participant=1 hole=3 shots=5", w)
	}
}

func TestPendingWriteRepository_AddReplacesAndResetsAttempts(t *testing.T) {
	repo := openTestQueue(t, ":memory:")
	ctx := t.Context()

	if err := repo.Add(ctx, 1, 3, 5); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := repo.MarkAttempted(ctx, 1, 3); err != nil {
		t.Fatalf("MarkAttempted() error = %v", err)
	}

	// A fresh user edit for the same hole supersedes the old one entirely.
	if err := repo.Add(ctx, 1, 3, 6); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	writes, err := repo.Retryable(ctx)
	if err != nil {
		t.Fatalf("Retryable() error = %v", err)
	}
	if len(writes) != 1 {
		t.Fatalf("Retryable() len = %d, want 1", len(writes))
	}
	if writes[0].Shots != 6 {
		t.Errorf("Shots = %d, want 6", writes[0].Shots)
	}
	if writes[0].Attempts != 0 {
		t.Errorf("Attempts = %d, want 0 after re-add", writes[0].Attempts)
	}
}

func TestPendingWriteRepository_MarkAttemptedDeletesAtCeiling(t *testing.T) {
	repo := openTestQueue(t, ":memory:")
	ctx := t.Context()

	if err := repo.Add(ctx, 1, 3, 5); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	for i := 1; i < pendingwrite.MaxAttempts; i++ {
		stillPending, err := repo.MarkAttempted(ctx, 1, 3)
		if err != nil {
			t.Fatalf("MarkAttempted() #%d error = %v", i, err)
		}
		if !stillPending {
			t.Fatalf("MarkAttempted() #%d = false, want true", i)
		}
	}

	stillPending, err := repo.MarkAttempted(ctx, 1, 3)
	if err != nil {
		t.Fatalf("MarkAttempted() error = %v", err)
	}
	if stillPending {
		t.Error("MarkAttempted() at ceiling = true, want false")
	}

	writes, err := repo.Retryable(ctx)
	if err != nil {
		t.Fatalf("Retryable() error = %v", err)
	}
	if len(writes) != 0 {
		t.Errorf("Retryable() len = %d, want 0 after drop", len(writes))
	}

	if _, hasPending, err := repo.OldestQueuedAt(ctx); err != nil {
		t.Fatalf("OldestQueuedAt() error = %v", err)
	} else if hasPending {
		t.Error("OldestQueuedAt() hasPending = true, want false after drop")
	}
}

func TestPendingWriteRepository_MarkAttemptedUnknownKey(t *testing.T) {
	repo := openTestQueue(t, ":memory:")

	stillPending, err := repo.MarkAttempted(t.Context(), 9, 9)
	if err != nil {
		t.Fatalf("MarkAttempted() error = %v", err)
	}
	if stillPending {
		t.Error("MarkAttempted() on missing row = true, want false")
	}
}

func TestPendingWriteRepository_RetryableOldestFirst(t *testing.T) {
	repo := openTestQueue(t, ":memory:")
	ctx := t.Context()

	base := time.Date(2026, time.June, 14, 10, 0, 0, 0, time.UTC)
	clock := base
	repo.WithClock(func() time.Time { return clock })

	if err := repo.Add(ctx, 2, 5, 4); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	clock = base.Add(time.Second)
	if err := repo.Add(ctx, 1, 1, 3); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	clock = base.Add(2 * time.Second)
	if err := repo.Add(ctx, 1, 2, 6); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	writes, err := repo.Retryable(ctx)
	if err != nil {
		t.Fatalf("Retryable() error = %v", err)
	}
	wantOrder := [][2]int{{2, 5}, {1, 1}, {1, 2}}
	if len(writes) != len(wantOrder) {
		t.Fatalf("Retryable() len = %d, want %d", len(writes), len(wantOrder))
	}
	for i, want := range wantOrder {
		got := pendingwrite.Key(writes[i].ParticipantID, writes[i].Hole)
		if got != want {
			t.Errorf("Retryable()[%d] key = %v, want %v", i, got, want)
		}
	}

	oldest, hasPending, err := repo.OldestQueuedAt(ctx)
	if err != nil {
		t.Fatalf("OldestQueuedAt() error = %v", err)
	}
	if !hasPending {
		t.Fatal("OldestQueuedAt() hasPending = false, want true")
	}
	if !oldest.Equal(base) {
		t.Errorf("OldestQueuedAt() = %v, want %v", oldest, base)
	}
}

func TestPendingWriteRepository_RemoveIsIdempotent(t *testing.T) {
	repo := openTestQueue(t, ":memory:")
	ctx := t.Context()

	if err := repo.Add(ctx, 1, 3, 5); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := repo.Remove(ctx, 1, 3); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := repo.Remove(ctx, 1, 3); err != nil {
		t.Fatalf("Remove() second call error = %v", err)
	}

	writes, err := repo.Retryable(ctx)
	if err != nil {
		t.Fatalf("Retryable() error = %v", err)
	}
	if len(writes) != 0 {
		t.Errorf("Retryable() len = %d, want 0", len(writes))
	}
}
