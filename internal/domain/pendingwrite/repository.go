package pendingwrite

import (
	"context"
	"time"
)

// Repository is the durable device-local queue. One instance exists per
// running client; the queue is never shared between devices.
type Repository interface {
	// Add upserts the write for (participantID, hole) and resets the attempt
	// counter: it must be called only for genuinely new user edits. Retries
	// never re-Add; they go through MarkAttempted.
	Add(ctx context.Context, participantID, hole, shots int) error
	// Remove deletes the entry after the server confirmed the write.
	Remove(ctx context.Context, participantID, hole int) error
	// MarkAttempted increments the attempt counter. When the counter reaches
	// MaxAttempts the entry is deleted and false is returned.
	MarkAttempted(ctx context.Context, participantID, hole int) (bool, error)
	// Retryable lists entries with Attempts < MaxAttempts, oldest first.
	Retryable(ctx context.Context) ([]Write, error)
	// OldestQueuedAt returns the queue's oldest entry time, false when empty.
	OldestQueuedAt(ctx context.Context) (time.Time, bool, error)
}
