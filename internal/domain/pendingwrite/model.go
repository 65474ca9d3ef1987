package pendingwrite

import "time"

// MaxAttempts is the retry ceiling: once a write has failed this many times
// it is discarded rather than retried forever.
const MaxAttempts = 3

// Write is a score edit recorded on the device but not yet confirmed by the
// authoritative store. Writes are keyed by (ParticipantID, Hole); a newer
// local edit for the same key replaces the older one.
type Write struct {
	ParticipantID int
	Hole          int
	Shots         int
	QueuedAt      time.Time
	Attempts      int
}

// Key returns the queue key for a (participant, hole) pair.
func Key(participantID, hole int) [2]int {
	return [2]int{participantID, hole}
}

// Retryable reports whether the write is still eligible for replay.
func (w Write) Retryable() bool {
	return w.Attempts < MaxAttempts
}
