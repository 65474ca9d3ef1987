package scorecard

import "time"

// Shots sentinels. A hole that has not been reported yet carries 0; a hole the
// player gave up on carries -1. Anything positive is a real stroke count.
const (
	ShotsUnreported = 0
	ShotsGaveUp     = -1
)

// Participant is one player/team-position entry in a competition round. Scores
// is ordered by hole: index 0 holds hole 1.
type Participant struct {
	ID             int
	CompetitionID  int
	TeamID         int
	TeamName       string
	PositionName   string
	DisplayName    string
	IsLocked       bool
	HandicapIndex  float64
	CourseHandicap int
	Scores         []int
	UpdatedAt      time.Time
}

// ScoreEntry is a single hole's recorded result for one participant.
type ScoreEntry struct {
	ParticipantID int
	Hole          int
	Shots         int
}

// HoleCount returns the number of hole slots on the scorecard.
func (p Participant) HoleCount() int {
	return len(p.Scores)
}

// ShotsForHole returns the recorded value for a 1-indexed hole, or
// ShotsUnreported when the hole is out of range.
func (p Participant) ShotsForHole(hole int) int {
	if hole < 1 || hole > len(p.Scores) {
		return ShotsUnreported
	}
	return p.Scores[hole-1]
}

// GaveUp reports whether any hole carries the gave-up sentinel.
func (p Participant) GaveUp() bool {
	for _, shots := range p.Scores {
		if shots == ShotsGaveUp {
			return true
		}
	}
	return false
}

// ValidShots reports whether a shots value is acceptable for a write: zero
// clears the hole, -1 marks a give-up, positive values record strokes.
func ValidShots(shots int) bool {
	return shots >= ShotsGaveUp
}
