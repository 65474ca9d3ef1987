package scorecard

import "context"

type Repository interface {
	GetByID(ctx context.Context, participantID int) (Participant, bool, error)
	ListByCompetition(ctx context.Context, competitionID int) ([]Participant, error)
	// UpdateHoleScore sets one hole's shots for one participant. It is a plain
	// per-row set: whichever write reaches the store last wins, regardless of
	// when the client recorded it.
	UpdateHoleScore(ctx context.Context, participantID, hole, shots int) error
}
