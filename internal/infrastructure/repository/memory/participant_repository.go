package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/marcusta/golf-serie-sub009/internal/domain/scorecard"
)

type ParticipantRepository struct {
	mu    sync.RWMutex
	items map[int]scorecard.Participant
	order []int
	now   func() time.Time
}

func NewParticipantRepository(participants []scorecard.Participant) *ParticipantRepository {
	items := make(map[int]scorecard.Participant, len(participants))
	order := make([]int, 0, len(participants))
	for _, p := range participants {
		items[p.ID] = cloneParticipant(p)
		order = append(order, p.ID)
	}
	return &ParticipantRepository{
		items: items,
		order: order,
		now:   time.Now,
	}
}

func (r *ParticipantRepository) GetByID(_ context.Context, participantID int) (scorecard.Participant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[participantID]
	if !ok {
		return scorecard.Participant{}, false, nil
	}
	return cloneParticipant(p), true, nil
}

func (r *ParticipantRepository) ListByCompetition(_ context.Context, competitionID int) ([]scorecard.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scorecard.Participant, 0, len(r.order))
	for _, id := range r.order {
		p := r.items[id]
		if p.CompetitionID != competitionID {
			continue
		}
		out = append(out, cloneParticipant(p))
	}
	return out, nil
}

func (r *ParticipantRepository) UpdateHoleScore(_ context.Context, participantID, hole, shots int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[participantID]
	if !ok {
		return fmt.Errorf("participant %d not found", participantID)
	}
	if hole < 1 || hole > len(p.Scores) {
		return fmt.Errorf("hole %d out of range for participant %d", hole, participantID)
	}

	p.Scores[hole-1] = shots
	p.UpdatedAt = r.now()
	r.items[participantID] = p
	return nil
}

func cloneParticipant(p scorecard.Participant) scorecard.Participant {
	p.Scores = append([]int(nil), p.Scores...)
	return p
}
