package memory

import (
	"context"
	"sync"

	"github.com/marcusta/golf-serie-sub009/internal/domain/competition"
)

type CompetitionRepository struct {
	mu    sync.RWMutex
	items map[int]competition.Competition
}

func NewCompetitionRepository(competitions []competition.Competition) *CompetitionRepository {
	items := make(map[int]competition.Competition, len(competitions))
	for _, c := range competitions {
		items[c.ID] = c
	}
	return &CompetitionRepository{items: items}
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID int) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[competitionID]
	return c, ok, nil
}

// SetLocked flips the round lock; used by tests and the demo wiring.
func (r *CompetitionRepository) SetLocked(competitionID int, locked bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[competitionID]
	if !ok {
		return
	}
	c.IsLocked = locked
	r.items[competitionID] = c
}
