package usecase

import (
	"context"
	"fmt"

	"github.com/marcusta/golf-serie-sub009/internal/domain/competition"
	"github.com/marcusta/golf-serie-sub009/internal/domain/scorecard"
	"github.com/marcusta/golf-serie-sub009/internal/platform/logging"
)

// ScoreService applies hole writes to the authoritative store. Writes are
// pure sets keyed by (participant, hole), so replaying the same write any
// number of times converges on the same state. The store applies last write
// wins by arrival time: a retried write that sat in a device queue can
// overwrite a newer value from another device. That is a documented trade-off
// of the protocol, not a bug to fix here.
type ScoreService struct {
	participantRepo scorecard.Repository
	competitionRepo competition.Repository
	logger          *logging.Logger
}

func NewScoreService(
	participantRepo scorecard.Repository,
	competitionRepo competition.Repository,
	logger *logging.Logger,
) *ScoreService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreService{
		participantRepo: participantRepo,
		competitionRepo: competitionRepo,
		logger:          logger,
	}
}

func (s *ScoreService) UpdateScore(ctx context.Context, participantID, hole, shots int) (scorecard.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.UpdateScore")
	defer span.End()

	if !scorecard.ValidShots(shots) {
		return scorecard.Participant{}, fmt.Errorf("%w: shots must be -1, 0 or positive, got %d", ErrInvalidInput, shots)
	}

	participant, exists, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return scorecard.Participant{}, fmt.Errorf("get participant: %w", err)
	}
	if !exists {
		return scorecard.Participant{}, fmt.Errorf("%w: participant=%d", ErrNotFound, participantID)
	}
	if hole < 1 || hole > participant.HoleCount() {
		return scorecard.Participant{}, fmt.Errorf("%w: hole %d is outside 1..%d", ErrInvalidInput, hole, participant.HoleCount())
	}

	if err := s.ensureUnlocked(ctx, participant); err != nil {
		return scorecard.Participant{}, err
	}

	if prior := participant.ShotsForHole(hole); prior != shots && prior != scorecard.ShotsUnreported {
		s.logger.DebugContext(ctx, "overwriting hole score",
			"participant_id", participantID, "hole", hole, "prior_shots", prior, "shots", shots)
	}

	if err := s.participantRepo.UpdateHoleScore(ctx, participantID, hole, shots); err != nil {
		return scorecard.Participant{}, fmt.Errorf("update hole score participant=%d hole=%d: %w", participantID, hole, err)
	}

	updated, exists, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return scorecard.Participant{}, fmt.Errorf("reload participant after score write: %w", err)
	}
	if !exists {
		return scorecard.Participant{}, fmt.Errorf("%w: participant=%d vanished after write", ErrNotFound, participantID)
	}
	return updated, nil
}

func (s *ScoreService) GetParticipant(ctx context.Context, participantID int) (scorecard.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.GetParticipant")
	defer span.End()

	participant, exists, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return scorecard.Participant{}, fmt.Errorf("get participant: %w", err)
	}
	if !exists {
		return scorecard.Participant{}, fmt.Errorf("%w: participant=%d", ErrNotFound, participantID)
	}
	return participant, nil
}

func (s *ScoreService) ensureUnlocked(ctx context.Context, participant scorecard.Participant) error {
	if participant.IsLocked {
		return fmt.Errorf("%w: participant=%d is finalized", ErrLocked, participant.ID)
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, participant.CompetitionID)
	if err != nil {
		return fmt.Errorf("get competition for lock check: %w", err)
	}
	if exists && comp.IsLocked {
		return fmt.Errorf("%w: competition=%d", ErrLocked, comp.ID)
	}
	return nil
}
