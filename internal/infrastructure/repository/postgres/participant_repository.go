package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/marcusta/golf-serie-sub009/internal/domain/scorecard"
	qb "github.com/marcusta/golf-serie-sub009/internal/platform/querybuilder"
)

type ParticipantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) GetByID(ctx context.Context, participantID int) (scorecard.Participant, bool, error) {
	query, args, err := qb.Select("*").
		From("participants").
		Where(
			qb.Eq("id", participantID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return scorecard.Participant{}, false, fmt.Errorf("build get participant query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scorecard.Participant{}, false, nil
		}
		return scorecard.Participant{}, false, fmt.Errorf("get participant: %w", err)
	}

	return participantFromRow(row), true, nil
}

func (r *ParticipantRepository) ListByCompetition(ctx context.Context, competitionID int) ([]scorecard.Participant, error) {
	query, args, err := qb.Select("*").
		From("participants").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("team_id", "position_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	out := make([]scorecard.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, participantFromRow(row))
	}
	return out, nil
}

// UpdateHoleScore writes one array slot in place. Postgres arrays are
// 1-indexed, so the hole number addresses the slot directly; the single-row
// UPDATE is what serializes concurrent writers — last arrival wins.
func (r *ParticipantRepository) UpdateHoleScore(ctx context.Context, participantID, hole, shots int) error {
	query, args, err := qb.Update("participants").
		Set(fmt.Sprintf("scores[%d]", hole), shots).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", participantID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update hole score query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update hole score: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update hole score rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("participant %d not found for score update", participantID)
	}
	return nil
}

func participantFromRow(row participantTableModel) scorecard.Participant {
	return scorecard.Participant{
		ID:             row.ID,
		CompetitionID:  row.CompetitionID,
		TeamID:         row.TeamID,
		TeamName:       row.TeamName,
		PositionName:   row.PositionName,
		DisplayName:    row.DisplayName,
		IsLocked:       row.IsLocked,
		HandicapIndex:  row.HandicapIndex,
		CourseHandicap: row.CourseHandicap,
		Scores:         int64sToInts(row.Scores),
		UpdatedAt:      row.UpdatedAt,
	}
}
