package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/marcusta/golf-serie-sub009/internal/domain/competition"
	qb "github.com/marcusta/golf-serie-sub009/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID int) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").
		From("competitions").
		Where(
			qb.Eq("id", competitionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition: %w", err)
	}

	return competition.Competition{
		ID:                row.ID,
		Name:              row.Name,
		Date:              row.Date,
		CourseID:          row.CourseID,
		TeeID:             row.TeeID,
		ScoringMode:       competition.ScoringMode(row.ScoringMode),
		IsLocked:          row.IsLocked,
		ManualEntryFormat: row.ManualEntryFormat,
		PointsTemplate:    row.PointsTemplate,
	}, true, nil
}
