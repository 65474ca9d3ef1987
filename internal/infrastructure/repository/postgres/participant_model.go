package postgres

import (
	"time"

	"github.com/lib/pq"
)

type participantTableModel struct {
	ID             int           `db:"id"`
	CompetitionID  int           `db:"competition_id"`
	TeamID         int           `db:"team_id"`
	TeamName       string        `db:"team_name"`
	PositionName   string        `db:"position_name"`
	DisplayName    string        `db:"display_name"`
	IsLocked       bool          `db:"is_locked"`
	HandicapIndex  float64       `db:"handicap_index"`
	CourseHandicap int           `db:"course_handicap"`
	Scores         pq.Int64Array `db:"scores"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
	DeletedAt      *time.Time    `db:"deleted_at"`
}
