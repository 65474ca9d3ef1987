package postgres

import "time"

type competitionTableModel struct {
	ID                int        `db:"id"`
	Name              string     `db:"name"`
	Date              time.Time  `db:"date"`
	CourseID          int        `db:"course_id"`
	TeeID             int        `db:"tee_id"`
	ScoringMode       string     `db:"scoring_mode"`
	IsLocked          bool       `db:"is_locked"`
	ManualEntryFormat string     `db:"manual_entry_format"`
	PointsTemplate    string     `db:"points_template"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
	DeletedAt         *time.Time `db:"deleted_at"`
}
