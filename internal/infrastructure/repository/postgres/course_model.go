package postgres

import (
	"time"

	"github.com/lib/pq"
)

type courseTableModel struct {
	ID        int        `db:"id"`
	Name      string     `db:"name"`
	HoleCount int        `db:"hole_count"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type teeTableModel struct {
	ID            int           `db:"id"`
	CourseID      int           `db:"course_id"`
	Name          string        `db:"name"`
	CourseRating  float64       `db:"course_rating"`
	SlopeRating   int           `db:"slope_rating"`
	Pars          pq.Int64Array `db:"pars"`
	StrokeIndexes pq.Int64Array `db:"stroke_indexes"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
	DeletedAt     *time.Time    `db:"deleted_at"`
}
