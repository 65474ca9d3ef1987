package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/marcusta/golf-serie-sub009/internal/domain/course"
	qb "github.com/marcusta/golf-serie-sub009/internal/platform/querybuilder"
)

type CourseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) GetCourse(ctx context.Context, courseID int) (course.Course, bool, error) {
	query, args, err := qb.Select("*").
		From("courses").
		Where(
			qb.Eq("id", courseID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return course.Course{}, false, fmt.Errorf("build get course query: %w", err)
	}

	var row courseTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return course.Course{}, false, nil
		}
		return course.Course{}, false, fmt.Errorf("get course: %w", err)
	}

	return course.Course{
		ID:        row.ID,
		Name:      row.Name,
		HoleCount: row.HoleCount,
	}, true, nil
}

func (r *CourseRepository) GetTee(ctx context.Context, teeID int) (course.Tee, bool, error) {
	query, args, err := qb.Select("*").
		From("tees").
		Where(
			qb.Eq("id", teeID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return course.Tee{}, false, fmt.Errorf("build get tee query: %w", err)
	}

	var row teeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return course.Tee{}, false, nil
		}
		return course.Tee{}, false, fmt.Errorf("get tee: %w", err)
	}

	return course.Tee{
		ID:            row.ID,
		CourseID:      row.CourseID,
		Name:          row.Name,
		CourseRating:  row.CourseRating,
		SlopeRating:   row.SlopeRating,
		Pars:          int64sToInts(row.Pars),
		StrokeIndexes: int64sToInts(row.StrokeIndexes),
	}, true, nil
}
