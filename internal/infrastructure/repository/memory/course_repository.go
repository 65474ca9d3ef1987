package memory

import (
	"context"
	"sync"

	"github.com/marcusta/golf-serie-sub009/internal/domain/course"
)

type CourseRepository struct {
	mu      sync.RWMutex
	courses map[int]course.Course
	tees    map[int]course.Tee
}

func NewCourseRepository(courses []course.Course, tees []course.Tee) *CourseRepository {
	courseByID := make(map[int]course.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
	}
	teeByID := make(map[int]course.Tee, len(tees))
	for _, t := range tees {
		teeByID[t.ID] = cloneTee(t)
	}
	return &CourseRepository{
		courses: courseByID,
		tees:    teeByID,
	}
}

func (r *CourseRepository) GetCourse(_ context.Context, courseID int) (course.Course, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[courseID]
	return c, ok, nil
}

func (r *CourseRepository) GetTee(_ context.Context, teeID int) (course.Tee, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tees[teeID]
	if !ok {
		return course.Tee{}, false, nil
	}
	return cloneTee(t), true, nil
}

func cloneTee(t course.Tee) course.Tee {
	t.Pars = append([]int(nil), t.Pars...)
	t.StrokeIndexes = append([]int(nil), t.StrokeIndexes...)
	return t
}
