package course

import "context"

type Repository interface {
	GetCourse(ctx context.Context, courseID int) (Course, bool, error)
	GetTee(ctx context.Context, teeID int) (Tee, bool, error)
}
