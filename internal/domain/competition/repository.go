package competition

import "context"

type Repository interface {
	GetByID(ctx context.Context, competitionID int) (Competition, bool, error)
}
