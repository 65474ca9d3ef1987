package memory

import (
	"time"

	"github.com/marcusta/golf-serie-sub009/internal/domain/competition"
	"github.com/marcusta/golf-serie-sub009/internal/domain/course"
	"github.com/marcusta/golf-serie-sub009/internal/domain/scorecard"
)

// Demo data so the API runs without a database: one course, one tee, one
// two-team round in net mode.

func SeedCourses() []course.Course {
	return []course.Course{
		{ID: 1, Name: "Vasatorps GK", HoleCount: 18},
	}
}

func SeedTees() []course.Tee {
	return []course.Tee{
		{
			ID:           1,
			CourseID:     1,
			Name:         "Yellow",
			CourseRating: 71.8,
			SlopeRating:  128,
			Pars: []int{
				4, 4, 3, 5, 4, 4, 3, 4, 5,
				4, 3, 4, 5, 4, 4, 3, 4, 5,
			},
			StrokeIndexes: []int{
				7, 3, 17, 1, 11, 5, 15, 9, 13,
				6, 18, 2, 10, 8, 4, 16, 12, 14,
			},
		},
	}
}

func SeedCompetitions() []competition.Competition {
	return []competition.Competition{
		{
			ID:          1,
			Name:        "Seriespel omgång 1",
			Date:        time.Date(2026, time.June, 14, 8, 0, 0, 0, time.UTC),
			CourseID:    1,
			TeeID:       1,
			ScoringMode: competition.ScoringBoth,
		},
	}
}

func SeedParticipants() []scorecard.Participant {
	holes := 18
	participants := []scorecard.Participant{
		{ID: 1, TeamID: 1, TeamName: "Lag Nord", PositionName: "Spelare 1", DisplayName: "A. Lind", CourseHandicap: 12},
		{ID: 2, TeamID: 1, TeamName: "Lag Nord", PositionName: "Spelare 2", DisplayName: "B. Åkesson", CourseHandicap: 21},
		{ID: 3, TeamID: 2, TeamName: "Lag Syd", PositionName: "Spelare 1", DisplayName: "C. Persson", CourseHandicap: 8},
		{ID: 4, TeamID: 2, TeamName: "Lag Syd", PositionName: "Spelare 2", DisplayName: "D. Ek", CourseHandicap: 30},
	}
	for i := range participants {
		participants[i].CompetitionID = 1
		participants[i].Scores = make([]int, holes)
	}
	return participants
}
