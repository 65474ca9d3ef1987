package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/marcusta/golf-serie-sub009/internal/domain/competition"
	"github.com/marcusta/golf-serie-sub009/internal/domain/course"
	"github.com/marcusta/golf-serie-sub009/internal/domain/leaderboard"
	"github.com/marcusta/golf-serie-sub009/internal/domain/scorecard"
	"github.com/marcusta/golf-serie-sub009/internal/platform/cache"
)

// LeaderboardService recomputes individual and team standings from the raw
// per-participant score arrays. It is stateless given a snapshot of
// participant data; every call is a full recomputation.
type LeaderboardService struct {
	participantRepo scorecard.Repository
	competitionRepo competition.Repository
	courseRepo      course.Repository
	points          leaderboard.PointsStrategy
	teeCache        *cache.Store
}

// Leaderboard is the individual standings payload: ranked entries plus the
// round metadata the UI renders next to them.
type Leaderboard struct {
	CompetitionID int
	ScoringMode   competition.ScoringMode
	TeeName       string
	TotalPar      int
	Entries       []leaderboard.Entry
}

func NewLeaderboardService(
	participantRepo scorecard.Repository,
	competitionRepo competition.Repository,
	courseRepo course.Repository,
	points leaderboard.PointsStrategy,
	teeCache *cache.Store,
) *LeaderboardService {
	if points == nil {
		points = leaderboard.StandardPoints{}
	}
	return &LeaderboardService{
		participantRepo: participantRepo,
		competitionRepo: competitionRepo,
		courseRepo:      courseRepo,
		points:          points,
		teeCache:        teeCache,
	}
}

func (s *LeaderboardService) Individual(ctx context.Context, competitionID int) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Individual")
	defer span.End()

	comp, participants, tee, teeFound, err := s.loadRound(ctx, competitionID)
	if err != nil {
		return Leaderboard{}, err
	}

	netActive := comp.ScoringMode.NetActive() && teeFound && netMetadataComplete(tee)
	entries := make([]leaderboard.Entry, 0, len(participants))
	for _, participant := range participants {
		entries = append(entries, buildEntry(participant, tee, netActive))
	}
	rankEntries(entries, netActive)

	out := Leaderboard{
		CompetitionID: competitionID,
		ScoringMode:   comp.ScoringMode,
		Entries:       entries,
	}
	if !netActive && comp.ScoringMode.NetActive() {
		// Handicap metadata is incomplete: degrade to gross rather than fail.
		out.ScoringMode = competition.ScoringGross
	}
	if teeFound {
		out.TeeName = tee.Name
		out.TotalPar = tee.TotalPar()
	}
	return out, nil
}

func (s *LeaderboardService) Teams(ctx context.Context, competitionID int) ([]leaderboard.TeamResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Teams")
	defer span.End()

	board, err := s.Individual(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return computeTeamResults(board.Entries, s.points), nil
}

func (s *LeaderboardService) loadRound(ctx context.Context, competitionID int) (competition.Competition, []scorecard.Participant, course.Tee, bool, error) {
	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, nil, course.Tee{}, false, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, nil, course.Tee{}, false, fmt.Errorf("%w: competition=%d", ErrNotFound, competitionID)
	}

	participants, err := s.participantRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, nil, course.Tee{}, false, fmt.Errorf("list participants: %w", err)
	}

	tee, teeFound, err := s.lookupTee(ctx, comp.TeeID)
	if err != nil {
		// Par metadata is a collaborator concern; the leaderboard still
		// renders without it, just with degraded columns.
		teeFound = false
	}

	return comp, participants, tee, teeFound, nil
}

func (s *LeaderboardService) lookupTee(ctx context.Context, teeID int) (course.Tee, bool, error) {
	if teeID <= 0 {
		return course.Tee{}, false, nil
	}
	if s.teeCache == nil {
		return s.courseRepo.GetTee(ctx, teeID)
	}

	key := fmt.Sprintf("tee:%d", teeID)
	value, err := s.teeCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		tee, exists, err := s.courseRepo.GetTee(ctx, teeID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: tee=%d", ErrNotFound, teeID)
		}
		return tee, nil
	})
	if err != nil {
		return course.Tee{}, false, err
	}
	tee, ok := value.(course.Tee)
	return tee, ok, nil
}

func netMetadataComplete(tee course.Tee) bool {
	return len(tee.Pars) > 0 && len(tee.StrokeIndexes) == len(tee.Pars)
}

// buildEntry computes one leaderboard row. Only positive shot counts are
// played holes: the unreported (0) and gave-up (-1) sentinels contribute to
// neither holesPlayed nor totalShots, though a gave-up participant stays on
// the board.
func buildEntry(participant scorecard.Participant, tee course.Tee, netActive bool) leaderboard.Entry {
	entry := leaderboard.Entry{
		ParticipantID: participant.ID,
		DisplayName:   participant.DisplayName,
		TeamID:        participant.TeamID,
		TeamName:      participant.TeamName,
		PositionName:  participant.PositionName,
		GaveUp:        participant.GaveUp(),
	}

	var allocated []int
	if netActive {
		allocated = AllocateStrokes(participant.CourseHandicap, tee.StrokeIndexes)
	}

	parPlayed := 0
	allocatedPlayed := 0
	for i, shots := range participant.Scores {
		if shots <= 0 {
			continue
		}
		entry.HolesPlayed++
		entry.TotalShots += shots
		if i < len(tee.Pars) {
			parPlayed += tee.Pars[i]
		}
		if i < len(allocated) {
			allocatedPlayed += allocated[i]
		}
	}
	entry.RelativeToPar = entry.TotalShots - parPlayed

	if netActive {
		netTotal := entry.TotalShots - allocatedPlayed
		entry.Net = &leaderboard.NetScore{
			TotalShots:    netTotal,
			RelativeToPar: netTotal - parPlayed,
		}
	}
	return entry
}

// rankEntries orders started participants before unstarted ones, then by
// ascending relative-to-par (net when active). The sort is stable and no
// secondary tie-break is applied: tied participants keep input order.
func rankEntries(entries []leaderboard.Entry, netActive bool) {
	sortKey := func(e leaderboard.Entry) int {
		if netActive && e.Net != nil {
			return e.Net.RelativeToPar
		}
		return e.RelativeToPar
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Started() != entries[j].Started() {
			return entries[i].Started()
		}
		if !entries[i].Started() {
			return false
		}
		return sortKey(entries[i]) < sortKey(entries[j])
	})
}

func computeTeamResults(entries []leaderboard.Entry, points leaderboard.PointsStrategy) []leaderboard.TeamResult {
	byTeam := make(map[int]*leaderboard.TeamResult)
	order := make([]int, 0)
	for _, entry := range entries {
		result, ok := byTeam[entry.TeamID]
		if !ok {
			result = &leaderboard.TeamResult{
				TeamID:   entry.TeamID,
				TeamName: entry.TeamName,
			}
			byTeam[entry.TeamID] = result
			order = append(order, entry.TeamID)
		}
		result.ParticipantCount++
		result.TotalShots += entry.TotalShots
		result.RelativeToPar += entry.RelativeToPar
	}

	out := make([]leaderboard.TeamResult, 0, len(order))
	for _, teamID := range order {
		out = append(out, *byTeam[teamID])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelativeToPar < out[j].RelativeToPar
	})
	for idx := range out {
		out[idx].Position = idx + 1
		out[idx].Points = points.Points(len(out), out[idx].Position)
	}
	return out
}
