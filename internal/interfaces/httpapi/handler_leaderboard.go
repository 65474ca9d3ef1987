package httpapi

import (
	"context"
	"net/http"

	"github.com/marcusta/golf-serie-sub009/internal/domain/leaderboard"
	"github.com/marcusta/golf-serie-sub009/internal/usecase"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	competitionID, err := pathInt(r, "competitionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.leaderboardService.Individual(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(ctx, board))
}

func (h *Handler) GetTeamLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamLeaderboard")
	defer span.End()

	competitionID, err := pathInt(r, "competitionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.leaderboardService.Teams(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "team leaderboard failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamResultDTO, 0, len(results))
	for _, result := range results {
		items = append(items, teamResultToDTO(ctx, result))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type leaderboardDTO struct {
	CompetitionID int                   `json:"competitionId"`
	ScoringMode   string                `json:"scoringMode"`
	TeeName       string                `json:"teeName,omitempty"`
	TotalPar      int                   `json:"totalPar,omitempty"`
	Entries       []leaderboardEntryDTO `json:"entries"`
}

type leaderboardEntryDTO struct {
	ParticipantID    int    `json:"participantId"`
	DisplayName      string `json:"displayName"`
	TeamID           int    `json:"teamId"`
	TeamName         string `json:"teamName"`
	PositionName     string `json:"positionName"`
	HolesPlayed      int    `json:"holesPlayed"`
	TotalShots       int    `json:"totalShots"`
	RelativeToPar    int    `json:"relativeToPar"`
	GaveUp           bool   `json:"gaveUp"`
	NetTotalShots    *int   `json:"netTotalShots,omitempty"`
	NetRelativeToPar *int   `json:"netRelativeToPar,omitempty"`
}

type teamResultDTO struct {
	TeamID           int    `json:"teamId"`
	TeamName         string `json:"teamName"`
	ParticipantCount int    `json:"participantCount"`
	TotalShots       int    `json:"totalShots"`
	RelativeToPar    int    `json:"relativeToPar"`
	Position         int    `json:"position"`
	Points           int    `json:"points"`
}

func leaderboardToDTO(ctx context.Context, board usecase.Leaderboard) leaderboardDTO {
	ctx, span := startSpan(ctx, "httpapi.leaderboardToDTO")
	defer span.End()

	entries := make([]leaderboardEntryDTO, 0, len(board.Entries))
	for _, entry := range board.Entries {
		entries = append(entries, entryToDTO(ctx, entry))
	}

	return leaderboardDTO{
		CompetitionID: board.CompetitionID,
		ScoringMode:   string(board.ScoringMode),
		TeeName:       board.TeeName,
		TotalPar:      board.TotalPar,
		Entries:       entries,
	}
}

func entryToDTO(ctx context.Context, entry leaderboard.Entry) leaderboardEntryDTO {
	ctx, span := startSpan(ctx, "httpapi.entryToDTO")
	defer span.End()

	dto := leaderboardEntryDTO{
		ParticipantID: entry.ParticipantID,
		DisplayName:   entry.DisplayName,
		TeamID:        entry.TeamID,
		TeamName:      entry.TeamName,
		PositionName:  entry.PositionName,
		HolesPlayed:   entry.HolesPlayed,
		TotalShots:    entry.TotalShots,
		RelativeToPar: entry.RelativeToPar,
		GaveUp:        entry.GaveUp,
	}
	if entry.Net != nil {
		netTotal := entry.Net.TotalShots
		netRelative := entry.Net.RelativeToPar
		dto.NetTotalShots = &netTotal
		dto.NetRelativeToPar = &netRelative
	}
	return dto
}

func teamResultToDTO(ctx context.Context, result leaderboard.TeamResult) teamResultDTO {
	ctx, span := startSpan(ctx, "httpapi.teamResultToDTO")
	defer span.End()

	return teamResultDTO{
		TeamID:           result.TeamID,
		TeamName:         result.TeamName,
		ParticipantCount: result.ParticipantCount,
		TotalShots:       result.TotalShots,
		RelativeToPar:    result.RelativeToPar,
		Position:         result.Position,
		Points:           result.Points,
	}
}
