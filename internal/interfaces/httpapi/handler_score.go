package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/marcusta/golf-serie-sub009/internal/domain/scorecard"
	"github.com/marcusta/golf-serie-sub009/internal/usecase"
)

// UpdateScore is a pure set of one hole's shot count. Replays and retries of
// the same write land on the same state; a differing value overwrites.
func (h *Handler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateScore")
	defer span.End()

	var req scoreWriteRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	participant, err := h.scoreService.UpdateScore(ctx, req.ParticipantID, req.Hole, req.Shots)
	if err != nil {
		h.logger.WarnContext(ctx, "score write failed",
			"participant_id", req.ParticipantID, "hole", req.Hole, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantToDTO(ctx, participant))
}

func (h *Handler) GetParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetParticipant")
	defer span.End()

	participantID, err := pathInt(r, "participantID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	participant, err := h.scoreService.GetParticipant(ctx, participantID)
	if err != nil {
		h.logger.WarnContext(ctx, "get participant failed", "participant_id", participantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantToDTO(ctx, participant))
}

type scoreWriteRequest struct {
	ParticipantID int `json:"participantId" validate:"required,min=1"`
	Hole          int `json:"hole" validate:"required,min=1"`
	Shots         int `json:"shots" validate:"min=-1"`
}

type participantDTO struct {
	ID             int     `json:"id"`
	CompetitionID  int     `json:"competitionId"`
	TeamID         int     `json:"teamId"`
	TeamName       string  `json:"teamName"`
	PositionName   string  `json:"positionName"`
	DisplayName    string  `json:"displayName"`
	IsLocked       bool    `json:"isLocked"`
	HandicapIndex  float64 `json:"handicapIndex"`
	CourseHandicap int     `json:"courseHandicap"`
	Scores         []int   `json:"scores"`
	UpdatedAt      string  `json:"updatedAt"`
}

func participantToDTO(ctx context.Context, v scorecard.Participant) participantDTO {
	ctx, span := startSpan(ctx, "httpapi.participantToDTO")
	defer span.End()

	return participantDTO{
		ID:             v.ID,
		CompetitionID:  v.CompetitionID,
		TeamID:         v.TeamID,
		TeamName:       v.TeamName,
		PositionName:   v.PositionName,
		DisplayName:    v.DisplayName,
		IsLocked:       v.IsLocked,
		HandicapIndex:  v.HandicapIndex,
		CourseHandicap: v.CourseHandicap,
		Scores:         append([]int(nil), v.Scores...),
		UpdatedAt:      v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
