package scoreapi

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/marcusta/golf-serie-sub009/internal/usecase"
)

func TestMapStatusError_TerminalSentinels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"bad request", http.StatusBadRequest, usecase.ErrInvalidInput},
		{"forbidden", http.StatusForbidden, usecase.ErrLocked},
		{"not found", http.StatusNotFound, usecase.ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, usecase.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapStatusError(tt.status, &errorBody{Message: "nope"})
			if !errors.Is(err, tt.want) {
				t.Fatalf("mapStatusError(%d) = %v, want %v", tt.status, err, tt.want)
			}
			if IsTransient(err) {
				t.Fatalf("status %d must not be transient", tt.status)
			}
		})
	}
}

func TestMapStatusError_UnexpectedStatusIsTransient(t *testing.T) {
	for _, status := range []int{http.StatusConflict, http.StatusTooManyRequests, http.StatusTeapot} {
		err := mapStatusError(status, nil)
		if !IsTransient(err) {
			t.Fatalf("status %d should be transient, got %v", status, err)
		}
		if errors.Is(err, usecase.ErrInvalidInput) || errors.Is(err, usecase.ErrLocked) || errors.Is(err, usecase.ErrNotFound) {
			t.Fatalf("status %d must not map to a terminal sentinel", status)
		}
	}
}

func TestIsTransient_UnrelatedError(t *testing.T) {
	if IsTransient(errors.New("boom")) {
		t.Fatal("plain errors must not be transient")
	}
	if IsTransient(nil) {
		t.Fatal("nil must not be transient")
	}
}

func TestParticipantFromPayload(t *testing.T) {
	updatedAt := time.Date(2026, time.June, 14, 10, 0, 0, 0, time.UTC)
	payload := participantPayload{
		ID:             3,
		CompetitionID:  1,
		TeamID:         2,
		TeamName:       "Lag Syd",
		PositionName:   "1",
		DisplayName:    "C. Berg",
		HandicapIndex:  8,
		CourseHandicap: 8,
		Scores:         []int{4, 0},
		UpdatedAt:      updatedAt,
	}

	got := participantFromPayload(payload)

	if got.ID != 3 || got.CompetitionID != 1 || got.TeamName != "Lag Syd" {
		t.Fatalf("unexpected participant: %+v", got)
	}
	if got.ShotsForHole(1) != 4 || got.ShotsForHole(2) != 0 {
		t.Fatalf("unexpected scores: %v", got.Scores)
	}
	if !got.UpdatedAt.Equal(updatedAt) {
		t.Fatalf("unexpected UpdatedAt: %v", got.UpdatedAt)
	}
}

func TestNewClient_TrimsBaseURL(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: " https://api.golfserien.example.com/ "})
	if client.baseURL != "https://api.golfserien.example.com" {
		t.Fatalf("unexpected baseURL: %q", client.baseURL)
	}
	if client.timeout != 10*time.Second {
		t.Fatalf("unexpected default timeout: %s", client.timeout)
	}
}

func TestDo_RequiresBaseURL(t *testing.T) {
	client := NewClient(ClientConfig{})

	_, err := client.GetParticipant(t.Context(), 1)
	if err == nil {
		t.Fatal("expected error without a base url")
	}
}
