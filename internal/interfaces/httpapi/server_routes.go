package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerScoreRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("PUT /v1/scores", handler.UpdateScore)
	mux.HandleFunc("GET /v1/participants/{participantID}", handler.GetParticipant)
}

func registerLeaderboardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions/{competitionID}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/team-leaderboard", handler.GetTeamLeaderboard)
}
