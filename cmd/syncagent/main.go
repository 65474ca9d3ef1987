package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/marcusta/golf-serie-sub009/external/scoreapi"
	"github.com/marcusta/golf-serie-sub009/internal/config"
	"github.com/marcusta/golf-serie-sub009/internal/infrastructure/repository/sqlite"
	"github.com/marcusta/golf-serie-sub009/internal/platform/logging"
	"github.com/marcusta/golf-serie-sub009/internal/platform/resilience"
	"github.com/marcusta/golf-serie-sub009/internal/syncengine"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	}))

	appLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(appLogger)
	defer func() { _ = appLogger.Sync() }()

	queue, err := sqlite.Open(cfg.PendingDBPath)
	if err != nil {
		logger.Error("open pending-write store", "path", cfg.PendingDBPath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = queue.Close() }()

	client := scoreapi.NewClient(scoreapi.ClientConfig{
		BaseURL: cfg.ScoreAPIBaseURL,
		Timeout: cfg.ScoreAPITimeout,
		Logger:  appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ScoreAPICircuitEnabled,
			FailureThreshold: cfg.ScoreAPICircuitFailures,
			OpenTimeout:      cfg.ScoreAPICircuitOpenTime,
			HalfOpenMaxReq:   cfg.ScoreAPICircuitHalfOpen,
		},
	})

	engine, err := syncengine.NewEngine(syncengine.Config{
		Queue:         queue,
		Client:        client,
		Logger:        appLogger,
		SweepInterval: cfg.SweepInterval,
		MaxWorkers:    cfg.SweepMaxWorkers,
		Notify: func(n syncengine.Notice) {
			logger.Warn("score write discarded",
				"kind", string(n.Kind),
				"participant_id", n.ParticipantID,
				"hole", n.Hole,
				"shots", n.Shots,
				"error", n.Err,
			)
		},
	})
	if err != nil {
		logger.Error("build sync engine", "error", err)
		os.Exit(1)
	}

	if participantID, competitionID, ok := activeRoundFromEnv(); ok {
		engine.SetActiveRound(participantID, competitionID)
		logger.Info("active round configured",
			"participant_id", participantID, "competition_id", competitionID)
	}

	engine.Start()
	logger.Info("sync agent started",
		"score_api", cfg.ScoreAPIBaseURL,
		"pending_db", cfg.PendingDBPath,
		"sweep_interval", cfg.SweepInterval.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	engine.Close()
	logger.Info("sync agent stopped")
}

func activeRoundFromEnv() (int, int, bool) {
	participantID, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SYNC_PARTICIPANT_ID")))
	if err != nil || participantID <= 0 {
		return 0, 0, false
	}
	competitionID, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SYNC_COMPETITION_ID")))
	if err != nil || competitionID <= 0 {
		return 0, 0, false
	}
	return participantID, competitionID, true
}

func slogLevel(level logging.Level) slog.Level {
	switch level {
	case logging.LevelDebug:
		return slog.LevelDebug
	case logging.LevelWarn:
		return slog.LevelWarn
	case logging.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
