package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/marcusta/golf-serie-sub009/internal/config"
	"github.com/marcusta/golf-serie-sub009/internal/domain/competition"
	"github.com/marcusta/golf-serie-sub009/internal/domain/course"
	"github.com/marcusta/golf-serie-sub009/internal/domain/leaderboard"
	"github.com/marcusta/golf-serie-sub009/internal/domain/scorecard"
	"github.com/marcusta/golf-serie-sub009/internal/infrastructure/repository/memory"
	"github.com/marcusta/golf-serie-sub009/internal/infrastructure/repository/postgres"
	"github.com/marcusta/golf-serie-sub009/internal/interfaces/httpapi"
	"github.com/marcusta/golf-serie-sub009/internal/platform/cache"
	"github.com/marcusta/golf-serie-sub009/internal/platform/logging"
	"github.com/marcusta/golf-serie-sub009/internal/usecase"
)

// NewHTTPServer wires repositories, services and the router into a ready
// http.Server. The returned cleanup closes the database handle when the
// postgres driver is active.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger, appLogger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	if appLogger == nil {
		appLogger = logging.Default()
	}

	var (
		participantRepo scorecard.Repository
		competitionRepo competition.Repository
		courseRepo      course.Repository
		cleanup         = func() {}
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		participantRepo = postgres.NewParticipantRepository(db)
		competitionRepo = postgres.NewCompetitionRepository(db)
		courseRepo = postgres.NewCourseRepository(db)
		cleanup = func() { _ = db.Close() }
	default:
		participantRepo = memory.NewParticipantRepository(memory.SeedParticipants())
		competitionRepo = memory.NewCompetitionRepository(memory.SeedCompetitions())
		courseRepo = memory.NewCourseRepository(memory.SeedCourses(), memory.SeedTees())
	}

	var teeCache *cache.Store
	if cfg.CacheEnabled {
		teeCache = cache.NewStore(cfg.CacheTTL)
	}

	scoreSvc := usecase.NewScoreService(participantRepo, competitionRepo, appLogger)
	leaderboardSvc := usecase.NewLeaderboardService(
		participantRepo,
		competitionRepo,
		courseRepo,
		leaderboard.StandardPoints{},
		teeCache,
	)

	handler := httpapi.NewHandler(scoreSvc, leaderboardSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}
