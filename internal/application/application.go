package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/mymmrac/telego"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trustrace/internal/config"
	"trustrace/internal/domain/service/contest"
	"trustrace/internal/domain/service/profile"
	"trustrace/internal/domain/service/voting"
	"trustrace/internal/infrastructure/ethos"
	"trustrace/internal/infrastructure/notifier"
	"trustrace/internal/infrastructure/persistence"
	"trustrace/internal/server"
	"trustrace/internal/transport/bot"
	"trustrace/internal/transport/bot/handler"
	"trustrace/internal/worker"
	"trustrace/pkg/application/connectors"
	"trustrace/pkg/application/modules"
	"trustrace/pkg/contextx"
	"trustrace/pkg/logx"
	"trustrace/pkg/middlewarex"
)

const httpReadHeaderTimeout = 5 * time.Second

func Run(ctx context.Context, log *slog.Logger) error {
	ctx = contextx.WithLogger(ctx, log)

	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	// 2. Connectors
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	redisConnector := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}

	// 3. Ethos
	var scoreCache ethos.ScoreCache = ethos.NewMemoryCache(cfg.Ethos.CacheTTL)
	if cfg.Ethos.CacheBackend == config.CacheBackendRedis {
		scoreCache = ethos.NewRedisCache(redisConnector.Client(ctx), cfg.Ethos.CacheTTL)
		defer redisConnector.Close(ctx)
	}

	ethosClient := ethos.NewClient(cfg.Ethos, scoreCache)

	// 4. Repositories
	contestRepo := persistence.NewContestRepository(db)
	submissionRepo := persistence.NewSubmissionRepository(db)
	voteRepo := persistence.NewVoteRepository(db)

	// 5. Background jobs
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	}

	asynqClient := asynq.NewClient(redisOpt)
	defer func() {
		if err := asynqClient.Close(); err != nil {
			log.Error("asynqClient.Close", logx.Error(err))
		}
	}()

	enqueuer := worker.NewEnqueuer(asynqClient, cfg.Worker.RecalcDebounce)

	// 6. Telegram
	var (
		telegramBot *telego.Bot
		alerts      voting.Notifier = notifier.Nop{}
	)

	if cfg.Bot.Enabled() {
		telegramBot, err = telego.NewBot(cfg.Bot.Token)
		if err != nil {
			return fmt.Errorf("telego.NewBot: %w", err)
		}

		alerts = notifier.NewTelegram(telegramBot, cfg.Bot.AlertChatID)
	}

	// 7. Services
	profileService := profile.NewService(ethosClient)
	contestService := contest.NewService(contestRepo, submissionRepo, profileService, cfg.Contest)
	votingService := voting.NewService(
		contestRepo,
		submissionRepo,
		voteRepo,
		profileService,
		enqueuer,
		alerts,
		cfg.Voting,
	)

	// 8. HTTP API
	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger(log),
		middlewarex.Recovery,
		middlewarex.RequestLogging(logx.NewSensitiveDataMasker(), cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(logx.NewSensitiveDataMasker(), cfg.HTTP.LogFieldMaxLen),
	)

	server.NewServer(
		server.NewReputationServer(profileService, votingService),
		server.NewContestServer(contestService),
		server.NewVotingServer(votingService),
	).RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: httpReadHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	// 9. Modules
	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.Metrics.ListenAddress}.Run(ctx, g)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("zap.NewProduction: %w", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
		Concurrency:   cfg.Worker.Concurrency,
		Logger:        zapLogger.Sugar(),
	}.Run(ctx, g,
		modules.AsynqQueues{worker.QueueRecalculation: 1},
		modules.AsynqHandler{
			Pattern: worker.TypeRecalculateSubmission,
			Handle:  worker.NewRecalculator(votingService).Handle,
		},
	)

	if telegramBot != nil {
		commandBot := bot.New(
			telegramBot,
			handler.New(profileService, votingService, contestService),
			cfg.Bot.AdminID,
		)

		g.Go(func() error {
			if err := commandBot.Run(ctx); err != nil {
				return fmt.Errorf("commandBot.Run: %w", err)
			}

			return nil
		})
	} else {
		log.Warn("telegram bot disabled: BOT_TOKEN is empty")
	}

	log.Info("application started", slog.String("name", cfg.App.Name), slog.String("version", cfg.App.Version))

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
