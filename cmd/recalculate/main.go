package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"trustrace/internal/config"
	"trustrace/internal/domain/service/voting"
	"trustrace/internal/infrastructure/notifier"
	"trustrace/internal/infrastructure/persistence"
	"trustrace/pkg/application/connectors"
	"trustrace/pkg/contextx"
	"trustrace/pkg/logx"
)

// go run ./cmd/recalculate <contest_id>
//
// Recomputes the stored tallies of every submission in the contest.

const parallelism = 4

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.DateTime,
	}))

	if len(os.Args) < 2 { //nolint:mnd
		log.Error("usage: recalculate <contest_id>")
		os.Exit(2) //nolint:mnd
	}

	if err := run(contextx.WithLogger(ctx, log), log, os.Args[1]); err != nil {
		log.Error("recalculation failed", logx.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, contestID string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	contestRepo := persistence.NewContestRepository(db)
	submissionRepo := persistence.NewSubmissionRepository(db)

	if _, err := contestRepo.GetByID(ctx, contestID); err != nil {
		return fmt.Errorf("contestRepo.GetByID: %w", err)
	}

	submissions, err := submissionRepo.ListByContest(ctx, contestID)
	if err != nil {
		return fmt.Errorf("submissionRepo.ListByContest: %w", err)
	}

	// Tallies are recomputed in place; nothing is enqueued and alerts are dropped.
	svc := voting.NewService(
		contestRepo,
		submissionRepo,
		persistence.NewVoteRepository(db),
		nil,
		nil,
		notifier.Nop{},
		cfg.Voting,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for _, submission := range submissions {
		g.Go(func() error {
			results, err := svc.Recalculate(ctx, submission.ID)
			if err != nil {
				return fmt.Errorf("svc.Recalculate(%s): %w", submission.ID, err)
			}

			log.Info("submission recalculated",
				slog.String("submission_id", submission.ID),
				slog.Float64("weighted_votes", results.WeightedVotes),
				slog.Int("trust_confidence", results.TrustConfidence),
			)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	log.Info("contest recalculated",
		slog.String("contest_id", contestID),
		slog.Int("submissions", len(submissions)),
	)

	return nil
}
