package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"trustrace/internal/domain"
	"trustrace/internal/domain/entity"
	"trustrace/pkg/errcodes"
	"trustrace/pkg/logx"
)

type SubmissionRecalculator interface {
	Recalculate(ctx context.Context, submissionID string) (entity.SubmissionResults, error)
}

type Recalculator struct {
	service SubmissionRecalculator
}

func NewRecalculator(service SubmissionRecalculator) *Recalculator {
	return &Recalculator{
		service: service,
	}
}

// Handle processes TypeRecalculateSubmission tasks. Malformed payloads and
// vanished submissions are not retried.
func (r *Recalculator) Handle(ctx context.Context, t *asynq.Task) error {
	submissionID, err := parseRecalculateTask(t)
	if err != nil {
		logger(ctx).Error("malformed recalculate task", logx.Error(err))
		return fmt.Errorf("parseRecalculateTask: %w: %w", err, asynq.SkipRetry)
	}

	results, err := r.service.Recalculate(ctx, submissionID)
	if err != nil {
		if domain.HasCode(err, errcodes.SubmissionNotFound) {
			logger(ctx).Warn("recalculate unknown submission", slog.String("submission_id", submissionID))
			return fmt.Errorf("service.Recalculate: %w: %w", err, asynq.SkipRetry)
		}

		return fmt.Errorf("service.Recalculate: %w", err)
	}

	logger(ctx).Info("submission recalculated",
		slog.String("submission_id", submissionID),
		slog.Int("votes", results.VoteCount),
		slog.Int("trust_confidence", results.TrustConfidence),
	)

	return nil
}
