package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Enqueuer schedules recalculations. Votes of one submission arriving within
// the same debounce window collapse into one recount.
type Enqueuer struct {
	client   *asynq.Client
	debounce time.Duration
	now      func() time.Time
}

func NewEnqueuer(client *asynq.Client, debounce time.Duration) *Enqueuer {
	return &Enqueuer{
		client:   client,
		debounce: debounce,
		now:      time.Now,
	}
}

func (e *Enqueuer) EnqueueRecalculation(ctx context.Context, submissionID string) error {
	task, err := NewRecalculateTask(submissionID)
	if err != nil {
		return fmt.Errorf("NewRecalculateTask: %w", err)
	}

	_, err = e.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueRecalculation),
		asynq.TaskID(recalculateTaskID(submissionID, e.now(), e.debounce)),
		asynq.ProcessIn(e.debounce),
		asynq.MaxRetry(5), //nolint:mnd // skip
	)
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	return nil
}

// recalculateTaskID names the recount of the debounce window containing at.
// A task runs no earlier than the end of its window, so a vote arriving while
// it is active always gets a new id.
func recalculateTaskID(submissionID string, at time.Time, debounce time.Duration) string {
	return fmt.Sprintf("%s:%s:%d", TypeRecalculateSubmission, submissionID, at.Truncate(debounce).UnixNano())
}
