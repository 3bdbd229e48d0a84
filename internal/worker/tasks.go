package worker

import (
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	TypeRecalculateSubmission = "submission:recalculate"

	QueueRecalculation = "recalculation"
)

type recalculatePayload struct {
	SubmissionID string `json:"submission_id"`
}

func NewRecalculateTask(submissionID string) (*asynq.Task, error) {
	payload, err := json.Marshal(recalculatePayload{SubmissionID: submissionID})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(TypeRecalculateSubmission, payload), nil
}

func parseRecalculateTask(t *asynq.Task) (string, error) {
	var payload recalculatePayload

	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return "", fmt.Errorf("json.Unmarshal: %w", err)
	}

	if payload.SubmissionID == "" {
		return "", errors.New("empty submission id")
	}

	return payload.SubmissionID, nil
}
