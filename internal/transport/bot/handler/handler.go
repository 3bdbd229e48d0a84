package handler

import (
	"context"

	"trustrace/internal/domain/entity"
	"trustrace/internal/domain/value"
)

type ProfileProvider interface {
	Profile(ctx context.Context, address value.Address) (entity.Profile, error)
}

type ResultsProvider interface {
	Results(ctx context.Context, submissionID string) (entity.SubmissionResults, error)
	Recalculate(ctx context.Context, submissionID string) (entity.SubmissionResults, error)
}

type ContestCloser interface {
	Close(ctx context.Context, id string) error
}

type Handler struct {
	profiles ProfileProvider
	results  ResultsProvider
	contests ContestCloser
}

func New(profiles ProfileProvider, results ResultsProvider, contests ContestCloser) *Handler {
	return &Handler{
		profiles: profiles,
		results:  results,
		contests: contests,
	}
}
