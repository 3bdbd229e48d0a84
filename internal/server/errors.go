package server

import (
	"context"
	"errors"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"trustrace/internal/domain"
	"trustrace/pkg/errcodes"
	"trustrace/pkg/httpx/reply"
)

//nolint:gochecknoglobals
var statusByCode = map[failure.ErrorCode]int{
	errcodes.ValidationError:     http.StatusBadRequest,
	errcodes.InvalidPaging:       http.StatusBadRequest,
	errcodes.InvalidAddress:      http.StatusBadRequest,
	errcodes.InvalidDescription:  http.StatusBadRequest,
	errcodes.InvalidURL:          http.StatusBadRequest,
	errcodes.InvalidScore:        http.StatusBadRequest,
	errcodes.InvalidContest:      http.StatusBadRequest,
	errcodes.InvalidSubmission:   http.StatusBadRequest,
	errcodes.InvalidContestID:    http.StatusBadRequest,
	errcodes.InvalidSubmissionID: http.StatusBadRequest,
	errcodes.InvalidVoteAmount:   http.StatusBadRequest,

	errcodes.Forbidden:               http.StatusForbidden,
	errcodes.InsufficientCredibility: http.StatusForbidden,

	errcodes.NotFound:           http.StatusNotFound,
	errcodes.ContestNotFound:    http.StatusNotFound,
	errcodes.SubmissionNotFound: http.StatusNotFound,

	errcodes.AlreadySubmitted: http.StatusConflict,
	errcodes.AlreadyVoted:     http.StatusConflict,
	errcodes.ContestNotActive: http.StatusConflict,
	errcodes.SubmissionClosed: http.StatusConflict,
	errcodes.VotingClosed:     http.StatusConflict,
	errcodes.VotingNotStarted: http.StatusConflict,
	errcodes.TallyOutdated:    http.StatusConflict,

	errcodes.EnsNotResolved:   http.StatusUnprocessableEntity,
	errcodes.EthosUnavailable: http.StatusBadGateway,
	errcodes.TimeoutExceeded:  http.StatusGatewayTimeout,
}

// writeError replies with the status of the first domain error in the chain.
// Errors without a domain code go through reply.Error.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		reply.Error(ctx, w, err)
		return
	}

	status, ok := statusByCode[appErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}

	reply.CodedError(ctx, w, status, appErr.Code, appErr.Message, err)
}
