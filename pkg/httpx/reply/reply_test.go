package reply_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"trustrace/pkg/contextx"
	"trustrace/pkg/errcodes"
	"trustrace/pkg/httpx/reply"
)

func TestCodedError(t *testing.T) {
	rq := require.New(t)

	ctx := contextx.WithTraceID(context.Background(), "trace-1")
	rec := httptest.NewRecorder()

	reply.CodedError(ctx, rec, http.StatusConflict, errcodes.AlreadyVoted, "already voted", errors.New("dup"))

	rq.Equal(http.StatusConflict, rec.Code)
	rq.JSONEq(`{"code":"AlreadyVoted","message":"already voted","supportId":"trace-1"}`, rec.Body.String())
}

func TestErrorInvalidArgument(t *testing.T) {
	rq := require.New(t)

	rec := httptest.NewRecorder()

	reply.Error(context.Background(), rec, failure.NewInvalidArgumentError(
		"validation error",
		failure.WithCode(errcodes.ValidationError),
		failure.WithDescription("bad input"),
	))

	rq.Equal(http.StatusBadRequest, rec.Code)
	rq.Contains(rec.Body.String(), `"code":"ValidationError"`)
	rq.Contains(rec.Body.String(), `"supportId":"unsupported"`)
}
