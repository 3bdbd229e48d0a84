package middlewarex_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"trustrace/pkg/contextx"
	"trustrace/pkg/logx"
	"trustrace/pkg/middlewarex"
)

func TestChain(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	base := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := middlewarex.TraceID(
		middlewarex.Logger(base)(
			middlewarex.Recovery(
				middlewarex.RequestLogging(logx.NewSensitiveDataMasker(), 1024)(
					middlewarex.ResponseLogging(logx.NewSensitiveDataMasker(), 1024)(
						http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
							traceID, err := contextx.TraceIDFromContext(r.Context())
							rq.NoError(err)
							rq.Equal("trace-1", traceID.String())

							if r.URL.Path == "/panic" {
								panic("boom")
							}

							w.WriteHeader(http.StatusTeapot)
						}),
					),
				),
			),
		),
	)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Trace-Id", "trace-1")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	rq.Equal(http.StatusTeapot, rec.Code)
	rq.Equal("trace-1", rec.Header().Get("X-Trace-Id"))
	rq.Contains(buf.String(), `"trace-id":"trace-1"`)
	rq.Contains(buf.String(), `"response-status":418`)

	buf.Reset()

	req = httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("X-Trace-Id", "trace-1")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	rq.Equal(http.StatusInternalServerError, rec.Code)
	rq.True(strings.Contains(buf.String(), "panic in handler"))
}
