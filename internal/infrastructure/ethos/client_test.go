package ethos_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"trustrace/internal/config"
	"trustrace/internal/domain"
	"trustrace/internal/infrastructure/ethos"
	"trustrace/pkg/errcodes"
)

const testAddress = "0xabcdef0123456789abcdef0123456789abcdef01"

type fakeEthos struct {
	scoreCalls atomic.Int32
	lastHeader atomic.Value
}

func (f *fakeEthos) handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/score/address", func(w http.ResponseWriter, r *http.Request) {
		f.scoreCalls.Add(1)
		f.lastHeader.Store(r.Header.Get("X-Ethos-Client"))

		switch r.URL.Query().Get("address") {
		case testAddress:
			w.Write([]byte(`{"score":1450}`)) //nolint:errcheck
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	r.Get("/ens/resolve/{name}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "name") == "alice.eth" {
			w.Write([]byte(`{"address":"0xABCDEF0123456789abcdef0123456789ABCDEF01"}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{}`)) //nolint:errcheck
	})

	r.Get("/user/by/address/{address}", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"address":"` + testAddress + `","credibilityScore":1450,"vouchesReceived":3}`)) //nolint:errcheck
	})

	return r
}

func newTestClient(t *testing.T, fake *fakeEthos) *ethos.Client {
	t.Helper()

	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	return ethos.NewClient(config.Ethos{
		BaseURL:        server.URL + "/",
		ClientHeader:   "trustrace@test",
		RequestTimeout: time.Second,
		LogFieldMaxLen: 512,
	}, ethos.NewMemoryCache(time.Hour))
}

func TestCredibilityScoreIsCached(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	fake := &fakeEthos{}
	client := newTestClient(t, fake)

	score, err := client.CredibilityScore(ctx, testAddress)
	rq.NoError(err)
	rq.Equal(1450, score)

	score, err = client.CredibilityScore(ctx, "0xABCDEF0123456789abcdef0123456789ABCDEF01")
	rq.NoError(err)
	rq.Equal(1450, score)

	rq.EqualValues(1, fake.scoreCalls.Load())
	rq.Equal("trustrace@test", fake.lastHeader.Load())

	_, err = client.RefreshScore(ctx, testAddress)
	rq.NoError(err)
	rq.EqualValues(2, fake.scoreCalls.Load())
}

func TestCredibilityScoreResolvesENS(t *testing.T) {
	rq := require.New(t)
	client := newTestClient(t, &fakeEthos{})

	score, err := client.CredibilityScore(context.Background(), "alice.eth")
	rq.NoError(err)
	rq.Equal(1450, score)
}

func TestCredibilityScoreUnresolvedENS(t *testing.T) {
	rq := require.New(t)
	client := newTestClient(t, &fakeEthos{})

	_, err := client.CredibilityScore(context.Background(), "nobody.eth")
	rq.True(domain.HasCode(err, errcodes.EnsNotResolved))
}

func TestCredibilityScoreUpstreamError(t *testing.T) {
	rq := require.New(t)
	client := newTestClient(t, &fakeEthos{})

	_, err := client.CredibilityScore(context.Background(), "0x0000000000000000000000000000000000000000")
	rq.True(domain.HasCode(err, errcodes.EthosUnavailable))
	rq.ErrorContains(err, "status 404")
}

func TestActivity(t *testing.T) {
	rq := require.New(t)
	client := newTestClient(t, &fakeEthos{})

	activity, err := client.Activity(context.Background(), testAddress)
	rq.NoError(err)
	rq.Equal(testAddress, activity.Address)
	rq.Equal(3, activity.VouchesReceived)
	rq.Zero(activity.Attestations)

	activity, err = client.Activity(context.Background(), "alice.eth")
	rq.NoError(err)
	rq.Equal(testAddress, activity.Address)

	_, err = client.Activity(context.Background(), "bob.eth")
	rq.True(domain.HasCode(err, errcodes.EnsNotResolved))
}

func TestMemoryCache(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	cache := ethos.NewMemoryCache(time.Hour)

	_, ok := cache.Get(ctx, testAddress)
	rq.False(ok)

	cache.Set(ctx, testAddress, 900)

	score, ok := cache.Get(ctx, testAddress)
	rq.True(ok)
	rq.Equal(900, score)

	cache.Invalidate(ctx, testAddress)

	_, ok = cache.Get(ctx, testAddress)
	rq.False(ok)
}
