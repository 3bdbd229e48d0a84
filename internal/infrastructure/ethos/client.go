package ethos

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"trustrace/internal/config"
	"trustrace/internal/domain"
	"trustrace/internal/domain/entity"
	"trustrace/internal/metrics"
	"trustrace/pkg/errcodes"
	"trustrace/pkg/httpx"
	"trustrace/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	endpointScore   = "score"
	endpointENS     = "ens"
	endpointProfile = "profile"
)

// Client talks to the Ethos reputation API. Scores are cached per resolved
// address.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      ScoreCache
}

func NewClient(cfg config.Ethos, cache ScoreCache) *Client {
	transport := httpx.NewLoggingRoundTripper(
		httpx.NewHeaderRoundTripper(http.DefaultTransport, http.Header{
			"X-Ethos-Client": []string{cfg.ClientHeader},
			"Content-Type":   []string{"application/json"},
		}),
		httpx.WithLogFieldMaxLen(cfg.LogFieldMaxLen),
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
	)

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
		cache: cache,
	}
}

// CredibilityScore returns the Ethos score of a hex address or ENS name.
func (c *Client) CredibilityScore(ctx context.Context, addressOrENS string) (int, error) {
	address, err := c.resolve(ctx, addressOrENS)
	if err != nil {
		return 0, err
	}

	if score, ok := c.cache.Get(ctx, address); ok {
		metrics.EthosCacheHits.Inc()
		return score, nil
	}

	var resp scoreResponse

	query := url.Values{"address": []string{address}}
	if err := c.get(ctx, endpointScore, "/score/address?"+query.Encode(), &resp); err != nil {
		return 0, err
	}

	c.cache.Set(ctx, address, resp.Score)

	logger(ctx).Debug("credibility score fetched",
		slog.String("address", address),
		slog.Int("score", resp.Score),
	)

	return resp.Score, nil
}

// RefreshScore drops the cached score and fetches it again.
func (c *Client) RefreshScore(ctx context.Context, addressOrENS string) (int, error) {
	address, err := c.resolve(ctx, addressOrENS)
	if err != nil {
		return 0, err
	}

	c.cache.Invalidate(ctx, address)

	return c.CredibilityScore(ctx, address)
}

// Activity returns the vouch and attestation counts of a hex address or ENS
// name. The counts are not cached.
func (c *Client) Activity(ctx context.Context, addressOrENS string) (entity.Activity, error) {
	address, err := c.resolve(ctx, addressOrENS)
	if err != nil {
		return entity.Activity{}, err
	}

	var profile userProfile
	if err := c.get(ctx, endpointProfile, "/user/by/address/"+url.PathEscape(address), &profile); err != nil {
		return entity.Activity{}, err
	}

	return profile.toDomain(address), nil
}

// ResolveENS returns the hex address an ENS name points to.
func (c *Client) ResolveENS(ctx context.Context, name string) (string, error) {
	var resp ensResponse
	if err := c.get(ctx, endpointENS, "/ens/resolve/"+url.PathEscape(name), &resp); err != nil {
		return "", domain.WrapError(err, errcodes.EnsNotResolved, "failed to resolve ENS name "+name)
	}

	if resp.Address == "" {
		return "", domain.NewError(errcodes.EnsNotResolved, "failed to resolve ENS name "+name)
	}

	return strings.ToLower(resp.Address), nil
}

func (c *Client) resolve(ctx context.Context, addressOrENS string) (string, error) {
	if strings.HasSuffix(addressOrENS, ".eth") {
		return c.ResolveENS(ctx, addressOrENS)
	}

	return strings.ToLower(addressOrENS), nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, dest any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to build ethos request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.EthosRequests.WithLabelValues(endpoint, "error").Inc()
		return domain.WrapError(err, errcodes.EthosUnavailable, "ethos request failed")
	}

	defer resp.Body.Close()

	metrics.EthosRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)

		return domain.WrapError(
			fmt.Errorf("status %d after %s", resp.StatusCode, time.Since(start)),
			errcodes.EthosUnavailable,
			"ethos "+endpoint+" request failed",
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return domain.WrapError(fmt.Errorf("json.Decode: %w", err), errcodes.EthosUnavailable, "invalid ethos response")
	}

	return nil
}
