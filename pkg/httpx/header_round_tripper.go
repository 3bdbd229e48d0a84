package httpx

import (
	"fmt"
	"net/http"
)

// HeaderRoundTripper sets a fixed set of headers on every outgoing request.
type HeaderRoundTripper struct {
	next    http.RoundTripper
	headers http.Header
}

func NewHeaderRoundTripper(
	next http.RoundTripper,
	headers http.Header,
) HeaderRoundTripper {
	return HeaderRoundTripper{
		next:    next,
		headers: headers.Clone(),
	}
}

func (rt HeaderRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrip must not modify the caller's request.
	req = req.Clone(req.Context())

	for k, v := range rt.headers {
		req.Header[k] = v
	}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
