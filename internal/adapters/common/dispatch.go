package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// MaxBodyBytes caps how much of a provider response body is ever read.
const MaxBodyBytes = 128 * 1024

// HTTPClient abstracts the http.Client Do method for easier testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DispatchResult captures the provider's answer to the single outbound call.
type DispatchResult struct {
	StatusCode int
	Body       string
}

// OK reports whether the status code falls inside [200,300).
func (r *DispatchResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DispatcherOption customises dispatcher behaviour.
type DispatcherOption func(*Dispatcher)

// WithHTTPClient overrides the HTTP client used to reach the provider.
func WithHTTPClient(client HTTPClient) DispatcherOption {
	return func(d *Dispatcher) {
		if client != nil {
			d.client = client
		}
	}
}

// WithBodyLimit adjusts how many bytes are retained from the response body.
func WithBodyLimit(limit int64) DispatcherOption {
	return func(d *Dispatcher) {
		if limit > 0 {
			d.maxBodyBytes = limit
		}
	}
}

// Dispatcher issues exactly one POST per run with a bounded timeout and a
// capped response read. It performs no retries: a single attempt is
// definitive.
type Dispatcher struct {
	logger       zerolog.Logger
	client       HTTPClient
	maxBodyBytes int64
}

// NewDispatcher constructs a dispatcher whose underlying client abandons the
// call after the given timeout.
func NewDispatcher(timeout time.Duration, logger zerolog.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		logger:       logger,
		client:       &http.Client{Timeout: timeout},
		maxBodyBytes: MaxBodyBytes,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d
}

// Post sends the outbound request and returns the classified result. A nil
// error only means the transport round-trip completed; callers still check
// DispatchResult.OK.
func (d *Dispatcher) Post(ctx context.Context, out *OutboundRequest) (*DispatchResult, error) {
	encoded, err := json.Marshal(out.Body)
	if err != nil {
		return nil, WrapTransport(fmt.Errorf("encode request body: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, out.URL, bytes.NewReader(encoded))
	if err != nil {
		return nil, WrapTransport(err)
	}
	for key, value := range out.Headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, WrapTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBodyBytes))
	if err != nil {
		return nil, WrapTransport(fmt.Errorf("read response body: %v", err))
	}

	d.logger.Debug().
		Str("url", out.URL).
		Int("status", resp.StatusCode).
		Int("body_bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("provider call completed")

	return &DispatchResult{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
