// Package api is the rater client's HTTP client for the review API. It
// classifies every failure either as a terminal domain rejection or as a
// *domain.ConnectivityError the caller should queue and replay.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
	"github.com/heartmarshall/scanrate-backend/internal/transport/wire"
)

const (
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 4 << 20
	retryDelay       = 500 * time.Millisecond
)

// Client talks to the review API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
	retryDelay  time.Duration
	log         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAccessToken sends token as a Bearer credential on every request.
func WithAccessToken(token string) Option {
	return func(c *Client) { c.accessToken = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the API at baseURL. A non-positive timeout means
// DefaultTimeout.
func New(baseURL string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: retryDelay,
		log:        logger.With("adapter", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitReview posts one review.
func (c *Client) SubmitReview(ctx context.Context, draft domain.ReviewDraft) (*domain.Submission, error) {
	var resp wire.SubmissionResponse
	if err := c.do(ctx, "submit review", http.MethodPost, "/api/v1/reviews", wire.ReviewRequestFromDraft(draft), &resp); err != nil {
		return nil, err
	}
	sub, err := resp.ToSubmission()
	if err != nil {
		return nil, fmt.Errorf("api: submit review: decode: %w", err)
	}
	return &sub, nil
}

// SubmitBatch posts drafts as one batch and returns the per-item outcomes in
// request order.
func (c *Client) SubmitBatch(ctx context.Context, drafts []domain.ReviewDraft) ([]domain.Submission, error) {
	req := wire.BatchRequest{Reviews: make([]wire.ReviewRequest, len(drafts))}
	for i, d := range drafts {
		req.Reviews[i] = wire.ReviewRequestFromDraft(d)
	}

	var resp wire.BatchResponse
	if err := c.do(ctx, "submit batch", http.MethodPost, "/api/v1/reviews/batch", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) != len(drafts) {
		return nil, fmt.Errorf("api: submit batch: got %d results for %d reviews", len(resp.Results), len(drafts))
	}

	out := make([]domain.Submission, len(resp.Results))
	for i, r := range resp.Results {
		sub, err := r.ToSubmission()
		if err != nil {
			return nil, fmt.Errorf("api: submit batch: item %d: %w", i, err)
		}
		out[i] = sub
	}
	return out, nil
}

// ResolveCode looks up the subject behind a scanned code.
func (c *Client) ResolveCode(ctx context.Context, code string) (*wire.ScanTargetResponse, error) {
	var resp wire.ScanTargetResponse
	if err := c.do(ctx, "resolve code", http.MethodGet, "/api/v1/codes/"+url.PathEscape(code), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Balance returns the points balance of identity.
func (c *Client) Balance(ctx context.Context, identity domain.RaterIdentity) (*wire.BalanceResponse, error) {
	var resp wire.BalanceResponse
	if err := c.do(ctx, "balance", http.MethodGet, "/api/v1/points/"+url.PathEscape(identity.String()), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Quota returns how much of the daily review cap identity has used.
func (c *Client) Quota(ctx context.Context, identity domain.RaterIdentity) (*wire.QuotaResponse, error) {
	path := "/api/v1/reviews/quota?" + url.Values{"identity": {identity.String()}}.Encode()
	var resp wire.QuotaResponse
	if err := c.do(ctx, "quota", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do sends one JSON request and decodes a 2xx body into dst. Transport
// failures, timeouts, 5xx and throttling come back as
// *domain.ConnectivityError; any other error response is decoded into its
// domain error.
func (c *Client) do(ctx context.Context, op, method, path string, body, dst any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("api: %s: encode: %w", op, err)
		}
	}

	resp, err := c.doWithRetry(ctx, op, method, path, payload)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			return fmt.Errorf("api: %s: %w", op, ctx.Err())
		}
		return &domain.ConnectivityError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.ConnectivityError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if dst == nil {
			return nil
		}
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("api: %s: decode response: %w", op, err)
		}
		return nil
	}

	return c.classify(ctx, op, resp.StatusCode, data)
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. Every write carries its submission id, so repeating it is safe.
func (c *Client) doWithRetry(ctx context.Context, op, method, path string, payload []byte) (*http.Response, error) {
	resp, err := c.send(ctx, method, path, payload)

	shouldRetry := err != nil || resp.StatusCode >= 500
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.log.WarnContext(ctx, "api retry", slog.String("op", op), slog.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}
	return c.send(ctx, method, path, payload)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	return c.httpClient.Do(req)
}

func (c *Client) classify(ctx context.Context, op string, status int, data []byte) error {
	if status >= 500 {
		c.log.WarnContext(ctx, "api server error", slog.String("op", op), slog.Int("status", status))
		return &domain.ConnectivityError{Op: op, Err: fmt.Errorf("server returned %d", status)}
	}

	// A response without an error envelope came from something in front of
	// the API, so the request was never judged.
	var env wire.ErrorEnvelope
	if err := json.Unmarshal(data, &env); err != nil || env.Error.Code == "" {
		if status == http.StatusTooManyRequests {
			return &domain.ConnectivityError{Op: op, Err: errors.New("throttled")}
		}
		c.log.WarnContext(ctx, "api unexpected status", slog.String("op", op), slog.Int("status", status))
		return &domain.ConnectivityError{Op: op, Err: fmt.Errorf("unexpected status %d", status)}
	}

	// Request throttling is transient; only the daily cap is a rejection.
	if env.Error.Code == domain.CodeTooManyRequests {
		return &domain.ConnectivityError{Op: op, Err: errors.New("throttled")}
	}

	// Codes this client does not know cannot be a rejection of the review.
	derr := env.Error.Err()
	var remote *wire.RemoteError
	if errors.As(derr, &remote) {
		return &domain.ConnectivityError{Op: op, Err: remote}
	}
	return fmt.Errorf("api: %s: %w", op, derr)
}
