package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/omchainkit/omchain/metrics"
	"go.uber.org/zap"
)

// Client handles calls to the Omnicha.in wallet API
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    atomic.Int64
	logger     *zap.Logger
	metrics    *metrics.Collector
}

// NewClient creates a new API client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		logger:     zap.NewNop(),
	}
	c.timeout.Store(int64(DefaultTimeout))

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the endpoint requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetTimeout changes the per-call timeout. Zero or less disables it.
// Calls already in flight keep their deadline.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.timeout.Store(int64(timeout))
}

// Timeout returns the per-call timeout
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.timeout.Load())
}

// Call sends method with params and decodes the response object into out.
// A nil out only checks that the API reported success.
func (c *Client) Call(ctx context.Context, method string, params url.Values, out interface{}) error {
	if method == "" {
		return ErrMissingMethod
	}

	if timeout := c.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	query.Set("method", method)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.With(zap.String("method", method), zap.String("request_id", requestID))
	log.Debug("sending request")

	start := time.Now()
	outcome, err := c.do(req, method, out)
	elapsed := time.Since(start)
	c.metrics.ObserveRequest(method, outcome, elapsed)

	if err != nil {
		log.Debug("request failed", zap.String("outcome", outcome), zap.Duration("elapsed", elapsed), zap.Error(err))
		return err
	}

	log.Debug("request succeeded", zap.Duration("elapsed", elapsed))
	return nil
}

// do performs the round trip and returns the metrics outcome alongside any error
func (c *Client) do(req *http.Request, method string, out interface{}) (string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return metrics.OutcomeTransport, fmt.Errorf("failed to send %s request: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return metrics.OutcomeTransport, fmt.Errorf("failed to read %s response: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return metrics.OutcomeStatus, &StatusError{
			Method:     method,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), 200),
		}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return metrics.OutcomeDecode, fmt.Errorf("failed to parse %s response: %w", method, err)
	}

	if env.Error {
		return metrics.OutcomeAPIError, &APIError{Method: method, Code: env.ErrorInfo}
	}

	if out == nil {
		return metrics.OutcomeSuccess, nil
	}

	// raw callers get whatever was sent, including nothing
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = env.Response
		return metrics.OutcomeSuccess, nil
	}

	if len(env.Response) == 0 || string(env.Response) == "null" {
		return metrics.OutcomeDecode, fmt.Errorf("%s: %w", method, ErrEmptyResponse)
	}

	if err := json.Unmarshal(env.Response, out); err != nil {
		return metrics.OutcomeDecode, fmt.Errorf("failed to parse %s response: %w", method, err)
	}

	return metrics.OutcomeSuccess, nil
}

// IsTimeout reports whether err came from the call deadline expiring
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
