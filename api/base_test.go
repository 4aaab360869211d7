package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/omchainkit/omchain/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAddress      = "oGxg7S7shs9uSKew1rRn7moRNhYm83jSo7"
	otherTestAddress = "oGsPSWrkz6LENp6Wsw25MqwtUhMzdoUY33"
)

// fakeAPI records requests and answers each method with a canned body
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]string
	status    int
	requests  []*http.Request
	server    *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{responses: make(map[string]string), status: http.StatusOK}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r)
		body, ok := f.responses[r.URL.Query().Get("method")]
		status := f.status
		f.mu.Unlock()

		if !ok {
			body = `{"error":true,"error_info":"UNKNOWN_METHOD"}`
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) respond(method, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method] = body
}

func (f *fakeAPI) lastQuery(t *testing.T) url.Values {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request was sent")
	return f.requests[len(f.requests)-1].URL.Query()
}

func (f *fakeAPI) lastRequest(t *testing.T) *http.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request was sent")
	return f.requests[len(f.requests)-1]
}

func (f *fakeAPI) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeAPI) client(opts ...Option) *Client {
	return NewClient(append([]Option{WithBaseURL(f.server.URL)}, opts...)...)
}

func TestNewClient_defaults(t *testing.T) {
	c := NewClient()
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.Timeout())

	c = NewClient(WithBaseURL("http://localhost:9999/api/"), WithTimeout(time.Second))
	assert.Equal(t, "http://localhost:9999/api", c.BaseURL())
	assert.Equal(t, time.Second, c.Timeout())
}

func TestCall_sendsMethodAndHeaders(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("custom", `{"error":false,"response":{"value":42}}`)

	var out struct {
		Value int `json:"value"`
	}
	err := api.client(WithUserAgent("test-agent")).Call(context.Background(), "custom", url.Values{"a": {"b"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, 42, out.Value)

	q := api.lastQuery(t)
	assert.Equal(t, "custom", q.Get("method"))
	assert.Equal(t, "b", q.Get("a"))

	req := api.lastRequest(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "test-agent", req.Header.Get("User-Agent"))
	assert.NotEmpty(t, req.Header.Get("X-Request-ID"))
}

func TestCall_errors(t *testing.T) {
	t.Run("missing method", func(t *testing.T) {
		err := NewClient().Call(context.Background(), "", nil, nil)
		assert.Equal(t, ErrMissingMethod, err)
	})

	t.Run("api error", func(t *testing.T) {
		api := newFakeAPI(t)
		api.respond(MethodLogin, `{"error":true,"error_info":"BAD_LOGIN"}`)

		err := api.client().Call(context.Background(), MethodLogin, nil, nil)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "BAD_LOGIN", apiErr.Code)
		assert.Equal(t, "wallet_login failed: invalid username or password", err.Error())
		assert.True(t, IsCode(err, "BAD_LOGIN"))
	})

	t.Run("unknown api error code", func(t *testing.T) {
		api := newFakeAPI(t)
		api.respond(MethodSendCoins, `{"error":true,"error_info":"WALLET_LOCKED"}`)

		err := api.client().Call(context.Background(), MethodSendCoins, nil, nil)
		assert.EqualError(t, err, "wallet_send failed: wallet locked")
	})

	t.Run("http status", func(t *testing.T) {
		api := newFakeAPI(t)
		api.status = http.StatusBadGateway
		api.respond(MethodGetInfo, `upstream down`)

		err := api.client().Call(context.Background(), MethodGetInfo, nil, nil)
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
		assert.Contains(t, err.Error(), "upstream down")
	})

	t.Run("malformed body", func(t *testing.T) {
		api := newFakeAPI(t)
		api.respond(MethodGetInfo, `<html>oops</html>`)

		_, err := api.client().GetInfo(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse getinfo response")
	})

	t.Run("missing response object", func(t *testing.T) {
		api := newFakeAPI(t)
		api.respond(MethodGetInfo, `{"error":false}`)

		_, err := api.client().GetInfo(context.Background())
		assert.True(t, errors.Is(err, ErrEmptyResponse))
	})

	t.Run("transport", func(t *testing.T) {
		api := newFakeAPI(t)
		c := api.client()
		api.server.Close()

		err := c.Call(context.Background(), MethodGetInfo, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send getinfo request")
	})

	t.Run("timeout", func(t *testing.T) {
		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer slow.Close()

		c := NewClient(WithBaseURL(slow.URL), WithTimeout(20*time.Millisecond))
		err := c.Call(context.Background(), MethodGetInfo, nil, nil)
		require.Error(t, err)
		assert.True(t, IsTimeout(err))
	})
}

func TestCall_metrics(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(MethodGetInfo, `{"error":false,"response":{"block_count":1}}`)
	api.respond(MethodLogin, `{"error":true,"error_info":"BAD_LOGIN"}`)

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	require.NoError(t, err)

	c := api.client(WithMetrics(collector))
	_, err = c.GetInfo(context.Background())
	require.NoError(t, err)
	_, err = c.Login(context.Background(), NewCredentials("alice", "secret"))
	require.Error(t, err)
	_, err = c.GetBalance(context.Background(), "not-an-address")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Requests().WithLabelValues(MethodGetInfo, metrics.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Requests().WithLabelValues(MethodLogin, metrics.OutcomeAPIError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Requests().WithLabelValues(MethodGetBalance, metrics.OutcomeInvalid)))
}
