package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.ObserveRequest("getinfo", OutcomeSuccess, 10*time.Millisecond)
	c.ObserveRequest("getinfo", OutcomeSuccess, 20*time.Millisecond)
	c.ObserveRequest("wallet_login", OutcomeAPIError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Requests().WithLabelValues("getinfo", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Requests().WithLabelValues("wallet_login", OutcomeAPIError)))
	assert.Equal(t, 2, testutil.CollectAndCount(c.Requests()))

	_, err = NewCollector(reg)
	assert.Error(t, err, "registering twice must fail")
}

func TestCollector_nil(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveRequest("getinfo", OutcomeSuccess, time.Millisecond)
	})

	unregistered, err := NewCollector(nil)
	require.NoError(t, err)
	unregistered.ObserveRequest("getinfo", OutcomeTransport, time.Millisecond)
}
