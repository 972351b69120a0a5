package metrics

import (
	"database/sql"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsSanitizesServiceName(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m = NewMetrics("tyma-cms")
	})

	m.RequestCounter.WithLabelValues("GET /api/zones", "200").Inc()
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET /api/zones", "200")))
}

func TestUpdateDBStats(t *testing.T) {
	m := NewMetrics("pooltest")

	m.UpdateDBStats(sql.DBStats{
		OpenConnections: 3,
		InUse:           2,
		Idle:            1,
		WaitCount:       5,
	})

	assert.Equal(t, float64(3), testutil.ToFloat64(m.DBConnPoolStats.WithLabelValues("open")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.DBConnPoolStats.WithLabelValues("in_use")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBConnPoolStats.WithLabelValues("idle")))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.DBConnPoolStats.WithLabelValues("wait_count")))
}
