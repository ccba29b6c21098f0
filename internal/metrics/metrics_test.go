package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestObserveUpstream(t *testing.T) {
	ok := UpstreamRequestsTotal.WithLabelValues("mealdb", "search", "success")
	failed := UpstreamRequestsTotal.WithLabelValues("mealdb", "search", "error")
	beforeOK := counterValue(t, ok)
	beforeFailed := counterValue(t, failed)

	ObserveUpstream("mealdb", "search", time.Now(), nil)
	ObserveUpstream("mealdb", "search", time.Now(), errors.New("boom"))
	ObserveUpstream("mealdb", "search", time.Now(), errors.New("boom"))

	assert.Equal(t, beforeOK+1, counterValue(t, ok))
	assert.Equal(t, beforeFailed+2, counterValue(t, failed))
}
