package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	registry := Registry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, Registry(), "registry must be a singleton")
}

func TestCounters(t *testing.T) {
	Registry()

	assert.NotPanics(t, func() {
		FixturesEvaluatedTotal.Inc()
		FixturesSkippedTotal.Inc()
		SignalsEmittedTotal.WithLabelValues("AWAY-STRONG").Inc()
		BetsVerifiedTotal.Add(3)
		BetsUnverifiedTotal.Add(1)
		DuplicateResultKeysTotal.Add(2)
		DatasetLoadsTotal.WithLabelValues("hit").Inc()
	})
}

func TestGauges(t *testing.T) {
	Registry()

	tests := []struct {
		name  string
		value float64
	}{
		{"positive pnl", 120.5},
		{"zero pnl", 0},
		{"negative pnl", -44.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				BacktestPnL.Set(tt.value)
				BacktestROI.Set(tt.value)
				BacktestWinRate.Set(tt.value)
				LastAnalysisFixtures.Set(tt.value)
			})
		})
	}
}

func TestHandler(t *testing.T) {
	FixturesEvaluatedTotal.Inc()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "value_sniper_fixtures_evaluated_total")
}

func TestNewServer(t *testing.T) {
	srv := NewServer(":9090", "/metrics")

	assert.NotNil(t, srv)
	assert.Equal(t, ":9090", srv.Addr)
}
