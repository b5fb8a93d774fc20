package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gademo/internal/ga"
)

func TestObserveUpdatesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "subset")

	m.Observe(1, ga.Stats{Best: 2.5, Mean: 1.0}, 50, 2.5, 10*time.Millisecond)
	m.Observe(2, ga.Stats{Best: 2.0, Mean: 1.5}, 50, 2.5, 12*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generation))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bestFitness))
	assert.Equal(t, 1.5, testutil.ToFloat64(m.meanFitness))
	assert.Equal(t, 2.5, testutil.ToFloat64(m.bestEver))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.evaluations))
	assert.Equal(t, 1, testutil.CollectAndCount(m.genDuration))
}

func TestRegistryExposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "layout")
	m.Observe(3, ga.Stats{Best: 19.4, Mean: 17.0}, 200, 19.4, time.Millisecond)

	srv := httptest.NewServer(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `gademo_generation{problem="layout"} 3`)
	assert.Contains(t, string(body), `gademo_evaluations_total{problem="layout"} 200`)
}
