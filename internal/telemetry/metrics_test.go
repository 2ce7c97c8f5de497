package telemetry

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/plus3/orrery/sim"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alwaysSpawn struct{}

func (alwaysSpawn) Float64() float64 { return 0 }

func newTestSim(t *testing.T) (*sim.Simulation, *Metrics) {
	t.Helper()
	opts := sim.DefaultOptions()
	opts.Meteors.SpawnProbability = 1
	opts.Rand = alwaysSpawn{}

	s, err := sim.New(sim.DefaultCatalog(), opts)
	require.NoError(t, err)

	m := NewMetrics()
	s.AddSystem(NewSystem(m, s.Scheduler()))
	return s, m
}

func TestSystemRecordsTicks(t *testing.T) {
	s, m := newTestSim(t)

	s.Step(0.016)
	s.Step(0.016)
	s.Push(sim.FocusAdvance)
	s.Step(0.016)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.ticks))
	assert.InDelta(t, 0.048, testutil.ToFloat64(m.elapsed), 1e-12)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.focusIndex))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.meteorsActive))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.meteorsSpawned))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.meteorsRemoved))

	// Six simulation systems plus this one, which has finished two ticks.
	assert.Equal(t, 7, testutil.CollectAndCount(m.systemAvg))
}

func TestSystemCountsRemovals(t *testing.T) {
	s, m := newTestSim(t)

	// Meteors fall 1 per tick from 100 and go below -50 on their 151st tick.
	for range 160 {
		s.Step(0.016)
	}

	assert.Equal(t, 160.0, testutil.ToFloat64(m.meteorsSpawned))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.meteorsRemoved))
	assert.Equal(t, 150.0, testutil.ToFloat64(m.meteorsActive))
}

func TestHandler(t *testing.T) {
	s, m := newTestSim(t)
	s.Step(0.016)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "orrery_ticks_total 1")
	assert.Contains(t, string(body), `orrery_system_avg_seconds{system="KinematicsSystem"}`)
}

func TestServeStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, NewMetrics().Serve(ctx, "127.0.0.1:0"))
}
