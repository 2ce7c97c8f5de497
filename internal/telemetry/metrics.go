package telemetry

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/sim"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the set of collectors describing the tick loop.
type Metrics struct {
	registry *prometheus.Registry

	ticks          prometheus.Counter
	tickDelta      prometheus.Histogram
	elapsed        prometheus.Gauge
	focusIndex     prometheus.Gauge
	meteorsActive  prometheus.Gauge
	meteorsSpawned prometheus.Counter
	meteorsRemoved prometheus.Counter
	systemAvg      *prometheus.GaugeVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_ticks_total",
			Help: "Total number of simulation ticks",
		}),
		tickDelta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orrery_tick_delta_seconds",
			Help:    "Simulated time advanced per tick",
			Buckets: []float64{0.001, 0.004, 0.008, 0.016, 0.033, 0.05, 0.1, 0.25, 1},
		}),
		elapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_elapsed_seconds",
			Help: "Simulated time since start",
		}),
		focusIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_focus_index",
			Help: "Registry index of the tracked body",
		}),
		meteorsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_meteors_active",
			Help: "Meteors currently falling",
		}),
		meteorsSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_meteors_spawned_total",
			Help: "Total meteors spawned",
		}),
		meteorsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_meteors_removed_total",
			Help: "Total meteors removed below the floor",
		}),
		systemAvg: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "orrery_system_avg_seconds",
				Help: "Mean execution time per system",
			},
			[]string{"system"},
		),
	}

	m.registry.MustRegister(
		m.ticks,
		m.tickDelta,
		m.elapsed,
		m.focusIndex,
		m.meteorsActive,
		m.meteorsSpawned,
		m.meteorsRemoved,
		m.systemAvg,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// System copies simulation state into the collectors once per tick. Register
// it after the camera so it sees the finished tick.
type System struct {
	Clock ecs.Singleton[sim.Clock]
	Focus ecs.Singleton[sim.FocusState]
	Field ecs.Singleton[sim.MeteorField]

	metrics   *Metrics
	scheduler *ecs.Scheduler

	spawned int64
	removed int64
}

// NewSystem returns a system feeding m. Per-system timings are taken from
// scheduler when it is not nil.
func NewSystem(m *Metrics, scheduler *ecs.Scheduler) *System {
	return &System{metrics: m, scheduler: scheduler}
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	m := s.metrics
	m.ticks.Inc()
	if frame.DeltaTime > 0 {
		m.tickDelta.Observe(frame.DeltaTime)
	}
	if clock := s.Clock.Get(); clock != nil {
		m.elapsed.Set(clock.Elapsed)
	}
	if focus := s.Focus.Get(); focus != nil {
		m.focusIndex.Set(float64(focus.Index))
	}
	if field := s.Field.Get(); field != nil {
		m.meteorsActive.Set(float64(field.Active))
		m.meteorsSpawned.Add(float64(field.Spawned - s.spawned))
		m.meteorsRemoved.Add(float64(field.Removed - s.removed))
		s.spawned, s.removed = field.Spawned, field.Removed
	}

	if s.scheduler == nil {
		return
	}
	for _, st := range s.scheduler.GetStats().Systems {
		if st.ExecutionCount > 0 {
			m.systemAvg.WithLabelValues(st.Name).Set(st.AvgDuration.Seconds())
		}
	}
}
