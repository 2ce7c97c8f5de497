package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats summarises scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds timings for one registered system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type storageBinder interface {
	Init(storage *Storage)
}

type queryExecutor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []queryExecutor
	stats   SystemStats
}

// Scheduler runs registered systems in registration order, once per frame.
type Scheduler struct {
	storage  *Storage
	systems  []*registeredSystem
	commands *Commands
	frames   int64
}

// NewScheduler creates a scheduler over storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Register appends system and binds its exported Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.systems = append(s.systems, &registeredSystem{
		system:  system,
		queries: s.bind(system),
		stats: SystemStats{
			Name:        t.Name(),
			MinDuration: time.Duration(1<<63 - 1),
		},
	})
}

func (s *Scheduler) bind(system System) []queryExecutor {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var queries []queryExecutor
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() != reflect.Struct || !field.CanAddr() || !field.CanSet() {
			continue
		}
		addr := field.Addr().Interface()
		binder, ok := addr.(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)
		if q, ok := addr.(queryExecutor); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once runs one frame: every system in order, then the command flush.
func (s *Scheduler) Once(dt float64) {
	frame := &UpdateFrame{
		DeltaTime: dt,
		Commands:  s.commands,
		Storage:   s.storage,
	}

	for _, rs := range s.systems {
		start := time.Now()
		for _, q := range rs.queries {
			q.Execute()
		}
		rs.system.Execute(frame)
		rs.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
	s.frames++
}

func (rs *registeredSystem) record(d time.Duration) {
	st := &rs.stats
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.MinDuration = min(st.MinDuration, d)
	st.MaxDuration = max(st.MaxDuration, d)
}

// Run calls Once every interval with the measured wall-clock delta until ctx
// is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Once(dt)
		}
	}
}

// GetStats returns a snapshot of per-system timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, rs := range s.systems {
		st := rs.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		}
		stats.Systems[i] = st
		stats.TotalExecutions += st.ExecutionCount
	}
	return stats
}
