package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/orrery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * frame.DeltaTime
		item.Position.Y += item.Velocity.DY * frame.DeltaTime
	}
}

type SpawnerSystem struct {
	Count ecs.Singleton[Health]
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	s.Count.Get().Current++
	frame.Storage.Spawn(Position{}, Velocity{DX: 1})
}

type sleepySystem struct {
	runs int
	nap  time.Duration
}

func (s *sleepySystem) Execute(frame *ecs.UpdateFrame) {
	s.runs++
	time.Sleep(s.nap)
}

func TestSchedulerOrderAndBinding(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Health](storage)

	scheduler := ecs.NewScheduler(storage)
	spawner := &SpawnerSystem{}
	movement := &MovementSystem{}
	scheduler.Register(spawner)
	scheduler.Register(movement)

	scheduler.Once(1.0)
	assert.Equal(t, 1, movement.ExecuteCount)
	assert.Equal(t, 1, spawner.Count.Get().Current)

	// the entity spawned directly by the earlier system was moved in the same frame
	view := ecs.NewView[struct{ *Position }](storage)
	for item := range view.Values() {
		assert.Equal(t, 1.0, item.Position.X)
	}

	scheduler.Once(0.5)
	xs := []float64{}
	for item := range view.Values() {
		xs = append(xs, item.Position.X)
	}
	assert.ElementsMatch(t, []float64{1.5, 0.5}, xs)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	stats := scheduler.GetStats()
	assert.Equal(t, 0, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)

	fast := &sleepySystem{nap: time.Millisecond}
	slow := &sleepySystem{nap: 2 * time.Millisecond}
	scheduler.Register(fast)
	scheduler.Register(slow)

	for i := 0; i < 3; i++ {
		scheduler.Once(0.016)
	}

	stats = scheduler.GetStats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, int64(3), stats.Frames)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, 3, fast.runs)
	assert.Equal(t, 3, slow.runs)

	for _, st := range stats.Systems {
		assert.Equal(t, "sleepySystem", st.Name)
		assert.Equal(t, int64(3), st.ExecutionCount)
		assert.NotZero(t, st.MinDuration)
		assert.LessOrEqual(t, st.MinDuration, st.AvgDuration)
		assert.LessOrEqual(t, st.AvgDuration, st.MaxDuration)
		assert.NotZero(t, st.LastDuration)
		assert.NotZero(t, st.TotalDuration)
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	counter := &sleepySystem{}
	scheduler.Register(counter)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Positive(t, counter.runs)
}
