package sim

import "github.com/plus3/orrery/ecs"

// Clock is the simulation's notion of time.
type Clock struct {
	Elapsed float64 // seconds since start, never decreases
	Frame   uint64  // completed ticks
}

// ClockSystem advances the Clock by the frame delta. Negative deltas are
// treated as zero.
type ClockSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	if frame.DeltaTime > 0 {
		clock.Elapsed += frame.DeltaTime
	}
	clock.Frame++
}
