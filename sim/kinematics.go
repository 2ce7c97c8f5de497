package sim

import "github.com/plus3/orrery/ecs"

// KinematicsSystem sets every orbit angle from elapsed time and advances
// every spin by its per-tick rate. Revolution is therefore independent of
// frame timing while spin depends only on the number of ticks.
type KinematicsSystem struct {
	Clock  ecs.Singleton[Clock]
	Orbits ecs.Query[struct{ *Orbit }]
	Spins  ecs.Query[struct{ *Spin }]
}

func (s *KinematicsSystem) Execute(frame *ecs.UpdateFrame) {
	elapsed := s.Clock.Get().Elapsed

	for item := range s.Orbits.Values() {
		item.Orbit.Angle = elapsed * item.Orbit.AngularSpeed
	}
	for item := range s.Spins.Values() {
		item.Spin.Angle += item.Spin.Rate
	}
}
