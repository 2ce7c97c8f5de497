package sim

import "github.com/plus3/orrery/ecs"

// RandSource yields uniform samples in [0, 1). *rand.Rand from math/rand/v2
// satisfies it.
type RandSource interface {
	Float64() float64
}

// MeteorParams tunes the meteor shower.
type MeteorParams struct {
	SpawnProbability float64 `mapstructure:"spawn_probability"` // per tick
	FallSpeed        float64 `mapstructure:"fall_speed"`        // units per tick
	SpawnAltitude    float64 `mapstructure:"spawn_altitude"`
	Floor            float64 `mapstructure:"floor"`  // removed once strictly below
	Spread           float64 `mapstructure:"spread"` // side of the spawn square
	Radius           float64 `mapstructure:"radius"` // visual only
}

// DefaultMeteorParams is a light shower: 1% per tick from y=100,
// one unit per tick, gone below y=-50, over a 200x200 square.
func DefaultMeteorParams() MeteorParams {
	return MeteorParams{
		SpawnProbability: 0.01,
		FallSpeed:        1,
		SpawnAltitude:    100,
		Floor:            -50,
		Spread:           200,
		Radius:           0.1,
	}
}

// MeteorField is the shower's parameters plus running counters.
type MeteorField struct {
	Params  MeteorParams
	Active  int
	Spawned int64
	Removed int64
}

// MeteorSpawnSystem draws one sample per tick and spawns a meteor when it
// falls below the spawn probability. The meteor goes straight into storage so
// the fall system moves it in the same tick.
type MeteorSpawnSystem struct {
	Field ecs.Singleton[MeteorField]
	Rand  RandSource
}

func (s *MeteorSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	field := s.Field.Get()
	p := field.Params
	if s.Rand.Float64() >= p.SpawnProbability {
		return
	}

	frame.Storage.Spawn(
		Position{
			X: (s.Rand.Float64() - 0.5) * p.Spread,
			Y: p.SpawnAltitude,
			Z: (s.Rand.Float64() - 0.5) * p.Spread,
		},
		Meteor{FallSpeed: p.FallSpeed},
	)
	field.Active++
	field.Spawned++
}

// MeteorFallSystem drops every meteor by its fall speed and queues removal of
// those now below the floor. Removal is deferred to the end of the tick, so
// iteration never skips a neighbour.
type MeteorFallSystem struct {
	Field   ecs.Singleton[MeteorField]
	Meteors ecs.Query[struct {
		ecs.EntityId
		*Position
		*Meteor
	}]
}

func (s *MeteorFallSystem) Execute(frame *ecs.UpdateFrame) {
	field := s.Field.Get()
	for m := range s.Meteors.Values() {
		m.Position.Y -= m.Meteor.FallSpeed
		if m.Position.Y < field.Params.Floor {
			frame.Commands.Delete(m.EntityId)
			field.Active--
			field.Removed++
		}
	}
}
