package sim

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/ecs"
)

// Body names an entity and says what it is.
type Body struct {
	Name string
	Kind BodyKind
}

// Orbit is a body's revolution about its parent (or the system centre). The
// body sits Radius along +X of a frame rotated by Angle about the vertical
// axis.
type Orbit struct {
	Radius       float64
	AngularSpeed float64 // radians per second of elapsed time
	Angle        float64
}

// Spin is a body's rotation about its own axis. Rate is applied once per
// tick, not per second.
type Spin struct {
	Rate  float64
	Angle float64
}

// Parent attaches a satellite's orbit frame to its host's position.
type Parent struct {
	Ref *ecs.EntityRef
}

// Appearance carries what the renderer needs. Degraded is set when the
// configured colour was unusable and a fallback was substituted.
type Appearance struct {
	Radius   float64
	Color    colorful.Color
	Degraded bool
}

// Ring is a flat annulus drawn around a body.
type Ring struct {
	Inner float64
	Outer float64
	Color colorful.Color
}

// Position is a free-standing world position (meteors).
type Position Vec3

// Meteor marks a falling particle.
type Meteor struct {
	FallSpeed float64
}

// RegisterComponents registers every component type the simulation spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Orbit](registry)
	ecs.RegisterComponent[Spin](registry)
	ecs.RegisterComponent[Parent](registry)
	ecs.RegisterComponent[Appearance](registry)
	ecs.RegisterComponent[Ring](registry)
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Meteor](registry)
}
