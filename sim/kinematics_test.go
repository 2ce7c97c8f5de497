package sim_test

import (
	"math"
	"testing"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/sim"
	"github.com/stretchr/testify/assert"
)

func TestRevolutionDependsOnlyOnElapsedTime(t *testing.T) {
	uneven := newSim(t, threePlanets(), quietOptions())
	uneven.TickAt(0.3)
	uneven.TickAt(1.7)
	uneven.TickAt(2.0)
	uneven.TickAt(4.0)

	single := newSim(t, threePlanets(), quietOptions())
	single.Step(4.0)

	for _, name := range []string{"A", "B", "C"} {
		a := ecs.ReadComponent[sim.Orbit](uneven.Storage(), bodyID(t, uneven, name))
		b := ecs.ReadComponent[sim.Orbit](single.Storage(), bodyID(t, single, name))
		assert.InDelta(t, b.Angle, a.Angle, 1e-12, name)
		assert.InDelta(t, 4.0*a.AngularSpeed, a.Angle, 1e-12, name)
	}
}

func TestOrbitAngleIsNotReduced(t *testing.T) {
	s := newSim(t, threePlanets(), quietOptions())
	s.Step(1000)

	o := ecs.ReadComponent[sim.Orbit](s.Storage(), bodyID(t, s, "A"))
	assert.InDelta(t, 100.0, o.Angle, 1e-9)
}

func TestSpinCountsTicksNotTime(t *testing.T) {
	fast := newSim(t, threePlanets(), quietOptions())
	slow := newSim(t, threePlanets(), quietOptions())
	for range 10 {
		fast.Step(0.001)
		slow.Step(2)
	}

	for _, s := range []*sim.Simulation{fast, slow} {
		spin := ecs.ReadComponent[sim.Spin](s.Storage(), bodyID(t, s, "B"))
		assert.InDelta(t, 0.05, spin.Angle, 1e-12)
	}
}

func TestClockIgnoresNegativeDelta(t *testing.T) {
	s := newSim(t, threePlanets(), quietOptions())
	s.TickAt(5)
	s.TickAt(3)
	s.Step(-1)

	clock := s.Clock()
	assert.Equal(t, 5.0, clock.Elapsed)
	assert.Equal(t, uint64(3), clock.Frame)
}

func TestSatelliteFollowsHostRevolutionNotSpin(t *testing.T) {
	cat := &sim.Catalog{Bodies: []sim.BodySpec{
		{Name: "Sun", Kind: "star", Radius: 5, Color: "#ff3300"},
		planet("Earth", 20, 0.06),
		{Name: "Moon", Kind: "satellite", Parent: "Earth", OrbitalRadius: 2, AngularSpeed: 0.06, SpinRate: 0.005, Radius: 0.27, Color: "#cccccc"},
	}}
	cat.Bodies[1].SpinRate = 3 // a fast-spinning host must not drag the moon

	s := newSim(t, cat, quietOptions())
	s.Step(10)

	theta := 0.6
	earth := sim.WorldPosition(s.Storage(), bodyID(t, s, "Earth"))
	assert.InDelta(t, 20*math.Cos(theta), earth.X, 1e-9)
	assert.InDelta(t, 0.0, earth.Y, 1e-9)
	assert.InDelta(t, -20*math.Sin(theta), earth.Z, 1e-9)

	moon := sim.WorldPosition(s.Storage(), bodyID(t, s, "Moon"))
	assert.InDelta(t, earth.X+2*math.Cos(2*theta), moon.X, 1e-9)
	assert.InDelta(t, earth.Z-2*math.Sin(2*theta), moon.Z, 1e-9)

	sun := sim.WorldPosition(s.Storage(), bodyID(t, s, "Sun"))
	assert.Equal(t, sim.Vec3{}, sun)
}

func TestRotateY(t *testing.T) {
	v := sim.Vec3{X: 1}.RotateY(math.Pi / 2)
	assert.InDelta(t, 0.0, v.X, 1e-12)
	assert.InDelta(t, -1.0, v.Z, 1e-12)
}
