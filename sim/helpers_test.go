package sim_test

import (
	"testing"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/sim"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays values, then returns 1 forever.
type scriptedRand struct {
	values []float64
}

func (r *scriptedRand) Float64() float64 {
	if len(r.values) == 0 {
		return 1
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v
}

// constRand always returns v.
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

func planet(name string, radius, speed float64) sim.BodySpec {
	return sim.BodySpec{
		Name:          name,
		OrbitalRadius: radius,
		AngularSpeed:  speed,
		SpinRate:      0.005,
		Radius:        1,
		Color:         "#ffffff",
	}
}

func threePlanets() *sim.Catalog {
	return &sim.Catalog{Bodies: []sim.BodySpec{
		{Name: "Star", Kind: "star", Radius: 5, Color: "#ffff00"},
		planet("A", 10, 0.1),
		planet("B", 20, 0.05),
		planet("C", 30, 0.02),
	}}
}

// quietOptions never spawns meteors.
func quietOptions() sim.Options {
	opts := sim.DefaultOptions()
	opts.Rand = constRand(1)
	return opts
}

func newSim(t *testing.T, cat *sim.Catalog, opts sim.Options) *sim.Simulation {
	t.Helper()
	s, err := sim.New(cat, opts)
	require.NoError(t, err)
	return s
}

func bodyID(t *testing.T, s *sim.Simulation, name string) ecs.EntityId {
	t.Helper()
	for id, item := range ecs.NewView[struct{ *sim.Body }](s.Storage()).Iter() {
		if item.Body.Name == name {
			return id
		}
	}
	t.Fatalf("no body named %q", name)
	return 0
}

func meteorCount(s *sim.Simulation) int {
	q := ecs.NewQuery[struct{ *sim.Meteor }](s.Storage())
	q.Execute()
	return q.Len()
}
