package sim_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := sim.DefaultCatalog()
	require.Len(t, cat.Bodies, 10)

	s := newSim(t, cat, quietOptions())
	reg := s.Registry()
	assert.Equal(t,
		[]string{"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"},
		reg.Names)
	assert.Equal(t, "Tracking: Earth", s.Label())

	saturn := bodyID(t, s, "Saturn")
	ring := ecs.ReadComponent[sim.Ring](s.Storage(), saturn)
	require.NotNil(t, ring)
	assert.Equal(t, 2.2, ring.Inner)
	assert.Equal(t, 3.5, ring.Outer)

	moon := bodyID(t, s, "Moon")
	parent := ecs.ReadComponent[sim.Parent](s.Storage(), moon)
	require.NotNil(t, parent)
	assert.Equal(t, bodyID(t, s, "Earth"), parent.Ref.Id)
	assert.Equal(t, sim.KindSatellite, ecs.ReadComponent[sim.Body](s.Storage(), moon).Kind)

	assert.Nil(t, ecs.ReadComponent[sim.Orbit](s.Storage(), bodyID(t, s, "Sun")))
}

func TestCatalogValidation(t *testing.T) {
	star := sim.BodySpec{Name: "Sun", Kind: "star", Radius: 5}
	earth := planet("Earth", 20, 0.06)
	moon := sim.BodySpec{Name: "Moon", Kind: "satellite", Parent: "Earth", OrbitalRadius: 2, Radius: 0.27}

	tests := []struct {
		name   string
		bodies []sim.BodySpec
	}{
		{"missing name", []sim.BodySpec{{Radius: 1, OrbitalRadius: 1}}},
		{"duplicate name", []sim.BodySpec{earth, earth}},
		{"unknown kind", []sim.BodySpec{{Name: "X", Kind: "comet", Radius: 1, OrbitalRadius: 1}}},
		{"zero radius", []sim.BodySpec{{Name: "X", OrbitalRadius: 1}}},
		{"planet at origin", []sim.BodySpec{{Name: "X", Radius: 1}}},
		{"satellite before host", []sim.BodySpec{star, moon, earth}},
		{"satellite of satellite", []sim.BodySpec{earth, moon, {Name: "Pebble", Kind: "satellite", Parent: "Moon", OrbitalRadius: 1, Radius: 0.1}}},
		{"planet with parent", []sim.BodySpec{star, {Name: "X", Parent: "Sun", OrbitalRadius: 1, Radius: 1}}},
		{"inverted ring", []sim.BodySpec{{Name: "X", OrbitalRadius: 1, Radius: 1, Ring: &sim.RingSpec{Inner: 3, Outer: 2}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := &sim.Catalog{Bodies: tt.bodies}
			err := cat.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, sim.ErrInvalidCatalog), err.Error())

			_, err = sim.New(cat, quietOptions())
			assert.ErrorIs(t, err, sim.ErrInvalidCatalog)
		})
	}

	assert.NoError(t, (&sim.Catalog{Bodies: []sim.BodySpec{star, earth, moon}}).Validate())
}

func TestParseCatalog(t *testing.T) {
	cat, err := sim.ParseCatalog([]byte(`
[[body]]
name = "Vulcan"
orbital_radius = 4.0
angular_speed = 0.2
radius = 0.5
color = "#ff0000"
focusable = false

[[body]]
name = "Pluto"
orbital_radius = 80.0
radius = 0.2
color = "#ffeedd"
`))
	require.NoError(t, err)
	require.Len(t, cat.Bodies, 2)
	assert.False(t, cat.Bodies[0].IsFocusable())
	assert.True(t, cat.Bodies[1].IsFocusable())
	assert.Equal(t, sim.KindPlanet, cat.Bodies[1].BodyKind())

	_, err = sim.ParseCatalog([]byte(`[[body]`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, sim.ErrInvalidCatalog))
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[body]]\nname = \"Solo\"\norbital_radius = 1.0\nradius = 1.0\n"), 0o644))

	cat, err := sim.LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "Solo", cat.Bodies[0].Name)

	_, err = sim.LoadCatalog(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnusableColorDegrades(t *testing.T) {
	bad := planet("Smudge", 10, 0.1)
	bad.Color = "not-a-color"
	s := newSim(t, &sim.Catalog{Bodies: []sim.BodySpec{bad}}, quietOptions())

	app := ecs.ReadComponent[sim.Appearance](s.Storage(), bodyID(t, s, "Smudge"))
	require.NotNil(t, app)
	assert.True(t, app.Degraded)

	s.Step(0.016)
	assert.Equal(t, "Tracking: Smudge", s.Label())
}

func TestBodyKindString(t *testing.T) {
	assert.Equal(t, "Star", sim.KindStar.String())
	assert.Equal(t, "Satellite", sim.KindSatellite.String())

	k, err := sim.ParseBodyKind("moon")
	require.NoError(t, err)
	assert.Equal(t, sim.KindSatellite, k)
}
