package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plus3/orrery/sim"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func bindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Window.Width", cfg.Window.Width, 1280},
		{"Window.Height", cfg.Window.Height, 720},
		{"Window.Title", cfg.Window.Title, "Orrery"},
		{"Simulation.Seed", cfg.Simulation.Seed, uint64(1)},
		{"Simulation.InitialTarget", cfg.Simulation.InitialTarget, 2},
		{"Simulation.Catalog", cfg.Simulation.Catalog, ""},
		{"Meteors", cfg.Meteors, sim.DefaultMeteorParams()},
		{"Camera.Offset", cfg.Camera.Offset, sim.Vec3{Y: 3, Z: 6}},
		{"Camera.Start", cfg.Camera.Start, sim.Vec3{Y: 50, Z: 150}},
		{"Camera.Smoothing", cfg.Camera.Smoothing, 0.05},
		{"Camera.Lens", cfg.Camera.Lens, sim.DefaultLens()},
		{"Metrics.Addr", cfg.Metrics.Addr, ""},
		{"DebugUI", cfg.DebugUI, false},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	assert.Equal(t, sim.DefaultOptions(), cfg.Options())
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "window.width",
			envKey: "ORRERY_WINDOW_WIDTH",
			envVal: "640",
			field:  func(c Config) any { return c.Window.Width },
			want:   640,
		},
		{
			name:   "simulation.seed",
			envKey: "ORRERY_SIMULATION_SEED",
			envVal: "42",
			field:  func(c Config) any { return c.Simulation.Seed },
			want:   uint64(42),
		},
		{
			name:   "meteors.fall_speed",
			envKey: "ORRERY_METEORS_FALL_SPEED",
			envVal: "2.5",
			field:  func(c Config) any { return c.Meteors.FallSpeed },
			want:   2.5,
		},
		{
			name:   "camera.offset.z",
			envKey: "ORRERY_CAMERA_OFFSET_Z",
			envVal: "12",
			field:  func(c Config) any { return c.Camera.Offset },
			want:   sim.Vec3{Y: 3, Z: 12},
		},
		{
			name:   "camera.fov",
			envKey: "ORRERY_CAMERA_FOV",
			envVal: "60",
			field:  func(c Config) any { return c.Camera.FOV },
			want:   60.0,
		},
		{
			name:   "metrics.addr",
			envKey: "ORRERY_METRICS_ADDR",
			envVal: ":9100",
			field:  func(c Config) any { return c.Metrics.Addr },
			want:   ":9100",
		},
		{
			name:   "verbose",
			envKey: "ORRERY_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			bindEnv()
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.field(cfg))
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper()

	path := filepath.Join(t.TempDir(), ".orrery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation:
  initial_target: 0
meteors:
  spawn_probability: 0.5
camera:
  start: {x: 1, y: 2, z: 3}
`), 0o644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Simulation.InitialTarget)
	assert.Equal(t, 0.5, cfg.Meteors.SpawnProbability)
	assert.Equal(t, 1.0, cfg.Meteors.FallSpeed)
	assert.Equal(t, sim.Vec3{X: 1, Y: 2, Z: 3}, cfg.Camera.Start)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{"window.width", 0},
		{"meteors.spawn_probability", 1.5},
		{"meteors.fall_speed", 0},
		{"camera.smoothing", 0},
		{"camera.smoothing", 2},
		{"camera.near", 0},
		{"camera.far", 0.01},
		{"camera.fov", 180},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			resetViper()
			viper.Set(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	resetViper()
	cfg, err := Load()
	require.NoError(t, err)

	cat, err := cfg.LoadCatalog()
	require.NoError(t, err)
	assert.Len(t, cat.Bodies, 10)

	cfg.Simulation.Catalog = filepath.Join(t.TempDir(), "nope.toml")
	_, err = cfg.LoadCatalog()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
