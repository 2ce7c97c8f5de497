package config

import (
	"fmt"

	"github.com/plus3/orrery/sim"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// ORRERY_METEORS_FALL_SPEED.
const EnvPrefix = "ORRERY"

// WindowConfig sizes the viewer window.
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// SimulationConfig selects the catalog and the starting state.
type SimulationConfig struct {
	Seed          uint64 `mapstructure:"seed"`
	InitialTarget int    `mapstructure:"initial_target"`
	Catalog       string `mapstructure:"catalog"` // empty means the built-in system
}

// CameraConfig holds the follow camera and its lens.
type CameraConfig struct {
	Offset    sim.Vec3 `mapstructure:"offset"`
	Smoothing float64  `mapstructure:"smoothing"`
	Start     sim.Vec3 `mapstructure:"start"`

	sim.Lens `mapstructure:",squash"`
}

// MetricsConfig enables the prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config holds all runtime configuration for orrery.
// Values are populated from .orrery.yaml, ORRERY_* env vars, and CLI flags.
type Config struct {
	Window     WindowConfig     `mapstructure:"window"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Meteors    sim.MeteorParams `mapstructure:"meteors"`
	Camera     CameraConfig     `mapstructure:"camera"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	DebugUI    bool             `mapstructure:"debug_ui"`
	Verbose    bool             `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	opts := sim.DefaultOptions()
	lens := sim.DefaultLens()

	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)
	viper.SetDefault("window.title", "Orrery")

	viper.SetDefault("simulation.seed", opts.Seed)
	viper.SetDefault("simulation.initial_target", opts.InitialTarget)
	viper.SetDefault("simulation.catalog", "")

	viper.SetDefault("meteors.spawn_probability", opts.Meteors.SpawnProbability)
	viper.SetDefault("meteors.fall_speed", opts.Meteors.FallSpeed)
	viper.SetDefault("meteors.spawn_altitude", opts.Meteors.SpawnAltitude)
	viper.SetDefault("meteors.floor", opts.Meteors.Floor)
	viper.SetDefault("meteors.spread", opts.Meteors.Spread)
	viper.SetDefault("meteors.radius", opts.Meteors.Radius)

	setVecDefault("camera.offset", opts.Rig.Offset)
	setVecDefault("camera.start", opts.CameraStart)
	viper.SetDefault("camera.smoothing", opts.Rig.Smoothing)
	viper.SetDefault("camera.fov", lens.FOV)
	viper.SetDefault("camera.near", lens.Near)
	viper.SetDefault("camera.far", lens.Far)

	viper.SetDefault("metrics.addr", "")
	viper.SetDefault("debug_ui", false)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setVecDefault(key string, v sim.Vec3) {
	viper.SetDefault(key+".x", v.X)
	viper.SetDefault(key+".y", v.Y)
	viper.SetDefault(key+".z", v.Z)
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Meteors.SpawnProbability < 0 || c.Meteors.SpawnProbability > 1:
		return fmt.Errorf("config: meteors.spawn_probability %v outside [0, 1]", c.Meteors.SpawnProbability)
	case c.Meteors.FallSpeed <= 0:
		return fmt.Errorf("config: meteors.fall_speed must be positive")
	case c.Camera.Smoothing <= 0 || c.Camera.Smoothing > 1:
		return fmt.Errorf("config: camera.smoothing %v outside (0, 1]", c.Camera.Smoothing)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("config: camera needs 0 < near < far")
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("config: camera.fov %v outside (0, 180)", c.Camera.FOV)
	}
	return nil
}

// Options converts the config into simulation options.
func (c Config) Options() sim.Options {
	opts := sim.DefaultOptions()
	opts.Seed = c.Simulation.Seed
	opts.InitialTarget = c.Simulation.InitialTarget
	opts.Meteors = c.Meteors
	opts.Rig = sim.CameraRig{Offset: c.Camera.Offset, Smoothing: c.Camera.Smoothing}
	opts.CameraStart = c.Camera.Start
	return opts
}

// LoadCatalog returns the configured catalog, or the built-in one.
func (c Config) LoadCatalog() (*sim.Catalog, error) {
	if c.Simulation.Catalog == "" {
		return sim.DefaultCatalog(), nil
	}
	return sim.LoadCatalog(c.Simulation.Catalog)
}
