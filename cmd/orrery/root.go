package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/plus3/orrery/internal/config"
	"github.com/plus3/orrery/internal/telemetry"
	"github.com/plus3/orrery/sim"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "orrery",
	Short: "Scaled, real-time orbital simulation",
	Long: "Orrery animates a star system: planets revolve and spin, a moon follows its host, " +
		"meteors rain through the scene and the camera follows the selected planet.\n" +
		"Use the left and right arrow keys to change the tracked body.",
	RunE: runViewer,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .orrery.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("catalog", "", "body catalog TOML file (default built-in system)")
	rootCmd.PersistentFlags().Uint64("seed", 1, "meteor random seed")
	rootCmd.PersistentFlags().String("metrics-addr", "", "serve prometheus metrics on this address")
	rootCmd.Flags().Bool("debug-ui", false, "show the Dear ImGui debug overlay")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("simulation.catalog", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = viper.BindPFlag("simulation.seed", rootCmd.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("metrics.addr", rootCmd.PersistentFlags().Lookup("metrics-addr"))
	_ = viper.BindPFlag("debug_ui", rootCmd.Flags().Lookup("debug-ui"))

	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(catalogCmd)
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".orrery")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	if err := viper.ReadInConfig(); err == nil {
		log.Printf("using config file %s", viper.ConfigFileUsed())
	}
}

// newSimulation loads config and catalog and builds the simulation.
func newSimulation() (*sim.Simulation, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	cat, err := cfg.LoadCatalog()
	if err != nil {
		return nil, cfg, fmt.Errorf("loading catalog: %w", err)
	}
	s, err := sim.New(cat, cfg.Options())
	if err != nil {
		return nil, cfg, fmt.Errorf("building simulation: %w", err)
	}
	if cfg.Verbose {
		log.Printf("loaded %d bodies, %d focusable", len(cat.Bodies), s.Registry().Len())
	}
	return s, cfg, nil
}

// startMetrics attaches the telemetry system and serves it when an address
// is configured. The server stops with ctx.
func startMetrics(ctx context.Context, s *sim.Simulation, addr string) *telemetry.Metrics {
	if addr == "" {
		return nil
	}
	m := telemetry.NewMetrics()
	s.AddSystem(telemetry.NewSystem(m, s.Scheduler()))
	go func() {
		if err := m.Serve(ctx, addr); err != nil {
			log.Printf("metrics server: %v", err)
		}
	}()
	return m
}
