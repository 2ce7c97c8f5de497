package main

import (
	"fmt"
	"log"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/plus3/orrery/internal/config"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and print the body catalog",
	Long:  "Catalog loads the configured catalog (or the built-in system), validates it and prints it as TOML.",
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cat, err := cfg.LoadCatalog()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	focusable := 0
	for _, b := range cat.Bodies {
		if b.IsFocusable() {
			focusable++
		}
	}
	log.Printf("catalog ok: %d bodies, %d focusable", len(cat.Bodies), focusable)

	enc := toml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndentTables(true)
	return enc.Encode(cat)
}
