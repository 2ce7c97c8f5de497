package sim

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed catalog.toml
var defaultCatalog []byte

// ErrInvalidCatalog is wrapped by every validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the static description of a system, in display order.
type Catalog struct {
	Bodies []BodySpec `toml:"body"`
}

// BodySpec describes one body as written in a catalog file.
type BodySpec struct {
	Name          string    `toml:"name"`
	Kind          string    `toml:"kind,omitempty"`
	Parent        string    `toml:"parent,omitempty"`
	OrbitalRadius float64   `toml:"orbital_radius,omitempty"`
	AngularSpeed  float64   `toml:"angular_speed,omitempty"`
	SpinRate      float64   `toml:"spin_rate,omitempty"`
	Radius        float64   `toml:"radius"`
	Color         string    `toml:"color"`
	Focusable     *bool     `toml:"focusable,omitempty"`
	Ring          *RingSpec `toml:"ring,omitempty"`
}

// RingSpec describes a decorative ring.
type RingSpec struct {
	Inner float64 `toml:"inner"`
	Outer float64 `toml:"outer"`
	Color string  `toml:"color"`
}

// BodyKind returns the parsed kind; Validate has already rejected bad ones.
func (b BodySpec) BodyKind() BodyKind {
	k, _ := ParseBodyKind(b.Kind)
	return k
}

// IsFocusable reports whether the camera may track the body. Planets are
// focusable unless stated otherwise; stars and satellites are not.
func (b BodySpec) IsFocusable() bool {
	if b.Focusable != nil {
		return *b.Focusable
	}
	return b.BodyKind() == KindPlanet
}

// DefaultCatalog returns the built-in star system.
func DefaultCatalog() *Catalog {
	cat, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("sim: built-in catalog: %v", err))
	}
	return cat
}

// LoadCatalog reads and validates a TOML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	cat, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// ParseCatalog decodes and validates TOML catalog data.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := toml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks the structural rules a registry depends on. An empty
// catalog is valid.
func (c *Catalog) Validate() error {
	seen := make(map[string]BodyKind, len(c.Bodies))
	for i, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body %d has no name", ErrInvalidCatalog, i)
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("%w: duplicate body %q", ErrInvalidCatalog, b.Name)
		}
		kind, err := ParseBodyKind(b.Kind)
		if err != nil {
			return fmt.Errorf("%w: body %q: %v", ErrInvalidCatalog, b.Name, err)
		}
		if b.Radius <= 0 {
			return fmt.Errorf("%w: body %q: radius must be positive", ErrInvalidCatalog, b.Name)
		}
		if kind != KindStar && b.OrbitalRadius <= 0 {
			return fmt.Errorf("%w: body %q: orbital_radius must be positive", ErrInvalidCatalog, b.Name)
		}

		switch {
		case kind == KindSatellite:
			hostKind, ok := seen[b.Parent]
			if !ok {
				return fmt.Errorf("%w: satellite %q: parent %q must be declared before it", ErrInvalidCatalog, b.Name, b.Parent)
			}
			if hostKind == KindSatellite {
				return fmt.Errorf("%w: satellite %q: parent %q is itself a satellite", ErrInvalidCatalog, b.Name, b.Parent)
			}
		case b.Parent != "":
			return fmt.Errorf("%w: body %q: only satellites have a parent", ErrInvalidCatalog, b.Name)
		}

		if r := b.Ring; r != nil && (r.Inner <= 0 || r.Outer <= r.Inner) {
			return fmt.Errorf("%w: body %q: ring needs 0 < inner < outer", ErrInvalidCatalog, b.Name)
		}
		seen[b.Name] = kind
	}
	return nil
}
