package sim

import (
	"fmt"
	"log"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/ecs"
)

var fallbackColor = colorful.Color{R: 0.6, G: 0.6, B: 0.6}

// BodyRegistry lists the focusable bodies in catalog order. It is filled once
// by Build and never changes afterwards.
type BodyRegistry struct {
	Bodies []*ecs.EntityRef
	Names  []string
}

// Len returns the number of focusable bodies.
func (r *BodyRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Bodies)
}

// Lookup returns the ID and name of the i-th body.
func (r *BodyRegistry) Lookup(i int) (ecs.EntityId, string, bool) {
	if i < 0 || i >= r.Len() {
		return 0, "", false
	}
	id, ok := r.Bodies[i].Id, r.Bodies[i].Valid()
	return id, r.Names[i], ok
}

// Build spawns one entity per catalog body and installs the BodyRegistry
// singleton. Unusable colours are replaced and logged, never fatal.
func Build(storage *ecs.Storage, cat *Catalog) (*BodyRegistry, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	ids := make(map[string]ecs.EntityId, len(cat.Bodies))
	reg := &BodyRegistry{}

	for _, b := range cat.Bodies {
		kind := b.BodyKind()
		color, ok := parseColor(b.Color)
		if !ok {
			log.Printf("orrery: body %q: unusable color %q, using fallback", b.Name, b.Color)
		}

		components := []any{
			Body{Name: b.Name, Kind: kind},
			Spin{Rate: b.SpinRate},
			Appearance{Radius: b.Radius, Color: color, Degraded: !ok},
		}
		if kind != KindStar {
			components = append(components, Orbit{
				Radius:       b.OrbitalRadius,
				AngularSpeed: b.AngularSpeed,
			})
		}
		if kind == KindSatellite {
			host, found := ids[b.Parent]
			if !found {
				return nil, fmt.Errorf("%w: satellite %q: unknown parent %q", ErrInvalidCatalog, b.Name, b.Parent)
			}
			components = append(components, Parent{Ref: storage.CreateEntityRef(host)})
		}
		if r := b.Ring; r != nil {
			ringColor, ok := parseColor(r.Color)
			if !ok {
				log.Printf("orrery: ring of %q: unusable color %q, using fallback", b.Name, r.Color)
			}
			components = append(components, Ring{Inner: r.Inner, Outer: r.Outer, Color: ringColor})
		}

		id := storage.Spawn(components...)
		ids[b.Name] = id
		if b.IsFocusable() {
			reg.Bodies = append(reg.Bodies, storage.CreateEntityRef(id))
			reg.Names = append(reg.Names, b.Name)
		}
	}

	storage.AddSingleton(*reg)
	var installed *BodyRegistry
	storage.ReadSingleton(&installed)
	return installed, nil
}

func parseColor(hex string) (colorful.Color, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallbackColor, false
	}
	return c, true
}
