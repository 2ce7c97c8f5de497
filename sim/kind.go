package sim

import "fmt"

//go:generate stringer -type=BodyKind -trimprefix=Kind

// BodyKind classifies a catalog entry.
type BodyKind int

const (
	KindStar BodyKind = iota
	KindPlanet
	KindSatellite
)

// ParseBodyKind maps the catalog spelling ("star", "planet", "satellite") to
// a BodyKind.
func ParseBodyKind(s string) (BodyKind, error) {
	switch s {
	case "star":
		return KindStar, nil
	case "planet", "":
		return KindPlanet, nil
	case "satellite", "moon":
		return KindSatellite, nil
	}
	return 0, fmt.Errorf("unknown body kind %q", s)
}
