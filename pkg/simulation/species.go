package simulation

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Mass units used by the species table.
const (
	SolarMass = 1.0
	EarthMass = 3.003e-6
)

// DefaultAnchor is the body placed at the origin at rest.
const DefaultAnchor = "Sun"

// Species is the fixed, per-body part of the initial conditions.
type Species struct {
	Name   string
	Mass   float64
	Radius float64
	Color  color.RGBA
}

// DefaultSpecies returns the solar system table in enumeration order. The
// caller owns the returned slice.
func DefaultSpecies() []Species {
	return []Species{
		{Name: "Sun", Mass: SolarMass, Radius: 0.5, Color: color.RGBA{255, 230, 0, 255}},
		{Name: "Mercury", Mass: 0.166 * EarthMass, Radius: 0.1, Color: color.RGBA{179, 179, 179, 255}},
		{Name: "Venus", Mass: 0.815 * EarthMass, Radius: 0.2, Color: color.RGBA{230, 204, 153, 255}},
		{Name: "Earth", Mass: EarthMass, Radius: 0.2, Color: color.RGBA{51, 102, 255, 255}},
		{Name: "Mars", Mass: 0.107 * EarthMass, Radius: 0.15, Color: color.RGBA{204, 77, 51, 255}},
		{Name: "Jupiter", Mass: 317.8 * EarthMass, Radius: 0.4, Color: color.RGBA{204, 153, 102, 255}},
		{Name: "Saturn", Mass: 95.2 * EarthMass, Radius: 0.35, Color: color.RGBA{230, 204, 128, 255}},
		{Name: "Uranus", Mass: 14.54 * EarthMass, Radius: 0.3, Color: color.RGBA{153, 217, 230, 255}},
		{Name: "Neptune", Mass: 17.15 * EarthMass, Radius: 0.3, Color: color.RGBA{77, 115, 242, 255}},
	}
}

func validateSpecies(table []Species) error {
	seen := make(map[string]struct{}, len(table))
	for i, sp := range table {
		if strings.TrimSpace(sp.Name) == "" {
			return loadErr(fmt.Sprintf("#%d", i), "name", ErrMalformed)
		}
		key := strings.ToLower(sp.Name)
		if _, dup := seen[key]; dup {
			return loadErr(sp.Name, "name", ErrDuplicateBody)
		}
		seen[key] = struct{}{}
		if !(sp.Mass > 0) || math.IsInf(sp.Mass, 0) {
			return loadErr(sp.Name, "mass", fmt.Errorf("%w (got %g)", ErrInvalidMass, sp.Mass))
		}
	}
	return nil
}
