package simulation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"solar-sim/pkg/physics"
)

// DaysPerYear converts ephemeris velocities (AU/day) to AU/yr.
const DaysPerYear = 365.25

// BodyState is one ephemeris record.
type BodyState struct {
	Pos []float64 `json:"pos"`
	Vel []float64 `json:"vel"`
}

// Ephemeris is the external initial-condition source.
type Ephemeris struct {
	EpochJD float64 `json:"epoch_jd,omitempty"`
	Frame   string  `json:"frame,omitempty"`
	Units   struct {
		Position string `json:"position,omitempty"`
		Velocity string `json:"velocity,omitempty"`
	} `json:"units"`
	Planets     map[string]BodyState `json:"planets"`
	ScaleFactor float64              `json:"scale_factor,omitempty"`
}

// ReadEphemeris loads an ephemeris JSON file.
func ReadEphemeris(path string) (*Ephemeris, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read ephemeris: %w", err)
	}
	defer f.Close()

	eph, err := ParseEphemeris(f)
	if err != nil {
		return nil, withSource(path, err)
	}
	return eph, nil
}

// ParseEphemeris decodes an ephemeris document. Unknown keys are ignored;
// trailing data and repeated planet keys are not.
func ParseEphemeris(r io.Reader) (*Ephemeris, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read ephemeris: %w", err)
	}
	var doc struct {
		Ephemeris
		Planets json.RawMessage `json:"planets"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	if len(doc.Planets) == 0 || string(doc.Planets) == "null" {
		return nil, loadErr("", "planets", fmt.Errorf("%w: missing object", ErrMalformed))
	}
	planets, err := parsePlanets(doc.Planets)
	if err != nil {
		return nil, err
	}
	eph := doc.Ephemeris
	eph.Planets = planets
	return &eph, nil
}

// parsePlanets decodes the planets object one record at a time so a bad
// record is reported by name.
func parsePlanets(raw json.RawMessage) (map[string]BodyState, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, loadErr("", "planets", fmt.Errorf("%w: not an object", ErrMalformed))
	}
	planets := make(map[string]BodyState)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, loadErr("", "planets", fmt.Errorf("%w: %v", ErrMalformed, err))
		}
		name := tok.(string)
		if _, dup := planets[name]; dup {
			return nil, loadErr(name, "", fmt.Errorf("%w: listed twice", ErrAmbiguousBody))
		}
		var st BodyState
		if err := dec.Decode(&st); err != nil {
			field := ""
			var te *json.UnmarshalTypeError
			if errors.As(err, &te) {
				field = te.Field
			}
			return nil, loadErr(name, field, fmt.Errorf("%w: %v", ErrMalformed, err))
		}
		planets[name] = st
	}
	return planets, nil
}

// lookup resolves name against the ephemeris keys, ignoring case. Exactly
// one key may match.
func (e *Ephemeris) lookup(name string) (BodyState, error) {
	if st, ok := e.Planets[name]; ok {
		// an exact hit is still ambiguous if a differently-cased twin exists
		for k := range e.Planets {
			if k != name && strings.EqualFold(k, name) {
				return BodyState{}, ErrAmbiguousBody
			}
		}
		return st, nil
	}
	var (
		found BodyState
		hits  int
	)
	for k, st := range e.Planets {
		if strings.EqualFold(k, name) {
			found = st
			hits++
		}
	}
	switch hits {
	case 0:
		return BodyState{}, ErrMissingBody
	case 1:
		return found, nil
	default:
		return BodyState{}, ErrAmbiguousBody
	}
}

// LoadBodies merges the species table with the ephemeris. The anchor species
// is placed at the origin at rest and needs no ephemeris entry; every other
// species must resolve to exactly one entry. Velocities are multiplied by
// daysPerYear. The result follows the table order, and nothing is returned
// on error.
func LoadBodies(table []Species, eph *Ephemeris, anchor string, daysPerYear float64) ([]physics.Body, error) {
	if err := validateSpecies(table); err != nil {
		return nil, err
	}
	if eph == nil {
		return nil, &LoadError{Err: fmt.Errorf("%w: no ephemeris", ErrMalformed)}
	}
	if !(daysPerYear > 0) || math.IsInf(daysPerYear, 0) {
		return nil, fmt.Errorf("%w: days per year %g", ErrInvalidParams, daysPerYear)
	}

	bodies := make([]physics.Body, 0, len(table))
	for i, sp := range table {
		b := physics.Body{
			ID:     i,
			Name:   sp.Name,
			Mass:   sp.Mass,
			Radius: sp.Radius,
			Color:  sp.Color,
		}
		if anchor != "" && strings.EqualFold(sp.Name, anchor) {
			bodies = append(bodies, b)
			continue
		}

		st, err := eph.lookup(sp.Name)
		if err != nil {
			return nil, loadErr(sp.Name, "", err)
		}
		if b.Pos, err = vec2(sp.Name, "pos", st.Pos); err != nil {
			return nil, err
		}
		vel, err := vec2(sp.Name, "vel", st.Vel)
		if err != nil {
			return nil, err
		}
		b.Vel = r2.Scale(daysPerYear, vel)
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func vec2(body, field string, v []float64) (physics.Vec2, error) {
	if len(v) != 2 {
		return physics.Vec2{}, loadErr(body, field, fmt.Errorf("%w: want 2 components, got %d", ErrMalformed, len(v)))
	}
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return physics.Vec2{}, loadErr(body, field, fmt.Errorf("%w: non-finite component", ErrMalformed))
		}
	}
	return physics.Vec2{X: v[0], Y: v[1]}, nil
}
