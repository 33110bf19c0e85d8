package simulation

import (
	"errors"
	"fmt"
	"strings"

	"solar-sim/pkg/physics"
)

var (
	// ErrMissingBody reports a species with no initial-condition entry.
	ErrMissingBody = errors.New("no initial conditions")
	// ErrAmbiguousBody reports a name that matches more than one entry.
	ErrAmbiguousBody = errors.New("ambiguous body name")
	// ErrDuplicateBody reports the same name twice in one body table.
	ErrDuplicateBody = errors.New("duplicate body name")
	// ErrMalformed reports an unparseable source or a bad field.
	ErrMalformed = errors.New("malformed initial conditions")
	// ErrInvalidMass reports a non-positive or non-finite mass.
	ErrInvalidMass = physics.ErrInvalidMass
	// ErrInvalidParams reports an unusable G, timestep or distance guard.
	ErrInvalidParams = errors.New("invalid simulation parameters")
)

// LoadError describes why a body table could not be built. Body and Field
// are empty when the failure is not tied to one record.
type LoadError struct {
	Source string
	Body   string
	Field  string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		fmt.Fprintf(&b, "load %s: ", e.Source)
	}
	if e.Body != "" {
		fmt.Fprintf(&b, "body %q: ", e.Body)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "%s: ", e.Field)
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(body, field string, err error) *LoadError {
	return &LoadError{Body: body, Field: field, Err: err}
}

// withSource stamps the source name on a *LoadError, or wraps any other error.
func withSource(source string, err error) error {
	if err == nil {
		return nil
	}
	var le *LoadError
	if errors.As(err, &le) {
		le.Source = source
		return le
	}
	return &LoadError{Source: source, Err: err}
}
