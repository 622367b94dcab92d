// Package angle defines the angle unit used to interpret trigonometric input and output.
package angle

import (
	"fmt"
	"math"
	"strings"
)

// Mode is the unit trigonometric functions work in.
type Mode uint8

const (
	Degrees  Mode = 0x1 // Degrees is the default mode.
	Radians  Mode = 0x2
	Gradians Mode = 0x3
)

func (m Mode) String() string {
	switch m {
	case Degrees:
		return "deg"
	case Radians:
		return "rad"
	case Gradians:
		return "grad"
	default:
		return "unknown"
	}
}

// IsValid reports whether m is one of the defined modes.
func (m Mode) IsValid() bool {
	return m >= Degrees && m <= Gradians
}

// Normalize returns m, or Degrees when m is not a defined mode.
func (m Mode) Normalize() Mode {
	if !m.IsValid() {
		return Degrees
	}

	return m
}

// ToRadians returns the factor that converts an angle in m to radians.
func (m Mode) ToRadians() float64 {
	switch m.Normalize() {
	case Radians:
		return 1
	case Gradians:
		return math.Pi / 200
	default:
		return math.Pi / 180
	}
}

// FromRadians returns the factor that converts radians to an angle in m.
func (m Mode) FromRadians() float64 {
	switch m.Normalize() {
	case Radians:
		return 1
	case Gradians:
		return 200 / math.Pi
	default:
		return 180 / math.Pi
	}
}

// Parse parses "deg", "rad" or "grad" (case-insensitive). Long forms such as
// "degrees" are accepted too.
func Parse(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deg", "degree", "degrees":
		return Degrees, nil
	case "rad", "radian", "radians":
		return Radians, nil
	case "grad", "gradian", "gradians", "gon":
		return Gradians, nil
	default:
		return 0, fmt.Errorf("unknown angle mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("invalid angle mode: %d", uint8(m))
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}
