package anim

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// ClockSample is a time in seconds supplied by the host clock.
type ClockSample float64

type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return "?"
}

func (a Axis) valid() bool { return a >= X && a <= Z }

func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	}
	return 0, errors.Errorf("anim: unknown axis %q", s)
}

// Policy computes the next angle of one axis.
type Policy interface {
	Next(current float64, t ClockSample) float64
}

// Absolute sets the angle to t·Velocity regardless of its current value.
type Absolute struct {
	Velocity float64
}

func (a Absolute) Next(_ float64, t ClockSample) float64 {
	return float64(t) * a.Velocity
}

// Incremental adds Delta on every tick. With Wrap the angle stays in
// [0, 2π).
type Incremental struct {
	Delta float64
	Wrap  bool
}

func (in Incremental) Next(current float64, _ ClockSample) float64 {
	next := current + in.Delta
	if in.Wrap {
		next = math.Mod(next, 2*math.Pi)
		if next < 0 {
			next += 2 * math.Pi
		}
	}
	return next
}
