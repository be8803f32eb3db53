package anim

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/scene"
)

// DefaultBindings returns the stock animation for a model kind.
func DefaultBindings(k scene.Kind) []Binding {
	switch k {
	case scene.Atom:
		return []Binding{
			{Group: scene.ElectronOrbit1, Axis: Z, Policy: Absolute{Velocity: 1.0}},
			{Group: scene.ElectronOrbit2, Axis: X, Policy: Absolute{Velocity: 0.8}},
			{Group: scene.ElectronOrbit3, Axis: Y, Policy: Absolute{Velocity: 0.6}},
		}
	case scene.Cell:
		return []Binding{
			{Group: scene.Root, Axis: Y, Policy: Incremental{Delta: 0.005}},
			{Group: scene.NucleusGroup, Axis: X, Policy: Absolute{Velocity: 0.3}},
		}
	case scene.DNA:
		return []Binding{{Group: scene.Root, Axis: Y, Policy: Incremental{Delta: 0.01}}}
	case scene.MathSurface:
		return []Binding{{Group: scene.Root, Axis: Y, Policy: Incremental{Delta: 0.003}}}
	}
	return nil
}

// Spec is the config-file form of a binding.
type Spec struct {
	Group string  `json:"group" yaml:"group"`
	Axis  string  `json:"axis" yaml:"axis"`
	Mode  string  `json:"mode" yaml:"mode"`
	Rate  float64 `json:"rate" yaml:"rate"`
	Wrap  bool    `json:"wrap,omitempty" yaml:"wrap,omitempty"`
}

func (s Spec) Binding() (Binding, error) {
	if s.Group == "" {
		return Binding{}, errors.New("anim: binding without group")
	}
	axis, err := ParseAxis(s.Axis)
	if err != nil {
		return Binding{}, err
	}
	b := Binding{Group: scene.GroupID(s.Group), Axis: axis}
	switch strings.ToLower(s.Mode) {
	case "absolute", "time":
		b.Policy = Absolute{Velocity: s.Rate}
	case "incremental", "frame", "":
		b.Policy = Incremental{Delta: s.Rate, Wrap: s.Wrap}
	default:
		return Binding{}, errors.Errorf("anim: unknown binding mode %q", s.Mode)
	}
	return b, nil
}

// Bindings converts specs, failing on the first bad one.
func Bindings(specs []Spec) ([]Binding, error) {
	out := make([]Binding, 0, len(specs))
	for i, s := range specs {
		b, err := s.Binding()
		if err != nil {
			return nil, errors.Wrapf(err, "binding %d", i)
		}
		out = append(out, b)
	}
	return out, nil
}

// SpecOf is the inverse of Spec.Binding for the built-in policies.
func SpecOf(b Binding) Spec {
	s := Spec{Group: string(b.Group), Axis: b.Axis.String()}
	switch p := b.Policy.(type) {
	case Absolute:
		s.Mode, s.Rate = "absolute", p.Velocity
	case Incremental:
		s.Mode, s.Rate, s.Wrap = "incremental", p.Delta, p.Wrap
	default:
		s.Mode = "custom"
	}
	return s
}
