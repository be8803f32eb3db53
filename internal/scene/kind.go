package scene

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownKind is returned for model kinds with no registered builder.
var ErrUnknownKind = errors.New("scene: unknown model kind")

type Kind string

const (
	Atom        Kind = "atom"
	Cell        Kind = "cell"
	DNA         Kind = "dna"
	MathSurface Kind = "mathSurface"
)

var kindInfo = map[Kind]string{
	Atom:        "nucleus with three electron orbits",
	Cell:        "membrane, organelles and a spinning nucleus",
	DNA:         "double helix with base-pair rungs",
	MathSurface: "height field over a coordinate grid",
}

// ParseKind accepts the canonical names case-insensitively, plus the
// snake_case spelling of mathSurface.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "atom":
		return Atom, nil
	case "cell":
		return Cell, nil
	case "dna", "helix":
		return DNA, nil
	case "mathsurface", "math_surface", "surface":
		return MathSurface, nil
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q", s)
}

// Describe returns a one-line summary of the model.
func Describe(k Kind) string {
	return kindInfo[k]
}

type GroupID string

const (
	Root         GroupID = "root"
	NucleusGroup GroupID = "nucleusGroup"

	ElectronOrbit1 GroupID = "electronOrbit1"
	ElectronOrbit2 GroupID = "electronOrbit2"
	ElectronOrbit3 GroupID = "electronOrbit3"
)

// MaxOrbits is the number of electron orbit groups an atom always carries.
const MaxOrbits = 3

var electronOrbits = [MaxOrbits]GroupID{ElectronOrbit1, ElectronOrbit2, ElectronOrbit3}

// ElectronOrbit returns the group ID of the i-th orbit, counting from 1.
func ElectronOrbit(i int) GroupID {
	if i < 1 || i > MaxOrbits {
		return ""
	}
	return electronOrbits[i-1]
}

// Descriptor is the input to the whole pipeline.
type Descriptor struct {
	Kind        Kind    `json:"kind" yaml:"kind"`
	ScaleFactor float64 `json:"scaleFactor" yaml:"scale_factor"`
}
