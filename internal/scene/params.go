package scene

import (
	"github.com/san-kum/eduverse/internal/geometry"
)

type AtomParams struct {
	Orbits        geometry.OrbitParams `json:"orbits" yaml:"orbits"`
	NucleusRadius float64              `json:"nucleusRadius" yaml:"nucleus_radius"`
	NucleusColor  string               `json:"nucleusColor" yaml:"nucleus_color"`
}

type CellParams struct {
	MembraneRadius  float64                  `json:"membraneRadius" yaml:"membrane_radius"`
	MembraneColor   string                   `json:"membraneColor" yaml:"membrane_color"`
	NucleusRadius   float64                  `json:"nucleusRadius" yaml:"nucleus_radius"`
	NucleusColor    string                   `json:"nucleusColor" yaml:"nucleus_color"`
	NucleolusRadius float64                  `json:"nucleolusRadius" yaml:"nucleolus_radius"`
	NucleolusColor  string                   `json:"nucleolusColor" yaml:"nucleolus_color"`
	Mitochondria    geometry.OrganelleParams `json:"mitochondria" yaml:"mitochondria"`
	Ribosomes       geometry.OrganelleParams `json:"ribosomes" yaml:"ribosomes"`
}

// Params bundles the generator parameters of every model kind. Only the
// section matching the descriptor's kind is read.
type Params struct {
	Atom    AtomParams             `json:"atom" yaml:"atom"`
	Cell    CellParams             `json:"cell" yaml:"cell"`
	DNA     geometry.HelixParams   `json:"dna" yaml:"dna"`
	Surface geometry.SurfaceParams `json:"surface" yaml:"surface"`
}

func DefaultParams() Params {
	return Params{
		Atom: AtomParams{
			Orbits:        geometry.DefaultOrbitParams(),
			NucleusRadius: 0.5,
			NucleusColor:  "#ff6b6b",
		},
		Cell: CellParams{
			MembraneRadius:  2,
			MembraneColor:   "#a8e6cf",
			NucleusRadius:   0.6,
			NucleusColor:    "#6c5ce7",
			NucleolusRadius: 0.25,
			NucleolusColor:  "#a29bfe",
			Mitochondria: geometry.OrganelleParams{
				Count: 8, Inner: 0.9, Outer: 1.7,
				Kind: geometry.Capsule, Size: 0.08, Color: "#fd79a8",
			},
			Ribosomes: geometry.OrganelleParams{
				Count: 40, Inner: 0.8, Outer: 1.9,
				Kind: geometry.Sphere, Size: 0.03, Color: "#ffeaa7",
			},
		},
		DNA:     geometry.DefaultHelixParams(),
		Surface: geometry.DefaultSurfaceParams(),
	}
}

// WithSeed fixes the organelle seeds so cell scenes are reproducible.
// Seed 0 restores wall-clock seeding.
func (p Params) WithSeed(seed int64) Params {
	p.Cell.Mitochondria.Seed = seed
	p.Cell.Ribosomes.Seed = seed
	if seed != 0 {
		p.Cell.Ribosomes.Seed = seed + 1
	}
	return p
}
