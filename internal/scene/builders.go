package scene

import (
	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/geometry"
)

// Builder assembles the group hierarchy of one model kind.
type Builder func(p Params, memo *geometry.Memo) (*Group, error)

func buildAtom(p Params, memo *geometry.Memo) (*Group, error) {
	if p.Atom.NucleusRadius < 0 {
		return nil, errors.Wrapf(geometry.ErrParameterBounds, "nucleus radius %g", p.Atom.NucleusRadius)
	}
	if p.Atom.Orbits.Count > MaxOrbits {
		return nil, errors.Wrapf(geometry.ErrParameterBounds, "orbit count %d exceeds %d", p.Atom.Orbits.Count, MaxOrbits)
	}
	orbits, err := memo.Orbits(p.Atom.Orbits)
	if err != nil {
		return nil, err
	}

	nucleus := geometry.NewSphere(geometry.RoleNucleus, geometry.Vec3{}, p.Atom.NucleusRadius, p.Atom.NucleusColor)
	nucleus.Material.EmissiveIntensity = 0.2
	root := newGroup(Root, nucleus)

	for i := 0; i < MaxOrbits; i++ {
		g := newGroup(electronOrbits[i])
		if i < len(orbits) {
			g.Placements = []geometry.Placement{orbits[i].Ring, orbits[i].Electron}
		}
		root.add(g)
	}
	return root, nil
}

func buildCell(p Params, _ *geometry.Memo) (*Group, error) {
	c := p.Cell
	if c.NucleusRadius < 0 || c.NucleolusRadius < 0 || c.MembraneRadius <= c.NucleusRadius {
		return nil, errors.Wrapf(geometry.ErrParameterBounds,
			"cell radii nucleus=%g membrane=%g", c.NucleusRadius, c.MembraneRadius)
	}
	for _, f := range []geometry.OrganelleParams{c.Mitochondria, c.Ribosomes} {
		if f.Outer > c.MembraneRadius {
			return nil, errors.Wrapf(geometry.ErrParameterBounds,
				"organelle shell %g outside membrane %g", f.Outer, c.MembraneRadius)
		}
	}

	membrane := geometry.NewSphere(geometry.RoleMembrane, geometry.Vec3{}, c.MembraneRadius, c.MembraneColor)
	membrane.Args = []float64{c.MembraneRadius, 32, 32}
	membrane.Material.Opacity = 0.3
	root := newGroup(Root, membrane)

	for _, f := range []geometry.OrganelleParams{c.Mitochondria, c.Ribosomes} {
		field, err := geometry.GenerateOrganelleField(f)
		if err != nil {
			return nil, err
		}
		root.Placements = append(root.Placements, field...)
	}

	nucleolus := geometry.NewSphere(geometry.RoleNucleus, geometry.Vec3{0.15, 0.1, 0}, c.NucleolusRadius, c.NucleolusColor)
	nucleus := newGroup(NucleusGroup,
		geometry.NewSphere(geometry.RoleNucleus, geometry.Vec3{}, c.NucleusRadius, c.NucleusColor),
		nucleolus,
	)
	root.add(nucleus)
	return root, nil
}

func buildDNA(p Params, memo *geometry.Memo) (*Group, error) {
	h, err := memo.Helix(p.DNA)
	if err != nil {
		return nil, err
	}
	root := newGroup(Root)
	for _, strand := range h.Strands {
		root.Placements = append(root.Placements, strand...)
	}
	root.Placements = append(root.Placements, h.Rungs...)
	return root, nil
}

func buildSurface(p Params, memo *geometry.Memo) (*Group, error) {
	grid, err := memo.Surface(p.Surface)
	if err != nil {
		return nil, err
	}
	root := newGroup(Root)
	root.Placements = append(append(root.Placements, grid...), geometry.Axes(p.Surface.AxisLength)...)
	return root, nil
}
