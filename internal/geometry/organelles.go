package geometry

import (
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// OrganelleParams configures a randomized scatter of shapes inside a
// spherical shell. Seed 0 draws from the wall clock.
type OrganelleParams struct {
	Count int       `json:"count" yaml:"count"`
	Inner float64   `json:"inner" yaml:"inner"`
	Outer float64   `json:"outer" yaml:"outer"`
	Kind  ShapeKind `json:"kind" yaml:"kind"`
	Size  float64   `json:"size" yaml:"size"`
	Color string    `json:"color" yaml:"color"`
	Seed  int64     `json:"seed" yaml:"seed"`
}

// GenerateOrganelleField makes p.Count sampling attempts and keeps those
// whose distance from the origin lies in [Inner, Outer]. The result length
// varies between 0 and p.Count.
func GenerateOrganelleField(p OrganelleParams) ([]Placement, error) {
	if p.Count < 0 {
		return nil, errors.Wrapf(ErrParameterBounds, "organelle count %d", p.Count)
	}
	if p.Inner < 0 || p.Outer < p.Inner {
		return nil, errors.Wrapf(ErrParameterBounds, "organelle shell [%g, %g]", p.Inner, p.Outer)
	}
	if p.Count == 0 {
		return []Placement{}, nil
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	mid := (p.Inner + p.Outer) / 2
	span := p.Outer - p.Inner

	out := make([]Placement, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		theta := rng.Float64() * 2 * math.Pi
		r := mid + (rng.Float64()*2-1)*span
		y := (rng.Float64() - 0.5) * span
		pos := Vec3{r * math.Cos(theta), y, r * math.Sin(theta)}

		if d := pos.Len(); d < p.Inner || d > p.Outer {
			continue
		}
		rot := Vec3{rng.Float64() * math.Pi, rng.Float64() * math.Pi, 0}
		out = append(out, organelle(p, pos, rot))
	}
	return out, nil
}

func organelle(p OrganelleParams, pos, rot Vec3) Placement {
	pl := Placement{
		Kind:     p.Kind,
		Role:     RoleOrganelle,
		Position: pos,
		Rotation: rot,
		Scale:    unit,
		Color:    p.Color,
		Material: DefaultMaterial(),
	}
	switch p.Kind {
	case Capsule:
		pl.Args = []float64{p.Size, p.Size * 3, 4, 8}
	case Cylinder:
		pl.Args = []float64{p.Size, p.Size, p.Size * 3, 8}
	case Cone:
		pl.Args = []float64{p.Size, p.Size * 2, 8}
	case Torus:
		pl.Args = []float64{p.Size, p.Size / 4, 8, 16}
	default:
		pl.Kind = Sphere
		pl.Args = []float64{p.Size, 8, 8}
	}
	return pl
}
