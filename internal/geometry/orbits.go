package geometry

import (
	"math"

	"github.com/pkg/errors"
)

// OrbitParams configures electron orbits around a nucleus.
type OrbitParams struct {
	Count          int       `json:"count" yaml:"count"`
	Radii          []float64 `json:"radii" yaml:"radii"`
	Colors         []string  `json:"colors" yaml:"colors"`
	Tilts          []Vec3    `json:"tilts" yaml:"tilts"`
	TubeRadius     float64   `json:"tubeRadius" yaml:"tube_radius"`
	ElectronRadius float64   `json:"electronRadius" yaml:"electron_radius"`
}

func DefaultOrbitParams() OrbitParams {
	return OrbitParams{
		Count:  3,
		Radii:  []float64{1.5, 2.2, 3.0},
		Colors: []string{"#4ecdc4", "#45b7d1", "#96ceb4"},
		Tilts: []Vec3{
			{math.Pi / 2, 0, 0},
			{math.Pi / 3, math.Pi / 4, 0},
			{math.Pi / 4, -math.Pi / 4, 0},
		},
		TubeRadius:     0.02,
		ElectronRadius: 0.1,
	}
}

// Orbit is one ring and the electron riding on it. Both share the orbit's
// tilt so the pair can be spun together by an enclosing group.
type Orbit struct {
	Radius   float64   `json:"radius" yaml:"radius"`
	Ring     Placement `json:"ring" yaml:"ring"`
	Electron Placement `json:"electron" yaml:"electron"`
}

// GenerateOrbits returns p.Count orbits in ascending radius order.
func GenerateOrbits(p OrbitParams) ([]Orbit, error) {
	if p.Count < 0 || p.Count > len(p.Radii) {
		return nil, errors.Wrapf(ErrParameterBounds, "orbit count %d with %d radii", p.Count, len(p.Radii))
	}
	if p.TubeRadius < 0 || p.ElectronRadius < 0 {
		return nil, errors.Wrap(ErrParameterBounds, "negative orbit tube or electron radius")
	}

	orbits := make([]Orbit, 0, p.Count)
	prev := 0.0
	for i := 0; i < p.Count; i++ {
		r := p.Radii[i]
		if r <= prev {
			return nil, errors.Wrapf(ErrParameterBounds, "orbit radius %g at %d is not strictly increasing", r, i)
		}
		prev = r

		color := pick(p.Colors, i, "#ffffff")
		tilt := Vec3{}
		if len(p.Tilts) > 0 {
			tilt = p.Tilts[i%len(p.Tilts)]
		}

		ring := Placement{
			Kind:     Torus,
			Role:     RoleRing,
			Rotation: tilt,
			Scale:    unit,
			Color:    color,
			Material: Material{Metalness: 0.3, Roughness: 0.4, Opacity: 0.6},
			Args:     []float64{r, p.TubeRadius, 16, 100},
		}

		electron := sphere(RoleElectron, rotateEuler(Vec3{r, 0, 0}, tilt), p.ElectronRadius, color)
		electron.Material.EmissiveIntensity = 0.5

		orbits = append(orbits, Orbit{Radius: r, Ring: ring, Electron: electron})
	}
	return orbits, nil
}

// rotateEuler applies an XYZ Euler rotation to v.
func rotateEuler(v, euler Vec3) Vec3 {
	m := RotationMatrix(euler)
	return m.Mul3x1(v)
}
