package geometry

import (
	"math"

	"github.com/pkg/errors"
)

// HelixParams configures a multi-strand helix.
type HelixParams struct {
	Strands      int      `json:"strands" yaml:"strands"`
	Turns        float64  `json:"turns" yaml:"turns"`
	Samples      int      `json:"samples" yaml:"samples"`
	Height       float64  `json:"height" yaml:"height"`
	Radius       float64  `json:"radius" yaml:"radius"`
	Phase        float64  `json:"phase" yaml:"phase"`
	SphereRadius float64  `json:"sphereRadius" yaml:"sphere_radius"`
	RungRadius   float64  `json:"rungRadius" yaml:"rung_radius"`
	StrandColors []string `json:"strandColors" yaml:"strand_colors"`
	RungColor    string   `json:"rungColor" yaml:"rung_color"`
}

func DefaultHelixParams() HelixParams {
	return HelixParams{
		Strands:      2,
		Turns:        2,
		Samples:      20,
		Height:       4,
		Radius:       1,
		Phase:        math.Pi,
		SphereRadius: 0.1,
		RungRadius:   0.02,
		StrandColors: []string{"#ff6b6b", "#4ecdc4"},
		RungColor:    "#ffe66d",
	}
}

type Helix struct {
	Strands [][]Placement `json:"strands" yaml:"strands"`
	Rungs   []Placement   `json:"rungs" yaml:"rungs"`
}

// SampleAngle returns the helix angle of sample i on the given strand.
func (p HelixParams) SampleAngle(strand, i int) float64 {
	return float64(i)/float64(p.Samples)*2*math.Pi*p.Turns + float64(strand)*p.Phase
}

// SampleHeight interpolates linearly from -Height/2 at the first sample to
// +Height/2 at the last.
func (p HelixParams) SampleHeight(i int) float64 {
	if p.Samples < 2 {
		return -p.Height / 2
	}
	return -p.Height/2 + p.Height*float64(i)/float64(p.Samples-1)
}

// GenerateHelix emits Strands·Samples spheres and Strands·⌈Samples/2⌉ rungs.
func GenerateHelix(p HelixParams) (Helix, error) {
	if p.Strands < 0 || p.Samples < 0 {
		return Helix{}, errors.Wrapf(ErrParameterBounds, "helix strands %d samples %d", p.Strands, p.Samples)
	}
	if p.Radius < 0 || p.Height < 0 {
		return Helix{}, errors.Wrapf(ErrParameterBounds, "helix radius %g height %g", p.Radius, p.Height)
	}

	h := Helix{
		Strands: make([][]Placement, p.Strands),
		Rungs:   make([]Placement, 0, p.Strands*((p.Samples+1)/2)),
	}
	for s := 0; s < p.Strands; s++ {
		color := pick(p.StrandColors, s, "#ffffff")
		strand := make([]Placement, 0, p.Samples)
		for i := 0; i < p.Samples; i++ {
			angle := p.SampleAngle(s, i)
			y := p.SampleHeight(i)
			pos := Vec3{p.Radius * math.Cos(angle), y, p.Radius * math.Sin(angle)}
			strand = append(strand, sphere(RoleStrand, pos, p.SphereRadius, color))

			if i%2 == 0 {
				h.Rungs = append(h.Rungs, rung(p, pos, angle))
			}
		}
		h.Strands[s] = strand
	}
	return h, nil
}

// rung bridges a strand point to its antipode at the same height.
func rung(p HelixParams, from Vec3, angle float64) Placement {
	to := Vec3{p.Radius * math.Cos(angle+math.Pi), from[1], p.Radius * math.Sin(angle+math.Pi)}
	mid := from.Add(to).Mul(0.5)
	dir := to.Sub(from)
	yaw := math.Atan2(dir[2], dir[0])
	return cylinder(RoleRung, mid, Vec3{0, -yaw, math.Pi / 2}, p.RungRadius, 2*p.Radius, p.RungColor)
}
