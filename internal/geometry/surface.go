package geometry

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// HeightFunc samples a surface height at (x, y).
type HeightFunc func(x, y float64) float64

var heightFuncs = map[string]HeightFunc{
	"wave":       func(x, y float64) float64 { return math.Sin(x) * math.Cos(y) * 0.5 },
	"saddle":     func(x, y float64) float64 { return (x*x - y*y) * 0.25 },
	"ripple":     func(x, y float64) float64 { return math.Sin(math.Hypot(x, y)*3) * 0.3 },
	"paraboloid": func(x, y float64) float64 { return (x*x + y*y) * 0.2 },
}

// LookupHeightFunc resolves a registered height function by name.
func LookupHeightFunc(name string) (HeightFunc, error) {
	fn, ok := heightFuncs[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownHeightFunc, "%q", name)
	}
	return fn, nil
}

func HeightFuncNames() []string {
	names := make([]string, 0, len(heightFuncs))
	for name := range heightFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SurfaceParams selects a registered height function and its sampling grid.
type SurfaceParams struct {
	Resolution      int     `json:"resolution" yaml:"resolution"`
	Extent          float64 `json:"extent" yaml:"extent"`
	Function        string  `json:"function" yaml:"function"`
	PointRadius     float64 `json:"pointRadius" yaml:"point_radius"`
	ConnectorRadius float64 `json:"connectorRadius" yaml:"connector_radius"`
	AxisLength      float64 `json:"axisLength" yaml:"axis_length"`
}

func DefaultSurfaceParams() SurfaceParams {
	return SurfaceParams{
		Resolution:      20,
		Extent:          2,
		Function:        "wave",
		PointRadius:     0.03,
		ConnectorRadius: 0.01,
		AxisLength:      3,
	}
}

const (
	defaultPointRadius     = 0.03
	defaultConnectorRadius = 0.01
)

// GenerateSurfaceGrid samples fn over [-extent, extent]² with default
// primitive sizes. It emits resolution² points and 2·resolution·(resolution-1)
// connectors.
func GenerateSurfaceGrid(resolution int, extent float64, fn HeightFunc) ([]Placement, error) {
	return surfaceGrid(resolution, extent, fn, defaultPointRadius, defaultConnectorRadius)
}

// Surface generates the grid for p, resolving p.Function by name.
func Surface(p SurfaceParams) ([]Placement, error) {
	fn, err := LookupHeightFunc(p.Function)
	if err != nil {
		return nil, err
	}
	return surfaceGrid(p.Resolution, p.Extent, fn, p.PointRadius, p.ConnectorRadius)
}

func surfaceGrid(n int, extent float64, fn HeightFunc, pointRadius, connectorRadius float64) ([]Placement, error) {
	if n < 2 {
		return nil, errors.Wrapf(ErrParameterBounds, "surface resolution %d (need >= 2)", n)
	}
	if extent <= 0 {
		return nil, errors.Wrapf(ErrParameterBounds, "surface extent %g", extent)
	}
	if fn == nil {
		return nil, errors.Wrap(ErrUnknownHeightFunc, "nil height function")
	}

	step := 2 * extent / float64(n-1)
	samples := make([]Vec3, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := -extent + step*float64(i)
			y := -extent + step*float64(j)
			samples[i*n+j] = Vec3{x, fn(x, y), y}
		}
	}

	out := make([]Placement, 0, n*n+2*n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p := samples[i*n+j]
			color := HeightColor(p[1])
			out = append(out, sphere(RolePoint, p, pointRadius, color))

			if i < n-1 {
				q := samples[(i+1)*n+j]
				out = append(out, connectX(p, q, connectorRadius, color))
			}
			if j < n-1 {
				q := samples[i*n+j+1]
				out = append(out, connectY(p, q, connectorRadius, color))
			}
		}
	}
	return out, nil
}

// connectX joins p to its +x neighbour; the chord lies in the XY plane so a
// single Z rotation aligns the cylinder.
func connectX(p, q Vec3, radius float64, color string) Placement {
	d := q.Sub(p)
	rot := Vec3{0, 0, math.Atan2(d[1], d[0]) - math.Pi/2}
	return cylinder(RoleConnector, p.Add(q).Mul(0.5), rot, radius, d.Len(), color)
}

// connectY joins p to its +y grid neighbour, which runs along world Z.
func connectY(p, q Vec3, radius float64, color string) Placement {
	d := q.Sub(p)
	rot := Vec3{math.Pi/2 - math.Atan2(d[1], d[2]), 0, 0}
	return cylinder(RoleConnector, p.Add(q).Mul(0.5), rot, radius, d.Len(), color)
}

// Axes emits the three coordinate axes as thin cylinders centred on the
// origin: x red, y green, z blue.
func Axes(length float64) []Placement {
	if length <= 0 {
		return []Placement{}
	}
	const r = 0.015
	return []Placement{
		cylinder(RoleAxis, Vec3{}, Vec3{0, 0, math.Pi / 2}, r, length, "#ff4444"),
		cylinder(RoleAxis, Vec3{}, Vec3{}, r, length, "#44ff44"),
		cylinder(RoleAxis, Vec3{}, Vec3{math.Pi / 2, 0, 0}, r, length, "#4488ff"),
	}
}
