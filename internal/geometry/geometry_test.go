package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRole(ps []Placement, role Role) int {
	n := 0
	for _, p := range ps {
		if p.Role == role {
			n++
		}
	}
	return n
}

func TestGenerateSurfaceGrid_Counts(t *testing.T) {
	flat := func(x, y float64) float64 { return 0 }
	for _, res := range []int{2, 3, 5, 10, 20} {
		for _, extent := range []float64{0.5, 1, 3} {
			ps, err := GenerateSurfaceGrid(res, extent, flat)
			require.NoError(t, err)
			assert.Equal(t, res*res, countRole(ps, RolePoint), "points res=%d", res)
			assert.Equal(t, 2*res*(res-1), countRole(ps, RoleConnector), "connectors res=%d", res)
		}
	}
}

func TestGenerateSurfaceGrid_RejectsBadParams(t *testing.T) {
	flat := func(x, y float64) float64 { return 0 }
	tests := []struct {
		name   string
		res    int
		extent float64
	}{
		{"resolution 1", 1, 1},
		{"resolution 0", 0, 1},
		{"zero extent", 4, 0},
		{"negative extent", 4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSurfaceGrid(tt.res, tt.extent, flat)
			assert.True(t, errors.Is(err, ErrParameterBounds), "got %v", err)
		})
	}
}

func TestGenerateSurfaceGrid_Bounds(t *testing.T) {
	ps, err := GenerateSurfaceGrid(5, 2, func(x, y float64) float64 { return x + y })
	require.NoError(t, err)

	first := ps[0]
	assert.InDelta(t, -2, first.Position[0], 1e-12)
	assert.InDelta(t, -2, first.Position[2], 1e-12)
	assert.InDelta(t, -4, first.Position[1], 1e-12)

	var last Placement
	for _, p := range ps {
		if p.Role == RolePoint {
			last = p
		}
	}
	assert.InDelta(t, 2, last.Position[0], 1e-12)
	assert.InDelta(t, 2, last.Position[2], 1e-12)
	assert.InDelta(t, 4, last.Position[1], 1e-12)
}

// The connector's local Y axis, rotated, must lie along the chord it spans.
func TestGenerateSurfaceGrid_ConnectorOrientation(t *testing.T) {
	fn := func(x, y float64) float64 { return math.Sin(x) * math.Cos(y) }
	ps, err := GenerateSurfaceGrid(6, 2, fn)
	require.NoError(t, err)

	step := 2 * 2.0 / 5
	for _, p := range ps {
		if p.Role != RoleConnector {
			continue
		}
		axis := RotationMatrix(p.Rotation).Mul3x1(mgl64.Vec3{0, 1, 0})
		half := axis.Mul(p.Length() / 2)
		a, b := p.Position.Sub(half), p.Position.Add(half)

		// both endpoints must sit on the sampled surface
		assert.InDelta(t, fn(a[0], a[2]), a[1], 1e-9)
		assert.InDelta(t, fn(b[0], b[2]), b[1], 1e-9)

		horiz := math.Hypot(b[0]-a[0], b[2]-a[2])
		assert.InDelta(t, step, horiz, 1e-9)
	}
}

func TestSurface_UnknownFunction(t *testing.T) {
	p := DefaultSurfaceParams()
	p.Function = "klein"
	_, err := Surface(p)
	assert.True(t, errors.Is(err, ErrUnknownHeightFunc))
}

func TestSurface_Functions(t *testing.T) {
	for _, name := range HeightFuncNames() {
		p := DefaultSurfaceParams()
		p.Function = name
		p.Resolution = 4
		ps, err := Surface(p)
		require.NoError(t, err, name)
		assert.Len(t, ps, 16+2*4*3, name)
	}
}

func TestGenerateHelix_Counts(t *testing.T) {
	for _, strands := range []int{0, 1, 2, 3} {
		for _, samples := range []int{0, 1, 2, 7, 20} {
			p := DefaultHelixParams()
			p.Strands, p.Samples = strands, samples
			h, err := GenerateHelix(p)
			require.NoError(t, err)

			spheres := 0
			for _, s := range h.Strands {
				spheres += len(s)
			}
			assert.Equal(t, strands*samples, spheres)
			assert.Equal(t, strands*((samples+1)/2), len(h.Rungs))
		}
	}
}

func TestGenerateHelix_HeightBounds(t *testing.T) {
	p := DefaultHelixParams()
	p.Height, p.Samples = 4, 20
	h, err := GenerateHelix(p)
	require.NoError(t, err)

	strand := h.Strands[0]
	assert.InDelta(t, -2, strand[0].Position[1], 1e-12)
	assert.InDelta(t, 2, strand[len(strand)-1].Position[1], 1e-9)
}

func TestGenerateHelix_Positions(t *testing.T) {
	p := DefaultHelixParams()
	h, err := GenerateHelix(p)
	require.NoError(t, err)

	for s, strand := range h.Strands {
		for i, pl := range strand {
			angle := float64(i)/float64(p.Samples)*4*math.Pi + float64(s)*p.Phase
			assert.InDelta(t, p.Radius*math.Cos(angle), pl.Position[0], 1e-12)
			assert.InDelta(t, p.Radius*math.Sin(angle), pl.Position[2], 1e-12)
			assert.Equal(t, p.StrandColors[s], pl.Color)
		}
	}
}

func TestGenerateHelix_RungsSpanDiameter(t *testing.T) {
	p := DefaultHelixParams()
	h, err := GenerateHelix(p)
	require.NoError(t, err)

	for _, r := range h.Rungs {
		assert.Equal(t, p.RungColor, r.Color)
		assert.InDelta(t, 2*p.Radius, r.Length(), 1e-12)
		// midpoint sits on the helix axis
		assert.InDelta(t, 0, r.Position[0], 1e-12)
		assert.InDelta(t, 0, r.Position[2], 1e-12)

		axis := RotationMatrix(r.Rotation).Mul3x1(mgl64.Vec3{0, 1, 0})
		assert.InDelta(t, 0, axis[1], 1e-12, "rung must be horizontal")
	}
}

func TestGenerateOrbits(t *testing.T) {
	p := DefaultOrbitParams()
	orbits, err := GenerateOrbits(p)
	require.NoError(t, err)
	require.Len(t, orbits, 3)

	for i, o := range orbits {
		assert.Equal(t, p.Radii[i], o.Radius)
		assert.Equal(t, p.Radii[i], o.Ring.Radius())
		assert.Equal(t, p.Colors[i], o.Ring.Color)
		assert.Equal(t, p.Colors[i], o.Electron.Color)
		assert.Equal(t, p.Tilts[i], o.Ring.Rotation)
		assert.InDelta(t, p.Radii[i], o.Electron.Position.Len(), 1e-12)
		if i > 0 {
			assert.Greater(t, o.Radius, orbits[i-1].Radius)
			assert.NotEqual(t, orbits[i-1].Ring.Rotation, o.Ring.Rotation)
		}
	}
}

func TestGenerateOrbits_Edges(t *testing.T) {
	p := DefaultOrbitParams()
	p.Count = 0
	orbits, err := GenerateOrbits(p)
	require.NoError(t, err)
	assert.Empty(t, orbits)

	p = DefaultOrbitParams()
	p.Count = 4
	_, err = GenerateOrbits(p)
	assert.True(t, errors.Is(err, ErrParameterBounds))

	p = DefaultOrbitParams()
	p.Radii = []float64{2, 2, 3}
	_, err = GenerateOrbits(p)
	assert.True(t, errors.Is(err, ErrParameterBounds))

	p = DefaultOrbitParams()
	p.Colors = []string{"#111111"}
	orbits, err = GenerateOrbits(p)
	require.NoError(t, err)
	for _, o := range orbits {
		assert.Equal(t, "#111111", o.Ring.Color)
	}
}

func TestGenerateOrganelleField_Bounds(t *testing.T) {
	p := OrganelleParams{Count: 200, Inner: 0.8, Outer: 1.6, Kind: Capsule, Size: 0.1, Color: "#fff", Seed: 7}
	ps, err := GenerateOrganelleField(p)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(ps), p.Count)

	for _, pl := range ps {
		d := pl.Position.Len()
		assert.GreaterOrEqual(t, d, p.Inner)
		assert.LessOrEqual(t, d, p.Outer)
		assert.Equal(t, Capsule, pl.Kind)
	}
}

func TestGenerateOrganelleField_Unseeded(t *testing.T) {
	p := OrganelleParams{Count: 50, Inner: 1, Outer: 2, Kind: Sphere, Size: 0.05}
	ps, err := GenerateOrganelleField(p)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(ps), 50)
	for _, pl := range ps {
		assert.True(t, pl.Position.Len() >= 1 && pl.Position.Len() <= 2)
	}
}

func TestGenerateOrganelleField_SeedReproducible(t *testing.T) {
	p := OrganelleParams{Count: 40, Inner: 0.5, Outer: 1.5, Kind: Sphere, Size: 0.05, Seed: 42}
	a, err := GenerateOrganelleField(p)
	require.NoError(t, err)
	b, err := GenerateOrganelleField(p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateOrganelleField_Edges(t *testing.T) {
	ps, err := GenerateOrganelleField(OrganelleParams{Count: 0, Inner: 0, Outer: 1})
	require.NoError(t, err)
	assert.Empty(t, ps)

	_, err = GenerateOrganelleField(OrganelleParams{Count: 3, Inner: 2, Outer: 1})
	assert.True(t, errors.Is(err, ErrParameterBounds))
}

func TestHeightColor(t *testing.T) {
	assert.Equal(t, "hsl(200, 70%, 50%)", HeightColor(0))
	assert.Equal(t, "hsl(320, 70%, 50%)", HeightColor(1))
	assert.Equal(t, "hsl(80, 70%, 50%)", HeightColor(-1))
	assert.Equal(t, "hsl(80, 70%, 50%)", HeightColor(2))

	for _, h := range []float64{-720.5, -1, 0, 359.9, 360, 1e6} {
		w := WrapHue(h)
		assert.True(t, w >= 0 && w < 360, "wrap(%g) = %g", h, w)
	}
}

func TestDeterminism(t *testing.T) {
	a, err := Surface(DefaultSurfaceParams())
	require.NoError(t, err)
	b, err := Surface(DefaultSurfaceParams())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	h1, _ := GenerateHelix(DefaultHelixParams())
	h2, _ := GenerateHelix(DefaultHelixParams())
	assert.Equal(t, h1, h2)
}

func TestMemo(t *testing.T) {
	m := NewMemo(4)

	a, err := m.Surface(DefaultSurfaceParams())
	require.NoError(t, err)
	b, err := m.Surface(DefaultSurfaceParams())
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
	assert.Same(t, &a[0], &b[0])

	p := DefaultSurfaceParams()
	p.Resolution = 3
	c, err := m.Surface(p)
	require.NoError(t, err)
	assert.Len(t, c, 9+12)
	assert.Equal(t, 2, m.Len())

	_, err = m.Orbits(DefaultOrbitParams())
	require.NoError(t, err)
	_, err = m.Helix(DefaultHelixParams())
	require.NoError(t, err)
	assert.Equal(t, 4, m.Len())

	bad := DefaultSurfaceParams()
	bad.Resolution = 1
	_, err = m.Surface(bad)
	assert.Error(t, err)
	assert.Equal(t, 4, m.Len())

	m.Purge()
	assert.Equal(t, 0, m.Len())
}

func TestParseShapeKind(t *testing.T) {
	k, err := ParseShapeKind("capsule")
	require.NoError(t, err)
	assert.Equal(t, Capsule, k)

	_, err = ParseShapeKind("cube")
	assert.Error(t, err)
}
