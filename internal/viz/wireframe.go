package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/eduverse/internal/geometry"
	"github.com/san-kum/eduverse/internal/scene"
)

const (
	circleSegments = 24
	// Shapes thinner than this collapse to a point or a line.
	minOutline = 0.05
)

type Edge struct {
	Start, End geometry.Vec3
	Color      string
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e geometry.Vec3, col string) {
	w.Edges = append(w.Edges, Edge{s, e, col})
}

func (w *Wireframe) AddPoint(p geometry.Vec3, col string) {
	w.Edges = append(w.Edges, Edge{p, p, col})
}

func (w *Wireframe) Clear() { w.Edges = w.Edges[:0] }

// FromScene flattens sc into world-space edges. Each group's transform is
// parent·T·R·S, where R comes from rotations when the group has an entry
// there and from its base rotation otherwise.
func FromScene(sc *scene.Scene, rotations map[scene.GroupID]geometry.Vec3) *Wireframe {
	w := NewWireframe()
	world := make(map[*scene.Group]mgl64.Mat4)
	sc.WalkTree(func(g, parent *scene.Group) {
		rot, ok := rotations[g.ID]
		if !ok {
			rot = g.Rotation
		}
		m := geometry.Transform(g.Position, rot, g.Scale)
		if parent != nil {
			m = world[parent].Mul4(m)
		}
		world[g] = m
		for _, pl := range g.Placements {
			w.addPlacement(m.Mul4(geometry.Transform(pl.Position, pl.Rotation, pl.Scale)), pl)
		}
	})
	return w
}

func (w *Wireframe) addPlacement(m mgl64.Mat4, pl geometry.Placement) {
	at := func(x, y, z float64) geometry.Vec3 {
		return mgl64.TransformCoordinate(geometry.Vec3{x, y, z}, m)
	}
	r := pl.Radius()
	switch pl.Kind {
	case geometry.Sphere:
		if r < minOutline {
			w.AddPoint(at(0, 0, 0), pl.Color)
			return
		}
		w.circle(m, r, 0, 'z', pl.Color)
		w.circle(m, r, 0, 'x', pl.Color)
		w.circle(m, r, 0, 'y', pl.Color)
	case geometry.Torus:
		w.circle(m, r, 0, 'z', pl.Color)
	case geometry.Cylinder:
		h := pl.Length() / 2
		w.AddEdge(at(0, -h, 0), at(0, h, 0), pl.Color)
		if r >= minOutline {
			w.circle(m, r, h, 'y', pl.Color)
			w.circle(m, r, -h, 'y', pl.Color)
		}
	case geometry.Capsule:
		h := pl.Length() / 2
		w.AddEdge(at(0, -h-r, 0), at(0, h+r, 0), pl.Color)
		if r >= minOutline {
			w.circle(m, r, h, 'y', pl.Color)
			w.circle(m, r, -h, 'y', pl.Color)
		}
	case geometry.Cone:
		h := pl.Length() / 2
		apex := at(0, h, 0)
		w.circle(m, r, -h, 'y', pl.Color)
		for i := 0; i < 4; i++ {
			a := float64(i) * math.Pi / 2
			w.AddEdge(at(r*math.Cos(a), -h, r*math.Sin(a)), apex, pl.Color)
		}
	default:
		w.AddPoint(at(0, 0, 0), pl.Color)
	}
}

// circle adds a circle of radius r in the plane normal to the given local
// axis, offset by off along that axis.
func (w *Wireframe) circle(m mgl64.Mat4, r, off float64, normal byte, col string) {
	point := func(a float64) geometry.Vec3 {
		c, s := r*math.Cos(a), r*math.Sin(a)
		var v geometry.Vec3
		switch normal {
		case 'x':
			v = geometry.Vec3{off, c, s}
		case 'y':
			v = geometry.Vec3{c, off, s}
		default:
			v = geometry.Vec3{c, s, off}
		}
		return mgl64.TransformCoordinate(v, m)
	}
	prev := point(0)
	for i := 1; i <= circleSegments; i++ {
		next := point(float64(i) / circleSegments * 2 * math.Pi)
		w.AddEdge(prev, next, col)
		prev = next
	}
}

// Bounds returns the axis-aligned bounding box of all edge endpoints.
func (w *Wireframe) Bounds() (lo, hi geometry.Vec3) {
	if len(w.Edges) == 0 {
		return
	}
	lo, hi = w.Edges[0].Start, w.Edges[0].Start
	for _, e := range w.Edges {
		for _, p := range []geometry.Vec3{e.Start, e.End} {
			for i := 0; i < 3; i++ {
				lo[i] = math.Min(lo[i], p[i])
				hi[i] = math.Max(hi[i], p[i])
			}
		}
	}
	return
}

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	Color          string
}

// ProjectEdges projects w for a sw by sh screen, keeping edges with at
// least one visible endpoint, sorted far to near.
func ProjectEdges(w *Wireframe, cam *Camera, sw, sh int) []ProjectedEdge {
	view := cam.View()
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.project(view, e.Start, sw, sh)
		x2, y2, d2, v2 := cam.project(view, e.End, sw, sh)
		if v1 || v2 {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	return proj
}

// Render3D draws the wireframe on the canvas using a painter's algorithm,
// so nearer edges claim the cell color.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	hex := map[string]string{}
	for _, e := range ProjectEdges(w, cam, c.SubWidth(), c.SubHeight()) {
		col, ok := hex[e.Color]
		if !ok {
			col = HexColor(e.Color, "")
			hex[e.Color] = col
		}
		if e.X1 == e.X2 && e.Y1 == e.Y2 {
			c.SetColor(e.X1, e.Y1, col)
		} else {
			c.DrawLine(e.X1, e.Y1, e.X2, e.Y2, col)
		}
	}
}
