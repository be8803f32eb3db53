package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/eduverse/internal/geometry"
)

// Camera orbits the origin and projects with a simple perspective divide.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
	Distance         float64
	Near             float64
	// Extent is the half-width of world space that fills the shorter screen
	// side at zoom 1.
	Extent float64
}

func NewCamera() *Camera {
	return &Camera{RotX: 0.35, RotY: -0.6, Zoom: 1, Distance: 12, Near: 0.1, Extent: 4}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) View() mgl64.Mat3 {
	return geometry.RotationMatrix(geometry.Vec3{c.RotX, c.RotY, c.RotZ})
}

// Project maps a world point onto a sw by sh screen. It returns screen
// coordinates, view depth (larger is nearer) and whether the point is on
// screen.
func (c *Camera) Project(p geometry.Vec3, sw, sh int) (int, int, float64, bool) {
	return c.project(c.View(), p, sw, sh)
}

func (c *Camera) project(view mgl64.Mat3, p geometry.Vec3, sw, sh int) (int, int, float64, bool) {
	v := view.Mul3x1(p).Mul(c.Zoom)
	if v.Z() >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - v.Z())
	minDim := float64(min(sw, sh))
	extent := c.Extent
	if extent <= 0 {
		extent = 4
	}
	px := minDim / (2 * extent)
	sx := int(math.Round(v.X()*persp*px)) + sw/2
	sy := int(math.Round(-v.Y()*persp*px)) + sh/2
	return sx, sy, v.Z(), sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
