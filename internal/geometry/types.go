package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Vec3 is a position, scale or Euler rotation (radians).
type Vec3 = mgl64.Vec3

type ShapeKind string

const (
	Sphere   ShapeKind = "sphere"
	Torus    ShapeKind = "torus"
	Cylinder ShapeKind = "cylinder"
	Cone     ShapeKind = "cone"
	Capsule  ShapeKind = "capsule"
)

// ParseShapeKind accepts the lowercase shape names.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch k := ShapeKind(s); k {
	case Sphere, Torus, Cylinder, Cone, Capsule:
		return k, nil
	}
	return "", errors.Errorf("geometry: unknown shape kind %q", s)
}

// Role names what a primitive stands for inside a model.
type Role string

const (
	RoleNucleus   Role = "nucleus"
	RoleRing      Role = "ring"
	RoleElectron  Role = "electron"
	RoleMembrane  Role = "membrane"
	RoleOrganelle Role = "organelle"
	RoleStrand    Role = "strand"
	RoleRung      Role = "rung"
	RolePoint     Role = "point"
	RoleConnector Role = "connector"
	RoleAxis      Role = "axis"
)

type Material struct {
	Metalness         float64 `json:"metalness" yaml:"metalness"`
	Roughness         float64 `json:"roughness" yaml:"roughness"`
	Opacity           float64 `json:"opacity" yaml:"opacity"`
	EmissiveIntensity float64 `json:"emissiveIntensity" yaml:"emissive_intensity"`
}

func DefaultMaterial() Material {
	return Material{Metalness: 0.1, Roughness: 0.5, Opacity: 1.0}
}

// Placement is one renderable shape instance. Args holds the intrinsic
// geometry arguments for Kind:
//
//	sphere   [radius, widthSegments, heightSegments]
//	torus    [radius, tube, radialSegments, tubularSegments]
//	cylinder [radiusTop, radiusBottom, height, radialSegments]
//	cone     [radius, height, radialSegments]
//	capsule  [radius, length, capSegments, radialSegments]
type Placement struct {
	Kind     ShapeKind `json:"kind" yaml:"kind"`
	Role     Role      `json:"role" yaml:"role"`
	Position Vec3      `json:"position" yaml:"position"`
	Rotation Vec3      `json:"rotation" yaml:"rotation"`
	Scale    Vec3      `json:"scale" yaml:"scale"`
	Color    string    `json:"color" yaml:"color"`
	Material Material  `json:"material" yaml:"material"`
	Args     []float64 `json:"args" yaml:"args"`
}

// Radius returns the primary radius argument of the shape.
func (p Placement) Radius() float64 {
	if len(p.Args) == 0 {
		return 0
	}
	return p.Args[0]
}

// Length returns the extent along the shape's local Y axis.
func (p Placement) Length() float64 {
	switch p.Kind {
	case Cylinder:
		if len(p.Args) > 2 {
			return p.Args[2]
		}
	case Cone, Capsule:
		if len(p.Args) > 1 {
			return p.Args[1]
		}
	case Sphere:
		return 2 * p.Radius()
	}
	return 0
}

var unit = Vec3{1, 1, 1}

func sphere(role Role, pos Vec3, radius float64, color string) Placement {
	return Placement{
		Kind:     Sphere,
		Role:     role,
		Position: pos,
		Scale:    unit,
		Color:    color,
		Material: DefaultMaterial(),
		Args:     []float64{radius, 16, 16},
	}
}

func cylinder(role Role, pos, rot Vec3, radius, height float64, color string) Placement {
	return Placement{
		Kind:     Cylinder,
		Role:     role,
		Position: pos,
		Rotation: rot,
		Scale:    unit,
		Color:    color,
		Material: DefaultMaterial(),
		Args:     []float64{radius, radius, height, 8},
	}
}

func pick(colors []string, i int, fallback string) string {
	if len(colors) == 0 {
		return fallback
	}
	return colors[i%len(colors)]
}

// NewSphere places a sphere of the given radius with the default material.
func NewSphere(role Role, pos Vec3, radius float64, color string) Placement {
	return sphere(role, pos, radius, color)
}
