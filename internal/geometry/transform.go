package geometry

import "github.com/go-gl/mathgl/mgl64"

// RotationMatrix composes an XYZ Euler rotation as Rx·Ry·Rz.
func RotationMatrix(euler Vec3) mgl64.Mat3 {
	return mgl64.Rotate3DX(euler[0]).Mul3(mgl64.Rotate3DY(euler[1])).Mul3(mgl64.Rotate3DZ(euler[2]))
}

// Transform returns the homogeneous T·R·S matrix for a node.
func Transform(pos, euler, scale Vec3) mgl64.Mat4 {
	r := mgl64.HomogRotate3DX(euler[0]).Mul4(mgl64.HomogRotate3DY(euler[1])).Mul4(mgl64.HomogRotate3DZ(euler[2]))
	return mgl64.Translate3D(pos[0], pos[1], pos[2]).Mul4(r).Mul4(mgl64.Scale3D(scale[0], scale[1], scale[2]))
}
