package spatial

import (
	"fmt"
	"math"
)

// Quat is a unit quaternion in scalar-first (w, x, y, z) order, the
// convention used by the scene description format.
type Quat struct {
	W, X, Y, Z float64
}

// IdentityQuat returns the identity rotation.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// Mul returns the Hamilton product q * o, i.e. the rotation o followed by q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Conjugate returns the inverse rotation for a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Norm returns the quaternion magnitude.
func (q Quat) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalized returns q scaled to unit magnitude. A zero quaternion becomes
// the identity rather than NaN.
func (q Quat) Normalized() Quat {
	n := q.Norm()
	if n == 0 {
		return IdentityQuat()
	}
	return Quat{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Rotate applies the rotation q to the vector v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// p' = q * (0, v) * q^-1, expanded without allocating intermediates.
	u := Vec3{q.X, q.Y, q.Z}
	uv := cross(u, v)
	uuv := cross(u, uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// Elems returns the components in (w, x, y, z) order, for serialization.
func (q Quat) Elems() []float64 {
	return []float64{q.W, q.X, q.Y, q.Z}
}

// String implements fmt.Stringer with a fixed short precision for logs.
func (q Quat) String() string {
	return fmt.Sprintf("[%.4g %.4g %.4g %.4g]", q.W, q.X, q.Y, q.Z)
}

// FromEuler converts intrinsic XYZ Euler angles in radians to a unit
// quaternion.
func FromEuler(roll, pitch, yaw float64) Quat {
	cr, sr := math.Cos(roll/2), math.Sin(roll/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)
	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)

	return Quat{
		W: cr*cp*cy + sr*sp*sy,
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
	}.Normalized()
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
