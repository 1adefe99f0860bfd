package spatial

import (
	"fmt"
	"math"
)

// Vec3 is a 3-component vector in right-handed world coordinates (z up).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by the scalar s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Elems returns the components as a slice, for serialization.
func (v Vec3) Elems() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// String implements fmt.Stringer with a fixed short precision for logs.
func (v Vec3) String() string {
	return fmt.Sprintf("[%.4g %.4g %.4g]", v.X, v.Y, v.Z)
}
