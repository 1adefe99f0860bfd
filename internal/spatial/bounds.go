package spatial

import "fmt"

// Bounds is an axis-aligned box, used for sampling and workspace regions.
type Bounds struct {
	Min Vec3
	Max Vec3
}

// Validate reports an error when any axis of the box is inverted.
func (b Bounds) Validate() error {
	if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z {
		return fmt.Errorf("bounds min %s exceeds max %s", b.Min, b.Max)
	}
	return nil
}

// Contains reports whether the point p lies inside the box, boundaries
// included.
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}
