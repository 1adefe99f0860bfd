package spatial

import "math"

// MassProperties holds the static inertial description of a single geom:
// total mass and the diagonal of the body-frame inertia tensor. The shapes
// supported by the scene format are all symmetric enough that the principal
// axes coincide with the geom frame, so the diagonal is sufficient.
type MassProperties struct {
	Mass    float64
	Inertia Vec3
}

// BoxInertia returns the mass properties of a solid box with the given half
// extents, matching the size convention of box geoms.
func BoxInertia(mass float64, half Vec3) MassProperties {
	// Full extents for the standard solid-cuboid formula.
	x, y, z := 2*half.X, 2*half.Y, 2*half.Z
	c := mass / 12
	return MassProperties{
		Mass: mass,
		Inertia: Vec3{
			X: c * (y*y + z*z),
			Y: c * (x*x + z*z),
			Z: c * (x*x + y*y),
		},
	}
}

// SphereInertia returns the mass properties of a solid sphere.
func SphereInertia(mass, radius float64) MassProperties {
	i := 0.4 * mass * radius * radius
	return MassProperties{Mass: mass, Inertia: Vec3{i, i, i}}
}

// CylinderInertia returns the mass properties of a solid cylinder aligned
// with its local z axis, given radius and half height.
func CylinderInertia(mass, radius, halfHeight float64) MassProperties {
	h := 2 * halfHeight
	ixy := mass * (3*radius*radius + h*h) / 12
	iz := mass * radius * radius / 2
	return MassProperties{Mass: mass, Inertia: Vec3{ixy, ixy, iz}}
}

// BoxVolume returns the volume of a box from its half extents.
func BoxVolume(half Vec3) float64 {
	return 8 * half.X * half.Y * half.Z
}

// SphereVolume returns the volume of a sphere.
func SphereVolume(radius float64) float64 {
	return 4.0 / 3.0 * math.Pi * math.Pow(radius, 3)
}

// CylinderVolume returns the volume of a cylinder from radius and half
// height.
func CylinderVolume(radius, halfHeight float64) float64 {
	return math.Pi * radius * radius * 2 * halfHeight
}
