package spatial

// Pose is a rigid transform: a rotation followed by a translation.
type Pose struct {
	Pos  Vec3
	Quat Quat
}

// IdentityPose returns the identity transform.
func IdentityPose() Pose {
	return Pose{Quat: IdentityQuat()}
}

// Compose returns the transform that first applies local, then p. This is
// the parent-to-world composition used when walking the kinematic tree:
// world = parentWorld.Compose(localOffset).
func (p Pose) Compose(local Pose) Pose {
	return Pose{
		Pos:  p.Pos.Add(p.Quat.Rotate(local.Pos)),
		Quat: p.Quat.Mul(local.Quat).Normalized(),
	}
}

// Apply transforms the point v from the local frame of p into the parent
// frame.
func (p Pose) Apply(v Vec3) Vec3 {
	return p.Pos.Add(p.Quat.Rotate(v))
}
