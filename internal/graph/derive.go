package graph

// derive computes the static scene-wide quantities: qpos/qvel widths and
// per-joint offsets, subtree masses, and the collision candidate pairs.
func (c *compiler) derive() {
	offset := 0
	nqvel := 0
	c.g.World.Walk(func(body *Body) bool {
		for _, joint := range body.Joints {
			joint.QposOffset = offset
			offset += joint.Type.QposWidth()
			nqvel += joint.Type.QvelWidth()
		}
		return true
	})
	c.g.NqPos = offset
	c.g.NqVel = nqvel

	c.g.TotalMass = subtreeMass(c.g.World)

	c.g.CollisionPairs = collisionPairs(c.g.World)
}

// subtreeMass fills SubtreeMass bottom-up and returns the mass of the given
// subtree.
func subtreeMass(body *Body) float64 {
	var mass float64
	for _, geom := range body.Geoms {
		mass += geom.Mass
	}
	for _, child := range body.Children {
		mass += subtreeMass(child)
	}
	body.SubtreeMass = mass
	return mass
}

// collisionPairs enumerates the geom pairs eligible for contact checks.
// Geoms sharing a body never collide with each other; everything else is
// filtered by the contype/conaffinity bitmasks.
func collisionPairs(world *Body) []CollisionPair {
	var geoms []*Geom
	world.Walk(func(body *Body) bool {
		geoms = append(geoms, body.Geoms...)
		return true
	})

	var pairs []CollisionPair
	for i := 0; i < len(geoms); i++ {
		for j := i + 1; j < len(geoms); j++ {
			first, second := geoms[i], geoms[j]
			if first.Body == second.Body {
				continue
			}
			if !first.CollidesWith(second) {
				continue
			}
			pairs = append(pairs, CollisionPair{First: first.Name, Second: second.Name})
		}
	}
	return pairs
}
