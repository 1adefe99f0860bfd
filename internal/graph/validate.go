package graph

import "github.com/aolshev/rigscene/internal/model"

// validate enforces the structural invariants of the compiled tree. It runs
// after derive so that scene-wide quantities like the qpos width are
// available.
func (c *compiler) validate() {
	c.g.World.Walk(func(body *Body) bool {
		if body.IsWorld() {
			return true
		}
		src := body.src

		c.validateJoints(body)

		if body.Mocap {
			if !body.Parent.IsWorld() {
				c.errorf(src.DeclRange, "Invalid mocap body",
					"Mocap body %q must be a direct child of the world.", body.Name)
			}
			if src.HasJoints() {
				c.errorf(src.DeclRange, "Invalid mocap body",
					"Mocap body %q is externally driven and must not declare joints anywhere in its subtree.", body.Name)
			}
		}

		for _, geom := range body.Geoms {
			if geom.Type == model.GeomPlane && c.bodyIsMovable(body) {
				c.errorf(geom.src.DeclRange, "Invalid plane placement",
					"Plane geom %q is static and must not be attached to a jointed body.", geom.Name)
			}
		}

		if body.Region != "" {
			region, ok := c.g.regions[body.Region]
			if !ok {
				c.errorf(src.DeclRange, "Unresolved region reference",
					"Body %q references undeclared region %q.", body.Name, body.Region)
			} else if !region.Bounds.Contains(body.WorldPose.Pos) {
				c.errorf(src.DeclRange, "Body outside region",
					"Body %q sits at %s, outside region %q %s..%s.",
					body.Name, body.WorldPose.Pos, body.Region,
					region.Bounds.Min, region.Bounds.Max)
			}
		}

		return true
	})

	for _, keyframe := range c.g.keyframes {
		if len(keyframe.Qpos) != c.g.NqPos {
			c.errorf(keyframe.DeclRange, "Keyframe width mismatch",
				"Keyframe %q declares %d qpos values, but the scene has %d configuration coordinates.",
				keyframe.Name, len(keyframe.Qpos), c.g.NqPos)
		}
	}
}

// validateJoints checks the joint set of one body: a free joint must be the
// body's only joint, must sit directly under the world, and needs at least
// one geom with nonzero mass so the consuming engine can integrate it.
func (c *compiler) validateJoints(body *Body) {
	for _, joint := range body.Joints {
		if joint.Type != model.JointFree {
			continue
		}
		if len(body.Joints) > 1 {
			c.errorf(body.src.DeclRange, "Conflicting joints",
				"Body %q declares a free joint alongside other joints; a free joint must be the only joint on its body.", body.Name)
		}
		if !body.Parent.IsWorld() {
			c.errorf(body.src.DeclRange, "Invalid free joint placement",
				"Body %q declares a free joint but is not a direct child of the world.", body.Name)
		}
		if !c.bodyHasMassiveGeom(body) {
			c.errorf(body.src.DeclRange, "Massless free body",
				"Body %q has a free joint but no geom with nonzero mass.", body.Name)
		}
	}
}

// bodyHasMassiveGeom reports whether the body's subtree carries any geom
// mass.
func (c *compiler) bodyHasMassiveGeom(body *Body) bool {
	massive := false
	body.Walk(func(node *Body) bool {
		for _, geom := range node.Geoms {
			if geom.Mass > 0 {
				massive = true
				return false
			}
		}
		return true
	})
	return massive
}

// bodyIsMovable reports whether the body or any ancestor declares a joint.
func (c *compiler) bodyIsMovable(body *Body) bool {
	for cursor := body; cursor != nil; cursor = cursor.Parent {
		if len(cursor.Joints) > 0 {
			return true
		}
	}
	return false
}
