package graph

import (
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/aolshev/rigscene/internal/spatial"
)

// fingerprint computes a stable digest of the compiled scene. Two compiles
// of the same workspace yield the same value regardless of map iteration
// order, so the digest can key caches in downstream consumers.
func (c *compiler) fingerprint() {
	h := xxhash.New()
	w := &digestWriter{h: h}

	scene := c.g.Scene
	w.str("scene", scene.Name, scene.Option.Integrator)
	w.num(scene.Option.Timestep, float64(scene.Option.Iterations), scene.Option.Tolerance)
	w.vec(scene.Statistic.Center)
	w.num(scene.Statistic.Extent)

	names := make([]string, 0, len(c.g.textures))
	for name := range c.g.textures {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		texture := c.g.textures[name]
		w.str("texture", texture.Name, texture.Type, texture.Builtin, texture.File)
		w.num(texture.Rgb1...)
		w.num(texture.Rgb2...)
	}

	names = names[:0]
	for name := range c.g.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		material := c.g.materials[name]
		w.str("material", material.Name, material.Texture)
		w.num(material.Rgba...)
		w.num(material.Reflectance, material.Shininess, material.Specular)
	}

	c.g.World.Walk(func(body *Body) bool {
		w.str("body", body.Name)
		w.bools(body.Mocap)
		w.pose(body.LocalPose)
		for _, joint := range body.Joints {
			w.str("joint", joint.Name, string(joint.Type))
			w.vec(joint.Axis)
			w.vec(joint.Pos)
			w.num(joint.Range...)
			w.num(joint.Damping, joint.Stiffness)
		}
		for _, geom := range body.Geoms {
			w.str("geom", geom.Name, string(geom.Type))
			w.num(geom.Size...)
			w.pose(geom.LocalPose)
			w.num(float64(geom.Contype), float64(geom.Conaffinity))
			w.num(geom.Friction...)
			w.num(geom.Rgba...)
			w.num(geom.Mass)
			if geom.Material != nil {
				w.str(geom.Material.Name)
			}
		}
		return true
	})

	for _, sensor := range c.g.Sensors {
		w.str("sensor", sensor.Kind, sensor.Name, string(sensor.ObjType), sensor.ObjName)
		w.num(sensor.Cutoff)
	}

	names = names[:0]
	for name := range c.g.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		region := c.g.regions[name]
		w.str("region", region.Name)
		w.vec(region.Bounds.Min)
		w.vec(region.Bounds.Max)
	}

	names = names[:0]
	for name := range c.g.keyframes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		keyframe := c.g.keyframes[name]
		w.str("keyframe", keyframe.Name)
		w.num(keyframe.Qpos...)
	}

	c.g.digest = h.Sum64()
}

// digestWriter serializes values into the hash with unambiguous separators.
type digestWriter struct {
	h *xxhash.Digest
}

func (w *digestWriter) str(values ...string) {
	for _, v := range values {
		_, _ = w.h.WriteString(v)
		_, _ = w.h.WriteString("\x00")
	}
}

func (w *digestWriter) num(values ...float64) {
	for _, v := range values {
		_, _ = w.h.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		_, _ = w.h.WriteString("\x00")
	}
}

func (w *digestWriter) bools(values ...bool) {
	for _, v := range values {
		_, _ = w.h.WriteString(strconv.FormatBool(v))
		_, _ = w.h.WriteString("\x00")
	}
}

func (w *digestWriter) vec(v spatial.Vec3) {
	w.num(v.X, v.Y, v.Z)
}

func (w *digestWriter) pose(p spatial.Pose) {
	w.num(p.Pos.X, p.Pos.Y, p.Pos.Z, p.Quat.W, p.Quat.X, p.Quat.Y, p.Quat.Z)
}
