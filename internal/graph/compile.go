package graph

import (
	"context"

	"github.com/aolshev/rigscene/internal/ctxlog"
	"github.com/aolshev/rigscene/internal/model"
	"github.com/aolshev/rigscene/internal/registry"
	"github.com/hashicorp/hcl/v2"
)

// Compile constructs a complete, validated scene graph from a workspace
// model. On failure it returns the accumulated diagnostics so a caller can
// report every broken declaration, not just the first.
func Compile(ctx context.Context, ws *model.Workspace, reg *registry.Registry) (*Graph, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compile: starting scene graph construction.")

	c := &compiler{
		g: &Graph{
			bodies:    make(map[string]*Body),
			geoms:     make(map[string]*Geom),
			joints:    make(map[string]*Joint),
			textures:  make(map[string]*model.Texture),
			materials: make(map[string]*model.Material),
			cameras:   make(map[string]*Camera),
			lights:    make(map[string]*Light),
			sensors:   make(map[string]*Sensor),
			regions:   make(map[string]*model.Region),
			keyframes: make(map[string]*model.Keyframe),
		},
		reg: reg,
	}

	if ws.Scene != nil {
		c.g.Scene = *ws.Scene
	} else {
		// A workspace without a scene block gets the same defaults the
		// model applies to an empty one.
		c.g.Scene = model.Scene{
			Option:    model.Options{Timestep: 0.002, Integrator: "implicitfast", Iterations: 100, Tolerance: 1e-8},
			Statistic: model.Statistic{Extent: 1},
		}
	}

	classes, diags := flattenDefaults(ws.Defaults)
	c.diags = append(c.diags, diags...)
	if c.diags.HasErrors() {
		return nil, c.diags
	}
	c.classes = classes
	logger.Debug("Compile: default classes flattened.", "classes", len(classes))

	bodies, sensors, keyframes, expandDiags := expandCounts(ws.Bodies, ws.Sensors, ws.Keyframes)
	c.diags = append(c.diags, expandDiags...)
	if c.diags.HasErrors() {
		return nil, c.diags
	}
	logger.Debug("Compile: count expansion complete.",
		"bodies", len(bodies), "sensors", len(sensors))

	c.indexAssets(ws)
	c.indexAuxiliary(ws.Regions, keyframes)
	c.buildTree(bodies)
	if c.diags.HasErrors() {
		return nil, c.diags
	}
	logger.Debug("Compile: kinematic tree built.", "bodies", c.g.NumBodies(), "geoms", c.g.NumGeoms())

	c.resolveTargets()
	c.resolveSensors(sensors)
	if c.diags.HasErrors() {
		return nil, c.diags
	}
	logger.Debug("Compile: references resolved.", "sensors", len(c.g.Sensors))

	c.derive()
	c.validate()
	if c.diags.HasErrors() {
		return nil, c.diags
	}
	logger.Debug("Compile: validation passed.",
		"nqpos", c.g.NqPos, "nqvel", c.g.NqVel, "total_mass", c.g.TotalMass)

	c.fingerprint()
	logger.Debug("Compile: scene graph construction successful.", "digest", c.g.digest)
	return c.g, nil
}
