// SPDX-License-Identifier: MIT
//
// This file defines the Scene block, the root metadata of a workspace:
// global solver options, rendering hints, and the statistics a viewer uses
// to frame the world. The body tree deliberately lives outside this block so
// that large scenes can be split across files.
package model

import (
	"github.com/aolshev/rigscene/internal/spatial"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// Options holds the global simulation options handed to a consuming engine.
type Options struct {
	Timestep   float64
	Integrator string
	Iterations int
	Tolerance  float64
}

// Visual holds global rendering hints. Cosmetic only.
type Visual struct {
	Azimuth   float64
	Elevation float64
	OffWidth  int
	OffHeight int
	Haze      []float64
}

// Statistic holds the viewer framing statistics: the point the default
// camera orbits and the characteristic length of the scene.
type Statistic struct {
	Center spatial.Vec3
	Extent float64
}

// Scene is the format-agnostic representation of the `scene` block.
type Scene struct {
	Name      string
	Option    Options
	Visual    Visual
	Statistic Statistic

	FSInformation *FSInfo
	DeclRange     hcl.Range
}

type hclOptionBlock struct {
	Timestep   *float64 `hcl:"timestep,optional"`
	Integrator string   `hcl:"integrator,optional"`
	Iterations *int     `hcl:"iterations,optional"`
	Tolerance  *float64 `hcl:"tolerance,optional"`
}

type hclVisualBlock struct {
	Azimuth   float64        `hcl:"azimuth,optional"`
	Elevation float64        `hcl:"elevation,optional"`
	OffWidth  int            `hcl:"offwidth,optional"`
	OffHeight int            `hcl:"offheight,optional"`
	Haze      hcl.Expression `hcl:"haze,optional"`
}

type hclStatisticBlock struct {
	Center hcl.Expression `hcl:"center,optional"`
	Extent float64        `hcl:"extent,optional"`
}

type hclScene struct {
	Option    *hclOptionBlock    `hcl:"option,block"`
	Visual    *hclVisualBlock    `hcl:"visual,block"`
	Statistic *hclStatisticBlock `hcl:"statistic,block"`
}

// NewSceneFromHCL creates a Scene from a parsed HCL scene block. Missing
// option attributes fall back to engine-conventional defaults.
func NewSceneFromHCL(block *hcl.Block, filePath string) (*Scene, hcl.Diagnostics) {
	var raw hclScene
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	scene := &Scene{
		Name: block.Labels[0],
		Option: Options{
			Timestep:   0.002,
			Integrator: "implicitfast",
			Iterations: 100,
			Tolerance:  1e-8,
		},
		Statistic:     Statistic{Extent: 1},
		FSInformation: NewFSInfo(filePath),
		DeclRange:     block.DefRange,
	}

	if raw.Option != nil {
		if raw.Option.Timestep != nil {
			scene.Option.Timestep = *raw.Option.Timestep
		}
		if raw.Option.Integrator != "" {
			scene.Option.Integrator = raw.Option.Integrator
		}
		if raw.Option.Iterations != nil {
			scene.Option.Iterations = *raw.Option.Iterations
		}
		if raw.Option.Tolerance != nil {
			scene.Option.Tolerance = *raw.Option.Tolerance
		}
	}

	if raw.Visual != nil {
		scene.Visual = Visual{
			Azimuth:   raw.Visual.Azimuth,
			Elevation: raw.Visual.Elevation,
			OffWidth:  raw.Visual.OffWidth,
			OffHeight: raw.Visual.OffHeight,
		}
		haze, hazeDiags := exprFloats(raw.Visual.Haze, 4, "haze")
		diags = append(diags, hazeDiags...)
		scene.Visual.Haze = haze
	}

	if raw.Statistic != nil {
		center, centerDiags := exprVec3(raw.Statistic.Center, "center")
		diags = append(diags, centerDiags...)
		scene.Statistic.Center = vec3OrZero(center)
		if raw.Statistic.Extent != 0 {
			scene.Statistic.Extent = raw.Statistic.Extent
		}
	}

	if scene.Option.Timestep <= 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid option timestep",
			Detail:   "The 'timestep' attribute must be positive.",
			Subject:  &block.DefRange,
		})
	}
	if scene.Option.Iterations <= 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid option iterations",
			Detail:   "The solver 'iterations' attribute must be positive.",
			Subject:  &block.DefRange,
		})
	}
	if scene.Option.Tolerance < 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid option tolerance",
			Detail:   "The solver 'tolerance' attribute must not be negative.",
			Subject:  &block.DefRange,
		})
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return scene, diags
}
