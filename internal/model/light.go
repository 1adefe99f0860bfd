// SPDX-License-Identifier: MIT
//
// This file defines the Light, an illumination source attached to the world
// or to a body. Like cameras, lights affect only rendering.
package model

import (
	"fmt"

	"github.com/aolshev/rigscene/internal/spatial"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// Light is the format-agnostic representation of a `light` block.
type Light struct {
	Name        string
	Mode        TrackMode
	Directional bool
	CastShadow  bool
	Pos         spatial.Vec3
	Dir         spatial.Vec3
	Diffuse     []float64
	Ambient     []float64
	Specular    []float64
	Target      string

	DeclRange hcl.Range
}

// hclLight is the raw decode target for a light block body.
type hclLight struct {
	Mode        string         `hcl:"mode,optional"`
	Directional bool           `hcl:"directional,optional"`
	CastShadow  *bool          `hcl:"castshadow,optional"`
	Pos         hcl.Expression `hcl:"pos,optional"`
	Dir         hcl.Expression `hcl:"dir,optional"`
	Diffuse     hcl.Expression `hcl:"diffuse,optional"`
	Ambient     hcl.Expression `hcl:"ambient,optional"`
	Specular    hcl.Expression `hcl:"specular,optional"`
	Target      string         `hcl:"target,optional"`
}

// NewLightFromHCL creates a Light from a parsed HCL light block.
func NewLightFromHCL(block *hcl.Block) (*Light, hcl.Diagnostics) {
	var raw hclLight
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	light := &Light{
		Name:        block.Labels[0],
		Mode:        TrackFixed,
		Directional: raw.Directional,
		CastShadow:  true,
		Target:      raw.Target,
		Dir:         spatial.Vec3{Z: -1},
		DeclRange:   block.DefRange,
	}
	if raw.Mode != "" {
		light.Mode = TrackMode(raw.Mode)
	}
	if raw.CastShadow != nil {
		light.CastShadow = *raw.CastShadow
	}

	if !light.Mode.Valid() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported light mode",
			Detail:   fmt.Sprintf("Light mode %q is not one of: fixed, targetbody.", raw.Mode),
			Subject:  &block.DefRange,
		})
	}
	if light.Mode == TrackTargetBody && light.Target == "" {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing light target",
			Detail:   "A light with mode 'targetbody' requires the 'target' attribute.",
			Subject:  &block.DefRange,
		})
	}

	pos, posDiags := exprVec3(raw.Pos, "pos")
	diags = append(diags, posDiags...)
	light.Pos = vec3OrZero(pos)

	dir, dirDiags := exprVec3(raw.Dir, "dir")
	diags = append(diags, dirDiags...)
	if dir != nil {
		light.Dir = dir.Normalized()
	}

	for _, channel := range []struct {
		expr hcl.Expression
		what string
		dst  *[]float64
	}{
		{raw.Diffuse, "diffuse", &light.Diffuse},
		{raw.Ambient, "ambient", &light.Ambient},
		{raw.Specular, "specular", &light.Specular},
	} {
		elems, chanDiags := exprFloats(channel.expr, 3, channel.what)
		diags = append(diags, chanDiags...)
		*channel.dst = elems
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return light, diags
}
