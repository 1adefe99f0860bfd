// SPDX-License-Identifier: MIT
//
// This file defines the Camera, a viewpoint attached to the world or to a
// body. Cameras affect only rendering; they carry no physical state.
package model

import (
	"fmt"

	"github.com/aolshev/rigscene/internal/spatial"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// TrackMode selects how a camera or light is aimed.
type TrackMode string

const (
	// TrackFixed keeps the declared pose.
	TrackFixed TrackMode = "fixed"
	// TrackTargetBody keeps the viewpoint aimed at a named body.
	TrackTargetBody TrackMode = "targetbody"
)

// Valid reports whether m names a supported tracking mode.
func (m TrackMode) Valid() bool {
	return m == TrackFixed || m == TrackTargetBody
}

// Camera is the format-agnostic representation of a `camera` block. Target is
// a by-name body reference resolved by the compiler.
type Camera struct {
	Name   string
	Mode   TrackMode
	Pos    spatial.Vec3
	Quat   spatial.Quat
	Fovy   float64
	Target string

	DeclRange hcl.Range
}

// hclCamera is the raw decode target for a camera block body.
type hclCamera struct {
	Mode   string         `hcl:"mode,optional"`
	Pos    hcl.Expression `hcl:"pos,optional"`
	Quat   hcl.Expression `hcl:"quat,optional"`
	Euler  hcl.Expression `hcl:"euler,optional"`
	Fovy   *float64       `hcl:"fovy,optional"`
	Target string         `hcl:"target,optional"`
}

// NewCameraFromHCL creates a Camera from a parsed HCL camera block.
func NewCameraFromHCL(block *hcl.Block) (*Camera, hcl.Diagnostics) {
	var raw hclCamera
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	camera := &Camera{
		Name:      block.Labels[0],
		Mode:      TrackFixed,
		Fovy:      45,
		Target:    raw.Target,
		DeclRange: block.DefRange,
	}
	if raw.Mode != "" {
		camera.Mode = TrackMode(raw.Mode)
	}
	if raw.Fovy != nil {
		camera.Fovy = *raw.Fovy
	}

	if !camera.Mode.Valid() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported camera mode",
			Detail:   fmt.Sprintf("Camera mode %q is not one of: fixed, targetbody.", raw.Mode),
			Subject:  &block.DefRange,
		})
	}
	if camera.Mode == TrackTargetBody && camera.Target == "" {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing camera target",
			Detail:   "A camera with mode 'targetbody' requires the 'target' attribute.",
			Subject:  &block.DefRange,
		})
	}
	if camera.Fovy <= 0 || camera.Fovy >= 180 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid camera fovy",
			Detail:   "The vertical field of view must lie strictly between 0 and 180 degrees.",
			Subject:  &block.DefRange,
		})
	}

	pos, posDiags := exprVec3(raw.Pos, "pos")
	diags = append(diags, posDiags...)
	camera.Pos = vec3OrZero(pos)

	quat, quatDiags := exprOrientation(raw.Quat, raw.Euler, block.DefRange)
	diags = append(diags, quatDiags...)
	camera.Quat = quat

	if diags.HasErrors() {
		return nil, diags
	}
	return camera, diags
}
