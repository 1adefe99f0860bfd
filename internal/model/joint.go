// SPDX-License-Identifier: MIT
//
// This file defines the Joint, the degree-of-freedom declaration of a body.
//
// Why model qpos/qvel widths here?
//
// The configuration width of a joint is a property of its type, not of the
// consuming engine: a free joint contributes seven position coordinates
// (translation plus unit quaternion) but only six velocity coordinates. The
// compiler sums these widths to validate keyframes against the scene's total
// configuration size, so the mapping lives next to the type definition.
package model

import (
	"fmt"

	"github.com/aolshev/rigscene/internal/spatial"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// JointType enumerates the supported joint kinds.
type JointType string

const (
	// JointFree is an unconstrained 6-DOF joint allowing full translation
	// and rotation. Movable top-level bodies use it.
	JointFree JointType = "free"
	// JointHinge rotates about a single axis.
	JointHinge JointType = "hinge"
	// JointSlide translates along a single axis.
	JointSlide JointType = "slide"
	// JointBall rotates freely about a point.
	JointBall JointType = "ball"
)

// Valid reports whether t names a supported joint type.
func (t JointType) Valid() bool {
	switch t {
	case JointFree, JointHinge, JointSlide, JointBall:
		return true
	}
	return false
}

// QposWidth returns the number of position coordinates the joint contributes.
func (t JointType) QposWidth() int {
	switch t {
	case JointFree:
		return 7
	case JointBall:
		return 4
	default:
		return 1
	}
}

// QvelWidth returns the number of velocity coordinates the joint contributes.
func (t JointType) QvelWidth() int {
	switch t {
	case JointFree:
		return 6
	case JointBall:
		return 3
	default:
		return 1
	}
}

// Joint is the format-agnostic representation of a `joint` block. Defaultable
// fields stay as pointers until the compiler applies class defaults.
type Joint struct {
	Name      string
	Type      JointType
	Class     string
	Axis      spatial.Vec3
	Pos       spatial.Vec3
	Range     []float64
	Damping   *float64
	Stiffness *float64

	DeclRange hcl.Range
}

// hclJoint is the raw decode target for a joint block body.
type hclJoint struct {
	Type      string         `hcl:"type"`
	Name      string         `hcl:"name,optional"`
	Class     string         `hcl:"class,optional"`
	Axis      hcl.Expression `hcl:"axis,optional"`
	Pos       hcl.Expression `hcl:"pos,optional"`
	Range     hcl.Expression `hcl:"range,optional"`
	Damping   *float64       `hcl:"damping,optional"`
	Stiffness *float64       `hcl:"stiffness,optional"`
}

// NewJointFromHCL creates a Joint from a parsed HCL joint block.
func NewJointFromHCL(block *hcl.Block) (*Joint, hcl.Diagnostics) {
	var raw hclJoint
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	joint := &Joint{
		Name:      raw.Name,
		Type:      JointType(raw.Type),
		Class:     raw.Class,
		Axis:      spatial.Vec3{Z: 1},
		Damping:   raw.Damping,
		Stiffness: raw.Stiffness,
		DeclRange: block.DefRange,
	}

	if !joint.Type.Valid() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported joint type",
			Detail:   fmt.Sprintf("Joint type %q is not one of: free, hinge, slide, ball.", raw.Type),
			Subject:  &block.DefRange,
		})
		return nil, diags
	}

	axis, axisDiags := exprVec3(raw.Axis, "axis")
	diags = append(diags, axisDiags...)
	if axis != nil {
		joint.Axis = axis.Normalized()
	}

	pos, posDiags := exprVec3(raw.Pos, "pos")
	diags = append(diags, posDiags...)
	joint.Pos = vec3OrZero(pos)

	jointRange, rangeDiags := exprFloats(raw.Range, 2, "range")
	diags = append(diags, rangeDiags...)
	joint.Range = jointRange
	if len(jointRange) == 2 && jointRange[0] > jointRange[1] {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid joint range",
			Detail:   "The lower bound of 'range' must not exceed the upper bound.",
			Subject:  raw.Range.Range().Ptr(),
		})
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return joint, diags
}
