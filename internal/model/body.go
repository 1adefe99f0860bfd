// SPDX-License-Identifier: MIT
//
// This file defines the Body, a named node of the kinematic tree rooted at
// the implicit world body.
//
// Why decode the body block by hand?
//
// Bodies nest recursively and own heterogeneous child blocks (joints, geoms,
// cameras, lights, nested bodies). Decoding through an explicit hcl.BodySchema
// keeps the source range of every child block available, which the compiler
// needs to report structural violations (a mocap body carrying a joint, a
// free-jointed body with no massive geom) at the exact declaration site.
package model

import (
	"github.com/aolshev/rigscene/internal/spatial"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// Body is the format-agnostic representation of a `body` block.
type Body struct {
	Name   string
	Pos    spatial.Vec3
	Quat   spatial.Quat
	Mocap  bool
	Count  *int
	Region string

	Joints   []*Joint
	Geoms    []*Geom
	Cameras  []*Camera
	Lights   []*Light
	Children []*Body

	FSInformation *FSInfo
	DeclRange     hcl.Range
}

// bodyBodySchema is the schema for the content of a `body` block.
var bodyBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "pos"},
		{Name: "quat"},
		{Name: "euler"},
		{Name: "mocap"},
		{Name: "count"},
		{Name: "region"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "joint"},
		{Type: "geom", LabelNames: []string{"name"}},
		{Type: "camera", LabelNames: []string{"name"}},
		{Type: "light", LabelNames: []string{"name"}},
		{Type: "body", LabelNames: []string{"name"}},
	},
}

// NewBodyFromHCL creates a Body, and recursively its subtree, from a parsed
// HCL body block.
func NewBodyFromHCL(block *hcl.Block, filePath string) (*Body, hcl.Diagnostics) {
	body := &Body{
		Name:          block.Labels[0],
		Quat:          spatial.IdentityQuat(),
		FSInformation: NewFSInfo(filePath),
		DeclRange:     block.DefRange,
	}

	content, diags := block.Body.Content(bodyBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	var posExpr, quatExpr, eulerExpr hcl.Expression
	if attr, ok := content.Attributes["pos"]; ok {
		posExpr = attr.Expr
	}
	if attr, ok := content.Attributes["quat"]; ok {
		quatExpr = attr.Expr
	}
	if attr, ok := content.Attributes["euler"]; ok {
		eulerExpr = attr.Expr
	}

	pos, posDiags := exprVec3(posExpr, "pos")
	diags = append(diags, posDiags...)
	body.Pos = vec3OrZero(pos)

	quat, quatDiags := exprOrientation(quatExpr, eulerExpr, block.DefRange)
	diags = append(diags, quatDiags...)
	body.Quat = quat

	if attr, ok := content.Attributes["mocap"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &body.Mocap)...)
	}
	if attr, ok := content.Attributes["count"]; ok {
		var count int
		countDiags := gohcl.DecodeExpression(attr.Expr, nil, &count)
		diags = append(diags, countDiags...)
		if !countDiags.HasErrors() {
			if count < 0 {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid count value",
					Detail:   "The 'count' attribute must not be negative.",
					Subject:  attr.Expr.Range().Ptr(),
				})
			} else {
				body.Count = &count
			}
		}
	}
	if attr, ok := content.Attributes["region"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &body.Region)...)
	}

	for _, child := range content.Blocks {
		switch child.Type {
		case "joint":
			joint, jointDiags := NewJointFromHCL(child)
			diags = append(diags, jointDiags...)
			if joint != nil {
				body.Joints = append(body.Joints, joint)
			}
		case "geom":
			geom, geomDiags := NewGeomFromHCL(child)
			diags = append(diags, geomDiags...)
			if geom != nil {
				body.Geoms = append(body.Geoms, geom)
			}
		case "camera":
			camera, camDiags := NewCameraFromHCL(child)
			diags = append(diags, camDiags...)
			if camera != nil {
				body.Cameras = append(body.Cameras, camera)
			}
		case "light":
			light, lightDiags := NewLightFromHCL(child)
			diags = append(diags, lightDiags...)
			if light != nil {
				body.Lights = append(body.Lights, light)
			}
		case "body":
			nested, nestedDiags := NewBodyFromHCL(child, filePath)
			diags = append(diags, nestedDiags...)
			if nested != nil {
				body.Children = append(body.Children, nested)
			}
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return body, diags
}

// Walk visits the body and every descendant in depth-first order. The walk
// stops when fn returns false.
func (b *Body) Walk(fn func(*Body) bool) bool {
	if !fn(b) {
		return false
	}
	for _, child := range b.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// HasJoints reports whether the body or any descendant declares a joint.
func (b *Body) HasJoints() bool {
	found := false
	b.Walk(func(node *Body) bool {
		if len(node.Joints) > 0 {
			found = true
			return false
		}
		return true
	})
	return found
}
