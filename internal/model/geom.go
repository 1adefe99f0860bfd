// SPDX-License-Identifier: MIT
//
// This file defines the Geom, a named shape attached to a body. A geom
// carries size, mass, color, and the contype/conaffinity bitmasks that
// control whether it participates in the contact solver of a consuming
// engine.
package model

import (
	"fmt"

	"github.com/aolshev/rigscene/internal/spatial"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// GeomType enumerates the supported geometry shapes.
type GeomType string

const (
	GeomBox      GeomType = "box"
	GeomSphere   GeomType = "sphere"
	GeomCylinder GeomType = "cylinder"
	GeomPlane    GeomType = "plane"
)

// Valid reports whether t names a supported shape.
func (t GeomType) Valid() bool {
	switch t {
	case GeomBox, GeomSphere, GeomCylinder, GeomPlane:
		return true
	}
	return false
}

// SizeLen returns the required element count of the size attribute for the
// shape: box and plane use half extents, sphere a radius, cylinder radius
// plus half height.
func (t GeomType) SizeLen() int {
	switch t {
	case GeomSphere:
		return 1
	case GeomCylinder:
		return 2
	default:
		return 3
	}
}

// Geom is the format-agnostic representation of a `geom` block. Defaultable
// fields stay as pointers until the compiler applies class defaults.
type Geom struct {
	Name  string
	Type  GeomType
	Class string
	Size  []float64
	Pos   spatial.Vec3
	Quat  spatial.Quat

	Mass        *float64
	Density     *float64
	Rgba        []float64
	Material    string
	Contype     *int
	Conaffinity *int
	Friction    []float64

	DeclRange hcl.Range
}

// hclGeom is the raw decode target for a geom block body.
type hclGeom struct {
	Type        string         `hcl:"type"`
	Class       string         `hcl:"class,optional"`
	Size        hcl.Expression `hcl:"size,optional"`
	Pos         hcl.Expression `hcl:"pos,optional"`
	Quat        hcl.Expression `hcl:"quat,optional"`
	Euler       hcl.Expression `hcl:"euler,optional"`
	Mass        *float64       `hcl:"mass,optional"`
	Density     *float64       `hcl:"density,optional"`
	Rgba        hcl.Expression `hcl:"rgba,optional"`
	Material    string         `hcl:"material,optional"`
	Contype     *int           `hcl:"contype,optional"`
	Conaffinity *int           `hcl:"conaffinity,optional"`
	Friction    hcl.Expression `hcl:"friction,optional"`
}

// NewGeomFromHCL creates a Geom from a parsed HCL geom block. The single
// label is the geom's name.
func NewGeomFromHCL(block *hcl.Block) (*Geom, hcl.Diagnostics) {
	var raw hclGeom
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	geom := &Geom{
		Name:        block.Labels[0],
		Type:        GeomType(raw.Type),
		Class:       raw.Class,
		Mass:        raw.Mass,
		Density:     raw.Density,
		Material:    raw.Material,
		Contype:     raw.Contype,
		Conaffinity: raw.Conaffinity,
		DeclRange:   block.DefRange,
	}

	if !geom.Type.Valid() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported geom type",
			Detail:   fmt.Sprintf("Geom type %q is not one of: box, sphere, cylinder, plane.", raw.Type),
			Subject:  &block.DefRange,
		})
		return nil, diags
	}

	size, sizeDiags := exprFloats(raw.Size, geom.Type.SizeLen(), "size")
	diags = append(diags, sizeDiags...)
	geom.Size = size

	pos, posDiags := exprVec3(raw.Pos, "pos")
	diags = append(diags, posDiags...)
	geom.Pos = vec3OrZero(pos)

	quat, quatDiags := exprOrientation(raw.Quat, raw.Euler, block.DefRange)
	diags = append(diags, quatDiags...)
	geom.Quat = quat

	rgba, rgbaDiags := exprFloats(raw.Rgba, 4, "rgba")
	diags = append(diags, rgbaDiags...)
	geom.Rgba = rgba

	friction, fricDiags := exprFloats(raw.Friction, 3, "friction")
	diags = append(diags, fricDiags...)
	geom.Friction = friction

	if raw.Mass != nil && raw.Density != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Conflicting inertial attributes",
			Detail:   "Only one of 'mass' or 'density' may be set on the same geom.",
			Subject:  &block.DefRange,
		})
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return geom, diags
}
