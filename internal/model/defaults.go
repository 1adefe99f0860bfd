// SPDX-License-Identifier: MIT
//
// This file defines default classes: named bundles of geom and joint
// attribute defaults that declarations opt into via their `class` attribute.
//
// Why model defaults as a separate declaration?
//
// Scenes with families of similar objects (a stack of identical blocks)
// repeat the same collision masks, friction, and color on every geom. A
// default class states those once. Classes may inherit from one another; the
// compiler flattens the chain and rejects inheritance cycles.
package model

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// GeomDefaults holds the defaultable geom attributes of a class. Nil fields
// are "not set at this level".
type GeomDefaults struct {
	Contype     *int
	Conaffinity *int
	Mass        *float64
	Density     *float64
	Rgba        []float64
	Friction    []float64
	Material    string
}

// JointDefaults holds the defaultable joint attributes of a class.
type JointDefaults struct {
	Damping   *float64
	Stiffness *float64
}

// DefaultClass is the format-agnostic representation of a `default` block.
type DefaultClass struct {
	Name    string
	Inherit string
	Geom    *GeomDefaults
	Joint   *JointDefaults

	FSInformation *FSInfo
	DeclRange     hcl.Range
}

type hclGeomDefaults struct {
	Contype     *int           `hcl:"contype,optional"`
	Conaffinity *int           `hcl:"conaffinity,optional"`
	Mass        *float64       `hcl:"mass,optional"`
	Density     *float64       `hcl:"density,optional"`
	Rgba        hcl.Expression `hcl:"rgba,optional"`
	Friction    hcl.Expression `hcl:"friction,optional"`
	Material    string         `hcl:"material,optional"`
}

type hclJointDefaults struct {
	Damping   *float64 `hcl:"damping,optional"`
	Stiffness *float64 `hcl:"stiffness,optional"`
}

type hclDefaultClass struct {
	Inherit string            `hcl:"inherit,optional"`
	Geom    *hclGeomDefaults  `hcl:"geom,block"`
	Joint   *hclJointDefaults `hcl:"joint,block"`
}

// NewDefaultClassFromHCL creates a DefaultClass from a parsed HCL default
// block.
func NewDefaultClassFromHCL(block *hcl.Block, filePath string) (*DefaultClass, hcl.Diagnostics) {
	var raw hclDefaultClass
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	class := &DefaultClass{
		Name:          block.Labels[0],
		Inherit:       raw.Inherit,
		FSInformation: NewFSInfo(filePath),
		DeclRange:     block.DefRange,
	}

	if raw.Geom != nil {
		geom := &GeomDefaults{
			Contype:     raw.Geom.Contype,
			Conaffinity: raw.Geom.Conaffinity,
			Mass:        raw.Geom.Mass,
			Density:     raw.Geom.Density,
			Material:    raw.Geom.Material,
		}

		rgba, rgbaDiags := exprFloats(raw.Geom.Rgba, 4, "rgba")
		diags = append(diags, rgbaDiags...)
		geom.Rgba = rgba

		friction, fricDiags := exprFloats(raw.Geom.Friction, 3, "friction")
		diags = append(diags, fricDiags...)
		geom.Friction = friction

		class.Geom = geom
	}

	if raw.Joint != nil {
		class.Joint = &JointDefaults{
			Damping:   raw.Joint.Damping,
			Stiffness: raw.Joint.Stiffness,
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return class, diags
}
