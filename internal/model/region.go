// SPDX-License-Identifier: MIT
//
// This file defines the Region, a named axis-aligned box used for sampling
// and workspace bounds. Bodies opt into a region via their `region`
// attribute; the compiler checks that the body's world position lies inside.
package model

import (
	"github.com/aolshev/rigscene/internal/spatial"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// Region is the format-agnostic representation of a `region` block.
type Region struct {
	Name   string
	Bounds spatial.Bounds

	FSInformation *FSInfo
	DeclRange     hcl.Range
}

// hclRegion is the raw decode target for a region block body.
type hclRegion struct {
	Min hcl.Expression `hcl:"min"`
	Max hcl.Expression `hcl:"max"`
}

// NewRegionFromHCL creates a Region from a parsed HCL region block.
func NewRegionFromHCL(block *hcl.Block, filePath string) (*Region, hcl.Diagnostics) {
	var raw hclRegion
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	region := &Region{
		Name:          block.Labels[0],
		FSInformation: NewFSInfo(filePath),
		DeclRange:     block.DefRange,
	}

	minVec, minDiags := exprVec3(raw.Min, "min")
	diags = append(diags, minDiags...)
	maxVec, maxDiags := exprVec3(raw.Max, "max")
	diags = append(diags, maxDiags...)
	if diags.HasErrors() {
		return nil, diags
	}

	region.Bounds = spatial.Bounds{Min: vec3OrZero(minVec), Max: vec3OrZero(maxVec)}
	if err := region.Bounds.Validate(); err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid region bounds",
			Detail:   err.Error(),
			Subject:  &block.DefRange,
		})
		return nil, diags
	}

	return region, diags
}
