// SPDX-License-Identifier: MIT
//
// This file defines the visual asset declarations: textures and materials.
// Assets are purely cosmetic; they have no physical effect. Materials
// reference textures by name, and geoms reference materials by name. Both
// references are resolved by the compiler.
package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// Texture is the format-agnostic representation of a `texture` block. A
// texture is either procedural (builtin) or loaded from a file by the
// consuming renderer.
type Texture struct {
	Name    string
	Type    string
	Builtin string
	File    string
	Rgb1    []float64
	Rgb2    []float64
	Width   int
	Height  int

	FSInformation *FSInfo
	DeclRange     hcl.Range
}

// hclTexture is the raw decode target for a texture block body.
type hclTexture struct {
	Type    string         `hcl:"type,optional"`
	Builtin string         `hcl:"builtin,optional"`
	File    string         `hcl:"file,optional"`
	Rgb1    hcl.Expression `hcl:"rgb1,optional"`
	Rgb2    hcl.Expression `hcl:"rgb2,optional"`
	Width   int            `hcl:"width,optional"`
	Height  int            `hcl:"height,optional"`
}

// NewTextureFromHCL creates a Texture from a parsed HCL texture block.
func NewTextureFromHCL(block *hcl.Block, filePath string) (*Texture, hcl.Diagnostics) {
	var raw hclTexture
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	texture := &Texture{
		Name:          block.Labels[0],
		Type:          raw.Type,
		Builtin:       raw.Builtin,
		File:          raw.File,
		Width:         raw.Width,
		Height:        raw.Height,
		FSInformation: NewFSInfo(filePath),
		DeclRange:     block.DefRange,
	}
	if texture.Type == "" {
		texture.Type = "2d"
	}

	if raw.Builtin != "" && raw.File != "" {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Conflicting texture sources",
			Detail:   "Only one of 'builtin' or 'file' may be set on the same texture.",
			Subject:  &block.DefRange,
		})
	}
	if raw.Builtin == "" && raw.File == "" {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing texture source",
			Detail:   fmt.Sprintf("Texture %q must set either 'builtin' or 'file'.", texture.Name),
			Subject:  &block.DefRange,
		})
	}

	rgb1, rgb1Diags := exprFloats(raw.Rgb1, 3, "rgb1")
	diags = append(diags, rgb1Diags...)
	texture.Rgb1 = rgb1

	rgb2, rgb2Diags := exprFloats(raw.Rgb2, 3, "rgb2")
	diags = append(diags, rgb2Diags...)
	texture.Rgb2 = rgb2

	if diags.HasErrors() {
		return nil, diags
	}
	return texture, diags
}

// Material is the format-agnostic representation of a `material` block.
type Material struct {
	Name        string
	Texture     string
	TexRepeat   []float64
	Rgba        []float64
	Reflectance float64
	Shininess   float64
	Specular    float64

	FSInformation *FSInfo
	DeclRange     hcl.Range
}

// hclMaterial is the raw decode target for a material block body.
type hclMaterial struct {
	Texture     string         `hcl:"texture,optional"`
	TexRepeat   hcl.Expression `hcl:"texrepeat,optional"`
	Rgba        hcl.Expression `hcl:"rgba,optional"`
	Reflectance float64        `hcl:"reflectance,optional"`
	Shininess   float64        `hcl:"shininess,optional"`
	Specular    float64        `hcl:"specular,optional"`
}

// NewMaterialFromHCL creates a Material from a parsed HCL material block.
func NewMaterialFromHCL(block *hcl.Block, filePath string) (*Material, hcl.Diagnostics) {
	var raw hclMaterial
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	material := &Material{
		Name:          block.Labels[0],
		Texture:       raw.Texture,
		Reflectance:   raw.Reflectance,
		Shininess:     raw.Shininess,
		Specular:      raw.Specular,
		FSInformation: NewFSInfo(filePath),
		DeclRange:     block.DefRange,
	}

	texRepeat, repDiags := exprFloats(raw.TexRepeat, 2, "texrepeat")
	diags = append(diags, repDiags...)
	material.TexRepeat = texRepeat

	rgba, rgbaDiags := exprFloats(raw.Rgba, 4, "rgba")
	diags = append(diags, rgbaDiags...)
	material.Rgba = rgba

	if diags.HasErrors() {
		return nil, diags
	}
	return material, diags
}
