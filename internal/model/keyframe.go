// SPDX-License-Identifier: MIT
//
// This file defines the Keyframe, a named reference configuration such as a
// robot's home pose. The qpos vector spans the configuration coordinates of
// every joint in declaration order; the compiler checks its width against
// the scene's total qpos size.
//
// A keyframe may instead bind to a counted prototype body via the optional
// `body` attribute. Its qpos then describes one instance, and count
// expansion tiles it once per instance, so the keyframe stays valid no
// matter what count the scene or a variant picks.
package model

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// Keyframe is the format-agnostic representation of a `keyframe` block.
type Keyframe struct {
	Name string
	Qpos []float64

	// Body names the top-level prototype this keyframe's qpos describes one
	// instance of. Empty means the qpos spans the whole scene.
	Body string

	FSInformation *FSInfo
	DeclRange     hcl.Range
}

// hclKeyframe is the raw decode target for a keyframe block body.
type hclKeyframe struct {
	Qpos hcl.Expression `hcl:"qpos"`
	Body string         `hcl:"body,optional"`
}

// NewKeyframeFromHCL creates a Keyframe from a parsed HCL keyframe block.
func NewKeyframeFromHCL(block *hcl.Block, filePath string) (*Keyframe, hcl.Diagnostics) {
	var raw hclKeyframe
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	qpos, qposDiags := exprFloats(raw.Qpos, 0, "qpos")
	diags = append(diags, qposDiags...)
	if diags.HasErrors() {
		return nil, diags
	}

	return &Keyframe{
		Name:          block.Labels[0],
		Qpos:          qpos,
		Body:          raw.Body,
		FSInformation: NewFSInfo(filePath),
		DeclRange:     block.DefRange,
	}, diags
}
