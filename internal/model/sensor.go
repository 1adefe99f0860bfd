// SPDX-License-Identifier: MIT
//
// This file defines the Sensor, a named read-out bound to a body or geom.
//
// Why keep the object reference as a plain string?
//
// A sensor declaration has two labels: the kind (framepos, framequat, ...)
// and the sensor's own name. The binding to its observed object is a name
// reference that may point at a body declared in another file, or at a geom
// produced later by count expansion. Resolution therefore belongs to the
// compiler, which sees the whole workspace; the model only records what was
// written and where.
package model

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// ObjType enumerates the object namespaces a sensor may bind to.
type ObjType string

const (
	ObjBody ObjType = "body"
	ObjGeom ObjType = "geom"
)

// Valid reports whether t names a supported object namespace.
func (t ObjType) Valid() bool {
	return t == ObjBody || t == ObjGeom
}

// Sensor is the format-agnostic representation of a `sensor` block.
type Sensor struct {
	Kind    string
	Name    string
	ObjType ObjType
	ObjName string
	Cutoff  float64

	FSInformation *FSInfo
	DeclRange     hcl.Range
}

// hclSensor is the raw decode target for a sensor block body.
type hclSensor struct {
	ObjType string  `hcl:"objtype"`
	ObjName string  `hcl:"objname"`
	Cutoff  float64 `hcl:"cutoff,optional"`
}

// NewSensorFromHCL creates a Sensor from a parsed HCL sensor block. The two
// labels are the sensor kind and the sensor name.
func NewSensorFromHCL(block *hcl.Block, filePath string) (*Sensor, hcl.Diagnostics) {
	var raw hclSensor
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	sensor := &Sensor{
		Kind:          block.Labels[0],
		Name:          block.Labels[1],
		ObjType:       ObjType(raw.ObjType),
		ObjName:       raw.ObjName,
		Cutoff:        raw.Cutoff,
		FSInformation: NewFSInfo(filePath),
		DeclRange:     block.DefRange,
	}

	if !sensor.ObjType.Valid() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported sensor objtype",
			Detail:   "The 'objtype' attribute must be 'body' or 'geom'.",
			Subject:  &block.DefRange,
		})
	}
	if sensor.Cutoff < 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid sensor cutoff",
			Detail:   "The 'cutoff' attribute must not be negative.",
			Subject:  &block.DefRange,
		})
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return sensor, diags
}
