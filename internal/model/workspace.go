// SPDX-License-Identifier: MIT
//
// This file defines the Workspace, the root container for everything loaded
// from a user's .hcl scene files.
//
// Why have a Workspace?
//
// A scene rarely lives in one file: assets, the body tree, and the sensor
// list are commonly split up. The Workspace discovers all scene files under
// a path and consolidates their declarations into a single view, so the
// compiler can resolve references that span files (a sensor in sensors.hcl
// observing a geom declared in bodies.hcl).
package model

import (
	"context"
	"fmt"

	"github.com/aolshev/rigscene/internal/ctxlog"
	"github.com/aolshev/rigscene/internal/fsutil"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"golang.org/x/sync/errgroup"
)

// parseConcurrency bounds the file-parse fan-out.
const parseConcurrency = 8

// Workspace is the aggregated scene description across all loaded files.
type Workspace struct {
	Scene     *Scene
	Textures  []*Texture
	Materials []*Material
	Defaults  []*DefaultClass
	Bodies    []*Body
	Sensors   []*Sensor
	Regions   []*Region
	Keyframes []*Keyframe
}

// NewWorkspace creates and returns an initialized, empty Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// fileSchema is the schema for the top level of a scene file.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "scene", LabelNames: []string{"name"}},
		{Type: "texture", LabelNames: []string{"name"}},
		{Type: "material", LabelNames: []string{"name"}},
		{Type: "default", LabelNames: []string{"class"}},
		{Type: "body", LabelNames: []string{"name"}},
		{Type: "sensor", LabelNames: []string{"kind", "name"}},
		{Type: "region", LabelNames: []string{"name"}},
		{Type: "keyframe", LabelNames: []string{"name"}},
	},
}

// newWorkspaceFromFile parses a single HCL scene file into a partial
// Workspace holding only that file's declarations.
func newWorkspaceFromFile(filePath string) (*Workspace, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", filePath, diags)
	}

	content, diags := hclFile.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scene file %s: %w", filePath, diags)
	}

	ws := NewWorkspace()
	var allDiags hcl.Diagnostics

	for _, block := range content.Blocks {
		switch block.Type {
		case "scene":
			scene, sceneDiags := NewSceneFromHCL(block, filePath)
			allDiags = append(allDiags, sceneDiags...)
			if scene != nil {
				if ws.Scene != nil {
					allDiags = append(allDiags, &hcl.Diagnostic{
						Severity: hcl.DiagError,
						Summary:  "Duplicate scene block",
						Detail:   "Only one 'scene' block is allowed per workspace.",
						Subject:  &block.DefRange,
					})
					continue
				}
				ws.Scene = scene
			}
		case "texture":
			texture, texDiags := NewTextureFromHCL(block, filePath)
			allDiags = append(allDiags, texDiags...)
			if texture != nil {
				ws.Textures = append(ws.Textures, texture)
			}
		case "material":
			material, matDiags := NewMaterialFromHCL(block, filePath)
			allDiags = append(allDiags, matDiags...)
			if material != nil {
				ws.Materials = append(ws.Materials, material)
			}
		case "default":
			class, classDiags := NewDefaultClassFromHCL(block, filePath)
			allDiags = append(allDiags, classDiags...)
			if class != nil {
				ws.Defaults = append(ws.Defaults, class)
			}
		case "body":
			body, bodyDiags := NewBodyFromHCL(block, filePath)
			allDiags = append(allDiags, bodyDiags...)
			if body != nil {
				ws.Bodies = append(ws.Bodies, body)
			}
		case "sensor":
			sensor, sensorDiags := NewSensorFromHCL(block, filePath)
			allDiags = append(allDiags, sensorDiags...)
			if sensor != nil {
				ws.Sensors = append(ws.Sensors, sensor)
			}
		case "region":
			region, regionDiags := NewRegionFromHCL(block, filePath)
			allDiags = append(allDiags, regionDiags...)
			if region != nil {
				ws.Regions = append(ws.Regions, region)
			}
		case "keyframe":
			keyframe, kfDiags := NewKeyframeFromHCL(block, filePath)
			allDiags = append(allDiags, kfDiags...)
			if keyframe != nil {
				ws.Keyframes = append(ws.Keyframes, keyframe)
			}
		}
	}

	if allDiags.HasErrors() {
		return nil, fmt.Errorf("error parsing scene file %s: %w", filePath, allDiags)
	}
	return ws, nil
}

// merge folds the declarations of other into ws. Declaration order is
// preserved per file; files are merged in lexical path order.
func (ws *Workspace) merge(other *Workspace) error {
	if other.Scene != nil {
		if ws.Scene != nil {
			return fmt.Errorf("duplicate scene block: %q in %s and %q in %s",
				ws.Scene.Name, ws.Scene.FSInformation.FilePath,
				other.Scene.Name, other.Scene.FSInformation.FilePath)
		}
		ws.Scene = other.Scene
	}
	ws.Textures = append(ws.Textures, other.Textures...)
	ws.Materials = append(ws.Materials, other.Materials...)
	ws.Defaults = append(ws.Defaults, other.Defaults...)
	ws.Bodies = append(ws.Bodies, other.Bodies...)
	ws.Sensors = append(ws.Sensors, other.Sensors...)
	ws.Regions = append(ws.Regions, other.Regions...)
	ws.Keyframes = append(ws.Keyframes, other.Keyframes...)
	return nil
}

// LoadWorkspaceRecursively finds and parses all HCL files under a path into
// a Workspace model. Files are parsed concurrently; the merged result is
// deterministic regardless of completion order.
func LoadWorkspaceRecursively(ctx context.Context, scenePath string) (*Workspace, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading workspace from path", "path", scenePath)

	files, err := fsutil.FindFilesByExtension(scenePath, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find scene files in %s: %w", scenePath, err)
	}

	ws := NewWorkspace()
	if len(files) == 0 {
		logger.Warn("No .hcl scene files found in path, returning empty workspace", "path", scenePath)
		return ws, nil
	}

	partials := make([]*Workspace, len(files))
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(parseConcurrency)
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			partial, err := newWorkspaceFromFile(file)
			if err != nil {
				return err
			}
			partials[i] = partial
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, partial := range partials {
		if err := ws.merge(partial); err != nil {
			return nil, err
		}
	}

	logger.Debug("Workspace loaded",
		"files", len(files),
		"bodies", len(ws.Bodies),
		"sensors", len(ws.Sensors))
	return ws, nil
}
