package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aolshev/rigscene/internal/model"
	"github.com/hashicorp/hcl/v2"
)

// expandCounts replaces every counted top-level body with its instances,
// named <name>1..<name>N, and clones the sensors observing the counted
// subtree once per instance. count = 0 drops the subtree together with its
// dependent sensors.
//
// Sensor cloning rewrites the observed name and substitutes it inside the
// sensor's own name, so a sensor "block_pos" on prototype "block" becomes
// "block1_pos".."blockN_pos".
//
// A keyframe bound to a prototype body carries the per-instance qpos; it is
// tiled once per instance here, so the same keyframe covers the scene at
// every count.
func expandCounts(bodies []*model.Body, sensors []*model.Sensor, keyframes []*model.Keyframe) ([]*model.Body, []*model.Sensor, []*model.Keyframe, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	// ownedNames maps every name declared inside a counted prototype to
	// that prototype's top-level body.
	ownedNames := make(map[string]*model.Body)
	topLevel := make(map[string]*model.Body, len(bodies))

	outBodies := make([]*model.Body, 0, len(bodies))
	for _, body := range bodies {
		topLevel[body.Name] = body
		for _, child := range body.Children {
			child.Walk(func(nested *model.Body) bool {
				if nested.Count != nil {
					diags = append(diags, &hcl.Diagnostic{
						Severity: hcl.DiagError,
						Summary:  "Invalid count placement",
						Detail:   "The 'count' attribute is only allowed on top-level bodies.",
						Subject:  &nested.DeclRange,
					})
				}
				return true
			})
		}

		if body.Count == nil {
			outBodies = append(outBodies, body)
			continue
		}

		for _, name := range subtreeNames(body) {
			ownedNames[name] = body
		}

		for i := 1; i <= *body.Count; i++ {
			outBodies = append(outBodies, cloneBody(body, strconv.Itoa(i)))
		}
	}
	if diags.HasErrors() {
		return nil, nil, nil, diags
	}

	outSensors := make([]*model.Sensor, 0, len(sensors))
	for _, sensor := range sensors {
		prototype, counted := ownedNames[sensor.ObjName]
		if !counted {
			outSensors = append(outSensors, sensor)
			continue
		}
		for i := 1; i <= *prototype.Count; i++ {
			outSensors = append(outSensors, cloneSensor(sensor, strconv.Itoa(i)))
		}
	}

	outKeyframes := make([]*model.Keyframe, 0, len(keyframes))
	for _, keyframe := range keyframes {
		if keyframe.Body == "" {
			outKeyframes = append(outKeyframes, keyframe)
			continue
		}
		prototype, ok := topLevel[keyframe.Body]
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid keyframe binding",
				Detail: fmt.Sprintf("Keyframe %q is bound to %q, which is not a top-level body.",
					keyframe.Name, keyframe.Body),
				Subject: &keyframe.DeclRange,
			})
			continue
		}
		count := 1
		if prototype.Count != nil {
			count = *prototype.Count
		}
		if count == 0 {
			continue
		}
		outKeyframes = append(outKeyframes, tileKeyframe(keyframe, count))
	}
	if diags.HasErrors() {
		return nil, nil, nil, diags
	}

	return outBodies, outSensors, outKeyframes, diags
}

// tileKeyframe repeats a prototype-bound keyframe's per-instance qpos once
// per instance. The result is an ordinary scene-wide keyframe.
func tileKeyframe(keyframe *model.Keyframe, count int) *model.Keyframe {
	clone := *keyframe
	clone.Body = ""
	clone.Qpos = make([]float64, 0, len(keyframe.Qpos)*count)
	for i := 0; i < count; i++ {
		clone.Qpos = append(clone.Qpos, keyframe.Qpos...)
	}
	return &clone
}

// subtreeNames collects every declared name inside the body's subtree:
// bodies, geoms, and named joints.
func subtreeNames(body *model.Body) []string {
	var names []string
	body.Walk(func(node *model.Body) bool {
		names = append(names, node.Name)
		for _, geom := range node.Geoms {
			names = append(names, geom.Name)
		}
		for _, joint := range node.Joints {
			if joint.Name != "" {
				names = append(names, joint.Name)
			}
		}
		return true
	})
	return names
}

// cloneBody deep-copies a body subtree, appending suffix to every declared
// name inside it. The clone drops the count attribute.
func cloneBody(body *model.Body, suffix string) *model.Body {
	clone := *body
	clone.Name = body.Name + suffix
	clone.Count = nil

	clone.Joints = make([]*model.Joint, len(body.Joints))
	for i, joint := range body.Joints {
		jointCopy := *joint
		if jointCopy.Name != "" {
			jointCopy.Name += suffix
		}
		clone.Joints[i] = &jointCopy
	}

	clone.Geoms = make([]*model.Geom, len(body.Geoms))
	for i, geom := range body.Geoms {
		geomCopy := *geom
		geomCopy.Name += suffix
		clone.Geoms[i] = &geomCopy
	}

	clone.Cameras = make([]*model.Camera, len(body.Cameras))
	for i, camera := range body.Cameras {
		cameraCopy := *camera
		cameraCopy.Name += suffix
		clone.Cameras[i] = &cameraCopy
	}

	clone.Lights = make([]*model.Light, len(body.Lights))
	for i, light := range body.Lights {
		lightCopy := *light
		lightCopy.Name += suffix
		clone.Lights[i] = &lightCopy
	}

	clone.Children = make([]*model.Body, len(body.Children))
	for i, child := range body.Children {
		clone.Children[i] = cloneBody(child, suffix)
	}

	return &clone
}

// cloneSensor copies a sensor for one instance of a counted prototype,
// rewriting the observed name and the sensor's own name.
func cloneSensor(sensor *model.Sensor, suffix string) *model.Sensor {
	clone := *sensor
	renamed := sensor.ObjName + suffix
	if strings.Contains(sensor.Name, sensor.ObjName) {
		clone.Name = strings.Replace(sensor.Name, sensor.ObjName, renamed, 1)
	} else {
		clone.Name = fmt.Sprintf("%s%s", sensor.Name, suffix)
	}
	clone.ObjName = renamed
	return &clone
}
