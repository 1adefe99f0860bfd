package graph

import (
	"fmt"

	"github.com/aolshev/rigscene/internal/model"
	"github.com/aolshev/rigscene/internal/registry"
	"github.com/aolshev/rigscene/internal/spatial"
	"github.com/hashicorp/hcl/v2"
)

// Engine-conventional fallbacks for geoms that neither declare a value nor
// inherit one from a default class.
var (
	defaultFriction = []float64{1, 0.005, 0.0001}
	defaultRgba     = []float64{0.5, 0.5, 0.5, 1}
)

const (
	defaultContype     = 1
	defaultConaffinity = 1
	defaultDensity     = 1000 // water, in kg/m^3

	// maxBitmask bounds contype/conaffinity to 32 usable mask bits.
	maxBitmask = 1<<32 - 1
)

// compiler carries the working state of a single Compile call.
type compiler struct {
	g       *Graph
	classes map[string]*resolvedClass
	reg     *registry.Registry
	diags   hcl.Diagnostics
}

func (c *compiler) errorf(subject hcl.Range, summary, detail string, args ...any) {
	c.diags = append(c.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(detail, args...),
		Subject:  &subject,
	})
}

// indexAssets registers textures and materials and resolves the
// material -> texture references.
func (c *compiler) indexAssets(ws *model.Workspace) {
	for _, texture := range ws.Textures {
		if _, exists := c.g.textures[texture.Name]; exists {
			c.errorf(texture.DeclRange, "Duplicate texture name",
				"Texture %q is already declared.", texture.Name)
			continue
		}
		c.g.textures[texture.Name] = texture
	}

	for _, material := range ws.Materials {
		if _, exists := c.g.materials[material.Name]; exists {
			c.errorf(material.DeclRange, "Duplicate material name",
				"Material %q is already declared.", material.Name)
			continue
		}
		if material.Texture != "" {
			if _, ok := c.g.textures[material.Texture]; !ok {
				c.errorf(material.DeclRange, "Unresolved texture reference",
					"Material %q references undeclared texture %q.", material.Name, material.Texture)
				continue
			}
		}
		c.g.materials[material.Name] = material
	}
}

// indexAuxiliary registers regions and the expanded keyframes.
func (c *compiler) indexAuxiliary(regions []*model.Region, keyframes []*model.Keyframe) {
	for _, region := range regions {
		if _, exists := c.g.regions[region.Name]; exists {
			c.errorf(region.DeclRange, "Duplicate region name",
				"Region %q is already declared.", region.Name)
			continue
		}
		c.g.regions[region.Name] = region
	}
	for _, keyframe := range keyframes {
		if _, exists := c.g.keyframes[keyframe.Name]; exists {
			c.errorf(keyframe.DeclRange, "Duplicate keyframe name",
				"Keyframe %q is already declared.", keyframe.Name)
			continue
		}
		c.g.keyframes[keyframe.Name] = keyframe
	}
}

// buildTree walks the expanded top-level bodies and constructs the compiled
// kinematic tree under the implicit world body.
func (c *compiler) buildTree(bodies []*model.Body) {
	world := &Body{
		Name:      WorldName,
		LocalPose: spatial.IdentityPose(),
		WorldPose: spatial.IdentityPose(),
	}
	c.g.World = world
	c.g.bodies[WorldName] = world

	for _, body := range bodies {
		c.addBody(world, body)
	}
}

func (c *compiler) addBody(parent *Body, src *model.Body) {
	if src.Name == WorldName {
		c.errorf(src.DeclRange, "Reserved body name",
			"The body name %q is reserved for the implicit root body.", WorldName)
		return
	}
	if _, exists := c.g.bodies[src.Name]; exists {
		c.errorf(src.DeclRange, "Duplicate body name",
			"Body %q is already declared.", src.Name)
		return
	}

	body := &Body{
		Name:      src.Name,
		Mocap:     src.Mocap,
		Region:    src.Region,
		Parent:    parent,
		LocalPose: spatial.Pose{Pos: src.Pos, Quat: src.Quat},
		src:       src,
	}
	body.WorldPose = parent.WorldPose.Compose(body.LocalPose)
	c.g.bodies[src.Name] = body
	parent.Children = append(parent.Children, body)

	for _, joint := range src.Joints {
		c.addJoint(body, joint)
	}
	for _, geom := range src.Geoms {
		c.addGeom(body, geom)
	}
	for _, camera := range src.Cameras {
		c.addCamera(body, camera)
	}
	for _, light := range src.Lights {
		c.addLight(body, light)
	}
	for _, child := range src.Children {
		c.addBody(body, child)
	}
}

// lookupClass resolves a class reference, returning an empty class for the
// unset reference so callers can read defaults unconditionally.
func (c *compiler) lookupClass(name string, subject hcl.Range) *resolvedClass {
	if name == "" {
		return &resolvedClass{}
	}
	class, ok := c.classes[name]
	if !ok {
		c.errorf(subject, "Unresolved class reference",
			"Class %q is not declared by any default block.", name)
		return &resolvedClass{}
	}
	return class
}

func (c *compiler) addJoint(body *Body, src *model.Joint) {
	class := c.lookupClass(src.Class, src.DeclRange)

	joint := &Joint{
		Name:  src.Name,
		Type:  src.Type,
		Axis:  src.Axis,
		Pos:   src.Pos,
		Range: src.Range,
		Body:  body,
	}
	if v := firstFloat(src.Damping, class.joint.Damping); v != nil {
		joint.Damping = *v
	}
	if v := firstFloat(src.Stiffness, class.joint.Stiffness); v != nil {
		joint.Stiffness = *v
	}

	if joint.Name != "" {
		if _, exists := c.g.joints[joint.Name]; exists {
			c.errorf(src.DeclRange, "Duplicate joint name",
				"Joint %q is already declared.", joint.Name)
			return
		}
		c.g.joints[joint.Name] = joint
	}
	body.Joints = append(body.Joints, joint)
}

func (c *compiler) addGeom(body *Body, src *model.Geom) {
	if _, exists := c.g.geoms[src.Name]; exists {
		c.errorf(src.DeclRange, "Duplicate geom name",
			"Geom %q is already declared.", src.Name)
		return
	}

	class := c.lookupClass(src.Class, src.DeclRange)

	geom := &Geom{
		Name:        src.Name,
		Type:        src.Type,
		Size:        src.Size,
		Contype:     defaultContype,
		Conaffinity: defaultConaffinity,
		Friction:    defaultFriction,
		Rgba:        defaultRgba,
		LocalPose:   spatial.Pose{Pos: src.Pos, Quat: src.Quat},
		Body:        body,
		src:         src,
	}
	geom.WorldPose = body.WorldPose.Compose(geom.LocalPose)

	if v := firstInt(src.Contype, class.geom.Contype); v != nil {
		geom.Contype = *v
	}
	if v := firstInt(src.Conaffinity, class.geom.Conaffinity); v != nil {
		geom.Conaffinity = *v
	}
	if src.Friction != nil {
		geom.Friction = src.Friction
	} else if class.geom.Friction != nil {
		geom.Friction = class.geom.Friction
	}
	if src.Rgba != nil {
		geom.Rgba = src.Rgba
	} else if class.geom.Rgba != nil {
		geom.Rgba = class.geom.Rgba
	}

	if geom.Contype < 0 || geom.Contype > maxBitmask {
		c.errorf(src.DeclRange, "Invalid contype bitmask",
			"The contype value %d does not fit in 32 mask bits.", geom.Contype)
	}
	if geom.Conaffinity < 0 || geom.Conaffinity > maxBitmask {
		c.errorf(src.DeclRange, "Invalid conaffinity bitmask",
			"The conaffinity value %d does not fit in 32 mask bits.", geom.Conaffinity)
	}

	materialName := src.Material
	if materialName == "" {
		materialName = class.geom.Material
	}
	if materialName != "" {
		material, ok := c.g.materials[materialName]
		if !ok {
			c.errorf(src.DeclRange, "Unresolved material reference",
				"Geom %q references undeclared material %q.", src.Name, materialName)
		} else {
			geom.Material = material
		}
	}

	c.resolveInertial(geom, src, class)

	c.g.geoms[src.Name] = geom
	body.Geoms = append(body.Geoms, geom)
}

// resolveInertial fills the geom's mass and inertia from its declaration,
// its class defaults, or the density fallback.
func (c *compiler) resolveInertial(geom *Geom, src *model.Geom, class *resolvedClass) {
	mass := firstFloat(src.Mass, class.geom.Mass)
	density := firstFloat(src.Density, class.geom.Density)

	if geom.Type == model.GeomPlane {
		// Planes are static: they bound the world and carry no inertia.
		if mass != nil || density != nil {
			c.errorf(src.DeclRange, "Invalid plane inertial",
				"Plane geom %q must not declare mass or density.", src.Name)
		}
		return
	}

	if geom.Size == nil {
		c.errorf(src.DeclRange, "Missing geom size",
			"Geom %q of type %q requires the 'size' attribute.", src.Name, geom.Type)
		return
	}
	for _, s := range geom.Size {
		if s <= 0 {
			c.errorf(src.DeclRange, "Invalid geom size",
				"Geom %q requires strictly positive size elements.", src.Name)
			return
		}
	}

	var resolvedMass float64
	switch {
	case mass != nil:
		resolvedMass = *mass
	case density != nil:
		resolvedMass = *density * c.geomVolume(geom)
	default:
		resolvedMass = defaultDensity * c.geomVolume(geom)
	}
	if resolvedMass < 0 {
		c.errorf(src.DeclRange, "Invalid geom mass",
			"Geom %q resolves to a negative mass.", src.Name)
		return
	}

	geom.Mass = resolvedMass
	switch geom.Type {
	case model.GeomBox:
		geom.Inertia = spatial.BoxInertia(resolvedMass,
			spatial.Vec3{X: geom.Size[0], Y: geom.Size[1], Z: geom.Size[2]})
	case model.GeomSphere:
		geom.Inertia = spatial.SphereInertia(resolvedMass, geom.Size[0])
	case model.GeomCylinder:
		geom.Inertia = spatial.CylinderInertia(resolvedMass, geom.Size[0], geom.Size[1])
	}
}

func (c *compiler) geomVolume(geom *Geom) float64 {
	switch geom.Type {
	case model.GeomBox:
		return spatial.BoxVolume(spatial.Vec3{X: geom.Size[0], Y: geom.Size[1], Z: geom.Size[2]})
	case model.GeomSphere:
		return spatial.SphereVolume(geom.Size[0])
	case model.GeomCylinder:
		return spatial.CylinderVolume(geom.Size[0], geom.Size[1])
	}
	return 0
}

func (c *compiler) addCamera(body *Body, src *model.Camera) {
	if _, exists := c.g.cameras[src.Name]; exists {
		c.errorf(src.DeclRange, "Duplicate camera name",
			"Camera %q is already declared.", src.Name)
		return
	}
	camera := &Camera{Camera: src, Body: body}
	c.g.cameras[src.Name] = camera
	body.Cameras = append(body.Cameras, camera)
}

func (c *compiler) addLight(body *Body, src *model.Light) {
	if _, exists := c.g.lights[src.Name]; exists {
		c.errorf(src.DeclRange, "Duplicate light name",
			"Light %q is already declared.", src.Name)
		return
	}
	light := &Light{Light: src, Body: body}
	c.g.lights[src.Name] = light
	body.Lights = append(body.Lights, light)
}

// resolveTargets binds targetbody cameras and lights to their bodies. Runs
// after the whole tree exists so forward references work.
func (c *compiler) resolveTargets() {
	for _, camera := range c.g.cameras {
		if camera.Mode != model.TrackTargetBody {
			continue
		}
		target, ok := c.g.bodies[camera.Target]
		if !ok {
			c.errorf(camera.DeclRange, "Unresolved camera target",
				"Camera %q targets undeclared body %q.", camera.Name, camera.Target)
			continue
		}
		camera.TargetBody = target
	}
	for _, light := range c.g.lights {
		if light.Mode != model.TrackTargetBody {
			continue
		}
		target, ok := c.g.bodies[light.Target]
		if !ok {
			c.errorf(light.DeclRange, "Unresolved light target",
				"Light %q targets undeclared body %q.", light.Name, light.Target)
			continue
		}
		light.TargetBody = target
	}
}

// resolveSensors validates each sensor against its kind definition and
// binds it to the observed object.
func (c *compiler) resolveSensors(sensors []*model.Sensor) {
	for _, src := range sensors {
		if _, exists := c.g.sensors[src.Name]; exists {
			c.errorf(src.DeclRange, "Duplicate sensor name",
				"Sensor %q is already declared.", src.Name)
			continue
		}

		def, ok := c.reg.Lookup(src.Kind)
		if !ok {
			c.errorf(src.DeclRange, "Unknown sensor kind",
				"Sensor kind %q is not registered. Known kinds: %v.", src.Kind, c.reg.Kinds())
			continue
		}
		if !def.AllowsObjType(src.ObjType) {
			c.errorf(src.DeclRange, "Invalid sensor binding",
				"Sensor kind %q cannot observe objects of type %q.", src.Kind, src.ObjType)
			continue
		}

		sensor := &Sensor{
			Kind:    src.Kind,
			Name:    src.Name,
			Dim:     def.Dim,
			ObjType: src.ObjType,
			ObjName: src.ObjName,
			Cutoff:  src.Cutoff,
		}

		switch src.ObjType {
		case model.ObjBody:
			target, ok := c.g.bodies[src.ObjName]
			if !ok || target.IsWorld() {
				c.errorf(src.DeclRange, "Unresolved sensor object",
					"Sensor %q observes undeclared body %q.", src.Name, src.ObjName)
				continue
			}
			sensor.TargetBody = target
		case model.ObjGeom:
			target, ok := c.g.geoms[src.ObjName]
			if !ok {
				c.errorf(src.DeclRange, "Unresolved sensor object",
					"Sensor %q observes undeclared geom %q.", src.Name, src.ObjName)
				continue
			}
			sensor.TargetGeom = target
		}

		c.g.sensors[src.Name] = sensor
		c.g.Sensors = append(c.g.Sensors, sensor)
	}
}

func firstFloat(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstInt(values ...*int) *int {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
