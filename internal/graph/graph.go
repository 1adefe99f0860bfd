package graph

import (
	"sort"

	"github.com/aolshev/rigscene/internal/model"
	"github.com/aolshev/rigscene/internal/spatial"
)

// WorldName is the reserved name of the implicit root body.
const WorldName = "world"

// Graph is the compiled, immutable scene graph. It is constructed once by
// Compile and never structurally modified afterwards; dynamic state
// (positions, velocities) lives in whatever engine consumes it.
type Graph struct {
	// Scene holds the root metadata, with defaults filled in when the
	// workspace declared no scene block.
	Scene model.Scene

	// World is the root of the kinematic tree.
	World *Body

	// Sensors holds the resolved sensor list in declaration order,
	// count-expanded.
	Sensors []*Sensor

	// NqPos and NqVel are the total configuration and velocity widths
	// summed over every joint in the tree.
	NqPos int
	NqVel int

	// TotalMass is the summed mass of every geom in the scene.
	TotalMass float64

	// CollisionPairs lists the geom pairs eligible for contact checks
	// according to their contype/conaffinity bitmasks.
	CollisionPairs []CollisionPair

	bodies    map[string]*Body
	geoms     map[string]*Geom
	joints    map[string]*Joint
	textures  map[string]*model.Texture
	materials map[string]*model.Material
	cameras   map[string]*Camera
	lights    map[string]*Light
	sensors   map[string]*Sensor
	regions   map[string]*model.Region
	keyframes map[string]*model.Keyframe

	digest uint64
}

// Body is a compiled node of the kinematic tree.
type Body struct {
	Name   string
	Mocap  bool
	Region string

	Parent   *Body
	Children []*Body
	Joints   []*Joint
	Geoms    []*Geom
	Cameras  []*Camera
	Lights   []*Light

	// LocalPose is the offset relative to the parent body; WorldPose is
	// the composed world-frame placement of the default configuration.
	LocalPose spatial.Pose
	WorldPose spatial.Pose

	// SubtreeMass is the summed geom mass of this body and all
	// descendants.
	SubtreeMass float64

	src *model.Body
}

// IsWorld reports whether the body is the implicit root.
func (b *Body) IsWorld() bool {
	return b.Parent == nil
}

// Walk visits the body and every descendant in depth-first declaration
// order. The walk stops when fn returns false.
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

// Geom is a compiled shape with every defaultable attribute resolved.
type Geom struct {
	Name string
	Type model.GeomType
	Size []float64

	Contype     int
	Conaffinity int
	Friction    []float64
	Rgba        []float64

	// Material is nil for untextured geoms.
	Material *model.Material

	// Mass resolves the mass/density declaration; planes are static and
	// carry no mass. Inertia is the body-frame tensor diagonal.
	Mass    float64
	Inertia spatial.MassProperties

	LocalPose spatial.Pose
	WorldPose spatial.Pose

	Body *Body
	src  *model.Geom
}

// CollidesWith reports whether the pair (g, other) is eligible for contact
// checks under the contype/conaffinity bitmask convention.
func (g *Geom) CollidesWith(other *Geom) bool {
	return g.Contype&other.Conaffinity != 0 || other.Contype&g.Conaffinity != 0
}

// Joint is a compiled degree-of-freedom declaration.
type Joint struct {
	Name      string
	Type      model.JointType
	Axis      spatial.Vec3
	Pos       spatial.Vec3
	Range     []float64
	Damping   float64
	Stiffness float64

	// QposOffset is the index of the joint's first coordinate in the
	// scene-wide qpos vector.
	QposOffset int

	Body *Body
}

// Camera is a compiled viewpoint with its target resolved.
type Camera struct {
	*model.Camera

	// TargetBody is non-nil for targetbody mode.
	TargetBody *Body
	Body       *Body
}

// Light is a compiled illumination source with its target resolved.
type Light struct {
	*model.Light

	TargetBody *Body
	Body       *Body
}

// Sensor is a compiled read-out with its observed object resolved. Exactly
// one of TargetBody and TargetGeom is non-nil.
type Sensor struct {
	Kind    string
	Name    string
	Dim     int
	ObjType model.ObjType
	ObjName string
	Cutoff  float64

	TargetBody *Body
	TargetGeom *Geom
}

// CollisionPair is an unordered pair of geoms eligible for contact checks.
type CollisionPair struct {
	First  string
	Second string
}

// Body returns the named body, if present. The world body is addressable
// under WorldName.
func (g *Graph) Body(name string) (*Body, bool) {
	b, ok := g.bodies[name]
	return b, ok
}

// Geom returns the named geom, if present.
func (g *Graph) Geom(name string) (*Geom, bool) {
	geom, ok := g.geoms[name]
	return geom, ok
}

// Joint returns the named joint, if present. Unnamed joints are not
// addressable.
func (g *Graph) Joint(name string) (*Joint, bool) {
	j, ok := g.joints[name]
	return j, ok
}

// Sensor returns the named sensor, if present.
func (g *Graph) Sensor(name string) (*Sensor, bool) {
	s, ok := g.sensors[name]
	return s, ok
}

// Material returns the named material, if present.
func (g *Graph) Material(name string) (*model.Material, bool) {
	m, ok := g.materials[name]
	return m, ok
}

// Texture returns the named texture, if present.
func (g *Graph) Texture(name string) (*model.Texture, bool) {
	t, ok := g.textures[name]
	return t, ok
}

// Region returns the named region, if present.
func (g *Graph) Region(name string) (*model.Region, bool) {
	r, ok := g.regions[name]
	return r, ok
}

// Keyframe returns the named keyframe, if present.
func (g *Graph) Keyframe(name string) (*model.Keyframe, bool) {
	k, ok := g.keyframes[name]
	return k, ok
}

// Camera returns the named camera, if present.
func (g *Graph) Camera(name string) (*Camera, bool) {
	c, ok := g.cameras[name]
	return c, ok
}

// Light returns the named light, if present.
func (g *Graph) Light(name string) (*Light, bool) {
	l, ok := g.lights[name]
	return l, ok
}

// RegionNames returns the declared region names in sorted order.
func (g *Graph) RegionNames() []string {
	return sortedKeys(g.regions)
}

// KeyframeNames returns the declared keyframe names in sorted order.
func (g *Graph) KeyframeNames() []string {
	return sortedKeys(g.keyframes)
}

// NumBodies returns the number of bodies excluding the implicit world.
func (g *Graph) NumBodies() int {
	return len(g.bodies) - 1
}

// NumGeoms returns the number of geoms in the scene.
func (g *Graph) NumGeoms() int {
	return len(g.geoms)
}

// Digest returns the stable fingerprint of the compiled scene.
func (g *Graph) Digest() uint64 {
	return g.digest
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
