package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aolshev/rigscene/internal/graph"
)

// Summary is the serializable report of a compiled scene graph, rendered
// by the inspect mode in text, json, or yaml form.
type Summary struct {
	Scene          string        `json:"scene" yaml:"scene"`
	Digest         string        `json:"digest" yaml:"digest"`
	Bodies         int           `json:"bodies" yaml:"bodies"`
	Geoms          int           `json:"geoms" yaml:"geoms"`
	NqPos          int           `json:"nqpos" yaml:"nqpos"`
	NqVel          int           `json:"nqvel" yaml:"nqvel"`
	TotalMass      float64       `json:"total_mass" yaml:"total_mass"`
	CollisionPairs int           `json:"collision_pairs" yaml:"collision_pairs"`
	Tree           []BodyLine    `json:"tree" yaml:"tree"`
	Sensors        []SensorLine  `json:"sensors,omitempty" yaml:"sensors,omitempty"`
	Regions        []string      `json:"regions,omitempty" yaml:"regions,omitempty"`
	Keyframes      []string      `json:"keyframes,omitempty" yaml:"keyframes,omitempty"`
}

// BodyLine is one row of the flattened body tree. Depth counts edges from
// the world body.
type BodyLine struct {
	Name        string  `json:"name" yaml:"name"`
	Depth       int     `json:"depth" yaml:"depth"`
	Mocap       bool    `json:"mocap,omitempty" yaml:"mocap,omitempty"`
	Joints      int     `json:"joints" yaml:"joints"`
	Geoms       int     `json:"geoms" yaml:"geoms"`
	SubtreeMass float64 `json:"subtree_mass" yaml:"subtree_mass"`
}

// SensorLine is one row of the sensor table.
type SensorLine struct {
	Name   string `json:"name" yaml:"name"`
	Kind   string `json:"kind" yaml:"kind"`
	Dim    int    `json:"dim" yaml:"dim"`
	Target string `json:"target" yaml:"target"`
}

// NewSummary flattens a compiled graph into its report form.
func NewSummary(g *graph.Graph) *Summary {
	s := &Summary{
		Scene:          g.Scene.Name,
		Digest:         fmt.Sprintf("%016x", g.Digest()),
		Bodies:         g.NumBodies(),
		Geoms:          g.NumGeoms(),
		NqPos:          g.NqPos,
		NqVel:          g.NqVel,
		TotalMass:      g.TotalMass,
		CollisionPairs: len(g.CollisionPairs),
		Regions:        g.RegionNames(),
		Keyframes:      g.KeyframeNames(),
	}

	var flatten func(b *graph.Body, depth int)
	flatten = func(b *graph.Body, depth int) {
		s.Tree = append(s.Tree, BodyLine{
			Name:        b.Name,
			Depth:       depth,
			Mocap:       b.Mocap,
			Joints:      len(b.Joints),
			Geoms:       len(b.Geoms),
			SubtreeMass: b.SubtreeMass,
		})
		for _, child := range b.Children {
			flatten(child, depth+1)
		}
	}
	flatten(g.World, 0)

	for _, sensor := range g.Sensors {
		s.Sensors = append(s.Sensors, SensorLine{
			Name:   sensor.Name,
			Kind:   sensor.Kind,
			Dim:    sensor.Dim,
			Target: fmt.Sprintf("%s:%s", sensor.ObjType, sensor.ObjName),
		})
	}

	return s
}

// inspect renders the scene summary to the application's output writer in
// the configured format.
func (a *App) inspect(g *graph.Graph, format string) error {
	summary := NewSummary(g)

	switch format {
	case "json":
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case "yaml":
		enc := yaml.NewEncoder(a.outW)
		defer enc.Close()
		return enc.Encode(summary)
	default:
		return summary.renderText(a.outW)
	}
}

func (s *Summary) renderText(w io.Writer) error {
	var b strings.Builder

	name := s.Scene
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(&b, "Scene:    %s\n", name)
	fmt.Fprintf(&b, "Digest:   %s\n", s.Digest)
	fmt.Fprintf(&b, "Bodies:   %d    Geoms: %d    Collision pairs: %d\n", s.Bodies, s.Geoms, s.CollisionPairs)
	fmt.Fprintf(&b, "Widths:   nqpos=%d nqvel=%d\n", s.NqPos, s.NqVel)
	fmt.Fprintf(&b, "Mass:     %.4g\n", s.TotalMass)

	fmt.Fprintf(&b, "\nKinematic tree:\n")
	for _, line := range s.Tree {
		indent := strings.Repeat("  ", line.Depth)
		tag := ""
		if line.Mocap {
			tag = " [mocap]"
		}
		fmt.Fprintf(&b, "  %s%s%s (joints=%d geoms=%d mass=%.4g)\n",
			indent, line.Name, tag, line.Joints, line.Geoms, line.SubtreeMass)
	}

	if len(s.Sensors) > 0 {
		fmt.Fprintf(&b, "\nSensors:\n")
		for _, sensor := range s.Sensors {
			fmt.Fprintf(&b, "  %-24s %-12s dim=%d  %s\n", sensor.Name, sensor.Kind, sensor.Dim, sensor.Target)
		}
	}
	if len(s.Regions) > 0 {
		fmt.Fprintf(&b, "\nRegions:   %s\n", strings.Join(s.Regions, ", "))
	}
	if len(s.Keyframes) > 0 {
		fmt.Fprintf(&b, "Keyframes: %s\n", strings.Join(s.Keyframes, ", "))
	}

	_, err := w.Write([]byte(b.String()))
	return err
}
