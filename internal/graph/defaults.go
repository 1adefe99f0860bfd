package graph

import (
	"fmt"

	"github.com/aolshev/rigscene/internal/model"
	"github.com/hashicorp/hcl/v2"
)

// resolvedClass is a default class with its inheritance chain flattened:
// every field holds the nearest value found walking from the class up
// through its ancestors.
type resolvedClass struct {
	geom  model.GeomDefaults
	joint model.JointDefaults
}

// flattenDefaults indexes the declared default classes, rejects duplicate
// names and inheritance cycles, and flattens each inheritance chain.
func flattenDefaults(classes []*model.DefaultClass) (map[string]*resolvedClass, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	byName := make(map[string]*model.DefaultClass, len(classes))
	for _, class := range classes {
		if prior, exists := byName[class.Name]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate default class",
				Detail: fmt.Sprintf("Default class %q is already declared in %s.",
					class.Name, prior.FSInformation.FilePath),
				Subject: &class.DeclRange,
			})
			continue
		}
		byName[class.Name] = class
	}

	// Depth-first search with temporary/permanent marks to reject
	// inheritance cycles before flattening walks any chain.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(class *model.DefaultClass) error
	visit = func(class *model.DefaultClass) error {
		if permanent[class.Name] {
			return nil
		}
		if temporary[class.Name] {
			return fmt.Errorf("inheritance cycle detected involving class %q", class.Name)
		}
		temporary[class.Name] = true

		if class.Inherit != "" {
			parent, ok := byName[class.Inherit]
			if !ok {
				return fmt.Errorf("class %q inherits from undeclared class %q", class.Name, class.Inherit)
			}
			if err := visit(parent); err != nil {
				return err
			}
		}

		delete(temporary, class.Name)
		permanent[class.Name] = true
		return nil
	}

	for _, class := range byName {
		if err := visit(class); err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid default class inheritance",
				Detail:   err.Error() + ".",
				Subject:  &class.DeclRange,
			})
			return nil, diags
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	resolved := make(map[string]*resolvedClass, len(byName))
	for name, class := range byName {
		rc := &resolvedClass{}
		// Walk from the class to the root ancestor; nearer declarations
		// win, so only unset fields are filled at each step.
		for cursor := class; cursor != nil; cursor = byName[cursor.Inherit] {
			rc.fill(cursor)
			if cursor.Inherit == "" {
				break
			}
		}
		resolved[name] = rc
	}

	return resolved, diags
}

// fill copies any fields of class that are still unset on rc.
func (rc *resolvedClass) fill(class *model.DefaultClass) {
	if g := class.Geom; g != nil {
		if rc.geom.Contype == nil {
			rc.geom.Contype = g.Contype
		}
		if rc.geom.Conaffinity == nil {
			rc.geom.Conaffinity = g.Conaffinity
		}
		if rc.geom.Mass == nil {
			rc.geom.Mass = g.Mass
		}
		if rc.geom.Density == nil {
			rc.geom.Density = g.Density
		}
		if rc.geom.Rgba == nil {
			rc.geom.Rgba = g.Rgba
		}
		if rc.geom.Friction == nil {
			rc.geom.Friction = g.Friction
		}
		if rc.geom.Material == "" {
			rc.geom.Material = g.Material
		}
	}
	if j := class.Joint; j != nil {
		if rc.joint.Damping == nil {
			rc.joint.Damping = j.Damping
		}
		if rc.joint.Stiffness == nil {
			rc.joint.Stiffness = j.Stiffness
		}
	}
}
