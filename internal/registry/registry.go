package registry

import (
	"fmt"
	"sort"

	"github.com/aolshev/rigscene/internal/model"
)

// KindDefinition describes a single sensor kind: the dimension of its
// read-out and the object namespaces it may observe.
type KindDefinition struct {
	Kind        string
	Description string
	Dim         int
	ObjTypes    []model.ObjType
}

// AllowsObjType reports whether the kind may bind to the given namespace.
func (d *KindDefinition) AllowsObjType(t model.ObjType) bool {
	for _, allowed := range d.ObjTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

// Registry holds the sensor kinds for a single application instance.
type Registry struct {
	kinds map[string]*KindDefinition
}

// New creates a Registry pre-populated with the core sensor kinds.
func New() *Registry {
	r := &Registry{kinds: make(map[string]*KindDefinition)}
	for _, def := range coreKinds {
		// Core kinds are internally consistent; a failure here is a
		// programmer error.
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a sensor kind definition. Registering a duplicate or a
// malformed definition is an error.
func (r *Registry) Register(def *KindDefinition) error {
	if def.Kind == "" {
		return fmt.Errorf("sensor kind must not be empty")
	}
	if def.Dim <= 0 {
		return fmt.Errorf("sensor kind %q: dimension must be positive, got %d", def.Kind, def.Dim)
	}
	if len(def.ObjTypes) == 0 {
		return fmt.Errorf("sensor kind %q: at least one object type is required", def.Kind)
	}
	if _, exists := r.kinds[def.Kind]; exists {
		return fmt.Errorf("sensor kind %q is already registered", def.Kind)
	}
	r.kinds[def.Kind] = def
	return nil
}

// Lookup returns the definition for a kind, if registered.
func (r *Registry) Lookup(kind string) (*KindDefinition, bool) {
	def, ok := r.kinds[kind]
	return def, ok
}

// Kinds returns the registered kind names in sorted order.
func (r *Registry) Kinds() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
