// Package catalog maintains named scene variants: reusable parameter sets
// applied to a workspace before compiling. A variant is how one scene
// description serves a family of scenarios, the way a single block
// prototype yields a pick task with one block or a stacking task with
// three.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/aolshev/rigscene/internal/ctxlog"
	"github.com/aolshev/rigscene/internal/graph"
	"github.com/aolshev/rigscene/internal/model"
	"github.com/aolshev/rigscene/internal/registry"
)

// Variant binds an ID to the overrides applied to a workspace before
// compile.
type Variant struct {
	ID          string
	Description string

	// BodyCounts overrides the count attribute of top-level prototype
	// bodies, keyed by body name.
	BodyCounts map[string]int

	// Regions overrides the placement region of top-level bodies, keyed
	// by body name.
	Regions map[string]string

	// Keyframe names the reference configuration the variant starts
	// from. Empty means no requirement.
	Keyframe string
}

// Instance is one compiled realization of a variant. Every instantiation
// gets a fresh identifier so downstream consumers can tell realizations
// apart even when the underlying graph digest is identical.
type Instance struct {
	ID      string
	Variant *Variant
	Graph   *graph.Graph
}

// Catalog holds the registered variants for a single application instance.
type Catalog struct {
	variants map[string]*Variant
}

// New creates a Catalog pre-populated with the core variants.
func New() *Catalog {
	c := &Catalog{variants: make(map[string]*Variant)}
	for _, variant := range coreVariants {
		if err := c.Register(variant); err != nil {
			panic(err)
		}
	}
	return c
}

// Register adds a variant. Registering a duplicate ID is an error.
func (c *Catalog) Register(v *Variant) error {
	if v.ID == "" {
		return fmt.Errorf("variant ID must not be empty")
	}
	if _, exists := c.variants[v.ID]; exists {
		return fmt.Errorf("variant %q is already registered", v.ID)
	}
	for name, count := range v.BodyCounts {
		if count < 0 {
			return fmt.Errorf("variant %q: negative count for body %q", v.ID, name)
		}
	}
	c.variants[v.ID] = v
	return nil
}

// Lookup returns the variant for an ID, if registered.
func (c *Catalog) Lookup(id string) (*Variant, bool) {
	v, ok := c.variants[id]
	return v, ok
}

// IDs returns the registered variant IDs in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.variants))
	for id := range c.variants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Instantiate applies a variant's overrides to the workspace and compiles
// it. The workspace is modified in place; callers that need the pristine
// model should reload it.
func (c *Catalog) Instantiate(ctx context.Context, id string, ws *model.Workspace, reg *registry.Registry) (*Instance, error) {
	logger := ctxlog.FromContext(ctx)

	variant, ok := c.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown variant %q, registered: %v", id, c.IDs())
	}

	for name, count := range variant.BodyCounts {
		body := findTopLevelBody(ws, name)
		if body == nil {
			return nil, fmt.Errorf("variant %q overrides count of body %q, which is not a top-level body in the workspace", id, name)
		}
		n := count
		body.Count = &n
	}
	for name, region := range variant.Regions {
		body := findTopLevelBody(ws, name)
		if body == nil {
			return nil, fmt.Errorf("variant %q overrides region of body %q, which is not a top-level body in the workspace", id, name)
		}
		body.Region = region
	}
	logger.Debug("Variant overrides applied.", "variant", id)

	compiled, diags := graph.Compile(ctx, ws, reg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("variant %q failed to compile: %w", id, diags)
	}

	if variant.Keyframe != "" {
		if _, ok := compiled.Keyframe(variant.Keyframe); !ok {
			return nil, fmt.Errorf("variant %q requires keyframe %q, which the scene does not declare", id, variant.Keyframe)
		}
	}

	return &Instance{
		ID:      uuid.NewString(),
		Variant: variant,
		Graph:   compiled,
	}, nil
}

func findTopLevelBody(ws *model.Workspace, name string) *model.Body {
	for _, body := range ws.Bodies {
		if body.Name == name {
			return body
		}
	}
	return nil
}
