package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aolshev/rigscene/internal/model"
	"github.com/aolshev/rigscene/internal/registry"
)

// loadScene parses the HCL string into a workspace.
func loadScene(t *testing.T, hclBody string) *model.Workspace {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.hcl"), []byte(hclBody), 0600))
	ws, err := model.LoadWorkspaceRecursively(context.Background(), dir)
	require.NoError(t, err)
	return ws
}

// pickSceneHCL declares the counted block prototype and home keyframe the
// core variants expect. The keyframe is bound to the prototype, so count
// expansion tiles it to whatever count a variant picks.
const pickSceneHCL = `
	body "block" {
		count = 1
		pos   = [0.1, 0, 0.02]

		joint { type = "free" }
		geom "block_geom" {
			type = "box"
			size = [0.02, 0.02, 0.02]
			mass = 0.5
		}
	}

	sensor "framepos" "block_pos" {
		objtype = "body"
		objname = "block"
	}

	keyframe "home" {
		body = "block"
		qpos = [0.1, 0, 0.02, 1, 0, 0, 0]
	}
`

func TestNew_CoreVariants(t *testing.T) {
	t.Parallel()

	// --- Act ---
	c := New()

	// --- Assert ---
	assert.Equal(t, []string{"arrange_boxes", "pick_cube", "stack_cubes"}, c.IDs())

	stack, ok := c.Lookup("stack_cubes")
	require.True(t, ok)
	assert.Equal(t, 3, stack.BodyCounts["block"])
	assert.Equal(t, "home", stack.Keyframe)

	_, ok = c.Lookup("juggle")
	assert.False(t, ok)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	c := New()

	require.Error(t, c.Register(&Variant{}), "empty ID must be rejected")
	require.Error(t, c.Register(&Variant{ID: "pick_cube"}), "duplicate ID must be rejected")
	require.Error(t, c.Register(&Variant{
		ID:         "broken",
		BodyCounts: map[string]int{"block": -1},
	}), "negative counts must be rejected")

	require.NoError(t, c.Register(&Variant{
		ID:         "clear_table",
		BodyCounts: map[string]int{"block": 2},
	}))
	assert.Contains(t, c.IDs(), "clear_table")
}

func TestInstantiate_AppliesCountOverride(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ws := loadScene(t, pickSceneHCL)
	c := New()

	// --- Act ---
	instance, err := c.Instantiate(context.Background(), "pick_cube", ws, registry.New())

	// --- Assert ---
	require.NoError(t, err)
	require.NotNil(t, instance.Graph)
	assert.NotEmpty(t, instance.ID)
	assert.Equal(t, "pick_cube", instance.Variant.ID)

	assert.Equal(t, 1, instance.Graph.NumBodies())
	_, ok := instance.Graph.Body("block1")
	assert.True(t, ok)
	_, ok = instance.Graph.Sensor("block1_pos")
	assert.True(t, ok)
}

func TestInstantiate_AppliesRegionOverride(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The block sits inside "wide" but outside "narrow".
	ws := loadScene(t, pickSceneHCL+`
		region "wide" {
			min = [-1, -1, 0]
			max = [1, 1, 1]
		}
		region "narrow" {
			min = [0.5, 0.5, 0.5]
			max = [1, 1, 1]
		}
	`)
	c := New()
	require.NoError(t, c.Register(&Variant{
		ID:         "pick_confined",
		BodyCounts: map[string]int{"block": 1},
		Regions:    map[string]string{"block": "narrow"},
	}))

	// --- Act ---
	_, err := c.Instantiate(context.Background(), "pick_confined", ws, registry.New())

	// --- Assert ---
	require.Error(t, err, "the override moves the block into a region that does not contain it")
	assert.Contains(t, err.Error(), "failed to compile")
}

// Every core variant must instantiate the bundled tabletop scene, whatever
// block count it picks.
func TestInstantiate_BundledSceneAllVariants(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		variantID  string
		blockCount int
	}{
		{variantID: "pick_cube", blockCount: 1},
		{variantID: "stack_cubes", blockCount: 3},
		{variantID: "arrange_boxes", blockCount: 5},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.variantID, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			// Instantiate mutates the workspace, so every case reloads it.
			scenePath := filepath.Join("..", "..", "scenes", "tabletop")
			ws, err := model.LoadWorkspaceRecursively(context.Background(), scenePath)
			require.NoError(t, err)

			// --- Act ---
			instance, err := New().Instantiate(context.Background(), tc.variantID, ws, registry.New())

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, 3+tc.blockCount, instance.Graph.NumBodies(),
				"floor + table + block instances + target")

			home, ok := instance.Graph.Keyframe("home")
			require.True(t, ok)
			assert.Len(t, home.Qpos, 7*tc.blockCount)
		})
	}
}

func TestInstantiate_FreshInstanceIDs(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	c := New()

	// --- Act ---
	first, err := c.Instantiate(context.Background(), "pick_cube", loadScene(t, pickSceneHCL), registry.New())
	require.NoError(t, err)
	second, err := c.Instantiate(context.Background(), "pick_cube", loadScene(t, pickSceneHCL), registry.New())
	require.NoError(t, err)

	// --- Assert ---
	assert.NotEqual(t, first.ID, second.ID, "every instantiation gets its own identifier")
	assert.Equal(t, first.Graph.Digest(), second.Graph.Digest(), "the underlying scene is identical")
}

func TestInstantiate_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown variant", func(t *testing.T) {
		t.Parallel()

		_, err := New().Instantiate(context.Background(), "juggle", loadScene(t, pickSceneHCL), registry.New())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown variant")
	})

	t.Run("prototype body missing from workspace", func(t *testing.T) {
		t.Parallel()

		ws := loadScene(t, `
			body "crate" {}
		`)

		_, err := New().Instantiate(context.Background(), "pick_cube", ws, registry.New())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a top-level body")
	})

	t.Run("scene-wide keyframe no longer matches the override", func(t *testing.T) {
		t.Parallel()

		// An unbound keyframe keeps its declared width. This one fits a
		// single block; three blocks need 21 configuration coordinates.
		ws := loadScene(t, `
			body "block" {
				count = 1
				joint { type = "free" }
				geom "block_geom" {
					type = "box"
					size = [0.02, 0.02, 0.02]
					mass = 0.5
				}
			}

			keyframe "home" {
				qpos = [0.1, 0, 0.02, 1, 0, 0, 0]
			}
		`)

		_, err := New().Instantiate(context.Background(), "stack_cubes", ws, registry.New())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to compile")
	})

	t.Run("required keyframe missing from scene", func(t *testing.T) {
		t.Parallel()

		ws := loadScene(t, `
			body "block" {
				joint { type = "free" }
				geom "block_geom" {
					type = "box"
					size = [0.02, 0.02, 0.02]
					mass = 0.5
				}
			}
		`)

		_, err := New().Instantiate(context.Background(), "pick_cube", ws, registry.New())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires keyframe")
	})
}
