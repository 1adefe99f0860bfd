package graph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aolshev/rigscene/internal/model"
	"github.com/aolshev/rigscene/internal/registry"
	"github.com/aolshev/rigscene/internal/spatial"
)

// compileHCL parses the HCL string into a workspace and compiles it with
// the core sensor kinds.
func compileHCL(t *testing.T, hclBody string) (*Graph, hcl.Diagnostics) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.hcl"), []byte(hclBody), 0600))
	ws, err := model.LoadWorkspaceRecursively(context.Background(), dir)
	require.NoError(t, err, "test scene must parse cleanly; parse failures belong in the model tests")
	return Compile(context.Background(), ws, registry.New())
}

// hasSummary reports whether any diagnostic carries the given summary.
func hasSummary(diags hcl.Diagnostics, want string) bool {
	for _, d := range diags {
		if d.Summary == want {
			return true
		}
	}
	return false
}

const stackSceneHCL = `
	scene "stack" {
		option {
			timestep = 0.002
		}
	}

	texture "grid" {
		builtin = "checker"
	}

	material "grid" {
		texture = "grid"
	}

	default "collidable" {
		geom {
			contype     = 1
			conaffinity = 1
			friction    = [1, 0.005, 0.0001]
		}
	}

	body "floor" {
		geom "ground" {
			type     = "plane"
			size     = [5, 5, 0.1]
			material = "grid"
		}
		camera "overview" {
			mode   = "targetbody"
			target = "floor"
			pos    = [0, -1, 1]
		}
		light "sun" {
			directional = true
			pos         = [0, 0, 3]
		}
	}

	body "block" {
		count  = 3
		pos    = [0.1, 0, 0.02]
		region = "spawn"

		joint {
			type = "free"
			name = "block_root"
		}
		geom "block_geom" {
			type  = "box"
			class = "collidable"
			size  = [0.02, 0.02, 0.02]
			mass  = 0.5
		}
	}

	body "target" {
		mocap = true
		pos   = [0.2, 0.2, 0.05]
	}

	sensor "framepos" "block_pos" {
		objtype = "body"
		objname = "block"
	}

	region "spawn" {
		min = [-0.5, -0.5, 0]
		max = [0.5, 0.5, 0.5]
	}

	keyframe "home" {
		qpos = [
			0.1, 0, 0.02, 1, 0, 0, 0,
			0.1, 0, 0.02, 1, 0, 0, 0,
			0.1, 0, 0.02, 1, 0, 0, 0,
		]
	}
`

func TestCompile_FullScene(t *testing.T) {
	t.Parallel()

	// --- Act ---
	g, diags := compileHCL(t, stackSceneHCL)

	// --- Assert ---
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags)
	require.NotNil(t, g)

	assert.Equal(t, "stack", g.Scene.Name)
	assert.Equal(t, 5, g.NumBodies(), "floor + three block instances + mocap target")
	assert.Equal(t, 4, g.NumGeoms())

	// Count expansion names instances with a 1-based suffix.
	for _, name := range []string{"block1", "block2", "block3"} {
		body, ok := g.Body(name)
		require.True(t, ok, "expected expanded body %q", name)
		assert.Equal(t, spatial.Vec3{X: 0.1, Z: 0.02}, body.WorldPose.Pos)
		assert.Equal(t, 0.5, body.SubtreeMass)
	}
	_, ok := g.Body("block")
	assert.False(t, ok, "the counted prototype itself must not survive expansion")

	// The world body is addressable but excluded from NumBodies.
	world, ok := g.Body(WorldName)
	require.True(t, ok)
	assert.True(t, world.IsWorld())

	// Sensors are cloned per instance with the suffix substituted into
	// their names.
	require.Len(t, g.Sensors, 3)
	for i, name := range []string{"block1_pos", "block2_pos", "block3_pos"} {
		sensor, ok := g.Sensor(name)
		require.True(t, ok, "expected cloned sensor %q", name)
		assert.Equal(t, "framepos", sensor.Kind)
		assert.Equal(t, 3, sensor.Dim)
		require.NotNil(t, sensor.TargetBody)
		assert.Equal(t, g.Sensors[i].Name, name, "sensor order must follow instance order")
	}

	// Each free joint contributes 7 position and 6 velocity coordinates.
	assert.Equal(t, 21, g.NqPos)
	assert.Equal(t, 18, g.NqVel)
	secondRoot, ok := g.Joint("block_root2")
	require.True(t, ok)
	assert.Equal(t, 7, secondRoot.QposOffset)

	// The static plane carries no mass.
	assert.Equal(t, 1.5, g.TotalMass)
	ground, ok := g.Geom("ground")
	require.True(t, ok)
	assert.Zero(t, ground.Mass)
	require.NotNil(t, ground.Material)
	assert.Equal(t, "grid", ground.Material.Name)

	// Class defaults land on the instance geoms.
	blockGeom, ok := g.Geom("block_geom1")
	require.True(t, ok)
	assert.Equal(t, 1, blockGeom.Contype)
	assert.Equal(t, []float64{1, 0.005, 0.0001}, blockGeom.Friction)
	assert.Equal(t, defaultRgba, blockGeom.Rgba, "rgba was never declared and falls back")

	// 4 geoms on distinct bodies with default masks: all 6 pairs collide.
	assert.Len(t, g.CollisionPairs, 6)

	// The mocap body compiled without joints or geoms.
	target, ok := g.Body("target")
	require.True(t, ok)
	assert.True(t, target.Mocap)
	assert.Empty(t, target.Joints)

	camera, ok := g.Camera("overview")
	require.True(t, ok)
	require.NotNil(t, camera.TargetBody)
	assert.Equal(t, "floor", camera.TargetBody.Name)

	light, ok := g.Light("sun")
	require.True(t, ok)
	assert.True(t, light.CastShadow)
	assert.Equal(t, spatial.Vec3{Z: -1}, light.Dir)

	assert.NotZero(t, g.Digest())
}

func TestCompile_CountZeroDropsSubtreeAndSensors(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	hclBody := `
		body "block" {
			count = 0
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

	// --- Act ---
	g, diags := compileHCL(t, hclBody)

	// --- Assert ---
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags)
	assert.Equal(t, 0, g.NumBodies())
	assert.Empty(t, g.Sensors, "sensors observing a dropped subtree vanish with it")
	assert.Equal(t, 0, g.NqPos)
	_, ok := g.Keyframe("home")
	assert.False(t, ok, "a keyframe bound to a dropped prototype vanishes with it")
}

func TestCompile_KeyframeTiling(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The keyframe carries one instance's configuration; expansion must
	// repeat it per instance so the width matches at any count.
	hclBody := `
		body "block" {
			count = 2
			pos   = [0.1, 0, 0.02]
			joint { type = "free" }
			geom "block_geom" {
				type = "box"
				size = [0.02, 0.02, 0.02]
				mass = 0.5
			}
		}

		keyframe "home" {
			body = "block"
			qpos = [0.1, 0, 0.02, 1, 0, 0, 0]
		}
	`

	// --- Act ---
	g, diags := compileHCL(t, hclBody)

	// --- Assert ---
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags)
	assert.Equal(t, 14, g.NqPos)

	home, ok := g.Keyframe("home")
	require.True(t, ok)
	assert.Equal(t, []float64{
		0.1, 0, 0.02, 1, 0, 0, 0,
		0.1, 0, 0.02, 1, 0, 0, 0,
	}, home.Qpos)
}

func TestCompile_KeyframeBoundToUncountedBody(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Binding to a plain top-level body tiles exactly once.
	hclBody := `
		body "crate" {
			joint { type = "free" }
			geom "crate_geom" {
				type = "box"
				size = [0.05, 0.05, 0.05]
				mass = 1
			}
		}

		keyframe "rest" {
			body = "crate"
			qpos = [0, 0, 0.05, 1, 0, 0, 0]
		}
	`

	// --- Act ---
	g, diags := compileHCL(t, hclBody)

	// --- Assert ---
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags)
	rest, ok := g.Keyframe("rest")
	require.True(t, ok)
	assert.Len(t, rest.Qpos, 7)
}

func TestCompile_DefaultClassInheritance(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	hclBody := `
		default "base" {
			geom {
				contype     = 2
				conaffinity = 4
				rgba        = [1, 0, 0, 1]
			}
		}

		default "derived" {
			inherit = "base"
			geom {
				rgba = [0, 1, 0, 1]
			}
			joint {
				damping = 0.25
			}
		}

		body "b" {
			joint {
				type  = "hinge"
				name  = "swing"
				class = "derived"
			}
			geom "g" {
				type  = "sphere"
				class = "derived"
				size  = [0.1]
				mass  = 1
			}
		}
	`

	// --- Act ---
	g, diags := compileHCL(t, hclBody)

	// --- Assert ---
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags)

	geom, ok := g.Geom("g")
	require.True(t, ok)
	assert.Equal(t, 2, geom.Contype, "inherited from the base class")
	assert.Equal(t, 4, geom.Conaffinity)
	assert.Equal(t, []float64{0, 1, 0, 1}, geom.Rgba, "the nearer declaration wins")

	joint, ok := g.Joint("swing")
	require.True(t, ok)
	assert.Equal(t, 0.25, joint.Damping)
	assert.Equal(t, 1, g.NqPos)
	assert.Equal(t, 1, g.NqVel)
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		hclBody     string
		wantSummary string
	}{
		{
			name: "duplicate body name",
			hclBody: `
				body "a" {}
				body "a" {}
			`,
			wantSummary: "Duplicate body name",
		},
		{
			name:        "reserved world name",
			hclBody:     `body "world" {}`,
			wantSummary: "Reserved body name",
		},
		{
			name: "unresolved material reference",
			hclBody: `
				body "b" {
					geom "g" {
						type     = "sphere"
						size     = [0.1]
						material = "missing"
					}
				}
			`,
			wantSummary: "Unresolved material reference",
		},
		{
			name: "unresolved texture reference",
			hclBody: `
				material "m" {
					texture = "missing"
				}
			`,
			wantSummary: "Unresolved texture reference",
		},
		{
			name: "unknown sensor kind",
			hclBody: `
				body "b" {}
				sensor "torque" "s" {
					objtype = "body"
					objname = "b"
				}
			`,
			wantSummary: "Unknown sensor kind",
		},
		{
			name: "sensor kind rejects objtype",
			hclBody: `
				body "b" {
					geom "g" {
						type = "sphere"
						size = [0.1]
					}
				}
				sensor "framelinvel" "s" {
					objtype = "geom"
					objname = "g"
				}
			`,
			wantSummary: "Invalid sensor binding",
		},
		{
			name: "sensor observing undeclared body",
			hclBody: `
				sensor "framepos" "s" {
					objtype = "body"
					objname = "ghost"
				}
			`,
			wantSummary: "Unresolved sensor object",
		},
		{
			name: "sensor observing the world body",
			hclBody: `
				sensor "framepos" "s" {
					objtype = "body"
					objname = "world"
				}
			`,
			wantSummary: "Unresolved sensor object",
		},
		{
			name: "free joint on a nested body",
			hclBody: `
				body "outer" {
					body "inner" {
						joint { type = "free" }
						geom "g" {
							type = "sphere"
							size = [0.1]
							mass = 1
						}
					}
				}
			`,
			wantSummary: "Invalid free joint placement",
		},
		{
			name: "free joint alongside another joint",
			hclBody: `
				body "b" {
					joint { type = "free" }
					joint { type = "hinge" }
					geom "g" {
						type = "sphere"
						size = [0.1]
						mass = 1
					}
				}
			`,
			wantSummary: "Conflicting joints",
		},
		{
			name: "free joint without a massive geom",
			hclBody: `
				body "b" {
					joint { type = "free" }
				}
			`,
			wantSummary: "Massless free body",
		},
		{
			name: "mocap body nested below the world",
			hclBody: `
				body "outer" {
					body "inner" {
						mocap = true
					}
				}
			`,
			wantSummary: "Invalid mocap body",
		},
		{
			name: "mocap body with a joint in its subtree",
			hclBody: `
				body "b" {
					mocap = true
					body "child" {
						joint { type = "hinge" }
					}
				}
			`,
			wantSummary: "Invalid mocap body",
		},
		{
			name: "plane on a jointed body",
			hclBody: `
				body "b" {
					joint { type = "hinge" }
					geom "g" {
						type = "plane"
						size = [1, 1, 0.1]
					}
				}
			`,
			wantSummary: "Invalid plane placement",
		},
		{
			name: "plane declaring mass",
			hclBody: `
				body "b" {
					geom "g" {
						type = "plane"
						size = [1, 1, 0.1]
						mass = 1
					}
				}
			`,
			wantSummary: "Invalid plane inertial",
		},
		{
			name: "geom without size",
			hclBody: `
				body "b" {
					geom "g" {
						type = "box"
					}
				}
			`,
			wantSummary: "Missing geom size",
		},
		{
			name: "geom with non-positive size",
			hclBody: `
				body "b" {
					geom "g" {
						type = "sphere"
						size = [0]
					}
				}
			`,
			wantSummary: "Invalid geom size",
		},
		{
			name: "body outside its region",
			hclBody: `
				body "b" {
					pos    = [2, 0, 0]
					region = "spawn"
				}
				region "spawn" {
					min = [-1, -1, 0]
					max = [1, 1, 1]
				}
			`,
			wantSummary: "Body outside region",
		},
		{
			name: "body referencing undeclared region",
			hclBody: `
				body "b" {
					region = "missing"
				}
			`,
			wantSummary: "Unresolved region reference",
		},
		{
			name: "keyframe width mismatch",
			hclBody: `
				body "b" {
					joint {
						type = "hinge"
					}
					geom "g" {
						type = "sphere"
						size = [0.1]
						mass = 1
					}
				}
				keyframe "home" {
					qpos = [0, 0, 0]
				}
			`,
			wantSummary: "Keyframe width mismatch",
		},
		{
			name: "keyframe bound to a missing body",
			hclBody: `
				body "b" {}
				keyframe "home" {
					body = "ghost"
					qpos = [0, 0, 0, 1, 0, 0, 0]
				}
			`,
			wantSummary: "Invalid keyframe binding",
		},
		{
			name: "keyframe bound to a nested body",
			hclBody: `
				body "outer" {
					body "inner" {}
				}
				keyframe "home" {
					body = "inner"
					qpos = [0, 0, 0, 1, 0, 0, 0]
				}
			`,
			wantSummary: "Invalid keyframe binding",
		},
		{
			name: "count on a nested body",
			hclBody: `
				body "outer" {
					body "inner" {
						count = 2
					}
				}
			`,
			wantSummary: "Invalid count placement",
		},
		{
			name: "geom referencing undeclared class",
			hclBody: `
				body "b" {
					geom "g" {
						type  = "sphere"
						class = "missing"
						size  = [0.1]
					}
				}
			`,
			wantSummary: "Unresolved class reference",
		},
		{
			name: "default class inheritance cycle",
			hclBody: `
				default "a" {
					inherit = "b"
				}
				default "b" {
					inherit = "a"
				}
			`,
			wantSummary: "Invalid default class inheritance",
		},
		{
			name: "duplicate default class",
			hclBody: `
				default "a" {}
				default "a" {}
			`,
			wantSummary: "Duplicate default class",
		},
		{
			name: "duplicate geom name",
			hclBody: `
				body "a" {
					geom "g" {
						type = "sphere"
						size = [0.1]
					}
				}
				body "b" {
					geom "g" {
						type = "sphere"
						size = [0.1]
					}
				}
			`,
			wantSummary: "Duplicate geom name",
		},
		{
			name: "camera targeting undeclared body",
			hclBody: `
				body "b" {
					camera "cam" {
						mode   = "targetbody"
						target = "ghost"
					}
				}
			`,
			wantSummary: "Unresolved camera target",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			g, diags := compileHCL(t, tc.hclBody)

			// --- Assert ---
			require.True(t, diags.HasErrors(), "expected compilation to fail")
			require.Nil(t, g)
			assert.True(t, hasSummary(diags, tc.wantSummary),
				"expected a %q diagnostic, got: %s", tc.wantSummary, diags)
		})
	}
}

func TestCompile_EmptyWorkspaceGetsDefaultScene(t *testing.T) {
	t.Parallel()

	// --- Act ---
	g, diags := compileHCL(t, `body "b" {}`)

	// --- Assert ---
	require.False(t, diags.HasErrors())
	assert.Equal(t, 0.002, g.Scene.Option.Timestep)
	assert.Equal(t, "implicitfast", g.Scene.Option.Integrator)
	assert.Equal(t, 100, g.Scene.Option.Iterations)
}
