package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest_StableAcrossCompiles(t *testing.T) {
	t.Parallel()

	// --- Act ---
	first, diags := compileHCL(t, stackSceneHCL)
	require.False(t, diags.HasErrors())
	second, diags := compileHCL(t, stackSceneHCL)
	require.False(t, diags.HasErrors())

	// --- Assert ---
	assert.Equal(t, first.Digest(), second.Digest(),
		"recompiling the identical scene must reproduce the fingerprint")
}

func TestDigest_SensitiveToPhysicalChange(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The same scene with one block mass changed.
	perturbed := strings.Replace(stackSceneHCL, "mass  = 0.5", "mass  = 0.6", 1)
	require.NotEqual(t, stackSceneHCL, perturbed)

	// --- Act ---
	base, diags := compileHCL(t, stackSceneHCL)
	require.False(t, diags.HasErrors())
	changed, diags := compileHCL(t, perturbed)
	require.False(t, diags.HasErrors())

	// --- Assert ---
	assert.NotEqual(t, base.Digest(), changed.Digest())
}

func TestDigest_InsensitiveToCosmeticLayout(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Reformatting whitespace must not move the fingerprint.
	reformatted := strings.ReplaceAll(stackSceneHCL, "\t", "    ")

	// --- Act ---
	base, diags := compileHCL(t, stackSceneHCL)
	require.False(t, diags.HasErrors())
	moved, diags := compileHCL(t, reformatted)
	require.False(t, diags.HasErrors())

	// --- Assert ---
	assert.Equal(t, base.Digest(), moved.Digest())
}
