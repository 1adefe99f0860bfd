package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestQuatRotate(t *testing.T) {
	testCases := []struct {
		name string
		q    Quat
		in   Vec3
		want Vec3
	}{
		{
			name: "identity leaves vector unchanged",
			q:    IdentityQuat(),
			in:   Vec3{1, 2, 3},
			want: Vec3{1, 2, 3},
		},
		{
			name: "quarter turn about z maps x to y",
			q:    FromEuler(0, 0, math.Pi/2),
			in:   Vec3{1, 0, 0},
			want: Vec3{0, 1, 0},
		},
		{
			name: "half turn about x flips y and z",
			q:    FromEuler(math.Pi, 0, 0),
			in:   Vec3{0, 1, 1},
			want: Vec3{0, -1, -1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.q.Rotate(tc.in)
			assert.InDelta(t, tc.want.X, got.X, eps)
			assert.InDelta(t, tc.want.Y, got.Y, eps)
			assert.InDelta(t, tc.want.Z, got.Z, eps)
		})
	}
}

func TestQuatMulConjugate(t *testing.T) {
	q := FromEuler(0.3, -0.7, 1.1)
	id := q.Mul(q.Conjugate())

	assert.InDelta(t, 1.0, id.W, eps)
	assert.InDelta(t, 0.0, id.X, eps)
	assert.InDelta(t, 0.0, id.Y, eps)
	assert.InDelta(t, 0.0, id.Z, eps)
}

func TestNormalizedZeroQuat(t *testing.T) {
	q := Quat{}.Normalized()
	require.Equal(t, IdentityQuat(), q)
}

func TestPoseCompose(t *testing.T) {
	parent := Pose{
		Pos:  Vec3{1, 0, 0},
		Quat: FromEuler(0, 0, math.Pi/2),
	}
	local := Pose{Pos: Vec3{1, 0, 0}, Quat: IdentityQuat()}

	world := parent.Compose(local)

	// The local x offset is rotated into the parent's y axis.
	assert.InDelta(t, 1.0, world.Pos.X, eps)
	assert.InDelta(t, 1.0, world.Pos.Y, eps)
	assert.InDelta(t, 0.0, world.Pos.Z, eps)
}

func TestPoseApply(t *testing.T) {
	p := Pose{Pos: Vec3{0, 0, 1}, Quat: IdentityQuat()}
	got := p.Apply(Vec3{1, 1, 0})
	assert.Equal(t, Vec3{1, 1, 1}, got)
}
