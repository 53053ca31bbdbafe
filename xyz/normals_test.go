// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"

	"github.com/kestrel3d/kestrel/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardTol = 1.0e-6

func TestComputeNormalsTriangle(t *testing.T) {
	coords := []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)}
	faces := []math32.Vector3u{math32.Vec3u(0, 1, 2)}
	norms, err := ComputeNormalsArray(coords, faces)
	require.NoError(t, err)
	require.Len(t, norms, 3)
	for _, n := range norms {
		assert.Equal(t, math32.Vec3(0, 0, 1), n)
	}
}

func TestComputeNormalsNoFaces(t *testing.T) {
	coords := make([]math32.Vector3, 100)
	for i := range coords {
		coords[i] = math32.Vec3(float32(i), 1, 2)
	}
	norms, err := ComputeNormalsArray(coords, nil)
	require.NoError(t, err)
	require.Len(t, norms, 100)
	for _, n := range norms {
		assert.True(t, n.IsZero())
	}
}

func TestComputeNormalsDegenerate(t *testing.T) {
	coords := []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(1, 1, 1), math32.Vec3(2, 2, 2)}
	norms, err := ComputeNormalsArray(coords, []math32.Vector3u{math32.Vec3u(0, 1, 2)})
	require.NoError(t, err)
	for _, n := range norms {
		assert.True(t, n.IsZero())
	}

	// repeated index
	norms, err = ComputeNormalsArray(coords, []math32.Vector3u{math32.Vec3u(1, 1, 2)})
	require.NoError(t, err)
	for _, n := range norms {
		assert.True(t, n.IsZero())
	}
}

func TestComputeNormalsTiny(t *testing.T) {
	coords := []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(1e-12, 0, 0), math32.Vec3(0, 1e-12, 0)}
	norms, err := ComputeNormalsArray(coords, []math32.Vector3u{math32.Vec3u(0, 1, 2)})
	require.NoError(t, err)
	for _, n := range norms {
		assert.InDelta(t, 1, n.Length(), standardTol)
		assert.Equal(t, math32.Vec3(0, 0, 1), n)
	}
}

func TestComputeNormalsUnit(t *testing.T) {
	tris := [][3]math32.Vector3{
		{math32.Vec3(0, 0, 0), math32.Vec3(3, 0, 0), math32.Vec3(0, 5, 0)},
		{math32.Vec3(1, 2, 3), math32.Vec3(-4, 0.5, 2), math32.Vec3(7, 7, -1)},
		{math32.Vec3(0.001, 0, 0), math32.Vec3(0, 0.001, 0), math32.Vec3(0, 0, 0.001)},
		{math32.Vec3(100, -20, 3), math32.Vec3(-50, 60, 70), math32.Vec3(2, 2, 2)},
	}
	for _, tri := range tris {
		norms, err := ComputeNormalsArray(tri[:], []math32.Vector3u{math32.Vec3u(0, 1, 2)})
		require.NoError(t, err)
		for _, n := range norms {
			assert.InDelta(t, 1, n.Length(), standardTol)
			assert.Equal(t, norms[0], n)
		}
	}
}

func TestComputeNormalsAverage(t *testing.T) {
	coords := []math32.Vector3{
		math32.Vec3(0, 0, 0),
		math32.Vec3(1, 0, 0),
		math32.Vec3(0, 1, 0),
		math32.Vec3(0, 0, 1),
	}
	faces := []math32.Vector3u{
		math32.Vec3u(0, 1, 2), // +Z
		math32.Vec3u(0, 3, 1), // +Y
	}
	norms, err := ComputeNormalsArray(coords, faces)
	require.NoError(t, err)
	assert.True(t, norms[0].IsNear(math32.Vec3(0, 0.5, 0.5)))
	assert.True(t, norms[1].IsNear(math32.Vec3(0, 0.5, 0.5)))
	assert.Equal(t, math32.Vec3(0, 0, 1), norms[2])
	assert.Equal(t, math32.Vec3(0, 1, 0), norms[3])
}

func TestComputeNormalsReuse(t *testing.T) {
	coords := []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)}
	old := []math32.Vector3{math32.Vec3(9, 9, 9), math32.Vec3(9, 9, 9), math32.Vec3(9, 9, 9), math32.Vec3(9, 9, 9)}
	norms, err := ComputeNormals(coords, nil, old)
	require.NoError(t, err)
	assert.Len(t, norms, 3)
	for _, n := range norms {
		assert.True(t, n.IsZero())
	}
}

func TestComputeNormalsMalformed(t *testing.T) {
	coords := []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)}
	_, err := ComputeNormalsArray(coords, []math32.Vector3u{math32.Vec3u(0, 1, 3)})
	assert.ErrorIs(t, err, ErrMalformedMesh)
	_, err = ComputeNormalsArray(nil, []math32.Vector3u{math32.Vec3u(0, 0, 0)})
	assert.ErrorIs(t, err, ErrMalformedMesh)
}
