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

func TestBoxTriMesh(t *testing.T) {
	tm := NewBoxTriMesh(1, 2, 3)
	require.NoError(t, tm.Validate())
	assert.Len(t, tm.Coords, 24)
	assert.Equal(t, 12, tm.NumFaces())
	for _, f := range tm.Indices.Unified {
		a, b, c := tm.Coords[f.X], tm.Coords[f.Y], tm.Coords[f.Z]
		fn := math32.Normal(a, b, c)
		assert.True(t, fn.IsNear(tm.Normals[f.X]), "stored normal matches winding")
		mid := a.Add(b).Add(c).DivScalar(3)
		assert.Greater(t, fn.Dot(mid), float32(0), "normals point outward")
	}
	var bb math32.Box3
	bb.SetFromPoints(tm.Coords)
	assert.Equal(t, math32.B3(-0.5, -1, -1.5, 0.5, 1, 1.5), bb)
}

func TestPlaneTriMesh(t *testing.T) {
	tm := NewPlaneTriMesh(2, 4, 2, 3)
	require.NoError(t, tm.Validate())
	assert.Len(t, tm.Coords, 12)
	assert.Equal(t, 12, tm.NumFaces())
	for _, n := range tm.Normals {
		assert.Equal(t, math32.Vec3(0, 0, 1), n)
	}
	norms, err := ComputeNormalsArray(tm.Coords, tm.Indices.Unified)
	require.NoError(t, err)
	for _, n := range norms {
		assert.True(t, n.IsNear(math32.Vec3(0, 0, 1)))
	}
	assert.Equal(t, math32.Vec2(0, 1), tm.UVs[0])
	assert.Equal(t, math32.Vec2(1, 0), tm.UVs[11])

	tm = NewPlaneTriMesh(1, 1, 0, -1)
	assert.Len(t, tm.Coords, 4)
	assert.Equal(t, 2, tm.NumFaces())
}
