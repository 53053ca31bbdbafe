// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdfmesh

import (
	"testing"

	"github.com/kestrel3d/kestrel/decomp"
	"github.com/kestrel3d/kestrel/gpu"
	"github.com/kestrel3d/kestrel/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox(t *testing.T) {
	box, err := Box(math32.Vec3(1, 1, 1), 0)
	require.NoError(t, err)
	tm, err := NewTriMesh(box, 20)
	require.NoError(t, err)
	require.NoError(t, tm.Validate())
	assert.Greater(t, tm.NumFaces(), 12)
	assert.Len(t, tm.Normals, len(tm.Coords))
	assert.Empty(t, tm.UVs)

	bb := math32.B3Empty()
	bb.SetFromPoints(tm.Coords)
	assert.InDelta(t, -0.5, bb.Min.X, 0.06)
	assert.InDelta(t, 0.5, bb.Max.X, 0.06)
	assert.InDelta(t, 0.5, bb.Max.Z, 0.06)
}

func TestTwoSolids(t *testing.T) {
	box, err := Box(math32.Vec3(1, 1, 1), 0.1)
	require.NoError(t, err)
	cyl, err := Cylinder(1, 0.5)
	require.NoError(t, err)
	s := Union(Translate(box, math32.Vec3(-1, 0, 0)), Translate(cyl, math32.Vec3(1, 0, 0)))

	ms, err := NewMesh("pair", s, 24, false)
	require.NoError(t, err)
	defer ms.Release()
	assert.Equal(t, "pair", ms.Name)

	res, err := decomp.Decompose(decomp.Components{}, ms, decomp.Params{})
	require.NoError(t, err)
	defer res.Release()
	require.Len(t, res.Parts, 2)
	for _, part := range res.Parts {
		bb := math32.B3Empty()
		bb.SetFromPoints(part.Coords)
		assert.True(t, bb.Max.X < 0 || bb.Min.X > 0, "part spans both solids: %v", bb)
	}

	dev := gpu.NewHeadless()
	for _, f := range res.Fragments {
		require.NoError(t, f.Bind(dev, gpu.PosAttribute, gpu.NormAttribute, gpu.TexCoordAttribute))
		require.NoError(t, dev.DrawIndexed(f.NumPoints()))
		require.NoError(t, f.Unbind())
	}
	assert.Equal(t, 2, dev.Stats.Draws)
}

func TestDefaultCells(t *testing.T) {
	box, err := Box(math32.Vec3(2, 1, 1), 0)
	require.NoError(t, err)
	tm, err := NewTriMesh(box, 0)
	require.NoError(t, err)
	assert.Greater(t, tm.NumFaces(), 0)
}
