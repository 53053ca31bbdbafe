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

func quadCoords() []math32.Vector3 {
	return []math32.Vector3{
		math32.Vec3(0, 0, 0),
		math32.Vec3(1, 0, 0),
		math32.Vec3(1, 1, 0),
		math32.Vec3(0, 1, 0),
	}
}

func TestUnifyIndexBuffer(t *testing.T) {
	tm := &TriMesh{
		Coords:  quadCoords(),
		Normals: []math32.Vector3{math32.Vec3(0, 0, 1), math32.Vec3(0, 0, -1)},
		Indices: IndexBuffer{Split: []SplitFace{
			{{Coord: 0}, {Coord: 1}, {Coord: 2}},
			{{Coord: 0}, {Coord: 2}, {Coord: 3}},
			{{Coord: 0, Normal: 1}, {Coord: 2, Normal: 1}, {Coord: 1, Normal: 1}},
		}},
	}
	require.NoError(t, tm.UnifyIndexBuffer())
	assert.False(t, tm.Indices.IsSplit())
	assert.Equal(t, 3, tm.NumFaces())
	require.Len(t, tm.Coords, 7)
	require.Len(t, tm.Normals, 7)
	assert.Empty(t, tm.UVs)
	assert.Equal(t, []math32.Vector3u{
		math32.Vec3u(0, 1, 2),
		math32.Vec3u(0, 2, 3),
		math32.Vec3u(4, 5, 6),
	}, tm.Indices.Unified)
	assert.Equal(t, math32.Vec3(1, 1, 0), tm.Coords[5])
	assert.Equal(t, math32.Vec3(0, 0, -1), tm.Normals[5])
	assert.NoError(t, tm.Validate())

	// already unified
	require.NoError(t, tm.UnifyIndexBuffer())
	assert.Len(t, tm.Coords, 7)
}

func TestSplitIndexBuffer(t *testing.T) {
	faces := []math32.Vector3u{math32.Vec3u(0, 1, 2), math32.Vec3u(0, 2, 3)}
	tm := NewTriMesh(quadCoords(), faces, nil, nil)
	require.NoError(t, tm.SplitIndexBuffer(true))
	assert.True(t, tm.Indices.IsSplit())
	require.Len(t, tm.Normals, 4)
	assert.Equal(t, math32.Vec3(0, 0, 1), tm.Normals[0])
	assert.Equal(t, Corner{Coord: 2, Normal: 2, UV: 2}, tm.Indices.Split[1][1])

	require.NoError(t, tm.UnifyIndexBuffer())
	assert.Equal(t, quadCoords(), tm.Coords)
	assert.Equal(t, faces, tm.Indices.Unified)
}

func TestTriMeshValidate(t *testing.T) {
	tm := NewTriMesh(quadCoords(), []math32.Vector3u{math32.Vec3u(0, 1, 4)}, nil, nil)
	assert.ErrorIs(t, tm.Validate(), ErrMalformedMesh)

	tm = NewTriMesh(quadCoords(), nil, []math32.Vector3{{}}, nil)
	assert.ErrorIs(t, tm.Validate(), ErrMalformedMesh)

	tm = &TriMesh{
		Coords: quadCoords(),
		UVs:    []math32.Vector2{{}},
		Indices: IndexBuffer{Split: []SplitFace{
			{{Coord: 0}, {Coord: 1, UV: 1}, {Coord: 2}},
		}},
	}
	assert.ErrorIs(t, tm.Validate(), ErrMalformedMesh)
	assert.ErrorIs(t, tm.UnifyIndexBuffer(), ErrMalformedMesh)
	assert.True(t, tm.Indices.IsSplit(), "failed unify leaves mesh unchanged")
}

func TestTriMeshClone(t *testing.T) {
	tm := NewTriMesh(quadCoords(), []math32.Vector3u{math32.Vec3u(0, 1, 2)}, nil, nil)
	cp := tm.Clone()
	assert.Equal(t, tm.Coords, cp.Coords)
	assert.Equal(t, tm.Indices.Unified, cp.Indices.Unified)
	assert.Empty(t, cp.Normals)
	assert.False(t, cp.Indices.IsSplit())

	cp.Coords[0].Set(5, 5, 5)
	cp.Indices.Unified[0].Set(2, 1, 0)
	assert.Equal(t, math32.Vec3(0, 0, 0), tm.Coords[0])
	assert.Equal(t, math32.Vec3u(0, 1, 2), tm.Indices.Unified[0])
}

func TestScale(t *testing.T) {
	tm := NewTriMesh(quadCoords(), []math32.Vector3u{{0, 1, 2}}, []math32.Vector3{math32.Vec3(1, 1, 0).Normal(), {}, {}, {}}, nil)
	require.NoError(t, tm.Scale(math32.Vec3(2, 1, 3)))
	assert.Equal(t, math32.Vec3(2, 1, 0), tm.Coords[2])
	assert.True(t, tm.Normals[0].IsNear(math32.Vec3(1, 2, 0).Normal()))
	assert.True(t, tm.Normals[1].IsZero())
	assert.Error(t, tm.Scale(math32.Vec3(1, 0, 1)))
}
