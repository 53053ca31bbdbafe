// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kestrel3d/kestrel/gpu"
	"github.com/kestrel3d/kestrel/math32"
	"github.com/kestrel3d/kestrel/xyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoPieces is a triangle and a separate quad.
func twoPieces(t *testing.T) *xyz.Mesh {
	coords := []math32.Vector3{
		math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0),
		math32.Vec3(2, 0, 0), math32.Vec3(3, 0, 0), math32.Vec3(3, 1, 0), math32.Vec3(2, 1, 0),
	}
	faces := []math32.Vector3u{math32.Vec3u(3, 4, 5), math32.Vec3u(0, 1, 2), math32.Vec3u(3, 5, 6)}
	ms, err := xyz.NewMesh(coords, faces, nil, nil, false)
	require.NoError(t, err)
	ms.Name = "pieces"
	return ms
}

func TestComponents(t *testing.T) {
	ms := twoPieces(t)
	tm, err := ms.ToTriMesh()
	require.NoError(t, err)

	parts, partitioning, err := Components{}.Decompose(tm, Params{})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 2}, {1}}, partitioning)
	require.Len(t, parts, 2)

	quad := parts[0]
	assert.False(t, quad.Indices.IsSplit())
	assert.Equal(t, []math32.Vector3{math32.Vec3(2, 0, 0), math32.Vec3(3, 0, 0), math32.Vec3(3, 1, 0), math32.Vec3(2, 1, 0)}, quad.Coords)
	assert.Equal(t, []math32.Vector3u{math32.Vec3u(0, 1, 2), math32.Vec3u(0, 2, 3)}, quad.Indices.Unified)
	assert.Len(t, quad.Normals, 4)
	assert.Len(t, parts[1].Coords, 3)

	// the input is not modified
	assert.False(t, tm.Indices.IsSplit())
	assert.Len(t, tm.Coords, 7)

	bad := xyz.NewTriMesh(tm.Coords, []math32.Vector3u{math32.Vec3u(0, 1, 9)}, nil, nil)
	_, _, err = Components{}.Decompose(bad, Params{})
	assert.ErrorIs(t, err, xyz.ErrMalformedMesh)
}

func TestComponentsChain(t *testing.T) {
	// faces joined only through a later face still end up in one part
	coords := make([]math32.Vector3, 9)
	faces := []math32.Vector3u{math32.Vec3u(0, 1, 2), math32.Vec3u(6, 7, 8), math32.Vec3u(3, 4, 5), math32.Vec3u(2, 3, 6)}
	_, partitioning, err := Components{}.Decompose(xyz.NewTriMesh(coords, faces, nil, nil), Params{})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, partitioning)
}

func TestDecompose(t *testing.T) {
	ms := twoPieces(t)
	res, err := Decompose(Components{}, ms, Params{})
	require.NoError(t, err)
	require.Len(t, res.Fragments, 2)
	assert.Len(t, res.Parts, 2)
	assert.Equal(t, "pieces_0", res.Fragments[0].Name)
	assert.Equal(t, 6, res.Fragments[0].NumPoints())
	assert.Equal(t, 3, res.Fragments[1].NumPoints())

	faces, ok := res.Fragments[0].Faces().ToOwned()
	require.True(t, ok)
	assert.Equal(t, []math32.Vector3u{math32.Vec3u(3, 4, 5), math32.Vec3u(3, 5, 6)}, faces)

	for _, f := range res.Fragments {
		assert.Same(t, ms.Coords(), f.Coords())
		assert.Same(t, ms.Normals(), f.Normals())
		assert.Same(t, ms.UVs(), f.UVs())
	}
	assert.Equal(t, 3, ms.Coords().Refs())
	assert.Equal(t, 1, ms.Faces().Refs())

	dev := gpu.NewHeadless()
	for _, f := range res.Fragments {
		require.NoError(t, f.Bind(dev, gpu.PosAttribute, gpu.NormAttribute, gpu.TexCoordAttribute))
		require.NoError(t, dev.DrawIndexed(f.NumPoints()))
		require.NoError(t, f.Unbind())
	}
	// shared coords, normals, uvs are uploaded once
	assert.Equal(t, 5, dev.Stats.Creates)
	assert.Equal(t, 2, dev.Stats.Draws)

	res.Release()
	assert.Equal(t, 1, ms.Coords().Refs())
	assert.Equal(t, 3, dev.Live())
	ms.Release()
}

func TestFragmentsDeviceOnly(t *testing.T) {
	ms := twoPieces(t)
	dev := gpu.NewHeadless()
	require.NoError(t, ms.Bind(dev, gpu.PosAttribute, gpu.NormAttribute, gpu.TexCoordAttribute))
	require.NoError(t, ms.Unbind())
	assert.True(t, ms.Faces().UnloadFromRAM())

	frags, err := Fragments(ms, [][]int{{1}})
	require.NoError(t, err)
	require.Len(t, frags, 1)
	faces, ok := frags[0].Faces().ToOwned()
	require.True(t, ok)
	assert.Equal(t, []math32.Vector3u{math32.Vec3u(0, 1, 2)}, faces)
	assert.Equal(t, gpu.OnDevice, ms.Faces().Residency())
	frags[0].Release()

	_, err = Fragments(ms, [][]int{{0, 3}})
	assert.ErrorIs(t, err, xyz.ErrMalformedMesh)
	assert.Equal(t, 1, ms.Coords().Refs())
}

func TestParams(t *testing.T) {
	p := &Params{}
	p.Defaults()
	assert.Equal(t, Params{Clusters: 1, Concavity: 0.01, Scale: 1}, *p)

	file := filepath.Join(t.TempDir(), "decomp.toml")
	require.NoError(t, os.WriteFile(file, []byte("Clusters = 8\n"), 0666))
	p, err := OpenParams(file)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Clusters)
	assert.Equal(t, float32(1), p.Scale)

	_, err = OpenParams(filepath.Join(t.TempDir(), "none.toml"))
	assert.Error(t, err)
}
