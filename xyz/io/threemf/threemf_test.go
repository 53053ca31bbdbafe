// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threemf

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/kestrel3d/kestrel/gpu"
	"github.com/kestrel3d/kestrel/math32"
	"github.com/kestrel3d/kestrel/xyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testObjects() []Object {
	tri := xyz.NewTriMesh([]math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)},
		[]math32.Vector3u{math32.Vec3u(0, 1, 2)}, nil, nil)
	return []Object{{Name: "box", Mesh: xyz.NewBoxTriMesh(1, 2, 3)}, {Name: "tri", Mesh: tri}}
}

func TestEncodeDecode(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Encode(&b, testObjects()...))

	objs, err := Decode(bytes.NewReader(b.Bytes()), int64(b.Len()))
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "box", objs[0].Name)
	assert.Equal(t, 12, objs[0].Mesh.NumFaces())
	assert.Len(t, objs[0].Mesh.Coords, 24)
	assert.Empty(t, objs[0].Mesh.Normals)

	tri := objs[1].Mesh
	assert.Equal(t, []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)}, tri.Coords)
	assert.Equal(t, []math32.Vector3u{math32.Vec3u(0, 1, 2)}, tri.Indices.Unified)
}

func TestEncodeSplit(t *testing.T) {
	tm := &xyz.TriMesh{
		Coords:  []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)},
		Indices: xyz.IndexBuffer{Split: []xyz.SplitFace{{{Coord: 0}, {Coord: 1}, {Coord: 2}}}},
	}
	var b bytes.Buffer
	require.NoError(t, Encode(&b, Object{Name: "split", Mesh: tm}))
	assert.True(t, tm.Indices.IsSplit())

	objs, err := Decode(bytes.NewReader(b.Bytes()), int64(b.Len()))
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, 1, objs[0].Mesh.NumFaces())
}

func TestSaveOpenSetGroup(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "parts.3mf")
	require.NoError(t, Save(fn, testObjects()...))
	objs, err := Open(fn)
	require.NoError(t, err)

	sc := xyz.NewScene("3mf")
	gp, err := SetGroup(sc, sc.Root, fn, objs, false)
	require.NoError(t, err)
	assert.Equal(t, "parts", gp.Name)
	assert.Len(t, gp.Children, 2)
	assert.Equal(t, []string{"box", "tri"}, sc.MeshList())

	hd := gpu.NewHeadless()
	require.NoError(t, sc.Render(hd))
	assert.Equal(t, 2, hd.Stats.Draws)

	_, err = Open(filepath.Join(t.TempDir(), "missing.3mf"))
	assert.Error(t, err)
	_, err = Decode(bytes.NewReader([]byte("not a zip")), 9)
	assert.Error(t, err)
}
