// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sdfmesh makes triangle meshes from signed distance field
// solids, using marching cubes.
package sdfmesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/kestrel3d/kestrel/math32"
	"github.com/kestrel3d/kestrel/xyz"
)

// DefaultCells is the number of marching cubes cells along the
// longest side of the bounding box when none is given.
const DefaultCells = 64

// ErrEmpty is returned when a solid has no surface at the
// requested resolution.
var ErrEmpty = errors.New("sdfmesh: empty surface")

// NewTriMesh returns a unified-index triangle mesh of the surface of s,
// sampled with the given number of cells along the longest side of its
// bounding box (DefaultCells if cells <= 0). Vertices shared by
// neighboring cells are merged, triangles that collapse to a line are
// dropped, and normals are computed from the faces.
func NewTriMesh(s sdf.SDF3, cells int) (*xyz.TriMesh, error) {
	if cells <= 0 {
		cells = DefaultCells
	}
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	bb := s.BoundingBox()
	// merge tolerance well below the cell size
	eps := bb.Size().MaxComponent() / float64(cells) * 1e-6

	verts := map[[3]int64]uint32{}
	var coords []math32.Vector3
	var faces []math32.Vector3u
	vertex := func(v v3.Vec) uint32 {
		key := [3]int64{int64(math.Round(v.X / eps)), int64(math.Round(v.Y / eps)), int64(math.Round(v.Z / eps))}
		if vi, ok := verts[key]; ok {
			return vi
		}
		vi := uint32(len(coords))
		verts[key] = vi
		coords = append(coords, math32.Vec3(float32(v.X), float32(v.Y), float32(v.Z)))
		return vi
	}
	for _, tri := range tris {
		a, b, c := vertex(tri[0]), vertex(tri[1]), vertex(tri[2])
		if a == b || b == c || a == c {
			continue
		}
		faces = append(faces, math32.Vec3u(a, b, c))
	}
	if len(faces) == 0 {
		return nil, ErrEmpty
	}
	normals, err := xyz.ComputeNormalsArray(coords, faces)
	if err != nil {
		return nil, err
	}
	return xyz.NewTriMesh(coords, faces, normals, nil), nil
}

// NewMesh returns a new host-resident mesh of the surface of s;
// see [NewTriMesh].
func NewMesh(name string, s sdf.SDF3, cells int, dynamic bool) (*xyz.Mesh, error) {
	tm, err := NewTriMesh(s, cells)
	if err != nil {
		return nil, fmt.Errorf("sdfmesh.NewMesh %q: %w", name, err)
	}
	ms, err := xyz.NewMesh(tm.Coords, tm.Indices.Unified, tm.Normals, nil, dynamic)
	if err != nil {
		return nil, err
	}
	ms.Name = name
	return ms, nil
}
