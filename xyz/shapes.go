// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/kestrel3d/kestrel/math32"
)

// NewBoxTriMesh returns a box (cuboid) of the given size centered
// on the origin, with separate vertices for each side so that
// normals are flat, and uvs covering each side.
func NewBoxTriMesh(width, height, depth float32) *TriMesh {
	tm := &TriMesh{}
	hx, hy, hz := width/2, height/2, depth/2
	x := math32.Vec3(width, 0, 0)
	y := math32.Vec3(0, height, 0)
	z := math32.Vec3(0, 0, depth)
	addGrid(tm, math32.Vec3(-hx, -hy, -hz), y, x, 1, 1) // nz
	addGrid(tm, math32.Vec3(-hx, -hy, -hz), x, z, 1, 1) // ny
	addGrid(tm, math32.Vec3(hx, -hy, -hz), y, z, 1, 1)  // px
	addGrid(tm, math32.Vec3(-hx, -hy, -hz), z, y, 1, 1) // nx
	addGrid(tm, math32.Vec3(-hx, hy, -hz), z, x, 1, 1)  // py
	addGrid(tm, math32.Vec3(-hx, -hy, hz), x, y, 1, 1)  // pz
	return tm
}

// NewPlaneTriMesh returns a plane of the given size in the X-Y plane,
// centered on the origin and facing +Z, divided into the given number
// of segments along each axis (at least 1).
func NewPlaneTriMesh(width, height float32, segsX, segsY int) *TriMesh {
	tm := &TriMesh{}
	addGrid(tm, math32.Vec3(-width/2, -height/2, 0), math32.Vec3(width, 0, 0), math32.Vec3(0, height, 0), segsX, segsY)
	return tm
}

// addGrid adds a flat rectangle with one corner at origin spanned by
// the u and v edges, facing u x v, as a grid of segsU by segsV
// quads of two counter-clockwise triangles each.
func addGrid(tm *TriMesh, origin, u, v math32.Vector3, segsU, segsV int) {
	segsU = max(segsU, 1)
	segsV = max(segsV, 1)
	norm := u.Cross(v).Normal()
	start := uint32(len(tm.Coords))
	for j := 0; j <= segsV; j++ {
		t := float32(j) / float32(segsV)
		for i := 0; i <= segsU; i++ {
			s := float32(i) / float32(segsU)
			tm.Coords = append(tm.Coords, origin.Add(u.MulScalar(s)).Add(v.MulScalar(t)))
			tm.Normals = append(tm.Normals, norm)
			tm.UVs = append(tm.UVs, math32.Vec2(s, 1-t))
		}
	}
	row := uint32(segsU + 1)
	for j := uint32(0); j < uint32(segsV); j++ {
		for i := uint32(0); i < uint32(segsU); i++ {
			a := start + j*row + i
			b := a + 1
			c := b + row
			d := a + row
			tm.Indices.Unified = append(tm.Indices.Unified, math32.Vec3u(a, b, c), math32.Vec3u(a, c, d))
		}
	}
}
