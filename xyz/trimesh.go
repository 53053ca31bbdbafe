// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/kestrel3d/kestrel/base/errors"
	"github.com/kestrel3d/kestrel/math32"
)

// Corner is one corner of a [SplitFace], with separate indexes
// into the coords, normals and uvs of a [TriMesh].
// Normal and UV are ignored when the mesh has no normals or uvs.
type Corner struct {
	Coord, Normal, UV uint32
}

// SplitFace is a triangle whose corners index each attribute separately,
// as produced by geometry file formats such as OBJ.
type SplitFace [3]Corner

// IndexBuffer holds the faces of a [TriMesh], either Unified,
// with one index per corner shared by all attributes,
// or Split, with one index per attribute per corner.
// Split is used when it is non-empty.
type IndexBuffer struct {
	Unified []math32.Vector3u
	Split   []SplitFace
}

// IsSplit returns whether the faces are stored per attribute.
func (ib *IndexBuffer) IsSplit() bool {
	return len(ib.Split) > 0
}

// Len returns the number of faces.
func (ib *IndexBuffer) Len() int {
	if ib.IsSplit() {
		return len(ib.Split)
	}
	return len(ib.Unified)
}

// TriMesh is a plain host-side description of a triangle mesh,
// as exchanged with geometry loaders and decomposition.
// Normals and UVs are optional: empty means absent.
type TriMesh struct {
	Coords  []math32.Vector3
	Normals []math32.Vector3
	UVs     []math32.Vector2
	Indices IndexBuffer
}

// NewTriMesh returns a new unified-index [TriMesh] on the given slices,
// which are not copied.
func NewTriMesh(coords []math32.Vector3, faces []math32.Vector3u, normals []math32.Vector3, uvs []math32.Vector2) *TriMesh {
	return &TriMesh{Coords: coords, Normals: normals, UVs: uvs, Indices: IndexBuffer{Unified: faces}}
}

// NumFaces returns the number of triangles.
func (tm *TriMesh) NumFaces() int {
	return tm.Indices.Len()
}

// Clone returns a deep copy of the mesh.
func (tm *TriMesh) Clone() *TriMesh {
	cp := &TriMesh{}
	errors.Log(copier.CopyWithOption(cp, tm, copier.Option{DeepCopy: true}))
	return cp
}

// Validate checks that every face index is in range for the
// attribute it refers to, and that per-vertex attributes of a
// unified mesh have one entry per coordinate. It returns an
// error wrapping [ErrMalformedMesh] otherwise.
func (tm *TriMesh) Validate() error {
	nc := uint32(len(tm.Coords))
	if !tm.Indices.IsSplit() {
		if len(tm.Normals) > 0 && len(tm.Normals) != len(tm.Coords) {
			return fmt.Errorf("%w: %d normals for %d coords", ErrMalformedMesh, len(tm.Normals), len(tm.Coords))
		}
		if len(tm.UVs) > 0 && len(tm.UVs) != len(tm.Coords) {
			return fmt.Errorf("%w: %d uvs for %d coords", ErrMalformedMesh, len(tm.UVs), len(tm.Coords))
		}
		return validateFaces(tm.Indices.Unified, len(tm.Coords))
	}
	nn, nu := uint32(len(tm.Normals)), uint32(len(tm.UVs))
	for fi, f := range tm.Indices.Split {
		for _, c := range f {
			switch {
			case c.Coord >= nc:
				return fmt.Errorf("%w: face %d coord index %d >= %d", ErrMalformedMesh, fi, c.Coord, nc)
			case nn > 0 && c.Normal >= nn:
				return fmt.Errorf("%w: face %d normal index %d >= %d", ErrMalformedMesh, fi, c.Normal, nn)
			case nu > 0 && c.UV >= nu:
				return fmt.Errorf("%w: face %d uv index %d >= %d", ErrMalformedMesh, fi, c.UV, nu)
			}
		}
	}
	return nil
}

// validateFaces checks that every index of faces is below n.
func validateFaces(faces []math32.Vector3u, n int) error {
	for fi, f := range faces {
		if int64(f.Max()) >= int64(n) {
			return fmt.Errorf("%w: face %d %v references vertex >= %d", ErrMalformedMesh, fi, f, n)
		}
	}
	return nil
}

// UnifyIndexBuffer converts a split index buffer into a unified one,
// creating one vertex per distinct combination of coord, normal and uv
// indexes. It does nothing if the buffer is already unified.
func (tm *TriMesh) UnifyIndexBuffer() error {
	if !tm.Indices.IsSplit() {
		return nil
	}
	if err := tm.Validate(); err != nil {
		return err
	}
	hasNorm, hasUV := len(tm.Normals) > 0, len(tm.UVs) > 0
	verts := make(map[Corner]uint32, len(tm.Coords))
	coords := make([]math32.Vector3, 0, len(tm.Coords))
	var normals []math32.Vector3
	var uvs []math32.Vector2
	if hasNorm {
		normals = make([]math32.Vector3, 0, len(tm.Coords))
	}
	if hasUV {
		uvs = make([]math32.Vector2, 0, len(tm.Coords))
	}
	faces := make([]math32.Vector3u, len(tm.Indices.Split))
	for fi, f := range tm.Indices.Split {
		var idx [3]uint32
		for ci, c := range f {
			if !hasNorm {
				c.Normal = 0
			}
			if !hasUV {
				c.UV = 0
			}
			vi, ok := verts[c]
			if !ok {
				vi = uint32(len(coords))
				verts[c] = vi
				coords = append(coords, tm.Coords[c.Coord])
				if hasNorm {
					normals = append(normals, tm.Normals[c.Normal])
				}
				if hasUV {
					uvs = append(uvs, tm.UVs[c.UV])
				}
			}
			idx[ci] = vi
		}
		faces[fi] = math32.Vec3u(idx[0], idx[1], idx[2])
	}
	tm.Coords, tm.Normals, tm.UVs = coords, normals, uvs
	tm.Indices = IndexBuffer{Unified: faces}
	return nil
}

// SplitIndexBuffer converts a unified index buffer into a split one
// in which each attribute index equals the coord index.
// If recomputeNormals is set, the normals are first recomputed
// from the faces.
func (tm *TriMesh) SplitIndexBuffer(recomputeNormals bool) error {
	if tm.Indices.IsSplit() {
		return nil
	}
	if err := tm.Validate(); err != nil {
		return err
	}
	if recomputeNormals {
		norms, err := ComputeNormalsArray(tm.Coords, tm.Indices.Unified)
		if err != nil {
			return err
		}
		tm.Normals = norms
	}
	split := make([]SplitFace, len(tm.Indices.Unified))
	for fi, f := range tm.Indices.Unified {
		for d := math32.X; d <= math32.Z; d++ {
			vi := f.Dim(d)
			split[fi][d] = Corner{Coord: vi, Normal: vi, UV: vi}
		}
	}
	tm.Indices = IndexBuffer{Split: split}
	return nil
}

// Scale multiplies every coordinate by the given per-axis factors.
// Normals are transformed by the inverse scale and renormalized,
// so that they stay perpendicular to the scaled surface.
// All factors must be non-zero.
func (tm *TriMesh) Scale(s math32.Vector3) error {
	if s.X == 0 || s.Y == 0 || s.Z == 0 {
		return fmt.Errorf("TriMesh.Scale: zero scale factor %v", s)
	}
	for i, c := range tm.Coords {
		tm.Coords[i] = c.Mul(s)
	}
	for i, n := range tm.Normals {
		tm.Normals[i] = n.Div(s).Normal()
	}
	return nil
}
