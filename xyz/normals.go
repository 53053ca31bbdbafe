// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"github.com/kestrel3d/kestrel/base/slicesx"
	"github.com/kestrel3d/kestrel/math32"
)

// ComputeNormals computes per-vertex normals as the mean of the unit
// normals of the faces adjacent to each vertex, writing them into normals,
// which is resized to len(coords) and returned. Degenerate faces add
// a zero normal, and vertices without faces get a zero normal.
// A face index out of range returns an error wrapping [ErrMalformedMesh]
// and leaves normals unspecified.
func ComputeNormals(coords []math32.Vector3, faces []math32.Vector3u, normals []math32.Vector3) ([]math32.Vector3, error) {
	n := len(coords)
	normals = slicesx.SetLength(normals, n)
	slicesx.Zero(normals)
	if err := validateFaces(faces, n); err != nil {
		return normals, fmt.Errorf("ComputeNormals: %w", err)
	}
	counts := make([]int32, n)
	for _, f := range faces {
		nv := math32.Normal(coords[f.X], coords[f.Y], coords[f.Z])
		for _, vi := range [3]uint32{f.X, f.Y, f.Z} {
			normals[vi].SetAdd(nv)
			counts[vi]++
		}
	}
	for i, c := range counts {
		if c > 0 {
			normals[i].SetDivScalar(float32(c))
		}
	}
	return normals, nil
}

// ComputeNormalsArray returns a new slice of normals; see [ComputeNormals].
func ComputeNormalsArray(coords []math32.Vector3, faces []math32.Vector3u) ([]math32.Vector3, error) {
	return ComputeNormals(coords, faces, nil)
}
