// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"fmt"

	"github.com/kestrel3d/kestrel/gpu"
	"github.com/kestrel3d/kestrel/math32"
	"github.com/kestrel3d/kestrel/xyz"
)

// Fragments returns one mesh per part of the given partitioning,
// each made of the listed faces of m. The fragments share the coords,
// normals and uvs buffers of m, taking a new reference on each, and
// have their own static faces buffer. Fragments are named after m
// with the part number appended. Release each fragment when done.
func Fragments(m *xyz.Mesh, partitioning [][]int) ([]*xyz.Mesh, error) {
	faces, ok := m.Faces().ToOwned()
	if !ok {
		tm, err := m.ToTriMesh()
		if err != nil {
			return nil, fmt.Errorf("decomp.Fragments: %w", err)
		}
		faces = tm.Indices.Unified
	}
	parts := make([][]math32.Vector3u, len(partitioning))
	for pi, part := range partitioning {
		pf := make([]math32.Vector3u, len(part))
		for i, fi := range part {
			if fi < 0 || fi >= len(faces) {
				return nil, fmt.Errorf("decomp.Fragments: %w: part %d face %d out of range [0, %d)", xyz.ErrMalformedMesh, pi, fi, len(faces))
			}
			pf[i] = faces[fi]
		}
		parts[pi] = pf
	}
	frags := make([]*xyz.Mesh, len(parts))
	for pi, pf := range parts {
		fb := gpu.NewShared(gpu.NewBuffer(pf, gpu.IndexBuffer, gpu.Static).SetName("faces"))
		fm, err := xyz.NewMeshWithGPUVectors(m.Coords(), fb, m.Normals(), m.UVs())
		if err != nil {
			for _, f := range frags[:pi] {
				f.Release()
			}
			return nil, fmt.Errorf("decomp.Fragments part %d: %w", pi, err)
		}
		m.Coords().Ref()
		m.Normals().Ref()
		m.UVs().Ref()
		fm.Name = fmt.Sprintf("%s_%d", m.Name, pi)
		frags[pi] = fm
	}
	return frags, nil
}
