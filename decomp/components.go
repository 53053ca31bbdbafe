// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"fmt"

	"github.com/kestrel3d/kestrel/xyz"
)

// Components is a [Decomposer] that splits a mesh into its
// vertex-connected components: two faces are in the same part
// if they share a coordinate index, directly or through other faces.
// Clusters and Concavity are not used. Parts are in order of their
// first face, and each part has only the vertices its faces use.
type Components struct{}

func (Components) Decompose(tm *xyz.TriMesh, p Params) ([]*xyz.TriMesh, [][]int, error) {
	if err := tm.Validate(); err != nil {
		return nil, nil, fmt.Errorf("Components: %w", err)
	}
	src := tm
	if !tm.Indices.IsSplit() {
		src = tm.Clone()
		if err := src.SplitIndexBuffer(false); err != nil {
			return nil, nil, err
		}
	}
	faces := src.Indices.Split
	uf := newUnionFind(len(src.Coords))
	for _, f := range faces {
		uf.union(f[0].Coord, f[1].Coord)
		uf.union(f[0].Coord, f[2].Coord)
	}

	partOf := map[uint32]int{}
	var partitioning [][]int
	for fi, f := range faces {
		root := uf.find(f[0].Coord)
		pi, ok := partOf[root]
		if !ok {
			pi = len(partitioning)
			partOf[root] = pi
			partitioning = append(partitioning, nil)
		}
		partitioning[pi] = append(partitioning[pi], fi)
	}

	parts := make([]*xyz.TriMesh, len(partitioning))
	for pi, fis := range partitioning {
		split := make([]xyz.SplitFace, len(fis))
		for i, fi := range fis {
			split[i] = faces[fi]
		}
		part := &xyz.TriMesh{Coords: src.Coords, Normals: src.Normals, UVs: src.UVs, Indices: xyz.IndexBuffer{Split: split}}
		if err := part.UnifyIndexBuffer(); err != nil {
			return nil, nil, err
		}
		parts[pi] = part
	}
	return parts, partitioning, nil
}

type unionFind []uint32

func newUnionFind(n int) unionFind {
	uf := make(unionFind, n)
	for i := range uf {
		uf[i] = uint32(i)
	}
	return uf
}

func (uf unionFind) find(i uint32) uint32 {
	for uf[i] != i {
		uf[i] = uf[uf[i]]
		i = uf[i]
	}
	return i
}

func (uf unionFind) union(a, b uint32) {
	ra, rb := uf.find(a), uf.find(b)
	if ra < rb {
		uf[rb] = ra
	} else if rb < ra {
		uf[ra] = rb
	}
}
