// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decomp splits triangle meshes into parts and builds one
// drawable mesh per part that shares the vertex buffers of the
// source mesh, with only the faces buffer distinct.
package decomp

import (
	"fmt"

	"github.com/kestrel3d/kestrel/xyz"
)

// Decomposer splits a triangle mesh into parts. It returns the parts
// as standalone meshes, and for each part the indexes of the faces of
// tm that it was made from.
type Decomposer interface {
	Decompose(tm *xyz.TriMesh, p Params) (parts []*xyz.TriMesh, partitioning [][]int, err error)
}

// Result is the outcome of [Decompose].
type Result struct {

	// Parts are the standalone part meshes returned by the decomposer.
	Parts []*xyz.TriMesh

	// Partitioning holds the source face indexes of each part.
	Partitioning [][]int

	// Fragments are the part meshes sharing the vertex buffers
	// of the source mesh, one per part.
	Fragments []*xyz.Mesh
}

// Release releases the fragment meshes.
func (r *Result) Release() {
	for _, f := range r.Fragments {
		f.Release()
	}
	r.Fragments = nil
}

// Decompose reads back the given mesh, decomposes it with d,
// and builds the fragment meshes for the resulting partitioning.
// The mesh buffers keep their residency.
func Decompose(d Decomposer, m *xyz.Mesh, p Params) (*Result, error) {
	tm, err := m.ToTriMesh()
	if err != nil {
		return nil, fmt.Errorf("decomp.Decompose: %w", err)
	}
	if err := tm.SplitIndexBuffer(true); err != nil {
		return nil, fmt.Errorf("decomp.Decompose: %w", err)
	}
	parts, partitioning, err := d.Decompose(tm, p)
	if err != nil {
		return nil, fmt.Errorf("decomp.Decompose: %w", err)
	}
	frags, err := Fragments(m, partitioning)
	if err != nil {
		return nil, err
	}
	return &Result{Parts: parts, Partitioning: partitioning, Fragments: frags}, nil
}
