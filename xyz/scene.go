// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"sync"

	"github.com/kestrel3d/kestrel/base/ordmap"
	"github.com/kestrel3d/kestrel/gpu"
)

// Scene is the overall scene graph, with a [Group] at its root and a
// library of named meshes that the [Solid]s in the graph draw.
// Meshes in the library are released when they are removed from it.
type Scene struct {
	// Name of the scene.
	Name string

	// Root is the top-level group of the scene graph.
	Root *Group

	// Meshes holds all the meshes of the scene by name, in the order added.
	Meshes ordmap.Map[string, *Mesh]

	// Library holds groups that can be added to the scene graph
	// any number of times with [Scene.AddFromLibrary].
	Library map[string]*Group

	// Attributes are the vertex attributes meshes are bound to.
	Attributes MeshAttributes

	// RenderMu is held while rendering.
	RenderMu sync.Mutex
}

// MeshAttributes are the vertex attributes a [Mesh] is bound to.
type MeshAttributes struct {
	Coords, Normals, UVs gpu.Attribute
}

// DefaultMeshAttributes returns the standard attribute locations.
func DefaultMeshAttributes() MeshAttributes {
	return MeshAttributes{Coords: gpu.PosAttribute, Normals: gpu.NormAttribute, UVs: gpu.TexCoordAttribute}
}

// NewScene creates a new Scene to contain a 3D scene graph.
func NewScene(name string) *Scene {
	sc := &Scene{Name: name, Attributes: DefaultMeshAttributes()}
	sc.Root = &Group{}
	sc.Root.Name = "root"
	sc.Root.Scene = sc
	return sc
}

// SetMesh sets the given mesh in the library under its name,
// releasing any different mesh previously there.
func (sc *Scene) SetMesh(ms *Mesh) {
	old, replaced := sc.Meshes.Set(ms.Name, ms)
	if replaced && old != ms {
		old.Release()
	}
}

// AddMeshUnique adds the given mesh, first renaming it
// if a mesh of the same name already exists.
// This is used in loading external files, which may not
// obey this constraint.
func (sc *Scene) AddMeshUnique(ms *Mesh) {
	nm := ms.Name
	for i := sc.Meshes.Len(); sc.Meshes.Has(nm); i++ {
		nm = fmt.Sprintf("%s_%d", ms.Name, i)
	}
	ms.Name = nm
	sc.SetMesh(ms)
}

// MeshByName looks for mesh by name, returning nil if not found.
func (sc *Scene) MeshByName(nm string) *Mesh {
	ms, _ := sc.Meshes.Get(nm)
	return ms
}

// MeshByNameTry looks for mesh by name, returning error if not found.
func (sc *Scene) MeshByNameTry(nm string) (*Mesh, error) {
	ms, ok := sc.Meshes.Get(nm)
	if ok {
		return ms, nil
	}
	return nil, fmt.Errorf("Mesh named: %v not found in Scene: %v", nm, sc.Name)
}

// MeshList returns the names of the meshes in order.
func (sc *Scene) MeshList() []string {
	return sc.Meshes.Keys()
}

// DeleteMesh removes and releases the mesh of the given name,
// returning false if there is none. Solids using it draw nothing.
func (sc *Scene) DeleteMesh(nm string) bool {
	ms, ok := sc.Meshes.Delete(nm)
	if ok {
		ms.Release()
	}
	return ok
}

// ResetMeshes removes and releases all meshes.
func (sc *Scene) ResetMeshes() {
	for _, ms := range sc.Meshes.All() {
		ms.Release()
	}
	sc.Meshes.Reset()
}
