// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/kestrel3d/kestrel/base/errors"
)

// Solid is an individual element of a [Scene] drawn with a [Mesh].
// The mesh is referenced by name from the mesh library of the scene,
// so any number of solids can draw the same mesh data.
type Solid struct {
	NodeBase

	// MeshName is the name of the mesh used for rendering this solid.
	MeshName MeshName
}

func (sld *Solid) IsSolid() bool {
	return true
}

// NewSolid adds a new [Solid] with the given name to the given parent.
func NewSolid(parent Node, name string) *Solid {
	sld := &Solid{}
	sld.Name = name
	parent.AsNode().AddChild(parent, sld)
	return sld
}

// SetMeshName sets the solid to use the mesh of the given name,
// which must already be in the scene.
func (sld *Solid) SetMeshName(meshName string) error {
	if meshName == "" {
		sld.MeshName = ""
		return nil
	}
	if _, err := sld.Scene.MeshByNameTry(meshName); errors.Log(err) != nil {
		return err
	}
	sld.MeshName = MeshName(meshName)
	return nil
}

// SetMesh sets the solid to use the given mesh, adding it to the
// scene if it is not already there under its name.
func (sld *Solid) SetMesh(ms *Mesh) *Solid {
	if ms == nil {
		sld.MeshName = ""
		return sld
	}
	if sld.Scene.MeshByName(ms.Name) != ms {
		sld.Scene.SetMesh(ms)
	}
	sld.MeshName = MeshName(ms.Name)
	return sld
}

// Mesh returns the mesh of the solid from the scene, or nil.
func (sld *Solid) Mesh() *Mesh {
	if sld.MeshName == "" || sld.Scene == nil {
		return nil
	}
	return sld.Scene.MeshByName(string(sld.MeshName))
}
