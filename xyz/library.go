// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
)

// AddToLibrary adds given Group to library, using group's name as unique key
// in Library map.
func (sc *Scene) AddToLibrary(gp *Group) {
	if sc.Library == nil {
		sc.Library = make(map[string]*Group)
	}
	sc.Library[gp.Name] = gp
	WalkPre(gp, func(n Node) bool {
		n.AsNode().Scene = sc
		return Continue
	})
}

// NewInLibrary makes a new Group in library, using given name as unique key
// in Library map. The group is not part of the scene graph: add copies
// of it with [Scene.AddFromLibrary].
func (sc *Scene) NewInLibrary(nm string) *Group {
	gp := &Group{}
	gp.Name = nm
	sc.AddToLibrary(gp)
	return gp
}

// AddFromLibrary adds a copy of named item in the Library under given parent
// in the scenegraph. The copied solids draw the same meshes as the
// originals, without copying any mesh data. Returns an error if item not found.
func (sc *Scene) AddFromLibrary(nm string, parent Node) (*Group, error) {
	gp, ok := sc.Library[nm]
	if !ok {
		return nil, fmt.Errorf("Scene AddFromLibrary: Library item: %s not found", nm)
	}
	nwgp := cloneNode(gp).(*Group)
	parent.AsNode().AddChild(parent, nwgp)
	WalkPre(nwgp, func(n Node) bool {
		n.AsNode().Scene = sc
		return Continue
	})
	return nwgp, nil
}

// cloneNode returns a copy of the subtree at n with no parent.
func cloneNode(n Node) Node {
	var cp Node
	switch nd := n.(type) {
	case *Solid:
		cp = &Solid{MeshName: nd.MeshName}
	default:
		cp = &Group{}
	}
	nb, cb := n.AsNode(), cp.AsNode()
	cb.Name = nb.Name
	cb.Invisible = nb.Invisible
	for _, k := range nb.Children {
		cb.AddChild(cp, cloneNode(k))
	}
	return cp
}
