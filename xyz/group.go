// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// Group collects individual elements in a scene but does not have
// a [Mesh] of its own.
type Group struct {
	NodeBase
}

func (gp *Group) IsSolid() bool {
	return false
}

// NewGroup adds a new [Group] with the given name to the given parent.
func NewGroup(parent Node, name string) *Group {
	gp := &Group{}
	gp.Name = name
	parent.AsNode().AddChild(parent, gp)
	return gp
}
