// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// Node is a node in a [Scene] graph: a [Group] or a [Solid].
type Node interface {
	// AsNode returns the [NodeBase] of the node.
	AsNode() *NodeBase

	// IsSolid returns true if the node draws a mesh.
	IsSolid() bool
}

// NodeBase is the common part of all scene graph nodes.
type NodeBase struct {
	// Name of the node, unique among its siblings by convention only.
	Name string

	// Invisible nodes are skipped along with all their children
	// when rendering.
	Invisible bool

	// Scene is the scene the node belongs to.
	Scene *Scene

	// Children are the child nodes, rendered in order.
	Children []Node

	parent Node
}

func (nb *NodeBase) AsNode() *NodeBase {
	return nb
}

// Parent returns the parent node, or nil for the scene root.
func (nb *NodeBase) Parent() Node {
	return nb.parent
}

// AddChild adds the given node as the last child of this node,
// with the same scene.
func (nb *NodeBase) AddChild(parent, kid Node) {
	kb := kid.AsNode()
	kb.parent = parent
	kb.Scene = nb.Scene
	nb.Children = append(nb.Children, kid)
}

// ChildByName returns the first child with the given name, or nil.
func (nb *NodeBase) ChildByName(name string) Node {
	for _, k := range nb.Children {
		if k.AsNode().Name == name {
			return k
		}
	}
	return nil
}

// Values returned by a [WalkPre] function to continue or stop
// descending into the children of a node.
const (
	Continue = true
	Break    = false
)

// WalkPre calls fun on the given node and then on its children,
// depth first. If fun returns [Break], the children of that node
// are skipped.
func WalkPre(n Node, fun func(n Node) bool) {
	if !fun(n) {
		return
	}
	for _, k := range n.AsNode().Children {
		WalkPre(k, fun)
	}
}
