// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"log/slog"

	"github.com/kestrel3d/kestrel/base/errors"
	"github.com/kestrel3d/kestrel/gpu"
	"github.com/kestrel3d/kestrel/math32"
)

// Render draws all visible solids of the scene on the given device,
// in depth-first order. Each solid binds its mesh, draws it and
// unbinds it. Errors for a solid are logged and rendering continues
// with the next one; all errors are returned joined.
func (sc *Scene) Render(dev gpu.Device) error {
	sc.RenderMu.Lock()
	defer sc.RenderMu.Unlock()
	var errs []error
	for _, sld := range sc.visibleSolids() {
		ms := sld.Mesh()
		if ms == nil {
			continue
		}
		if gpu.Debug {
			slog.Debug("xyz render", "solid", sld.Name, "mesh", ms.Name)
		}
		if err := sc.renderMesh(dev, ms); errors.Log(err) != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (sc *Scene) renderMesh(dev gpu.Device, ms *Mesh) error {
	at := &sc.Attributes
	if err := ms.Bind(dev, at.Coords, at.Normals, at.UVs); err != nil {
		return errors.Join(err, ms.Unbind())
	}
	err := dev.DrawIndexed(ms.NumPoints())
	return errors.Join(err, ms.Unbind())
}

// visibleSolids returns the solids under the root, in order,
// skipping invisible nodes and their children.
func (sc *Scene) visibleSolids() []*Solid {
	var sls []*Solid
	WalkPre(sc.Root, func(n Node) bool {
		if n.AsNode().Invisible {
			return Break
		}
		if sld, ok := n.(*Solid); ok {
			sls = append(sls, sld)
		}
		return Continue
	})
	return sls
}

// BBox returns the bounding box of the host-resident meshes of
// all visible solids.
func (sc *Scene) BBox() math32.Box3 {
	bb := math32.B3Empty()
	for _, sld := range sc.visibleSolids() {
		ms := sld.Mesh()
		if ms == nil {
			continue
		}
		mb, err := ms.BBox()
		if err != nil {
			continue
		}
		bb.ExpandByBox(mb)
	}
	return bb
}
