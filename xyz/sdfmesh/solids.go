// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdfmesh

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/kestrel3d/kestrel/math32"
)

func vec(v math32.Vector3) v3.Vec {
	return v3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// Box returns a box of the given size centered at the origin,
// with edges rounded by the given radius.
func Box(size math32.Vector3, round float32) (sdf.SDF3, error) {
	return sdf.Box3D(vec(size), float64(round))
}

// Cylinder returns a cylinder along Z centered at the origin.
func Cylinder(height, radius float32) (sdf.SDF3, error) {
	return sdf.Cylinder3D(float64(height), float64(radius), 0)
}

// Translate returns s moved by the given offset.
func Translate(s sdf.SDF3, offset math32.Vector3) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3d(vec(offset)))
}

// Union returns the union of the given solids.
func Union(s ...sdf.SDF3) sdf.SDF3 {
	return sdf.Union3D(s...)
}
