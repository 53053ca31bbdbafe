// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "fmt"

// Vector3u is a triple of uint32 components. Meshes use it
// for the three vertex indexes of a triangle face, which
// matches the layout of a uint32 GPU index buffer.
type Vector3u struct {
	X uint32
	Y uint32
	Z uint32
}

// Vec3u returns a new [Vector3u] with the given x, y and z components.
func Vec3u(x, y, z uint32) Vector3u {
	return Vector3u{X: x, Y: y, Z: z}
}

func (v Vector3u) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}

// Set sets this vector X, Y and Z components.
func (v *Vector3u) Set(x, y, z uint32) {
	v.X = x
	v.Y = y
	v.Z = z
}

// Dim returns this vector component
func (v Vector3u) Dim(dim Dims) uint32 {
	switch dim {
	case X:
		return v.X
	case Y:
		return v.Y
	case Z:
		return v.Z
	default:
		panic("dim is out of range")
	}
}

// Max returns the largest of the three components.
func (v Vector3u) Max() uint32 {
	return max(v.X, v.Y, v.Z)
}

// AddScalar adds scalar s to each component of this vector and returns new vector.
func (v Vector3u) AddScalar(s uint32) Vector3u {
	return Vector3u{v.X + s, v.Y + s, v.Z + s}
}

// FromArray sets this vector's components from the specified array and offset
func (v *Vector3u) FromArray(array []uint32, offset int) {
	v.X = array[offset]
	v.Y = array[offset+1]
	v.Z = array[offset+2]
}

// ToArray copies this vector's components to array starting at offset.
func (v Vector3u) ToArray(array []uint32, offset int) {
	array[offset] = v.X
	array[offset+1] = v.Y
	array[offset+2] = v.Z
}
