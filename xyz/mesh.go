// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"github.com/kestrel3d/kestrel/base/errors"
	"github.com/kestrel3d/kestrel/gpu"
	"github.com/kestrel3d/kestrel/math32"
)

var (
	// ErrMalformedMesh is returned when a face references a vertex
	// that does not exist, or attribute counts do not match.
	ErrMalformedMesh = errors.New("malformed mesh")

	// ErrNotOnHost is returned by operations that need the host copy
	// of a buffer that is currently only on the device.
	ErrNotOnHost = errors.New("buffer is not host-resident")
)

// MeshName is a [Mesh] name. It is used on [Solid] to link to meshes by name.
type MeshName string

// Mesh is an indexed triangle mesh whose four attribute buffers can
// each live on the host, the device, or both. The buffers are
// [gpu.Shared], so several meshes can use the same coords, normals
// and uvs with different faces, and [Solid]s anywhere in a [Scene]
// can draw the same mesh without copying it.
//
// Whenever they are host-resident, normals and uvs have one entry
// per coordinate, and every face index is less than the number of
// coordinates.
type Mesh struct {
	// Name is the name of the mesh. Meshes are linked to [Solid]s
	// by name so this matters.
	Name string

	coords  *gpu.Shared[math32.Vector3]
	faces   *gpu.Shared[math32.Vector3u]
	normals *gpu.Shared[math32.Vector3]
	uvs     *gpu.Shared[math32.Vector2]
}

// NewMesh returns a new host-resident mesh on the given slices,
// which are used directly, not copied. If normals is nil they are
// computed from the faces with [ComputeNormals], and if uvs is nil
// they are all zero. Dynamic meshes use [gpu.Dynamic] buffers.
func NewMesh(coords []math32.Vector3, faces []math32.Vector3u, normals []math32.Vector3, uvs []math32.Vector2, dynamic bool) (*Mesh, error) {
	if err := validateFaces(faces, len(coords)); err != nil {
		return nil, fmt.Errorf("NewMesh: %w", err)
	}
	if normals == nil {
		var err error
		normals, err = ComputeNormalsArray(coords, faces)
		if err != nil {
			return nil, err
		}
	} else if len(normals) != len(coords) {
		return nil, fmt.Errorf("NewMesh: %w: %d normals for %d coords", ErrMalformedMesh, len(normals), len(coords))
	}
	if uvs == nil {
		uvs = make([]math32.Vector2, len(coords))
	} else if len(uvs) != len(coords) {
		return nil, fmt.Errorf("NewMesh: %w: %d uvs for %d coords", ErrMalformedMesh, len(uvs), len(coords))
	}
	us := gpu.UsageFor(dynamic)
	return &Mesh{
		coords:  gpu.NewShared(gpu.NewBuffer(coords, gpu.VertexBuffer, us).SetName("coords")),
		faces:   gpu.NewShared(gpu.NewBuffer(faces, gpu.IndexBuffer, us).SetName("faces")),
		normals: gpu.NewShared(gpu.NewBuffer(normals, gpu.VertexBuffer, us).SetName("normals")),
		uvs:     gpu.NewShared(gpu.NewBuffer(uvs, gpu.VertexBuffer, us).SetName("uvs")),
	}, nil
}

// NewMeshWithGPUVectors returns a new mesh on the given shared buffers,
// in whatever residency they are in. The mesh takes over one reference
// on each buffer: call [gpu.Shared.Ref] on any buffer that is also
// used elsewhere. Host-resident faces are checked against the number
// of coords, returning an error wrapping [ErrMalformedMesh] for any
// out of range index; the references are not taken over in that case.
func NewMeshWithGPUVectors(coords *gpu.Shared[math32.Vector3], faces *gpu.Shared[math32.Vector3u], normals *gpu.Shared[math32.Vector3], uvs *gpu.Shared[math32.Vector2]) (*Mesh, error) {
	if err := checkFaces(coords, faces); err != nil {
		return nil, fmt.Errorf("NewMeshWithGPUVectors: %w", err)
	}
	return &Mesh{coords: coords, faces: faces, normals: normals, uvs: uvs}, nil
}

// checkFaces validates the host copy of the faces against the number
// of coords. Faces only on the device are not checked.
func checkFaces(coords *gpu.Shared[math32.Vector3], faces *gpu.Shared[math32.Vector3u]) error {
	n := coords.Len()
	return faces.Read(func(fb *gpu.Buffer[math32.Vector3u]) error {
		if !fb.IsOnRAM() {
			return nil
		}
		return validateFaces(fb.Data(), n)
	})
}

// NewMeshFromTriMesh returns a new mesh from the given description,
// unifying a split index buffer first. The description is not modified.
func NewMeshFromTriMesh(tm *TriMesh, dynamic bool) (*Mesh, error) {
	cp := tm.Clone()
	if err := cp.UnifyIndexBuffer(); err != nil {
		return nil, err
	}
	var normals []math32.Vector3
	if len(cp.Normals) > 0 {
		normals = cp.Normals
	}
	var uvs []math32.Vector2
	if len(cp.UVs) > 0 {
		uvs = cp.UVs
	}
	return NewMesh(cp.Coords, cp.Indices.Unified, normals, uvs, dynamic)
}

// Coords returns the shared coordinates buffer.
func (ms *Mesh) Coords() *gpu.Shared[math32.Vector3] { return ms.coords }

// Faces returns the shared faces buffer.
func (ms *Mesh) Faces() *gpu.Shared[math32.Vector3u] { return ms.faces }

// Normals returns the shared normals buffer.
func (ms *Mesh) Normals() *gpu.Shared[math32.Vector3] { return ms.normals }

// UVs returns the shared texture coordinates buffer.
func (ms *Mesh) UVs() *gpu.Shared[math32.Vector2] { return ms.uvs }

// NumPoints returns the number of indexes drawn, 3 per face.
func (ms *Mesh) NumPoints() int {
	return 3 * ms.faces.Len()
}

// ToTriMesh returns a copy of the mesh data as a [TriMesh].
// Buffers that are only on the device are read back for the copy
// and then unloaded again, so the residency of every buffer is
// unchanged by the call. An error is returned if the coords or
// faces have no data; normals or uvs without data are left empty.
func (ms *Mesh) ToTriMesh() (*TriMesh, error) {
	coords, err := snapshot(ms.coords)
	if err != nil {
		return nil, fmt.Errorf("Mesh %q ToTriMesh coords: %w", ms.Name, err)
	}
	faces, err := snapshot(ms.faces)
	if err != nil {
		return nil, fmt.Errorf("Mesh %q ToTriMesh faces: %w", ms.Name, err)
	}
	normals, err := snapshot(ms.normals)
	if err != nil && !errors.Is(err, gpu.ErrNoData) {
		return nil, fmt.Errorf("Mesh %q ToTriMesh normals: %w", ms.Name, err)
	}
	uvs, err := snapshot(ms.uvs)
	if err != nil && !errors.Is(err, gpu.ErrNoData) {
		return nil, fmt.Errorf("Mesh %q ToTriMesh uvs: %w", ms.Name, err)
	}
	return NewTriMesh(coords, faces, normals, uvs), nil
}

// snapshot returns a copy of the host data of the buffer, loading
// it from the device first if needed and unloading it afterwards.
func snapshot[T any](s *gpu.Shared[T]) ([]T, error) {
	if data, ok := s.ToOwned(); ok {
		return data, nil
	}
	var data []T
	err := s.Write(func(b *gpu.Buffer[T]) error {
		onHost := b.IsOnRAM()
		if err := b.LoadToRAM(); err != nil {
			return err
		}
		data, _ = b.ToOwned()
		if !onHost {
			b.UnloadFromRAM()
		}
		return nil
	})
	return data, err
}

// Bind binds the mesh for drawing on the given device, with the
// coords, normals and uvs at the given attributes, in that order,
// followed by the faces as the index buffer. Buffers are uploaded
// to the device the first time they are bound.
func (ms *Mesh) Bind(dev gpu.Device, coordAttr, normalAttr, uvAttr gpu.Attribute) error {
	if err := ms.BindCoords(dev, coordAttr); err != nil {
		return err
	}
	if err := ms.BindNormals(dev, normalAttr); err != nil {
		return err
	}
	if err := ms.BindUVs(dev, uvAttr); err != nil {
		return err
	}
	return ms.BindFaces(dev)
}

// BindCoords binds only the coordinates.
func (ms *Mesh) BindCoords(dev gpu.Device, attr gpu.Attribute) error {
	return bindError(ms, "coords", ms.coords.Bind(dev, attr))
}

// BindNormals binds only the normals.
func (ms *Mesh) BindNormals(dev gpu.Device, attr gpu.Attribute) error {
	return bindError(ms, "normals", ms.normals.Bind(dev, attr))
}

// BindUVs binds only the texture coordinates.
func (ms *Mesh) BindUVs(dev gpu.Device, attr gpu.Attribute) error {
	return bindError(ms, "uvs", ms.uvs.Bind(dev, attr))
}

// BindFaces binds only the faces, as the index buffer. Host-resident
// faces are first checked against the number of coords, so that faces
// replaced with [gpu.Shared.SetData] can never index past the coords
// on the device.
func (ms *Mesh) BindFaces(dev gpu.Device) error {
	if err := checkFaces(ms.coords, ms.faces); err != nil {
		return bindError(ms, "faces", err)
	}
	return bindError(ms, "faces", ms.faces.Bind(dev, gpu.Attribute{}))
}

func bindError(ms *Mesh, buf string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("Mesh %q bind %s: %w", ms.Name, buf, err)
}

// Unbind unbinds all buffers bound by [Mesh.Bind], in reverse order.
func (ms *Mesh) Unbind() error {
	return errors.Join(ms.faces.Unbind(), ms.uvs.Unbind(), ms.normals.Unbind(), ms.coords.Unbind())
}

// RecomputeNormals recomputes the normals in place from the host copies
// of the coords and faces, returning an error wrapping [ErrNotOnHost]
// if either is only on the device. The coords and faces are read locked
// and the normals write locked for the duration.
func (ms *Mesh) RecomputeNormals() error {
	if ms.coords == ms.normals {
		return fmt.Errorf("Mesh %q RecomputeNormals: coords and normals are the same buffer", ms.Name)
	}
	return ms.coords.Read(func(cb *gpu.Buffer[math32.Vector3]) error {
		if !cb.IsOnRAM() {
			return fmt.Errorf("Mesh %q RecomputeNormals coords: %w", ms.Name, ErrNotOnHost)
		}
		return ms.faces.Read(func(fb *gpu.Buffer[math32.Vector3u]) error {
			if !fb.IsOnRAM() {
				return fmt.Errorf("Mesh %q RecomputeNormals faces: %w", ms.Name, ErrNotOnHost)
			}
			return ms.normals.Write(func(nb *gpu.Buffer[math32.Vector3]) error {
				norms, err := ComputeNormals(cb.Data(), fb.Data(), nb.Data())
				if err != nil {
					return err
				}
				nb.SetData(norms)
				return nil
			})
		})
	})
}

// BBox returns the bounding box of the host copy of the coords.
func (ms *Mesh) BBox() (math32.Box3, error) {
	var bb math32.Box3
	err := ms.coords.Read(func(cb *gpu.Buffer[math32.Vector3]) error {
		if !cb.IsOnRAM() {
			return fmt.Errorf("Mesh %q BBox: %w", ms.Name, ErrNotOnHost)
		}
		bb.SetFromPoints(cb.Data())
		return nil
	})
	return bb, err
}

// Upload makes every buffer of the mesh resident on the given device
// without binding it, for example before dropping the host copies
// with [Mesh.UnloadFromRAM].
func (ms *Mesh) Upload(dev gpu.Device) error {
	if err := checkFaces(ms.coords, ms.faces); err != nil {
		return fmt.Errorf("Mesh %q Upload: %w", ms.Name, err)
	}
	return errors.Join(ms.coords.Upload(dev), ms.faces.Upload(dev), ms.normals.Upload(dev), ms.uvs.Upload(dev))
}

// LoadToRAM makes every buffer of the mesh host-resident.
func (ms *Mesh) LoadToRAM() error {
	return errors.Join(ms.coords.LoadToRAM(), ms.faces.LoadToRAM(), ms.normals.LoadToRAM(), ms.uvs.LoadToRAM())
}

// UnloadFromRAM drops the host copy of each buffer that has a device
// copy, and returns the number of buffers it unloaded.
// Buffers shared with other meshes are unloaded for them too.
func (ms *Mesh) UnloadFromRAM() int {
	n := 0
	for _, ok := range []bool{ms.coords.UnloadFromRAM(), ms.faces.UnloadFromRAM(), ms.normals.UnloadFromRAM(), ms.uvs.UnloadFromRAM()} {
		if ok {
			n++
		}
	}
	return n
}

// Release drops the reference of this mesh on each of its buffers.
// Device copies are freed for buffers no other mesh refers to.
func (ms *Mesh) Release() {
	ms.coords.Release()
	ms.faces.Release()
	ms.normals.Release()
	ms.uvs.Release()
}
