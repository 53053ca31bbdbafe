// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/kestrel3d/kestrel/base/errors"
)

// Buffer holds a homogeneous sequence of T for one semantic role
// (vertex positions, normals, texture coordinates or face indexes)
// that can independently reside in host memory, device memory, or both.
// The device copy is created lazily on the first [Buffer.Bind].
//
// Buffer is not safe for concurrent use: wrap it in a [Shared]
// to share it across owners.
type Buffer[T any] struct {
	// Name is used as the device buffer label, for debugging.
	Name string

	// Role determines how the device copy is bound.
	Role BufferRoles

	// Usage is the allocation hint for the device copy.
	Usage Usages

	// data is the host copy, valid only if onHost.
	data []T

	// onHost records whether the host copy is present, which is
	// distinct from data being empty.
	onHost bool

	// n is the number of elements, valid in any residency state.
	n int

	// device that owns handle; nil if handle is 0.
	device Device

	// handle of the device copy; 0 if not on the device.
	handle Handle

	// stale is set when the host copy was changed after the
	// device copy was made, so the device copy must be re-uploaded.
	stale bool
}

// NewBuffer returns a new host-resident [Buffer] holding the given data,
// which is not copied.
func NewBuffer[T any](data []T, role BufferRoles, usage Usages) *Buffer[T] {
	return &Buffer[T]{Role: role, Usage: usage, data: data, onHost: true, n: len(data)}
}

// SetName sets the [Buffer.Name] and returns the buffer.
func (b *Buffer[T]) SetName(name string) *Buffer[T] {
	b.Name = name
	return b
}

// IsOnRAM returns whether the host copy is present.
func (b *Buffer[T]) IsOnRAM() bool {
	return b.onHost
}

// IsOnDevice returns whether the device copy is present.
func (b *Buffer[T]) IsOnDevice() bool {
	return b.handle != 0
}

// Residency returns the current set of memory tiers holding the data.
func (b *Buffer[T]) Residency() Residency {
	var rs Residency
	if b.onHost {
		rs |= OnHost
	}
	if b.handle != 0 {
		rs |= OnDevice
	}
	return rs
}

// Len returns the number of elements, in any residency state.
func (b *Buffer[T]) Len() int {
	return b.n
}

// Device returns the device holding the device copy, or nil.
func (b *Buffer[T]) Device() Device {
	return b.device
}

// Handle returns the handle of the device copy, or 0.
func (b *Buffer[T]) Handle() Handle {
	return b.handle
}

// IsStale returns whether the device copy is out of date
// with respect to the host copy.
func (b *Buffer[T]) IsStale() bool {
	return b.stale
}

// Data returns the host copy, or nil if it is not present.
// The slice may be modified in place, after which
// [Buffer.MarkChanged] must be called so that the device copy
// is re-uploaded on the next bind.
func (b *Buffer[T]) Data() []T {
	if !b.onHost {
		return nil
	}
	return b.data
}

// SetData replaces the host copy with the given data, which is not
// copied. Any device copy becomes stale and is re-uploaded on the
// next [Buffer.Bind] or [Buffer.Sync].
func (b *Buffer[T]) SetData(data []T) {
	b.data = data
	b.onHost = true
	b.n = len(data)
	b.stale = b.handle != 0
}

// MarkChanged records that the host copy was modified in place.
func (b *Buffer[T]) MarkChanged() {
	if b.onHost {
		b.stale = b.handle != 0
	}
}

// ToOwned returns a copy of the host data, and false
// if the buffer is not host-resident.
func (b *Buffer[T]) ToOwned() ([]T, bool) {
	if !b.onHost {
		return nil, false
	}
	return slices.Clone(b.data), true
}

// LoadToRAM makes the buffer host-resident by reading back the
// device copy. It does nothing if the host copy is already present,
// and returns [ErrNoData] if there is no device copy either.
func (b *Buffer[T]) LoadToRAM() error {
	if b.onHost {
		return nil
	}
	if b.handle == 0 {
		return fmt.Errorf("gpu.Buffer LoadToRAM %q: %w", b.Name, ErrNoData)
	}
	bs, err := b.device.ReadBuffer(b.handle)
	if errors.Log(err) != nil {
		return err
	}
	data := FromBytes[T](bs)
	if len(data) < b.n {
		return fmt.Errorf("gpu.Buffer LoadToRAM %q: device returned %d elements, want %d", b.Name, len(data), b.n)
	}
	data = data[:b.n] // devices can pad allocations
	b.data = data
	b.onHost = true
	b.stale = false
	if Debug {
		slog.Debug("gpu.Buffer LoadToRAM", "buffer", b.Name, "len", b.n)
	}
	return nil
}

// UnloadFromRAM drops the host copy, returning true if it did.
// It only does so when the device copy exists, as otherwise all data
// would be lost: in that case it does nothing and returns false.
// A stale device copy is synchronized first.
func (b *Buffer[T]) UnloadFromRAM() bool {
	if !b.onHost {
		return false
	}
	if b.handle == 0 {
		if Debug {
			slog.Debug("gpu.Buffer UnloadFromRAM: no device copy, keeping host copy", "buffer", b.Name)
		}
		return false
	}
	if b.stale && errors.Log(b.Sync()) != nil {
		return false
	}
	b.data = nil
	b.onHost = false
	return true
}

// Sync uploads the host copy to the device copy when both are present
// and the device copy is stale.
func (b *Buffer[T]) Sync() error {
	if !b.onHost || b.handle == 0 || !b.stale {
		return nil
	}
	h, err := b.device.WriteBuffer(b.handle, ToBytes(b.data))
	if errors.Log(err) != nil {
		return err
	}
	b.handle = h
	b.stale = false
	return nil
}

// NeedsUpload returns whether binding will create or update the device copy.
func (b *Buffer[T]) NeedsUpload() bool {
	return b.handle == 0 || b.stale
}

// Upload makes sure the device copy exists on the given device
// and is up to date, creating it from the host copy if needed.
func (b *Buffer[T]) Upload(dev Device) error {
	if b.handle != 0 {
		if dev != nil && dev != b.device {
			return fmt.Errorf("gpu.Buffer Upload %q: buffer already lives on another device", b.Name)
		}
		return b.Sync()
	}
	if !b.onHost {
		return fmt.Errorf("gpu.Buffer Upload %q: %w", b.Name, ErrNoData)
	}
	if dev == nil {
		return fmt.Errorf("gpu.Buffer Upload %q: %w", b.Name, ErrNoDevice)
	}
	h, err := dev.CreateBuffer(&BufferDesc{Label: b.Name, Role: b.Role, Usage: b.Usage, Contents: ToBytes(b.data)})
	if errors.Log(err) != nil {
		return err
	}
	b.device = dev
	b.handle = h
	b.stale = false
	if Debug {
		slog.Debug("gpu.Buffer created device copy", "buffer", b.Name, "role", b.Role, "usage", b.Usage, "len", b.n)
	}
	return nil
}

// Bind attaches the device copy to the given device for the next draw
// call, creating or updating it from the host copy first if needed.
// Vertex buffers are bound to the given attribute slot;
// index buffers ignore it.
func (b *Buffer[T]) Bind(dev Device, attr Attribute) error {
	if err := b.Upload(dev); err != nil {
		return err
	}
	return b.bindDevice(attr)
}

// bindDevice binds the existing, up-to-date device copy.
func (b *Buffer[T]) bindDevice(attr Attribute) error {
	if b.Role == IndexBuffer {
		return b.device.BindIndex(b.handle)
	}
	return b.device.BindVertex(b.handle, attr)
}

// Unbind detaches the device copy from the draw state.
// It does nothing if there is no device copy.
func (b *Buffer[T]) Unbind() error {
	if b.handle == 0 {
		return nil
	}
	return b.device.Unbind(b.handle)
}

// Release frees the device copy, if any. If the buffer was not
// host-resident, it no longer holds any data.
func (b *Buffer[T]) Release() {
	if b.handle != 0 {
		b.device.ReleaseBuffer(b.handle)
		b.handle = 0
		b.device = nil
		b.stale = false
	}
	if !b.onHost {
		b.n = 0
	}
}
