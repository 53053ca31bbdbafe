// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "errors"

// Debug is whether to log extra information about buffer residency
// transitions and device operations.
var Debug = false

var (
	// ErrNoData is returned when an operation needs buffer data
	// that is present in neither host nor device memory.
	ErrNoData = errors.New("gpu: buffer has no data on host or device")

	// ErrNoDevice is returned when an operation needs a device
	// but none has been associated with the buffer.
	ErrNoDevice = errors.New("gpu: buffer has no device")

	// ErrUnknownHandle is returned by a [Device] for a handle
	// it did not allocate or has already released.
	ErrUnknownHandle = errors.New("gpu: unknown buffer handle")
)

// BufferDesc describes a device buffer to create.
type BufferDesc struct {
	// Label is used for debugging.
	Label string

	Role  BufferRoles
	Usage Usages

	// Contents is the initial data, which also determines the size.
	Contents []byte
}

// Device is the capability interface to the graphics API used by
// [Buffer] and everything built on it. It is passed explicitly to
// the operations that need it, so buffer logic can run against
// [Headless] without a real graphics context.
//
// Implementations are only called from the render thread, but must
// tolerate concurrent ReadBuffer calls from readers of different buffers.
type Device interface {
	// CreateBuffer allocates a device buffer holding desc.Contents.
	CreateBuffer(desc *BufferDesc) (Handle, error)

	// WriteBuffer replaces the contents of the given buffer.
	// The buffer is reallocated if the size changes, so
	// the returned handle must be used from then on.
	WriteBuffer(h Handle, data []byte) (Handle, error)

	// ReadBuffer copies the contents of the given buffer back to host memory.
	ReadBuffer(h Handle) ([]byte, error)

	// BindVertex binds the buffer to the given vertex attribute slot
	// for the next draw call.
	BindVertex(h Handle, attr Attribute) error

	// BindIndex binds the buffer as the index buffer for the next
	// indexed draw call.
	BindIndex(h Handle) error

	// Unbind detaches the buffer from the current draw state.
	Unbind(h Handle) error

	// DrawIndexed issues an indexed draw of n index points using
	// the currently bound buffers.
	DrawIndexed(n int) error

	// ReleaseBuffer frees the device buffer.
	ReleaseBuffer(h Handle)
}
