// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Shared is a reference-counted, read/write locked handle on a
// [Buffer], allowing one buffer to back any number of meshes and
// scene nodes without copying. Any number of readers may hold it
// at the same time, or one writer.
//
// The device copy is released when the last reference is released.
// None of the methods reacquire a lock already held by the same call.
type Shared[T any] struct {
	mu   sync.RWMutex
	refs atomic.Int32
	buf  *Buffer[T]
}

// NewShared returns a new [Shared] handle on the given buffer,
// holding one reference.
func NewShared[T any](b *Buffer[T]) *Shared[T] {
	s := &Shared[T]{buf: b}
	s.refs.Store(1)
	return s
}

// NewSharedBuffer is a convenience for NewShared(NewBuffer(data, role, usage)).
func NewSharedBuffer[T any](data []T, role BufferRoles, usage Usages) *Shared[T] {
	return NewShared(NewBuffer(data, role, usage))
}

// Ref adds a reference and returns the same handle.
func (s *Shared[T]) Ref() *Shared[T] {
	s.refs.Add(1)
	return s
}

// Refs returns the current number of references.
func (s *Shared[T]) Refs() int {
	return int(s.refs.Load())
}

// Release drops a reference. The device copy of the buffer is
// freed when the last reference is dropped.
func (s *Shared[T]) Release() {
	n := s.refs.Add(-1)
	switch {
	case n == 0:
		s.mu.Lock()
		s.buf.Release()
		s.mu.Unlock()
	case n < 0:
		slog.Error("gpu.Shared Release: released more times than referenced", "buffer", s.buf.Name)
	}
}

// Read calls fn with the buffer under the read lock.
// fn must not modify the buffer.
func (s *Shared[T]) Read(fn func(b *Buffer[T]) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.buf)
}

// Write calls fn with the buffer under the exclusive write lock.
func (s *Shared[T]) Write(fn func(b *Buffer[T]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.buf)
}

// Name returns the buffer name.
func (s *Shared[T]) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buf.Name
}

// Len returns the number of elements in the buffer.
func (s *Shared[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buf.Len()
}

// Residency returns the current residency of the buffer.
func (s *Shared[T]) Residency() Residency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buf.Residency()
}

// IsOnRAM returns whether the buffer's host copy is present.
func (s *Shared[T]) IsOnRAM() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buf.IsOnRAM()
}

// ToOwned returns a copy of the host data; see [Buffer.ToOwned].
func (s *Shared[T]) ToOwned() ([]T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buf.ToOwned()
}

// SetData replaces the host data; see [Buffer.SetData].
func (s *Shared[T]) SetData(data []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.SetData(data)
}

// LoadToRAM makes the buffer host-resident; see [Buffer.LoadToRAM].
func (s *Shared[T]) LoadToRAM() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.LoadToRAM()
}

// UnloadFromRAM drops the host copy; see [Buffer.UnloadFromRAM].
func (s *Shared[T]) UnloadFromRAM() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.UnloadFromRAM()
}

// Sync uploads a stale host copy; see [Buffer.Sync].
func (s *Shared[T]) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Sync()
}

// Upload creates or updates the device copy; see [Buffer.Upload].
func (s *Shared[T]) Upload(dev Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Upload(dev)
}

// Bind binds the buffer for the next draw call; see [Buffer.Bind].
// When the device copy is already up to date this only takes the
// read lock, so owners drawing the same buffer do not block each other.
// Otherwise the write lock is taken once to create or update it.
func (s *Shared[T]) Bind(dev Device, attr Attribute) error {
	s.mu.RLock()
	if !s.buf.NeedsUpload() && (dev == nil || dev == s.buf.device) {
		err := s.buf.bindDevice(attr)
		s.mu.RUnlock()
		return err
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Bind(dev, attr)
}

// Unbind detaches the buffer from the draw state; see [Buffer.Unbind].
func (s *Shared[T]) Unbind() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buf.Unbind()
}
