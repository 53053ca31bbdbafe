// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Headless is a [Device] that keeps device buffers in host memory.
// It is used for running buffer and mesh logic without a graphics
// context (tests, offline processing), and records every operation
// so that callers can check what would have been sent to the GPU.
type Headless struct {
	mu sync.Mutex

	// last allocated handle
	last Handle

	buffers map[Handle]*headlessBuffer

	// bound vertex buffers by attribute location, and the bound index buffer.
	vertex map[uint32]Handle
	index  Handle

	// Events is the ordered log of binding and draw operations.
	Events []Event

	// Stats counts operations by kind.
	Stats HeadlessStats
}

type headlessBuffer struct {
	desc BufferDesc
}

// HeadlessStats counts the operations performed on a [Headless] device.
type HeadlessStats struct {
	Creates  int
	Writes   int
	Reads    int
	Binds    int
	Unbinds  int
	Draws    int
	Releases int
}

// Event is one recorded binding or draw operation on a [Headless] device.
type Event struct {
	// Op is one of "vertex", "index", "unbind", "draw".
	Op string

	Handle Handle

	// Attr is set for "vertex" events.
	Attr Attribute

	// N is the number of index points for "draw" events.
	N int
}

func (ev Event) String() string {
	switch ev.Op {
	case "vertex":
		return fmt.Sprintf("vertex %d %s", ev.Handle, ev.Attr)
	case "draw":
		return fmt.Sprintf("draw %d", ev.N)
	}
	return fmt.Sprintf("%s %d", ev.Op, ev.Handle)
}

// NewHeadless returns a new [Headless] device.
func NewHeadless() *Headless {
	return &Headless{buffers: map[Handle]*headlessBuffer{}, vertex: map[uint32]Handle{}}
}

func (hd *Headless) CreateBuffer(desc *BufferDesc) (Handle, error) {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	hd.last++
	d := *desc
	d.Contents = slices.Clone(desc.Contents)
	hd.buffers[hd.last] = &headlessBuffer{desc: d}
	hd.Stats.Creates++
	if Debug {
		slog.Debug("gpu.Headless CreateBuffer", "label", d.Label, "handle", hd.last, "bytes", len(d.Contents))
	}
	return hd.last, nil
}

func (hd *Headless) WriteBuffer(h Handle, data []byte) (Handle, error) {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	hb, err := hd.buffer(h)
	if err != nil {
		return h, err
	}
	hb.desc.Contents = slices.Clone(data)
	hd.Stats.Writes++
	return h, nil
}

func (hd *Headless) ReadBuffer(h Handle) ([]byte, error) {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	hb, err := hd.buffer(h)
	if err != nil {
		return nil, err
	}
	hd.Stats.Reads++
	return slices.Clone(hb.desc.Contents), nil
}

func (hd *Headless) BindVertex(h Handle, attr Attribute) error {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	hb, err := hd.buffer(h)
	if err != nil {
		return err
	}
	if hb.desc.Role != VertexBuffer {
		return fmt.Errorf("gpu.Headless BindVertex %q: buffer role is %s", hb.desc.Label, hb.desc.Role)
	}
	hd.vertex[attr.Location] = h
	hd.Stats.Binds++
	hd.Events = append(hd.Events, Event{Op: "vertex", Handle: h, Attr: attr})
	return nil
}

func (hd *Headless) BindIndex(h Handle) error {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	hb, err := hd.buffer(h)
	if err != nil {
		return err
	}
	if hb.desc.Role != IndexBuffer {
		return fmt.Errorf("gpu.Headless BindIndex %q: buffer role is %s", hb.desc.Label, hb.desc.Role)
	}
	hd.index = h
	hd.Stats.Binds++
	hd.Events = append(hd.Events, Event{Op: "index", Handle: h})
	return nil
}

func (hd *Headless) Unbind(h Handle) error {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	if _, err := hd.buffer(h); err != nil {
		return err
	}
	hd.unbind(h)
	hd.Stats.Unbinds++
	hd.Events = append(hd.Events, Event{Op: "unbind", Handle: h})
	return nil
}

func (hd *Headless) unbind(h Handle) {
	if hd.index == h {
		hd.index = 0
	}
	for loc, vh := range hd.vertex {
		if vh == h {
			delete(hd.vertex, loc)
		}
	}
}

// DrawIndexed records a draw call. It fails if no index buffer
// is bound or if n exceeds the number of bound indexes.
func (hd *Headless) DrawIndexed(n int) error {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	if hd.index == 0 {
		return fmt.Errorf("gpu.Headless DrawIndexed: no index buffer bound")
	}
	if ni := len(hd.buffers[hd.index].desc.Contents) / 4; n > ni {
		return fmt.Errorf("gpu.Headless DrawIndexed: %d points > %d bound indexes", n, ni)
	}
	hd.Stats.Draws++
	hd.Events = append(hd.Events, Event{Op: "draw", N: n})
	return nil
}

func (hd *Headless) ReleaseBuffer(h Handle) {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	if _, ok := hd.buffers[h]; !ok {
		slog.Error("gpu.Headless ReleaseBuffer: unknown handle", "handle", h)
		return
	}
	hd.unbind(h)
	delete(hd.buffers, h)
	hd.Stats.Releases++
}

// Live returns the number of currently allocated buffers.
func (hd *Headless) Live() int {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	return len(hd.buffers)
}

// Contents returns a copy of the contents of the given buffer,
// and false if it does not exist.
func (hd *Headless) Contents(h Handle) ([]byte, bool) {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	hb, ok := hd.buffers[h]
	if !ok {
		return nil, false
	}
	return slices.Clone(hb.desc.Contents), true
}

// Desc returns the creation descriptor of the given buffer
// (with current contents), and false if it does not exist.
func (hd *Headless) Desc(h Handle) (BufferDesc, bool) {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	hb, ok := hd.buffers[h]
	if !ok {
		return BufferDesc{}, false
	}
	return hb.desc, true
}

// ResetEvents clears the recorded [Headless.Events].
func (hd *Headless) ResetEvents() {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	hd.Events = nil
}

func (hd *Headless) buffer(h Handle) (*headlessBuffer, error) {
	hb, ok := hd.buffers[h]
	if !ok {
		return nil, fmt.Errorf("gpu.Headless handle %d: %w", h, ErrUnknownHandle)
	}
	return hb, nil
}
