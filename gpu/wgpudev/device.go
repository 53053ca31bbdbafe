// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wgpudev implements [gpu.Device] on top of WebGPU,
// so that mesh buffers can be uploaded to and bound on a real GPU.
package wgpudev

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kestrel3d/kestrel/base/errors"
	"github.com/kestrel3d/kestrel/cli"
	"github.com/kestrel3d/kestrel/gpu"
)

// Options are the settings for opening a [Device].
type Options struct {
	// HighPerformance requests the high performance adapter
	// rather than the low power one.
	HighPerformance bool `default:"true"`

	// Label is used as a prefix on all buffer labels.
	Label string `default:"kestrel"`

	// Debug turns on [gpu.Debug] logging.
	Debug bool
}

// Defaults sets the default option values.
func (op *Options) Defaults() {
	cli.SetFromDefaults(op)
}

// OpenOptions loads options from a .toml or .yaml file,
// starting from the defaults.
func OpenOptions(filename string) (*Options, error) {
	op := &Options{}
	op.Defaults()
	return op, cli.Open(op, filename)
}

// Device is a [gpu.Device] backed by a WebGPU device and queue.
// Bind calls record into the render pass set with [Device.SetRenderPass].
type Device struct {
	Options Options

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	mu      sync.Mutex
	last    gpu.Handle
	buffers map[gpu.Handle]*buffer

	// render pass receiving bind and draw commands.
	pass *wgpu.RenderPassEncoder
}

type buffer struct {
	buf   *wgpu.Buffer
	label string
	role  gpu.BufferRoles
	usage gpu.Usages

	// size is the logical content size; the allocation
	// is padded to 4 bytes with a minimum of 4.
	size int
}

// NewDevice opens the default adapter and returns a new [Device] on it.
func NewDevice(op *Options) (*Device, error) {
	dv := &Device{buffers: map[gpu.Handle]*buffer{}}
	if op != nil {
		dv.Options = *op
	} else {
		dv.Options.Defaults()
	}
	if dv.Options.Debug {
		gpu.Debug = true
	}
	pp := wgpu.PowerPreferenceLowPower
	if dv.Options.HighPerformance {
		pp = wgpu.PowerPreferenceHighPerformance
	}
	dv.instance = wgpu.CreateInstance(nil)
	adapter, err := dv.instance.RequestAdapter(&wgpu.RequestAdapterOptions{PowerPreference: pp})
	if errors.Log(err) != nil {
		dv.instance.Release()
		return nil, err
	}
	dv.adapter = adapter
	device, err := adapter.RequestDevice(nil)
	if errors.Log(err) != nil {
		dv.adapter.Release()
		dv.instance.Release()
		return nil, err
	}
	dv.device = device
	dv.queue = device.GetQueue()
	if gpu.Debug {
		slog.Info("wgpudev: device opened", "label", dv.Options.Label)
	}
	return dv, nil
}

// Release frees all remaining buffers and the device itself.
func (dv *Device) Release() {
	dv.mu.Lock()
	for h, b := range dv.buffers {
		b.buf.Release()
		delete(dv.buffers, h)
	}
	dv.mu.Unlock()
	if dv.queue != nil {
		dv.queue.Release()
		dv.queue = nil
	}
	if dv.device != nil {
		dv.device.Release()
		dv.device = nil
	}
	if dv.adapter != nil {
		dv.adapter.Release()
		dv.adapter = nil
	}
	if dv.instance != nil {
		dv.instance.Release()
		dv.instance = nil
	}
}

// SetRenderPass sets the render pass that subsequent bind and
// draw calls are recorded into. Pass nil when the pass has ended.
func (dv *Device) SetRenderPass(rp *wgpu.RenderPassEncoder) {
	dv.mu.Lock()
	defer dv.mu.Unlock()
	dv.pass = rp
}

// WaitDone waits until the device is done with current processing steps.
func (dv *Device) WaitDone() {
	dv.device.Poll(true, nil)
}

// BufferUsages returns the WebGPU usage flags for the given role.
// All buffers can be copied from, so they can be read back, and
// written to, so they can be updated in place.
func BufferUsages(role gpu.BufferRoles) wgpu.BufferUsage {
	us := wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc
	if role == gpu.IndexBuffer {
		return us | wgpu.BufferUsageIndex
	}
	return us | wgpu.BufferUsageVertex
}

// allocSize pads the given size to the 4 byte alignment
// required by WebGPU copies, with a minimum of 4.
func allocSize(n int) int {
	if n < 4 {
		return 4
	}
	return (n + 3) &^ 3
}

func padded(data []byte) []byte {
	sz := allocSize(len(data))
	if sz == len(data) {
		return data
	}
	p := make([]byte, sz)
	copy(p, data)
	return p
}

func (dv *Device) CreateBuffer(desc *gpu.BufferDesc) (gpu.Handle, error) {
	label := desc.Label
	if dv.Options.Label != "" {
		label = dv.Options.Label + ":" + label
	}
	buf, err := dv.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: padded(desc.Contents),
		Usage:    BufferUsages(desc.Role),
	})
	if errors.Log(err) != nil {
		return 0, err
	}
	dv.mu.Lock()
	defer dv.mu.Unlock()
	dv.last++
	dv.buffers[dv.last] = &buffer{buf: buf, label: label, role: desc.Role, usage: desc.Usage, size: len(desc.Contents)}
	return dv.last, nil
}

func (dv *Device) WriteBuffer(h gpu.Handle, data []byte) (gpu.Handle, error) {
	b, err := dv.buffer(h)
	if err != nil {
		return h, err
	}
	if allocSize(len(data)) != allocSize(b.size) {
		nh, err := dv.CreateBuffer(&gpu.BufferDesc{Label: b.label, Role: b.role, Usage: b.usage, Contents: data})
		if err != nil {
			return h, err
		}
		dv.ReleaseBuffer(h)
		return nh, nil
	}
	if err := dv.queue.WriteBuffer(b.buf, 0, padded(data)); errors.Log(err) != nil {
		return h, err
	}
	b.size = len(data)
	return h, nil
}

// ReadBuffer copies the buffer into a mappable staging buffer,
// waits for the copy, and returns the mapped contents.
func (dv *Device) ReadBuffer(h gpu.Handle) ([]byte, error) {
	b, err := dv.buffer(h)
	if err != nil {
		return nil, err
	}
	sz := allocSize(b.size)
	staging, err := dv.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: b.label + ":read",
		Size:  uint64(sz),
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	defer staging.Release()

	cmd, err := dv.device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	defer cmd.Release()
	if err := cmd.CopyBufferToBuffer(b.buf, 0, staging, 0, uint64(sz)); errors.Log(err) != nil {
		return nil, err
	}
	cmdBuffer, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	dv.queue.Submit(cmdBuffer)
	cmdBuffer.Release()

	var status wgpu.BufferMapAsyncStatus
	err = staging.MapAsync(wgpu.MapModeRead, 0, uint64(sz), func(s wgpu.BufferMapAsyncStatus) {
		status = s
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	dv.WaitDone()
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return nil, errors.Log(fmt.Errorf("wgpudev ReadBuffer %s: map status is %v", b.label, status))
	}
	out := make([]byte, b.size)
	copy(out, staging.GetMappedRange(0, uint(sz)))
	staging.Unmap()
	return out, nil
}

func (dv *Device) BindVertex(h gpu.Handle, attr gpu.Attribute) error {
	b, rp, err := dv.bindTarget(h)
	if err != nil {
		return err
	}
	rp.SetVertexBuffer(attr.Location, b.buf, 0, wgpu.WholeSize)
	return nil
}

func (dv *Device) BindIndex(h gpu.Handle) error {
	b, rp, err := dv.bindTarget(h)
	if err != nil {
		return err
	}
	rp.SetIndexBuffer(b.buf, wgpu.IndexFormatUint32, 0, uint64(b.size))
	return nil
}

// Unbind is a no-op: WebGPU bindings only last for the render
// pass, and are replaced by the next bind on the same slot.
func (dv *Device) Unbind(h gpu.Handle) error {
	_, err := dv.buffer(h)
	return err
}

func (dv *Device) DrawIndexed(n int) error {
	dv.mu.Lock()
	rp := dv.pass
	dv.mu.Unlock()
	if rp == nil {
		return fmt.Errorf("wgpudev DrawIndexed: no render pass set")
	}
	rp.DrawIndexed(uint32(n), 1, 0, 0, 0)
	return nil
}

func (dv *Device) ReleaseBuffer(h gpu.Handle) {
	dv.mu.Lock()
	defer dv.mu.Unlock()
	b, ok := dv.buffers[h]
	if !ok {
		slog.Error("wgpudev ReleaseBuffer: unknown handle", "handle", h)
		return
	}
	b.buf.Release()
	delete(dv.buffers, h)
}

func (dv *Device) buffer(h gpu.Handle) (*buffer, error) {
	dv.mu.Lock()
	defer dv.mu.Unlock()
	b, ok := dv.buffers[h]
	if !ok {
		return nil, fmt.Errorf("wgpudev handle %d: %w", h, gpu.ErrUnknownHandle)
	}
	return b, nil
}

func (dv *Device) bindTarget(h gpu.Handle) (*buffer, *wgpu.RenderPassEncoder, error) {
	b, err := dv.buffer(h)
	if err != nil {
		return nil, nil, err
	}
	dv.mu.Lock()
	rp := dv.pass
	dv.mu.Unlock()
	if rp == nil {
		return nil, nil, fmt.Errorf("wgpudev bind %s: no render pass set", b.label)
	}
	return b, rp, nil
}
