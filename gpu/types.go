// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"
)

// BufferRoles are the device-side binding roles of a [Buffer].
type BufferRoles int32

const (
	// VertexBuffer is per-vertex attribute data (positions, normals,
	// texture coordinates) bound to a vertex [Attribute] slot.
	VertexBuffer BufferRoles = iota

	// IndexBuffer is triangle index data, bound as the index buffer
	// for the next indexed draw call.
	IndexBuffer
)

func (br BufferRoles) String() string {
	switch br {
	case VertexBuffer:
		return "VertexBuffer"
	case IndexBuffer:
		return "IndexBuffer"
	}
	return fmt.Sprintf("BufferRoles(%d)", int32(br))
}

// Usages are allocation hints for the device copy of a [Buffer].
type Usages int32

const (
	// Static data is uploaded once and drawn many times.
	Static Usages = iota

	// Dynamic data is expected to be re-uploaded frequently.
	Dynamic
)

func (us Usages) String() string {
	switch us {
	case Static:
		return "Static"
	case Dynamic:
		return "Dynamic"
	}
	return fmt.Sprintf("Usages(%d)", int32(us))
}

// UsageFor returns [Dynamic] if dynamic is true, and [Static] otherwise.
func UsageFor(dynamic bool) Usages {
	if dynamic {
		return Dynamic
	}
	return Static
}

// Residency is a bit set recording which memory tiers currently
// hold the data of a [Buffer].
type Residency int32

const (
	// OnHost is set when the host (RAM) copy is present.
	OnHost Residency = 1 << iota

	// OnDevice is set when the device (GPU) copy is present.
	OnDevice

	// NoResidency means neither tier holds data, which is only
	// reachable by releasing a device-only buffer.
	NoResidency Residency = 0

	// HostAndDevice means both copies are present.
	HostAndDevice = OnHost | OnDevice
)

// HasFlag returns whether the given flag is set.
func (rs Residency) HasFlag(f Residency) bool {
	return rs&f != 0
}

func (rs Residency) String() string {
	if rs == NoResidency {
		return "NoResidency"
	}
	var s []string
	if rs.HasFlag(OnHost) {
		s = append(s, "OnHost")
	}
	if rs.HasFlag(OnDevice) {
		s = append(s, "OnDevice")
	}
	return strings.Join(s, "|")
}

// Handle is an opaque identifier for a buffer allocated on a [Device].
// The zero Handle is never a valid allocation.
type Handle uint64

// Attribute names a vertex attribute slot of the active shader
// program. How the slot is declared in the shader is up to the
// caller; buffers only hand the location to [Device.BindVertex].
type Attribute struct {
	// Name of the attribute in the shader, for debugging.
	Name string

	// Location is the vertex buffer slot.
	Location uint32
}

// Standard attribute slots used by meshes.
var (
	PosAttribute      = Attribute{Name: "Pos", Location: 0}
	NormAttribute     = Attribute{Name: "Norm", Location: 1}
	TexCoordAttribute = Attribute{Name: "TexCoord", Location: 2}
)

func (at Attribute) String() string {
	return fmt.Sprintf("%s@%d", at.Name, at.Location)
}
