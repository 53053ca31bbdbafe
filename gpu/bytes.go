// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "unsafe"

// ToBytes returns the raw bytes of the given slice, without copying.
// Element types must be plain fixed-size values (no pointers).
func ToBytes[E any](s []E) []byte {
	if len(s) == 0 {
		return nil
	}
	var e E
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(e)))
}

// FromBytes copies the given bytes into a new slice of E.
// Any trailing partial element is dropped.
func FromBytes[E any](b []byte) []E {
	var e E
	sz := int(unsafe.Sizeof(e))
	n := len(b) / sz
	s := make([]E, n)
	copy(ToBytes(s), b[:n*sz])
	return s
}

// ElementSize returns the size in bytes of one element of type E.
func ElementSize[E any]() int {
	var e E
	return int(unsafe.Sizeof(e))
}
