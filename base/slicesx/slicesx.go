// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slicesx provides additional slice functions
// beyond those in the standard [slices] package.
package slicesx

// SetLength sets the length of the given slice,
// re-using and preserving existing values to the extent possible.
func SetLength[E any](s []E, n int) []E {
	if len(s) == n {
		return s
	}
	if s == nil {
		return make([]E, n)
	}
	if cap(s) < n {
		s = s[:cap(s)]
		s = append(s, make([]E, n-len(s))...)
	}
	return s[:n]
}

// Filled returns a new slice of length n with every element set to v.
func Filled[E any](n int, v E) []E {
	s := make([]E, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// Zero sets every element of the given slice to its zero value.
func Zero[E any](s []E) {
	var z E
	for i := range s {
		s[i] = z
	}
}
