// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slicesx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLength(t *testing.T) {
	var s []int
	s = SetLength(s, 3)
	assert.Equal(t, 3, len(s))

	s[2] = 2
	s = SetLength(s, 40)
	assert.Equal(t, 40, len(s))
	assert.Equal(t, 2, s[2])

	s = SetLength(s, 4)
	assert.Equal(t, 4, len(s))
	assert.Equal(t, 2, s[2])
}

func TestFilled(t *testing.T) {
	s := Filled(4, 1.5)
	assert.Equal(t, []float64{1.5, 1.5, 1.5, 1.5}, s)
	assert.Empty(t, Filled(0, 7))
}

func TestZero(t *testing.T) {
	s := []int{1, 2, 3}
	Zero(s)
	assert.Equal(t, []int{0, 0, 0}, s)
}
