// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	om := New[string, int]()
	om.Set("a", 1)
	om.Set("b", 2)
	om.Set("c", 3)
	assert.Equal(t, []string{"a", "b", "c"}, om.Keys())

	old, replaced := om.Set("b", 20)
	assert.True(t, replaced)
	assert.Equal(t, 2, old)
	assert.Equal(t, []string{"a", "b", "c"}, om.Keys())

	v, ok := om.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	v, ok = om.Delete("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.False(t, om.Has("a"))
	v, ok = om.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = om.Delete("a")
	assert.False(t, ok)

	var vals []int
	for _, v := range om.All() {
		vals = append(vals, v)
	}
	assert.Equal(t, []int{20, 3}, vals)

	om.Reset()
	assert.Equal(t, 0, om.Len())
}

func TestZeroMap(t *testing.T) {
	var om Map[int, string]
	_, ok := om.Get(1)
	assert.False(t, ok)
	om.Set(1, "one")
	assert.Equal(t, 1, om.Len())
	var nm *Map[int, string]
	assert.Equal(t, 0, nm.Len())
}
