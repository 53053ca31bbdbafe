// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"sync"
	"testing"

	"github.com/kestrel3d/kestrel/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedRefs(t *testing.T) {
	hd := NewHeadless()
	s := NewSharedBuffer(testCoords(), VertexBuffer, Static)
	assert.Equal(t, 1, s.Refs())
	require.NoError(t, s.Bind(hd, PosAttribute))

	s2 := s.Ref()
	assert.Same(t, s, s2)
	assert.Equal(t, 2, s.Refs())

	s.Release()
	assert.Equal(t, 1, hd.Live(), "device copy lives while referenced")
	assert.Equal(t, HostAndDevice, s2.Residency())

	s2.Release()
	assert.Equal(t, 0, hd.Live())
	assert.Equal(t, OnHost, s.Residency())

	s.Release() // over-release is logged, not fatal
	assert.Equal(t, -1, s.Refs())
}

func TestSharedBindFastPath(t *testing.T) {
	hd := NewHeadless()
	s := NewSharedBuffer(testCoords(), VertexBuffer, Static)
	for range 3 {
		require.NoError(t, s.Bind(hd, PosAttribute))
	}
	assert.Equal(t, 1, hd.Stats.Creates)
	assert.Equal(t, 3, hd.Stats.Binds)

	s.SetData(testCoords()[:2])
	require.NoError(t, s.Bind(hd, PosAttribute))
	assert.Equal(t, 1, hd.Stats.Writes)
	assert.Equal(t, 2, s.Len())
	require.NoError(t, s.Unbind())
}

func TestSharedReadersDoNotBlock(t *testing.T) {
	s := NewSharedBuffer(testCoords(), VertexBuffer, Static)
	err := s.Read(func(b *Buffer[math32.Vector3]) error {
		done := make(chan int)
		go func() {
			done <- s.Len() // takes the read lock while we hold it
		}()
		assert.Equal(t, 3, <-done)
		return nil
	})
	assert.NoError(t, err)
}

func TestSharedConcurrent(t *testing.T) {
	hd := NewHeadless()
	s := NewSharedBuffer(testCoords(), VertexBuffer, Dynamic)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if i%4 == 0 {
					s.SetData(testCoords())
				}
				assert.NoError(t, s.Bind(hd, PosAttribute))
				own, ok := s.ToOwned()
				assert.True(t, ok)
				assert.Len(t, own, 3)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, hd.Stats.Creates)
	assert.Equal(t, 1, hd.Live())
}

func TestSharedLoadUnload(t *testing.T) {
	hd := NewHeadless()
	s := NewSharedBuffer(testCoords(), VertexBuffer, Static)
	assert.False(t, s.UnloadFromRAM())
	require.NoError(t, s.Write(func(b *Buffer[math32.Vector3]) error {
		return b.Upload(hd)
	}))
	assert.True(t, s.UnloadFromRAM())
	assert.False(t, s.IsOnRAM())
	require.NoError(t, s.LoadToRAM())
	assert.True(t, s.IsOnRAM())
	require.NoError(t, s.Sync())
}
