// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Cells int `default:"64"`
}

type Embedded struct {
	Label string `default:"mesh"`
}

type testConfig struct {
	Embedded
	Clusters  int           `default:"4"`
	Concavity float32       `default:"0.25"`
	Verbose   bool          `default:"true"`
	Wait      time.Duration `default:"2s"`
	Sizes     []uint32      `default:"1, 2,3"`
	Name      string
	Inner     inner
	hidden    int `default:"9"`
}

func TestSetFromDefaultTags(t *testing.T) {
	cfg := &testConfig{Name: "keep"}
	require.NoError(t, SetFromDefaultTags(cfg))
	assert.Equal(t, "mesh", cfg.Label)
	assert.Equal(t, 4, cfg.Clusters)
	assert.Equal(t, float32(0.25), cfg.Concavity)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 2*time.Second, cfg.Wait)
	assert.Equal(t, []uint32{1, 2, 3}, cfg.Sizes)
	assert.Equal(t, "keep", cfg.Name)
	assert.Equal(t, 64, cfg.Inner.Cells)
	assert.Equal(t, 0, cfg.hidden)

	assert.Error(t, SetFromDefaultTags(*cfg))
	assert.Error(t, SetFromDefaultTags((*testConfig)(nil)))

	type bad struct {
		N int `default:"many"`
	}
	assert.Error(t, SetFromDefaultTags(&bad{}))
}

func TestFieldByPath(t *testing.T) {
	cfg := &testConfig{}
	sv, ok := StructValue(cfg)
	require.True(t, ok)

	var paths []string
	WalkFields(sv, func(path string, field reflect.StructField, fv reflect.Value) error {
		paths = append(paths, path)
		return nil
	})
	assert.Equal(t, []string{"Label", "Clusters", "Concavity", "Verbose", "Wait", "Sizes", "Name", "Inner.Cells"}, paths)

	fv, ok := FieldByPath(sv, "inner.cells")
	require.True(t, ok)
	require.NoError(t, SetFromString(fv, "8"))
	assert.Equal(t, 8, cfg.Inner.Cells)

	_, ok = FieldByPath(sv, "missing")
	assert.False(t, ok)
}

func TestSetFromString(t *testing.T) {
	var u uint8
	assert.Error(t, SetFromString(reflect.ValueOf(&u).Elem(), "300"))
	assert.NoError(t, SetFromString(reflect.ValueOf(&u).Elem(), "0x10"))
	assert.Equal(t, uint8(16), u)

	var m map[string]int
	assert.Error(t, SetFromString(reflect.ValueOf(&m).Elem(), "a"))

	var sl []string
	require.NoError(t, SetFromString(reflect.ValueOf(&sl).Elem(), ""))
	assert.Empty(t, sl)
}
