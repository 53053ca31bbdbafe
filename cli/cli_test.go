// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renderConfig struct {
	GPU   bool   `default:"false"`
	Cells int    `default:"32"`
	Label string `default:"kestrel"`
}

type testConfig struct {
	Clusters  int     `default:"1"`
	Concavity float32 `default:"0.01"`
	Scale     float32 `default:"1"`
	Render    renderConfig
}

func TestSetFromArgs(t *testing.T) {
	cfg := &testConfig{}
	require.NoError(t, SetFromDefaults(cfg))
	pos, err := SetFromArgs(cfg, []string{"-clusters", "4", "bunny.obj", "--scale=2.5", "-render.gpu", "-Render.Label=wgpu", "--", "-x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bunny.obj", "-x"}, pos)
	assert.Equal(t, 4, cfg.Clusters)
	assert.Equal(t, float32(2.5), cfg.Scale)
	assert.True(t, cfg.Render.GPU)
	assert.Equal(t, "wgpu", cfg.Render.Label)
	assert.Equal(t, 32, cfg.Render.Cells)

	_, err = SetFromArgs(cfg, []string{"-nope"})
	assert.Error(t, err)
	_, err = SetFromArgs(cfg, []string{"-clusters"})
	assert.Error(t, err)
	_, err = SetFromArgs(cfg, []string{"-clusters", "many"})
	assert.Error(t, err)
	_, err = SetFromArgs(*cfg, nil)
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kdecomp.toml"), []byte("Clusters = 3\nConcavity = 0.5\n"), 0666))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.yaml"), []byte("scale: 10\n"), 0666))

	opts := &Options{DefaultFiles: []string{"kdecomp.toml", "absent.toml"}, IncludePaths: []string{dir}}
	cfg := &testConfig{}
	pos, err := Config(opts, cfg, "-config", "big.yaml", "-concavity=0.2", "mesh.obj")
	require.NoError(t, err)
	assert.Equal(t, []string{"mesh.obj"}, pos)
	assert.Equal(t, 3, cfg.Clusters)
	assert.Equal(t, float32(0.2), cfg.Concavity)
	assert.Equal(t, float32(10), cfg.Scale)
	assert.Equal(t, "kestrel", cfg.Render.Label)

	_, err = Config(opts, &testConfig{}, "-cfg=missing.toml")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "render.toml")
	require.NoError(t, os.WriteFile(file, []byte("Cells = 8\n"), 0666))
	cfg := &renderConfig{}
	require.NoError(t, Open(cfg, file))
	assert.Equal(t, 8, cfg.Cells)
	assert.Error(t, Open(cfg, filepath.Join(dir, "none.toml")))
}
