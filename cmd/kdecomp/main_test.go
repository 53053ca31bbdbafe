// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kestrel3d/kestrel/cli"
	"github.com/kestrel3d/kestrel/gpu"
	"github.com/kestrel3d/kestrel/xyz/io/threemf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoTris = `o pair
v 0 0 0
v 1 0 0
v 0 1 0
v 5 0 0
v 6 0 0
v 5 1 0
f 1 2 3
f 4 5 6
`

func testConfig(t *testing.T, args ...string) (*Config, []string) {
	cfg := &Config{}
	pos, err := cli.Config(&cli.Options{IncludePaths: []string{t.TempDir()}}, cfg, args...)
	require.NoError(t, err)
	return cfg, pos
}

func TestRunOBJ(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "pair.obj")
	require.NoError(t, os.WriteFile(fn, []byte(twoTris), 0o644))
	out := filepath.Join(dir, "parts.3mf")

	cfg, pos := testConfig(t, "-scale", "2", "-out", out, fn)
	require.Equal(t, []string{fn}, pos)
	assert.Equal(t, 1, cfg.Clusters)

	hd := gpu.NewHeadless()
	sc, err := run(cfg, pos[0], hd)
	require.NoError(t, err)
	assert.Equal(t, []string{"pair", "pair_0", "pair_1"}, sc.MeshList())
	assert.Equal(t, 3, hd.Stats.Draws)
	// coords, normals and uvs are shared by the fragments
	assert.Equal(t, 6, hd.Stats.Creates)

	parts, err := threemf.Open(out)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, float32(10), parts[1].Mesh.Coords[0].X)

	sc.ResetMeshes()
	assert.Equal(t, 0, hd.Live())
}

func TestRunSolid(t *testing.T) {
	cfg, _ := testConfig(t, "-cells=16")
	hd := gpu.NewHeadless()
	sc, err := run(cfg, "", hd)
	require.NoError(t, err)
	defer sc.ResetMeshes()
	meshes := sc.MeshList()
	assert.Equal(t, "solid", meshes[0])
	assert.Greater(t, len(meshes), 2)
}

func TestRunErrors(t *testing.T) {
	cfg, _ := testConfig(t)
	_, err := run(cfg, "mesh.stl", gpu.NewHeadless())
	assert.Error(t, err)
	_, err = run(cfg, filepath.Join(t.TempDir(), "missing.obj"), gpu.NewHeadless())
	assert.Error(t, err)
}
