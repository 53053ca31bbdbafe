// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command kdecomp decomposes the meshes of an OBJ or 3MF file into
// parts, builds one fragment mesh per part sharing the vertex buffers
// of its source mesh, and draws everything once.
//
//	kdecomp [-config file] [-scale s] [-clusters n] [-concavity c] [-gpu] [-out parts.3mf] [file]
//
// Without a file, a procedural solid is decomposed instead.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kestrel3d/kestrel/cli"
	"github.com/kestrel3d/kestrel/decomp"
	"github.com/kestrel3d/kestrel/gpu"
	"github.com/kestrel3d/kestrel/gpu/wgpudev"
	"github.com/kestrel3d/kestrel/logx"
	"github.com/kestrel3d/kestrel/math32"
	"github.com/kestrel3d/kestrel/xyz"
	"github.com/kestrel3d/kestrel/xyz/io/obj"
	"github.com/kestrel3d/kestrel/xyz/io/threemf"
	"github.com/kestrel3d/kestrel/xyz/sdfmesh"
)

// Config is the configuration for kdecomp, set from defaults,
// kdecomp.toml if present, a -config file, and flags.
type Config struct {
	decomp.Params

	// GPU uses the WebGPU device instead of the headless one.
	GPU bool

	// Cells is the marching cubes resolution of the procedural solid.
	Cells int `default:"48"`

	// Out is an optional 3MF file to save the parts to.
	Out string

	Verbose bool
	Quiet   bool
}

func main() {
	logx.SetDefault(nil)
	cfg := &Config{}
	args, err := cli.Config(&cli.Options{DefaultFiles: []string{"kdecomp.toml"}}, cfg, os.Args[1:]...)
	if err != nil {
		slog.Error("kdecomp", "err", err)
		os.Exit(2)
	}
	logx.SetLevelFromVerbosity(cfg.Verbose, cfg.Quiet)
	file := ""
	if len(args) > 0 {
		file = args[0]
	}
	var dev gpu.Device
	if cfg.GPU {
		wd, err := wgpudev.NewDevice(nil)
		if err != nil {
			slog.Error("kdecomp: no GPU device", "err", err)
			os.Exit(1)
		}
		defer wd.Release()
		dev = wd
	} else {
		dev = gpu.NewHeadless()
	}
	sc, err := run(cfg, file, dev)
	if sc != nil {
		sc.ResetMeshes()
	}
	if err != nil {
		slog.Error("kdecomp", "err", err)
		os.Exit(1)
	}
}

// run loads the meshes from file into a new scene, decomposes each of
// them, and draws the scene on dev. It returns the scene, whose meshes
// the caller must release with [xyz.Scene.ResetMeshes].
func run(cfg *Config, file string, dev gpu.Device) (*xyz.Scene, error) {
	tms, names, err := load(cfg, file)
	if err != nil {
		return nil, err
	}
	sc := xyz.NewScene("kdecomp")
	src := xyz.NewGroup(sc.Root, "source")
	frs := xyz.NewGroup(sc.Root, "fragments")
	scale := math32.Vector3Scalar(cfg.Scale)

	var parts []threemf.Object
	var total time.Duration
	for i, tm := range tms {
		if tm.NumFaces() == 0 {
			continue
		}
		tm = tm.Clone()
		if err := tm.Scale(scale); err != nil {
			return sc, err
		}
		ms, err := xyz.NewMeshFromTriMesh(tm, false)
		if err != nil {
			return sc, err
		}
		ms.Name = names[i]
		sc.AddMeshUnique(ms)
		xyz.NewSolid(src, ms.Name).SetMesh(ms)

		begin := time.Now()
		res, err := decomp.Decompose(decomp.Components{}, ms, cfg.Params)
		if err != nil {
			return sc, err
		}
		total += time.Since(begin)
		slog.Info("Decomposed", "mesh", ms.Name, "components", len(res.Parts))

		for pi, frag := range res.Fragments {
			sc.AddMeshUnique(frag)
			xyz.NewSolid(frs, frag.Name).SetMesh(frag)
			parts = append(parts, threemf.Object{Name: frag.Name, Mesh: res.Parts[pi]})
		}
	}
	slog.Info("Decomposition time", "time", total)

	if err := draw(sc, dev); err != nil {
		return sc, err
	}
	if cfg.Out != "" {
		if err := threemf.Save(cfg.Out, parts...); err != nil {
			return sc, err
		}
		slog.Info("Saved parts", "file", cfg.Out, "parts", len(parts))
	}
	return sc, nil
}

// draw renders the scene on a device that can draw, and otherwise
// uploads every mesh and drops the host copies of those it uploaded.
func draw(sc *xyz.Scene, dev gpu.Device) error {
	if _, ok := dev.(*wgpudev.Device); !ok {
		return sc.Render(dev)
	}
	for _, nm := range sc.MeshList() {
		ms := sc.MeshByName(nm)
		if err := ms.Upload(dev); err != nil {
			return err
		}
		ms.UnloadFromRAM()
	}
	slog.Info("Uploaded meshes", "meshes", len(sc.MeshList()))
	return nil
}

// load returns the triangle meshes and their names from the given
// OBJ or 3MF file, or a procedural solid if file is empty.
func load(cfg *Config, file string) ([]*xyz.TriMesh, []string, error) {
	if file == "" {
		tm, err := solid(cfg.Cells)
		if err != nil {
			return nil, nil, err
		}
		return []*xyz.TriMesh{tm}, []string{"solid"}, nil
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".obj":
		dec, err := obj.Open(file)
		if err != nil {
			return nil, nil, err
		}
		tms, err := dec.TriMeshes()
		if err != nil {
			return nil, nil, err
		}
		names := make([]string, len(tms))
		for i := range tms {
			names[i] = dec.Objects[i].Name
		}
		return tms, names, nil
	case ".3mf":
		objs, err := threemf.Open(file)
		if err != nil {
			return nil, nil, err
		}
		tms := make([]*xyz.TriMesh, len(objs))
		names := make([]string, len(objs))
		for i, ob := range objs {
			tms[i], names[i] = ob.Mesh, ob.Name
		}
		return tms, names, nil
	}
	return nil, nil, fmt.Errorf("kdecomp: unsupported file type %q", file)
}

// solid is a rounded box next to a cylinder.
func solid(cells int) (*xyz.TriMesh, error) {
	box, err := sdfmesh.Box(math32.Vec3(1, 1, 1), 0.1)
	if err != nil {
		return nil, err
	}
	cyl, err := sdfmesh.Cylinder(1, 0.4)
	if err != nil {
		return nil, err
	}
	s := sdfmesh.Union(sdfmesh.Translate(box, math32.Vec3(-0.8, 0, 0)), sdfmesh.Translate(cyl, math32.Vec3(0.8, 0, 0)))
	return sdfmesh.NewTriMesh(s, cells)
}
