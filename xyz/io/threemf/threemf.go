// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package threemf loads and saves triangle meshes in the
// 3D Manufacturing Format (3MF).
package threemf

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpinc/go3mf"
	"github.com/kestrel3d/kestrel/math32"
	"github.com/kestrel3d/kestrel/xyz"
)

// Object is one named mesh object of a 3MF model.
type Object struct {
	Name string
	Mesh *xyz.TriMesh
}

// Decode reads the mesh objects of the 3MF package in r, which has
// the given size. Objects made only of components are skipped.
// Build item transforms are not applied.
func Decode(r io.ReaderAt, size int64) ([]Object, error) {
	var model go3mf.Model
	if err := go3mf.NewDecoder(r, size).Decode(&model); err != nil {
		return nil, fmt.Errorf("threemf.Decode: %w", err)
	}
	return objects(&model)
}

// Open reads the mesh objects of the given 3MF file; see [Decode].
func Open(filename string) ([]Object, error) {
	rc, err := go3mf.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var model go3mf.Model
	if err := rc.Decode(&model); err != nil {
		return nil, fmt.Errorf("threemf.Open %q: %w", filename, err)
	}
	return objects(&model)
}

func objects(model *go3mf.Model) ([]Object, error) {
	var objs []Object
	for _, ob := range model.Resources.Objects {
		if ob.Mesh == nil {
			slog.Warn("threemf: skipping object without mesh", "id", ob.ID, "name", ob.Name)
			continue
		}
		name := ob.Name
		if name == "" {
			name = fmt.Sprintf("object_%d", ob.ID)
		}
		tm := toTriMesh(ob.Mesh)
		if err := tm.Validate(); err != nil {
			return nil, fmt.Errorf("threemf object %q: %w", name, err)
		}
		objs = append(objs, Object{Name: name, Mesh: tm})
	}
	return objs, nil
}

func toTriMesh(m *go3mf.Mesh) *xyz.TriMesh {
	coords := make([]math32.Vector3, len(m.Vertices.Vertex))
	for i, p := range m.Vertices.Vertex {
		coords[i] = math32.Vec3(p[0], p[1], p[2])
	}
	faces := make([]math32.Vector3u, len(m.Triangles.Triangle))
	for i, t := range m.Triangles.Triangle {
		faces[i] = math32.Vec3u(t.V1, t.V2, t.V3)
	}
	return xyz.NewTriMesh(coords, faces, nil, nil)
}

// Encode writes the given objects as a 3MF package to w, with one
// build item per object. Split meshes are unified first; normals
// and uvs are not stored.
func Encode(w io.Writer, objs ...Object) error {
	model := &go3mf.Model{}
	for i, ob := range objs {
		tm := ob.Mesh
		if tm.Indices.IsSplit() {
			tm = tm.Clone()
			if err := tm.UnifyIndexBuffer(); err != nil {
				return fmt.Errorf("threemf object %q: %w", ob.Name, err)
			}
		}
		gm := &go3mf.Mesh{}
		for _, c := range tm.Coords {
			gm.Vertices.Vertex = append(gm.Vertices.Vertex, go3mf.Point3D{c.X, c.Y, c.Z})
		}
		for _, f := range tm.Indices.Unified {
			gm.Triangles.Triangle = append(gm.Triangles.Triangle, go3mf.Triangle{V1: f.X, V2: f.Y, V3: f.Z})
		}
		id := uint32(i + 1)
		model.Resources.Objects = append(model.Resources.Objects, &go3mf.Object{ID: id, Name: ob.Name, Mesh: gm})
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: id})
	}
	return go3mf.NewEncoder(w).Encode(model)
}

// Save writes the given objects to the given 3MF file; see [Encode].
func Save(filename string, objs ...Object) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Encode(fp, objs...); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// SetGroup adds a group named after the given file to parent, with
// one solid per object, and adds the meshes to the scene library.
func SetGroup(sc *xyz.Scene, parent xyz.Node, filename string, objs []Object, dynamic bool) (*xyz.Group, error) {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	gp := xyz.NewGroup(parent, name)
	for _, ob := range objs {
		if ob.Mesh.NumFaces() == 0 {
			continue
		}
		ms, err := xyz.NewMeshFromTriMesh(ob.Mesh, dynamic)
		if err != nil {
			return gp, err
		}
		ms.Name = ob.Name
		sc.AddMeshUnique(ms)
		xyz.NewSolid(gp, ob.Name).SetMesh(ms)
	}
	return gp, nil
}
